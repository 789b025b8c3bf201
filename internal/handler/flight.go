package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/castlesolutions/flighttracker/internal/models"
	"github.com/castlesolutions/flighttracker/internal/resolver"
)

type FlightHandler struct {
	resolver *resolver.Resolver
}

func NewFlightHandler(r *resolver.Resolver) *FlightHandler {
	return &FlightHandler{resolver: r}
}

// Track handles GET /flight?flight=<ident>&source=<provider>.
func (h *FlightHandler) Track(c echo.Context) error {
	ctx := c.Request().Context()

	flight := c.QueryParam("flight")
	if flight == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "missing_flight",
			Message: "Missing flight parameter",
			Code:    http.StatusBadRequest,
		})
	}
	ident := models.NormalizeIdent(flight)

	result, err := h.resolver.Resolve(ctx, ident, sourcePreference(c.QueryParam("source")))
	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "flight_not_found",
				Message: "Flight " + ident + " was not found by any provider",
				Code:    http.StatusNotFound,
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	return c.JSON(http.StatusOK, result)
}

// sourcePreference accepts only known provider names; anything else means no
// preference and both providers are queried.
func sourcePreference(source string) string {
	switch source {
	case string(models.SourceAviationStack), string(models.SourceFlightAware):
		return source
	default:
		return ""
	}
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
