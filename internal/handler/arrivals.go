package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/castlesolutions/flighttracker/internal/models"
	"github.com/castlesolutions/flighttracker/internal/resolver"
)

const defaultArrivalsLimit = 20

type ArrivalsHandler struct {
	resolver       *resolver.Resolver
	defaultAirport string
}

func NewArrivalsHandler(r *resolver.Resolver, defaultAirport string) *ArrivalsHandler {
	return &ArrivalsHandler{
		resolver:       r,
		defaultAirport: defaultAirport,
	}
}

// List handles GET /arrivals?airport=<IATA>&limit=<n>.
func (h *ArrivalsHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	airport := strings.ToUpper(c.QueryParam("airport"))
	if airport == "" {
		airport = h.defaultAirport
	}

	limit := defaultArrivalsLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	list, err := h.resolver.Arrivals(ctx, airport, limit)
	if err != nil {
		if errors.Is(err, resolver.ErrNoData) {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "no_data",
				Message: "No provider returned arrivals data for " + airport,
				Code:    http.StatusInternalServerError,
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	return c.JSON(http.StatusOK, list)
}
