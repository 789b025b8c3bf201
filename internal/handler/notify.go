package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/castlesolutions/flighttracker/internal/models"
	"github.com/castlesolutions/flighttracker/internal/notify"
	"github.com/castlesolutions/flighttracker/internal/resolver"
)

type NotifyConfig struct {
	// FallbackEmail receives the notification when the request has no
	// recipient.
	FallbackEmail string
	// TrackingBase is the public tracker URL embedded in the email.
	TrackingBase string
}

type NotifyHandler struct {
	resolver *resolver.Resolver
	mailer   notify.Mailer
	config   NotifyConfig
}

func NewNotifyHandler(r *resolver.Resolver, m notify.Mailer, cfg NotifyConfig) *NotifyHandler {
	return &NotifyHandler{
		resolver: r,
		mailer:   m,
		config:   cfg,
	}
}

// Notify handles POST /notify: look up the flight and, when it has landed,
// email the property team that the guest has arrived.
func (h *NotifyHandler) Notify(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.NotifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	ident := models.NormalizeIdent(req.Flight)

	flight, err := h.resolver.Resolve(ctx, ident, string(models.SourceAviationStack))
	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "flight_not_found",
				Message: "Flight " + ident + " was not found",
				Code:    http.StatusNotFound,
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	if flight.Status != models.StatusLanded {
		return c.JSON(http.StatusOK, models.NotifyResponse{
			Flight:   ident,
			Status:   flight.Status,
			Notified: false,
			Message:  fmt.Sprintf("Flight status: %s. Notification will be sent when landed.", flight.Status),
		})
	}

	to := req.Email
	if to == "" {
		to = h.config.FallbackEmail
	}
	subject, body := notify.LandedMessage(flight, req.GuestName, req.Property, h.config.TrackingBase)

	// A failed email never fails the request; the guest has still landed.
	if err := h.mailer.Send(ctx, notify.Message{
		To:      to,
		Subject: subject,
		Name:    "Castle Flights",
		Body:    body,
	}); err != nil {
		log.Printf("Email notification failed for %s: %v", ident, err)
	}

	return c.JSON(http.StatusOK, models.NotifyResponse{
		Flight:   ident,
		Status:   models.StatusLanded,
		Notified: true,
		Arrival: &models.NotifyArrival{
			Airport:  flight.Arrival.Airport,
			Actual:   flight.Arrival.Actual,
			Terminal: flight.Arrival.Terminal,
			Baggage:  flight.Arrival.Baggage,
		},
	})
}
