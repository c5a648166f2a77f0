// Gateway controllers check request shape only; every business decision is
// made by the server they forward to.
package controller

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"shareit/app/gateway/client"
	"shareit/model"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Booking struct {
	Fwd *client.Client
	V   *validator.Validate
	Log *slog.Logger
}

// POST /bookings
func (h *Booking) Create(c echo.Context) error {
	var req model.CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	now := time.Now()
	if req.Start.Before(now) || req.End.Before(now) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking dates must not be in the past"})
	}
	if !req.End.After(*req.Start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking end must be after its start"})
	}
	return h.Fwd.Forward(c, req)
}

// PATCH /bookings/:bookingId?approved=
func (h *Booking) SetApproval(c echo.Context) error {
	if _, err := strconv.ParseBool(c.QueryParam("approved")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "approved must be true or false"})
	}
	return h.Fwd.Forward(c, nil)
}

// GET /bookings/:bookingId
func (h *Booking) ByID(c echo.Context) error {
	return h.Fwd.Forward(c, nil)
}

// GET /bookings and GET /bookings/owner
func (h *Booking) List(c echo.Context) error {
	if _, err := model.ParseState(c.QueryParam("state")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := checkPage(c); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return h.Fwd.Forward(c, nil)
}
