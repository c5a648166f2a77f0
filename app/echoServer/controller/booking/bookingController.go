package booking

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"shareit/model"
	bs "shareit/service/booking"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		return h.fail(c, "booking create", err)
	}
	return c.JSON(http.StatusOK, toResp(out))
}

// PATCH /bookings/:bookingId?approved=true|false
func (h *Controller) SetApproval(c echo.Context) error {
	id, err := pathID(c, "bookingId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "approved must be true or false"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.SetApproval(c.Request().Context(), uid, id, approved)
	if err != nil {
		return h.fail(c, "booking approval", err)
	}
	return c.JSON(http.StatusOK, toResp(out))
}

// GET /bookings/:bookingId
func (h *Controller) ByID(c echo.Context) error {
	id, err := pathID(c, "bookingId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.ByID(c.Request().Context(), uid, id)
	if err != nil {
		return h.fail(c, "booking lookup", err)
	}
	return c.JSON(http.StatusOK, toResp(out))
}

// GET /bookings?state=&from=&size=
func (h *Controller) ListByBooker(c echo.Context) error {
	from, size, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	rows, err := h.Svc.ListByBooker(c.Request().Context(), uid, c.QueryParam("state"), from, size)
	if err != nil {
		return h.fail(c, "booking list", err)
	}
	return c.JSON(http.StatusOK, toResps(rows))
}

// GET /bookings/owner?state=&from=&size=
func (h *Controller) ListByOwner(c echo.Context) error {
	from, size, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	rows, err := h.Svc.ListByOwner(c.Request().Context(), uid, c.QueryParam("state"), from, size)
	if err != nil {
		return h.fail(c, "owner booking list", err)
	}
	return c.JSON(http.StatusOK, toResps(rows))
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch bs.Code(err) {
	case bs.ErrUserNotFound, bs.ErrItemNotFound, bs.ErrBookingNotFound,
		bs.ErrOwnItem, bs.ErrNotOwner, bs.ErrNotViewer, bs.ErrNoItems:
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case bs.ErrBadDates, bs.ErrUnknownState, bs.ErrBadPagination:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case bs.ErrItemUnavailable, bs.ErrAlreadyDecided:
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}

func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func pageParams(c echo.Context) (from, size int, err error) {
	from, size = 0, 10
	if raw := c.QueryParam("from"); raw != "" {
		if from, err = strconv.Atoi(raw); err != nil {
			return 0, 0, errors.New("from must be a number")
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		if size, err = strconv.Atoi(raw); err != nil {
			return 0, 0, errors.New("size must be a number")
		}
	}
	return from, size, nil
}
