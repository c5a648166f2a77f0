package request

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"shareit/model"
	rs "shareit/service/request"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	rq, err := h.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		return h.fail(c, "request create", err)
	}
	return c.JSON(http.StatusOK, rq)
}

// GET /requests
func (h *Controller) ListOwn(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.ListOwn(c.Request().Context(), uid)
	if err != nil {
		return h.fail(c, "request list", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/all?from=&size=
func (h *Controller) ListAll(c echo.Context) error {
	from, size := 0, 10
	var err error
	if raw := c.QueryParam("from"); raw != "" {
		if from, err = strconv.Atoi(raw); err != nil || from < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be >= 0"})
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		if size, err = strconv.Atoi(raw); err != nil || size <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "size must be > 0"})
		}
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.ListAll(c.Request().Context(), uid, from, size)
	if err != nil {
		return h.fail(c, "request list all", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/:requestId
func (h *Controller) ByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.ByID(c.Request().Context(), uid, id)
	if err != nil {
		return h.fail(c, "request lookup", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, rs.ErrUserNotFound), errors.Is(err, rs.ErrRequestNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}
