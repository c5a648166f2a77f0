package controller

import (
	"log/slog"
	"net/http"

	"shareit/app/gateway/client"
	"shareit/model"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Request struct {
	Fwd *client.Client
	V   *validator.Validate
	Log *slog.Logger
}

// POST /requests
func (h *Request) Create(c echo.Context) error {
	var req model.CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return h.Fwd.Forward(c, req)
}

// GET /requests/all
func (h *Request) ListAll(c echo.Context) error {
	if err := checkPage(c); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return h.Fwd.Forward(c, nil)
}

// GET /requests, GET /requests/:requestId
func (h *Request) Passthrough(c echo.Context) error {
	return h.Fwd.Forward(c, nil)
}
