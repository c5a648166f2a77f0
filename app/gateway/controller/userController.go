package controller

import (
	"log/slog"
	"net/http"

	"shareit/app/gateway/client"
	"shareit/model"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type User struct {
	Fwd *client.Client
	V   *validator.Validate
	Log *slog.Logger
}

// POST /users
func (h *User) Create(c echo.Context) error {
	var req model.CreateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return h.Fwd.Forward(c, req)
}

// PATCH /users/:id
func (h *User) Update(c echo.Context) error {
	var req model.UpdateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return h.Fwd.Forward(c, req)
}

// GET /users, GET /users/:id, DELETE /users/:id
func (h *User) Passthrough(c echo.Context) error {
	return h.Fwd.Forward(c, nil)
}
