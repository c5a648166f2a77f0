package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"shareit/app/gateway/client"
	"shareit/model"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Item struct {
	Fwd *client.Client
	V   *validator.Validate
	Log *slog.Logger
}

// POST /items
func (h *Item) Create(c echo.Context) error {
	var req model.CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return h.Fwd.Forward(c, req)
}

// PATCH /items/:itemId
func (h *Item) Update(c echo.Context) error {
	var req model.UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	return h.Fwd.Forward(c, req)
}

// POST /items/:itemId/comment
func (h *Item) CreateComment(c echo.Context) error {
	var req model.CreateCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return h.Fwd.Forward(c, req)
}

// GET /items, GET /items/search
func (h *Item) List(c echo.Context) error {
	if err := checkPage(c); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return h.Fwd.Forward(c, nil)
}

// GET /items/:itemId, DELETE /items/:itemId
func (h *Item) Passthrough(c echo.Context) error {
	return h.Fwd.Forward(c, nil)
}

// checkPage rejects malformed pagination before the request leaves the gateway.
func checkPage(c echo.Context) error {
	if raw := c.QueryParam("from"); raw != "" {
		if from, err := strconv.Atoi(raw); err != nil || from < 0 {
			return errors.New("from must be >= 0")
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		if size, err := strconv.Atoi(raw); err != nil || size <= 0 {
			return errors.New("size must be > 0")
		}
	}
	return nil
}
