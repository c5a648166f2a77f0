package item

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"shareit/model"
	is "shareit/service/item"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc is.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	it, err := h.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		return h.fail(c, "item create", err)
	}
	return c.JSON(http.StatusOK, it)
}

// PATCH /items/:itemId
func (h *Controller) Update(c echo.Context) error {
	id, err := pathID(c, "itemId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req model.UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	uid, _ := c.Get("user_id").(int64)

	it, err := h.Svc.Update(c.Request().Context(), uid, id, req)
	if err != nil {
		return h.fail(c, "item update", err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items/:itemId
func (h *Controller) ByID(c echo.Context) error {
	id, err := pathID(c, "itemId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	uid, _ := c.Get("user_id").(int64)

	v, err := h.Svc.ByID(c.Request().Context(), id, uid)
	if err != nil {
		return h.fail(c, "item lookup", err)
	}
	if v.Comments == nil {
		v.Comments = []model.Comment{}
	}
	return c.JSON(http.StatusOK, v)
}

// GET /items?from=&size=
func (h *Controller) ListByOwner(c echo.Context) error {
	from, size, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	views, err := h.Svc.ListByOwner(c.Request().Context(), uid, from, size)
	if err != nil {
		return h.fail(c, "item list", err)
	}
	return c.JSON(http.StatusOK, views)
}

// GET /items/search?text=&from=&size=
func (h *Controller) Search(c echo.Context) error {
	from, size, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return h.fail(c, "item search", err)
	}
	return c.JSON(http.StatusOK, items)
}

// DELETE /items/:itemId
func (h *Controller) Delete(c echo.Context) error {
	id, err := pathID(c, "itemId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	uid, _ := c.Get("user_id").(int64)

	if err := h.Svc.Delete(c.Request().Context(), uid, id); err != nil {
		return h.fail(c, "item delete", err)
	}
	return c.NoContent(http.StatusOK)
}

// POST /items/:itemId/comment
func (h *Controller) CreateComment(c echo.Context) error {
	id, err := pathID(c, "itemId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req model.CreateCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	cm, err := h.Svc.CreateComment(c.Request().Context(), uid, id, req)
	if err != nil {
		return h.fail(c, "comment create", err)
	}
	return c.JSON(http.StatusOK, cm)
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, is.ErrUserNotFound), errors.Is(err, is.ErrItemNotFound), errors.Is(err, is.ErrNotOwner):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, is.ErrNeverBooked), errors.Is(err, is.ErrRentalNotOver):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
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
		if from, err = strconv.Atoi(raw); err != nil || from < 0 {
			return 0, 0, errors.New("from must be >= 0")
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		if size, err = strconv.Atoi(raw); err != nil || size <= 0 {
			return 0, 0, errors.New("size must be > 0")
		}
	}
	return from, size, nil
}
