package echoServer

import (
	"shareit/app/echoServer/controller/booking"
	"shareit/app/echoServer/controller/item"
	"shareit/app/echoServer/controller/request"
	"shareit/app/echoServer/controller/user"

	"github.com/labstack/echo/v4"
)

type C struct {
	User    *user.Controller
	Item    *item.Controller
	Booking *booking.Controller
	Request *request.Controller
}

func Register(e *echo.Echo, c C) {
	// Users carry no identity header: they are the identity.
	users := e.Group("/users")
	users.GET("", c.User.All)
	users.POST("", c.User.Create)
	users.GET("/:id", c.User.ByID)
	users.PATCH("/:id", c.User.Update)
	users.DELETE("/:id", c.User.Delete)

	items := e.Group("/items", Identity())
	items.POST("", c.Item.Create)
	items.GET("", c.Item.ListByOwner)
	items.GET("/search", c.Item.Search)
	items.GET("/:itemId", c.Item.ByID)
	items.PATCH("/:itemId", c.Item.Update)
	items.DELETE("/:itemId", c.Item.Delete)
	items.POST("/:itemId/comment", c.Item.CreateComment)

	bookings := e.Group("/bookings", Identity())
	bookings.POST("", c.Booking.Create)
	bookings.GET("", c.Booking.ListByBooker)
	bookings.GET("/owner", c.Booking.ListByOwner)
	bookings.GET("/:bookingId", c.Booking.ByID)
	bookings.PATCH("/:bookingId", c.Booking.SetApproval)

	requests := e.Group("/requests", Identity())
	requests.POST("", c.Request.Create)
	requests.GET("", c.Request.ListOwn)
	requests.GET("/all", c.Request.ListAll)
	requests.GET("/:requestId", c.Request.ByID)
}
