package gateway

import (
	"shareit/app/echoServer"
	"shareit/app/gateway/controller"

	"github.com/labstack/echo/v4"
)

type C struct {
	User    *controller.User
	Item    *controller.Item
	Booking *controller.Booking
	Request *controller.Request
}

// Register mirrors the server's routes; the gateway only shape-checks and
// relays.
func Register(e *echo.Echo, c C) {
	users := e.Group("/users")
	users.GET("", c.User.Passthrough)
	users.POST("", c.User.Create)
	users.GET("/:id", c.User.Passthrough)
	users.PATCH("/:id", c.User.Update)
	users.DELETE("/:id", c.User.Passthrough)

	items := e.Group("/items", echoServer.Identity())
	items.POST("", c.Item.Create)
	items.GET("", c.Item.List)
	items.GET("/search", c.Item.List)
	items.GET("/:itemId", c.Item.Passthrough)
	items.PATCH("/:itemId", c.Item.Update)
	items.DELETE("/:itemId", c.Item.Passthrough)
	items.POST("/:itemId/comment", c.Item.CreateComment)

	bookings := e.Group("/bookings", echoServer.Identity())
	bookings.POST("", c.Booking.Create)
	bookings.GET("", c.Booking.List)
	bookings.GET("/owner", c.Booking.List)
	bookings.GET("/:bookingId", c.Booking.ByID)
	bookings.PATCH("/:bookingId", c.Booking.SetApproval)

	requests := e.Group("/requests", echoServer.Identity())
	requests.POST("", c.Request.Create)
	requests.GET("", c.Request.Passthrough)
	requests.GET("/all", c.Request.ListAll)
	requests.GET("/:requestId", c.Request.Passthrough)
}
