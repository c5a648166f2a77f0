package main

import (
	"log/slog"
	"os"

	"shareit/app/echoServer"
	"shareit/app/echoServer/validation"
	"shareit/app/gateway"
	"shareit/app/gateway/client"
	"shareit/app/gateway/controller"
	"shareit/config"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

func main() {

	cfg := config.LoadGateway()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	fwd := client.New(cfg.ServerURL)

	v := validator.New()
	userC := &controller.User{Fwd: fwd, V: v, Log: log}
	itemC := &controller.Item{Fwd: fwd, V: v, Log: log}
	bookingC := &controller.Booking{Fwd: fwd, V: v, Log: log}
	requestC := &controller.Request{Fwd: fwd, V: v, Log: log}

	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Gateway is healthy",
		})
	})

	gateway.Register(e, gateway.C{
		User:    userC,
		Item:    itemC,
		Booking: bookingC,
		Request: requestC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting shareit gateway", "port", port, "server_url", cfg.ServerURL, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
