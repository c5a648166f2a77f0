package config

import (
	"log/slog"
	"os"
)

// Load reads server-side config. DATABASE_URL has no sane default, so it is required.
func Load() App {
	cfg := App{
		Port:        getenv("APP_PORT", "9090"),
		DatabaseURL: must("DATABASE_URL"),
		ServerURL:   getenv("SHAREIT_SERVER_URL", "http://localhost:9090"),
		Env:         getenv("APP_ENV", "dev"),
	}
	return cfg
}

// LoadGateway reads gateway config; the gateway never touches the database.
func LoadGateway() App {
	return App{
		Port:      getenv("APP_PORT", "8080"),
		ServerURL: getenv("SHAREIT_SERVER_URL", "http://localhost:9090"),
		Env:       getenv("APP_ENV", "dev"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
