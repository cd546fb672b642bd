package main

import (
	"log"
	"log/slog"

	"github.com/nfrund/gobyauth/internal/config"
	"github.com/nfrund/gobyauth/internal/logging"
	"github.com/nfrund/gobyauth/internal/server"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.New(cfg.GetLogFormat(), cfg.GetLogLevel())

	// Create a new server instance.
	s, err := server.New(cfg, nil)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		log.Fatal(err)
	}

	// Register all application routes.
	s.RegisterRoutes()

	// Start the server.
	s.Start()
}
