package main

import (
	"context"
	"log"

	"github.com/fatih/color"

	"notesmd-be/internal/bootstrap"
	"notesmd-be/internal/config"
	"notesmd-be/internal/server"
	"notesmd-be/internal/tracer"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	// 2. Tracing
	shutdownTracer := tracer.InitTracer(cfg.App.OtelEnabled, cfg.App.OtelEndpoint)
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Tracer shutdown error: %v", err)
		}
	}()

	// 3. Bootstrap dependencies
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync() //nolint:errcheck

	// 4. Background activity consumer
	if err := container.ConsumerService.Consume(context.Background()); err != nil {
		log.Printf("Background consumer error: %v", err)
	}

	// 5. Run server
	color.Green("notesmd backend starting on port %s (storage root: %s)", cfg.App.Port, cfg.Storage.RootDir)
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
