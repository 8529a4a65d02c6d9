package main

import (
	"context"
	"log"

	"otakupal-be/internal/bootstrap"
	"otakupal-be/internal/config"
	"otakupal-be/internal/server"
	"otakupal-be/internal/tracer"
	"otakupal-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Warning: tracer shutdown failed: %v", err)
		}
	}()

	cfg := config.Load()

	if cfg.Database.Connection == "" {
		log.Fatal("DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	deps := bootstrap.NewContainer(cfg, db)
	defer deps.Logger.Sync()

	srv := server.New(cfg, deps)
	if err := srv.Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
