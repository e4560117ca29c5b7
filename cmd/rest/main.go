package main

import (
	"context"
	"log"

	"orgnotes-be/internal/bootstrap"
	"orgnotes-be/internal/config"
	"orgnotes-be/internal/server"
	"orgnotes-be/internal/tracer"
	"orgnotes-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Changefeed Service...")
		if err := container.ChangefeedService.Consume(context.Background()); err != nil {
			log.Printf("Background Changefeed Error: %v", err)
		}
	}()

	if container.AuditService != nil {
		go func() {
			log.Println("Background: Starting Audit Service...")
			if err := container.AuditService.Start(); err != nil {
				log.Printf("Background Audit Error: %v", err)
			}
		}()
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
