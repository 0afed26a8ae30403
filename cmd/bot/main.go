package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"viewset-bot/internal/bootstrap"
	"viewset-bot/internal/config"
	"viewset-bot/internal/server"
	"viewset-bot/internal/tracer"
	"viewset-bot/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer("viewset-bot")
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Initialize Database
	gormDB, err := database.NewGormDB(cfg.Database.Connection, cfg.App.Environment)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(ctx, gormDB, cfg)
	defer container.Logger.Sync()

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Audit Consumer...")
		if err := container.AuditService.Consume(ctx); err != nil {
			log.Printf("Background Audit Consumer Error: %v", err)
		}
	}()
	if container.ActivityService != nil {
		go container.ActivityService.Start(ctx)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
	container.Pool.Wait()
	container.Close()
}
