package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hana/meditation-progress-api/internal/api"
	"github.com/hana/meditation-progress-api/internal/config"
	"github.com/hana/meditation-progress-api/internal/domain"
	"github.com/hana/meditation-progress-api/internal/repository"
	"github.com/hana/meditation-progress-api/internal/repository/memory"
	"github.com/hana/meditation-progress-api/internal/repository/postgres"
	"github.com/hana/meditation-progress-api/internal/service"
	"github.com/hana/meditation-progress-api/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize repositories (the engine is storage-agnostic: the memory
	// backend keeps everything process-scoped, postgres makes it durable)
	var repos *repository.Repositories
	switch cfg.Storage {
	case config.StorageMemory:
		repos = memory.NewRepositories()
	default:
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		repos = postgres.NewRepositories(db)
	}

	// Initialize services
	services := service.NewServices(repos, cfg, domain.SystemClock())

	// Initialize WebSocket hub for live progress updates
	hub := websocket.NewHub()
	go hub.Run()
	services.Progress.SetNotifier(hub)

	// Initialize router
	router := api.NewRouter(services, hub)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s (storage: %s)", cfg.Port, cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	hub.Stop()

	log.Println("Server stopped")
}
