package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"knowledge-agent/backend/internal/api"
	"knowledge-agent/backend/internal/constants"
	"knowledge-agent/backend/internal/services"
	"knowledge-agent/backend/pkg/config"
	"knowledge-agent/backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.Bool("development", cfg.IsDevelopment()),
		zap.String("extraction_strategy", cfg.ExtractionStrategy),
	)
	log.Info("Starting HTTP API server...")

	// Initialize dependencies
	ctx := context.Background()
	manager := services.NewServiceManager(cfg, log)
	if err := manager.StartAll(ctx); err != nil {
		log.Fatal("Failed to start services", zap.Error(err))
	}
	defer manager.StopAll(context.Background())

	repo := manager.Repository()
	if failed := repo.EnsureSchema(ctx); failed > 0 {
		log.Warn("Graph schema incomplete, run cmd/migrate", zap.Int("failed_statements", failed))
	}

	router := api.NewRouter(manager.Orchestrator(), repo, api.Options{
		DefaultGraphLimit: cfg.DefaultGraphLimit,
		Release:           cfg.IsProduction(),
	}, log)

	srv := newHTTPServer(cfg, router)

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started",
		zap.String("port", cfg.Port),
		zap.String("extraction_strategy", manager.Extractor().Strategy()),
	)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// newHTTPServer wraps handler in a server listening on the configured port
func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
