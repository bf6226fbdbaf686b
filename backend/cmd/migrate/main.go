package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"knowledge-agent/backend/internal/graph"
	"knowledge-agent/backend/internal/services"
	"knowledge-agent/backend/pkg/config"
	"knowledge-agent/backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	force := flag.Bool("force", false, "Force migration even if already applied")
	flag.Parse()

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
	log.Info("Starting Neo4j schema migration...")

	ctx := context.Background()
	manager := services.NewServiceManager(cfg, log)
	if err := manager.StartGraph(ctx); err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}
	defer manager.StopAll(context.Background())

	repo := manager.Repository()

	// Check if migration already applied
	if !*force {
		applied, err := repo.MigrationApplied(ctx, graph.SchemaVersion)
		if err != nil {
			log.Fatal("Failed to check migration status", zap.Error(err))
		}
		if applied {
			log.Info("Migration already applied. Use -force to reapply.")
			return
		}
	}

	if failed := repo.EnsureSchema(ctx); failed > 0 {
		log.Error("Migration failed", zap.Int("failed_statements", failed))
		manager.StopAll(context.Background())
		logger.Sync()
		os.Exit(1)
	}

	// Mark migration as applied
	if err := repo.MarkMigrationApplied(ctx, graph.SchemaVersion, "Entity id uniqueness constraint and name index"); err != nil {
		log.Warn("Failed to mark migration as applied", zap.Error(err))
	}

	log.Info("Migration completed successfully!", zap.String("version", graph.SchemaVersion))
}
