package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"knowledge-agent/backend/internal/discord"
	"knowledge-agent/backend/internal/services"
	"knowledge-agent/backend/pkg/config"
	"knowledge-agent/backend/pkg/logger"

	"github.com/bwmarrin/discordgo"
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
	log.Info("Starting Discord bot...")

	if cfg.DiscordBotToken == "" {
		log.Fatal("DISCORD_BOT_TOKEN is required")
	}

	// Initialize dependencies
	ctx := context.Background()
	manager := services.NewServiceManager(cfg, log)
	if err := manager.StartAll(ctx); err != nil {
		log.Fatal("Failed to start services", zap.Error(err))
	}
	defer manager.StopAll(context.Background())

	if failed := manager.Repository().EnsureSchema(ctx); failed > 0 {
		log.Warn("Graph schema incomplete, run cmd/migrate", zap.Int("failed_statements", failed))
	}

	// Create Discord session
	dg, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		log.Fatal("Failed to create Discord session", zap.Error(err))
	}

	messageHandler := discord.NewHandler(manager.Orchestrator(), log)
	dg.AddHandler(messageHandler.HandleMessage)

	// Required intents:
	// - IntentsGuildMessages: Read messages in guild channels
	// - IntentsDirectMessages: Read DM messages
	// - IntentsMessageContent: Read the text of mentions
	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent

	// Open connection
	if err := dg.Open(); err != nil {
		log.Fatal("Failed to open Discord connection", zap.Error(err))
	}
	defer dg.Close()

	log.Info("Discord bot is running. Press CTRL-C to exit.",
		zap.String("extraction_strategy", manager.Extractor().Strategy()),
	)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	log.Info("Shutting down Discord bot...")
}
