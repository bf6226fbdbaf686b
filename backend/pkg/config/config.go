package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	apperrors "knowledge-agent/backend/pkg/errors"
)

// Extraction strategies selectable through EXTRACTION_STRATEGY
const (
	StrategyPattern = "pattern"
	StrategyHugot   = "hugot"
	StrategyLLM     = "llm"
)

// Config holds all application configuration
type Config struct {
	// App
	Port              string
	Env               string
	DefaultGraphLimit int

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	// Extraction
	ExtractionStrategy string
	NERModel           string // Hugging Face model name used by the hugot strategy
	ModelDir           string // Where downloaded NER models are cached

	// LLM (OpenAI-compatible endpoint, used by the llm strategy)
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	// Discord
	DiscordBotToken string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8000"),
		Env:                getEnv("ENV", "development"),
		DefaultGraphLimit:  getEnvInt("DEFAULT_GRAPH_LIMIT", 100),
		Neo4jURI:           getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:          getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:      getEnv("NEO4J_PASSWORD", "password"),
		ExtractionStrategy: strings.ToLower(getEnv("EXTRACTION_STRATEGY", StrategyPattern)),
		NERModel:           getEnv("NER_MODEL", "KnightsAnalytics/distilbert-NER"),
		ModelDir:           getEnv("MODEL_DIR", "./models"),
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:4000"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		LLMModel:           getEnv("LLM_MODEL", "gpt-4o-mini"),
		DiscordBotToken:    getEnv("DISCORD_BOT_TOKEN", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.Neo4jURI == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_URI")
	}
	if c.Neo4jUser == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_USER")
	}
	if c.Neo4jPassword == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_PASSWORD")
	}
	if c.DefaultGraphLimit < 1 {
		return apperrors.NewConfigValidationFailed("DEFAULT_GRAPH_LIMIT", "must be positive")
	}

	switch c.ExtractionStrategy {
	case StrategyPattern:
	case StrategyHugot:
		if c.NERModel == "" {
			return apperrors.NewConfigMissingRequired("NER_MODEL")
		}
	case StrategyLLM:
		if c.LLMBaseURL == "" {
			return apperrors.NewConfigMissingRequired("LLM_BASE_URL")
		}
		if c.LLMModel == "" {
			return apperrors.NewConfigMissingRequired("LLM_MODEL")
		}
	default:
		return apperrors.NewConfigValidationFailed("EXTRACTION_STRATEGY",
			fmt.Sprintf("unknown strategy %q (want %s, %s or %s)", c.ExtractionStrategy, StrategyPattern, StrategyHugot, StrategyLLM))
	}
	// Discord token is only checked by the bot binary
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
