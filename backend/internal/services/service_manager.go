package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"knowledge-agent/backend/internal/adapter"
	"knowledge-agent/backend/internal/agent"
	"knowledge-agent/backend/internal/extraction"
	"knowledge-agent/backend/internal/graph"
	"knowledge-agent/backend/pkg/config"
	"knowledge-agent/backend/pkg/logger"
	"go.uber.org/zap"
)

// ServiceManager builds the long-lived components from config and owns their
// lifecycle. Every entry point (server, bot, seed, migrate) goes through it.
type ServiceManager struct {
	cfg    *config.Config
	logger *zap.Logger

	mu           sync.Mutex
	client       *graph.Neo4jClient
	repo         *graph.Repository
	recognizer   extraction.Recognizer
	extractor    *extraction.Extractor
	orchestrator *agent.Orchestrator
}

// NewServiceManager creates a new service manager
func NewServiceManager(cfg *config.Config, log *zap.Logger) *ServiceManager {
	return &ServiceManager{
		cfg:    cfg,
		logger: logger.OrNop(log),
	}
}

// StartGraph connects to Neo4j and creates the repository
func (sm *ServiceManager) StartGraph(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.client != nil {
		return fmt.Errorf("graph client already started")
	}

	client, err := graph.Connect(ctx, sm.cfg.Neo4jURI, sm.cfg.Neo4jUser, sm.cfg.Neo4jPassword, sm.logger)
	if err != nil {
		return err
	}

	sm.client = client
	sm.repo = graph.NewRepository(client, sm.logger)

	sm.logger.Info("Graph store connected", zap.String("uri", sm.cfg.Neo4jURI))
	return nil
}

// StartExtraction loads the configured entity recognizer. A recognizer that
// cannot be loaded leaves the extractor on pattern extraction.
func (sm *ServiceManager) StartExtraction() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	recognizer, err := sm.buildRecognizer()
	if err != nil {
		sm.logger.Warn("Failed to load NLP recognizer, falling back to patterns",
			zap.String("strategy", sm.cfg.ExtractionStrategy),
			zap.Error(err),
		)
		recognizer = nil
	}

	sm.recognizer = recognizer
	sm.extractor = extraction.NewExtractor(recognizer, sm.logger)

	sm.logger.Info("Extraction ready", zap.String("strategy", sm.extractor.Strategy()))
}

func (sm *ServiceManager) buildRecognizer() (extraction.Recognizer, error) {
	switch sm.cfg.ExtractionStrategy {
	case config.StrategyHugot:
		return extraction.NewHugotRecognizer(sm.cfg.NERModel, sm.cfg.ModelDir, sm.logger)
	case config.StrategyLLM:
		llm := adapter.NewLLMAdapter(sm.cfg.LLMBaseURL, sm.cfg.LLMAPIKey, sm.cfg.LLMModel, sm.logger)
		sm.logger.Info("Using LLM entity recognizer",
			zap.String("base_url", sm.cfg.LLMBaseURL),
			zap.String("model", llm.GetModel()),
		)
		return extraction.NewLLMRecognizer(llm, sm.logger), nil
	default:
		return nil, nil
	}
}

// StartAll brings up the graph store, extraction and the orchestrator
func (sm *ServiceManager) StartAll(ctx context.Context) error {
	if err := sm.StartGraph(ctx); err != nil {
		return err
	}

	sm.StartExtraction()

	sm.mu.Lock()
	sm.orchestrator = agent.NewOrchestrator(sm.extractor, sm.repo, sm.logger)
	sm.mu.Unlock()

	return nil
}

// Repository returns the graph repository, nil before StartGraph
func (sm *ServiceManager) Repository() *graph.Repository {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.repo
}

// Extractor returns the extractor, nil before StartExtraction
func (sm *ServiceManager) Extractor() *extraction.Extractor {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.extractor
}

// Orchestrator returns the orchestrator, nil before StartAll
func (sm *ServiceManager) Orchestrator() *agent.Orchestrator {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.orchestrator
}

// StopAll releases the recognizer and closes the Neo4j driver
func (sm *ServiceManager) StopAll(ctx context.Context) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if closer, ok := sm.recognizer.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			sm.logger.Warn("Failed to close recognizer", zap.Error(err))
		}
	}
	sm.recognizer = nil

	if sm.client != nil {
		closeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := sm.client.Close(closeCtx); err != nil {
			sm.logger.Warn("Failed to close graph client", zap.Error(err))
		}
		sm.client = nil
	}

	sm.logger.Info("All services stopped")
}
