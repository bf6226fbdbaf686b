package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"knowledge-agent/backend/internal/agent"
	"knowledge-agent/backend/internal/graph"
	"knowledge-agent/backend/pkg/logger"
	"go.uber.org/zap"
)

// ChatService is the conversation side of the API
type ChatService interface {
	Process(ctx context.Context, message string) (*agent.ChatResult, error)
	History() []agent.ConversationTurn
	ClearHistory()
}

// GraphService is the knowledge graph side of the API
type GraphService interface {
	GetGraph(ctx context.Context, limit int) (*graph.GraphSnapshot, error)
	Search(ctx context.Context, query string, limit int) ([]graph.EntityMatch, error)
	GetEntityConnections(ctx context.Context, entityID string) (*graph.ConnectionSet, error)
	UpsertEntity(ctx context.Context, name, entityType string, properties map[string]any) (string, error)
	UpsertRelationship(ctx context.Context, startID, endID, relType string, properties map[string]any) bool
	GetStats(ctx context.Context) (*graph.Stats, error)
}

// Options tunes the router
type Options struct {
	// DefaultGraphLimit applies when GET /api/knowledge-graph has no limit
	DefaultGraphLimit int
	// Release switches gin to release mode
	Release bool
}

// Handler serves the HTTP API
type Handler struct {
	chat   ChatService
	graphs GraphService
	opts   Options
	logger *zap.Logger
}

// NewRouter builds the gin engine with every route registered
func NewRouter(chat ChatService, graphs GraphService, opts Options, log *zap.Logger) *gin.Engine {
	log = logger.OrNop(log)
	if opts.DefaultGraphLimit <= 0 {
		opts.DefaultGraphLimit = graph.DefaultGraphLimit
	}
	if opts.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	h := &Handler{
		chat:   chat,
		graphs: graphs,
		opts:   opts,
		logger: log,
	}

	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors())

	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		chatRoutes := api.Group("/chat")
		chatRoutes.POST("/message", h.sendMessage)
		chatRoutes.GET("/history", h.getHistory)
		chatRoutes.DELETE("/history", h.clearHistory)

		kg := api.Group("/knowledge-graph")
		kg.GET("", h.getGraph)
		kg.POST("/search", h.search)
		kg.GET("/entity/:id", h.getEntity)
		kg.POST("/entity", h.createEntity)
		kg.POST("/relationship", h.createRelationship)
		kg.GET("/stats", h.getStats)
	}

	return router
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
