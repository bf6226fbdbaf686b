package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"knowledge-agent/backend/internal/graph"
	apperrors "knowledge-agent/backend/pkg/errors"
	"go.uber.org/zap"
)

// Message and Query must be present but may be empty, so they are pointers:
// gin's required rule rejects zero values.
type sendMessageRequest struct {
	Message *string `json:"message" binding:"required"`
}

type searchRequest struct {
	Query *string `json:"query" binding:"required"`
	Limit int     `json:"limit"`
}

type createEntityRequest struct {
	Name       string         `json:"name" binding:"required"`
	EntityType string         `json:"entity_type" binding:"required"`
	Properties map[string]any `json:"properties"`
}

type createRelationshipRequest struct {
	StartEntity      string         `json:"start_entity" binding:"required"`
	EndEntity        string         `json:"end_entity" binding:"required"`
	RelationshipType string         `json:"relationship_type" binding:"required"`
	Properties       map[string]any `json:"properties"`
}

// fail logs err and answers 503 when the graph store is down, 400 for a
// label the store cannot accept and 500 otherwise
func (h *Handler) fail(c *gin.Context, msg string, err error) {
	status := http.StatusInternalServerError
	var invalidLabel *apperrors.ErrInvalidLabel
	switch {
	case apperrors.IsUnavailable(err):
		status = http.StatusServiceUnavailable
	case errors.As(err, &invalidLabel):
		status = http.StatusBadRequest
	}
	h.logger.Error(msg,
		zap.Error(err),
		zap.Int("status", status),
		zap.String("request_id", c.GetString(requestIDKey)),
	)
	c.JSON(status, gin.H{"error": msg, "detail": err.Error()})
}

func (h *Handler) sendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.chat.Process(c.Request.Context(), *req.Message)
	if err != nil {
		h.fail(c, "Failed to process message", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) getHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": h.chat.History()})
}

func (h *Handler) clearHistory(c *gin.Context) {
	h.chat.ClearHistory()
	c.JSON(http.StatusOK, gin.H{"message": "Chat history cleared"})
}

func (h *Handler) getGraph(c *gin.Context) {
	limit := h.opts.DefaultGraphLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}

	snapshot, err := h.graphs.GetGraph(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, "Failed to fetch knowledge graph", err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Limit <= 0 {
		req.Limit = graph.DefaultSearchLimit
	}

	results, err := h.graphs.Search(c.Request.Context(), *req.Query, req.Limit)
	if err != nil {
		h.fail(c, "Failed to search entities", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results":     results,
		"total_count": len(results),
	})
}

func (h *Handler) getEntity(c *gin.Context) {
	entityID := c.Param("id")

	connections, err := h.graphs.GetEntityConnections(c.Request.Context(), entityID)
	if err != nil {
		h.fail(c, "Failed to fetch entity connections", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entity_id":   entityID,
		"connections": connections,
	})
}

func (h *Handler) createEntity(c *gin.Context) {
	var req createEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entityID, err := h.graphs.UpsertEntity(c.Request.Context(), req.Name, req.EntityType, req.Properties)
	if err != nil {
		h.fail(c, "Failed to create entity", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entity_id": entityID,
		"message":   "Entity created successfully",
	})
}

func (h *Handler) createRelationship(c *gin.Context) {
	var req createRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.graphs.UpsertRelationship(c.Request.Context(), req.StartEntity, req.EndEntity, req.RelationshipType, req.Properties) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create relationship"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Relationship created successfully"})
}

func (h *Handler) getStats(c *gin.Context) {
	stats, err := h.graphs.GetStats(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to fetch graph stats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
