package agent

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"knowledge-agent/backend/internal/extraction"
	"knowledge-agent/backend/internal/graph"
	apperrors "knowledge-agent/backend/pkg/errors"
	"knowledge-agent/backend/pkg/logger"
	"go.uber.org/zap"
)

// EntityExtractor turns a message into entity and relationship candidates
type EntityExtractor interface {
	Extract(ctx context.Context, text string) extraction.Result
}

// GraphWriter is the write side of the graph repository
type GraphWriter interface {
	UpsertEntity(ctx context.Context, name, entityType string, properties map[string]any) (string, error)
	UpsertRelationship(ctx context.Context, startID, endID, relType string, properties map[string]any) bool
}

// Orchestrator drives one message through extraction, upsert and response
// synthesis, and records the turn in its history
type Orchestrator struct {
	extractor EntityExtractor
	graph     GraphWriter
	history   *History
	now       func() time.Time
	logger    *zap.Logger
}

// NewOrchestrator creates a new conversation orchestrator
func NewOrchestrator(extractor EntityExtractor, graphWriter GraphWriter, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		extractor: extractor,
		graph:     graphWriter,
		history:   NewHistory(),
		now:       time.Now,
		logger:    logger.OrNop(log),
	}
}

// Process handles a message received over the chat API
func (o *Orchestrator) Process(ctx context.Context, message string) (*ChatResult, error) {
	return o.ProcessWithSource(ctx, message, SourceChat)
}

// ProcessWithSource handles a message and tags everything it writes with
// source. An entity upsert failure aborts the call; relationship failures
// only shrink the reported relationships.
func (o *Orchestrator) ProcessWithSource(ctx context.Context, message, source string) (*ChatResult, error) {
	timestamp := o.now()
	extractedAt := timestamp.Format(time.RFC3339)

	extracted := o.extractor.Extract(ctx, message)

	entities := make([]EntityRef, 0, len(extracted.Entities))
	for _, candidate := range extracted.Entities {
		id, err := o.graph.UpsertEntity(ctx, candidate.Text, candidate.Label, map[string]any{
			graph.PropConfidence:  candidate.Confidence,
			graph.PropSource:      source,
			graph.PropExtractedAt: extractedAt,
		})
		if err != nil {
			return nil, apperrors.NewEntityUpsertFailed(candidate.Text, candidate.Label, err)
		}
		entities = append(entities, EntityRef{
			ID:   id,
			Name: candidate.Text,
			Type: candidate.Label,
		})
	}

	relationships := make([]RelationshipRef, 0, len(extracted.Relationships))
	for _, candidate := range extracted.Relationships {
		startID := resolveEntity(entities, candidate.StartEntity)
		endID := resolveEntity(entities, candidate.EndEntity)
		if startID == "" || endID == "" {
			continue
		}

		ok := o.graph.UpsertRelationship(ctx, startID, endID, candidate.Type, map[string]any{
			graph.PropConfidence:  candidate.Confidence,
			graph.PropSource:      source,
			graph.PropExtractedAt: extractedAt,
		})
		if !ok {
			continue
		}
		relationships = append(relationships, RelationshipRef{
			StartEntity: startID,
			EndEntity:   endID,
			Type:        candidate.Type,
		})
	}

	response := BuildResponse(message, entities, relationships)

	o.history.Append(ConversationTurn{
		ID:            uuid.New().String(),
		Message:       message,
		Response:      response,
		Entities:      entities,
		Relationships: relationships,
		Timestamp:     timestamp,
	})

	o.logger.Debug("Message processed",
		zap.String("source", source),
		zap.Int("entities", len(entities)),
		zap.Int("relationships", len(relationships)),
		zap.Int("dropped_relationships", len(extracted.Relationships)-len(relationships)),
		zap.Int("history_turns", o.history.Len()),
	)

	return &ChatResult{
		Response:             response,
		EntitiesExtracted:    entities,
		RelationshipsCreated: relationships,
		Timestamp:            timestamp,
	}, nil
}

// History returns a copy of the conversation so far
func (o *Orchestrator) History() []ConversationTurn {
	return o.history.Turns()
}

// ClearHistory forgets every recorded turn
func (o *Orchestrator) ClearHistory() {
	o.history.Clear()
	o.logger.Info("Conversation history cleared")
}

// resolveEntity finds the id of the entity named name among this call's
// upserts. Matching is case-insensitive; the last match wins.
func resolveEntity(entities []EntityRef, name string) string {
	id := ""
	for _, e := range entities {
		if strings.EqualFold(e.Name, name) {
			id = e.ID
		}
	}
	return id
}
