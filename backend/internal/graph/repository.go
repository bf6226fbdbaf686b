package graph

import (
	"context"
	"time"

	"knowledge-agent/backend/pkg/logger"
	"go.uber.org/zap"
)

const (
	// DefaultGraphLimit bounds GetGraph when the caller passes no limit
	DefaultGraphLimit = 100
	// DefaultSearchLimit bounds Search when the caller passes no limit
	DefaultSearchLimit = 10
)

// Repository upserts entities and relationships and builds read projections
// over a Client
type Repository struct {
	client Client
	logger *zap.Logger
	now    func() time.Time
}

// NewRepository creates a new graph repository
func NewRepository(client Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		logger: logger.OrNop(log),
		now:    time.Now,
	}
}

var schemaQueries = []string{
	"CREATE CONSTRAINT entity_id_unique IF NOT EXISTS FOR (n:Entity) REQUIRE n.id IS UNIQUE",
	"CREATE INDEX entity_name_index IF NOT EXISTS FOR (n:Entity) ON (n.name)",
}

// EnsureSchema creates the uniqueness constraint and name index the upserts
// rely on. Failures are logged and counted; the service still runs without them.
func (r *Repository) EnsureSchema(ctx context.Context) int {
	failed := 0
	for _, query := range schemaQueries {
		if _, err := r.client.Write(ctx, query, nil); err != nil {
			failed++
			r.logger.Warn("Failed to apply schema statement",
				zap.String("query", query),
				zap.Error(err),
			)
		}
	}
	if failed == 0 {
		r.logger.Info("Graph schema ready", zap.Int("statements", len(schemaQueries)))
	}
	return failed
}

func (r *Repository) timestamp() string {
	return r.now().UTC().Format(time.RFC3339)
}
