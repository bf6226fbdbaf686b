package graph

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ============================================================================
// Relationship Operations
// ============================================================================

// UpsertRelationship merges a typed edge between two existing entities,
// keyed by (start, end, type). It reports false without an error when either
// endpoint is missing or the store call fails; the failure is logged.
func (r *Repository) UpsertRelationship(ctx context.Context, startID, endID, relType string, properties map[string]any) bool {
	typeLabel, err := quoteLabel(relType)
	if err != nil {
		r.logger.Warn("Rejected relationship type",
			zap.String("type", relType),
			zap.Error(err),
		)
		return false
	}

	props := make(map[string]any, len(properties))
	for k, v := range properties {
		props[k] = v
	}

	query := fmt.Sprintf(`
		MATCH (a:%[1]s {id: $start_id})
		MATCH (b:%[1]s {id: $end_id})
		MERGE (a)-[r:%[2]s]->(b)
		ON CREATE SET r.created_at = datetime($now)
		SET r += $properties,
		    r.updated_at = datetime($now)
		RETURN type(r) AS type
	`, CommonLabel, typeLabel)

	rows, err := r.client.Write(ctx, query, map[string]any{
		"start_id":   startID,
		"end_id":     endID,
		"properties": props,
		"now":        r.timestamp(),
	})
	if err != nil {
		r.logger.Error("Failed to create relationship",
			zap.String("start_id", startID),
			zap.String("end_id", endID),
			zap.String("type", relType),
			zap.Error(err),
		)
		return false
	}

	if len(rows) == 0 {
		r.logger.Debug("Relationship endpoint missing",
			zap.String("start_id", startID),
			zap.String("end_id", endID),
			zap.String("type", relType),
		)
		return false
	}

	return true
}
