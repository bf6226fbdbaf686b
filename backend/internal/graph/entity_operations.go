package graph

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ============================================================================
// Entity Operations
// ============================================================================

// UpsertEntity merges an entity by its derived id. An existing node with the
// same id and type label gets its properties shallow-merged; otherwise a node
// carrying both the type label and CommonLabel is created. Store failures are
// returned since callers have no fallback identity.
func (r *Repository) UpsertEntity(ctx context.Context, name, entityType string, properties map[string]any) (string, error) {
	typeLabel, err := quoteLabel(entityType)
	if err != nil {
		return "", err
	}

	entityID := EntityID(entityType, name)

	props := make(map[string]any, len(properties)+3)
	for k, v := range properties {
		props[k] = v
	}
	props[PropID] = entityID
	props[PropName] = name
	props[PropType] = entityType

	query := fmt.Sprintf(`
		MERGE (e:%s:%s {id: $id})
		ON CREATE SET e.created_at = datetime($now)
		SET e += $properties,
		    e.updated_at = datetime($now)
		RETURN e.id AS id
	`, CommonLabel, typeLabel)

	rows, err := r.client.Write(ctx, query, map[string]any{
		"id":         entityID,
		"properties": props,
		"now":        r.timestamp(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upsert entity: %w", err)
	}

	r.logger.Debug("Entity upserted",
		zap.String("entity_id", entityID),
		zap.String("type", entityType),
	)

	if len(rows) > 0 {
		if id := getStringFromRow(rows[0], "id"); id != "" {
			return id, nil
		}
	}
	return entityID, nil
}
