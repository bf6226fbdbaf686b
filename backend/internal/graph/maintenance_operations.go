package graph

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ============================================================================
// Maintenance Operations
// ============================================================================

// SchemaVersion is the migration marker written once EnsureSchema succeeds
const SchemaVersion = "entity_schema_v1"

// MigrationApplied reports whether a Migration marker exists for version
func (r *Repository) MigrationApplied(ctx context.Context, version string) (bool, error) {
	rows, err := r.client.Read(ctx, `
		MATCH (m:Migration {version: $version})
		RETURN m.applied_at AS applied_at
	`, map[string]any{"version": version})
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return len(rows) > 0, nil
}

// MarkMigrationApplied records version as applied. Migration nodes do not
// carry the Entity label, so projections never see them.
func (r *Repository) MarkMigrationApplied(ctx context.Context, version, description string) error {
	_, err := r.client.Write(ctx, `
		MERGE (m:Migration {version: $version})
		SET m.applied_at = $applied_at,
		    m.description = $description
	`, map[string]any{
		"version":     version,
		"applied_at":  r.timestamp(),
		"description": description,
	})
	if err != nil {
		return fmt.Errorf("failed to mark migration %s: %w", version, err)
	}
	return nil
}

// DeleteAllEntities removes every entity and its relationships and returns
// how many entities were deleted
func (r *Repository) DeleteAllEntities(ctx context.Context) (int64, error) {
	rows, err := r.client.Write(ctx, `
		MATCH (n:Entity)
		DETACH DELETE n
		RETURN count(n) AS deleted
	`, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to delete entities: %w", err)
	}

	var deleted int64
	if len(rows) > 0 {
		deleted = getInt64FromRow(rows[0], "deleted")
	}
	r.logger.Info("All entities deleted", zap.Int64("deleted", deleted))
	return deleted, nil
}
