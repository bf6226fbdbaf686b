package graph

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// ============================================================================
// Graph Projection Operations
// ============================================================================

// GetGraph returns up to limit nodes and, independently, up to limit
// relationships. The two reads run concurrently.
func (r *Repository) GetGraph(ctx context.Context, limit int) (*GraphSnapshot, error) {
	if limit < 1 {
		limit = DefaultGraphLimit
	}
	params := map[string]any{"limit": int64(limit)}

	snapshot := &GraphSnapshot{
		Nodes:         []Node{},
		Relationships: []Relationship{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := r.client.Read(gctx, `
			MATCH (n:Entity)
			RETURN n.id AS id, labels(n) AS labels, properties(n) AS properties
			ORDER BY n.id
			LIMIT $limit
		`, params)
		if err != nil {
			return fmt.Errorf("failed to read nodes: %w", err)
		}
		for _, row := range rows {
			snapshot.Nodes = append(snapshot.Nodes, Node{
				ID:         getStringFromRow(row, "id"),
				Labels:     getStringSliceFromRow(row, "labels"),
				Properties: getMapFromRow(row, "properties"),
			})
		}
		return nil
	})

	g.Go(func() error {
		rows, err := r.client.Read(gctx, `
			MATCH (a:Entity)-[r]->(b:Entity)
			RETURN elementId(r) AS id, type(r) AS type,
			       a.id AS start_node_id, b.id AS end_node_id,
			       properties(r) AS properties
			ORDER BY a.id, type(r), b.id
			LIMIT $limit
		`, params)
		if err != nil {
			return fmt.Errorf("failed to read relationships: %w", err)
		}
		for _, row := range rows {
			snapshot.Relationships = append(snapshot.Relationships, Relationship{
				ID:          getStringFromRow(row, "id"),
				Type:        getStringFromRow(row, "type"),
				StartNodeID: getStringFromRow(row, "start_node_id"),
				EndNodeID:   getStringFromRow(row, "end_node_id"),
				Properties:  getMapFromRow(row, "properties"),
			})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// GetStats counts entities and relationships and lists the type labels in use.
// The undirected match sees every edge between two nodes once from each
// endpoint, so that count is halved. Self-loops are counted apart, once each.
func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	query := `
		MATCH (n:Entity)
		OPTIONAL MATCH (n)-[r]-(m)
		RETURN count(DISTINCT n) AS total_entities,
		       count(CASE WHEN m <> n THEN r END) AS total_relationships,
		       count(DISTINCT CASE WHEN m = n THEN r END) AS self_loops,
		       collect(DISTINCT labels(n)) AS entity_types
	`

	rows, err := r.client.Read(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get graph stats: %w", err)
	}

	stats := &Stats{EntityTypes: []string{}}
	if len(rows) == 0 {
		return stats, nil
	}

	row := rows[0]
	stats.TotalEntities = getInt64FromRow(row, "total_entities")
	stats.TotalRelationships = getInt64FromRow(row, "total_relationships")/2 + getInt64FromRow(row, "self_loops")

	seen := make(map[string]bool)
	for _, labels := range toAnySlice(row["entity_types"]) {
		for _, label := range toStringSlice(labels) {
			if label == CommonLabel || seen[label] {
				continue
			}
			seen[label] = true
			stats.EntityTypes = append(stats.EntityTypes, label)
		}
	}
	sort.Strings(stats.EntityTypes)

	return stats, nil
}

func toAnySlice(val any) []any {
	if items, ok := val.([]any); ok {
		return items
	}
	return nil
}
