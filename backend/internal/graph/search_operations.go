package graph

import (
	"context"
	"fmt"
)

// ============================================================================
// Search Operations
// ============================================================================

// Search returns entities whose name or any property value contains query.
// Matching is case-sensitive.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]EntityMatch, error) {
	if limit < 1 {
		limit = DefaultSearchLimit
	}

	searchQuery := `
		MATCH (n:Entity)
		WHERE n.name CONTAINS $query
		   OR any(prop IN keys(n) WHERE n[prop] CONTAINS $query)
		RETURN n.id AS id, n.name AS name, n.type AS type, properties(n) AS properties
		LIMIT $limit
	`

	rows, err := r.client.Read(ctx, searchQuery, map[string]any{
		"query": query,
		"limit": int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search entities: %w", err)
	}

	results := make([]EntityMatch, 0, len(rows))
	for _, row := range rows {
		results = append(results, EntityMatch{
			ID:         getStringFromRow(row, "id"),
			Name:       getStringFromRow(row, "name"),
			Type:       getStringFromRow(row, "type"),
			Properties: getMapFromRow(row, "properties"),
		})
	}

	return results, nil
}

// GetEntityConnections returns an entity with its outgoing and incoming edges.
// An unknown id yields an empty set rather than an error.
func (r *Repository) GetEntityConnections(ctx context.Context, entityID string) (*ConnectionSet, error) {
	set := &ConnectionSet{
		EntityID: entityID,
		Outgoing: []Connection{},
		Incoming: []Connection{},
	}

	// collect() drops the NULLs produced by unmatched OPTIONAL MATCHes
	query := `
		MATCH (e:Entity {id: $entity_id})
		OPTIONAL MATCH (e)-[r1]->(out)
		WITH e, collect(CASE WHEN r1 IS NULL THEN NULL ELSE {
			id: elementId(r1), type: type(r1), properties: properties(r1),
			node_id: out.id, node_labels: labels(out), node_properties: properties(out)
		} END) AS outgoing
		OPTIONAL MATCH (inc)-[r2]->(e)
		WITH e, outgoing, collect(CASE WHEN r2 IS NULL THEN NULL ELSE {
			id: elementId(r2), type: type(r2), properties: properties(r2),
			node_id: inc.id, node_labels: labels(inc), node_properties: properties(inc)
		} END) AS incoming
		RETURN e.id AS id, labels(e) AS labels, properties(e) AS properties, outgoing, incoming
	`

	rows, err := r.client.Read(ctx, query, map[string]any{"entity_id": entityID})
	if err != nil {
		return nil, fmt.Errorf("failed to get entity connections: %w", err)
	}
	if len(rows) == 0 {
		return set, nil
	}

	row := rows[0]
	set.Entity = &Node{
		ID:         getStringFromRow(row, "id"),
		Labels:     getStringSliceFromRow(row, "labels"),
		Properties: getMapFromRow(row, "properties"),
	}

	for _, m := range toMapSlice(row["outgoing"]) {
		set.Outgoing = append(set.Outgoing, connectionFromMap(m, entityID, true))
	}
	for _, m := range toMapSlice(row["incoming"]) {
		set.Incoming = append(set.Incoming, connectionFromMap(m, entityID, false))
	}

	return set, nil
}

func connectionFromMap(m map[string]any, entityID string, outgoing bool) Connection {
	neighborID := getStringFromMap(m, "node_id", "")

	rel := Relationship{
		ID:         getStringFromMap(m, "id", ""),
		Type:       getStringFromMap(m, "type", ""),
		Properties: toMap(m["properties"]),
	}
	if outgoing {
		rel.StartNodeID, rel.EndNodeID = entityID, neighborID
	} else {
		rel.StartNodeID, rel.EndNodeID = neighborID, entityID
	}

	return Connection{
		Relationship: rel,
		Node: Node{
			ID:         neighborID,
			Labels:     toStringSlice(m["node_labels"]),
			Properties: toMap(m["node_properties"]),
		},
	}
}
