package graph

// CommonLabel is carried by every entity node regardless of its type label
const CommonLabel = "Entity"

// Reserved property keys. The upsert engine owns id, name and type; the
// orchestrator writes confidence, source and extracted_at.
const (
	PropID          = "id"
	PropName        = "name"
	PropType        = "type"
	PropConfidence  = "confidence"
	PropSource      = "source"
	PropExtractedAt = "extracted_at"
	PropCreatedAt   = "created_at"
	PropUpdatedAt   = "updated_at"
)

// Entity is a semantic unit extracted from text
type Entity struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// Node is an entity node as read back from the store
type Node struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
}

// Relationship is a directed, typed edge between two entities
type Relationship struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	StartNodeID string         `json:"start_node_id"`
	EndNodeID   string         `json:"end_node_id"`
	Properties  map[string]any `json:"properties"`
}

// GraphSnapshot is a bounded read projection. Relationships may reference
// nodes outside Nodes because both sides are limited independently.
type GraphSnapshot struct {
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`
}

// EntityMatch is a single search hit
type EntityMatch struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// Connection pairs an edge with the node on its other end
type Connection struct {
	Relationship Relationship `json:"relationship"`
	Node         Node         `json:"node"`
}

// ConnectionSet is an entity with its incoming and outgoing edges. Entity is
// nil when the id is unknown.
type ConnectionSet struct {
	EntityID string       `json:"entity_id"`
	Entity   *Node        `json:"entity"`
	Outgoing []Connection `json:"outgoing"`
	Incoming []Connection `json:"incoming"`
}

// Stats summarizes the graph
type Stats struct {
	TotalEntities      int64    `json:"total_entities"`
	TotalRelationships int64    `json:"total_relationships"`
	EntityTypes        []string `json:"entity_types"`
}
