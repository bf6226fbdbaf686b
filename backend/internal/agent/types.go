package agent

import "time"

// Sources recorded on extracted entities and relationships
const (
	SourceChat    = "chat"
	SourceDiscord = "discord"
)

// EntityRef identifies an entity touched by a turn
type EntityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// RelationshipRef identifies an edge created by a turn. Endpoints are entity ids.
type RelationshipRef struct {
	StartEntity string `json:"start_entity"`
	EndEntity   string `json:"end_entity"`
	Type        string `json:"type"`
}

// ChatResult is returned for every processed message
type ChatResult struct {
	Response             string            `json:"response"`
	EntitiesExtracted    []EntityRef       `json:"entities_extracted"`
	RelationshipsCreated []RelationshipRef `json:"relationships_created"`
	Timestamp            time.Time         `json:"timestamp"`
}

// ConversationTurn is one request/response pair kept in history
type ConversationTurn struct {
	ID            string            `json:"id"`
	Message       string            `json:"message"`
	Response      string            `json:"response"`
	Entities      []EntityRef       `json:"entities"`
	Relationships []RelationshipRef `json:"relationships"`
	Timestamp     time.Time         `json:"timestamp"`
}
