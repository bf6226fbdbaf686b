package extraction

import "context"

// Entity labels produced by the pattern strategy
const (
	LabelConcept = "CONCEPT"
	LabelDate    = "DATE"
)

// Relationship types produced by the lexical patterns
const (
	RelIsA        = "IS_A"
	RelRelatesTo  = "RELATES_TO"
	RelConnectsTo = "CONNECTS_TO"
	RelInfluences = "INFLUENCES"
	RelCauses     = "CAUSES"
	RelDependsOn  = "DEPENDS_ON"
)

// Confidence scores per source
const (
	ConfidenceRecognizer   = 1.0
	ConfidenceConcept      = 0.8
	ConfidenceDate         = 0.9
	ConfidenceRelationship = 0.7
)

// Span is one recognized entity mention. Offsets are whatever the recognizer
// reports; the pattern strategy uses byte offsets.
type Span struct {
	Text  string
	Label string
	Start int
	End   int
}

// Recognizer is a pluggable NLP entity recognizer
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, text string) ([]Span, error)
}

// EntityCandidate is an extracted entity before it is stored
type EntityCandidate struct {
	Text       string  `json:"text"`
	Label      string  `json:"label"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

// RelationshipCandidate is an extracted edge between two surface tokens
type RelationshipCandidate struct {
	StartEntity string  `json:"start_entity"`
	EndEntity   string  `json:"end_entity"`
	Type        string  `json:"relationship_type"`
	Confidence  float64 `json:"confidence"`
}

// Result holds everything extracted from one text
type Result struct {
	Entities      []EntityCandidate
	Relationships []RelationshipCandidate
}
