package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecognizer struct {
	spans []Span
	err   error
	calls int
}

func (f *fakeRecognizer) Name() string { return "fake" }

func (f *fakeRecognizer) Recognize(ctx context.Context, text string) ([]Span, error) {
	f.calls++
	return f.spans, f.err
}

func TestExtractor_PatternFallbackWithoutRecognizer(t *testing.T) {
	extractor := NewExtractor(nil, nil)

	result := extractor.Extract(context.Background(), "Machine Learning is a subset of Artificial Intelligence")

	assert.Equal(t, StrategyPattern, extractor.Strategy())
	require.Len(t, result.Entities, 2)
	assert.Equal(t, "Machine Learning", result.Entities[0].Text)
	assert.Equal(t, "Artificial Intelligence", result.Entities[1].Text)
	for _, e := range result.Entities {
		assert.Equal(t, LabelConcept, e.Label)
		assert.Equal(t, 0.8, e.Confidence)
	}
	require.Len(t, result.Relationships, 1)
	assert.Equal(t, RelationshipCandidate{StartEntity: "Learning", EndEntity: "subset", Type: RelIsA, Confidence: 0.7}, result.Relationships[0])
}

func TestExtractor_RecognizerSpansGetFullConfidence(t *testing.T) {
	recognizer := &fakeRecognizer{spans: []Span{
		{Text: "Ada Lovelace", Label: "PERSON", Start: 0, End: 12},
		{Text: "London", Label: "GPE", Start: 22, End: 28},
	}}
	extractor := NewExtractor(recognizer, nil)

	result := extractor.Extract(context.Background(), "Ada Lovelace lived in London")

	assert.Equal(t, "fake", extractor.Strategy())
	assert.Equal(t, 1, recognizer.calls)
	require.Len(t, result.Entities, 2)
	assert.Equal(t, EntityCandidate{Text: "Ada Lovelace", Label: "PERSON", Start: 0, End: 12, Confidence: 1.0}, result.Entities[0])
	assert.Equal(t, "GPE", result.Entities[1].Label)
	assert.Empty(t, result.Relationships)
}

func TestExtractor_RecognizerErrorFallsBackToPatterns(t *testing.T) {
	recognizer := &fakeRecognizer{err: errors.New("model crashed")}
	extractor := NewExtractor(recognizer, nil)

	result := extractor.Extract(context.Background(), "Paris depends on Tourism")

	require.Len(t, result.Entities, 2)
	assert.Equal(t, "Paris", result.Entities[0].Text)
	assert.Equal(t, 0.8, result.Entities[0].Confidence)
	require.Len(t, result.Relationships, 1)
	assert.Equal(t, RelDependsOn, result.Relationships[0].Type)
}

func TestExtractor_EmptyText(t *testing.T) {
	result := NewExtractor(nil, nil).Extract(context.Background(), "")

	assert.Empty(t, result.Entities)
	assert.Empty(t, result.Relationships)
}

func TestNormalizeEntityType(t *testing.T) {
	assert.Equal(t, "PER", normalizeEntityType("B-PER"))
	assert.Equal(t, "ORG", normalizeEntityType("I-ORG"))
	assert.Equal(t, "LOC", normalizeEntityType("LOC"))
}
