package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	content    string
	err        error
	lastSystem string
	lastUser   string
}

func (f *fakeGenerator) Generate(ctx context.Context, systemPrompt, userMsg string) (string, error) {
	f.lastSystem = systemPrompt
	f.lastUser = userMsg
	return f.content, f.err
}

func TestLLMRecognizer_ParsesFencedJSON(t *testing.T) {
	gen := &fakeGenerator{content: "```json\n[{\"text\": \"Ada Lovelace\", \"label\": \"person\"}, {\"text\": \"London\", \"label\": \"LOCATION\"}]\n```"}
	recognizer := NewLLMRecognizer(gen, nil)

	spans, err := recognizer.Recognize(context.Background(), "Ada Lovelace lived in London")

	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace lived in London", gen.lastUser)
	assert.Equal(t, recognizerPrompt, gen.lastSystem)
	require.Len(t, spans, 2)
	assert.Equal(t, Span{Text: "Ada Lovelace", Label: "PERSON", Start: 0, End: 12}, spans[0])
	assert.Equal(t, Span{Text: "London", Label: "LOCATION", Start: 22, End: 28}, spans[1])
}

func TestLLMRecognizer_DropsHallucinatedSpans(t *testing.T) {
	gen := &fakeGenerator{content: `[{"text": "Paris", "label": "LOCATION"}, {"text": "Berlin", "label": "LOCATION"}, {"text": "", "label": "X"}]`}

	spans, err := NewLLMRecognizer(gen, nil).Recognize(context.Background(), "I visited Paris")

	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, "Paris", spans[0].Text)
	assert.Equal(t, 10, spans[0].Start)
}

func TestLLMRecognizer_Errors(t *testing.T) {
	_, err := NewLLMRecognizer(&fakeGenerator{err: errors.New("timeout")}, nil).Recognize(context.Background(), "Paris")
	assert.Error(t, err)

	_, err = NewLLMRecognizer(&fakeGenerator{content: "no entities found"}, nil).Recognize(context.Background(), "Paris")
	assert.Error(t, err)

	_, err = NewLLMRecognizer(&fakeGenerator{content: "[not json]"}, nil).Recognize(context.Background(), "Paris")
	assert.Error(t, err)
}

func TestLLMRecognizer_BlankTextSkipsModel(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("should not be called")}

	spans, err := NewLLMRecognizer(gen, nil).Recognize(context.Background(), "   ")

	require.NoError(t, err)
	assert.Empty(t, spans)
	assert.Empty(t, gen.lastUser)
}

func TestLLMRecognizer_ErrorDegradesExtractor(t *testing.T) {
	gen := &fakeGenerator{content: "garbage"}
	extractor := NewExtractor(NewLLMRecognizer(gen, nil), nil)

	result := extractor.Extract(context.Background(), "Machine Learning is a subset of Artificial Intelligence")

	assert.Equal(t, StrategyLLM, extractor.Strategy())
	require.Len(t, result.Entities, 2)
	assert.Equal(t, LabelConcept, result.Entities[0].Label)
}
