package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"knowledge-agent/backend/pkg/logger"
	"go.uber.org/zap"
)

// StrategyLLM names the chat-completion NER strategy
const StrategyLLM = "llm"

// Generator is the slice of the LLM adapter the recognizer needs
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userMsg string) (string, error)
}

const recognizerPrompt = `You are a named-entity recognizer.
Return ONLY a JSON array. Each element is {"text": "<exact substring of the input>", "label": "<LABEL>"}.
Use labels such as PERSON, ORG, LOCATION, DATE, EVENT, PRODUCT or CONCEPT.
Copy "text" exactly as it appears in the input. Return [] when there are no entities.`

// LLMRecognizer asks a chat model to label entities
type LLMRecognizer struct {
	generator Generator
	logger    *zap.Logger
}

// NewLLMRecognizer creates a recognizer backed by generator
func NewLLMRecognizer(generator Generator, log *zap.Logger) *LLMRecognizer {
	return &LLMRecognizer{
		generator: generator,
		logger:    logger.OrNop(log),
	}
}

// Name implements Recognizer
func (l *LLMRecognizer) Name() string {
	return StrategyLLM
}

// Recognize implements Recognizer
func (l *LLMRecognizer) Recognize(ctx context.Context, text string) ([]Span, error) {
	if strings.TrimSpace(text) == "" {
		return []Span{}, nil
	}

	content, err := l.generator.Generate(ctx, recognizerPrompt, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate entities: %w", err)
	}

	spans, dropped, err := parseRecognizedEntities(text, content)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		l.logger.Debug("Dropped entities not found in message", zap.Int("dropped", dropped))
	}
	return spans, nil
}

type recognizedEntity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// parseRecognizedEntities decodes the model's JSON array. Entities whose text
// does not occur in the input are dropped; offsets use the first occurrence.
func parseRecognizedEntities(text, content string) ([]Span, int, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end < start {
		return nil, 0, fmt.Errorf("no JSON array in model response")
	}

	var items []recognizedEntity
	if err := json.Unmarshal([]byte(content[start:end+1]), &items); err != nil {
		return nil, 0, fmt.Errorf("failed to parse model response: %w", err)
	}

	spans := make([]Span, 0, len(items))
	dropped := 0
	for _, item := range items {
		label := strings.ToUpper(strings.TrimSpace(item.Label))
		if strings.TrimSpace(item.Text) == "" || label == "" {
			dropped++
			continue
		}
		offset := strings.Index(text, item.Text)
		if offset < 0 {
			dropped++
			continue
		}
		spans = append(spans, Span{
			Text:  item.Text,
			Label: label,
			Start: offset,
			End:   offset + len(item.Text),
		})
	}
	return spans, dropped, nil
}
