package extraction

import (
	"context"

	apperrors "knowledge-agent/backend/pkg/errors"
	"knowledge-agent/backend/pkg/logger"
	"go.uber.org/zap"
)

// StrategyPattern names the built-in regex strategy
const StrategyPattern = "pattern"

// Extractor turns text into entity and relationship candidates. Entities come
// from the configured Recognizer, or from PatternEntities when there is none.
type Extractor struct {
	recognizer Recognizer
	logger     *zap.Logger
}

// NewExtractor creates an extractor. A nil recognizer selects the pattern
// strategy.
func NewExtractor(recognizer Recognizer, log *zap.Logger) *Extractor {
	log = logger.OrNop(log)
	if recognizer == nil {
		log.Warn("No NLP recognizer loaded, using pattern extraction")
	}
	return &Extractor{
		recognizer: recognizer,
		logger:     log,
	}
}

// Strategy reports which entity strategy is active
func (e *Extractor) Strategy() string {
	if e.recognizer == nil {
		return StrategyPattern
	}
	return e.recognizer.Name()
}

// Extract runs entity and relationship extraction over text. It never fails:
// a recognizer error degrades this call to pattern extraction.
func (e *Extractor) Extract(ctx context.Context, text string) Result {
	return Result{
		Entities:      e.extractEntities(ctx, text),
		Relationships: ExtractRelationships(text),
	}
}

func (e *Extractor) extractEntities(ctx context.Context, text string) []EntityCandidate {
	if e.recognizer == nil {
		return PatternEntities(text)
	}

	spans, err := e.recognizer.Recognize(ctx, text)
	if err != nil {
		e.logger.Warn("Entity recognition failed",
			zap.Error(apperrors.NewExtractionDegraded(e.recognizer.Name(), err)),
		)
		return PatternEntities(text)
	}

	entities := make([]EntityCandidate, 0, len(spans))
	for _, span := range spans {
		entities = append(entities, EntityCandidate{
			Text:       span.Text,
			Label:      span.Label,
			Start:      span.Start,
			End:        span.End,
			Confidence: ConfidenceRecognizer,
		})
	}
	return entities
}
