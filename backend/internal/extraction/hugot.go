package extraction

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"knowledge-agent/backend/pkg/logger"
	"go.uber.org/zap"
)

// StrategyHugot names the ONNX NER strategy
const StrategyHugot = "hugot"

// HugotRecognizer runs a token classification (NER) model through hugot's
// pure Go backend
type HugotRecognizer struct {
	session  *hugot.Session
	pipeline *pipelines.TokenClassificationPipeline
	mu       sync.Mutex
	logger   *zap.Logger
}

// NewHugotRecognizer loads modelName from modelDir, downloading it from
// Hugging Face on first use
func NewHugotRecognizer(modelName, modelDir string, log *zap.Logger) (*HugotRecognizer, error) {
	log = logger.OrNop(log)

	modelPath, err := prepareModel(modelName, modelDir, log)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	config := hugot.TokenClassificationConfig{
		ModelPath: modelPath,
		Name:      "ner-pipeline",
		Options: []hugot.TokenClassificationOption{
			pipelines.WithSimpleAggregation(),
			pipelines.WithIgnoreLabels([]string{"O"}),
		},
	}
	nerPipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create NER pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create NER pipeline: %w", err)
	}

	log.Info("NER model loaded",
		zap.String("model", modelName),
		zap.String("path", modelPath),
	)

	return &HugotRecognizer{
		session:  session,
		pipeline: nerPipeline,
		logger:   log,
	}, nil
}

// Name implements Recognizer
func (h *HugotRecognizer) Name() string {
	return StrategyHugot
}

// Recognize implements Recognizer
func (h *HugotRecognizer) Recognize(ctx context.Context, text string) ([]Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []Span{}, nil
	}

	h.mu.Lock()
	result, err := h.pipeline.RunPipeline([]string{text})
	h.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to run NER: %w", err)
	}

	spans := []Span{}
	if len(result.Entities) == 0 {
		return spans, nil
	}
	for _, entity := range result.Entities[0] {
		spans = append(spans, Span{
			Text:  strings.TrimSpace(entity.Word),
			Label: normalizeEntityType(entity.Entity),
			Start: int(entity.Start),
			End:   int(entity.End),
		})
	}
	return spans, nil
}

// Close releases the hugot session
func (h *HugotRecognizer) Close() error {
	return h.session.Destroy()
}

// normalizeEntityType removes B- and I- prefixes from NER labels
func normalizeEntityType(label string) string {
	if strings.HasPrefix(label, "B-") || strings.HasPrefix(label, "I-") {
		return label[2:]
	}
	return label
}

// prepareModel downloads the model if it is not cached yet and returns its path
func prepareModel(modelName, modelDir string, log *zap.Logger) (string, error) {
	modelPath := filepath.Join(modelDir, strings.ReplaceAll(modelName, "/", "_"))
	if _, err := os.Stat(modelPath); err == nil {
		return modelPath, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to stat model directory: %w", err)
	}

	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}

	log.Info("Downloading NER model", zap.String("model", modelName))
	downloadedPath, err := hugot.DownloadModel(modelName, modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("failed to download model: %w", err)
	}
	return downloadedPath, nil
}
