package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "knowledge-agent/backend/pkg/errors"
)

func TestEntityID(t *testing.T) {
	tests := []struct {
		name       string
		entityType string
		entityName string
		want       string
	}{
		{"simple", "CONCEPT", "Paris", "concept_paris"},
		{"multi word", "CONCEPT", "Machine Learning", "concept_machine_learning"},
		{"date", "DATE", "12/05/2024", "date_12/05/2024"},
		{"tabs and newlines", "CONCEPT", "Deep\tLearning\nModels", "concept_deep_learning_models"},
		{"space in type", "WORK OF ART", "Mona Lisa", "work_of_art_mona_lisa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EntityID(tt.entityType, tt.entityName))
		})
	}
}

func TestEntityID_CaseInsensitive(t *testing.T) {
	assert.Equal(t,
		EntityID("CONCEPT", "Machine Learning"),
		EntityID("CONCEPT", "machine learning"),
	)
}

func TestEntityID_NotSynonymAware(t *testing.T) {
	assert.NotEqual(t, EntityID("CONCEPT", "ML"), EntityID("CONCEPT", "Machine Learning"))
}

func TestQuoteLabel(t *testing.T) {
	quoted, err := quoteLabel("CONCEPT")
	require.NoError(t, err)
	assert.Equal(t, "`CONCEPT`", quoted)

	quoted, err = quoteLabel("bad`label")
	require.NoError(t, err)
	assert.Equal(t, "`bad``label`", quoted)

	_, err = quoteLabel("  ")
	var invalid *apperrors.ErrInvalidLabel
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "  ", invalid.Label)
}
