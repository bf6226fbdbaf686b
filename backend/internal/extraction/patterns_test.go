package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternEntities_CapitalizedPhrases(t *testing.T) {
	text := "Machine Learning is a subset of Artificial Intelligence"

	entities := PatternEntities(text)

	require.Len(t, entities, 2)
	assert.Equal(t, EntityCandidate{Text: "Machine Learning", Label: LabelConcept, Start: 0, End: 16, Confidence: 0.8}, entities[0])
	assert.Equal(t, EntityCandidate{Text: "Artificial Intelligence", Label: LabelConcept, Start: 32, End: 55, Confidence: 0.8}, entities[1])
}

func TestPatternEntities_Dates(t *testing.T) {
	text := "we met on 12/05/2024 and again on 2024-06-01"

	entities := PatternEntities(text)

	require.Len(t, entities, 2)
	assert.Equal(t, "12/05/2024", entities[0].Text)
	assert.Equal(t, LabelDate, entities[0].Label)
	assert.Equal(t, 0.9, entities[0].Confidence)
	assert.Equal(t, "2024-06-01", entities[1].Text)
	assert.Equal(t, 34, entities[1].Start)
}

func TestPatternEntities_ConceptsBeforeDates(t *testing.T) {
	entities := PatternEntities("1/2/24 was when Paris happened")

	require.Len(t, entities, 2)
	assert.Equal(t, LabelConcept, entities[0].Label)
	assert.Equal(t, "Paris", entities[0].Text)
	assert.Equal(t, LabelDate, entities[1].Label)
	assert.Equal(t, "1/2/24", entities[1].Text)
}

// Offsets come from the first occurrence, so a repeated phrase reports the
// first span both times and nothing is deduplicated.
func TestPatternEntities_RepeatedPhraseKeepsFirstOffset(t *testing.T) {
	text := "Paris is nice. I love Paris."

	entities := PatternEntities(text)

	require.Len(t, entities, 2)
	assert.Equal(t, "Paris", entities[0].Text)
	assert.Equal(t, "Paris", entities[1].Text)
	assert.Equal(t, 0, entities[0].Start)
	assert.Equal(t, 0, entities[1].Start, "second Paris reports the first occurrence")
	assert.Equal(t, 5, entities[1].End)
}

func TestPatternEntities_NoMatches(t *testing.T) {
	assert.Empty(t, PatternEntities(""))
	assert.Empty(t, PatternEntities("nothing capitalized here, no dates either"))
	// all-caps and single letters do not match the [A-Z][a-z]+ shape
	assert.Empty(t, PatternEntities("NASA and I"))
}

func TestPatternEntities_UnicodeWordBoundaries(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"accented word is not cut", "We visited Café Society", []string{"We", "Society"}},
		{"phrase gives up a trailing partial word", "Visit Le Café today", []string{"Visit Le"}},
		{"umlaut inside a word", "Zürich and München", nil},
		{"non-Latin script", "東京 is a city", nil},
		{"date glued to a letter", "vé12/05/2024 and 12/05/2024ü", nil},
		{"non-ASCII digits", "on ١٢/٠٥/٢٠٢٤ we met", []string{"١٢/٠٥/٢٠٢٤"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, e := range PatternEntities(tt.text) {
				got = append(got, e.Text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractRelationships_TokenLevel(t *testing.T) {
	rels := ExtractRelationships("Machine Learning is a subset of Artificial Intelligence")

	require.Len(t, rels, 1)
	assert.Equal(t, RelationshipCandidate{
		StartEntity: "Learning",
		EndEntity:   "subset",
		Type:        RelIsA,
		Confidence:  0.7,
	}, rels[0])
}

func TestExtractRelationships_AllPatterns(t *testing.T) {
	tests := []struct {
		text  string
		start string
		end   string
		typ   string
	}{
		{"Python is an language", "Python", "language", RelIsA},
		{"Physics relates to Math", "Physics", "Math", RelRelatesTo},
		{"Road connects to Town", "Road", "Town", RelConnectsTo},
		{"Weather influences Mood", "Weather", "Mood", RelInfluences},
		{"Smoking causes Cancer", "Smoking", "Cancer", RelCauses},
		{"App depends on Database", "App", "Database", RelDependsOn},
		{"STRESS CAUSES fatigue", "STRESS", "fatigue", RelCauses},
	}

	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.text, func(t *testing.T) {
			rels := ExtractRelationships(tt.text)
			require.Len(t, rels, 1)
			assert.Equal(t, tt.start, rels[0].StartEntity)
			assert.Equal(t, tt.end, rels[0].EndEntity)
			assert.Equal(t, tt.typ, rels[0].Type)
		})
	}
}

func TestExtractRelationships_UnicodeTokens(t *testing.T) {
	tests := []struct {
		text  string
		start string
		end   string
	}{
		{"Zürich influences Bern", "Zürich", "Bern"},
		{"Kaffee causes Müdigkeit", "Kaffee", "Müdigkeit"},
		{"東京 is a 都市", "東京", "都市"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			rels := ExtractRelationships(tt.text)
			require.Len(t, rels, 1)
			assert.Equal(t, tt.start, rels[0].StartEntity)
			assert.Equal(t, tt.end, rels[0].EndEntity)
		})
	}
}

func TestExtractRelationships_OrderedByPattern(t *testing.T) {
	rels := ExtractRelationships("Rain causes Floods. Cat is a Mammal. Dog is an Animal.")

	require.Len(t, rels, 3)
	assert.Equal(t, RelIsA, rels[0].Type)
	assert.Equal(t, "Cat", rels[0].StartEntity)
	assert.Equal(t, RelIsA, rels[1].Type)
	assert.Equal(t, "Dog", rels[1].StartEntity)
	assert.Equal(t, RelCauses, rels[2].Type)
}

func TestExtractRelationships_None(t *testing.T) {
	assert.Empty(t, ExtractRelationships(""))
	assert.Empty(t, ExtractRelationships("nothing to see"))
}
