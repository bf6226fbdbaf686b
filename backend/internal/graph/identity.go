package graph

import (
	"strings"
	"unicode"

	apperrors "knowledge-agent/backend/pkg/errors"
)

// EntityID derives the stable identifier for an entity. It is case and
// whitespace normalized only: different surface forms of the same thing get
// different ids.
func EntityID(entityType, name string) string {
	id := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, entityType+"_"+name)
	return strings.ToLower(id)
}

// quoteLabel makes a label or relationship type safe to splice into Cypher.
// Labels cannot be query parameters, so they are backtick-quoted instead.
func quoteLabel(label string) (string, error) {
	if strings.TrimSpace(label) == "" {
		return "", apperrors.NewInvalidLabel(label, "must not be blank")
	}
	if strings.ContainsRune(label, 0) {
		return "", apperrors.NewInvalidLabel(label, "must not contain NUL")
	}
	return "`" + strings.ReplaceAll(label, "`", "``") + "`", nil
}
