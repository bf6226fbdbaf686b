package extraction

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// The entity patterns are anchored and matched at each word start. RE2's \b
// only knows ASCII, so word boundaries are checked by wordStart and wordEnd,
// which count letters and digits from every script as word characters.
var (
	// Runs of capitalized words, e.g. "Machine Learning"
	conceptPattern = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*`)
	// Day-first or year-first dates with / or - separators
	datePattern = regexp.MustCompile(`^(?:\p{Nd}{1,2}[/-]\p{Nd}{1,2}[/-]\p{Nd}{2,4}|\p{Nd}{4}[/-]\p{Nd}{1,2}[/-]\p{Nd}{1,2})`)
)

// PatternEntities is the fallback entity strategy. It cannot fail. Concepts
// come first, then dates; every match is kept. Offsets come from the first
// occurrence of the matched text, so a repeated phrase reports the span of
// its first appearance each time.
func PatternEntities(text string) []EntityCandidate {
	entities := []EntityCandidate{}
	entities = appendPatternMatches(entities, text, findWholeWords(text, conceptPattern, true), LabelConcept, ConfidenceConcept)
	entities = appendPatternMatches(entities, text, findWholeWords(text, datePattern, false), LabelDate, ConfidenceDate)
	return entities
}

func appendPatternMatches(entities []EntityCandidate, text string, matches []string, label string, confidence float64) []EntityCandidate {
	for _, match := range matches {
		start := strings.Index(text, match)
		entities = append(entities, EntityCandidate{
			Text:       match,
			Label:      label,
			Start:      start,
			End:        start + len(match),
			Confidence: confidence,
		})
	}
	return entities
}

// findWholeWords returns the non-overlapping matches of an anchored pattern
// that begin and end on word boundaries, left to right. With dropWords set, a
// match that runs into a word character gives up trailing words until it
// ends on a boundary.
func findWholeWords(text string, pattern *regexp.Regexp, dropWords bool) []string {
	var matches []string
	for i := 0; i < len(text); {
		if end := matchWholeWord(text, i, pattern, dropWords); end > i {
			matches = append(matches, text[i:end])
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return matches
}

// matchWholeWord returns the end of the match at i, or -1
func matchWholeWord(text string, i int, pattern *regexp.Regexp, dropWords bool) int {
	if !wordStart(text, i) {
		return -1
	}
	loc := pattern.FindStringIndex(text[i:])
	if loc == nil {
		return -1
	}

	end := i + loc[1]
	for !wordEnd(text, end) {
		if !dropWords {
			return -1
		}
		cut := strings.LastIndexFunc(text[i:end], unicode.IsSpace)
		if cut < 0 {
			return -1
		}
		end = i + len(strings.TrimRightFunc(text[i:i+cut], unicode.IsSpace))
	}
	return end
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// wordStart reports whether a word could begin at i
func wordStart(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

// wordEnd reports whether a word could end at i
func wordEnd(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

type relationPattern struct {
	pattern *regexp.Regexp
	relType string
}

// Each pattern binds exactly two single-word captures. Words may use any
// script.
var relationPatterns = []relationPattern{
	{regexp.MustCompile(`(?i)([\p{L}\p{N}_]+)\s+is\s+(?:a|an)\s+([\p{L}\p{N}_]+)`), RelIsA},
	{regexp.MustCompile(`(?i)([\p{L}\p{N}_]+)\s+relates\s+to\s+([\p{L}\p{N}_]+)`), RelRelatesTo},
	{regexp.MustCompile(`(?i)([\p{L}\p{N}_]+)\s+connects\s+to\s+([\p{L}\p{N}_]+)`), RelConnectsTo},
	{regexp.MustCompile(`(?i)([\p{L}\p{N}_]+)\s+influences\s+([\p{L}\p{N}_]+)`), RelInfluences},
	{regexp.MustCompile(`(?i)([\p{L}\p{N}_]+)\s+causes\s+([\p{L}\p{N}_]+)`), RelCauses},
	{regexp.MustCompile(`(?i)([\p{L}\p{N}_]+)\s+depends\s+on\s+([\p{L}\p{N}_]+)`), RelDependsOn},
}

// ExtractRelationships runs the lexical relation patterns over raw text.
// Results are ordered by pattern, then by position.
func ExtractRelationships(text string) []RelationshipCandidate {
	relationships := []RelationshipCandidate{}
	for _, rp := range relationPatterns {
		for _, match := range rp.pattern.FindAllStringSubmatch(text, -1) {
			relationships = append(relationships, RelationshipCandidate{
				StartEntity: match[1],
				EndEntity:   match[2],
				Type:        rp.relType,
				Confidence:  ConfidenceRelationship,
			})
		}
	}
	return relationships
}
