package graph

import (
	"strings"
)

// ============================================================================
// Helper Functions
// ============================================================================

func getStringFromRow(row Row, key string) string {
	return getStringFromMap(row, key, "")
}

func getInt64FromRow(row Row, key string) int64 {
	val, ok := row[key]
	if !ok || val == nil {
		return 0
	}
	switch i := val.(type) {
	case int64:
		return i
	case int:
		return int64(i)
	case float64:
		return int64(i)
	}
	return 0
}

func getStringSliceFromRow(row Row, key string) []string {
	return toStringSlice(row[key])
}

func getMapFromRow(row Row, key string) map[string]any {
	return toMap(row[key])
}

func getStringFromMap(m map[string]any, key, defaultValue string) string {
	val, ok := m[key]
	if !ok || val == nil {
		return defaultValue
	}
	if str, ok := val.(string); ok {
		return str
	}
	return defaultValue
}

func toStringSlice(val any) []string {
	switch slice := val.(type) {
	case []string:
		return slice
	case []any:
		result := make([]string, 0, len(slice))
		for _, v := range slice {
			if str, ok := v.(string); ok {
				result = append(result, str)
			}
		}
		return result
	}
	return []string{}
}

func toMap(val any) map[string]any {
	if m, ok := val.(map[string]any); ok && m != nil {
		return m
	}
	return map[string]any{}
}

func toMapSlice(val any) []map[string]any {
	items, ok := val.([]any)
	if !ok {
		return nil
	}
	result := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			result = append(result, m)
		}
	}
	return result
}

// firstLine returns the first non-blank line of a query for error messages
func firstLine(query string) string {
	for _, line := range strings.Split(query, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
