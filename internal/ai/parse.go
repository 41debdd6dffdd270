package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ExtractJSON strips markdown code fences around a model response so the
// remainder can be passed to the JSON decoder.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

// DecodeLooseJSON unmarshals a model response into a generic map, tolerating
// surrounding code fences.
func DecodeLooseJSON(raw string) (map[string]any, error) {
	cleaned := ExtractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}
	return data, nil
}

// CoerceBool interprets loosely typed truthy values returned by models.
func CoerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "yes"
	case float64:
		return val != 0
	default:
		return false
	}
}

// CoerceFloat interprets loosely typed numeric values returned by models.
// NaN is returned when the value cannot be interpreted.
func CoerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// CoerceString renders a loosely typed value as a trimmed string.
func CoerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

// CoerceStringSlice renders a loosely typed value as a slice of trimmed
// strings, accepting both arrays and scalar values.
func CoerceStringSlice(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := CoerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case nil:
		return nil
	default:
		if s := CoerceString(v); s != "" {
			return []string{s}
		}
		return nil
	}
}
