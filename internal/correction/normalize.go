package correction

import (
	"encoding/json"
	"regexp"
	"strings"
)

var trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

// extractJSONBlock pulls the JSON payload out of raw model text. Models
// often wrap it in a ```json fence, sometimes a bare ``` fence, sometimes
// nothing. An unclosed fence yields everything after the marker.
func extractJSONBlock(text string) string {
	if _, after, found := strings.Cut(text, "```json"); found {
		block, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(block)
	}
	if _, after, found := strings.Cut(text, "```"); found {
		block, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(block)
	}
	return strings.TrimSpace(text)
}

// parseModelJSON normalizes raw model output into a generic JSON object.
// Strict parse first, then one repair pass that strips trailing commas
// before } or ]. If both fail the MalformedResponseError carries the
// strict parse error.
func parseModelJSON(raw string) (map[string]any, error) {
	text := extractJSONBlock(raw)

	var payload map[string]any
	err := json.Unmarshal([]byte(text), &payload)
	if err == nil {
		return payload, nil
	}

	repaired := trailingCommaRe.ReplaceAllString(text, "$1")
	var repairedPayload map[string]any
	if repairErr := json.Unmarshal([]byte(repaired), &repairedPayload); repairErr == nil {
		return repairedPayload, nil
	}
	return nil, &MalformedResponseError{Err: err}
}

// The model does not always honor the response schema, so every key is
// read defensively: missing or wrong-typed values fall back to zero
// values instead of failing the whole verdict.

func stringField(payload map[string]any, key string) string {
	if s, ok := payload[key].(string); ok {
		return s
	}
	return ""
}

func optionalStringField(payload map[string]any, key string) *string {
	if s, ok := payload[key].(string); ok {
		return &s
	}
	return nil
}

func boolField(payload map[string]any, key string) bool {
	if b, ok := payload[key].(bool); ok {
		return b
	}
	return false
}

func floatField(payload map[string]any, key string) float64 {
	if f, ok := payload[key].(float64); ok {
		return f
	}
	return 0
}

func intField(payload map[string]any, key string) int {
	if f, ok := payload[key].(float64); ok {
		return int(f)
	}
	return 0
}

func stringSliceField(payload map[string]any, key string) []string {
	raw, ok := payload[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
