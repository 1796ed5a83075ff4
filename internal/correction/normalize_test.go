package correction

import (
	"errors"
	"testing"
)

func TestParseModelJSONFenced(t *testing.T) {
	raw := "Here is my analysis:\n```json\n{\"correction_needed\": true, \"confidence\": 0.9}\n```\nLet me know if you need more."
	payload, err := parseModelJSON(raw)
	if err != nil {
		t.Fatalf("parseModelJSON returned error: %v", err)
	}
	if payload["correction_needed"] != true {
		t.Fatalf("correction_needed = %v, want true", payload["correction_needed"])
	}
	if payload["confidence"] != 0.9 {
		t.Fatalf("confidence = %v, want 0.9", payload["confidence"])
	}
}

func TestParseModelJSONBareFence(t *testing.T) {
	raw := "```\n{\"a\": 1}\n```"
	payload, err := parseModelJSON(raw)
	if err != nil {
		t.Fatalf("parseModelJSON returned error: %v", err)
	}
	if payload["a"] != 1.0 {
		t.Fatalf("a = %v, want 1", payload["a"])
	}
}

func TestParseModelJSONUnfenced(t *testing.T) {
	payload, err := parseModelJSON(`  {"reasoning": "clean value"}  `)
	if err != nil {
		t.Fatalf("parseModelJSON returned error: %v", err)
	}
	if payload["reasoning"] != "clean value" {
		t.Fatalf("reasoning = %v", payload["reasoning"])
	}
}

func TestParseModelJSONUnclosedFence(t *testing.T) {
	payload, err := parseModelJSON("```json\n{\"a\": 1}")
	if err != nil {
		t.Fatalf("parseModelJSON returned error: %v", err)
	}
	if payload["a"] != 1.0 {
		t.Fatalf("a = %v, want 1", payload["a"])
	}
}

func TestParseModelJSONRepairsTrailingCommas(t *testing.T) {
	payload, err := parseModelJSON(`{"a": 1, "b": [1, 2,],}`)
	if err != nil {
		t.Fatalf("parseModelJSON returned error: %v", err)
	}
	b, ok := payload["b"].([]any)
	if !ok || len(b) != 2 {
		t.Fatalf("b = %v, want two elements", payload["b"])
	}
}

func TestParseModelJSONTruncated(t *testing.T) {
	_, err := parseModelJSON(`{"a": 1, "b": `)
	if err == nil {
		t.Fatal("expected error for truncated JSON")
	}
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %T: %v", err, err)
	}
	if malformed.Unwrap() == nil {
		t.Fatal("MalformedResponseError must carry the original parse error")
	}
}

func TestParseModelJSONNonObject(t *testing.T) {
	_, err := parseModelJSON(`[1, 2, 3]`)
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError for non-object payload, got %v", err)
	}
}

func TestPayloadFieldHelpers(t *testing.T) {
	payload := map[string]any{
		"s":     "text",
		"b":     true,
		"f":     0.5,
		"n":     3.0,
		"wrong": 7,
		"list":  []any{"x", 2, "y"},
	}

	if got := stringField(payload, "s"); got != "text" {
		t.Errorf("stringField = %q", got)
	}
	if got := stringField(payload, "missing"); got != "" {
		t.Errorf("stringField(missing) = %q, want empty", got)
	}
	if got := boolField(payload, "b"); !got {
		t.Error("boolField = false, want true")
	}
	if got := boolField(payload, "s"); got {
		t.Error("boolField on string must be false")
	}
	if got := floatField(payload, "f"); got != 0.5 {
		t.Errorf("floatField = %v", got)
	}
	if got := intField(payload, "n"); got != 3 {
		t.Errorf("intField = %d", got)
	}
	if got := intField(payload, "wrong"); got != 0 {
		t.Errorf("intField on a non-decoded number = %d, want 0", got)
	}
	if got := optionalStringField(payload, "missing"); got != nil {
		t.Errorf("optionalStringField(missing) = %v, want nil", got)
	}
	if got := optionalStringField(payload, "s"); got == nil || *got != "text" {
		t.Errorf("optionalStringField = %v", got)
	}
	if got := stringSliceField(payload, "list"); len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("stringSliceField = %v, want strings only", got)
	}
}
