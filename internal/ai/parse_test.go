package ai

import (
	"math"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain json",
			input: `{"score": 80}`,
			want:  `{"score": 80}`,
		},
		{
			name:  "fenced json",
			input: "```json\n{\"score\": 80}\n```",
			want:  `{"score": 80}`,
		},
		{
			name:  "fenced without language",
			input: "```\n{\"score\": 80}\n```",
			want:  `{"score": 80}`,
		},
		{
			name:  "surrounding whitespace",
			input: "  \n{\"a\":1}\n ",
			want:  `{"a":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.input); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDecodeLooseJSON(t *testing.T) {
	data, err := DecodeLooseJSON("```json\n{\"fit\": \"yes\", \"score\": \"85\"}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !CoerceBool(data["fit"]) {
		t.Fatalf("expected fit to coerce to true")
	}
	if got := CoerceFloat(data["score"]); got != 85 {
		t.Fatalf("expected score 85, got %v", got)
	}

	if _, err := DecodeLooseJSON("not json"); err == nil {
		t.Fatalf("expected error for invalid json")
	}
}

func TestCoerceFloatNaN(t *testing.T) {
	if got := CoerceFloat(nil); !math.IsNaN(got) {
		t.Fatalf("expected NaN for nil, got %v", got)
	}
	if got := CoerceFloat("not-a-number"); !math.IsNaN(got) {
		t.Fatalf("expected NaN for garbage, got %v", got)
	}
}

func TestCoerceStringSlice(t *testing.T) {
	got := CoerceStringSlice([]any{" Go ", "", 42})
	if len(got) != 2 || got[0] != "Go" || got[1] != "42" {
		t.Fatalf("unexpected slice: %v", got)
	}

	if got := CoerceStringSlice("single"); len(got) != 1 || got[0] != "single" {
		t.Fatalf("unexpected scalar coercion: %v", got)
	}

	if got := CoerceStringSlice(nil); got != nil {
		t.Fatalf("expected nil for nil input, got %v", got)
	}
}
