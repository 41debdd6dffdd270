package openai

import (
	"context"
	"testing"
)

func TestNewClientRequiresKeyOrBaseURL(t *testing.T) {
	if _, err := NewClient(Config{}, nil); err == nil {
		t.Fatalf("expected error without api key and base url")
	}
}

func TestNewClientBaseURLOnly(t *testing.T) {
	// An OpenAI-compatible local server needs no api key.
	client, err := NewClient(Config{BaseURL: "http://localhost:11434/v1", Model: "llama3"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != "llama3" {
		t.Fatalf("unexpected model: %q", client.Model())
	}
}

func TestNewClientDefaultModel(t *testing.T) {
	client, err := NewClient(Config{APIKey: "test-key"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != defaultModel {
		t.Fatalf("expected default model %q, got %q", defaultModel, client.Model())
	}
}

func TestGenerateContentRejectsEmptyPrompt(t *testing.T) {
	client, err := NewClient(Config{APIKey: "test-key"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.GenerateContent(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty prompt")
	}
}
