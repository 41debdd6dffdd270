package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFileTakesPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  file-secret \n"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}

	got, err := Load(Source{Name: "api key", File: path, Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "file-secret" {
		t.Fatalf("expected trimmed file secret, got %q", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SCREENER_TEST_KEY", " env-secret ")

	got, err := Load(Source{Name: "api key", Env: "SCREENER_TEST_KEY"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "env-secret" {
		t.Fatalf("expected env secret, got %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(Source{Name: "api key"}); err == nil {
		t.Fatalf("expected error for empty source")
	}

	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, []byte("   "), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}
	if _, err := Load(Source{Name: "api key", File: path}); err == nil {
		t.Fatalf("expected error for empty file")
	}

	if _, err := Load(Source{Name: "api key", File: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
