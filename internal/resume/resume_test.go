package resume

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseTxt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(path, []byte(sampleResume), 0o644); err != nil {
		t.Fatalf("writing resume: %v", err)
	}

	profile, err := Parse(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.Name != "John Carter" {
		t.Fatalf("unexpected name: %q", profile.Name)
	}
	if len(profile.Skills) == 0 {
		t.Fatalf("expected skills to be extracted")
	}
	if len(profile.Experience) != 2 {
		t.Fatalf("expected 2 experience entries, got %d", len(profile.Experience))
	}
	if profile.FullText == "" {
		t.Fatalf("expected full text to be retained")
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.xls")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	if _, err := Parse(path); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestExtractTextFromHTML(t *testing.T) {
	page := `<html><head><title>CV</title><style>p{color:red}</style>
<script>alert("x")</script></head>
<body><h1>Jane Smith</h1><p>jane@example.com</p><p>Python and Django developer</p></body></html>`

	text, err := ExtractText("resume.html", []byte(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(text, "Jane Smith") {
		t.Fatalf("expected name in text: %q", text)
	}
	if !strings.Contains(text, "jane@example.com") {
		t.Fatalf("expected email in text: %q", text)
	}
	if strings.Contains(text, "alert") || strings.Contains(text, "color:red") {
		t.Fatalf("script/style content must be dropped: %q", text)
	}
}

func TestExtractTextFromDocx(t *testing.T) {
	docXML := `<?xml version="1.0"?><w:document><w:body>` +
		`<w:p><w:r><w:t>Jane Smith</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Python developer at Initech</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("creating zip entry: %v", err)
	}
	if _, err := f.Write([]byte(docXML)); err != nil {
		t.Fatalf("writing zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}

	text, err := ExtractText("resume.docx", buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(text, "Jane Smith") {
		t.Fatalf("expected name in text: %q", text)
	}
	if !strings.Contains(text, "Initech") {
		t.Fatalf("expected company in text: %q", text)
	}
	if strings.Contains(text, "<w:") {
		t.Fatalf("xml tags must be stripped: %q", text)
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected paragraphs to become separate lines: %q", text)
	}
}

func TestExtractTextFromDocxWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, err := zw.Create("word/other.xml"); err != nil {
		t.Fatalf("creating zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}

	if _, err := ExtractText("resume.docx", buf.Bytes()); err == nil {
		t.Fatalf("expected error when document.xml is missing")
	}
}

func TestProfileWithoutFullText(t *testing.T) {
	profile := FromText(sampleResume)
	clone := profile.WithoutFullText()

	if clone.FullText != "" {
		t.Fatalf("expected full text to be dropped")
	}
	if profile.FullText == "" {
		t.Fatalf("original profile must keep full text")
	}
	if clone.Name != profile.Name {
		t.Fatalf("clone must keep structured fields")
	}
}

func TestProfileSummary(t *testing.T) {
	profile := FromText(sampleResume)
	summary := profile.Summary()

	if !strings.Contains(summary, "John Carter") {
		t.Fatalf("expected name in summary: %q", summary)
	}
	if !strings.Contains(summary, "Acme Corp") {
		t.Fatalf("expected company in summary: %q", summary)
	}
	if !strings.Contains(summary, "University of Toronto") {
		t.Fatalf("expected institution in summary: %q", summary)
	}
}
