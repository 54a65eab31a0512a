package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/typetower/pkg/pipeline"
)

func TestOrderedLanguages(t *testing.T) {
	artifacts := map[string][]byte{
		"python": []byte("p"),
		"go":     []byte("g"),
	}

	langs := orderedLanguages(artifacts)
	if len(langs) != 2 {
		t.Fatalf("got %d languages, want 2", len(langs))
	}
	// Registration order, not map order
	if langs[0].Name != "go" || langs[1].Name != "python" {
		t.Errorf("order = [%s %s], want [go python]", langs[0].Name, langs[1].Name)
	}
}

func TestWriteArtifactFilesSingle(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"go": []byte("package types\n")}

	// Extension appended when missing
	out := filepath.Join(dir, "models")
	if err := writeArtifactFiles(artifacts, out); err != nil {
		t.Fatalf("writeArtifactFiles() error: %v", err)
	}
	data, err := os.ReadFile(out + ".go")
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if string(data) != "package types\n" {
		t.Errorf("content = %q", data)
	}

	// Explicit extension kept as-is
	out = filepath.Join(dir, "exact.go")
	if err := writeArtifactFiles(artifacts, out); err != nil {
		t.Fatalf("writeArtifactFiles() error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("explicit path not written: %v", err)
	}
}

func TestWriteArtifactFilesMultiple(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"go":         []byte("g"),
		"typescript": []byte("t"),
	}

	out := filepath.Join(dir, "models.go")
	if err := writeArtifactFiles(artifacts, out); err != nil {
		t.Fatalf("writeArtifactFiles() error: %v", err)
	}

	// Base path shared, per-language extensions
	for _, name := range []string{"models.go", "models.ts"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
}

func TestWriteArtifactFilesCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"go": []byte("g")}

	out := filepath.Join(dir, "nested", "deep", "models.go")
	if err := writeArtifactFiles(artifacts, out); err != nil {
		t.Fatalf("writeArtifactFiles() error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("nested output not written: %v", err)
	}
}

func TestSourceLabel(t *testing.T) {
	if got := sourceLabel(pipeline.Options{Source: "person.json"}); got != "person.json" {
		t.Errorf("sourceLabel = %q", got)
	}
	if got := sourceLabel(pipeline.Options{Input: `{}`}); got != "stdin" {
		t.Errorf("sourceLabel for inline input = %q, want stdin", got)
	}
}

func TestSuggestGraphOutput(t *testing.T) {
	tests := []struct {
		source string
		format string
		want   string
	}{
		{"person.json", "svg", "person.svg"},
		{"data/person.yaml", "png", "data/person.png"},
		{"-", "pdf", "graph.pdf"},
		{"", "svg", "graph.svg"},
	}

	for _, tt := range tests {
		if got := suggestGraphOutput(tt.source, tt.format); got != tt.want {
			t.Errorf("suggestGraphOutput(%q, %q) = %q, want %q", tt.source, tt.format, got, tt.want)
		}
	}
}

func TestValidateGraphFormat(t *testing.T) {
	for _, f := range []string{"json", "dot", "svg", "png", "pdf"} {
		if err := validateGraphFormat(f); err != nil {
			t.Errorf("validateGraphFormat(%q) should pass: %v", f, err)
		}
	}
	if err := validateGraphFormat("gif"); err == nil {
		t.Error("unknown format should fail")
	}
}
