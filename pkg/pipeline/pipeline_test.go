package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/typetower/pkg/cache"
)

func TestValidateLanguage(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"go", false},
		{"golang", false},
		{"typescript", false},
		{"ts", false},
		{"python", false},
		{"GO", false}, // case-insensitive
		{"rust", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateLanguage(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLanguage(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidateLanguages(t *testing.T) {
	if err := ValidateLanguages([]string{"go", "python"}); err != nil {
		t.Errorf("Valid languages should pass: %v", err)
	}

	if err := ValidateLanguages([]string{"go", "cobol"}); err == nil {
		t.Error("Invalid language should fail")
	}

	// Empty slice is valid
	if err := ValidateLanguages(nil); err != nil {
		t.Errorf("Empty languages should pass: %v", err)
	}
}

func TestOptionsValidateForDecode(t *testing.T) {
	// Missing source and input
	opts := Options{}
	if err := opts.ValidateForDecode(); err == nil {
		t.Error("Missing source should fail")
	}

	// Format sniffed from source path
	opts = Options{Source: "data.yaml"}
	if err := opts.ValidateForDecode(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if opts.Format != "yaml" {
		t.Errorf("Format should be yaml, got %s", opts.Format)
	}

	// Explicit format wins over extension
	opts = Options{Source: "data.yaml", Format: "json"}
	if err := opts.ValidateForDecode(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if opts.Format != "json" {
		t.Errorf("Format should stay json, got %s", opts.Format)
	}

	// Unknown format
	opts = Options{Source: "data.json", Format: "xml"}
	if err := opts.ValidateForDecode(); err == nil {
		t.Error("Unknown format should fail")
	}

	// Schema input must be JSON
	opts = Options{Source: "schema.yaml", Schema: true}
	if err := opts.ValidateForDecode(); err == nil {
		t.Error("YAML schema should fail")
	}
}

func TestOptionsValidateForInfer(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForInfer(); err != nil {
		t.Fatalf("Defaults should pass: %v", err)
	}
	if opts.RootName != DefaultRootName {
		t.Errorf("RootName should be %s, got %s", DefaultRootName, opts.RootName)
	}

	opts = Options{RootName: "bad\x00name"}
	if err := opts.ValidateForInfer(); err == nil {
		t.Error("Root name with control characters should fail")
	}
}

func TestSetEmitDefaults(t *testing.T) {
	opts := Options{}
	opts.SetEmitDefaults()

	if len(opts.Languages) != 1 || opts.Languages[0] != DefaultLanguage {
		t.Errorf("Languages should be [go], got %v", opts.Languages)
	}
	if opts.PackageName != "types" {
		t.Errorf("PackageName should be types, got %s", opts.PackageName)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{
		Input: `{"name": "x"}`,
	}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalFormat := opts.Format
	originalRootName := opts.RootName
	originalLanguages := len(opts.Languages)

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Format != originalFormat {
		t.Error("Format changed on second call")
	}
	if opts.RootName != originalRootName {
		t.Error("RootName changed on second call")
	}
	if len(opts.Languages) != originalLanguages {
		t.Error("Languages changed on second call")
	}
}

func TestOptionsGraphKeyOpts(t *testing.T) {
	opts := Options{Format: "yaml", RootName: "Config", Schema: true}
	keyOpts := opts.GraphKeyOpts()

	if keyOpts.Format != "yaml" || keyOpts.RootName != "Config" || !keyOpts.Schema {
		t.Errorf("GraphKeyOpts() = %+v", keyOpts)
	}
}

func TestOptionsIsRemote(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"https://example.com/schema.json", true},
		{"http://example.com/data.json", true},
		{"data.json", false},
		{"/tmp/data.json", false},
		{"", false},
	}

	for _, tt := range tests {
		opts := Options{Source: tt.source}
		if got := opts.IsRemote(); got != tt.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestRunnerExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil, discardLogger())
	defer runner.Close()

	opts := Options{
		Input:     `{"name": "Alice", "age": 30}`,
		RootName:  "Person",
		Languages: []string{"go", "typescript"},
	}

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Stats.DocCount != 1 {
		t.Errorf("DocCount = %d, want 1", result.Stats.DocCount)
	}
	if result.Stats.TypeCount != 1 {
		t.Errorf("TypeCount = %d, want 1", result.Stats.TypeCount)
	}
	if result.GraphHash == "" {
		t.Error("GraphHash should be set")
	}

	goCode := string(result.Artifacts["go"])
	if !strings.Contains(goCode, "type Person struct") {
		t.Errorf("Go output missing struct:\n%s", goCode)
	}
	tsCode := string(result.Artifacts["typescript"])
	if !strings.Contains(tsCode, "export interface Person") {
		t.Errorf("TypeScript output missing interface:\n%s", tsCode)
	}

	// NullCache never hits
	if result.CacheInfo.InferHit || result.CacheInfo.EmitHit {
		t.Error("NullCache should never report hits")
	}
}

func TestRunnerExecuteSchema(t *testing.T) {
	runner := NewRunner(nil, nil, nil, discardLogger())
	defer runner.Close()

	schema := `{
		"type": "object",
		"properties": {"id": {"type": "integer"}},
		"required": ["id"]
	}`
	opts := Options{
		Input:    schema,
		RootName: "Record",
		Schema:   true,
	}

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	goCode := string(result.Artifacts["go"])
	if !strings.Contains(goCode, "type Record struct") {
		t.Errorf("Go output missing struct:\n%s", goCode)
	}
	if !strings.Contains(goCode, "int64") {
		t.Errorf("Go output should use int64 for integer:\n%s", goCode)
	}
}

func TestRunnerExecuteCaching(t *testing.T) {
	dir := t.TempDir()
	c, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	runner := NewRunner(c, nil, nil, discardLogger())
	defer runner.Close()

	opts := Options{
		Input:    `{"value": 1}`,
		RootName: "Sample",
	}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if first.CacheInfo.InferHit || first.CacheInfo.EmitHit {
		t.Error("First run should miss the cache")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if !second.CacheInfo.InferHit {
		t.Error("Second run should hit the graph cache")
	}
	if !second.CacheInfo.EmitHit {
		t.Error("Second run should hit the output cache")
	}
	if second.GraphHash != first.GraphHash {
		t.Errorf("GraphHash changed: %s vs %s", first.GraphHash, second.GraphHash)
	}
	if string(second.Artifacts["go"]) != string(first.Artifacts["go"]) {
		t.Error("Cached artifact differs from original")
	}

	// Refresh bypasses the graph cache
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Refresh run failed: %v", err)
	}
	if third.CacheInfo.InferHit {
		t.Error("Refresh run should not hit the graph cache")
	}
}

func TestRunnerExecuteLanguageAlias(t *testing.T) {
	runner := NewRunner(nil, nil, nil, discardLogger())
	defer runner.Close()

	opts := Options{
		Input:     `{"ok": true}`,
		RootName:  "Status",
		Languages: []string{"ts"},
	}

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	// Artifacts are keyed by canonical language name
	if _, ok := result.Artifacts["typescript"]; !ok {
		t.Errorf("Artifacts should be keyed by canonical name, got %v", keys(result.Artifacts))
	}
}

func TestRunnerDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "samples.yaml")
	content := "name: a\n---\nname: b\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	runner := NewRunner(nil, nil, nil, discardLogger())
	defer runner.Close()

	docs, err := runner.Decode(context.Background(), Options{Source: path})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("doc count = %d, want 2", len(docs))
	}
}

func TestRunnerDecodeMissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil, discardLogger())
	defer runner.Close()

	_, err := runner.Decode(context.Background(), Options{Source: "/nonexistent/input.json"})
	if err == nil {
		t.Fatal("Missing file should fail")
	}
}

func TestInferSchemaRequiresSingleDocument(t *testing.T) {
	opts := Options{Schema: true, RootName: "Root"}
	opts.SetInferDefaults()

	_, err := Infer([]any{map[string]any{}, map[string]any{}}, opts)
	if err == nil {
		t.Fatal("Multiple schema documents should fail")
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
