// Package pipeline provides the core generation pipeline for Typetower.
//
// This package implements the complete decode → infer → emit pipeline that
// can be used by CLI and library consumers. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Read input documents (JSON, YAML, TOML) from files or URLs
//  2. Infer: Build a type graph from samples or a JSON Schema
//  3. Emit: Generate source code in the requested target languages
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, nil, logger)
//	opts := pipeline.Options{
//	    Source:    "person.json",
//	    RootName:  "Person",
//	    Languages: []string{"go", "typescript"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	code := result.Artifacts["go"]
//
// Run individual stages:
//
//	// Decode only
//	docs, err := runner.Decode(ctx, opts)
//
//	// Infer with existing documents
//	graph, err := runner.Infer(ctx, docs, opts)
//
//	// Emit with an existing graph
//	artifacts, err := runner.Emit(ctx, graph, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/typetower/pkg/cache"
	"github.com/matzehuels/typetower/pkg/emit"
	"github.com/matzehuels/typetower/pkg/emit/languages"
	"github.com/matzehuels/typetower/pkg/errors"
	"github.com/matzehuels/typetower/pkg/infer"
	"github.com/matzehuels/typetower/pkg/typegraph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Consumers
// =============================================================================

const (
	// DefaultRootName is the name given to the top-level type when the
	// caller does not provide one.
	DefaultRootName = "TopLevel"

	// DefaultLanguage is the target language used when none is requested.
	DefaultLanguage = "go"
)

// ValidLanguageNames returns the canonical names of all supported target
// languages, for error messages and CLI help.
func ValidLanguageNames() []string {
	return languages.Names()
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for config files.
type Options struct {
	// Decode options
	Source string `json:"source,omitempty"` // File path or http(s) URL
	Input  string `json:"input,omitempty"`  // Inline document content (takes precedence over Source)
	Format string `json:"format,omitempty"` // Input format (json, yaml, toml); sniffed from Source if empty

	// Infer options
	RootName string `json:"root_name,omitempty"` // Name for the top-level type
	Schema   bool   `json:"schema,omitempty"`    // Treat the input as a JSON Schema instead of samples

	// Emit options
	Languages   []string `json:"languages,omitempty"`
	PackageName string   `json:"package_name,omitempty"`

	// Cache options
	Refresh bool `json:"refresh,omitempty"` // Bypass caches and recompute everything

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the inferred type graph.
	Graph *typegraph.TopLevels

	// GraphHash is the content hash of the serialized graph.
	GraphHash string

	// Artifacts contains emitted source code keyed by language name.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	DocCount   int
	TypeCount  int
	DecodeTime time.Duration
	InferTime  time.Duration
	EmitTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	InferHit bool // Whether the type graph came from cache
	EmitHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateLanguage checks that a target language is supported.
func ValidateLanguage(name string) error {
	if languages.Find(name) == nil {
		return errors.New(errors.ErrCodeInvalidLanguage,
			"unsupported language: %q (must be one of: %v)", name, languages.Names())
	}
	return nil
}

// ValidateLanguages checks that all target languages are supported.
func ValidateLanguages(names []string) error {
	for _, name := range names {
		if err := ValidateLanguage(name); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForDecode(); err != nil {
		return err
	}
	if err := o.ValidateForInfer(); err != nil {
		return err
	}
	if err := o.ValidateForEmit(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForDecode checks required fields for the decode stage.
func (o *Options) ValidateForDecode() error {
	if o.Source == "" && o.Input == "" {
		return fmt.Errorf("source or input is required")
	}

	// Decode defaults
	if o.Format == "" {
		o.Format = string(infer.FormatFromPath(o.Source))
	}
	if err := infer.ValidateFormat(infer.Format(o.Format)); err != nil {
		return err
	}
	if o.Schema && o.Format != string(infer.FormatJSON) {
		return fmt.Errorf("schema input must be JSON, got %s", o.Format)
	}

	o.setLoggerDefault()
	return nil
}

// SetInferDefaults sets default values for type inference.
func (o *Options) SetInferDefaults() {
	if o.RootName == "" {
		o.RootName = DefaultRootName
	}
	o.setLoggerDefault()
}

// ValidateForInfer validates and sets defaults for type inference.
func (o *Options) ValidateForInfer() error {
	o.SetInferDefaults()
	return errors.ValidateRootName(o.RootName)
}

// SetEmitDefaults sets default values for code emission.
func (o *Options) SetEmitDefaults() {
	if len(o.Languages) == 0 {
		o.Languages = []string{DefaultLanguage}
	}
	if o.PackageName == "" {
		o.PackageName = emit.DefaultPackageName
	}
	o.setLoggerDefault()
}

// ValidateForEmit validates and sets defaults for code emission.
func (o *Options) ValidateForEmit() error {
	o.SetEmitDefaults()
	return ValidateLanguages(o.Languages)
}

// IsRemote returns true if the source is an http(s) URL.
func (o *Options) IsRemote() bool {
	return isRemoteSource(o.Source)
}

// GraphKeyOpts returns cache key options for the inferred graph.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		Format:   o.Format,
		RootName: o.RootName,
		Schema:   o.Schema,
	}
}

// EmitOptions returns per-language emission options.
func (o *Options) EmitOptions() emit.Options {
	return emit.Options{PackageName: o.PackageName}.WithDefaults()
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
