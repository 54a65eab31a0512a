// Package pkg provides the core libraries for Typetower code generation.
//
// # Overview
//
// Typetower turns example documents and JSON Schemas into typed source
// code. The pkg directory is organized into four main areas:
//
//  1. [typegraph] - The cycle-safe type graph at the center of everything
//  2. [infer] / [emit] - Turning documents into graphs and graphs into code
//  3. [graphio] / [render] - Serializing and visualizing graphs
//  4. [pipeline] - Orchestration (decode → infer → emit) with caching
//
// # Architecture
//
// The typical data flow through Typetower:
//
//	JSON/YAML/TOML samples or JSON Schema
//	         ↓
//	    [infer] package (decode + type inference)
//	         ↓
//	    [typegraph] package (named types, unions, cycles)
//	         ↓
//	    [emit] package (per-language code generation)
//	         ↓
//	    Go/TypeScript/Python source output
//
// # Quick Start
//
// Run the whole pipeline with caching:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/typetower/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Source:    "person.json",
//	    RootName:  "Person",
//	    Languages: []string{"go"},
//	})
//
// Or use the stages directly: [infer.FromSamples] builds a
// [typegraph.Type], [emit] renders it, and [graphio] round-trips it to
// JSON, cycles included.
package pkg
