// Package emit renders a type graph as source code for a target language.
//
// # Overview
//
// Typetower can generate type declarations for multiple languages:
//
//   - Go (structs, constant sets, variant structs)
//   - TypeScript (interfaces, string-literal unions, type aliases)
//   - Python (dataclasses, Enum subclasses, Union aliases)
//
// This package provides the core abstractions shared by every target; the
// per-language renderers live in subpackages.
//
// # Architecture
//
// Code generation has three layers:
//
//  1. Type graph ([typegraph]): The language-neutral representation
//  2. Emitters (this package and subpackages): Per-language rendering
//  3. CLI ([internal/cli]): User-facing commands and output
//
// # Emitting Code
//
// Pick a language, create its emitter, and hand it the graph:
//
//	lang := languages.Find("typescript")
//	err := lang.New().Emit(os.Stdout, graph, emit.Options{})
//
// Every named type reachable from the graph's roots is rendered exactly
// once, in a deterministic order, including types that only appear inside
// cycles.
//
// # Naming
//
// Combined names from the graph are heuristic and may collide, contain
// characters illegal in the target, or shadow keywords. [NameTypes] turns
// them into unique legal identifiers: a style function ([PascalCase],
// [SnakeCase], ...) converts each combined name, reserved words are
// pre-claimed, and collisions get numeric suffixes. The traversal order is
// deterministic, so generated names are stable across runs.
//
// # Supported Languages
//
// Each language has a subpackage with its [Language] definition:
//
//   - [golang]: Go structs and constants
//   - [typescript]: TypeScript interfaces and type aliases
//   - [python]: Python dataclasses and enums
//
// The [languages] subpackage aggregates them into one list.
package emit
