// Package infer builds type graphs from input documents.
//
// This is the write side of pkg/typegraph: it decodes JSON, YAML, or TOML
// input, decides which shape each value has, and constructs the shared
// (possibly cyclic) graph that emitters consume. Two front ends are
// provided:
//
//   - [FromSamples] infers shapes from example documents, unifying the
//     shapes seen across samples (integer widens to double, missing
//     properties become nullable, conflicting kinds become unions).
//   - [FromSchema] converts a JSON Schema subset directly, including
//     self-referential $ref definitions, which produce cyclic graphs.
//
// All graph mutation (class property assignment, candidate-name
// accumulation) happens here, before the graph is handed to readers.
package infer
