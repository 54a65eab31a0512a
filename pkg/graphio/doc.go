// Package graphio provides serialization for type graphs.
//
// This package defines the canonical wire format for Typetower's graph data,
// used for JSON files, caching, and piping graphs between invocations.
//
// # Architecture
//
// The package sits at the serialization boundary between the internal
// representation and external formats:
//
//   - [Graph], [Node], [Root]: Serialization types (this package)
//   - pkg/typegraph.TopLevels: Internal graph representation
//
// Use [FromTypeGraph]/[ToTypeGraph] to convert between them, or the
// higher-level Marshal/Write/Read functions for whole documents.
//
// # Graph Serialization
//
// Graphs use a flat index-linked JSON format:
//
//	{
//	  "roots": [{"name": "person", "node": 0}],
//	  "nodes": [
//	    {"kind": "class", "names": ["person"], "properties": {"name": 1}},
//	    {"kind": "string"}
//	  ]
//	}
//
// Index links are what make cyclic graphs serializable: a class whose
// property chain leads back to itself just points at its own index.
// Reading rebuilds classes in two phases (node first, properties second),
// so exactly the cycles the graph can represent survive a round trip.
package graphio
