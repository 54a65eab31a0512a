package graphio

import (
	"bytes"
	"io"
	"os"

	gojson "github.com/goccy/go-json"

	"github.com/matzehuels/typetower/pkg/errors"
	"github.com/matzehuels/typetower/pkg/typegraph"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a type graph to JSON bytes.
// Node order is deterministic, so equal graphs marshal to equal bytes.
func MarshalGraph(graph *typegraph.TopLevels) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(graph, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes a type graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(graph *typegraph.TopLevels, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return writeGraphTo(graph, f)
}

// WriteGraph writes a type graph as JSON to an io.Writer.
// Use MarshalGraph for in-memory serialization or WriteGraphFile for files.
func WriteGraph(graph *typegraph.TopLevels, w io.Writer) error {
	return writeGraphTo(graph, w)
}

// ReadGraphFile reads a JSON file and returns the decoded type graph.
// Returns validation errors for malformed graphs.
func ReadGraphFile(path string) (*typegraph.TopLevels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON graph from an io.Reader into a type graph.
// Use ReadGraphFile for files or pass bytes.NewReader for in-memory data.
func ReadGraph(r io.Reader) (*typegraph.TopLevels, error) {
	return readGraphFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(graph *typegraph.TopLevels, w io.Writer) error {
	out := FromTypeGraph(graph)
	enc := gojson.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
	}
	return nil
}

func readGraphFrom(r io.Reader) (*typegraph.TopLevels, error) {
	var data Graph
	if err := gojson.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode graph")
	}
	return ToTypeGraph(data)
}
