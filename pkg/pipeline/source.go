package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/typetower/pkg/emit/languages"
	"github.com/matzehuels/typetower/pkg/errors"
	"github.com/matzehuels/typetower/pkg/httputil"
	"github.com/matzehuels/typetower/pkg/infer"
	"github.com/matzehuels/typetower/pkg/typegraph"
)

// isRemoteSource reports whether source is an http(s) URL rather than a
// local file path.
func isRemoteSource(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// ReadSource returns the raw bytes of the input document. Inline input
// takes precedence; URLs are fetched through the HTTP client, everything
// else is read from disk.
func ReadSource(ctx context.Context, client *httputil.Client, opts Options) ([]byte, error) {
	if opts.Input != "" {
		return []byte(opts.Input), nil
	}
	if isRemoteSource(opts.Source) {
		if client == nil {
			client = httputil.NewClient(nil)
		}
		return client.FetchDocument(ctx, opts.Source, opts.Refresh)
	}

	data, err := os.ReadFile(opts.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", opts.Source)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", opts.Source)
	}
	return data, nil
}

// DecodeDocuments decodes raw input into generic document values. Sample
// input may contain multiple documents (YAML streams, concatenated JSON);
// schema input is always a single document.
func DecodeDocuments(data []byte, opts Options) ([]any, error) {
	format := infer.Format(opts.Format)
	if opts.Schema {
		doc, err := infer.Decode(bytes.NewReader(data), format)
		if err != nil {
			return nil, err
		}
		return []any{doc}, nil
	}
	return infer.DecodeAll(bytes.NewReader(data), format)
}

// Infer builds a type graph from decoded documents, either by unifying
// samples or by resolving a JSON Schema.
func Infer(docs []any, opts Options) (*typegraph.TopLevels, error) {
	var (
		root typegraph.Type
		err  error
	)
	if opts.Schema {
		if len(docs) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidSchema,
				"schema input must be a single document, got %d", len(docs))
		}
		root, err = infer.FromSchema(docs[0], opts.RootName)
	} else {
		root, err = infer.FromSamples(docs, opts.RootName)
	}
	if err != nil {
		return nil, err
	}

	graph := typegraph.NewTopLevels()
	graph.Add(opts.RootName, root)
	return graph, nil
}

// Emit renders the graph in every requested language and returns the
// generated sources keyed by canonical language name.
func Emit(graph *typegraph.TopLevels, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Languages))
	for _, name := range opts.Languages {
		lang := languages.Find(name)
		if lang == nil {
			return nil, errors.New(errors.ErrCodeInvalidLanguage, "unsupported language: %q", name)
		}
		var buf bytes.Buffer
		if err := lang.New().Emit(&buf, graph, opts.EmitOptions()); err != nil {
			return nil, fmt.Errorf("emit %s: %w", lang.Name, err)
		}
		artifacts[lang.Name] = buf.Bytes()
	}
	return artifacts, nil
}
