package infer

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/typetower/pkg/errors"
)

// Format identifies a supported input document format.
type Format string

// Supported input formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath guesses the input format from a file extension.
// Unknown extensions default to JSON, which is by far the most common input.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// ValidFormats is the set of supported input formats.
var ValidFormats = map[Format]bool{
	FormatJSON: true,
	FormatYAML: true,
	FormatTOML: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(f Format) error {
	if !ValidFormats[f] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, yaml, toml)", f)
	}
	return nil
}

// Decode reads one document in the given format and returns its generic
// value tree: maps, slices, strings, bools, nil, and numbers. JSON numbers
// are preserved as json.Number so that integer vs. double inference does not
// lose information to float64 round-tripping.
func Decode(r io.Reader, format Format) (any, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(r)
	case FormatYAML:
		return decodeYAML(r)
	case FormatTOML:
		return decodeTOML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
}

// DecodeAll reads every document in the input, each of which becomes one
// inference sample. YAML inputs may hold several documents separated by
// "---", JSON inputs may hold several concatenated values, and TOML inputs
// hold a single document.
func DecodeAll(r io.Reader, format Format) ([]any, error) {
	switch format {
	case FormatJSON:
		return decodeAllJSON(r)
	case FormatYAML:
		return decodeAllYAML(r)
	}

	v, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	return []any{v}, nil
}

func decodeAllJSON(r io.Reader) ([]any, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()

	var docs []any
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(errors.ErrCodeDecode, err, "failed to decode JSON")
		}
		docs = append(docs, v)
	}
	if len(docs) == 0 {
		return nil, errors.New(errors.ErrCodeDecode, "input contains no documents")
	}
	return docs, nil
}

func decodeAllYAML(r io.Reader) ([]any, error) {
	var docs []any
	dec := yaml.NewDecoder(r)
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(errors.ErrCodeDecode, err, "failed to decode YAML")
		}
		docs = append(docs, normalizeYAML(v))
	}
	if len(docs) == 0 {
		return nil, errors.New(errors.ErrCodeDecode, "input contains no documents")
	}
	return docs, nil
}

func decodeJSON(r io.Reader) (any, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "failed to decode JSON")
	}
	return v, nil
}

func decodeYAML(r io.Reader) (any, error) {
	var v any
	if err := yaml.NewDecoder(r).Decode(&v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "failed to decode YAML")
	}
	return normalizeYAML(v), nil
}

func decodeTOML(r io.Reader) (any, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "failed to read TOML")
	}
	var v map[string]any
	if err := toml.Unmarshal(buf.Bytes(), &v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "failed to decode TOML")
	}
	return v, nil
}

// normalizeYAML rewrites yaml.v3 output into the same shape the JSON
// decoder produces: map keys become strings so that downstream inference
// sees one uniform value tree.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeYAML(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			key, ok := k.(string)
			if !ok {
				continue // non-string keys cannot become properties
			}
			out[key] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}
