package emit

import (
	"io"
	"strings"

	"github.com/matzehuels/typetower/pkg/typegraph"
)

const DefaultPackageName = "types" // Default Go package clause

// Options configures code emission behavior.
type Options struct {
	PackageName string // Package or module name where the target has one (default: "types")
	Header      string // Comment line prepended to the output (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.PackageName == "" {
		opts.PackageName = DefaultPackageName
	}
	return opts
}

// Emitter renders every named type reachable from the graph's roots as
// source code for one target language.
type Emitter interface {
	// Emit writes the rendered declarations to w.
	Emit(w io.Writer, graph *typegraph.TopLevels, opts Options) error
	// Name returns the emitter's identifier (e.g., "go", "typescript").
	Name() string
}

// Language describes one supported output language.
type Language struct {
	Name      string   // Canonical name (e.g., "typescript")
	Aliases   []string // Accepted alternative names (e.g., "ts")
	Extension string   // Output file extension including the dot
	New       func() Emitter
}

// Matches reports whether name refers to this language, by canonical name
// or alias, case-insensitively.
func (l *Language) Matches(name string) bool {
	name = strings.ToLower(name)
	if name == l.Name {
		return true
	}
	for _, alias := range l.Aliases {
		if name == alias {
			return true
		}
	}
	return false
}

// FindLanguage returns the first Language matching name, or nil.
func FindLanguage(name string, all []*Language) *Language {
	for _, l := range all {
		if l.Matches(name) {
			return l
		}
	}
	return nil
}
