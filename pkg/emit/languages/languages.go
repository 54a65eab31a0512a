// Package languages provides the complete list of supported output languages.
//
// This package exists to break import cycles: the individual language
// packages (golang, typescript, python) import pkg/emit, so pkg/emit cannot
// import them back. Consumers that need the full language list import this
// package instead.
//
// Usage:
//
//	import "github.com/matzehuels/typetower/pkg/emit/languages"
//
//	for _, lang := range languages.All {
//	    fmt.Println(lang.Name)
//	}
package languages

import (
	"github.com/matzehuels/typetower/pkg/emit"
	"github.com/matzehuels/typetower/pkg/emit/golang"
	"github.com/matzehuels/typetower/pkg/emit/python"
	"github.com/matzehuels/typetower/pkg/emit/typescript"
)

// All is the canonical list of supported output languages.
var All = []*emit.Language{
	golang.Language,
	typescript.Language,
	python.Language,
}

// Find returns the Language matching name (canonical or alias), or nil.
func Find(name string) *emit.Language {
	return emit.FindLanguage(name, All)
}

// Names returns the canonical names of all supported languages.
func Names() []string {
	out := make([]string, len(All))
	for i, l := range All {
		out[i] = l.Name
	}
	return out
}
