package emit

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/typetower/pkg/typegraph"
)

// SplitWords breaks an identifier into lowercase words. Boundaries are
// non-alphanumeric separators, lower-to-upper transitions, and the last
// capital of an acronym run ("HTTPServer" splits into "http", "server").
// Digits stick to the word they follow.
func SplitWords(name string) []string {
	runes := []rune(name)
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = nil
		}
	}

	for i, r := range runes {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r):
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			acronymEnd := i > 0 && unicode.IsUpper(runes[i-1]) &&
				i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || acronymEnd {
				flush()
			}
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return words
}

func title(word string) string {
	if word == "" {
		return ""
	}
	r := []rune(word)
	return string(unicode.ToUpper(r[0])) + string(r[1:])
}

// PascalCase renders a name as UpperCamelCase.
func PascalCase(name string) string {
	var b strings.Builder
	for _, w := range SplitWords(name) {
		b.WriteString(title(w))
	}
	return b.String()
}

// CamelCase renders a name as lowerCamelCase.
func CamelCase(name string) string {
	words := SplitWords(name)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(words[0])
	for _, w := range words[1:] {
		b.WriteString(title(w))
	}
	return b.String()
}

// SnakeCase renders a name as lower_snake_case.
func SnakeCase(name string) string {
	return strings.Join(SplitWords(name), "_")
}

// UpperSnakeCase renders a name as UPPER_SNAKE_CASE.
func UpperSnakeCase(name string) string {
	return strings.ToUpper(SnakeCase(name))
}

// Namer hands out unique identifiers within one scope. The first request
// for a base name gets it verbatim; later requests get numbered variants.
type Namer struct {
	used map[string]bool
}

// NewNamer creates a Namer with the given names pre-claimed, typically the
// target language's keywords and predeclared identifiers.
func NewNamer(reserved ...string) *Namer {
	n := &Namer{used: make(map[string]bool, len(reserved))}
	for _, r := range reserved {
		n.used[r] = true
	}
	return n
}

// Assign claims and returns a unique identifier derived from base.
func (n *Namer) Assign(base string) string {
	if base == "" {
		base = "Anonymous"
	}
	name := base
	for i := 2; n.used[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	n.used[name] = true
	return name
}

// NameTypes assigns every named type reachable from the graph's roots a
// unique identifier in the target language. style converts a combined name
// into the language's convention; reserved pre-claims keywords so no type
// shadows them. Identifiers that would start with a digit are prefixed
// with "The". The traversal order is deterministic, so so is the result.
func NameTypes(graph *typegraph.TopLevels, style func(string) string, reserved ...string) map[typegraph.NamedType]string {
	namer := NewNamer(reserved...)
	names := make(map[typegraph.NamedType]string)
	for _, t := range typegraph.AllNamedTypes(graph, nil) {
		base := style(t.CombinedName())
		if base == "" {
			base = style("anonymous")
		}
		if unicode.IsDigit([]rune(base)[0]) {
			base = style("the " + base)
		}
		names[t] = namer.Assign(base)
	}
	return names
}
