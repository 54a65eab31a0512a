// Package python emits Python type declarations from a type graph:
// dataclasses for classes, Enum subclasses for enums, and Union aliases
// for unions. Class references are rendered as string forward references,
// which keeps cyclic graphs valid regardless of declaration order.
package python

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/typetower/pkg/emit"
	"github.com/matzehuels/typetower/pkg/typegraph"
)

// Language provides Python code emission.
var Language = &emit.Language{
	Name:      "python",
	Aliases:   []string{"py"},
	Extension: ".py",
	New:       func() emit.Emitter { return &Emitter{} },
}

// Emitter renders Python source.
type Emitter struct{}

// Name returns "python".
func (e *Emitter) Name() string { return "python" }

var reservedTypes = []string{
	"Any", "Dict", "Enum", "List", "Optional", "Union", "dataclass",
}

var reservedFields = []string{
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield",
}

// Emit writes Python declarations for every named type in the graph.
func (e *Emitter) Emit(w io.Writer, graph *typegraph.TopLevels, opts emit.Options) error {
	opts = opts.WithDefaults()
	names := emit.NameTypes(graph, emit.PascalCase, reservedTypes...)
	all := typegraph.AllNamedTypes(graph, nil)

	var b strings.Builder
	if opts.Header != "" {
		fmt.Fprintf(&b, "# %s\n", opts.Header)
	}
	b.WriteString("from dataclasses import dataclass\n")
	if hasEnums(all) {
		b.WriteString("from enum import Enum\n")
	}
	b.WriteString("from typing import Any, Dict, List, Optional, Union\n")

	for _, t := range all {
		b.WriteString("\n\n")
		switch n := t.(type) {
		case *typegraph.Class:
			writeDataclass(&b, n, names)
		case *typegraph.Enum:
			writeEnum(&b, n, names)
		case *typegraph.Union:
			fmt.Fprintf(&b, "%s = %s\n", names[n], unionExpr(n, names))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func hasEnums(all []typegraph.NamedType) bool {
	for _, t := range all {
		if t.Kind() == typegraph.KindEnum {
			return true
		}
	}
	return false
}

func writeDataclass(b *strings.Builder, cls *typegraph.Class, names map[typegraph.NamedType]string) {
	fmt.Fprintf(b, "@dataclass\nclass %s:\n", names[cls])
	props := cls.Properties()
	keys := cls.PropertyNames()
	if len(keys) == 0 {
		b.WriteString("    pass\n")
		return
	}
	fields := emit.NewNamer(reservedFields...)
	for _, key := range keys {
		field := fields.Assign(fieldName(key))
		fmt.Fprintf(b, "    %s: %s\n", field, typeExpr(props[key], names))
	}
}

func writeEnum(b *strings.Builder, e *typegraph.Enum, names map[typegraph.NamedType]string) {
	fmt.Fprintf(b, "class %s(Enum):\n", names[e])
	labels := emit.NewNamer(reservedFields...)
	for _, c := range e.Cases() {
		label := labels.Assign(enumLabel(c))
		fmt.Fprintf(b, "    %s = %q\n", label, c)
	}
}

func enumLabel(c string) string {
	label := emit.UpperSnakeCase(c)
	if label == "" {
		return "CASE"
	}
	if label[0] >= '0' && label[0] <= '9' {
		label = "THE_" + label
	}
	return label
}

func fieldName(key string) string {
	name := emit.SnakeCase(key)
	if name == "" {
		return "field"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "the_" + name
	}
	return name
}

// typeExpr renders a type annotation. Class names are quoted forward
// references.
func typeExpr(t typegraph.Type, names map[typegraph.NamedType]string) string {
	return typegraph.MatchType(t, typegraph.TypeMatcher[string]{
		Any:     func(*typegraph.Primitive) string { return "Any" },
		Null:    func(*typegraph.Primitive) string { return "None" },
		Bool:    func(*typegraph.Primitive) string { return "bool" },
		Integer: func(*typegraph.Primitive) string { return "int" },
		Double:  func(*typegraph.Primitive) string { return "float" },
		String:  func(*typegraph.Primitive) string { return "str" },
		Array: func(a *typegraph.Array) string {
			return "List[" + typeExpr(a.Items(), names) + "]"
		},
		Map: func(m *typegraph.Map) string {
			return "Dict[str, " + typeExpr(m.Values(), names) + "]"
		},
		Class: func(c *typegraph.Class) string { return fmt.Sprintf("%q", names[c]) },
		Enum:  func(e *typegraph.Enum) string { return fmt.Sprintf("%q", names[e]) },
		Union: func(u *typegraph.Union) string { return inlineUnion(u, names) },
	})
}

// inlineUnion renders a union reference. The common nullable shape becomes
// Optional[X] instead of Union[X, None]; anything else refers to the
// union's alias as a forward reference, since aliases for inner unions may
// be defined further down the file.
func inlineUnion(u *typegraph.Union, names map[typegraph.NamedType]string) string {
	if inner, ok := typegraph.NullableFromUnion(u); ok {
		return "Optional[" + typeExpr(inner, names) + "]"
	}
	return fmt.Sprintf("%q", names[u])
}

// unionExpr renders a union's own alias definition.
func unionExpr(u *typegraph.Union, names map[typegraph.NamedType]string) string {
	arms := make([]string, 0, len(u.Members()))
	for _, m := range u.SortedMembers() {
		if m.Kind() == typegraph.KindUnion {
			arms = append(arms, inlineUnion(m.(*typegraph.Union), names))
			continue
		}
		arms = append(arms, typeExpr(m, names))
	}
	if inner, ok := typegraph.NullableFromUnion(u); ok {
		return "Optional[" + typeExpr(inner, names) + "]"
	}
	return "Union[" + strings.Join(arms, ", ") + "]"
}
