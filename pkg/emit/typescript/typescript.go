// Package typescript emits TypeScript type declarations from a type graph:
// interfaces for classes, string-literal unions for enums, and type aliases
// for unions. Nullable properties render as optional with a null arm.
package typescript

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/typetower/pkg/emit"
	"github.com/matzehuels/typetower/pkg/typegraph"
)

// Language provides TypeScript code emission.
var Language = &emit.Language{
	Name:      "typescript",
	Aliases:   []string{"ts"},
	Extension: ".ts",
	New:       func() emit.Emitter { return &Emitter{} },
}

// Emitter renders TypeScript source.
type Emitter struct{}

// Name returns "typescript".
func (e *Emitter) Name() string { return "typescript" }

var reserved = []string{
	"Array", "Boolean", "Date", "Error", "Function", "Map", "Number",
	"Object", "Partial", "Promise", "Record", "Set", "String", "Symbol",
}

// Emit writes TypeScript declarations for every named type in the graph.
func (e *Emitter) Emit(w io.Writer, graph *typegraph.TopLevels, opts emit.Options) error {
	opts = opts.WithDefaults()
	names := emit.NameTypes(graph, emit.PascalCase, reserved...)

	var b strings.Builder
	if opts.Header != "" {
		fmt.Fprintf(&b, "// %s\n", opts.Header)
	}

	for _, t := range typegraph.AllNamedTypes(graph, nil) {
		b.WriteByte('\n')
		switch n := t.(type) {
		case *typegraph.Class:
			writeInterface(&b, n, names)
		case *typegraph.Enum:
			writeEnum(&b, n, names)
		case *typegraph.Union:
			fmt.Fprintf(&b, "export type %s = %s;\n", names[n], unionExpr(n, names))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeInterface(b *strings.Builder, cls *typegraph.Class, names map[typegraph.NamedType]string) {
	fmt.Fprintf(b, "export interface %s {\n", names[cls])
	props := cls.Properties()
	for _, key := range cls.PropertyNames() {
		typ, optional := propertyType(props[key], names)
		marker := ""
		if optional {
			marker = "?"
		}
		fmt.Fprintf(b, "    %s%s: %s;\n", quoteKey(key), marker, typ)
	}
	b.WriteString("}\n")
}

func writeEnum(b *strings.Builder, e *typegraph.Enum, names map[typegraph.NamedType]string) {
	cases := make([]string, len(e.Cases()))
	for i, c := range e.Cases() {
		cases[i] = fmt.Sprintf("%q", c)
	}
	fmt.Fprintf(b, "export type %s = %s;\n", names[e], strings.Join(cases, " | "))
}

// propertyType renders a property's type expression. Nullable properties
// are optional and keep an explicit null arm, so both omission and an
// explicit null round-trip.
func propertyType(t typegraph.Type, names map[typegraph.NamedType]string) (typ string, optional bool) {
	if u, ok := t.(*typegraph.Union); ok && u.IsNullable() {
		if inner, ok := typegraph.NullableFromUnion(u); ok {
			return typeExpr(inner, names) + " | null", true
		}
		return names[u], true
	}
	return typeExpr(t, names), false
}

// typeExpr renders a type reference.
func typeExpr(t typegraph.Type, names map[typegraph.NamedType]string) string {
	return typegraph.MatchType(t, typegraph.TypeMatcher[string]{
		Any:     func(*typegraph.Primitive) string { return "any" },
		Null:    func(*typegraph.Primitive) string { return "null" },
		Bool:    func(*typegraph.Primitive) string { return "boolean" },
		Integer: func(*typegraph.Primitive) string { return "number" },
		Double:  func(*typegraph.Primitive) string { return "number" },
		String:  func(*typegraph.Primitive) string { return "string" },
		Array: func(a *typegraph.Array) string {
			inner := typeExpr(a.Items(), names)
			if strings.ContainsAny(inner, " |") {
				return "Array<" + inner + ">"
			}
			return inner + "[]"
		},
		Map: func(m *typegraph.Map) string {
			return "{ [key: string]: " + typeExpr(m.Values(), names) + " }"
		},
		Class: func(c *typegraph.Class) string { return names[c] },
		Enum:  func(e *typegraph.Enum) string { return names[e] },
		Union: func(u *typegraph.Union) string { return names[u] },
	})
}

// unionExpr renders a union's member list as an inline type expression.
func unionExpr(u *typegraph.Union, names map[typegraph.NamedType]string) string {
	arms := make([]string, 0, len(u.Members()))
	for _, m := range u.SortedMembers() {
		arms = append(arms, typeExpr(m, names))
	}
	return strings.Join(arms, " | ")
}

// quoteKey renders a property key, quoting it unless it is a plain
// identifier.
func quoteKey(key string) string {
	if key == "" {
		return `""`
	}
	for i, r := range key {
		alpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$'
		digit := r >= '0' && r <= '9'
		if !alpha && !(digit && i > 0) {
			return fmt.Sprintf("%q", key)
		}
	}
	return key
}
