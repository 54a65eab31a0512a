// Package golang emits Go type declarations from a type graph: structs for
// classes, string-backed constant sets for enums, and one-field-per-variant
// structs for unions. Class references render as pointers so cyclic graphs
// stay representable.
package golang

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/typetower/pkg/emit"
	"github.com/matzehuels/typetower/pkg/typegraph"
)

// Language provides Go code emission.
var Language = &emit.Language{
	Name:      "go",
	Aliases:   []string{"golang"},
	Extension: ".go",
	New:       func() emit.Emitter { return &Emitter{} },
}

// Emitter renders Go source.
type Emitter struct{}

// Name returns "go".
func (e *Emitter) Name() string { return "go" }

// Go keywords plus the predeclared identifiers a generated type could
// otherwise shadow.
var reserved = []string{
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type",
	"var", "any", "bool", "byte", "error", "float32", "float64", "int",
	"int64", "rune", "string", "uint64",
}

// Emit writes Go declarations for every named type in the graph.
func (e *Emitter) Emit(w io.Writer, graph *typegraph.TopLevels, opts emit.Options) error {
	opts = opts.WithDefaults()
	names := emit.NameTypes(graph, emit.PascalCase, reserved...)

	var b strings.Builder
	if opts.Header != "" {
		fmt.Fprintf(&b, "// %s\n\n", opts.Header)
	}
	fmt.Fprintf(&b, "package %s\n", opts.PackageName)

	consts := emit.NewNamer(reserved...)
	for _, t := range typegraph.AllNamedTypes(graph, nil) {
		b.WriteByte('\n')
		switch n := t.(type) {
		case *typegraph.Class:
			writeClass(&b, n, names)
		case *typegraph.Enum:
			writeEnum(&b, n, names, consts)
		case *typegraph.Union:
			writeUnion(&b, n, names)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeClass(b *strings.Builder, cls *typegraph.Class, names map[typegraph.NamedType]string) {
	fmt.Fprintf(b, "type %s struct {\n", names[cls])
	fields := emit.NewNamer(reserved...)
	props := cls.Properties()
	for _, key := range cls.PropertyNames() {
		field := fields.Assign(fallback(emit.PascalCase(key), "Field"))
		typ, optional := fieldType(props[key], names)
		tag := key
		if optional {
			tag += ",omitempty"
		}
		fmt.Fprintf(b, "\t%s %s `json:%q`\n", field, typ, tag)
	}
	b.WriteString("}\n")
}

func writeEnum(b *strings.Builder, e *typegraph.Enum, names map[typegraph.NamedType]string, consts *emit.Namer) {
	name := names[e]
	fmt.Fprintf(b, "type %s string\n\nconst (\n", name)
	for _, c := range e.Cases() {
		label := consts.Assign(fallback(name+emit.PascalCase(c), name+"Case"))
		fmt.Fprintf(b, "\t%s %s = %q\n", label, name, c)
	}
	b.WriteString(")\n")
}

// writeUnion renders a union as a struct with one pointer field per member;
// exactly one is non-nil in a valid value. The null member contributes no
// field, absence of all others stands for null.
func writeUnion(b *strings.Builder, u *typegraph.Union, names map[typegraph.NamedType]string) {
	fmt.Fprintf(b, "type %s struct {\n", names[u])
	fields := emit.NewNamer(reserved...)
	for _, m := range u.SortedMembers() {
		if m.Kind() == typegraph.KindNull {
			continue
		}
		field := fields.Assign(memberField(m, names))
		fmt.Fprintf(b, "\t%s *%s\n", field, valueType(m, names))
	}
	b.WriteString("}\n")
}

// fieldType renders a property's Go type. A nullable property unwraps to a
// pointer to its non-null part and is tagged omitempty; bare null becomes
// any, since Go has no dedicated null type.
func fieldType(t typegraph.Type, names map[typegraph.NamedType]string) (typ string, optional bool) {
	if u, ok := t.(*typegraph.Union); ok {
		if inner, ok := typegraph.NullableFromUnion(u); ok {
			return "*" + valueType(inner, names), true
		}
		if u.IsNullable() {
			return "*" + names[u], true
		}
	}
	if t.Kind() == typegraph.KindNull {
		return "any", true
	}
	if cls, ok := t.(*typegraph.Class); ok {
		// Pointer so self-referential structs compile.
		return "*" + names[cls], false
	}
	return valueType(t, names), false
}

// valueType renders a type in a position that already provides indirection.
func valueType(t typegraph.Type, names map[typegraph.NamedType]string) string {
	return typegraph.MatchType(t, typegraph.TypeMatcher[string]{
		Any:     func(*typegraph.Primitive) string { return "any" },
		Null:    func(*typegraph.Primitive) string { return "any" },
		Bool:    func(*typegraph.Primitive) string { return "bool" },
		Integer: func(*typegraph.Primitive) string { return "int64" },
		Double:  func(*typegraph.Primitive) string { return "float64" },
		String:  func(*typegraph.Primitive) string { return "string" },
		Array: func(a *typegraph.Array) string {
			typ, _ := fieldType(a.Items(), names)
			return "[]" + typ
		},
		Map: func(m *typegraph.Map) string {
			typ, _ := fieldType(m.Values(), names)
			return "map[string]" + typ
		},
		Class: func(c *typegraph.Class) string { return names[c] },
		Enum:  func(e *typegraph.Enum) string { return names[e] },
		Union: func(u *typegraph.Union) string { return names[u] },
	})
}

// memberField names a union's struct field after what it holds.
func memberField(m typegraph.Type, names map[typegraph.NamedType]string) string {
	if named, ok := m.(typegraph.NamedType); ok {
		return fallback(emit.PascalCase(names[named]), "Value")
	}
	switch m.Kind() {
	case typegraph.KindArray:
		return "Array"
	case typegraph.KindMap:
		return "Map"
	default:
		return emit.PascalCase(m.Kind().String())
	}
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
