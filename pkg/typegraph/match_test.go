package typegraph

import "testing"

// kindNamer is a full matcher returning each variant's kind name, used to
// verify that dispatch reaches exactly the matching handler.
func kindNamer() TypeMatcher[string] {
	prim := func(p *Primitive) string { return p.Kind().String() }
	return TypeMatcher[string]{
		Any:     prim,
		Null:    prim,
		Bool:    prim,
		Integer: prim,
		Double:  prim,
		String:  prim,
		Array:   func(*Array) string { return "array" },
		Class:   func(*Class) string { return "class" },
		Map:     func(*Map) string { return "map" },
		Enum:    func(*Enum) string { return "enum" },
		Union:   func(*Union) string { return "union" },
	}
}

func TestMatchType(t *testing.T) {
	class := NewClass("C", true)
	class.SetProperties(nil)

	tests := []struct {
		node Type
		want string
	}{
		{Any, "any"},
		{Null, "null"},
		{Bool, "bool"},
		{Integer, "integer"},
		{Double, "double"},
		{String, "string"},
		{NewArray(Integer), "array"},
		{class, "class"},
		{NewMap(String), "map"},
		{NewEnum("E", true, []string{"a"}), "enum"},
		{NewUnion("U", true, []Type{Integer, String}), "union"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := MatchType(tt.node, kindNamer()); got != tt.want {
				t.Errorf("MatchType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatchTypeMissingHandler(t *testing.T) {
	m := kindNamer()
	m.Union = nil
	u := NewUnion("U", true, []Type{Integer, String})
	expectInvariant(t, func() { MatchType(u, m) })

	p := kindNamer()
	p.Double = nil
	expectInvariant(t, func() { MatchType(Double, p) })
}
