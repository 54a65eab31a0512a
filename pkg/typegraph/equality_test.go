package typegraph

import "testing"

// selfClass builds a class "Node" whose "next" property is the class
// itself, the smallest genuinely cyclic graph.
func selfClass() *Class {
	c := NewClass("Node", true)
	c.SetProperties(map[string]Type{
		"value": Integer,
		"next":  c,
	})
	return c
}

func TestEqualsReflexive(t *testing.T) {
	class := NewClass("C", true)
	class.SetProperties(map[string]Type{"x": Integer})

	nodes := []Type{
		Any, Null, Bool, Integer, Double, String,
		NewArray(Integer),
		NewMap(String),
		class,
		NewEnum("E", true, []string{"a", "b"}),
		NewUnion("U", true, []Type{Integer, String}),
		selfClass(),
	}

	for _, n := range nodes {
		if !Equals(n, n) {
			t.Errorf("Equals(%s, itself) = false", n.Kind())
		}
	}
}

func TestEqualsSymmetric(t *testing.T) {
	a := NewArray(NewMap(Integer))
	b := NewArray(NewMap(Integer))
	c := NewArray(NewMap(String))

	if Equals(a, b) != Equals(b, a) {
		t.Error("Equals is not symmetric for equal nodes")
	}
	if Equals(a, c) != Equals(c, a) {
		t.Error("Equals is not symmetric for unequal nodes")
	}
}

func TestEqualsStructural(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"SamePrimitive", Integer, Integer, true},
		{"DifferentPrimitive", Integer, Double, false},
		{"PrimitiveVsArray", Integer, NewArray(Integer), false},
		{"EqualArrays", NewArray(String), NewArray(String), true},
		{"UnequalArrays", NewArray(String), NewArray(Bool), false},
		{"EqualMaps", NewMap(Integer), NewMap(Integer), true},
		{"ArrayVsMap", NewArray(Integer), NewMap(Integer), false},
		{
			"EqualEnums",
			NewEnum("E", true, []string{"a", "b"}),
			NewEnum("E", true, []string{"b", "a"}), // case order irrelevant
			true,
		},
		{
			"UnequalEnumCases",
			NewEnum("E", true, []string{"a", "b"}),
			NewEnum("E", true, []string{"a", "c"}),
			false,
		},
		{
			"UnequalEnumNames",
			NewEnum("E1", true, []string{"a"}),
			NewEnum("E2", true, []string{"a"}),
			false,
		},
		{
			"EqualUnionsDifferentMemberOrder",
			NewUnion("U", true, []Type{Integer, String}),
			NewUnion("U", true, []Type{String, Integer}),
			true,
		},
		{
			"UnequalUnionMembers",
			NewUnion("U", true, []Type{Integer, String}),
			NewUnion("U", true, []Type{Integer, Bool}),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equals(tt.a, tt.b); got != tt.want {
				t.Errorf("Equals() = %v, want %v", got, tt.want)
			}
			if got := Equals(tt.b, tt.a); got != tt.want {
				t.Errorf("Equals() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqualsClasses(t *testing.T) {
	build := func(propType Type) *Class {
		c := NewClass("C", true)
		c.SetProperties(map[string]Type{"x": propType, "y": String})
		return c
	}

	if !Equals(build(Integer), build(Integer)) {
		t.Error("structurally identical classes compare unequal")
	}
	if Equals(build(Integer), build(Double)) {
		t.Error("classes with different property types compare equal")
	}

	other := NewClass("C", true)
	other.SetProperties(map[string]Type{"x": Integer, "z": String})
	if Equals(build(Integer), other) {
		t.Error("classes with different property names compare equal")
	}
}

func TestEqualsCyclic(t *testing.T) {
	// Two independently constructed self-referential graphs with identical
	// structure but distinct identities must compare equal, and the
	// comparison must terminate.
	a, b := selfClass(), selfClass()
	if !Equals(a, b) {
		t.Error("independently built cyclic graphs compare unequal")
	}

	// A cyclic graph differing in one leaf must compare unequal.
	c := NewClass("Node", true)
	c.SetProperties(map[string]Type{
		"value": String, // differs
		"next":  c,
	})
	if Equals(a, c) {
		t.Error("cyclic graphs with different leaves compare equal")
	}
}

func TestEqualsMutualCycle(t *testing.T) {
	// A ↔ B mutual recursion, built twice.
	build := func() *Class {
		a := NewClass("A", true)
		b := NewClass("B", true)
		a.SetProperties(map[string]Type{"b": b})
		b.SetProperties(map[string]Type{"a": a})
		return a
	}
	if !Equals(build(), build()) {
		t.Error("mutually recursive graphs compare unequal")
	}
}

func TestEqualNodesHaveEqualHashes(t *testing.T) {
	pairs := []struct {
		name string
		a, b Type
	}{
		{"Arrays", NewArray(Integer), NewArray(Integer)},
		{"Maps", NewMap(String), NewMap(String)},
		{
			"Enums",
			NewEnum("E", true, []string{"a", "b"}),
			NewEnum("E", true, []string{"b", "a"}),
		},
		{
			"Unions",
			NewUnion("U", true, []Type{Integer, String}),
			NewUnion("U", true, []Type{String, Integer}),
		},
		{"CyclicClasses", selfClass(), selfClass()},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			if !Equals(tt.a, tt.b) {
				t.Fatal("test pair is not equal")
			}
			if tt.a.Hash() != tt.b.Hash() {
				t.Error("equal nodes produced different hashes")
			}
			if tt.a.FlatHash() != tt.b.FlatHash() {
				t.Error("equal nodes produced different flat hashes")
			}
		})
	}
}

func TestHashIsOneLevelDeep(t *testing.T) {
	// Hashes fold only the immediate children's flat hashes, so two arrays
	// differing deeper than one level share a hash. This is by contract:
	// hash equality must never be read as node equality.
	a := NewArray(NewArray(Integer))
	b := NewArray(NewArray(String))
	if a.Hash() != b.Hash() {
		t.Error("hash depends on grandchildren; expected one-level folding")
	}
	if Equals(a, b) {
		t.Error("deeply different arrays compare equal")
	}
}
