package typegraph

import (
	"reflect"
	"testing"
)

func TestPrimitiveSingletons(t *testing.T) {
	tests := []struct {
		name     string
		prim     *Primitive
		kind     Kind
		nullable bool
	}{
		{"Any", Any, KindAny, false},
		{"Null", Null, KindNull, true},
		{"Bool", Bool, KindBool, false},
		{"Integer", Integer, KindInteger, false},
		{"Double", Double, KindDouble, false},
		{"String", String, KindString, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.prim.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
			if got := tt.prim.IsNullable(); got != tt.nullable {
				t.Errorf("IsNullable() = %v, want %v", got, tt.nullable)
			}
			if got := tt.prim.Children(); got != nil {
				t.Errorf("Children() = %v, want nil", got)
			}
			if got := PrimitiveOf(tt.kind); got != tt.prim {
				t.Error("PrimitiveOf did not return the interned singleton")
			}
		})
	}
}

func TestPrimitiveOfNonPrimitive(t *testing.T) {
	expectInvariant(t, func() { PrimitiveOf(KindArray) })
}

func TestChildren(t *testing.T) {
	shared := NewArray(Integer)
	class := NewClass("Pair", true)
	class.SetProperties(map[string]Type{
		"first":  shared,
		"second": shared,
		"label":  String,
	})

	// Sorted by property name, identity duplicates removed.
	got := class.Children()
	want := []Type{shared, String}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Children() = %v, want %v", got, want)
	}
}

func TestMapChildrenIdentityPreserving(t *testing.T) {
	identity := func(t Type) Type { return t }

	class := NewClass("C", true)
	class.SetProperties(map[string]Type{"x": Integer})
	union := NewUnion("U", true, []Type{Integer, String})
	array := NewArray(Bool)
	mapped := NewMap(Double)

	tests := []struct {
		name string
		node Type
	}{
		{"Primitive", Integer},
		{"Array", array},
		{"Map", mapped},
		{"Class", class},
		{"Enum", NewEnum("E", true, []string{"a", "b"})},
		{"Union", union},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.MapChildren(identity); got != tt.node {
				t.Error("MapChildren(identity) did not return the receiver")
			}
		})
	}
}

func TestMapChildrenRewrites(t *testing.T) {
	widen := func(t Type) Type {
		if t == Integer {
			return Double
		}
		return t
	}

	t.Run("Array", func(t *testing.T) {
		a := NewArray(Integer)
		got := a.MapChildren(widen)
		if got == Type(a) {
			t.Fatal("expected a new node")
		}
		if got.(*Array).Items() != Double {
			t.Error("item type not rewritten")
		}
	})

	t.Run("Class", func(t *testing.T) {
		c := NewClass("C", true)
		c.SetProperties(map[string]Type{"n": Integer, "s": String})
		got := c.MapChildren(widen).(*Class)
		if got == c {
			t.Fatal("expected a new node")
		}
		if got.Properties()["n"] != Double || got.Properties()["s"] != String {
			t.Errorf("properties = %v", got.Properties())
		}
		if !reflect.DeepEqual(got.Names(), c.Names()) {
			t.Error("names not preserved across rewrite")
		}
	})

	t.Run("Union", func(t *testing.T) {
		u := NewUnion("U", true, []Type{Integer, Null})
		got := u.MapChildren(widen).(*Union)
		if got == u {
			t.Fatal("expected a new node")
		}
		if got.Members()[0] != Double {
			t.Error("member not rewritten")
		}
		if !got.IsNullable() {
			t.Error("null member lost")
		}
	})

	// MapChildren never recurses into grandchildren.
	t.Run("OneLevelOnly", func(t *testing.T) {
		inner := NewArray(Integer)
		outer := NewArray(inner)
		got := outer.MapChildren(func(t Type) Type { return t }).(*Array)
		if got.Items() != Type(inner) {
			t.Error("grandchildren were touched")
		}
	})
}

func TestUnionNullability(t *testing.T) {
	withNull := NewUnion("U", true, []Type{Integer, Null})
	withoutNull := NewUnion("U", true, []Type{Integer, String})

	if !withNull.IsNullable() {
		t.Error("union containing null: IsNullable() = false")
	}
	if withoutNull.IsNullable() {
		t.Error("union without null: IsNullable() = true")
	}
}

func TestUnionConstructionInvariants(t *testing.T) {
	expectInvariant(t, func() { NewUnion("U", true, nil) })
	expectInvariant(t, func() { NewUnion("U", true, []Type{Integer}) })
	expectInvariant(t, func() { NewUnion("U", true, []Type{Integer, Integer}) })
	expectInvariant(t, func() {
		NewUnion("U", true, []Type{NewArray(Integer), NewArray(String)})
	})
}

func TestClassTwoPhaseInit(t *testing.T) {
	t.Run("ReadBeforeSet", func(t *testing.T) {
		c := NewClass("C", true)
		expectInvariant(t, func() { c.Properties() })
	})

	t.Run("DoubleSet", func(t *testing.T) {
		c := NewClass("C", true)
		c.SetProperties(map[string]Type{"x": Integer})
		expectInvariant(t, func() { c.SetProperties(map[string]Type{"y": String}) })
	})

	t.Run("EmptyPropertiesValid", func(t *testing.T) {
		c := NewClass("C", true)
		c.SetProperties(nil)
		if got := len(c.Properties()); got != 0 {
			t.Errorf("len(Properties()) = %d, want 0", got)
		}
	})
}

func TestEnumDuplicateCases(t *testing.T) {
	expectInvariant(t, func() { NewEnum("E", true, []string{"a", "a"}) })
}

func TestKindNames(t *testing.T) {
	for k := KindAny; k <= KindUnion; k++ {
		name := k.String()
		if name == "unknown" {
			t.Fatalf("kind %d has no name", k)
		}
		got, ok := KindFromName(name)
		if !ok || got != k {
			t.Errorf("KindFromName(%q) = %v, %v; want %v, true", name, got, ok, k)
		}
	}
	if _, ok := KindFromName("nonsense"); ok {
		t.Error("KindFromName accepted an unknown name")
	}
}
