package typegraph

import (
	"reflect"
	"testing"
)

func TestCombineNames(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{
			name:  "SingleName",
			names: []string{"Foo"},
			want:  "Foo",
		},
		{
			name:  "CommonPrefix",
			names: []string{"HelloWorld", "HelloMoon"},
			want:  "Hello",
		},
		{
			name:  "CommonSuffix",
			names: []string{"FirstResult", "SecondResult"},
			want:  "Result",
		},
		{
			name:  "PrefixAndSuffix",
			names: []string{"TopLevelElement", "TopOtherElement"},
			want:  "TopElement",
		},
		{
			name:  "ShortPrefixFiltered",
			names: []string{"AB", "CD"},
			want:  "AB",
		},
		{
			name:  "TwoCharPrefixFiltered",
			names: []string{"ABx", "ABy"},
			want:  "ABx",
		},
		{
			name:  "NothingInCommon",
			names: []string{"Alpha", "Omega"},
			want:  "Alpha",
		},
		{
			name:  "ThreeNames",
			names: []string{"UserRecord", "UserEntry", "UserRow"},
			want:  "User",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CombineNames(tt.names); got != tt.want {
				t.Errorf("CombineNames(%v) = %q, want %q", tt.names, got, tt.want)
			}
		})
	}
}

func TestCombineNamesEmpty(t *testing.T) {
	expectInvariant(t, func() { CombineNames(nil) })
}

func TestAddName(t *testing.T) {
	t.Run("InferredAccumulates", func(t *testing.T) {
		c := NewClass("First", true)
		c.AddName("Second", true)
		c.AddName("First", true) // duplicate ignored
		if got, want := c.Names(), []string{"First", "Second"}; !reflect.DeepEqual(got, want) {
			t.Errorf("Names() = %v, want %v", got, want)
		}
		if !c.AreNamesInferred() {
			t.Error("AreNamesInferred() = false, want true")
		}
	})

	t.Run("GivenReplacesInferred", func(t *testing.T) {
		c := NewClass("guess", true)
		c.AddName("also_a_guess", true)
		c.AddName("Title", false)
		if got, want := c.Names(), []string{"Title"}; !reflect.DeepEqual(got, want) {
			t.Errorf("Names() = %v, want %v", got, want)
		}
		if c.AreNamesInferred() {
			t.Error("AreNamesInferred() = true, want false")
		}
	})

	t.Run("InferredIsNoOpAfterGiven", func(t *testing.T) {
		c := NewClass("Title", false)
		c.AddName("guess", true)
		if got, want := c.Names(), []string{"Title"}; !reflect.DeepEqual(got, want) {
			t.Errorf("Names() = %v, want %v", got, want)
		}
	})

	t.Run("GivenAccumulates", func(t *testing.T) {
		c := NewClass("TitleA", false)
		c.AddName("TitleB", false)
		if got, want := c.Names(), []string{"TitleA", "TitleB"}; !reflect.DeepEqual(got, want) {
			t.Errorf("Names() = %v, want %v", got, want)
		}
	})
}

func TestSetGivenName(t *testing.T) {
	c := NewClass("guess", true)
	c.AddName("another", true)
	c.SetGivenName("Definitive")

	if got, want := c.Names(), []string{"Definitive"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if c.AreNamesInferred() {
		t.Error("AreNamesInferred() = true, want false")
	}

	// SetGivenName always replaces, even a previous given name.
	c.SetGivenName("Final")
	if got, want := c.Names(), []string{"Final"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestNamedTypeWithoutName(t *testing.T) {
	expectInvariant(t, func() { NewClass("", true) })
	expectInvariant(t, func() { NewEnum("", true, []string{"a"}) })
	expectInvariant(t, func() { NewUnion("", true, []Type{Integer, String}) })
}

func TestCombinedName(t *testing.T) {
	c := NewClass("HelloWorld", true)
	c.AddName("HelloMoon", true)
	if got := c.CombinedName(); got != "Hello" {
		t.Errorf("CombinedName() = %q, want %q", got, "Hello")
	}
}
