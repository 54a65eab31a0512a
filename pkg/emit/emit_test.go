package emit

import "testing"

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{}.WithDefaults()
	if opts.PackageName != DefaultPackageName {
		t.Errorf("PackageName = %q, want %q", opts.PackageName, DefaultPackageName)
	}

	opts = Options{PackageName: "models"}.WithDefaults()
	if opts.PackageName != "models" {
		t.Errorf("PackageName = %q, want models", opts.PackageName)
	}
}

func TestLanguageMatches(t *testing.T) {
	lang := &Language{Name: "typescript", Aliases: []string{"ts"}}
	tests := []struct {
		name string
		want bool
	}{
		{"typescript", true},
		{"TypeScript", true},
		{"ts", true},
		{"TS", true},
		{"go", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := lang.Matches(tt.name); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFindLanguage(t *testing.T) {
	all := []*Language{
		{Name: "go", Aliases: []string{"golang"}},
		{Name: "python", Aliases: []string{"py"}},
	}
	if l := FindLanguage("golang", all); l == nil || l.Name != "go" {
		t.Errorf("FindLanguage(golang) = %v", l)
	}
	if l := FindLanguage("rust", all); l != nil {
		t.Errorf("FindLanguage(rust) = %v, want nil", l)
	}
}
