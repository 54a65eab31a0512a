package typegraph

// Enum is a named type holding a duplicate-free set of string case labels.
// Case order is preserved for emission but is irrelevant for equality and
// hashing. Enums have no substructure.
type Enum struct {
	nameSet
	cases []string
}

// NewEnum creates an enum node with the given initial candidate name and
// case labels. Duplicate labels are an invariant violation; an enum with
// zero cases is valid (it can arise from an empty schema enum and is
// rejected later by emitters that cannot express it).
func NewEnum(name string, inferred bool, cases []string) *Enum {
	seen := make(map[string]bool, len(cases))
	for _, label := range cases {
		assert(!seen[label], "NewEnum", nil, "duplicate case label %q", label)
		seen[label] = true
	}
	out := make([]string, len(cases))
	copy(out, cases)
	return &Enum{nameSet: newNameSet("NewEnum", name, inferred), cases: out}
}

// Cases returns the case labels in insertion order. The returned slice is a
// copy.
func (e *Enum) Cases() []string {
	out := make([]string, len(e.cases))
	copy(out, e.cases)
	return out
}

// HasCase reports whether label is one of the enum's cases.
func (e *Enum) HasCase(label string) bool {
	for _, c := range e.cases {
		if c == label {
			return true
		}
	}
	return false
}

// Kind returns KindEnum.
func (e *Enum) Kind() Kind { return KindEnum }

// Children returns nil: enums have no substructure.
func (e *Enum) Children() []Type { return nil }

// IsNullable returns false.
func (e *Enum) IsNullable() bool { return false }

// MapChildren returns the receiver unchanged: enums have no children.
func (e *Enum) MapChildren(f func(Type) Type) Type { return e }

func (e *Enum) sealed() {}
