package typegraph

// NamedType is implemented by the three variants that carry candidate names:
// [Class], [Enum], and [Union]. The name set is never empty, duplicate-free,
// and insertion-ordered. Names are either inferred (derived from structural
// position in the source document) or given (explicit, e.g. a schema title);
// given names always outrank inferred ones.
type NamedType interface {
	Type

	// Names returns the candidate names in insertion order.
	// The returned slice is a copy.
	Names() []string

	// AreNamesInferred reports whether the current name set is inferred
	// rather than given.
	AreNamesInferred() bool

	// AddName records an additional candidate name discovered for this node.
	// Adding an inferred name to a node that already holds a given name is a
	// no-op; adding a given name to a node that held only inferred names
	// replaces the whole set. Duplicates are ignored.
	AddName(name string, inferred bool)

	// SetGivenName replaces the name set with the single given name and
	// marks the set as given.
	SetGivenName(name string)

	// CombinedName returns the single identifier synthesized from the
	// candidate names via [CombineNames].
	CombinedName() string
}

// nameSet holds the candidate names of a named type. It is embedded by the
// three named variants; all mutation flows through addName/setGivenName so
// the "given outranks inferred" rule lives in exactly one place.
type nameSet struct {
	names    []string // insertion order, duplicate-free, never empty
	inferred bool
}

// newNameSet creates a name set holding the single initial name.
// An empty initial name is an invariant violation: named types must never
// exist without at least one candidate name.
func newNameSet(op, name string, inferred bool) nameSet {
	assert(name != "", op, nil, "named type constructed without a name")
	return nameSet{names: []string{name}, inferred: inferred}
}

func (s *nameSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *nameSet) AreNamesInferred() bool { return s.inferred }

func (s *nameSet) AddName(name string, inferred bool) {
	assert(name != "", "AddName", nil, "name must not be empty")
	if inferred && !s.inferred {
		// More specific information already present; weaker evidence
		// cannot dilute it.
		return
	}
	if !inferred && s.inferred {
		s.names = []string{name}
		s.inferred = false
		return
	}
	for _, n := range s.names {
		if n == name {
			return
		}
	}
	s.names = append(s.names, name)
}

func (s *nameSet) SetGivenName(name string) {
	assert(name != "", "SetGivenName", nil, "name must not be empty")
	s.names = []string{name}
	s.inferred = false
}

func (s *nameSet) CombinedName() string { return CombineNames(s.names) }

// clone returns a deep copy, used by MapChildren when a named node must be
// rebuilt with rewritten children but identical naming state.
func (s *nameSet) clone() nameSet {
	return nameSet{names: s.Names(), inferred: s.inferred}
}

// equal reports whether both sets hold the same names, ignoring order.
func (s *nameSet) equal(other *nameSet) bool {
	if len(s.names) != len(other.names) {
		return false
	}
	for _, n := range s.names {
		if !other.contains(n) {
			return false
		}
	}
	return true
}

func (s *nameSet) contains(name string) bool {
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

// hash folds every name into a single order-independent value.
func (s *nameSet) hash() uint32 {
	var h uint32
	for _, n := range s.names {
		h += hashString(n)
	}
	return h
}

// CombineNames synthesizes a single identifier from a set of candidate
// names. The heuristic keeps what the names agree on:
//
//  1. A single name is returned verbatim.
//  2. Otherwise the longest common prefix and longest common suffix of all
//     names (measured against the first name, shrunk on any mismatch) are
//     computed independently.
//  3. The prefix and suffix each survive only if longer than two characters.
//  4. Their concatenation is returned if longer than two characters;
//     otherwise the first name is returned verbatim.
//
// CombineNames is a heuristic, not a uniqueness guarantee: emitters must
// still resolve collisions between combined names globally (see pkg/emit).
// An empty name list is an invariant violation.
func CombineNames(names []string) string {
	assert(len(names) > 0, "CombineNames", nil, "no names to combine")
	if len(names) == 1 {
		return names[0]
	}

	first := []rune(names[0])
	prefix, suffix := len(first), len(first)
	for _, name := range names[1:] {
		runes := []rune(name)
		prefix = min(prefix, commonPrefixLen(first, runes))
		suffix = min(suffix, commonSuffixLen(first, runes))
	}

	var combined string
	if prefix > 2 {
		combined = string(first[:prefix])
	}
	if suffix > 2 {
		combined += string(first[len(first)-suffix:])
	}
	if len([]rune(combined)) > 2 {
		return combined
	}
	return names[0]
}

func commonPrefixLen(a, b []rune) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func commonSuffixLen(a, b []rune) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[len(a)-1-i] != b[len(b)-1-i] {
			return i
		}
	}
	return n
}
