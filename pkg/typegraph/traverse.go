package typegraph

import "slices"

// TopLevels is the insertion-ordered mapping from root name to root node:
// the entry points of the graph and the owner that keeps every reachable
// node alive for the builder's lifetime. Iteration order is insertion order,
// so traversals over the same graph are reproducible.
type TopLevels struct {
	names  []string
	byName map[string]Type
}

// NewTopLevels creates an empty top-levels mapping.
func NewTopLevels() *TopLevels {
	return &TopLevels{byName: make(map[string]Type)}
}

// Add registers a root node under name. Re-adding an existing name replaces
// its node but keeps its position in the iteration order.
func (tl *TopLevels) Add(name string, t Type) {
	assert(t != nil, "TopLevels.Add", nil, "root %q must not be nil", name)
	if _, exists := tl.byName[name]; !exists {
		tl.names = append(tl.names, name)
	}
	tl.byName[name] = t
}

// Get returns the root node registered under name, or nil and false.
func (tl *TopLevels) Get(name string) (Type, bool) {
	t, ok := tl.byName[name]
	return t, ok
}

// Names returns the root names in insertion order. The returned slice is a
// copy.
func (tl *TopLevels) Names() []string {
	out := make([]string, len(tl.names))
	copy(out, tl.names)
	return out
}

// Len returns the number of roots.
func (tl *TopLevels) Len() int { return len(tl.names) }

// FilterTypes visits every node reachable from every root exactly once and
// returns the nodes matching pred.
//
// childrenOf selects which edges to follow; nil means [Type.Children].
// A node is marked seen before its children are visited, which is what makes
// the walk cycle-safe: a node that transitively reaches itself finds itself
// already marked and stops.
//
// Matches accumulate in post-order (descendants before the ancestor that
// discovered them) and the final result is reversed. The resulting order is
// stable and reproducible, suitable for deterministic emission, and keeps
// root-ward matches ahead of their own descendants, but it is not a strict
// topological sort: cycles make one impossible.
func FilterTypes(pred func(Type) bool, topLevels *TopLevels, childrenOf func(Type) []Type) []Type {
	assert(topLevels != nil, "FilterTypes", nil, "topLevels must not be nil")
	if childrenOf == nil {
		childrenOf = func(t Type) []Type { return t.Children() }
	}

	seen := make(map[Type]bool)
	var matched []Type

	var visit func(t Type)
	visit = func(t Type) {
		if seen[t] {
			return
		}
		seen[t] = true
		for _, child := range childrenOf(t) {
			visit(child)
		}
		if pred(t) {
			matched = append(matched, t)
		}
	}

	for _, name := range topLevels.names {
		visit(topLevels.byName[name])
	}
	slices.Reverse(matched)
	return matched
}

// IsNamed reports whether t is a named type (class, enum, or union).
func IsNamed(t Type) bool { return t.Kind().IsNamed() }

// AllNamedTypes returns every named type reachable from the roots, in
// [FilterTypes] order. childrenOf follows the same contract as FilterTypes.
func AllNamedTypes(topLevels *TopLevels, childrenOf func(Type) []Type) []NamedType {
	matched := FilterTypes(IsNamed, topLevels, childrenOf)
	named := make([]NamedType, len(matched))
	for i, t := range matched {
		named[i] = t.(NamedType)
	}
	return named
}

// SeparatedNamedTypes partitions named types by concrete variant, preserving
// relative order within each subset.
type SeparatedNamedTypes struct {
	Classes []*Class
	Enums   []*Enum
	Unions  []*Union
}

// SeparateNamedTypes partitions types into classes, enums, and unions,
// preserving their relative order.
func SeparateNamedTypes(types []NamedType) SeparatedNamedTypes {
	var out SeparatedNamedTypes
	for _, t := range types {
		switch n := t.(type) {
		case *Class:
			out.Classes = append(out.Classes, n)
		case *Enum:
			out.Enums = append(out.Enums, n)
		case *Union:
			out.Unions = append(out.Unions, n)
		default:
			assert(false, "SeparateNamedTypes", t, "unexpected named type kind %s", t.Kind())
		}
	}
	return out
}
