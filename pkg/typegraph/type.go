package typegraph

// Type is the common contract of every node in the type graph.
//
// The interface is sealed: only the six variants in this package implement
// it. Nodes are compared by identity where sharing matters (traversal "seen"
// sets) and by [Equals] where structure matters. Interface equality (==) on
// Type values is identity comparison, which is meaningful because every
// variant is a pointer type and primitives are interned singletons.
type Type interface {
	// Kind returns the tag identifying the concrete variant.
	Kind() Kind

	// Children returns the ordered, duplicate-free set of nodes this node
	// directly contains. Primitives and enums have none. The returned slice
	// is freshly allocated and safe to modify.
	Children() []Type

	// IsNullable reports whether the node admits null: true only for the
	// null primitive and for unions containing it.
	IsNullable() bool

	// MapChildren applies f to every direct child and returns a new node of
	// the same variant if at least one child changed under f. If every child
	// maps to itself the receiver is returned unchanged, so bulk rewrites do
	// not duplicate untouched subgraphs. MapChildren never recurses into
	// grandchildren; callers recurse explicitly if they need to.
	MapChildren(f func(Type) Type) Type

	// FlatHash returns a hash derived only from the node's kind and its own
	// immediate attributes (candidate names and case/property/member counts).
	// It never recurses, so it is well-defined on cyclic graphs.
	FlatHash() uint32

	// Hash returns the node's general hash: the flat hash folded with the
	// flat hashes of direct children, one level deep only. Nodes equal under
	// [Equals] have equal hashes; the converse does not hold.
	Hash() uint32

	// expand performs one equality-expansion step against other: either an
	// immediate verdict or the child pairs that still need checking.
	expand(other Type) expansion

	// sealed prevents implementations outside this package, keeping the
	// variant set closed.
	sealed()
}

// Primitive is a leaf node with no substructure and no mutable state:
// one of any, null, bool, integer, double, or string.
//
// Primitives are interned: use the package-level singletons ([Any], [Null],
// [Bool], [Integer], [Double], [String]) or [PrimitiveOf] rather than
// constructing values, so that identity comparison works across the graph.
type Primitive struct {
	kind Kind
}

// Interned primitive singletons. All graphs share these nodes.
var (
	Any     = &Primitive{KindAny}
	Null    = &Primitive{KindNull}
	Bool    = &Primitive{KindBool}
	Integer = &Primitive{KindInteger}
	Double  = &Primitive{KindDouble}
	String  = &Primitive{KindString}
)

// PrimitiveOf returns the interned primitive singleton for kind.
// It panics with an invariant violation if kind is not a primitive kind.
func PrimitiveOf(kind Kind) *Primitive {
	switch kind {
	case KindAny:
		return Any
	case KindNull:
		return Null
	case KindBool:
		return Bool
	case KindInteger:
		return Integer
	case KindDouble:
		return Double
	case KindString:
		return String
	}
	assert(false, "PrimitiveOf", nil, "kind %s is not primitive", kind)
	return nil
}

// Kind returns the primitive's kind tag.
func (p *Primitive) Kind() Kind { return p.kind }

// Children returns nil: primitives have no substructure.
func (p *Primitive) Children() []Type { return nil }

// IsNullable reports whether the primitive is the null primitive.
func (p *Primitive) IsNullable() bool { return p.kind == KindNull }

// MapChildren returns the receiver unchanged: primitives have no children.
func (p *Primitive) MapChildren(f func(Type) Type) Type { return p }

func (p *Primitive) sealed() {}

// Array wraps a single child, the item type.
type Array struct {
	items Type
}

// NewArray creates an array node with the given item type.
func NewArray(items Type) *Array {
	assert(items != nil, "NewArray", nil, "item type must not be nil")
	return &Array{items: items}
}

// Items returns the item type.
func (a *Array) Items() Type { return a.items }

// Kind returns KindArray.
func (a *Array) Kind() Kind { return KindArray }

// Children returns the single item type.
func (a *Array) Children() []Type { return []Type{a.items} }

// IsNullable returns false: arrays themselves never admit null.
func (a *Array) IsNullable() bool { return false }

// MapChildren applies f to the item type, returning a new array only if the
// item actually changed.
func (a *Array) MapChildren(f func(Type) Type) Type {
	items := f(a.items)
	if items == a.items {
		return a
	}
	return NewArray(items)
}

func (a *Array) sealed() {}

// Map wraps a single child, the value type. Keys are implicitly strings.
type Map struct {
	values Type
}

// NewMap creates a map node with the given value type.
func NewMap(values Type) *Map {
	assert(values != nil, "NewMap", nil, "value type must not be nil")
	return &Map{values: values}
}

// Values returns the value type.
func (m *Map) Values() Type { return m.values }

// Kind returns KindMap.
func (m *Map) Kind() Kind { return KindMap }

// Children returns the single value type.
func (m *Map) Children() []Type { return []Type{m.values} }

// IsNullable returns false: maps themselves never admit null.
func (m *Map) IsNullable() bool { return false }

// MapChildren applies f to the value type, returning a new map only if the
// value type actually changed.
func (m *Map) MapChildren(f func(Type) Type) Type {
	values := f(m.values)
	if values == m.values {
		return m
	}
	return NewMap(values)
}

func (m *Map) sealed() {}

// dedupeIdentity returns types with identity-duplicates removed, preserving
// the order of first occurrence. Children sets are duplicate-free by
// contract, so variant Children implementations use this where the same
// node can appear behind several edges.
func dedupeIdentity(types []Type) []Type {
	seen := make(map[Type]bool, len(types))
	out := make([]Type, 0, len(types))
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
