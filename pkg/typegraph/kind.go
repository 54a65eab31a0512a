package typegraph

// Kind identifies the concrete variant of a type node. The set of kinds is
// closed: six primitive kinds plus the five compound/named kinds. Consumers
// should dispatch over kinds via [MatchType] rather than ad-hoc type switches
// so that variant handling stays exhaustive in one place.
type Kind uint8

const (
	// KindAny is the unconstrained primitive (no information about the shape).
	KindAny Kind = iota
	// KindNull is the null primitive. It is the only primitive that is nullable.
	KindNull
	// KindBool is the boolean primitive.
	KindBool
	// KindInteger is the integral number primitive.
	KindInteger
	// KindDouble is the floating-point number primitive. Integer widens to
	// double when both appear in the same position.
	KindDouble
	// KindString is the string primitive.
	KindString
	// KindArray is a homogeneous ordered collection of one item type.
	KindArray
	// KindClass is a named record type mapping property names to types.
	KindClass
	// KindMap is a string-keyed mapping with one value type.
	KindMap
	// KindEnum is a named set of string case labels.
	KindEnum
	// KindUnion is a named set of two or more member types of distinct kinds.
	KindUnion
)

// kindNames maps each kind to its canonical lowercase name. The names are
// part of the serialized graph format (see pkg/graphio) and must not change.
var kindNames = [...]string{
	KindAny:     "any",
	KindNull:    "null",
	KindBool:    "bool",
	KindInteger: "integer",
	KindDouble:  "double",
	KindString:  "string",
	KindArray:   "array",
	KindClass:   "class",
	KindMap:     "map",
	KindEnum:    "enum",
	KindUnion:   "union",
}

// String returns the canonical lowercase name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether the kind is one of the six primitive kinds
// (any, null, bool, integer, double, string).
func (k Kind) IsPrimitive() bool { return k <= KindString }

// IsNamed reports whether nodes of this kind carry candidate names
// (class, enum, union).
func (k Kind) IsNamed() bool {
	return k == KindClass || k == KindEnum || k == KindUnion
}

// KindFromName returns the kind with the given canonical name.
// The second return value is false if the name does not match any kind.
func KindFromName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}
