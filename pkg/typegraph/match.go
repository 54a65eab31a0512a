package typegraph

// TypeMatcher is an exhaustive case analysis over the closed variant set:
// one handler per primitive sub-kind plus one per compound variant. Every
// consumer dispatches through [MatchType] instead of ad-hoc type tests, so
// a new variant has a single place where every dispatch site must be
// revisited.
//
// All eleven handlers must be set. A nil handler for the kind that is
// actually matched panics with an invariant violation: an unmapped kind is
// a bug in the caller, never a recoverable condition.
type TypeMatcher[T any] struct {
	Any     func(*Primitive) T
	Null    func(*Primitive) T
	Bool    func(*Primitive) T
	Integer func(*Primitive) T
	Double  func(*Primitive) T
	String  func(*Primitive) T
	Array   func(*Array) T
	Class   func(*Class) T
	Map     func(*Map) T
	Enum    func(*Enum) T
	Union   func(*Union) T
}

// MatchType invokes exactly the matcher handler corresponding to t's
// variant and returns its result.
func MatchType[T any](t Type, m TypeMatcher[T]) T {
	switch n := t.(type) {
	case *Primitive:
		var handler func(*Primitive) T
		switch n.kind {
		case KindAny:
			handler = m.Any
		case KindNull:
			handler = m.Null
		case KindBool:
			handler = m.Bool
		case KindInteger:
			handler = m.Integer
		case KindDouble:
			handler = m.Double
		case KindString:
			handler = m.String
		}
		assert(handler != nil, "MatchType", t, "no handler for primitive kind %s", n.kind)
		return handler(n)
	case *Array:
		assert(m.Array != nil, "MatchType", t, "no handler for array")
		return m.Array(n)
	case *Class:
		assert(m.Class != nil, "MatchType", t, "no handler for class")
		return m.Class(n)
	case *Map:
		assert(m.Map != nil, "MatchType", t, "no handler for map")
		return m.Map(n)
	case *Enum:
		assert(m.Enum != nil, "MatchType", t, "no handler for enum")
		return m.Enum(n)
	case *Union:
		assert(m.Union != nil, "MatchType", t, "no handler for union")
		return m.Union(n)
	}
	assert(false, "MatchType", t, "unknown type variant")
	var zero T
	return zero
}
