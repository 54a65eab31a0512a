package typegraph

// typePair is one pending equality obligation between two nodes.
type typePair struct {
	a, b Type
}

// expansion is the result of one equality-expansion step: either an
// immediate verdict (decided) or the list of child pairs that must
// themselves compare equal.
type expansion struct {
	decided bool
	equal   bool
	pairs   []typePair
}

func verdict(equal bool) expansion { return expansion{decided: true, equal: equal} }

func expandInto(pairs ...typePair) expansion { return expansion{pairs: pairs} }

// expand for primitives: equal iff same kind. Kinds differing across
// variants is caught here too, since a non-primitive other never has a
// primitive kind.
func (p *Primitive) expand(other Type) expansion {
	return verdict(p.kind == other.Kind())
}

func (a *Array) expand(other Type) expansion {
	o, ok := other.(*Array)
	if !ok {
		return verdict(false)
	}
	return expandInto(typePair{a.items, o.items})
}

func (m *Map) expand(other Type) expansion {
	o, ok := other.(*Map)
	if !ok {
		return verdict(false)
	}
	return expandInto(typePair{m.values, o.values})
}

// expand for classes short-circuits on differing candidate names, property
// counts, or property name sets; otherwise it yields one pair per property.
func (c *Class) expand(other Type) expansion {
	o, ok := other.(*Class)
	if !ok {
		return verdict(false)
	}
	if !c.nameSet.equal(&o.nameSet) {
		return verdict(false)
	}
	props, oProps := c.Properties(), o.Properties()
	if len(props) != len(oProps) {
		return verdict(false)
	}
	pairs := make([]typePair, 0, len(props))
	for name, t := range props {
		ot, exists := oProps[name]
		if !exists {
			return verdict(false)
		}
		pairs = append(pairs, typePair{t, ot})
	}
	if len(pairs) == 0 {
		return verdict(true)
	}
	return expansion{pairs: pairs}
}

// expand for enums: equal iff same candidate names and same case label set
// (order-irrelevant). Enums have no children, so the verdict is always
// immediate.
func (e *Enum) expand(other Type) expansion {
	o, ok := other.(*Enum)
	if !ok {
		return verdict(false)
	}
	if !e.nameSet.equal(&o.nameSet) {
		return verdict(false)
	}
	if len(e.cases) != len(o.cases) {
		return verdict(false)
	}
	for _, label := range e.cases {
		if !o.HasCase(label) {
			return verdict(false)
		}
	}
	return verdict(true)
}

// expand for unions short-circuits on differing candidate names or member
// counts, then pairs members by kind. Kinds are unique within a union, so
// sorting by kind aligns members positionally; a kind present on one side
// only shows up as a kind mismatch in the resulting pair.
func (u *Union) expand(other Type) expansion {
	o, ok := other.(*Union)
	if !ok {
		return verdict(false)
	}
	if !u.nameSet.equal(&o.nameSet) {
		return verdict(false)
	}
	if len(u.members) != len(o.members) {
		return verdict(false)
	}
	a, b := u.SortedMembers(), o.SortedMembers()
	pairs := make([]typePair, len(a))
	for i := range a {
		pairs[i] = typePair{a[i], b[i]}
	}
	return expansion{pairs: pairs}
}

// Equals reports whether a and b denote the same shape. It is safe on
// arbitrarily cyclic graphs and independent of node identity: two separately
// constructed graphs with the same structure compare equal.
//
// The check runs a work list seeded with the pair (a, b). Each popped pair
// is recorded, keyed by the hash of its first element, before expansion;
// a pair seen again is treated as already equal and skipped. This is what
// terminates cycles: re-entering a cycle means the comparison so far has
// been consistent, and it is assumed (not proven) to stay consistent around
// the loop. The algorithm terminates because a finite graph has finitely
// many distinct pairs and each is recorded at most once.
func Equals(a, b Type) bool {
	assert(a != nil && b != nil, "Equals", nil, "cannot compare nil types")
	if a == b {
		return true
	}

	recorded := make(map[uint32][]typePair)
	work := []typePair{{a, b}}
	for len(work) > 0 {
		pair := work[len(work)-1]
		work = work[:len(work)-1]

		if pair.a == pair.b {
			continue
		}
		key := pair.a.Hash()
		if pairRecorded(recorded[key], pair) {
			continue
		}
		recorded[key] = append(recorded[key], pair)

		exp := pair.a.expand(pair.b)
		if exp.decided {
			if !exp.equal {
				return false
			}
			continue
		}
		work = append(work, exp.pairs...)
	}
	return true
}

func pairRecorded(pairs []typePair, p typePair) bool {
	for _, q := range pairs {
		if q.a == p.a && q.b == p.b {
			return true
		}
	}
	return false
}
