package typegraph

// RemoveNullFromUnion returns the union's null-primitive member if present
// (nil otherwise) and the remaining members in insertion order.
func RemoveNullFromUnion(u *Union) (*Primitive, []Type) {
	var null *Primitive
	rest := make([]Type, 0, len(u.members))
	for _, m := range u.members {
		if p, ok := m.(*Primitive); ok && p.kind == KindNull {
			null = p
			continue
		}
		rest = append(rest, m)
	}
	return null, rest
}

// NullableFromUnion returns the non-null member of a union that is exactly
// {null, X}. For any other union (no null member, or more than one
// non-null member) it returns nil and false.
func NullableFromUnion(u *Union) (Type, bool) {
	null, rest := RemoveNullFromUnion(u)
	if null == nil || len(rest) != 1 {
		return nil, false
	}
	return rest[0], true
}

// MakeNullable returns a type that admits null in addition to t's shape:
//
//   - the null primitive is returned unchanged;
//   - a union already containing null is returned unchanged;
//   - a union without null gets a new union with null appended;
//   - any other type is wrapped in a new two-member union {t, null}.
//
// New unions carry the supplied candidate name and inferred flag.
func MakeNullable(t Type, name string, inferred bool) Type {
	if p, ok := t.(*Primitive); ok && p.kind == KindNull {
		return t
	}
	u, ok := t.(*Union)
	if !ok {
		return NewUnion(name, inferred, []Type{t, Null})
	}
	if u.IsNullable() {
		return u
	}
	return NewUnion(name, inferred, append(u.Members(), Null))
}

// RemoveNull strips null from a union, returning the sole remaining member
// directly if exactly one remains, or a new union without null otherwise.
// Non-union types are returned unchanged. A union that contained only null
// is an invariant violation: nothing would remain.
func RemoveNull(t Type) Type {
	u, ok := t.(*Union)
	if !ok {
		return t
	}
	null, rest := RemoveNullFromUnion(u)
	if null == nil {
		return u
	}
	assert(len(rest) > 0, "RemoveNull", u, "union contained only null")
	if len(rest) == 1 {
		return rest[0]
	}
	out := NewUnion(u.names[0], u.inferred, rest)
	out.nameSet = u.nameSet.clone()
	return out
}
