package typegraph

import "slices"

// Union is a named type holding two or more member types of pairwise
// distinct kinds. A union is nullable exactly when one of its members is the
// null primitive.
//
// The distinct-kind invariant is enforced at construction: equality and
// [Union.SortedMembers] silently rely on kinds being unique, so a union with
// two members of the same kind would corrupt comparisons far from the point
// that created it.
type Union struct {
	nameSet
	members []Type
}

// NewUnion creates a union node with the given initial candidate name and
// members. Fewer than two members, or two members of the same kind, is an
// invariant violation.
func NewUnion(name string, inferred bool, members []Type) *Union {
	assert(len(members) >= 2, "NewUnion", nil, "union needs at least 2 members, got %d", len(members))
	seen := make(map[Kind]bool, len(members))
	for _, m := range members {
		assert(m != nil, "NewUnion", nil, "union member must not be nil")
		assert(!seen[m.Kind()], "NewUnion", nil, "duplicate member kind %s", m.Kind())
		seen[m.Kind()] = true
	}
	out := make([]Type, len(members))
	copy(out, members)
	return &Union{nameSet: newNameSet("NewUnion", name, inferred), members: out}
}

// Members returns the member types in insertion order. The returned slice is
// a copy.
func (u *Union) Members() []Type {
	out := make([]Type, len(u.members))
	copy(out, u.members)
	return out
}

// SortedMembers returns the member types ordered by kind. Kinds are unique
// within a union, so this order is total and deterministic; equality and
// emitters rely on it.
func (u *Union) SortedMembers() []Type {
	out := u.Members()
	slices.SortFunc(out, func(a, b Type) int { return int(a.Kind()) - int(b.Kind()) })
	return out
}

// Kind returns KindUnion.
func (u *Union) Kind() Kind { return KindUnion }

// Children returns the members in insertion order.
func (u *Union) Children() []Type {
	return dedupeIdentity(u.Members())
}

// IsNullable reports whether one of the members is the null primitive.
func (u *Union) IsNullable() bool {
	for _, m := range u.members {
		if m.Kind() == KindNull {
			return true
		}
	}
	return false
}

// MapChildren applies f to every member. If any member changed, a new union
// with the same names and the rewritten members is returned; otherwise the
// receiver is returned unchanged.
func (u *Union) MapChildren(f func(Type) Type) Type {
	changed := false
	mapped := make([]Type, len(u.members))
	for i, m := range u.members {
		mapped[i] = f(m)
		if mapped[i] != m {
			changed = true
		}
	}
	if !changed {
		return u
	}
	out := NewUnion(u.names[0], u.inferred, mapped)
	out.nameSet = u.nameSet.clone()
	return out
}

func (u *Union) sealed() {}
