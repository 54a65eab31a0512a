package typegraph

import "hash/fnv"

// hashString is the deterministic string-hash primitive seeding all
// structural hashes (32-bit FNV-1a). All hash combination in this package is
// plain uint32 addition, whose wraparound is exactly addition modulo 2^32
// and whose commutativity keeps set-like hashes (names, properties, members)
// independent of iteration order.
func hashString(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// kindHash returns the hash contribution of a node's kind tag.
func kindHash(k Kind) uint32 { return hashString(k.String()) }

// FlatHash returns the hash of the primitive's kind.
func (p *Primitive) FlatHash() uint32 { return kindHash(p.kind) }

// Hash equals FlatHash: primitives have no children to fold in.
func (p *Primitive) Hash() uint32 { return p.FlatHash() }

// FlatHash returns the hash of the array kind alone; the item type is not
// consulted.
func (a *Array) FlatHash() uint32 { return kindHash(KindArray) }

// Hash folds the item type's flat hash into the array's flat hash.
func (a *Array) Hash() uint32 { return a.FlatHash() + a.items.FlatHash() }

// FlatHash returns the hash of the map kind alone; the value type is not
// consulted.
func (m *Map) FlatHash() uint32 { return kindHash(KindMap) }

// Hash folds the value type's flat hash into the map's flat hash.
func (m *Map) Hash() uint32 { return m.FlatHash() + m.values.FlatHash() }

// FlatHash folds the class kind, candidate names, and property count.
// Property types are not consulted, so the flat hash is defined even on
// self-referential classes.
func (c *Class) FlatHash() uint32 {
	return kindHash(KindClass) + c.nameSet.hash() + uint32(len(c.Properties()))
}

// Hash folds each property type's flat hash into the class's flat hash.
// Only one level is folded, never a child's full recursive hash, which
// bounds the computation to the node's size and keeps it well-defined on
// cycles, at the cost of not distinguishing deeply nested differences.
func (c *Class) Hash() uint32 {
	h := c.FlatHash()
	for _, t := range c.Properties() {
		h += t.FlatHash()
	}
	return h
}

// FlatHash folds the enum kind, candidate names, and case count.
func (e *Enum) FlatHash() uint32 {
	return kindHash(KindEnum) + e.nameSet.hash() + uint32(len(e.cases))
}

// Hash equals FlatHash: enums have no children to fold in.
func (e *Enum) Hash() uint32 { return e.FlatHash() }

// FlatHash folds the union kind, candidate names, and member count.
func (u *Union) FlatHash() uint32 {
	return kindHash(KindUnion) + u.nameSet.hash() + uint32(len(u.members))
}

// Hash folds each member's flat hash into the union's flat hash (one level
// deep only, as for [Class.Hash]).
func (u *Union) Hash() uint32 {
	h := u.FlatHash()
	for _, m := range u.members {
		h += m.FlatHash()
	}
	return h
}
