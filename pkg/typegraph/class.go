package typegraph

import (
	"maps"
	"slices"
)

// Class is a named record type mapping unique property names to child types.
//
// Classes are initialized in two phases because class graphs can be
// self-referential: the node must exist (so other nodes, including its own
// property types, can reference it) before its properties can be computed.
// [NewClass] creates the node with properties unset; [Class.SetProperties]
// assigns them exactly once. Reading properties before they are set, or
// setting them a second time, is an invariant violation.
type Class struct {
	nameSet
	properties    map[string]Type
	propertiesSet bool
}

// NewClass creates a class node with the given initial candidate name and
// properties unset. Call [Class.SetProperties] once all property types exist.
func NewClass(name string, inferred bool) *Class {
	return &Class{nameSet: newNameSet("NewClass", name, inferred)}
}

// SetProperties assigns the class's property map. It must be called exactly
// once; a second call panics with an invariant violation. The map is copied,
// so the caller's map may be reused afterwards. A class with zero properties
// is valid.
func (c *Class) SetProperties(properties map[string]Type) {
	assert(!c.propertiesSet, "SetProperties", c, "properties already set")
	for name, t := range properties {
		assert(t != nil, "SetProperties", c, "property %q has nil type", name)
	}
	c.properties = maps.Clone(properties)
	if c.properties == nil {
		c.properties = map[string]Type{}
	}
	c.propertiesSet = true
}

// Properties returns the property map. The map is shared with the node and
// must not be modified. Calling Properties before SetProperties panics with
// an invariant violation.
func (c *Class) Properties() map[string]Type {
	assert(c.propertiesSet, "Properties", c, "properties read before being set")
	return c.properties
}

// PropertyNames returns the property names in sorted order. Sorting makes
// every class-derived ordering (children, hashes, emitted fields)
// deterministic regardless of builder insertion order.
func (c *Class) PropertyNames() []string {
	return slices.Sorted(maps.Keys(c.Properties()))
}

// Kind returns KindClass.
func (c *Class) Kind() Kind { return KindClass }

// Children returns the property types in sorted property-name order, with
// identity-duplicates removed (two properties may share one node).
func (c *Class) Children() []Type {
	names := c.PropertyNames()
	children := make([]Type, 0, len(names))
	for _, name := range names {
		children = append(children, c.properties[name])
	}
	return dedupeIdentity(children)
}

// IsNullable returns false: a class itself never admits null.
func (c *Class) IsNullable() bool { return false }

// MapChildren applies f to every property type. If any property changed, a
// new class with the same names and the rewritten properties is returned;
// otherwise the receiver is returned unchanged.
func (c *Class) MapChildren(f func(Type) Type) Type {
	props := c.Properties()
	changed := false
	mapped := make(map[string]Type, len(props))
	for name, t := range props {
		mt := f(t)
		mapped[name] = mt
		if mt != t {
			changed = true
		}
	}
	if !changed {
		return c
	}
	out := &Class{nameSet: c.nameSet.clone()}
	out.SetProperties(mapped)
	return out
}

func (c *Class) sealed() {}
