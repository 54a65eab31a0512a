package graphio

import (
	"github.com/matzehuels/typetower/pkg/errors"
	"github.com/matzehuels/typetower/pkg/typegraph"
)

// =============================================================================
// Wire Format
// =============================================================================

// Graph is the canonical serialization format for type graphs.
// Used for storage, caching, and piping between invocations.
//
// Nodes are stored as a flat list and refer to each other by index, which
// is what lets cyclic graphs serialize: a self-referential class simply
// points back at its own index. The format is designed for round-trip
// fidelity: import → export → re-import produces an equal graph.
type Graph struct {
	Roots []Root `json:"roots"`
	Nodes []Node `json:"nodes"`
}

// Root names one entry point of the graph.
type Root struct {
	Name string `json:"name"`
	Node int    `json:"node"` // Index into Nodes
}

// Node is the wire form of a single type node. Kind selects which of the
// variant-specific fields are meaningful.
type Node struct {
	Kind          string         `json:"kind"`
	Names         []string       `json:"names,omitempty"`          // Named types only
	NamesInferred bool           `json:"names_inferred,omitempty"` // Named types only
	Items         *int           `json:"items,omitempty"`          // Arrays
	Values        *int           `json:"values,omitempty"`         // Maps
	Properties    map[string]int `json:"properties,omitempty"`     // Classes
	Cases         []string       `json:"cases,omitempty"`          // Enums
	Members       []int          `json:"members,omitempty"`        // Unions
}

// =============================================================================
// Type Graph → Wire Conversion
// =============================================================================

// FromTypeGraph flattens a type graph into its serialization format.
// Node order follows the deterministic traversal order, so the same graph
// always serializes to the same bytes.
func FromTypeGraph(graph *typegraph.TopLevels) Graph {
	all := typegraph.FilterTypes(func(typegraph.Type) bool { return true }, graph, nil)
	index := make(map[typegraph.Type]int, len(all))
	for i, t := range all {
		index[t] = i
	}

	out := Graph{Nodes: make([]Node, len(all))}
	for i, t := range all {
		out.Nodes[i] = encodeNode(t, index)
	}
	for _, name := range graph.Names() {
		root, _ := graph.Get(name)
		out.Roots = append(out.Roots, Root{Name: name, Node: index[root]})
	}
	return out
}

func encodeNode(t typegraph.Type, index map[typegraph.Type]int) Node {
	n := Node{Kind: t.Kind().String()}
	if named, ok := t.(typegraph.NamedType); ok {
		n.Names = named.Names()
		n.NamesInferred = named.AreNamesInferred()
	}
	switch v := t.(type) {
	case *typegraph.Array:
		i := index[v.Items()]
		n.Items = &i
	case *typegraph.Map:
		i := index[v.Values()]
		n.Values = &i
	case *typegraph.Class:
		props := v.Properties()
		n.Properties = make(map[string]int, len(props))
		for key, pt := range props {
			n.Properties[key] = index[pt]
		}
	case *typegraph.Enum:
		n.Cases = v.Cases()
	case *typegraph.Union:
		for _, m := range v.Members() {
			n.Members = append(n.Members, index[m])
		}
	}
	return n
}

// =============================================================================
// Wire → Type Graph Conversion
// =============================================================================

// ToTypeGraph rebuilds a type graph from its serialization format.
// Returns validation errors for out-of-range indices, unknown kinds, or
// cycles that do not pass through a class (only classes support deferred
// construction, so only they can close a cycle).
func ToTypeGraph(data Graph) (*typegraph.TopLevels, error) {
	d := &decoder{
		data:  data,
		built: make(map[int]typegraph.Type, len(data.Nodes)),
	}

	graph := typegraph.NewTopLevels()
	for _, root := range data.Roots {
		t, err := d.build(root.Node)
		if err != nil {
			return nil, err
		}
		graph.Add(root.Name, t)
	}
	return graph, nil
}

type decoder struct {
	data     Graph
	built    map[int]typegraph.Type
	building []bool
}

func (d *decoder) build(i int) (typegraph.Type, error) {
	if i < 0 || i >= len(d.data.Nodes) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "node index %d out of range", i)
	}
	if t, ok := d.built[i]; ok {
		return t, nil
	}
	if d.building == nil {
		d.building = make([]bool, len(d.data.Nodes))
	}
	if d.building[i] {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cycle through node %d does not pass through a class", i)
	}

	n := d.data.Nodes[i]
	if n.Kind == "class" {
		return d.buildClass(i, n)
	}

	d.building[i] = true
	t, err := d.buildAcyclic(n)
	d.building[i] = false
	if err != nil {
		return nil, err
	}
	d.built[i] = t
	return t, nil
}

// buildClass registers the empty class before resolving its properties,
// which is what lets property chains point back at it.
func (d *decoder) buildClass(i int, n Node) (typegraph.Type, error) {
	name, inferred, err := names(n)
	if err != nil {
		return nil, err
	}
	cls := typegraph.NewClass(name, inferred)
	restoreNames(cls, n)
	d.built[i] = cls

	props := make(map[string]typegraph.Type, len(n.Properties))
	for key, pi := range n.Properties {
		pt, err := d.build(pi)
		if err != nil {
			return nil, err
		}
		props[key] = pt
	}
	cls.SetProperties(props)
	return cls, nil
}

func (d *decoder) buildAcyclic(n Node) (typegraph.Type, error) {
	kind, ok := typegraph.KindFromName(n.Kind)
	if ok && kind.IsPrimitive() {
		return typegraph.PrimitiveOf(kind), nil
	}

	switch n.Kind {
	case "array":
		if n.Items == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "array node without items")
		}
		items, err := d.build(*n.Items)
		if err != nil {
			return nil, err
		}
		return typegraph.NewArray(items), nil

	case "map":
		if n.Values == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "map node without values")
		}
		values, err := d.build(*n.Values)
		if err != nil {
			return nil, err
		}
		return typegraph.NewMap(values), nil

	case "enum":
		name, inferred, err := names(n)
		if err != nil {
			return nil, err
		}
		if len(n.Cases) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "enum node %q without cases", name)
		}
		seen := make(map[string]bool, len(n.Cases))
		for _, c := range n.Cases {
			if seen[c] {
				return nil, errors.New(errors.ErrCodeInvalidInput, "enum node %q has duplicate case %q", name, c)
			}
			seen[c] = true
		}
		e := typegraph.NewEnum(name, inferred, n.Cases)
		restoreNames(e, n)
		return e, nil

	case "union":
		name, inferred, err := names(n)
		if err != nil {
			return nil, err
		}
		if len(n.Members) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "union node %q with fewer than two members", name)
		}
		members := make([]typegraph.Type, len(n.Members))
		kinds := make(map[typegraph.Kind]bool, len(n.Members))
		for j, mi := range n.Members {
			m, err := d.build(mi)
			if err != nil {
				return nil, err
			}
			if kinds[m.Kind()] {
				return nil, errors.New(errors.ErrCodeInvalidInput, "union node %q has duplicate member kind %s", name, m.Kind())
			}
			kinds[m.Kind()] = true
			members[j] = m
		}
		u := typegraph.NewUnion(name, inferred, members)
		restoreNames(u, n)
		return u, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown node kind %q", n.Kind)
}

func names(n Node) (string, bool, error) {
	if len(n.Names) == 0 {
		return "", false, errors.New(errors.ErrCodeInvalidInput, "%s node without names", n.Kind)
	}
	return n.Names[0], n.NamesInferred, nil
}

// restoreNames replays the remaining candidate names onto a freshly built
// node so the full name set round-trips.
func restoreNames(t typegraph.NamedType, n Node) {
	for _, name := range n.Names[1:] {
		t.AddName(name, n.NamesInferred)
	}
}
