// Package typegraph is the in-memory algebraic representation of inferred
// data shapes used as the intermediate representation of the code generator.
//
// A graph is a set of shared, possibly cyclic [Type] nodes anchored by a
// [TopLevels] mapping from root name to root node. Nodes are shared by
// identity: many parents may reference the same child, and a class may
// (transitively) contain itself. The package therefore never treats the
// graph as a tree; traversal, equality, and hashing are all cycle-safe.
//
// # Variants
//
// The variant set is closed: [Primitive], [Array], [Map], [Class], [Enum],
// and [Union], discriminated by [Kind]. [Class], [Enum], and [Union] are
// named types: they carry an ordered set of candidate names that emitters
// combine into a single identifier (see [CombineNames]).
//
// # Construction
//
// A builder (see pkg/infer) constructs nodes and wires them together.
// Because class graphs can be self-referential, classes are initialized in
// two phases: the node is created first (so other nodes can reference it),
// and its properties are assigned exactly once afterwards via
// [Class.SetProperties]. Once the builder finishes, the graph is logically
// frozen: readers must not mutate it, and no locking is performed. The
// single-writer-then-many-readers discipline is a caller obligation.
//
// # Errors
//
// All invariant violations (a union with fewer than two members, class
// properties read before assignment, an unhandled kind in dispatch) are
// programming errors and panic with an [*InvariantError]. There is no
// recoverable error path in this package.
package typegraph
