package typegraph

import "fmt"

// InvariantError describes a violated graph invariant. Invariant violations
// are programming errors in the builder or in this package, never user-input
// errors, so they surface as panics rather than returned errors: the graph is
// in an undefined state and no caller can meaningfully recover.
//
// The error carries the operation that detected the violation and, where one
// is available, the offending node, so that the panic message is enough to
// diagnose which invariant broke and where.
type InvariantError struct {
	Op     string // operation that detected the violation (e.g. "NewUnion")
	Detail string // human-readable description of the broken invariant
	Node   Type   // offending node, nil if the violation predates the node
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	if e.Node != nil {
		return fmt.Sprintf("typegraph: %s: %s (node kind %s)", e.Op, e.Detail, e.Node.Kind())
	}
	return fmt.Sprintf("typegraph: %s: %s", e.Op, e.Detail)
}

// assert panics with an *InvariantError unless cond holds.
func assert(cond bool, op string, node Type, format string, args ...any) {
	if cond {
		return
	}
	panic(&InvariantError{Op: op, Detail: fmt.Sprintf(format, args...), Node: node})
}
