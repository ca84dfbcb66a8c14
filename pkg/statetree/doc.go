// Package statetree provides the declarative state tree that drives
// instance reconciliation.
//
// A tree is built from Node values: each node carries an opaque kind tag,
// an ordered list of child nodes, and a set of named attributes. One
// attribute name is reserved: IDAttribute holds the stable identifier that
// reconciliation uses to match state nodes to live instances.
//
// # Notifications
//
// Mutating a node notifies every Listener registered on that node or on any
// of its ancestors, synchronously, before the mutating call returns. There
// is no event queue and no goroutine hand-off: a caller that mutates the
// tree from a single goroutine observes every resulting update before its
// own call completes.
//
// # Ownership
//
// The tree owns its nodes. Consumers such as the build package observe the
// tree and never mutate it; nodes may be freely mutated by whoever
// constructed them.
//
// # Documents
//
// FromYAML and ToYAML convert between trees and a small YAML document form
// (kind, id, attrs, children). The document form is a convenience for tests
// and tooling, not a persistence engine.
package statetree
