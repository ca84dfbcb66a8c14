// Package build keeps a live instance tree synchronized with a declarative
// state tree.
//
// A Builder observes one statetree.Node as its state root. Callers register
// one TypeHandler per node kind; the handler knows how to create an
// instance for a state node and how to apply attribute changes to an
// existing one. The Builder does everything else: it listens for state
// mutations, locates the affected instance by its stable identifier, and
// applies the minimal set of create, update, reorder and dispose operations
// to keep both trees in step.
//
// # Identity
//
// Matching is by identifier only. Each state node carries its identifier in
// the reserved statetree.IDAttribute attribute; the Builder stamps it onto
// the instance at creation time. Identifiers must be non-empty and unique
// among siblings for a node to be reliably addressable; duplicates are not
// detected, the first match wins.
//
// # Lifecycle
//
// The root instance is created lazily by ManagedInstance and owned by the
// Builder; Close disposes it. Each parent instance exclusively owns its
// children, and disposal cascades.
//
// # Handlers
//
// Handlers embed HandlerBase and implement Kind, CreateInstance and
// UpdateInstance. They never reconcile children themselves; the Builder
// drives child reconciliation uniformly for every kind:
//
//	type labelHandler struct {
//	    build.HandlerBase
//	}
//
//	func (h *labelHandler) Kind() string { return "label" }
//
//	func (h *labelHandler) CreateInstance(state *statetree.Node, parent build.Instance) build.Instance {
//	    inst := &labelInstance{}
//	    build.Attach(inst, parent)
//	    h.UpdateInstance(inst, state)
//	    return inst
//	}
//
//	func (h *labelHandler) UpdateInstance(inst build.Instance, state *statetree.Node) {
//	    inst.(*labelInstance).text, _ = state.Attr("text").(string)
//	}
//
// # Threading
//
// Everything is single-threaded and synchronous: reconciliation runs to
// completion on the goroutine that mutated the state tree, before the
// mutating call returns. The Builder takes no locks.
package build
