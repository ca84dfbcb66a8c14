package build

import (
	"github.com/go-drift/treesync/pkg/assets"
	"github.com/go-drift/treesync/pkg/errors"
	"github.com/go-drift/treesync/pkg/statetree"
)

// Builder owns a live instance tree and keeps it synchronized with a state
// tree. Create one with NewBuilder, register a TypeHandler per node kind,
// then obtain the root with ManagedInstance. From that point every state
// mutation is reconciled into the instance tree before the mutating call
// returns.
type Builder struct {
	state    *statetree.Node
	handlers []TypeHandler
	root     Instance
	provider assets.Provider
}

// NewBuilder returns a Builder observing the given state root. The Builder
// registers itself as a tree listener; call Close to deregister and release
// the instance tree.
func NewBuilder(state *statetree.Node) *Builder {
	assertf(state != nil, "NewBuilder requires a state node")
	b := &Builder{state: state}
	state.AddListener(b)
	return b
}

// Close deregisters the Builder from the state tree and disposes the
// managed root instance, cascading through all descendants. Close is
// idempotent.
func (b *Builder) Close() {
	if b.state != nil {
		b.state.RemoveListener(b)
	}
	if b.root != nil {
		b.root.Dispose()
		b.root = nil
	}
}

// State returns the state root the Builder observes.
func (b *Builder) State() *statetree.Node { return b.state }

// RegisterHandler binds h to this Builder and appends it to the registry.
// A handler already bound to any Builder is a precondition violation. On
// duplicate kind tags the first registered handler wins at lookup time.
func (b *Builder) RegisterHandler(h TypeHandler) {
	assertf(h != nil, "RegisterHandler requires a handler")
	if h == nil {
		return
	}
	hb := h.handlerBase()
	assertf(hb.owner == nil, "handler for kind %q is already registered with a builder", h.Kind())
	if hb.owner != nil {
		return
	}
	hb.owner = b
	b.handlers = append(b.handlers, h)
}

// HandlerForState returns the first registered handler whose kind tag
// matches the state node's, or nil if none does.
func (b *Builder) HandlerForState(state *statetree.Node) TypeHandler {
	if state == nil {
		return nil
	}
	for _, h := range b.handlers {
		if h.Kind() == state.Kind() {
			return h
		}
	}
	return nil
}

// NumHandlers returns the number of registered handlers.
func (b *Builder) NumHandlers() int { return len(b.handlers) }

// Handler returns the i-th registered handler, or nil if i is out of
// range.
func (b *Builder) Handler(i int) TypeHandler {
	if i < 0 || i >= len(b.handlers) {
		return nil
	}
	return b.handlers[i]
}

// SetResourceProvider installs the provider handed to handlers that need
// external binary resources. The Builder does not interpret its contents.
func (b *Builder) SetResourceProvider(p assets.Provider) { b.provider = p }

// ResourceProvider returns the installed provider, or nil.
func (b *Builder) ResourceProvider() assets.Provider { return b.provider }

// ManagedInstance returns the root instance, creating it (and its whole
// subtree) on first call. Calling it before any handler is registered, or
// with no handler matching the root kind, is a precondition violation.
func (b *Builder) ManagedInstance() Instance {
	if b.root == nil {
		b.root = b.createRoot()
	}
	return b.root
}

func (b *Builder) createRoot() Instance {
	// Register all necessary type handlers before asking for the instance.
	assertf(len(b.handlers) > 0, "ManagedInstance called with no registered handlers")

	h := b.HandlerForState(b.state)
	assertf(h != nil, "no handler registered for root kind %q", b.state.Kind())
	if h == nil {
		return nil
	}
	return b.createInstance(h, b.state, nil)
}

// createInstance asks the handler for a new instance, stamps the state
// node's identifier onto it, then materializes its children.
func (b *Builder) createInstance(h TypeHandler, state *statetree.Node, parent Instance) Instance {
	inst := h.CreateInstance(state, parent)
	assertf(inst != nil, "handler for kind %q returned a nil instance", h.Kind())
	if inst == nil {
		return nil
	}
	assertf(inst.Parent() == parent, "handler for kind %q attached the instance to the wrong parent", h.Kind())
	inst.SetID(state.ID())
	b.UpdateChildren(inst, state)
	return inst
}

// UpdateChildren reconciles parent's child instances against the child
// state nodes of state, one level deep:
//
//   - existing children are claimed by identifier and reused,
//   - unmatched state children get new instances from their kind handler,
//   - unclaimed instances are disposed,
//   - the surviving order is rebuilt to mirror the state child order, with
//     the last child topmost.
//
// The identifier index used for claiming is built from parent's children at
// entry and discarded when the call returns. Handlers normally never need
// to call this; the Builder invokes it for structural state changes and
// when new instances are created.
func (b *Builder) UpdateChildren(parent Instance, state *statetree.Node) {
	if parent == nil || state == nil {
		return
	}

	existing := parent.Children()
	index := make(map[string]Instance, len(existing))
	for _, c := range existing {
		if id := c.ID(); id != "" {
			if _, taken := index[id]; !taken {
				index[id] = c
			}
		}
	}

	claimed := make(map[Instance]bool, len(existing))
	ordered := make([]Instance, 0, state.NumChildren())
	for i := 0; i < state.NumChildren(); i++ {
		childState := state.Child(i)
		if c, ok := index[childState.ID()]; ok && !claimed[c] {
			claimed[c] = true
			ordered = append(ordered, c)
			continue
		}

		h := b.HandlerForState(childState)
		assertf(h != nil, "no handler registered for kind %q", childState.Kind())
		if h == nil {
			continue
		}
		c := b.createInstance(h, childState, parent)
		if c == nil {
			continue
		}
		claimed[c] = true
		ordered = append(ordered, c)
	}

	for _, c := range existing {
		if !claimed[c] {
			c.Dispose()
		}
	}

	// Rebuild z-order back to front so the final front-to-back order equals
	// the state child order.
	if len(ordered) > 0 {
		ordered[len(ordered)-1].BringToFront()
		for i := len(ordered) - 2; i >= 0; i-- {
			ordered[i].PlaceBehind(ordered[i+1])
		}
	}
}

// PropertyChanged implements statetree.Listener.
func (b *Builder) PropertyChanged(node *statetree.Node, name string) {
	b.guard("build.PropertyChanged", func() { b.reconcile(node, nil) })
}

// ChildAdded implements statetree.Listener.
func (b *Builder) ChildAdded(parent, child *statetree.Node) {
	b.guard("build.ChildAdded", func() { b.reconcile(parent, parent) })
}

// ChildRemoved implements statetree.Listener.
func (b *Builder) ChildRemoved(parent, child *statetree.Node, oldIndex int) {
	b.guard("build.ChildRemoved", func() { b.reconcile(parent, parent) })
}

// ChildOrderChanged implements statetree.Listener.
func (b *Builder) ChildOrderChanged(parent *statetree.Node) {
	b.guard("build.ChildOrderChanged", func() { b.reconcile(parent, parent) })
}

// ParentChanged implements statetree.Listener. The structural work of a
// move is carried by the ChildAdded/ChildRemoved notifications at the old
// and new parents; the moved node itself only gets a point update.
func (b *Builder) ParentChanged(node *statetree.Node) {
	b.guard("build.ParentChanged", func() { b.reconcile(node, nil) })
}

// guard runs fn directly in debug mode, so precondition panics surface at
// the mutation site. In release mode panics from handler callbacks are
// recovered and reported instead of unwinding into the state tree mutator.
func (b *Builder) guard(op string, fn func()) {
	if DebugMode {
		fn()
		return
	}
	defer errors.Recover(op)
	fn()
}

// reconcile is the single recovery procedure behind every notification
// kind. node is the notification target; structural is non-nil when the
// notification reported a child-list change, and names the state node
// whose children changed.
func (b *Builder) reconcile(node *statetree.Node, structural *statetree.Node) {
	if b.root == nil {
		// Nothing materialized yet; the first ManagedInstance call will
		// build from current state.
		return
	}

	resolved := b.resolveAddressable(node)
	if resolved == nil {
		return
	}

	inst := findInstanceWithID(b.root, resolved.ID())
	if inst == nil {
		// Stale notification or a branch that has not been materialized.
		return
	}

	if h := b.HandlerForState(resolved); h != nil {
		h.UpdateInstance(inst, resolved)
	}

	if structural != nil && structural == resolved {
		b.UpdateChildren(inst, resolved)
	}
}

// resolveAddressable walks from node to the root looking for the nearest
// ancestor-or-self that is individually addressable: a non-empty
// identifier plus a matching handler. Structural edits are often reported
// against nodes that are neither.
func (b *Builder) resolveAddressable(node *statetree.Node) *statetree.Node {
	for t := node; t != nil; t = t.Parent() {
		if t.ID() != "" && b.HandlerForState(t) != nil {
			return t
		}
	}
	return nil
}
