package build

import "github.com/go-drift/treesync/pkg/statetree"

// TypeHandler is the per-kind creation and update policy. Implementations
// embed HandlerBase and are registered exactly once, with one Builder.
type TypeHandler interface {
	// Kind returns the state node kind tag this handler claims.
	Kind() string
	// CreateInstance returns a new, fully constructed instance for state,
	// attached under parent (nil for the root). The returned instance must
	// be non-nil with its parent already set; the Builder assigns the
	// identifier afterwards.
	CreateInstance(state *statetree.Node, parent Instance) Instance
	// UpdateInstance applies attribute changes from state onto the
	// already-matched inst. It must not change inst's identifier or
	// parent, and must not touch inst's children.
	UpdateInstance(inst Instance, state *statetree.Node)

	handlerBase() *HandlerBase
}

// HandlerBase carries a handler's binding to its Builder. Embed it in every
// TypeHandler implementation.
type HandlerBase struct {
	owner *Builder
}

func (h *HandlerBase) handlerBase() *HandlerBase { return h }

// Builder returns the Builder the handler is registered with. Calling it
// before registration is a precondition violation.
func (h *HandlerBase) Builder() *Builder {
	assertf(h.owner != nil, "type handler used before registration")
	return h.owner
}
