package build

// Instance is a live runtime object materialized from a state node.
//
// Concrete instance types embed InstanceBase, which implements the whole
// interface; the embedding type only adds the state its handler needs.
// Child order is significant: index 0 is the backmost sibling and the last
// index is the frontmost (topmost) one.
type Instance interface {
	// ID returns the stable identifier stamped onto the instance at
	// creation time.
	ID() string
	// SetID assigns the instance's identifier. Called by the Builder;
	// handlers must not assume the identifier is set during CreateInstance.
	SetID(id string)
	// Parent returns the owning parent instance, or nil for the root.
	Parent() Instance
	// NumChildren returns the number of owned children.
	NumChildren() int
	// ChildAt returns the i-th child, or nil if i is out of range.
	ChildAt(i int) Instance
	// Children returns a copy of the ordered child list.
	Children() []Instance
	// BringToFront moves the instance to the topmost position among its
	// siblings.
	BringToFront()
	// PlaceBehind moves the instance immediately behind sibling, which
	// must share the same parent.
	PlaceBehind(sibling Instance)
	// Dispose releases the instance and, recursively, every owned child,
	// then detaches it from its parent. Disposing twice is a no-op.
	Dispose()

	base() *InstanceBase
}

// InstanceBase is the embeddable implementation of Instance. The zero
// value is usable once bound to its outer type with Attach.
type InstanceBase struct {
	id       string
	parent   Instance
	children []Instance
	self     Instance
	disposed bool

	// OnDispose, if set, runs after the instance's children have been
	// disposed and the instance detached from its parent.
	OnDispose func()
}

// Attach binds self to its embedded InstanceBase and links it under
// parent, appending it to parent's child list (topmost position). Handlers
// call Attach from CreateInstance; parent may be nil for the root.
func Attach(self Instance, parent Instance) {
	b := self.base()
	assertf(b.self == nil || b.self == self, "instance attached twice")
	b.self = self
	b.parent = parent
	if parent != nil {
		pb := parent.base()
		pb.children = append(pb.children, self)
	}
}

func (b *InstanceBase) base() *InstanceBase { return b }

// ID returns the instance's identifier.
func (b *InstanceBase) ID() string { return b.id }

// SetID assigns the instance's identifier.
func (b *InstanceBase) SetID(id string) { b.id = id }

// Parent returns the owning parent, or nil for the root.
func (b *InstanceBase) Parent() Instance { return b.parent }

// NumChildren returns the number of owned children.
func (b *InstanceBase) NumChildren() int { return len(b.children) }

// ChildAt returns the i-th child, or nil if i is out of range.
func (b *InstanceBase) ChildAt(i int) Instance {
	if i < 0 || i >= len(b.children) {
		return nil
	}
	return b.children[i]
}

// Children returns a copy of the ordered child list.
func (b *InstanceBase) Children() []Instance {
	out := make([]Instance, len(b.children))
	copy(out, b.children)
	return out
}

// BringToFront moves the instance to the last (topmost) slot among its
// siblings. A root or already-topmost instance is left alone.
func (b *InstanceBase) BringToFront() {
	if b.parent == nil {
		return
	}
	siblings := &b.parent.base().children
	i := indexOfInstance(*siblings, b.self)
	if i < 0 || i == len(*siblings)-1 {
		return
	}
	moved := (*siblings)[i]
	*siblings = append((*siblings)[:i], (*siblings)[i+1:]...)
	*siblings = append(*siblings, moved)
}

// PlaceBehind moves the instance to the slot immediately behind sibling.
// Instances that do not share a parent are left alone.
func (b *InstanceBase) PlaceBehind(sibling Instance) {
	if b.parent == nil || sibling == nil || sibling.Parent() != b.parent || sibling == b.self {
		return
	}
	siblings := &b.parent.base().children
	i := indexOfInstance(*siblings, b.self)
	if i < 0 {
		return
	}
	moved := (*siblings)[i]
	*siblings = append((*siblings)[:i], (*siblings)[i+1:]...)
	j := indexOfInstance(*siblings, sibling)
	if j < 0 {
		*siblings = append(*siblings, moved)
		return
	}
	*siblings = append(*siblings, nil)
	copy((*siblings)[j+1:], (*siblings)[j:])
	(*siblings)[j] = moved
}

// Dispose releases the instance: children are disposed first (in order),
// the instance is detached from its parent, and OnDispose runs last.
func (b *InstanceBase) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true

	children := b.children
	b.children = nil
	for _, child := range children {
		child.base().parent = nil
		child.Dispose()
	}

	if b.parent != nil {
		siblings := &b.parent.base().children
		if i := indexOfInstance(*siblings, b.self); i >= 0 {
			*siblings = append((*siblings)[:i], (*siblings)[i+1:]...)
		}
		b.parent = nil
	}

	if b.OnDispose != nil {
		b.OnDispose()
	}
}

// Disposed reports whether Dispose has run.
func (b *InstanceBase) Disposed() bool { return b.disposed }

func indexOfInstance(list []Instance, target Instance) int {
	for i, inst := range list {
		if inst == target {
			return i
		}
	}
	return -1
}

// findInstanceWithID searches root's subtree depth-first (root first, then
// children in current order) for the first instance whose identifier
// equals id. An empty id never matches.
func findInstanceWithID(root Instance, id string) Instance {
	if root == nil || id == "" {
		return nil
	}
	if root.ID() == id {
		return root
	}
	for i := 0; i < root.NumChildren(); i++ {
		if found := findInstanceWithID(root.ChildAt(i), id); found != nil {
			return found
		}
	}
	return nil
}
