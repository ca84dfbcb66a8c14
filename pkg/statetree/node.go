package statetree

import "reflect"

// IDAttribute is the reserved attribute name that holds a node's stable
// identifier.
const IDAttribute = "id"

// Listener receives change notifications from a state tree.
//
// A listener registered on a node receives notifications for that node and
// every node below it. All callbacks run synchronously on the goroutine
// performing the mutation.
type Listener interface {
	// PropertyChanged is called after an attribute of node changed.
	PropertyChanged(node *Node, name string)
	// ChildAdded is called after child was inserted under parent.
	ChildAdded(parent, child *Node)
	// ChildRemoved is called after child was removed from parent.
	// oldIndex is the slot the child occupied before removal.
	ChildRemoved(parent, child *Node, oldIndex int)
	// ChildOrderChanged is called after the children of parent were
	// reordered without any addition or removal.
	ChildOrderChanged(parent *Node)
	// ParentChanged is called after node was attached to a different
	// parent or detached from the tree.
	ParentChanged(node *Node)
}

// Node is one node of a state tree.
//
// The zero value is not usable; create nodes with NewNode.
type Node struct {
	kind      string
	attrs     map[string]any
	children  []*Node
	parent    *Node
	listeners []Listener
}

// NewNode returns a new detached node with the given kind tag.
func NewNode(kind string) *Node {
	return &Node{kind: kind}
}

// Kind returns the node's kind tag.
func (n *Node) Kind() string { return n.kind }

// ID returns the node's stable identifier, or "" if none is assigned.
func (n *Node) ID() string {
	if v, ok := n.attrs[IDAttribute].(string); ok {
		return v
	}
	return ""
}

// SetID assigns the node's stable identifier.
func (n *Node) SetID(id string) {
	n.SetAttr(IDAttribute, id)
}

// Attr returns the named attribute, or nil if unset.
func (n *Node) Attr(name string) any {
	return n.attrs[name]
}

// HasAttr reports whether the named attribute is set.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

// SetAttr sets the named attribute and notifies listeners. Setting an
// attribute to a value equal to its current one is a no-op.
func (n *Node) SetAttr(name string, value any) {
	if old, ok := n.attrs[name]; ok && reflect.DeepEqual(old, value) {
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]any)
	}
	n.attrs[name] = value
	n.notifyPropertyChanged(n, name)
}

// RemoveAttr deletes the named attribute and notifies listeners if it was
// set.
func (n *Node) RemoveAttr(name string) {
	if _, ok := n.attrs[name]; !ok {
		return
	}
	delete(n.attrs, name)
	n.notifyPropertyChanged(n, name)
}

// AttrNames returns the names of all set attributes in unspecified order.
func (n *Node) AttrNames() []string {
	names := make([]string, 0, len(n.attrs))
	for name := range n.attrs {
		names = append(names, name)
	}
	return names
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i-th child, or nil if i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Parent returns the node's parent, or nil for a root or detached node.
func (n *Node) Parent() *Node { return n.parent }

// Root returns the topmost ancestor of the node (the node itself if it has
// no parent).
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Index returns the node's slot in its parent's child list, or -1 if the
// node has no parent.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	return indexOfNode(n.parent.children, n)
}

// AddChild inserts child at the given index, or appends it when index is -1
// or out of range. A child that is currently attached elsewhere is detached
// from its old parent first, with the corresponding ChildRemoved
// notification. Attaching a node to itself or to one of its descendants is
// ignored.
func (n *Node) AddChild(child *Node, index int) {
	if child == nil || child == n {
		return
	}
	// Reject cycles: n must not live below child.
	for a := n; a != nil; a = a.parent {
		if a == child {
			return
		}
	}
	if child.parent != nil {
		child.parent.removeChild(child, false)
	}
	if index < 0 || index > len(n.children) {
		index = len(n.children)
	}
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n
	n.notifyChildAdded(n, child)
	child.notifyParentChanged(child)
}

// RemoveChild detaches child from the node. It is a no-op if child is not a
// direct child.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		return
	}
	n.removeChild(child, true)
}

// RemoveChildAt detaches the i-th child. It is a no-op if i is out of
// range.
func (n *Node) RemoveChildAt(i int) {
	if i < 0 || i >= len(n.children) {
		return
	}
	n.removeChild(n.children[i], true)
}

// removeChild detaches child and emits ChildRemoved. When notifyParent is
// true the detached child is also told its parent changed; re-parenting via
// AddChild suppresses that, since the child gets a single ParentChanged for
// the whole move.
func (n *Node) removeChild(child *Node, notifyParent bool) {
	i := indexOfNode(n.children, child)
	if i < 0 {
		return
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	child.parent = nil
	n.notifyChildRemoved(n, child, i)
	if notifyParent {
		child.notifyParentChanged(child)
	}
}

// MoveChild moves the child at slot from to slot to, shifting the nodes in
// between, and notifies listeners that the child order changed. Out of
// range slots and from == to are no-ops.
func (n *Node) MoveChild(from, to int) {
	if from == to || from < 0 || from >= len(n.children) || to < 0 || to >= len(n.children) {
		return
	}
	child := n.children[from]
	if from < to {
		copy(n.children[from:], n.children[from+1:to+1])
	} else {
		copy(n.children[to+1:], n.children[to:from])
	}
	n.children[to] = child
	n.notifyChildOrderChanged(n)
}

// SetChildOrder reorders the children to match order, which must be a
// permutation of the current child list; any other value is ignored.
// Listeners are notified once.
func (n *Node) SetChildOrder(order []*Node) {
	if len(order) != len(n.children) {
		return
	}
	seen := make(map[*Node]bool, len(order))
	for _, c := range order {
		if c == nil || c.parent != n || seen[c] {
			return
		}
		seen[c] = true
	}
	copy(n.children, order)
	n.notifyChildOrderChanged(n)
}

// AddListener registers l for notifications from this node's subtree.
// Adding the same listener twice is a no-op.
func (n *Node) AddListener(l Listener) {
	if l == nil {
		return
	}
	for _, have := range n.listeners {
		if have == l {
			return
		}
	}
	n.listeners = append(n.listeners, l)
}

// RemoveListener deregisters l. Unknown listeners are ignored.
func (n *Node) RemoveListener(l Listener) {
	for i, have := range n.listeners {
		if have == l {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return
		}
	}
}

// each delivery walks from the anchor node to the root so that listeners
// registered on any ancestor observe changes below them. The listener list
// is snapshotted per node so a callback may deregister itself.
func (n *Node) notifyPropertyChanged(node *Node, name string) {
	for t := n; t != nil; t = t.parent {
		for _, l := range snapshotListeners(t.listeners) {
			l.PropertyChanged(node, name)
		}
	}
}

func (n *Node) notifyChildAdded(parent, child *Node) {
	for t := n; t != nil; t = t.parent {
		for _, l := range snapshotListeners(t.listeners) {
			l.ChildAdded(parent, child)
		}
	}
}

func (n *Node) notifyChildRemoved(parent, child *Node, oldIndex int) {
	for t := n; t != nil; t = t.parent {
		for _, l := range snapshotListeners(t.listeners) {
			l.ChildRemoved(parent, child, oldIndex)
		}
	}
}

func (n *Node) notifyChildOrderChanged(parent *Node) {
	for t := n; t != nil; t = t.parent {
		for _, l := range snapshotListeners(t.listeners) {
			l.ChildOrderChanged(parent)
		}
	}
}

func (n *Node) notifyParentChanged(node *Node) {
	for t := n; t != nil; t = t.parent {
		for _, l := range snapshotListeners(t.listeners) {
			l.ParentChanged(node)
		}
	}
}

func snapshotListeners(ls []Listener) []Listener {
	if len(ls) == 0 {
		return nil
	}
	out := make([]Listener, len(ls))
	copy(out, ls)
	return out
}

func indexOfNode(nodes []*Node, target *Node) int {
	for i, n := range nodes {
		if n == target {
			return i
		}
	}
	return -1
}
