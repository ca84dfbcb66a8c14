package statetree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// event is one recorded notification.
type event struct {
	kind     string // "prop", "added", "removed", "order", "parent"
	node     *Node
	name     string
	parent   *Node
	child    *Node
	oldIndex int
}

// recorder captures notifications in delivery order.
type recorder struct {
	events []event
}

func (r *recorder) PropertyChanged(node *Node, name string) {
	r.events = append(r.events, event{kind: "prop", node: node, name: name})
}

func (r *recorder) ChildAdded(parent, child *Node) {
	r.events = append(r.events, event{kind: "added", parent: parent, child: child})
}

func (r *recorder) ChildRemoved(parent, child *Node, oldIndex int) {
	r.events = append(r.events, event{kind: "removed", parent: parent, child: child, oldIndex: oldIndex})
}

func (r *recorder) ChildOrderChanged(parent *Node) {
	r.events = append(r.events, event{kind: "order", parent: parent})
}

func (r *recorder) ParentChanged(node *Node) {
	r.events = append(r.events, event{kind: "parent", node: node})
}

func (r *recorder) kinds() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.kind
	}
	return out
}

func childIDs(n *Node) []string {
	out := make([]string, 0, n.NumChildren())
	for _, c := range n.Children() {
		out = append(out, c.ID())
	}
	return out
}

func TestNode_SetAttr_NotifiesListenersOnAncestors(t *testing.T) {
	root := NewNode("panel")
	child := NewNode("button")
	root.AddChild(child, -1)

	rec := &recorder{}
	root.AddListener(rec)

	child.SetAttr("label", "ok")

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	got := rec.events[0]
	if got.kind != "prop" || got.node != child || got.name != "label" {
		t.Errorf("unexpected event %+v", got)
	}
}

func TestNode_SetAttr_EqualValueIsNoOp(t *testing.T) {
	n := NewNode("panel")
	n.SetAttr("title", "home")

	rec := &recorder{}
	n.AddListener(rec)

	n.SetAttr("title", "home")

	if len(rec.events) != 0 {
		t.Errorf("expected no events for an unchanged value, got %v", rec.kinds())
	}
}

func TestNode_RemoveAttr(t *testing.T) {
	n := NewNode("panel")
	n.SetAttr("title", "home")

	rec := &recorder{}
	n.AddListener(rec)

	n.RemoveAttr("title")
	if n.HasAttr("title") {
		t.Error("expected attribute to be removed")
	}
	if diff := cmp.Diff([]string{"prop"}, rec.kinds()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	rec.events = nil
	n.RemoveAttr("title")
	if len(rec.events) != 0 {
		t.Error("removing an unset attribute should not notify")
	}
}

func TestNode_AddChild_AppendsAndInserts(t *testing.T) {
	root := NewNode("panel")
	a := NewNode("button")
	a.SetID("a")
	b := NewNode("button")
	b.SetID("b")
	c := NewNode("button")
	c.SetID("c")

	root.AddChild(a, -1)
	root.AddChild(b, -1)
	root.AddChild(c, 1)

	if diff := cmp.Diff([]string{"a", "c", "b"}, childIDs(root)); diff != "" {
		t.Errorf("child order mismatch (-want +got):\n%s", diff)
	}
	if c.Parent() != root || c.Index() != 1 {
		t.Errorf("expected c at index 1 under root, got parent=%v index=%d", c.Parent(), c.Index())
	}
}

func TestNode_AddChild_NotifiesAddedThenParentChanged(t *testing.T) {
	root := NewNode("panel")
	rec := &recorder{}
	root.AddListener(rec)

	child := NewNode("button")
	root.AddChild(child, -1)

	if diff := cmp.Diff([]string{"added", "parent"}, rec.kinds()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_AddChild_RejectsCycles(t *testing.T) {
	root := NewNode("panel")
	child := NewNode("panel")
	root.AddChild(child, -1)

	child.AddChild(root, -1)

	if root.Parent() != nil {
		t.Error("adding an ancestor as a child should be ignored")
	}
	root.AddChild(root, -1)
	if root.NumChildren() != 1 {
		t.Errorf("adding a node to itself should be ignored, have %d children", root.NumChildren())
	}
}

func TestNode_RemoveChild_Notifies(t *testing.T) {
	root := NewNode("panel")
	a := NewNode("button")
	b := NewNode("button")
	root.AddChild(a, -1)
	root.AddChild(b, -1)

	rec := &recorder{}
	root.AddListener(rec)

	root.RemoveChild(b)

	if a.Parent() != root || b.Parent() != nil {
		t.Error("unexpected parents after removal")
	}
	if len(rec.events) == 0 || rec.events[0].kind != "removed" {
		t.Fatalf("expected a removed event first, got %v", rec.kinds())
	}
	if rec.events[0].oldIndex != 1 {
		t.Errorf("expected oldIndex 1, got %d", rec.events[0].oldIndex)
	}
}

func TestNode_Reparent_DetachesFromOldParentFirst(t *testing.T) {
	root := NewNode("panel")
	left := NewNode("panel")
	left.SetID("left")
	right := NewNode("panel")
	right.SetID("right")
	root.AddChild(left, -1)
	root.AddChild(right, -1)

	child := NewNode("button")
	child.SetID("x")
	left.AddChild(child, -1)

	rec := &recorder{}
	root.AddListener(rec)

	right.AddChild(child, -1)

	if child.Parent() != right || left.NumChildren() != 0 {
		t.Error("expected child to move from left to right")
	}
	// One removal at the old parent, one addition at the new one, and a
	// single ParentChanged for the move.
	if diff := cmp.Diff([]string{"removed", "added", "parent"}, rec.kinds()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_MoveChild(t *testing.T) {
	root := NewNode("panel")
	for _, id := range []string{"a", "b", "c", "d"} {
		n := NewNode("button")
		n.SetID(id)
		root.AddChild(n, -1)
	}

	rec := &recorder{}
	root.AddListener(rec)

	root.MoveChild(0, 2)
	if diff := cmp.Diff([]string{"b", "c", "a", "d"}, childIDs(root)); diff != "" {
		t.Errorf("child order mismatch (-want +got):\n%s", diff)
	}

	root.MoveChild(3, 1)
	if diff := cmp.Diff([]string{"b", "d", "c", "a"}, childIDs(root)); diff != "" {
		t.Errorf("child order mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"order", "order"}, rec.kinds()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_SetChildOrder(t *testing.T) {
	root := NewNode("panel")
	a := NewNode("button")
	a.SetID("a")
	b := NewNode("button")
	b.SetID("b")
	root.AddChild(a, -1)
	root.AddChild(b, -1)

	rec := &recorder{}
	root.AddListener(rec)

	root.SetChildOrder([]*Node{b, a})
	if diff := cmp.Diff([]string{"b", "a"}, childIDs(root)); diff != "" {
		t.Errorf("child order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"order"}, rec.kinds()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	// Not a permutation: ignored.
	root.SetChildOrder([]*Node{a})
	root.SetChildOrder([]*Node{a, a})
	if diff := cmp.Diff([]string{"b", "a"}, childIDs(root)); diff != "" {
		t.Errorf("invalid orders should be ignored (-want +got):\n%s", diff)
	}
}

// selfRemover deregisters itself on the first notification.
type selfRemover struct {
	recorder
	target *Node
}

func (s *selfRemover) PropertyChanged(node *Node, name string) {
	s.recorder.PropertyChanged(node, name)
	s.target.RemoveListener(s)
}

func TestNode_ListenerCanDeregisterDuringCallback(t *testing.T) {
	n := NewNode("panel")
	s := &selfRemover{target: n}
	n.AddListener(s)

	n.SetAttr("a", 1)
	n.SetAttr("b", 2)

	if len(s.events) != 1 {
		t.Errorf("expected exactly 1 event after self-removal, got %d", len(s.events))
	}
}

func TestNode_AddListener_DuplicateIgnored(t *testing.T) {
	n := NewNode("panel")
	rec := &recorder{}
	n.AddListener(rec)
	n.AddListener(rec)

	n.SetAttr("a", 1)
	if len(rec.events) != 1 {
		t.Errorf("duplicate registration should not double-deliver, got %d events", len(rec.events))
	}
}

func TestWalk_PreorderAndEarlyStop(t *testing.T) {
	root := NewNode("panel")
	root.SetID("root")
	a := NewNode("panel")
	a.SetID("a")
	b := NewNode("button")
	b.SetID("b")
	a1 := NewNode("button")
	a1.SetID("a1")
	root.AddChild(a, -1)
	root.AddChild(b, -1)
	a.AddChild(a1, -1)

	var visited []string
	Walk(root, func(n *Node) bool {
		visited = append(visited, n.ID())
		return true
	})
	if diff := cmp.Diff([]string{"root", "a", "a1", "b"}, visited); diff != "" {
		t.Errorf("preorder mismatch (-want +got):\n%s", diff)
	}

	visited = nil
	Walk(root, func(n *Node) bool {
		visited = append(visited, n.ID())
		return n.ID() != "a"
	})
	if diff := cmp.Diff([]string{"root", "a"}, visited); diff != "" {
		t.Errorf("early stop mismatch (-want +got):\n%s", diff)
	}
}

func TestFindID(t *testing.T) {
	root := NewNode("panel")
	root.SetID("root")
	a := NewNode("button")
	a.SetID("a")
	root.AddChild(a, -1)

	if got := FindID(root, "a"); got != a {
		t.Errorf("FindID(a) = %v, want %v", got, a)
	}
	if got := FindID(root, "missing"); got != nil {
		t.Errorf("FindID(missing) = %v, want nil", got)
	}
	if got := FindID(root, ""); got != nil {
		t.Errorf("FindID(\"\") = %v, want nil", got)
	}
}

func TestNode_RootAndIndex(t *testing.T) {
	root := NewNode("panel")
	child := NewNode("button")
	root.AddChild(child, -1)

	if child.Root() != root {
		t.Error("expected Root to return the topmost ancestor")
	}
	if root.Index() != -1 {
		t.Errorf("expected -1 index for a root node, got %d", root.Index())
	}
}
