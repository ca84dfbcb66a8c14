package statetree

// Walk visits node and its descendants in preorder (node first, then
// children in current order). The visitor returns false to stop the walk
// early; Walk then returns false as well.
func Walk(node *Node, visit func(*Node) bool) bool {
	if node == nil {
		return true
	}
	if !visit(node) {
		return false
	}
	for _, child := range node.children {
		if !Walk(child, visit) {
			return false
		}
	}
	return true
}

// FindID returns the first node in root's subtree whose identifier equals
// id, searching depth-first in child order, or nil if none matches. An
// empty id never matches.
func FindID(root *Node, id string) *Node {
	if id == "" {
		return nil
	}
	var found *Node
	Walk(root, func(n *Node) bool {
		if n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}
