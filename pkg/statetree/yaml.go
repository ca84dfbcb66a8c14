package statetree

import (
	stderrors "errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/treesync/pkg/errors"
)

// document is the YAML form of a state tree node.
type document struct {
	Kind     string         `yaml:"kind"`
	ID       string         `yaml:"id,omitempty"`
	Attrs    map[string]any `yaml:"attrs,omitempty"`
	Children []document     `yaml:"children,omitempty"`
}

// FromYAML parses a YAML document into a state tree. Every mapping must
// carry a non-empty kind; id and attrs are optional. The returned root is
// detached and carries no listeners.
func FromYAML(data []byte) (*Node, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &errors.TreeError{
			Op:   "statetree.FromYAML",
			Kind: errors.KindDecode,
			Err:  err,
		}
	}
	return nodeFromDocument(doc, "")
}

func nodeFromDocument(doc document, path string) (*Node, error) {
	if doc.Kind == "" {
		return nil, &errors.TreeError{
			Op:   "statetree.FromYAML",
			Kind: errors.KindDecode,
			Err:  fmt.Errorf("node %q: missing kind", path),
		}
	}
	n := NewNode(doc.Kind)
	for name, value := range doc.Attrs {
		if name == IDAttribute {
			continue // the id field is authoritative
		}
		n.SetAttr(name, value)
	}
	if doc.ID != "" {
		n.SetID(doc.ID)
	}
	for i, childDoc := range doc.Children {
		child, err := nodeFromDocument(childDoc, fmt.Sprintf("%s/%d", path, i))
		if err != nil {
			return nil, err
		}
		n.AddChild(child, -1)
	}
	return n, nil
}

// ToYAML renders node and its subtree as a YAML document in the same form
// FromYAML accepts.
func ToYAML(node *Node) ([]byte, error) {
	if node == nil {
		return nil, &errors.TreeError{
			Op:   "statetree.ToYAML",
			Kind: errors.KindDecode,
			Err:  stderrors.New("nil node"),
		}
	}
	data, err := yaml.Marshal(documentFromNode(node))
	if err != nil {
		return nil, &errors.TreeError{
			Op:   "statetree.ToYAML",
			Kind: errors.KindDecode,
			Err:  err,
		}
	}
	return data, nil
}

func documentFromNode(n *Node) document {
	doc := document{
		Kind: n.Kind(),
		ID:   n.ID(),
	}
	for name, value := range n.attrs {
		if name == IDAttribute {
			continue
		}
		if doc.Attrs == nil {
			doc.Attrs = make(map[string]any)
		}
		doc.Attrs[name] = value
	}
	for _, child := range n.children {
		doc.Children = append(doc.Children, documentFromNode(child))
	}
	return doc
}
