package build_test

import (
	"fmt"
	"strings"

	"github.com/go-drift/treesync/pkg/build"
	"github.com/go-drift/treesync/pkg/statetree"
)

type label struct {
	build.InstanceBase
	text string
}

type labelHandler struct {
	build.HandlerBase
}

func (h *labelHandler) Kind() string { return "label" }

func (h *labelHandler) CreateInstance(state *statetree.Node, parent build.Instance) build.Instance {
	inst := &label{}
	build.Attach(inst, parent)
	h.UpdateInstance(inst, state)
	return inst
}

func (h *labelHandler) UpdateInstance(inst build.Instance, state *statetree.Node) {
	inst.(*label).text, _ = state.Attr("text").(string)
}

// This example shows the basic reconciliation loop: mutate the state tree,
// and the live instance follows before the mutating call returns.
func ExampleBuilder() {
	state := statetree.NewNode("label")
	state.SetID("greeting")
	state.SetAttr("text", "hello")

	builder := build.NewBuilder(state)
	defer builder.Close()
	builder.RegisterHandler(&labelHandler{})

	root := builder.ManagedInstance().(*label)
	fmt.Println(root.text)

	state.SetAttr("text", "goodbye")
	fmt.Println(root.text)

	// Output:
	// hello
	// goodbye
}

type panel struct {
	build.InstanceBase
}

type panelHandler struct {
	build.HandlerBase
}

func (h *panelHandler) Kind() string { return "panel" }

func (h *panelHandler) CreateInstance(state *statetree.Node, parent build.Instance) build.Instance {
	inst := &panel{}
	build.Attach(inst, parent)
	return inst
}

func (h *panelHandler) UpdateInstance(inst build.Instance, state *statetree.Node) {}

// This example shows that sibling instances mirror the state child order
// and keep their identity across reorders.
func ExampleBuilder_children() {
	doc := `
kind: panel
id: root
children:
  - {kind: label, id: a, attrs: {text: first}}
  - {kind: label, id: b, attrs: {text: second}}
`
	state, err := statetree.FromYAML([]byte(doc))
	if err != nil {
		fmt.Println(err)
		return
	}

	builder := build.NewBuilder(state)
	defer builder.Close()
	builder.RegisterHandler(&panelHandler{})
	builder.RegisterHandler(&labelHandler{})

	root := builder.ManagedInstance()
	fmt.Println(order(root))

	state.MoveChild(1, 0)
	fmt.Println(order(root))

	// Output:
	// a b
	// b a
}

func order(parent build.Instance) string {
	ids := make([]string, 0, parent.NumChildren())
	for _, c := range parent.Children() {
		ids = append(ids, c.ID())
	}
	return strings.Join(ids, " ")
}
