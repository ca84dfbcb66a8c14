// Package main provides the treesync command line tool.
// It loads YAML state tree documents, materializes them with generic type
// handlers, and prints or validates the resulting instance tree.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-drift/treesync/pkg/build"
	"github.com/go-drift/treesync/pkg/statetree"
)

// command represents a CLI subcommand.
type command struct {
	name  string
	short string
	usage string
	run   func(args []string) error
}

var commands = []*command{
	{
		name:  "render",
		short: "Load a YAML state tree and print the reconciled instance tree",
		usage: "treesync render <file.yaml>",
		run:   runRender,
	},
	{
		name:  "validate",
		short: "Check a YAML state tree document for addressing problems",
		usage: "treesync validate <file.yaml>",
		run:   runValidate,
	},
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printHelp()
		return
	}

	for _, cmd := range commands {
		if cmd.name == args[0] {
			if err := cmd.run(args[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", args[0])
	printHelp()
	os.Exit(1)
}

func printHelp() {
	fmt.Println("treesync - state tree reconciliation tool")
	fmt.Println()
	fmt.Println("Commands:")
	for _, cmd := range commands {
		fmt.Printf("  %-10s %s\n", cmd.name, cmd.short)
	}
	fmt.Println()
	fmt.Println("Use \"treesync <command> <file.yaml>\".")
}

func loadTree(args []string, usage string) (*statetree.Node, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("usage: %s", usage)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, err
	}
	return statetree.FromYAML(data)
}

func runRender(args []string) error {
	root, err := loadTree(args, "treesync render <file.yaml>")
	if err != nil {
		return err
	}

	builder := build.NewBuilder(root)
	defer builder.Close()
	for _, kind := range collectKinds(root) {
		builder.RegisterHandler(newGenericHandler(kind))
	}

	printInstance(builder.ManagedInstance(), 0)
	return nil
}

func runValidate(args []string) error {
	root, err := loadTree(args, "treesync validate <file.yaml>")
	if err != nil {
		return err
	}

	problems := 0
	statetree.Walk(root, func(n *statetree.Node) bool {
		if n.ID() == "" && n.NumChildren() > 0 {
			fmt.Printf("warning: %s node with children has no id (not addressable for updates)\n", n.Kind())
			problems++
		}
		seen := make(map[string]bool)
		for _, child := range n.Children() {
			id := child.ID()
			if id == "" {
				continue
			}
			if seen[id] {
				fmt.Printf("warning: duplicate sibling id %q under %s\n", id, describeNode(n))
				problems++
			}
			seen[id] = true
		}
		return true
	})

	if problems == 0 {
		fmt.Println("ok")
		return nil
	}
	return fmt.Errorf("%d problem(s) found", problems)
}

func describeNode(n *statetree.Node) string {
	if n.ID() != "" {
		return fmt.Sprintf("%s[%s]", n.Kind(), n.ID())
	}
	return n.Kind()
}

func collectKinds(root *statetree.Node) []string {
	set := make(map[string]bool)
	statetree.Walk(root, func(n *statetree.Node) bool {
		set[n.Kind()] = true
		return true
	})
	kinds := make([]string, 0, len(set))
	for kind := range set {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// genericInstance mirrors a state node's kind and attributes so the tree
// can be printed without real per-kind instances.
type genericInstance struct {
	build.InstanceBase
	kind  string
	attrs map[string]any
}

type genericHandler struct {
	build.HandlerBase
	kind string
}

func newGenericHandler(kind string) *genericHandler {
	return &genericHandler{kind: kind}
}

func (h *genericHandler) Kind() string { return h.kind }

func (h *genericHandler) CreateInstance(state *statetree.Node, parent build.Instance) build.Instance {
	inst := &genericInstance{kind: state.Kind()}
	build.Attach(inst, parent)
	h.UpdateInstance(inst, state)
	return inst
}

func (h *genericHandler) UpdateInstance(inst build.Instance, state *statetree.Node) {
	g := inst.(*genericInstance)
	g.attrs = make(map[string]any)
	for _, name := range state.AttrNames() {
		if name == statetree.IDAttribute {
			continue
		}
		g.attrs[name] = state.Attr(name)
	}
}

func printInstance(inst build.Instance, depth int) {
	if inst == nil {
		return
	}
	g, _ := inst.(*genericInstance)
	indent := strings.Repeat("  ", depth)

	label := "?"
	if g != nil {
		label = g.kind
	}
	if inst.ID() != "" {
		label += "#" + inst.ID()
	}
	fmt.Printf("%s%s", indent, label)

	if g != nil && len(g.attrs) > 0 {
		names := make([]string, 0, len(g.attrs))
		for name := range g.attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		pairs := make([]string, 0, len(names))
		for _, name := range names {
			pairs = append(pairs, fmt.Sprintf("%s=%v", name, g.attrs[name]))
		}
		fmt.Printf(" {%s}", strings.Join(pairs, " "))
	}
	fmt.Println()

	for i := 0; i < inst.NumChildren(); i++ {
		printInstance(inst.ChildAt(i), depth+1)
	}
}
