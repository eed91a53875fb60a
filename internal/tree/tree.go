package tree

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/optionbook/internal/module"
)

// NodeKind tags a Node as a category or a module leaf.
type NodeKind int

const (
	KindCategory NodeKind = iota
	KindLeaf
)

// Node is one entry of the navigation tree.
type Node struct {
	Kind    NodeKind
	Name    string
	Address []string

	// Leaf
	Module *module.Module

	// Category
	Children  map[string]*Node
	ImpliedBy string
}

// Tree is the finished navigation hierarchy.
type Tree struct {
	Root *Node
}

// SummaryPage is the navigation document; no module or category page may take its name.
const SummaryPage = "SUMMARY.md"

// CategoryPageName is the stub page file a category links to.
func CategoryPageName(name string) string {
	return name + ".md"
}

// page records who owns a file below the book source directory.
type page struct {
	owner    string
	category bool
}

// Builder inserts modules into a tree, rejecting collisions.
type Builder struct {
	opts  AddressOptions
	root  *Node
	pages map[string]page
}

// NewBuilder creates an empty builder.
func NewBuilder(opts AddressOptions) *Builder {
	return &Builder{
		opts:  opts,
		root:  &Node{Kind: KindCategory, Children: map[string]*Node{}},
		pages: map[string]page{SummaryPage: {owner: SummaryPage}},
	}
}

// Build inserts every module in lexical path order and returns the tree.
func Build(mods []*module.Module, opts AddressOptions) (*Tree, error) {
	sorted := append([]*module.Module(nil), mods...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	b := NewBuilder(opts)
	for _, m := range sorted {
		if err := b.Insert(m); err != nil {
			return nil, err
		}
	}
	return b.Tree(), nil
}

// Insert places a module at its derived address, creating intermediate categories.
func (b *Builder) Insert(m *module.Module) error {
	addr, err := Address(m.Path, b.opts)
	if err != nil {
		return err
	}
	if prev, ok := b.pages[m.DocumentName()]; ok {
		return &CollisionError{Kind: CollisionDocument, Address: m.DocumentName(), Existing: prev.owner, Incoming: m.Path}
	}

	node := b.root
	for i, seg := range addr[:len(addr)-1] {
		child, ok := node.Children[seg]
		switch {
		case !ok:
			// Same-named categories share one stub page.
			name := CategoryPageName(seg)
			if prev, taken := b.pages[name]; taken && !prev.category {
				return &CollisionError{Kind: CollisionDocument, Address: name, Existing: prev.owner, Incoming: m.Path}
			} else if !taken {
				b.pages[name] = page{owner: m.Path, category: true}
			}
			child = &Node{
				Kind:      KindCategory,
				Name:      seg,
				Address:   append([]string(nil), addr[:i+1]...),
				Children:  map[string]*Node{},
				ImpliedBy: m.Path,
			}
			node.Children[seg] = child
		case child.Kind == KindLeaf:
			return &CollisionError{Kind: CollisionModule, Address: strings.Join(addr[:i+1], "/"), Existing: child.Module.Path, Incoming: m.Path}
		}
		node = child
	}

	last := addr[len(addr)-1]
	if existing, ok := node.Children[last]; ok {
		err := &CollisionError{Kind: CollisionCategory, Address: strings.Join(addr, "/"), Existing: existing.ImpliedBy, Incoming: m.Path}
		if existing.Kind == KindLeaf {
			err.Kind = CollisionModule
			err.Existing = existing.Module.Path
		}
		return err
	}
	node.Children[last] = &Node{Kind: KindLeaf, Name: last, Address: addr, Module: m}
	b.pages[m.DocumentName()] = page{owner: m.Path}
	return nil
}

// Tree returns the tree built so far.
func (b *Builder) Tree() *Tree {
	return &Tree{Root: b.root}
}

// Walk visits nodes depth-first with children in lexical key order.
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		for _, key := range sortedKeys(n.Children) {
			child := n.Children[key]
			fn(child, depth)
			if child.Kind == KindCategory {
				walk(child, depth+1)
			}
		}
	}
	walk(t.Root, 0)
}

// Leaves returns the modules in navigation order.
func (t *Tree) Leaves() []*module.Module {
	var out []*module.Module
	t.Walk(func(n *Node, _ int) {
		if n.Kind == KindLeaf {
			out = append(out, n.Module)
		}
	})
	return out
}

// Categories returns the distinct category names, sorted.
func (t *Tree) Categories() []string {
	seen := map[string]struct{}{}
	t.Walk(func(n *Node, _ int) {
		if n.Kind == KindCategory {
			seen[n.Name] = struct{}{}
		}
	})
	return sortedKeys(seen)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
