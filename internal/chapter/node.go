package chapter

import "strings"

// NodeID addresses a node inside a single tree's arena.
type NodeID int

const (
	// RootID is the id of the Root node in every tree.
	RootID NodeID = 0

	// NoNode marks an absent parent.
	NoNode NodeID = -1
)

// node is an arena entry. Children are owned; parent is a back-reference only.
type node struct {
	name     string
	kind     Kind
	start    int
	end      int
	closed   bool
	public   bool
	value    string
	hasValue bool
	children []NodeID
	parent   NodeID
}

// Builder owns the mutable arena while a file is being scanned. A Builder
// must not be used after Freeze.
type Builder struct {
	nodes []node
}

// NewBuilder returns a builder holding only the Root node.
func NewBuilder() *Builder {
	b := &Builder{}
	b.nodes = append(b.nodes, rootNode())
	return b
}

// rootNode returns a fresh Root entry: synthetic name, no span, no parent.
func rootNode() node {
	return node{
		name:   RootName,
		kind:   KindRoot,
		parent: NoNode,
	}
}

// IsPublicName reports whether a Python identifier is public by convention.
func IsPublicName(name string) bool {
	return !strings.HasPrefix(name, "_")
}

// NewNode allocates an open node. It is not attached to any parent yet.
func (b *Builder) NewNode(name string, kind Kind, start int, public bool) NodeID {
	b.nodes = append(b.nodes, node{
		name:   name,
		kind:   kind,
		start:  start,
		public: public,
		parent: NoNode,
	})
	return NodeID(len(b.nodes) - 1)
}

// AddNode appends child to parent's children. Callers also call SetParent.
func (b *Builder) AddNode(parent, child NodeID) {
	b.nodes[parent].children = append(b.nodes[parent].children, child)
}

// SetParent records the enclosing node of child.
func (b *Builder) SetParent(child, parent NodeID) {
	b.nodes[child].parent = parent
}

// Attach is AddNode followed by SetParent.
func (b *Builder) Attach(parent, child NodeID) {
	b.AddNode(parent, child)
	b.SetParent(child, parent)
}

// AppendValue sets the node value, or concatenates when one already exists.
func (b *Builder) AppendValue(id NodeID, text string) {
	n := &b.nodes[id]
	if !n.hasValue {
		n.value = text
		n.hasValue = true
		return
	}
	n.value += text
}

// SetLocation closes the node's span. Only the first call has an effect, so
// closing an ancestor later never moves a child's end.
func (b *Builder) SetLocation(id NodeID, end int) {
	n := &b.nodes[id]
	if n.closed || n.kind == KindRoot {
		return
	}
	if end < n.start {
		end = n.start
	}
	n.end = end
	n.closed = true
}

// Location returns the span once the node is closed.
func (b *Builder) Location(id NodeID) (Span, bool) {
	n := b.nodes[id]
	if !n.closed {
		return Span{}, false
	}
	return Span{Start: n.start, End: n.end}, true
}

// Kind returns the kind of an arena node.
func (b *Builder) Kind(id NodeID) Kind {
	return b.nodes[id].kind
}

// Freeze hands the arena off as an immutable Tree.
func (b *Builder) Freeze() *Tree {
	t := &Tree{nodes: b.nodes}
	b.nodes = nil
	return t
}

// Tree is an immutable context tree for one source file.
type Tree struct {
	nodes []node
}

// Root returns the Root node.
func (t *Tree) Root() Node {
	return Node{tree: t, id: RootID}
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) Node {
	return Node{tree: t, id: id}
}

// Walk visits nodes depth-first in source order, starting at Root. Returning
// false from fn skips the node's children.
func (t *Tree) Walk(fn func(Node) bool) {
	var walk func(id NodeID)
	walk = func(id NodeID) {
		if !fn(t.Node(id)) {
			return
		}
		for _, c := range t.nodes[id].children {
			walk(c)
		}
	}
	walk(RootID)
}

// Find returns every node of the given kind whose name equals name.
func (t *Tree) Find(kind Kind, name string) []Node {
	var out []Node
	t.Walk(func(n Node) bool {
		if n.Kind() == kind && n.Name() == name {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Node is a read-only view of one tree entry.
type Node struct {
	tree *Tree
	id   NodeID
}

// ID returns the node's arena handle.
func (n Node) ID() NodeID { return n.id }

// Name returns the identifier of the context.
func (n Node) Name() string { return n.tree.nodes[n.id].name }

// Kind returns the context kind.
func (n Node) Kind() Kind { return n.tree.nodes[n.id].kind }

// IsPublic reports whether the name has no leading underscore. Meaningless for Root.
func (n Node) IsPublic() bool { return n.tree.nodes[n.id].public }

// Location returns the closed span. Root never has one.
func (n Node) Location() (Span, bool) {
	e := n.tree.nodes[n.id]
	if !e.closed {
		return Span{}, false
	}
	return Span{Start: e.start, End: e.end}, true
}

// Start returns the offset at which the context opened.
func (n Node) Start() int { return n.tree.nodes[n.id].start }

// Value returns the accumulated text of Docstring and All nodes.
func (n Node) Value() (string, bool) {
	e := n.tree.nodes[n.id]
	return e.value, e.hasValue
}

// Parent returns the enclosing node, if any.
func (n Node) Parent() (Node, bool) {
	p := n.tree.nodes[n.id].parent
	if p == NoNode {
		return Node{}, false
	}
	return Node{tree: n.tree, id: p}, true
}

// Children returns the direct children in source order.
func (n Node) Children() []Node {
	ids := n.tree.nodes[n.id].children
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = Node{tree: n.tree, id: id}
	}
	return out
}

// ChildrenOfKind returns the direct children of the given kind.
func (n Node) ChildrenOfKind(kind Kind) []Node {
	var out []Node
	for _, id := range n.tree.nodes[n.id].children {
		if n.tree.nodes[id].kind == kind {
			out = append(out, Node{tree: n.tree, id: id})
		}
	}
	return out
}

// Docstring returns the value of the first Docstring child.
func (n Node) Docstring() (string, bool) {
	for _, c := range n.ChildrenOfKind(KindDocstring) {
		if v, ok := c.Value(); ok {
			return v, true
		}
	}
	return "", false
}
