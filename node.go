package latex

import (
	"fmt"
	"iter"
)

type NodeKind int

const (
	TextNode NodeKind = iota
	CommentNode
	CommandNode
	EnvironmentNode
	MathNode
	GroupNode
)

type MathStyle int

const (
	InlineMath MathStyle = iota
	DisplayMath
	LegacyInlineMath
	LegacyDisplayMath
)

// NodeID is a stable identifier assigned at parse time, unique within a
// Document and never reused. Detaching a node (Delete or Replace)
// invalidates the ids of the whole subtree.
type NodeID int

// Node is one vertex of the document tree, discriminated by Kind:
//
//   - TextNode, CommentNode: Data holds the raw source run.
//   - CommandNode: Data is the name without backslash, Args the
//     delimited arguments and Trailing the children that follow the
//     command outside any argument (the body of \item).
//   - EnvironmentNode: Data is the name, Args the arguments directly
//     after \begin{name} and Children the body.
//   - MathNode: Style selects the delimiters, Children the body.
//   - GroupNode: an implicit {...} not bound to a preceding command.
//
// Parent is a non-owning back-reference for traversal; it must not be
// dereferenced after the node is detached.
type Node struct {
	ID     NodeID
	Kind   NodeKind
	Offset int
	Parent *Node

	Data     string
	Style    MathStyle
	Args     []Argument
	Children []*Node
	Trailing []*Node
}

// Argument is a single delimited command argument: {...} when
// Optional is false, [...] otherwise.
type Argument struct {
	Optional bool
	Children []*Node
}

// Document owns a tree of nodes and the source text it was parsed
// from. The source is kept for offset to line/column conversion, so
// positions stay meaningful until the tree is mutated.
type Document struct {
	Source   string
	Children []*Node

	index map[NodeID]*Node
	next  NodeID
}

// Node resolves an id, returning nil for ids that are unknown or were
// invalidated by a structural mutation.
func (d *Document) Node(id NodeID) *Node {
	return d.index[id]
}

// node creates and registers a fresh node.
func (d *Document) node(kind NodeKind) *Node {
	d.next++
	n := &Node{ID: d.next, Kind: kind}
	d.index[n.ID] = n

	return n
}

func (d *Document) unregister(n *Node) {
	delete(d.index, n.ID)
	for i := range n.Args {
		for _, c := range n.Args[i].Children {
			d.unregister(c)
		}
	}

	for _, c := range n.Children {
		d.unregister(c)
	}

	for _, c := range n.Trailing {
		d.unregister(c)
	}
}

// locate finds the sibling list holding n and its position in it.
func (d *Document) locate(n *Node) (*[]*Node, int) {
	var lists []*[]*Node
	if n.Parent == nil {
		lists = append(lists, &d.Children)
	} else {
		p := n.Parent
		for i := range p.Args {
			lists = append(lists, &p.Args[i].Children)
		}

		lists = append(lists, &p.Children, &p.Trailing)
	}

	for _, list := range lists {
		for i, c := range *list {
			if c == n {
				return list, i
			}
		}
	}

	return nil, -1
}

func (d *Document) attached(id NodeID) (*Node, *[]*Node, int, error) {
	n := d.index[id]
	if n == nil {
		return nil, nil, 0, fmt.Errorf("node %d is unknown or detached", id)
	}

	list, i := d.locate(n)
	if list == nil {
		return nil, nil, 0, fmt.Errorf("node %d is not attached to the document", id)
	}

	return n, list, i, nil
}

// InsertBefore splices nodes into the sibling list directly before the
// node identified by id. The nodes must originate from this document
// (Adopt foreign or detached subtrees first).
func (d *Document) InsertBefore(id NodeID, nodes ...*Node) error {
	n, list, i, err := d.attached(id)
	if err != nil {
		return err
	}

	for _, c := range nodes {
		c.Parent = n.Parent
	}

	*list = append((*list)[:i], append(append([]*Node{}, nodes...), (*list)[i:]...)...)
	return nil
}

// InsertAfter splices nodes into the sibling list directly after the
// node identified by id.
func (d *Document) InsertAfter(id NodeID, nodes ...*Node) error {
	n, list, i, err := d.attached(id)
	if err != nil {
		return err
	}

	for _, c := range nodes {
		c.Parent = n.Parent
	}

	*list = append((*list)[:i+1], append(append([]*Node{}, nodes...), (*list)[i+1:]...)...)
	return nil
}

// Delete detaches the node identified by id and returns it. The ids of
// the detached subtree are invalidated; reuse it only through Adopt.
func (d *Document) Delete(id NodeID) (*Node, error) {
	n, list, i, err := d.attached(id)
	if err != nil {
		return nil, err
	}

	*list = append((*list)[:i], (*list)[i+1:]...)
	d.unregister(n)
	n.Parent = nil

	return n, nil
}

// Replace swaps the node identified by id for the given nodes and
// returns the detached original. The ids of the detached subtree are
// invalidated.
func (d *Document) Replace(id NodeID, nodes ...*Node) (*Node, error) {
	n, list, i, err := d.attached(id)
	if err != nil {
		return nil, err
	}

	for _, c := range nodes {
		c.Parent = n.Parent
	}

	*list = append((*list)[:i], append(append([]*Node{}, nodes...), (*list)[i+1:]...)...)
	d.unregister(n)
	n.Parent = nil

	return n, nil
}

// Adopt deep-copies a subtree into the document, assigning fresh ids.
// Use it to reuse a detached subtree or a fragment parsed as a
// separate document.
func (d *Document) Adopt(n *Node) *Node {
	c := d.node(n.Kind)
	c.Offset = n.Offset
	c.Data = n.Data
	c.Style = n.Style

	for _, a := range n.Args {
		arg := Argument{Optional: a.Optional}
		for _, child := range a.Children {
			copied := d.Adopt(child)
			copied.Parent = c
			arg.Children = append(arg.Children, copied)
		}

		c.Args = append(c.Args, arg)
	}

	for _, child := range n.Children {
		copied := d.Adopt(child)
		copied.Parent = c
		c.Children = append(c.Children, copied)
	}

	for _, child := range n.Trailing {
		copied := d.Adopt(child)
		copied.Parent = c
		c.Trailing = append(c.Trailing, copied)
	}

	return c
}

// All returns a restartable pre-order sequence of every node in the
// document, in document order. The walk uses an explicit stack, so
// deeply nested groups cannot exhaust the call stack.
func (d *Document) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		var stack []*Node

		push := func(nodes []*Node) {
			for i := len(nodes) - 1; i >= 0; i-- {
				stack = append(stack, nodes[i])
			}
		}

		push(d.Children)
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(n) {
				return
			}

			push(n.Trailing)
			push(n.Children)
			for i := len(n.Args) - 1; i >= 0; i-- {
				push(n.Args[i].Children)
			}
		}
	}
}
