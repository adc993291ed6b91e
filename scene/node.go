// Package scene is a minimal host for the pointer proxy: a tree of
// rectangular nodes that receives native events, and delivers synthesized
// pointer events to handlers registered on nodes, bubbling them up the tree.
package scene

import (
	"strings"

	"honnef.co/go/pointerproxy/f32"
)

// Node is a rectangular element. Children are painted over their parent and
// later children over earlier ones.
type Node struct {
	Name string
	// Bounds is the node's area in client coordinates.
	Bounds   f32.Rectangle
	Children []*Node

	parent *Node
}

// NewNode returns a node with the given children, adopting them.
func NewNode(name string, bounds f32.Rectangle, children ...*Node) *Node {
	n := &Node{Name: name, Bounds: bounds}
	for _, c := range children {
		n.Append(c)
	}
	return n
}

// Append adds c as the topmost child of n.
func (n *Node) Append(c *Node) {
	c.parent = n
	n.Children = append(n.Children, c)
}

func (n *Node) Parent() *Node { return n.parent }

// Find returns the first node named name in n's subtree, in depth-first
// order.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Path returns the names of n and its ancestors, root first, joined by "/".
func (n *Node) Path() string {
	var names []string
	for ; n != nil; n = n.parent {
		names = append(names, n.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}

func (n *Node) String() string { return n.Name }

// HitTest returns the deepest, topmost node of n's subtree that contains p,
// or nil.
func (n *Node) HitTest(p f32.Point) *Node {
	if !n.Bounds.Contains(p) {
		return nil
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if hit := n.Children[i].HitTest(p); hit != nil {
			return hit
		}
	}
	return n
}

// Contains reports whether d is n or one of its descendants.
func (n *Node) Contains(d *Node) bool {
	for ; d != nil; d = d.parent {
		if d == n {
			return true
		}
	}
	return false
}
