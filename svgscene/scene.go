// Package svgscene defines the in-memory representation of an SVG document:
// a tree of typed nodes stored in an arena and addressed by NodeID,
// with the style inheritance rules used by the renderers.
package svgscene

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/svgscene/svgpath"
)

// NodeID is the identity of a node in its Scene.
type NodeID int

// NoNode is the null NodeID.
const NoNode NodeID = -1

// ErrNotContainer is returned when adding children to a leaf node.
var ErrNotContainer = errors.New("node is not a container")

// Node is an element of the scene. Its parent and children are
// managed by the Scene methods, to keep the tree consistent.
type Node struct {
	Content Content

	ID        string
	Style     *Style
	TextStyle *TextStyle
	Transform *svgpath.Matrix2D
	Gradient  NodeID // fill paint server, NoNode if none

	Display  bool // false for display:none
	DrawFill bool // false for fill:none
	EvenOdd  bool // fill-rule:evenodd

	parent   NodeID
	children []NodeID
}

// Scene owns all the nodes of a document.
// Nodes are never freed : detached nodes (such as `defs` content)
// stay in the arena and may still be referenced.
type Scene struct {
	nodes []*Node
	root  NodeID
}

// New returns an empty scene, without root.
func New() *Scene {
	return &Scene{root: NoNode}
}

// NewNode adds a detached node to the arena.
func (s *Scene) NewNode(content Content) NodeID {
	id := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, &Node{
		Content:  content,
		Gradient: NoNode,
		Display:  true,
		DrawFill: true,
		parent:   NoNode,
	})
	return id
}

// Len returns the number of nodes in the arena, attached or not.
func (s *Scene) Len() int { return len(s.nodes) }

// Node returns the node `id`, or nil for an invalid id.
func (s *Scene) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(s.nodes) {
		return nil
	}
	return s.nodes[id]
}

// Root returns the document node, or NoNode.
func (s *Scene) Root() NodeID { return s.root }

// SetRoot changes the root of the scene.
func (s *Scene) SetRoot(id NodeID) { s.root = id }

// Parent returns the parent of `id`, or NoNode.
func (s *Scene) Parent(id NodeID) NodeID {
	if n := s.Node(id); n != nil {
		return n.parent
	}
	return NoNode
}

// Children returns a copy of the children of `id`.
func (s *Scene) Children(id NodeID) []NodeID {
	n := s.Node(id)
	if n == nil {
		return nil
	}
	return append([]NodeID(nil), n.children...)
}

// IsContainer returns true for documents and groups.
func (s *Scene) IsContainer(id NodeID) bool {
	n := s.Node(id)
	if n == nil {
		return false
	}
	switch n.Content.(type) {
	case Document, Group:
		return true
	}
	return false
}

// Kind returns the kind of the node content.
func (s *Scene) Kind(id NodeID) Kind { return s.nodes[id].Content.Kind() }

// isAncestor returns true if `a` is `id` or one of its ancestors.
func (s *Scene) isAncestor(a, id NodeID) bool {
	for ; id != NoNode; id = s.nodes[id].parent {
		if id == a {
			return true
		}
	}
	return false
}

func (s *Scene) checkAttach(parent, child NodeID) error {
	if !s.IsContainer(parent) {
		return ErrNotContainer
	}
	if s.Node(child) == nil {
		return fmt.Errorf("invalid node %d", child)
	}
	if s.isAncestor(child, parent) {
		return fmt.Errorf("node %d can't be a child of its descendant %d", child, parent)
	}
	return nil
}

// detach removes `child` from its current parent, if any.
func (s *Scene) detach(child NodeID) {
	n := s.nodes[child]
	if n.parent == NoNode {
		return
	}
	p := s.nodes[n.parent]
	for i, c := range p.children {
		if c == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = NoNode
}

// AppendChild moves `child` at the end of the children of `parent`.
func (s *Scene) AppendChild(parent, child NodeID) error {
	if err := s.checkAttach(parent, child); err != nil {
		return err
	}
	s.detach(child)
	s.nodes[child].parent = parent
	p := s.nodes[parent]
	p.children = append(p.children, child)
	return nil
}

// SetChildren replaces the children of `parent`. The previous
// children are detached, and the new ones are removed from their
// previous parent.
func (s *Scene) SetChildren(parent NodeID, children []NodeID) error {
	for _, c := range children {
		if err := s.checkAttach(parent, c); err != nil {
			return err
		}
	}
	for _, c := range s.Children(parent) {
		s.nodes[c].parent = NoNode
	}
	s.nodes[parent].children = nil
	for _, c := range children {
		if err := s.AppendChild(parent, c); err != nil {
			return err
		}
	}
	return nil
}

// RemoveChild detaches `child` from `parent`, returning false
// if it was not one of its children.
func (s *Scene) RemoveChild(parent, child NodeID) bool {
	if s.Parent(child) != parent || parent == NoNode {
		return false
	}
	s.detach(child)
	return true
}

// ReplaceChild puts `newChild` at the position of `old` in the children
// of `parent`. `old` is detached, and `newChild` is removed from its
// previous parent.
func (s *Scene) ReplaceChild(parent, old, newChild NodeID) error {
	if s.Parent(old) != parent || parent == NoNode {
		return fmt.Errorf("node %d is not a child of %d", old, parent)
	}
	if old == newChild {
		return nil
	}
	if err := s.checkAttach(parent, newChild); err != nil {
		return err
	}
	s.detach(newChild) // may shift the position of old
	p := s.nodes[parent]
	for i, c := range p.children {
		if c == old {
			p.children[i] = newChild
			break
		}
	}
	s.nodes[old].parent = NoNode
	s.nodes[newChild].parent = parent
	return nil
}

// Clone deep copies the subtree rooted at `id`, returning
// the new detached node.
func (s *Scene) Clone(id NodeID) NodeID {
	src := s.nodes[id]
	cp := *src
	cp.parent = NoNode
	cp.children = nil
	if cp.Style != nil {
		st := *cp.Style
		cp.Style = &st
	}
	if cp.TextStyle != nil {
		ts := *cp.TextStyle
		cp.TextStyle = &ts
	}
	if cp.Transform != nil {
		m := *cp.Transform
		cp.Transform = &m
	}
	if t, ok := cp.Content.(Text); ok {
		cp.Content = Text{Spans: append([]TextSpan(nil), t.Spans...)}
	}
	newID := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, &cp)
	for _, child := range src.children {
		c := s.Clone(child)
		s.nodes[c].parent = newID
		cp.children = append(cp.children, c)
	}
	return newID
}

// Walk visits the subtree rooted at `id` in pre-order. Returning false
// from `fn` skips the children of the visited node.
func (s *Scene) Walk(id NodeID, fn func(id NodeID) bool) {
	if s.Node(id) == nil || !fn(id) {
		return
	}
	for _, child := range s.Children(id) {
		s.Walk(child, fn)
	}
}

// IndexPath returns the positions of the node and its ancestors
// in their parent, from the top of the tree.
func (s *Scene) IndexPath(id NodeID) []int {
	var out []int
	for n := s.Node(id); n != nil && n.parent != NoNode; n = s.nodes[n.parent] {
		for i, c := range s.nodes[n.parent].children {
			if c == id {
				out = append(out, i)
				break
			}
		}
		id = n.parent
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
