// Package svgopt rewrites a scene into an equivalent, smaller one:
// groups with a single child are removed, and consecutive
// paths sharing the same style are merged.
//
// The scene is modified in place. Removed nodes stay in the
// arena but are detached from the tree.
package svgopt

import (
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
)

// Stats reports the number of rewrites performed.
type Stats struct {
	Flattened int // removed groups
	Combined  int // paths merged into their previous sibling
}

// Optimize calls Flatten and then Combine on the whole scene.
func Optimize(sc *svgscene.Scene) Stats {
	var st Stats
	st.Flattened = Flatten(sc)
	st.Combined = Combine(sc, sc.Root())
	return st
}

// Flatten replaces each group having exactly one child by this child,
// merging the group style and transform into the child.
// The groups are collected before any change, in document order,
// so that a single pass is performed.
// It returns the number of removed groups.
func Flatten(sc *svgscene.Scene) int {
	var groups []svgscene.NodeID
	sc.Walk(sc.Root(), func(id svgscene.NodeID) bool {
		if sc.Kind(id) == svgscene.KindGroup && len(sc.Children(id)) == 1 {
			groups = append(groups, id)
		}
		return true
	})

	var count int
	for _, group := range groups {
		grandParent := sc.Parent(group)
		children := sc.Children(group)
		if grandParent == svgscene.NoNode || len(children) != 1 {
			continue
		}
		child := children[0]
		mergeInto(sc.Node(group), sc.Node(child))
		if err := sc.ReplaceChild(grandParent, group, child); err != nil {
			// not reachable: child is a descendant of grandParent
			continue
		}
		count++
	}
	return count
}

// mergeInto copies the properties `child` inherits from `parent`,
// so that the child renders the same once attached to the grand parent.
func mergeInto(parent, child *svgscene.Node) {
	hasOwnFill := child.Gradient != svgscene.NoNode || (child.Style != nil && child.Style.Fill != nil)
	if child.DrawFill && !hasOwnFill {
		if !parent.DrawFill {
			child.DrawFill = false
		} else if parent.Gradient != svgscene.NoNode {
			child.Gradient = parent.Gradient
		}
	}
	if !parent.Display {
		child.Display = false
	}

	if style := child.Style.Inherit(parent.Style); !style.IsEmpty() {
		child.Style = &style
	}
	if textStyle := child.TextStyle.Inherit(parent.TextStyle); textStyle != (svgscene.TextStyle{}) {
		child.TextStyle = &textStyle
	}

	m := svgpath.Identity
	if parent.Transform != nil {
		m = *parent.Transform
	}
	if child.Transform != nil {
		m = m.Mult(*child.Transform)
	}
	if !m.IsIdentity() {
		child.Transform = &m
	}
}

func sameTransform(a, b *svgpath.Matrix2D) bool {
	ma, mb := svgpath.Identity, svgpath.Identity
	if a != nil {
		ma = *a
	}
	if b != nil {
		mb = *b
	}
	return ma == mb
}

// canCombine returns true if the two nodes are paths
// drawn with the same properties.
// Gradient filled paths are never merged, since the gradient
// may depend on the bounding box of the path.
func canCombine(sc *svgscene.Scene, prev, next svgscene.NodeID) bool {
	if sc.Kind(prev) != svgscene.KindPath || sc.Kind(next) != svgscene.KindPath {
		return false
	}
	p, n := sc.Node(prev), sc.Node(next)
	return p.Style.Equal(n.Style) &&
		sameTransform(p.Transform, n.Transform) &&
		p.DrawFill == n.DrawFill &&
		p.EvenOdd == n.EvenOdd &&
		p.Display == n.Display &&
		sc.GradientFill(prev) == svgscene.NoNode &&
		sc.GradientFill(next) == svgscene.NoNode
}

// Combine merges each path into its previous sibling when both
// have the same style and transform, recursing first into the
// sub containers of `id`. The merged path loses its source path data.
// It returns the number of removed paths.
func Combine(sc *svgscene.Scene, id svgscene.NodeID) int {
	if sc.Node(id) == nil || !sc.IsContainer(id) {
		return 0
	}
	var count int
	for _, child := range sc.Children(id) {
		count += Combine(sc, child)
	}

	for combined := true; combined; {
		combined = false
		children := sc.Children(id)
		for i := 1; i < len(children); i++ {
			prev, next := children[i-1], children[i]
			if !canCombine(sc, prev, next) {
				continue
			}
			p := sc.Node(prev)
			p.Content = svgscene.Path{
				Data: p.Content.(svgscene.Path).Data.Union(sc.Node(next).Content.(svgscene.Path).Data),
			}
			sc.RemoveChild(id, next)
			combined = true
			count++
			break
		}
	}
	return count
}
