// Package svgprocess builds a scene graph from an XML element tree.
//
// Attributes are consumed as they are interpreted, so that the ones
// left at the end of an element are reported as unhandled.
// Problems are collected as diagnostic events; only a failure of the
// root element (or any element failure in StrictErrorMode) is returned as an error.
package svgprocess

import (
	"fmt"
	"io"
	"strings"

	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/benoitkugler/svgscene/svgxml"
)

// ErrorMode is the strategy used when an element can't be processed.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips the faulty element, only recording an event.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode also logs the warnings and errors as they occur.
	WarnErrorMode
	// StrictErrorMode aborts the processing on the first faulty element.
	// Warnings (unhandled elements or attributes) are never fatal.
	StrictErrorMode
)

// Options configures the processing.
type Options struct {
	ErrorMode ErrorMode
}

// Result is the output of a processing run.
type Result struct {
	Scene *svgscene.Scene
	// ElementsByID maps the `id` attributes to their node,
	// including nodes not attached to the tree (defs, gradients).
	ElementsByID map[string]svgscene.NodeID
	Events       Events
}

// processor is the state of one processing run. It is
// never shared between runs.
type processor struct {
	scene    *svgscene.Scene
	document svgscene.NodeID
	ids      map[string]svgscene.NodeID
	events   Events
	mode     ErrorMode
}

// ProcessReader decodes the XML document from `r` and processes it.
func ProcessReader(r io.Reader, opts Options) (*Result, error) {
	root, err := svgxml.Decode(r)
	if err != nil {
		return nil, err
	}
	return ProcessXMLDocument(root, opts)
}

// ProcessXMLDocument builds the scene for the given root element, which must be an `svg` element.
// The returned error is non nil when the root element can't be processed; the
// events collected so far are still available in the (partial) result.
func ProcessXMLDocument(root *svgxml.Element, opts Options) (*Result, error) {
	p := &processor{
		scene:    svgscene.New(),
		document: svgscene.NoNode,
		ids:      make(map[string]svgscene.NodeID),
		mode:     opts.ErrorMode,
	}
	res := &Result{Scene: p.scene, ElementsByID: p.ids}
	if root == nil || root.Name != "svg" {
		name := ""
		if root != nil {
			name = root.Name
		}
		return res, svgparse.NewError(svgparse.ErrExpectedElementNotFound, "svg root", name)
	}
	id, err := p.processElement(root)
	res.Events = p.events
	if err != nil {
		return res, err
	}
	p.scene.SetRoot(id)
	return res, nil
}

type elementFunc func(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error)

var elementFuncs map[string]elementFunc

func init() {
	// avoids cyclical static declaration
	// called on package initialization
	elementFuncs = map[string]elementFunc{
		"svg":            svgF,
		"g":              groupF,
		"symbol":         groupF,
		"path":           pathF,
		"line":           lineF,
		"circle":         circleF,
		"ellipse":        ellipseF,
		"rect":           rectF,
		"polygon":        polygonF,
		"polyline":       polylineF,
		"text":           textF,
		"use":            useF,
		"linearGradient": linearGradientF,
		"defs":           defsF,
		"title":          titleF,
		"desc":           descF,
	}
}

// processElement builds the node for `el`, and applies the attributes
// common to all elements. Elements without visible node (defs, metadata,
// unhandled elements, dangling references) return NoNode and a nil error.
func (p *processor) processElement(el *svgxml.Element) (svgscene.NodeID, error) {
	fn, ok := elementFuncs[el.Name]
	if !ok {
		p.report(Warning, "Unhandled element <%s>", el.Name)
		return svgscene.NoNode, nil
	}
	attrs := newAttrSet(el)
	id, err := fn(p, el, attrs)
	if err != nil {
		return svgscene.NoNode, fmt.Errorf("<%s>: %w", el.Name, err)
	}
	if id == svgscene.NoNode {
		return id, nil
	}
	if err := p.finishElement(id, el.Name, attrs); err != nil {
		return svgscene.NoNode, fmt.Errorf("<%s>: %w", el.Name, err)
	}
	return id, nil
}

// processChildren processes the child elements of `el`, attaching the visible
// nodes to `parent` (if it is not NoNode). A failing child is skipped,
// unless in strict mode.
func (p *processor) processChildren(parent svgscene.NodeID, el *svgxml.Element) error {
	for _, child := range el.ChildElements() {
		id, err := p.processElement(child)
		if err != nil {
			if p.mode == StrictErrorMode {
				return err
			}
			p.report(Warning, "Skipping element: %s", err)
			continue
		}
		if id == svgscene.NoNode || parent == svgscene.NoNode {
			continue
		}
		if p.scene.Kind(id) == svgscene.KindLinearGradient { // paint servers are not drawn
			continue
		}
		if err := p.scene.AppendChild(parent, id); err != nil {
			return err
		}
	}
	return nil
}

// finishElement applies text style, style, transform and id,
// and reports the attributes left unprocessed.
func (p *processor) finishElement(id svgscene.NodeID, tag string, attrs *attrSet) error {
	n := p.scene.Node(id)

	pres, err := p.processPresentation(attrs)
	if err != nil {
		return err
	}
	p.applyPresentation(n, pres)

	if v, ok := attrs.take("transform"); ok {
		m, err := svgparse.ParseTransform(v)
		if err != nil {
			return err
		}
		if n.Transform != nil {
			m = m.Mult(*n.Transform)
		}
		n.Transform = &m
	}

	if v, ok := attrs.take("id"); ok {
		n.ID = v
		if _, exists := p.ids[v]; exists {
			p.report(Warning, "Duplicate element id %q", v)
		} else {
			p.ids[v] = id
		}
	}

	if left := attrs.remaining(); len(left) != 0 {
		p.report(Warning, "Unhandled attributes on <%s>: %s", tag, strings.Join(left, ", "))
	}
	return nil
}
