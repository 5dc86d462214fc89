// Package svgxml decodes an XML stream into a tree of
// elements and character data, the input of the SVG processor.
package svgxml

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/benoitkugler/svgscene/svgparse"
	"golang.org/x/net/html/charset"
)

const (
	xlinkNamespace = "http://www.w3.org/1999/xlink"
	xmlNamespace   = "http://www.w3.org/XML/1998/namespace"
)

// Node is either an *Element or a CharData
type Node interface {
	isNode()
}

// Attr is an attribute, whose name keeps the conventional
// prefix for the xlink and xml namespaces ("xlink:href").
type Attr struct {
	Name, Value string
}

// Element is an XML element, with its attributes
// in document order.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []Node
}

// CharData is a text node.
type CharData string

func (*Element) isNode() {}
func (CharData) isNode() {}

// Attr returns the value of the attribute `name`.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Text returns the concatenation of the direct character data children.
func (e *Element) Text() string {
	var b strings.Builder
	for _, child := range e.Children {
		if cd, ok := child.(CharData); ok {
			b.WriteString(string(cd))
		}
	}
	return b.String()
}

// ChildElements returns the element children, skipping text nodes.
func (e *Element) ChildElements() []*Element {
	var out []*Element
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

func attrName(name xml.Name) string {
	switch name.Space {
	case "":
		return name.Local
	case xlinkNamespace:
		return "xlink:" + name.Local
	case xmlNamespace:
		return "xml:" + name.Local
	case "xmlns":
		return "xmlns:" + name.Local
	default:
		return name.Local
	}
}

// Decode reads the XML document from `r` and returns its root element.
// Comments, processing instructions and directives are dropped,
// as well as character data made only of white spaces.
func Decode(r io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	var (
		root  *Element
		stack []*Element
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, &svgparse.Error{Kind: svgparse.ErrCorruptXML, Op: "xml", Err: err}
		}
		switch se := t.(type) {
		case xml.StartElement:
			el := &Element{Name: se.Name.Local, Attrs: make([]Attr, len(se.Attr))}
			for i, attr := range se.Attr {
				el.Attrs[i] = Attr{Name: attrName(attr.Name), Value: attr.Value}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, svgparse.NewError(svgparse.ErrCorruptXML, "xml", "multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 || strings.TrimSpace(string(se)) == "" {
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, CharData(se))
		}
	}
	if root == nil {
		return nil, svgparse.NewError(svgparse.ErrCorruptXML, "xml", "no root element")
	}
	return root, nil
}
