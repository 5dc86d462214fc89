package svgprocess

import (
	"strings"

	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgxml"
)

// attrSet holds the attributes of an element not yet interpreted.
// Each accessor consumes the attribute it reads.
type attrSet struct {
	attrs []svgxml.Attr
}

func newAttrSet(el *svgxml.Element) *attrSet {
	out := &attrSet{attrs: make([]svgxml.Attr, 0, len(el.Attrs))}
	for _, a := range el.Attrs {
		// namespace declarations are not properties of the element
		if a.Name == "xmlns" || strings.HasPrefix(a.Name, "xmlns:") {
			continue
		}
		out.attrs = append(out.attrs, a)
	}
	return out
}

// take returns and consumes the attribute `name`.
func (as *attrSet) take(name string) (string, bool) {
	for i, a := range as.attrs {
		if a.Name == name {
			as.attrs = append(as.attrs[:i], as.attrs[i+1:]...)
			return a.Value, true
		}
	}
	return "", false
}

func (as *attrSet) has(name string) bool {
	for _, a := range as.attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// remaining returns the names of the attributes not consumed, in document order.
func (as *attrSet) remaining() []string {
	out := make([]string, len(as.attrs))
	for i, a := range as.attrs {
		out[i] = a.Name
	}
	return out
}

// float consumes an optional numeric attribute.
func (as *attrSet) float(name string) (float64, bool, error) {
	v, ok := as.take(name)
	if !ok {
		return 0, false, nil
	}
	f, err := svgparse.ParseNumber(v)
	if err != nil {
		return 0, true, withOp(err, name)
	}
	return f, true, nil
}

// floatOr consumes an optional numeric attribute, returning `def` if absent.
func (as *attrSet) floatOr(name string, def float64) (float64, error) {
	f, ok, err := as.float(name)
	if !ok {
		return def, nil
	}
	return f, err
}

// requiredFloat consumes a numeric attribute which must be present.
func (as *attrSet) requiredFloat(name string) (float64, error) {
	f, ok, err := as.float(name)
	if !ok {
		return 0, svgparse.NewError(svgparse.ErrExpectedElementNotFound, name, "")
	}
	return f, err
}

// required consumes a string attribute which must be present.
func (as *attrSet) required(name string) (string, error) {
	v, ok := as.take(name)
	if !ok {
		return "", svgparse.NewError(svgparse.ErrExpectedElementNotFound, name, "")
	}
	return v, nil
}

// withOp sets the attribute name as context of a parsing error.
func withOp(err error, op string) error {
	if e, ok := err.(*svgparse.Error); ok {
		cp := *e
		cp.Op = op
		return &cp
	}
	return err
}
