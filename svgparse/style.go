package svgparse

import "strings"

// Declaration is one "property: value" pair of an inline style.
type Declaration struct {
	Property, Value string
}

// ParseStyle splits an inline style attribute, such as
// "fill:red; stroke-width: 2". Empty declarations are ignored,
// but a declaration without a property or a value is an error.
func ParseStyle(s string) ([]Declaration, error) {
	var out []Declaration
	for _, chunk := range strings.Split(s, ";") {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		kv := strings.SplitN(chunk, ":", 2)
		if len(kv) != 2 {
			return nil, NewError(ErrInvalidSVG, "style", chunk)
		}
		k, v := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
		if k == "" || v == "" {
			return nil, NewError(ErrInvalidSVG, "style", chunk)
		}
		out = append(out, Declaration{Property: strings.ToLower(k), Value: v})
	}
	return out, nil
}
