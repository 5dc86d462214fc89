// Package svgparse implements the small grammars found in SVG attribute values:
// numbers and lengths, number lists, colors, transform lists, path data
// and inline style declarations.
package svgparse

import (
	"errors"
	"fmt"
)

// Error kinds, to be tested with errors.Is
var (
	// ErrCorruptXML is returned when a required structural node is missing,
	// such as the root element or a text value.
	ErrCorruptXML = errors.New("corrupt xml")
	// ErrInvalidSVG is returned when a value is present but semantically invalid.
	ErrInvalidSVG = errors.New("invalid svg")
	// ErrExpectedElementNotFound is returned when a required attribute or element is absent.
	ErrExpectedElementNotFound = errors.New("expected svg element not found")
	// ErrMissingRequiredProperty is returned when a required property could not be resolved.
	ErrMissingRequiredProperty = errors.New("missing required svg property")
	// ErrInvalidFunctionParameters signals a programming error in the caller.
	ErrInvalidFunctionParameters = errors.New("invalid function parameters")
)

// Error gives the context of a failure: the kind of error,
// the operation or attribute being parsed, and the offending value.
type Error struct {
	Kind  error  // one of the ErrXXX values
	Op    string // the attribute or operation
	Value string // the offending input, may be empty
	Err   error  // optional underlying cause
}

// NewError returns an *Error with no underlying cause.
func NewError(kind error, op, value string) *Error {
	return &Error{Kind: kind, Op: op, Value: value}
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" (%q)", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
