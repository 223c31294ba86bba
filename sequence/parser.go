// Package sequence streams the elements of a top-level JSON array one at a time.
//
// A Parser is positioned at the start of the input. An Iterator asserts that the
// top-level value is an array and then pulls exactly one element per call to Next,
// so no more than one decoded element exists at any time.
package sequence

import (
	"errors"
	"fmt"
)

// Kind is the kind of a JSON value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindArray
	KindObject
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return "invalid"
	}
}

// Parser is a pull-style JSON parser positioned at the start of a value.
type Parser interface {
	// Open consumes the first token of the top-level value and reports its kind.
	// For an array only the opening bracket is consumed.
	Open() (Kind, error)
	// More reports whether the open array has another element.
	More() (bool, error)
	// Decode decodes the next element of the open array into v.
	Decode(v any) error
	// Close consumes the closing bracket and verifies nothing but whitespace follows it.
	Close() error
}

var (
	// ErrUnexpectedEnd is returned when the input ends inside the top-level value.
	ErrUnexpectedEnd = errors.New("unexpected end of JSON input")
	// ErrTrailingData is returned when non-whitespace follows the top-level array.
	ErrTrailingData = errors.New("trailing data after top-level array")
)

// TypeMismatchError reports that the top-level value is not an array.
type TypeMismatchError struct {
	Found    Kind
	Expected string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("invalid type: %s, expected %s", e.Found, e.Expected)
}

// DecodeError reports that the element at Index could not be decoded.
type DecodeError struct {
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode element %d: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// HandlerError reports that the handler failed on the element at Index.
type HandlerError struct {
	Index int
	Err   error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handle element %d: %v", e.Index, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// SyntaxError is a structural error at a byte offset of the input.
type SyntaxError struct {
	Offset int64
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}
