package ir

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedShape = errors.New("unsupported shape")
	ErrIncomparable     = errors.New("incomparable values")
	ErrInvalidSelector  = errors.New("invalid selector")
)

// UnsupportedShapeError reports an operation applied to a node of the wrong
// kind, or a merge between nodes whose kinds cannot be combined.
type UnsupportedShapeError struct {
	Op     string
	Target Type
	Source Type

	binary bool
}

// ShapeError returns an error for op applied to a node of type target.
func ShapeError(op string, target Type) *UnsupportedShapeError {
	return &UnsupportedShapeError{Op: op, Target: target}
}

// MergeShapeError returns an error for merging a source of type source into
// a target of type target.
func MergeShapeError(target, source Type) *UnsupportedShapeError {
	return &UnsupportedShapeError{Op: "merge", Target: target, Source: source, binary: true}
}

func (e *UnsupportedShapeError) Error() string {
	if e.binary {
		return fmt.Sprintf("%s: cannot %s %s into %s", ErrUnsupportedShape, e.Op, e.Source, e.Target)
	}
	return fmt.Sprintf("%s: %s on %s", ErrUnsupportedShape, e.Op, e.Target)
}

func (e *UnsupportedShapeError) Unwrap() error { return ErrUnsupportedShape }

// IncomparableError reports an ordering requested between values which
// have no mutual order.
type IncomparableError struct {
	Left, Right Type
	Reason      string
}

func (e *IncomparableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", ErrIncomparable, e.Reason)
	}
	return fmt.Sprintf("%s: %s and %s", ErrIncomparable, e.Left, e.Right)
}

func (e *IncomparableError) Unwrap() error { return ErrIncomparable }

// InvalidSelectorError reports a compareBy value which is neither null, a
// string, nor an array of strings.
type InvalidSelectorError struct {
	Got    Type
	Reason string
}

func (e *InvalidSelectorError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", ErrInvalidSelector, e.Reason)
	}
	return fmt.Sprintf("%s: expected null, string or array of strings, got %s", ErrInvalidSelector, e.Got)
}

func (e *InvalidSelectorError) Unwrap() error { return ErrInvalidSelector }
