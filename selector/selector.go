// Package selector decides sameness and order of two values by a set of
// pointer-addressed fields, the "compareBy" of merge options.
package selector

import (
	"fmt"
	"strings"

	"github.com/signadot/treemerge/debug"
	"github.com/signadot/treemerge/ir"
	"github.com/signadot/treemerge/ir/pointer"
)

type Kind int

const (
	// NoneKind compares whole values.
	NoneKind Kind = iota
	// SingleKind compares the values at one path.
	SingleKind
	// ListKind compares the values at each of several paths in turn.
	ListKind
)

// Selector is a parsed compareBy. The zero Selector compares whole values.
type Selector struct {
	kind  Kind
	paths []pointer.Pointer
	raw   []string
}

// None returns the selector comparing whole values.
func None() Selector { return Selector{} }

// Single returns a selector comparing the values found at path.
func Single(path string) (Selector, error) {
	p, err := pointer.Parse(path)
	if err != nil {
		return Selector{}, &ir.InvalidSelectorError{Got: ir.StringType, Reason: err.Error()}
	}
	return Selector{kind: SingleKind, paths: []pointer.Pointer{p}, raw: []string{path}}, nil
}

// List returns a selector comparing the values found at each path, in
// order.
func List(paths ...string) (Selector, error) {
	res := Selector{
		kind:  ListKind,
		paths: make([]pointer.Pointer, len(paths)),
		raw:   make([]string, len(paths)),
	}
	for i, path := range paths {
		p, err := pointer.Parse(path)
		if err != nil {
			return Selector{}, &ir.InvalidSelectorError{Got: ir.ArrayType, Reason: fmt.Sprintf("element %d: %v", i, err)}
		}
		res.paths[i] = p
		res.raw[i] = path
	}
	return res, nil
}

// MustList is like List but panics on error.
func MustList(paths ...string) Selector {
	s, err := List(paths...)
	if err != nil {
		panic(err)
	}
	return s
}

// MustSingle is like Single but panics on error.
func MustSingle(path string) Selector {
	s, err := Single(path)
	if err != nil {
		panic(err)
	}
	return s
}

// FromNode reads a compareBy value: nil or null, a string, or an array of
// strings. Anything else gives an *ir.InvalidSelectorError.
func FromNode(n *ir.Node) (Selector, error) {
	if n == nil {
		return None(), nil
	}
	switch n.Type {
	case ir.NullType:
		return None(), nil
	case ir.StringType:
		return Single(n.String)
	case ir.ArrayType:
		paths := make([]string, len(n.Values))
		for i, v := range n.Values {
			if v.Type != ir.StringType {
				return Selector{}, &ir.InvalidSelectorError{
					Got:    ir.ArrayType,
					Reason: fmt.Sprintf("element %d is %s, not String", i, v.Type),
				}
			}
			paths[i] = v.String
		}
		return List(paths...)
	}
	return Selector{}, &ir.InvalidSelectorError{Got: n.Type}
}

func (s Selector) Kind() Kind { return s.kind }

// Paths returns the selector's paths; nil for None.
func (s Selector) Paths() []pointer.Pointer { return s.paths }

// Node returns the compareBy representation of s.
func (s Selector) Node() *ir.Node {
	switch s.kind {
	case SingleKind:
		return ir.FromString(s.raw[0])
	case ListKind:
		vs := make([]*ir.Node, len(s.raw))
		for i, r := range s.raw {
			vs[i] = ir.FromString(r)
		}
		return ir.FromSlice(vs)
	}
	return ir.Null()
}

func (s Selector) String() string {
	switch s.kind {
	case SingleKind:
		return fmt.Sprintf("%q", s.raw[0])
	case ListKind:
		qs := make([]string, len(s.raw))
		for i, r := range s.raw {
			qs[i] = fmt.Sprintf("%q", r)
		}
		return "[" + strings.Join(qs, ", ") + "]"
	}
	return "null"
}

// Equal reports whether left and right are the same under s. For a path
// selector, a path absent from both sides counts as equal and a path absent
// from only one side as unequal.
func (s Selector) Equal(left, right *ir.Node) bool {
	if s.kind == NoneKind {
		return ir.Equal(left, right)
	}
	for _, p := range s.paths {
		l, lok := p.Resolve(left)
		r, rok := p.Resolve(right)
		if !lok || !rok {
			if lok != rok {
				return false
			}
			continue
		}
		if !ir.Equal(l, r) {
			return false
		}
	}
	return true
}

// Compare orders left and right under s, returning -1, 0 or +1. Every
// compared pair must be mutually ordered scalars, else the error is an
// *ir.IncomparableError. A list selector returns the first non-zero
// comparison.
func (s Selector) Compare(left, right *ir.Node) (int, error) {
	if s.kind == NoneKind {
		return order(left, right, nil)
	}
	for _, p := range s.paths {
		l, lok := p.Resolve(left)
		r, rok := p.Resolve(right)
		if !lok || !rok {
			return 0, &ir.IncomparableError{Reason: fmt.Sprintf("path %q is missing", p.String())}
		}
		c, err := order(l, r, p)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

func order(l, r *ir.Node, p pointer.Pointer) (int, error) {
	c, err := ir.Order(l, r)
	if debug.Compare() {
		debug.Logf("compare at %q: %d (err %v)\n", p.String(), c, err)
	}
	if err != nil && p != nil {
		return 0, fmt.Errorf("at path %q: %w", p.String(), err)
	}
	return c, err
}

// Equal reports whether left and right are the same under sel.
func Equal(left, right *ir.Node, sel Selector) bool {
	return sel.Equal(left, right)
}

// Compare orders left and right under sel.
func Compare(left, right *ir.Node, sel Selector) (int, error) {
	return sel.Compare(left, right)
}
