// Package options collects merge option fragments into a tree addressed by
// typed paths and resolves the options in effect at a path.
//
// Three fragment forms are accepted:
//
//   - a mirrored object, whose dup, merge, sort and compareBy keys apply at
//     the root and whose other keys hold the fragment for the property of
//     the same name:
//
//     {"merge": true, "items": {"sort": true, "compareBy": "/id"}}
//
//   - an object with a "for" key, a pointer or array of pointers, whose
//     flags apply at each listed path:
//
//     {"for": ["/items", "/more"], "sort": true}
//
//   - a string "dup", "merge" or "sort", setting that flag at the root.
//
// Options never inherit: a path not named by any fragment resolves to the
// zero Options.
package options

import (
	"errors"
	"fmt"
	"slices"

	"github.com/signadot/treemerge/debug"
	"github.com/signadot/treemerge/ir"
	"github.com/signadot/treemerge/ir/pointer"
	"github.com/signadot/treemerge/selector"
)

var ErrBadFragment = errors.New("bad option fragment")

const (
	DupKey       = "dup"
	MergeKey     = "merge"
	SortKey      = "sort"
	CompareByKey = "compareBy"
	ForKey       = "for"
)

// IsKey reports whether k is one of the option keys read at each path.
func IsKey(k string) bool {
	switch k {
	case DupKey, MergeKey, SortKey, CompareByKey:
		return true
	}
	return false
}

// Options is the normalized option set at one path.
type Options struct {
	Dup       bool
	Merge     bool
	Sort      bool
	CompareBy selector.Selector
}

// Tree holds the normalized options of every path named by a set of
// fragments.
type Tree struct {
	opts     Options
	set      setMask
	children map[string]*Tree
	order    []string
}

type setMask uint8

const (
	dupSet setMask = 1 << iota
	mergeSet
	sortSet
	compareBySet
)

// Collect combines fragments, applied in order. A key given in a later
// fragment overrides the same key at the same path from an earlier one.
func Collect(fragments ...*ir.Node) (*Tree, error) {
	t := &Tree{}
	for i, frag := range fragments {
		if err := t.add(frag); err != nil {
			return nil, fmt.Errorf("fragment %d: %w", i, err)
		}
	}
	if debug.Options() {
		debug.Logf("collected %d fragments: %v\n", len(fragments), t.Node())
	}
	return t, nil
}

// MustCollect is like Collect but panics on error.
func MustCollect(fragments ...*ir.Node) *Tree {
	t, err := Collect(fragments...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tree) add(frag *ir.Node) error {
	if frag == nil {
		return nil
	}
	switch frag.Type {
	case ir.NullType:
		return nil
	case ir.StringType:
		return t.addFlag(frag.String)
	case ir.ObjectType:
		if frag.Has(ForKey) {
			return t.addFor(frag)
		}
		return t.addMirrored(frag, pointer.Root())
	}
	return fmt.Errorf("%w: expected object or string, got %s", ErrBadFragment, frag.Type)
}

func (t *Tree) addFlag(flag string) error {
	switch flag {
	case DupKey:
		t.opts.Dup, t.set = true, t.set|dupSet
	case MergeKey:
		t.opts.Merge, t.set = true, t.set|mergeSet
	case SortKey:
		t.opts.Sort, t.set = true, t.set|sortSet
	default:
		return fmt.Errorf("%w: unknown flag %q", ErrBadFragment, flag)
	}
	return nil
}

func (t *Tree) addFor(frag *ir.Node) error {
	forNode := frag.Get(ForKey)
	var paths []string
	switch forNode.Type {
	case ir.StringType:
		paths = []string{forNode.String}
	case ir.ArrayType:
		for i, v := range forNode.Values {
			if v.Type != ir.StringType {
				return fmt.Errorf("%w: %s[%d] is %s, not String", ErrBadFragment, ForKey, i, v.Type)
			}
			paths = append(paths, v.String)
		}
	default:
		return fmt.Errorf("%w: %s must be a pointer or array of pointers, got %s", ErrBadFragment, ForKey, forNode.Type)
	}
	for _, path := range paths {
		p, err := pointer.Parse(path)
		if err != nil {
			return fmt.Errorf("%w: %s %q: %w", ErrBadFragment, ForKey, path, err)
		}
		if err := t.at(p).setFrom(frag, p); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) addMirrored(frag *ir.Node, p pointer.Pointer) error {
	if err := t.setFrom(frag, p); err != nil {
		return err
	}
	for i, field := range frag.Fields {
		if IsKey(field) {
			continue
		}
		sub := frag.Values[i]
		if sub.Type != ir.ObjectType {
			return fmt.Errorf("%w: at %q: expected object, got %s", ErrBadFragment, p.Child(pointer.Field(field)).String(), sub.Type)
		}
		if err := t.child(field).addMirrored(sub, p.Child(pointer.Field(field))); err != nil {
			return err
		}
	}
	return nil
}

// setFrom reads the option keys present in frag into t.
func (t *Tree) setFrom(frag *ir.Node, p pointer.Pointer) error {
	for _, key := range []string{DupKey, MergeKey, SortKey} {
		v := frag.Get(key)
		if v == nil {
			continue
		}
		if v.Type != ir.BoolType {
			return fmt.Errorf("%w: at %q: %s must be Bool, got %s", ErrBadFragment, p.String(), key, v.Type)
		}
		switch key {
		case DupKey:
			t.opts.Dup, t.set = v.Bool, t.set|dupSet
		case MergeKey:
			t.opts.Merge, t.set = v.Bool, t.set|mergeSet
		case SortKey:
			t.opts.Sort, t.set = v.Bool, t.set|sortSet
		}
	}
	if v := frag.Get(CompareByKey); v != nil {
		sel, err := selector.FromNode(v)
		if err != nil {
			return fmt.Errorf("at %q: %w", p.String(), err)
		}
		t.opts.CompareBy, t.set = sel, t.set|compareBySet
	}
	return nil
}

func (t *Tree) child(key string) *Tree {
	if t.children == nil {
		t.children = map[string]*Tree{}
	}
	c := t.children[key]
	if c == nil {
		c = &Tree{}
		t.children[key] = c
		t.order = append(t.order, key)
	}
	return c
}

func (t *Tree) at(p pointer.Pointer) *Tree {
	res := t
	for _, seg := range p {
		res = res.child(seg.Key)
	}
	return res
}

// Resolve returns the options at p, or the zero Options if no fragment
// names p. Only the node at p is consulted, never its ancestors.
func (t *Tree) Resolve(p pointer.Pointer) Options {
	res := t
	for _, seg := range p {
		if res == nil || res.children == nil {
			return Options{}
		}
		res = res.children[seg.Key]
	}
	if res == nil {
		return Options{}
	}
	return res.opts
}

// Node renders the normalized tree as a mirrored fragment. Only keys some
// fragment set are included.
func (t *Tree) Node() *ir.Node {
	res := ir.FromKeyVals(nil)
	if t.set&dupSet != 0 {
		res.Set(DupKey, ir.FromBool(t.opts.Dup))
	}
	if t.set&mergeSet != 0 {
		res.Set(MergeKey, ir.FromBool(t.opts.Merge))
	}
	if t.set&sortSet != 0 {
		res.Set(SortKey, ir.FromBool(t.opts.Sort))
	}
	if t.set&compareBySet != 0 {
		res.Set(CompareByKey, t.opts.CompareBy.Node())
	}
	for _, key := range t.order {
		res.Set(key, t.children[key].Node())
	}
	return res
}

// Paths lists the pointers of every path holding options, in the order the
// paths were first named.
func (t *Tree) Paths() []pointer.Pointer {
	var res []pointer.Pointer
	t.paths(pointer.Root(), &res)
	return res
}

func (t *Tree) paths(p pointer.Pointer, dst *[]pointer.Pointer) {
	if t.set != 0 {
		*dst = append(*dst, slices.Clone(p))
	}
	for _, key := range t.order {
		t.children[key].paths(p.Child(pointer.Field(key)), dst)
	}
}
