package treemerge

import (
	"fmt"

	"github.com/signadot/treemerge/debug"
	"github.com/signadot/treemerge/ir"
	"github.com/signadot/treemerge/ir/pointer"
	"github.com/signadot/treemerge/options"
	"github.com/signadot/treemerge/selector"
)

// MergeInto merges source into target and returns target, which is
// modified in place. A nil or null source leaves target unchanged.
//
// Without fragments the merge is shallow: the properties of an object
// source overwrite those of an object target, and the elements of an array
// source (or a scalar source itself) are appended to an array target.
//
// With fragments the options at each visited path decide between
// recursive merge and replacement for objects, and between set union and
// sorted merge for arrays; see package options for the fragment forms.
//
// Unless dup is set at a path, values are stored in target without
// copying: afterwards target and source share those subtrees, and changes
// made through one are visible through the other. Merge with dup, or clone
// the source, when the trees must stay independent.
//
// On error target may already be partially modified. Callers needing all
// or nothing should merge into target.Clone() and keep the result only on
// success.
func MergeInto(target, source *ir.Node, fragments ...*ir.Node) (*ir.Node, error) {
	if len(fragments) == 0 {
		return mergeBare(target, source)
	}
	m, err := NewMerger(fragments...)
	if err != nil {
		return target, err
	}
	return m.Into(target, source)
}

// Merger merges with a fixed, collected set of option fragments. A Merger
// is not modified by merging and may be used from several goroutines on
// disjoint trees.
type Merger struct {
	opts *options.Tree
}

func NewMerger(fragments ...*ir.Node) (*Merger, error) {
	t, err := options.Collect(fragments...)
	if err != nil {
		return nil, err
	}
	return &Merger{opts: t}, nil
}

// NewMergerFromTree returns a Merger using an already collected tree.
func NewMergerFromTree(t *options.Tree) *Merger {
	return &Merger{opts: t}
}

// Options returns the collected options of m.
func (m *Merger) Options() *options.Tree {
	return m.opts
}

// Into merges source into target with m's options, as MergeInto does when
// given fragments.
func (m *Merger) Into(target, source *ir.Node) (*ir.Node, error) {
	if err := m.mergeAt(target, source, pointer.Root()); err != nil {
		return target, err
	}
	return target, nil
}

func mergeBare(target, source *ir.Node) (*ir.Node, error) {
	if isAbsent(source) {
		return target, nil
	}
	if target == nil {
		return nil, ir.MergeShapeError(ir.NullType, source.Type)
	}
	if debug.Merge() {
		debug.Logf("bare merge %s into %s\n", source.Type, target.Type)
	}
	switch target.Type {
	case ir.ObjectType:
		if source.Type != ir.ObjectType {
			return target, ir.MergeShapeError(target.Type, source.Type)
		}
		for i, field := range source.Fields {
			if err := target.Set(field, source.Values[i]); err != nil {
				return target, err
			}
		}
		return target, nil
	case ir.ArrayType:
		switch source.Type {
		case ir.ObjectType:
			return target, ir.MergeShapeError(target.Type, source.Type)
		case ir.ArrayType:
			return target, target.Append(source.Values...)
		default:
			return target, target.Append(source)
		}
	}
	return target, ir.MergeShapeError(target.Type, source.Type)
}

func (m *Merger) mergeAt(target, source *ir.Node, p pointer.Pointer) error {
	if isAbsent(source) {
		return nil
	}
	if target == nil {
		return atPath(p, ir.MergeShapeError(ir.NullType, source.Type))
	}
	opts := m.opts.Resolve(p)
	if debug.Merge() {
		debug.Logf("merge %s into %s at %q dup=%t merge=%t sort=%t compareBy=%s\n",
			source.Type, target.Type, p.String(), opts.Dup, opts.Merge, opts.Sort, opts.CompareBy)
	}
	switch target.Type {
	case ir.ObjectType:
		if source.Type != ir.ObjectType {
			return atPath(p, ir.MergeShapeError(target.Type, source.Type))
		}
		return m.mergeObject(target, source, opts, p)
	case ir.ArrayType:
		switch source.Type {
		case ir.ObjectType:
			return atPath(p, ir.MergeShapeError(target.Type, source.Type))
		case ir.ArrayType:
			if opts.Sort {
				return atPath(p, mergeSorted(target, source, opts))
			}
			return atPath(p, mergeUnion(target, source, opts))
		default:
			return atPath(p, target.Append(value(source, opts)))
		}
	}
	return atPath(p, ir.MergeShapeError(target.Type, source.Type))
}

func (m *Merger) mergeObject(target, source *ir.Node, opts options.Options, p pointer.Pointer) error {
	for i, field := range source.Fields {
		sv := source.Values[i]
		if opts.Merge {
			if local := target.Get(field); local != nil && local.Type.IsContainer() {
				if err := m.mergeAt(local, sv, p.Child(pointer.Field(field))); err != nil {
					return err
				}
				continue
			}
		}
		if err := target.Set(field, value(sv, opts)); err != nil {
			return atPath(p, err)
		}
	}
	return nil
}

// mergeUnion appends each source element which no target element equals
// under the compareBy selector. Appended elements take part in later
// comparisons.
func mergeUnion(target, source *ir.Node, opts options.Options) error {
	for _, sv := range snapshot(target, source) {
		present := false
		for _, tv := range target.Values {
			if selector.Equal(tv, sv, opts.CompareBy) {
				present = true
				break
			}
		}
		if present {
			continue
		}
		if err := target.Append(value(sv, opts)); err != nil {
			return err
		}
	}
	return nil
}

// mergeSorted merges source into a target ordered ascending by the
// compareBy comparator. Source elements comparing equal to a target element
// are dropped, keeping the target's. After an insertion the target cursor
// stays on the inserted element.
func mergeSorted(target, source *ir.Node, opts options.Options) error {
	src := snapshot(target, source)
	i, j := 0, 0
	for j < len(src) {
		sv := src[j]
		if i == len(target.Values) {
			if err := target.Append(value(sv, opts)); err != nil {
				return err
			}
			i++
			j++
			continue
		}
		c, err := selector.Compare(target.Values[i], sv, opts.CompareBy)
		if err != nil {
			return err
		}
		switch {
		case c < 0:
			i++
		case c > 0:
			if err := target.Insert(i, value(sv, opts)); err != nil {
				return err
			}
			j++
		default:
			j++
		}
	}
	return nil
}

// snapshot returns source's elements, copied when source is target so that
// growing target does not feed back into the iteration.
func snapshot(target, source *ir.Node) []*ir.Node {
	if target == source {
		res := make([]*ir.Node, len(source.Values))
		copy(res, source.Values)
		return res
	}
	return source.Values
}

// value is what gets stored in the target for v: a deep copy under dup,
// else v itself.
func value(v *ir.Node, opts options.Options) *ir.Node {
	if opts.Dup {
		return v.Clone()
	}
	return v
}

func isAbsent(n *ir.Node) bool {
	return n == nil || n.Type == ir.NullType
}

func atPath(p pointer.Pointer, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("at %q: %w", p.String(), err)
}
