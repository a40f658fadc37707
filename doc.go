// Package treemerge merges JSON-like trees under the control of option
// fragments addressed by path.
//
// A merge applies a source tree onto a target tree, modifying the target.
// At each visited path the options in effect decide how the two meet:
//
//   - merge: overlapping object properties holding containers are merged
//     recursively instead of being replaced
//   - sort: arrays are combined by a sorted two-cursor merge instead of a
//     set union
//   - compareBy: the paths within elements used to decide array element
//     equality and order
//   - dup: values taken from the source are deep copies instead of shared
//
// Options are given as fragments, described in package options. Options at
// a path apply to that path only; nothing is inherited by descendants.
//
// Values merged without dup are shared between the source and the target.
// Mutations through either tree are then visible through the other, and
// concurrent use of the two trees needs the same synchronization as
// concurrent use of one.
//
// Example:
//
//	target := parse.MustParse(`{"items":[{"id":1},{"id":2}]}`)
//	source := parse.MustParse(`{"items":[{"id":2},{"id":3}]}`)
//	frag := parse.MustParse(`{"merge":true,"items":{"compareBy":"/id"}}`)
//	treemerge.MergeInto(target, source, frag)
//	// target: {"items":[{"id":1},{"id":2},{"id":3}]}
package treemerge
