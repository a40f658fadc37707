// Package pointer provides typed JSON pointer paths and their resolution
// against ir.Node trees.
//
// A Pointer is a sequence of segments, each holding an unescaped reference
// token. Paths built by the merge engine use Field and Index segments
// directly, so keys containing '/' or '~' never need escaping on the way in.
//
// # Usage
//
//	// Parse an RFC 6901 pointer
//	p, err := pointer.Parse("/users/0/name")
//
//	// Extend a path
//	child := p.Parent().Child(pointer.Field("email"))
//
//	// Resolve against a tree; absence is not an error
//	node, ok := p.Resolve(root)
//
// # Related Packages
//
//   - github.com/signadot/treemerge/ir - tree representation
//   - github.com/signadot/treemerge/options - per-path merge options
package pointer
