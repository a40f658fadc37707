package treemerge

import (
	"github.com/signadot/treemerge/ir"
	"github.com/signadot/treemerge/selector"
)

// Equal reports whether left and right are equal under sel.
func Equal(left, right *ir.Node, sel selector.Selector) bool {
	return selector.Equal(left, right, sel)
}

// Compare orders left and right under sel. Operands without an order
// produce an error wrapping ir.ErrIncomparable.
func Compare(left, right *ir.Node, sel selector.Selector) (int, error) {
	return selector.Compare(left, right, sel)
}
