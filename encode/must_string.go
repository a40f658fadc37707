package encode

import (
	"bytes"
	"fmt"

	"github.com/signadot/treemerge/ir"
)

// MustString encodes node as compact JSON, for use in messages. Encoding
// failures are rendered in place of the text.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		return fmt.Sprintf("<error encoding: %v>", err)
	}
	return buf.String()
}
