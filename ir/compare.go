package ir

import (
	"cmp"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Equal reports whether a and b are structurally equal: same type, same
// scalar value, arrays with pairwise equal elements in order, and objects
// with the same keys mapping to equal values regardless of key order.
//
// Numbers are equal when their numeric values are, so 1 and 1.0 are equal.
// Two nil nodes are equal; a nil node is equal to nothing else.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.String == b.String
	case NumberType:
		c, ok := compareNumbers(a, b)
		return ok && c == 0
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i, field := range a.Fields {
			j := b.Index(field)
			if j == -1 {
				return false
			}
			if !Equal(a.Values[i], b.Values[j]) {
				return false
			}
		}
		return true
	}
	return false
}

// Order compares two ordered scalars, returning -1, 0 or +1. Numbers are
// ordered numerically and strings lexically by bytes. Any other pairing,
// including a nil node, gives an *IncomparableError.
func Order(a, b *Node) (int, error) {
	if a == nil || b == nil {
		return 0, &IncomparableError{Reason: "missing value"}
	}
	switch {
	case a.Type == NumberType && b.Type == NumberType:
		c, ok := compareNumbers(a, b)
		if !ok {
			return 0, &IncomparableError{
				Left:   a.Type,
				Right:  b.Type,
				Reason: fmt.Sprintf("unordered numbers %s and %s", numberText(a), numberText(b)),
			}
		}
		return c, nil
	case a.Type == StringType && b.Type == StringType:
		return strings.Compare(a.String, b.String), nil
	}
	return 0, &IncomparableError{Left: a.Type, Right: b.Type}
}

// compareNumbers orders two number nodes by value. ok is false when either
// is not a parseable number or is NaN.
func compareNumbers(a, b *Node) (c int, ok bool) {
	if a.Int64 != nil && b.Int64 != nil {
		return cmp.Compare(*a.Int64, *b.Int64), true
	}
	fa, ok := bigFloat(a)
	if !ok {
		return 0, false
	}
	fb, ok := bigFloat(b)
	if !ok {
		return 0, false
	}
	return fa.Cmp(fb), true
}

func bigFloat(n *Node) (*big.Float, bool) {
	switch {
	case n.Int64 != nil:
		return new(big.Float).SetInt64(*n.Int64), true
	case n.Float64 != nil:
		if math.IsNaN(*n.Float64) {
			return nil, false
		}
		return new(big.Float).SetFloat64(*n.Float64), true
	case n.Number != "":
		f, _, err := big.ParseFloat(n.Number, 10, 256, big.ToNearestEven)
		if err != nil {
			return nil, false
		}
		return f, true
	}
	return nil, false
}

func numberText(n *Node) string {
	switch {
	case n.Int64 != nil:
		return fmt.Sprint(*n.Int64)
	case n.Float64 != nil:
		return fmt.Sprint(*n.Float64)
	}
	return n.Number
}
