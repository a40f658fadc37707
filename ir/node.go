package ir

import (
	"maps"
	"slices"
)

// Node is a JSON-like value. For ObjectType nodes Fields[i] is the key of
// Values[i]; for ArrayType nodes Values holds the elements.
//
// A Node does not know its parent. Merges which alias a subtree make the
// same *Node reachable from more than one container.
type Node struct {
	Type   Type
	Fields []string
	Values []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

// FromNumber returns a number node holding the literal text v, for numbers
// which fit neither an int64 nor a float64.
func FromNumber(v string) *Node {
	return &Node{
		Type:   NumberType,
		Number: v,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	copy(res.Values, ySlice)
	return res
}

// FromMap returns an object with the keys of yMap in sorted order.
func FromMap(yMap map[string]*Node) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]string, len(yMap))
	res.Values = make([]*Node, len(yMap))
	keys := slices.Sorted(maps.Keys(yMap))
	for i, key := range keys {
		res.Fields[i] = key
		res.Values[i] = yMap[key]
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals returns an object with the given keys in order. A repeated key
// keeps its first position and its last value.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		Type:   ObjectType,
		Fields: make([]string, 0, len(kvs)),
		Values: make([]*Node, 0, len(kvs)),
	}
	for _, kv := range kvs {
		res.set(kv.Key, kv.Val)
	}
	return res
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i, field := range node.Fields {
		res[field] = node.Values[i]
	}
	return res
}

// Len returns the number of elements of an array or properties of an
// object, and 0 for scalars.
func (y *Node) Len() int {
	if y.Type.IsLeaf() {
		return 0
	}
	return len(y.Values)
}

// Index returns the position of key in an object, or -1.
func (y *Node) Index(key string) int {
	if y.Type != ObjectType {
		return -1
	}
	return slices.Index(y.Fields, key)
}

func (y *Node) Has(key string) bool {
	return y.Index(key) != -1
}

// Get returns the value of property key, or nil if y is not an object or
// has no such property.
func (y *Node) Get(key string) *Node {
	i := y.Index(key)
	if i == -1 {
		return nil
	}
	return y.Values[i]
}

func Get(y *Node, field string) *Node {
	return y.Get(field)
}

// Set replaces the value of property key, or appends the property if it is
// not present. v is stored as is, not copied.
func (y *Node) Set(key string, v *Node) error {
	if y.Type != ObjectType {
		return ShapeError("set property", y.Type)
	}
	y.set(key, v)
	return nil
}

func (y *Node) set(key string, v *Node) {
	if v == nil {
		v = Null()
	}
	if i := slices.Index(y.Fields, key); i != -1 {
		y.Values[i] = v
		return
	}
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, v)
}

// Delete removes property key, reporting whether it was present.
func (y *Node) Delete(key string) bool {
	i := y.Index(key)
	if i == -1 {
		return false
	}
	y.Fields = slices.Delete(y.Fields, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	return true
}

// Append adds vs at the end of an array.
func (y *Node) Append(vs ...*Node) error {
	if y.Type != ArrayType {
		return ShapeError("append", y.Type)
	}
	for _, v := range vs {
		if v == nil {
			v = Null()
		}
		y.Values = append(y.Values, v)
	}
	return nil
}

// Insert places v at position i of an array, shifting later elements up.
func (y *Node) Insert(i int, v *Node) error {
	if y.Type != ArrayType {
		return ShapeError("insert", y.Type)
	}
	if i < 0 || i > len(y.Values) {
		return ShapeError("insert out of range", y.Type)
	}
	if v == nil {
		v = Null()
	}
	y.Values = slices.Insert(y.Values, i, v)
	return nil
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

// CloneTo deep copies y into dst. The result shares no node with y.
func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Fields = nil
	dst.Values = nil
	if y.Fields != nil {
		dst.Fields = make([]string, len(y.Fields))
		copy(dst.Fields, y.Fields)
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.CloneTo(&Node{})
		}
	}
	dst.String = y.String
	dst.Number = y.Number
	dst.Float64 = nil
	dst.Int64 = nil
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

// Shares reports whether y and o have a node in common by identity, which
// is the case after a merge that aliased a subtree of one into the other.
func (y *Node) Shares(o *Node) bool {
	seen := map[*Node]struct{}{}
	_ = y.Visit(func(n *Node, isPost bool) (bool, error) {
		if !isPost {
			seen[n] = struct{}{}
		}
		return true, nil
	})
	found := false
	_ = o.Visit(func(n *Node, isPost bool) (bool, error) {
		if isPost || found {
			return false, nil
		}
		if _, ok := seen[n]; ok {
			found = true
			return false, nil
		}
		return true, nil
	})
	return found
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
