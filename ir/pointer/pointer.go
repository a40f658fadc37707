package pointer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/treemerge/ir"
)

type EntryKind int

const (
	FieldEntry EntryKind = iota
	IndexEntry
)

func (k EntryKind) String() string {
	switch k {
	case FieldEntry:
		return "field"
	case IndexEntry:
		return "index"
	}
	return "<unknown entry kind>"
}

// Segment is one step of a Pointer. Key always holds the unescaped reference
// token; Kind records whether the token was built as, or parsed as, an
// array index.
type Segment struct {
	Key  string
	Kind EntryKind
}

// Field returns a segment addressing object property key.
func Field(key string) Segment {
	return Segment{Key: key, Kind: FieldEntry}
}

// Index returns a segment addressing array element i.
func Index(i int) Segment {
	return Segment{Key: strconv.Itoa(i), Kind: IndexEntry}
}

// Index returns the array index named by the segment, or -1 if the token is
// not a canonical non-negative decimal.
func (s Segment) Index() int {
	if !isIndexToken(s.Key) {
		return -1
	}
	i, err := strconv.Atoi(s.Key)
	if err != nil {
		return -1
	}
	return i
}

// SegmentString returns the escaped reference token of s.
func (s Segment) SegmentString() string {
	return escape(s.Key)
}

// Pointer is a sequence of segments from the root. The empty Pointer
// addresses the root itself.
type Pointer []Segment

// Root is the empty pointer.
func Root() Pointer { return nil }

// Child returns a new pointer extending p with seg. p is not modified.
func (p Pointer) Child(seg Segment) Pointer {
	res := make(Pointer, len(p)+1)
	copy(res, p)
	res[len(p)] = seg
	return res
}

// Parent returns p without its last segment, or nil for the root.
func (p Pointer) Parent() Pointer {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

func (p Pointer) IsRoot() bool { return len(p) == 0 }

// String returns the RFC 6901 form of p, "" for the root.
func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		b.WriteString(escape(seg.Key))
	}
	return b.String()
}

// Equal reports whether p and o address the same location.
func (p Pointer) Equal(o Pointer) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i].Key != o[i].Key {
			return false
		}
	}
	return true
}

// Parse parses an RFC 6901 JSON pointer. "" is the root. A path which does
// not start with '/' is read as if it did, so "id" and "/id" both address
// property id.
func Parse(s string) (Pointer, error) {
	if s == "" {
		return nil, nil
	}
	if s[0] == '/' {
		s = s[1:]
	}
	toks := strings.Split(s, "/")
	res := make(Pointer, 0, len(toks))
	for i, tok := range toks {
		key, err := unescape(tok)
		if err != nil {
			return nil, fmt.Errorf("pointer %q token %d: %w", s, i, err)
		}
		kind := FieldEntry
		if isIndexToken(key) {
			kind = IndexEntry
		}
		res = append(res, Segment{Key: key, Kind: kind})
	}
	return res, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Pointer {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Resolve returns the node p addresses within root. ok is false when a
// property is missing, an index is out of range or not a decimal, or a
// scalar would have to be traversed.
func (p Pointer) Resolve(root *ir.Node) (res *ir.Node, ok bool) {
	res = root
	if res == nil {
		return nil, false
	}
	for _, seg := range p {
		switch res.Type {
		case ir.ObjectType:
			i := res.Index(seg.Key)
			if i == -1 {
				return nil, false
			}
			res = res.Values[i]
		case ir.ArrayType:
			i := seg.Index()
			if i < 0 || i >= len(res.Values) {
				return nil, false
			}
			res = res.Values[i]
		default:
			return nil, false
		}
	}
	return res, true
}

// Resolve parses path and resolves it against root. An unparseable path is
// an error; a path which does not exist in root is not.
func Resolve(path string, root *ir.Node) (*ir.Node, bool, error) {
	p, err := Parse(path)
	if err != nil {
		return nil, false, err
	}
	res, ok := p.Resolve(root)
	return res, ok, nil
}

func isIndexToken(tok string) bool {
	if tok == "" {
		return false
	}
	if tok == "0" {
		return true
	}
	if tok[0] < '1' || tok[0] > '9' {
		return false
	}
	for i := 1; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}

func escape(tok string) string {
	if !strings.ContainsAny(tok, "~/") {
		return tok
	}
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}

func unescape(tok string) (string, error) {
	if !strings.Contains(tok, "~") {
		return tok, nil
	}
	var b strings.Builder
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		if i+1 == len(tok) {
			return "", fmt.Errorf("dangling ~ escape")
		}
		switch tok[i+1] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", fmt.Errorf("invalid escape ~%c", tok[i+1])
		}
		i++
	}
	return b.String(), nil
}
