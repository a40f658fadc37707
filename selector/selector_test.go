package selector

import (
	"errors"
	"testing"

	"github.com/signadot/treemerge/ir"
	"github.com/signadot/treemerge/parse"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name        string
		left, right string
		sel         Selector
		expected    bool
	}{
		{"none equal", `{"id":1,"v":5}`, `{"v":5,"id":1}`, None(), true},
		{"none unequal", `{"id":1,"v":5}`, `{"id":1,"v":9}`, None(), false},
		{"single", `{"id":1,"v":5}`, `{"id":1,"v":9}`, MustSingle("/id"), true},
		{"single unequal", `{"id":1}`, `{"id":2}`, MustSingle("/id"), false},
		{"single nested", `{"k":{"a":[1,2]}}`, `{"k":{"a":[1,2]},"x":0}`, MustSingle("/k/a"), true},
		{"single absent both", `{"x":1}`, `{"y":2}`, MustSingle("/id"), true},
		{"single absent one", `{"id":null}`, `{"y":2}`, MustSingle("/id"), false},
		{"single null both", `{"id":null}`, `{"id":null}`, MustSingle("/id"), true},
		{"single on scalars", `1`, `2`, MustSingle("/id"), true},
		{"list all match", `{"a":1,"b":2,"c":3}`, `{"a":1,"b":2,"c":4}`, MustList("/a", "/b"), true},
		{"list second differs", `{"a":1,"b":2}`, `{"a":1,"b":3}`, MustList("/a", "/b"), false},
		{"list empty", `{"a":1}`, `{"a":2}`, MustList(), true},
		{"root pointer", `[1]`, `[1]`, MustSingle(""), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, r := parse.MustParse(tt.left), parse.MustParse(tt.right)
			if got := Equal(l, r, tt.sel); got != tt.expected {
				t.Errorf("Equal(%s, %s, %s) = %v, want %v", tt.left, tt.right, tt.sel, got, tt.expected)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name        string
		left, right string
		sel         Selector
		expected    int
	}{
		{"numbers", `1`, `3`, None(), -1},
		{"numbers equal", `3`, `3.0`, None(), 0},
		{"strings", `"b"`, `"a"`, None(), 1},
		{"single", `{"id":2,"v":"z"}`, `{"id":10,"v":"a"}`, MustSingle("/id"), -1},
		{"list tie break", `{"a":1,"b":"y"}`, `{"a":1,"b":"x"}`, MustList("/a", "/b"), 1},
		{"list first decides", `{"a":0,"b":"y"}`, `{"a":1,"b":"x"}`, MustList("/a", "/b"), -1},
		{"list all tie", `{"a":1,"b":"x"}`, `{"b":"x","a":1}`, MustList("/a", "/b"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, r := parse.MustParse(tt.left), parse.MustParse(tt.right)
			got, err := Compare(l, r, tt.sel)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.expected {
				t.Errorf("Compare(%s, %s, %s) = %d, want %d", tt.left, tt.right, tt.sel, got, tt.expected)
			}
		})
	}
}

func TestCompareIncomparable(t *testing.T) {
	tests := []struct {
		name        string
		left, right string
		sel         Selector
	}{
		{"string number", `"a"`, `3`, None()},
		{"objects", `{}`, `{}`, None()},
		{"bools", `true`, `false`, None()},
		{"mismatched field kinds", `{"id":1}`, `{"id":"1"}`, MustSingle("/id")},
		{"missing field", `{"id":1}`, `{}`, MustSingle("/id")},
		{"second path incomparable", `{"a":1,"b":[]}`, `{"a":1,"b":[]}`, MustList("/a", "/b")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, r := parse.MustParse(tt.left), parse.MustParse(tt.right)
			_, err := Compare(l, r, tt.sel)
			if !errors.Is(err, ir.ErrIncomparable) {
				t.Fatalf("expected ErrIncomparable, got %v", err)
			}
		})
	}
}

func TestFromNode(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		str  string
	}{
		{`null`, NoneKind, "null"},
		{`"/id"`, SingleKind, `"/id"`},
		{`["/a","/b"]`, ListKind, `["/a", "/b"]`},
		{`[]`, ListKind, `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sel, err := FromNode(parse.MustParse(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if sel.Kind() != tt.kind {
				t.Errorf("kind %d, want %d", sel.Kind(), tt.kind)
			}
			if sel.String() != tt.str {
				t.Errorf("String() = %s, want %s", sel.String(), tt.str)
			}
			if !ir.Equal(sel.Node(), parse.MustParse(tt.in)) {
				t.Errorf("Node() does not round trip %s", tt.in)
			}
		})
	}
	if sel, err := FromNode(nil); err != nil || sel.Kind() != NoneKind {
		t.Errorf("nil should give None, got %v %v", sel, err)
	}
}

func TestFromNodeInvalid(t *testing.T) {
	for _, in := range []string{`1`, `true`, `{}`, `["/a", 1]`, `[["/a"]]`, `"/a~9"`} {
		t.Run(in, func(t *testing.T) {
			_, err := FromNode(parse.MustParse(in))
			var se *ir.InvalidSelectorError
			if !errors.As(err, &se) {
				t.Fatalf("expected *ir.InvalidSelectorError, got %v", err)
			}
		})
	}
}
