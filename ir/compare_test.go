package ir

import (
	"errors"
	"testing"
)

func obj(kvs ...any) *Node {
	res := make([]KeyVal, 0, len(kvs)/2)
	for i := 0; i < len(kvs); i += 2 {
		res = append(res, KeyVal{Key: kvs[i].(string), Val: kvs[i+1].(*Node)})
	}
	return FromKeyVals(res)
}

func arr(vs ...*Node) *Node {
	return FromSlice(vs)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected bool
	}{
		{"nil nil", nil, nil, true},
		{"nil null", nil, Null(), false},
		{"null null", Null(), Null(), true},
		{"bool", FromBool(true), FromBool(true), true},
		{"bool differs", FromBool(true), FromBool(false), false},
		{"string", FromString("a"), FromString("a"), true},
		{"string differs", FromString("a"), FromString("b"), false},
		{"int", FromInt(3), FromInt(3), true},
		{"int float", FromInt(1), FromFloat(1.0), true},
		{"int text number", FromInt(12), FromNumber("12"), true},
		{"float differs", FromFloat(1.5), FromFloat(2.5), false},
		{"type differs", FromInt(1), FromString("1"), false},
		{"empty arrays", arr(), arr(), true},
		{"arrays in order", arr(FromInt(1), FromInt(2)), arr(FromInt(1), FromInt(2)), true},
		{"arrays out of order", arr(FromInt(1), FromInt(2)), arr(FromInt(2), FromInt(1)), false},
		{"arrays length", arr(FromInt(1)), arr(FromInt(1), FromInt(1)), false},
		{"objects key order", obj("a", FromInt(1), "b", FromInt(2)), obj("b", FromInt(2), "a", FromInt(1)), true},
		{"objects value differs", obj("a", FromInt(1)), obj("a", FromInt(2)), false},
		{"objects key differs", obj("a", FromInt(1)), obj("b", FromInt(1)), false},
		{"objects size differs", obj("a", FromInt(1)), obj("a", FromInt(1), "b", Null()), false},
		{"nested",
			obj("a", arr(obj("x", FromString("y")))),
			obj("a", arr(obj("x", FromString("y")))),
			true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
			if got := Equal(tt.b, tt.a); got != tt.expected {
				t.Errorf("Equal(b, a) = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestOrder(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected int
	}{
		{"Int < Int", FromInt(1), FromInt(2), -1},
		{"Int == Int", FromInt(7), FromInt(7), 0},
		{"Int < Float", FromInt(1), FromFloat(1.5), -1},
		{"Float == Int", FromFloat(3.0), FromInt(3), 0},
		{"Negative", FromInt(-4), FromFloat(-3.5), -1},
		{"Big text number", FromNumber("100000000000000000000000"), FromInt(1), 1},
		{"String < String", FromString("a"), FromString("b"), -1},
		{"String prefix", FromString("ab"), FromString("abc"), -1},
		{"String == String", FromString("x"), FromString("x"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Order(tt.a, tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.expected {
				t.Errorf("Order() = %v, want %v", got, tt.expected)
			}
			got, err = Order(tt.b, tt.a)
			if err != nil {
				t.Fatal(err)
			}
			if got != -tt.expected {
				t.Errorf("Order(b, a) = %v, want %v", got, -tt.expected)
			}
		})
	}
}

func TestOrderIncomparable(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
	}{
		{"string number", FromString("a"), FromInt(3)},
		{"bools", FromBool(false), FromBool(true)},
		{"nulls", Null(), Null()},
		{"arrays", arr(), arr()},
		{"objects", obj(), obj()},
		{"missing", nil, FromInt(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Order(tt.a, tt.b)
			if !errors.Is(err, ErrIncomparable) {
				t.Fatalf("expected ErrIncomparable, got %v", err)
			}
			var ie *IncomparableError
			if !errors.As(err, &ie) {
				t.Fatalf("expected *IncomparableError, got %T", err)
			}
		})
	}
}
