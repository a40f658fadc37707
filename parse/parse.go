// Package parse decodes JSON and YAML text into ir.Node trees, keeping the
// order of object keys.
package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/signadot/treemerge/debug"
	"github.com/signadot/treemerge/format"
	"github.com/signadot/treemerge/ir"

	"github.com/goccy/go-yaml"
)

// Parse decodes a single document. JSON is the default format.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{}
	for _, opt := range opts {
		opt(pOpts)
	}
	if debug.Parse() {
		debug.Logf("parse %d bytes as %s\n", len(d), pOpts.format)
	}
	switch pOpts.format {
	case format.YAMLFormat:
		return parseYAML(d)
	default:
		return parseJSON(d)
	}
}

// MustParse is like Parse but panics on error.
func MustParse(s string, opts ...ParseOption) *ir.Node {
	node, err := Parse([]byte(s), opts...)
	if err != nil {
		panic(err)
	}
	return node
}

func parseJSON(d []byte) (*ir.Node, error) {
	if len(bytes.TrimSpace(d)) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrParse, ErrEmpty)
	}
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	node, err := decodeJSON(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data at offset %d", ErrParse, dec.InputOffset())
	}
	return node, nil
}

func decodeJSON(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '{':
			res := &ir.Node{Type: ir.ObjectType, Fields: []string{}, Values: []*ir.Node{}}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", kt)
				}
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				if err := res.Set(key, v); err != nil {
					return nil, err
				}
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return res, nil
		case '[':
			res := &ir.Node{Type: ir.ArrayType, Values: []*ir.Node{}}
			for dec.More() {
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				res.Values = append(res.Values, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return res, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", x)
	case json.Number:
		return fromNumberText(string(x)), nil
	case string:
		return ir.FromString(x), nil
	case bool:
		return ir.FromBool(x), nil
	case nil:
		return ir.Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// fromNumberText keeps integers as Int64 and other numbers as Float64,
// falling back to the literal text when neither represents the value.
func fromNumberText(s string) *ir.Node {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return ir.FromInt(i)
		}
		return ir.FromNumber(s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return ir.FromNumber(s)
	}
	return ir.FromFloat(f)
}

func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	node, err := FromAny(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return node, nil
}

// FromAny converts a decoded Go value into a node. Maps decoded as
// yaml.MapSlice keep their key order; plain Go maps are sorted by key.
func FromAny(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case *ir.Node:
		return x, nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int8:
		return ir.FromInt(int64(x)), nil
	case int16:
		return ir.FromInt(int64(x)), nil
	case int32:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return ir.FromInt(int64(x)), nil
	case uint16:
		return ir.FromInt(int64(x)), nil
	case uint32:
		return ir.FromInt(int64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return ir.FromFloat(float64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	case json.Number:
		return fromNumberText(string(x)), nil
	case []any:
		res := &ir.Node{Type: ir.ArrayType, Values: make([]*ir.Node, 0, len(x))}
		for i, elt := range x {
			node, err := FromAny(elt)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			res.Values = append(res.Values, node)
		}
		return res, nil
	case yaml.MapSlice:
		res := &ir.Node{Type: ir.ObjectType, Fields: make([]string, 0, len(x)), Values: make([]*ir.Node, 0, len(x))}
		for _, item := range x {
			key := keyString(item.Key)
			node, err := FromAny(item.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			if err := res.Set(key, node); err != nil {
				return nil, err
			}
		}
		return res, nil
	case map[string]any:
		res := &ir.Node{Type: ir.ObjectType, Fields: make([]string, 0, len(x)), Values: make([]*ir.Node, 0, len(x))}
		for _, key := range slices.Sorted(maps.Keys(x)) {
			node, err := FromAny(x[key])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			if err := res.Set(key, node); err != nil {
				return nil, err
			}
		}
		return res, nil
	case map[any]any:
		ms := make(yaml.MapSlice, 0, len(x))
		for k, v := range x {
			ms = append(ms, yaml.MapItem{Key: k, Value: v})
		}
		slices.SortFunc(ms, func(a, b yaml.MapItem) int {
			return strings.Compare(keyString(a.Key), keyString(b.Key))
		})
		return FromAny(ms)
	}
	return nil, fmt.Errorf("unsupported value of type %T", v)
}

func fromUint(u uint64) *ir.Node {
	if u > math.MaxInt64 {
		return ir.FromNumber(strconv.FormatUint(u, 10))
	}
	return ir.FromInt(int64(u))
}

func keyString(k any) string {
	switch x := k.(type) {
	case string:
		return x
	case nil:
		return "null"
	}
	return fmt.Sprint(k)
}
