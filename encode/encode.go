// Package encode writes ir.Node trees as JSON or YAML text, keeping the
// order of object keys.
package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/treemerge/format"
	"github.com/signadot/treemerge/ir"

	"github.com/goccy/go-yaml"
)

type EncState struct {
	format format.Format
	indent string
	Color  func(ir.Type, ColorAttr, string) string

	depth int
}

// Encode writes node to w. JSON is the default format.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil {
		node = ir.Null()
	}
	switch es.format {
	case format.YAMLFormat:
		return encodeYAML(node, w)
	}
	buf := bytes.NewBuffer(nil)
	if err := es.encodeJSON(node, buf); err != nil {
		return err
	}
	if es.indent != "" {
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func (es *EncState) newline(buf *bytes.Buffer) {
	if es.indent == "" {
		return
	}
	buf.WriteByte('\n')
	for range es.depth {
		buf.WriteString(es.indent)
	}
}

func (es *EncState) encodeJSON(node *ir.Node, buf *bytes.Buffer) error {
	switch node.Type {
	case ir.NullType:
		buf.WriteString(es.color(ir.NullType, ValueColor, "null"))
	case ir.BoolType:
		buf.WriteString(es.color(ir.BoolType, ValueColor, strconv.FormatBool(node.Bool)))
	case ir.NumberType:
		s, err := NumberString(node)
		if err != nil {
			return err
		}
		buf.WriteString(es.color(ir.NumberType, ValueColor, s))
	case ir.StringType:
		buf.WriteString(es.color(ir.StringType, ValueColor, quote(node.String)))
	case ir.ArrayType:
		buf.WriteString(es.color(ir.ArrayType, SepColor, "["))
		if len(node.Values) == 0 {
			buf.WriteString(es.color(ir.ArrayType, SepColor, "]"))
			return nil
		}
		es.depth++
		for i, v := range node.Values {
			if i > 0 {
				buf.WriteString(es.color(ir.ArrayType, SepColor, ","))
			}
			es.newline(buf)
			if err := es.encodeJSON(v, buf); err != nil {
				return err
			}
		}
		es.depth--
		es.newline(buf)
		buf.WriteString(es.color(ir.ArrayType, SepColor, "]"))
	case ir.ObjectType:
		if len(node.Fields) != len(node.Values) {
			return fmt.Errorf("malformed object with %d fields and %d values", len(node.Fields), len(node.Values))
		}
		buf.WriteString(es.color(ir.ObjectType, SepColor, "{"))
		if len(node.Fields) == 0 {
			buf.WriteString(es.color(ir.ObjectType, SepColor, "}"))
			return nil
		}
		es.depth++
		for i, field := range node.Fields {
			if i > 0 {
				buf.WriteString(es.color(ir.ObjectType, SepColor, ","))
			}
			es.newline(buf)
			buf.WriteString(es.color(ir.ObjectType, FieldColor, quote(field)))
			buf.WriteString(es.color(ir.ObjectType, SepColor, ":"))
			if es.indent != "" {
				buf.WriteByte(' ')
			}
			if err := es.encodeJSON(node.Values[i], buf); err != nil {
				return err
			}
		}
		es.depth--
		es.newline(buf)
		buf.WriteString(es.color(ir.ObjectType, SepColor, "}"))
	default:
		return fmt.Errorf("cannot encode node of type %s", node.Type)
	}
	return nil
}

// NumberString returns the JSON text of a number node.
func NumberString(node *ir.Node) (string, error) {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10), nil
	case node.Float64 != nil:
		d, err := json.Marshal(*node.Float64)
		if err != nil {
			return "", err
		}
		return string(d), nil
	case node.Number != "":
		return node.Number, nil
	}
	return "", fmt.Errorf("number node without a value")
}

func quote(s string) string {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func encodeYAML(node *ir.Node, w io.Writer) error {
	v, err := ToAny(node)
	if err != nil {
		return err
	}
	d, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

// ToAny converts node to plain Go values. Objects become yaml.MapSlice so
// that key order survives.
func ToAny(node *ir.Node) (any, error) {
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.StringType:
		return node.String, nil
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return *node.Int64, nil
		case node.Float64 != nil:
			return *node.Float64, nil
		}
		f, err := strconv.ParseFloat(node.Number, 64)
		if err != nil {
			return nil, fmt.Errorf("number %q: %w", node.Number, err)
		}
		return f, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			x, err := ToAny(v)
			if err != nil {
				return nil, err
			}
			res[i] = x
		}
		return res, nil
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, field := range node.Fields {
			x, err := ToAny(node.Values[i])
			if err != nil {
				return nil, err
			}
			res[i] = yaml.MapItem{Key: field, Value: x}
		}
		return res, nil
	}
	return nil, fmt.Errorf("cannot convert node of type %s", node.Type)
}
