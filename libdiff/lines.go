// Package libdiff renders line diffs between encoded trees.
package libdiff

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/signadot/treemerge/encode"
	"github.com/signadot/treemerge/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff line.
type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

func (o Op) prefix() string {
	switch o {
	case Delete:
		return "-"
	case Insert:
		return "+"
	}
	return " "
}

// Line is one line of a diff, without its trailing newline.
type Line struct {
	Op   Op
	Text string
}

// Lines diffs from and to line by line.
func Lines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var res []Line
	for i := range diffs {
		diff := &diffs[i]
		op := Equal
		switch diff.Type {
		case diffpatch.DiffDelete:
			op = Delete
		case diffpatch.DiffInsert:
			op = Insert
		}
		for _, text := range splitLines(diff.Text) {
			res = append(res, Line{Op: op, Text: text})
		}
	}
	return res
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// Changed reports whether ls holds any insertion or deletion.
func Changed(ls []Line) bool {
	for i := range ls {
		if ls[i].Op != Equal {
			return true
		}
	}
	return false
}

// Nodes encodes from and to with opts and diffs the results. Encoding is
// indented so that each leaf sits on its own line.
func Nodes(from, to *ir.Node, opts ...encode.EncodeOption) ([]Line, error) {
	opts = append([]encode.EncodeOption{encode.EncodeIndent("  ")}, opts...)
	fromBuf, toBuf := bytes.NewBuffer(nil), bytes.NewBuffer(nil)
	if err := encode.Encode(from, fromBuf, opts...); err != nil {
		return nil, fmt.Errorf("encoding before: %w", err)
	}
	if err := encode.Encode(to, toBuf, opts...); err != nil {
		return nil, fmt.Errorf("encoding after: %w", err)
	}
	return Lines(fromBuf.String(), toBuf.String()), nil
}

// Write writes ls to w, prefixing each line with '-', '+' or ' '. With
// colors, deletions are red and insertions green.
func Write(w io.Writer, ls []Line, colors bool) error {
	del, ins := color.New(color.FgRed), color.New(color.FgGreen)
	if colors {
		del.EnableColor()
		ins.EnableColor()
	}
	for i := range ls {
		line := &ls[i]
		text := line.Op.prefix() + line.Text
		if colors {
			switch line.Op {
			case Delete:
				text = del.Sprint(text)
			case Insert:
				text = ins.Sprint(text)
			}
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}
