package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/treemerge/debug"
	"github.com/signadot/treemerge/encode"
	"github.com/signadot/treemerge/format"
	"github.com/signadot/treemerge/ir"
	"github.com/signadot/treemerge/parse"
)

// reader hands out stdin to at most one "-" argument.
type reader struct {
	cfg   *MainConfig
	in    io.Reader
	stdin bool
}

func newReader(cfg *MainConfig, in io.Reader) *reader {
	return &reader{cfg: cfg, in: in}
}

// read parses the document named by arg, "-" meaning the reader's input.
func (r *reader) read(arg string) (*ir.Node, format.Format, error) {
	var d []byte
	var err error
	if arg == "-" {
		if r.stdin {
			return nil, 0, fmt.Errorf("standard input given more than once")
		}
		r.stdin = true
		d, err = io.ReadAll(r.in)
	} else {
		d, err = os.ReadFile(arg)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("error reading %s: %w", arg, err)
	}
	opts := r.cfg.parseOpts(arg)
	node, err := parse.Parse(d, opts...)
	if err != nil {
		return nil, 0, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	if debug.Parse() {
		debug.Logf("read %s: %v\n", arg, node)
	}
	return node, parse.FormatFromOpts(opts...), nil
}

func (r *reader) readAll(args []string) ([]*ir.Node, error) {
	res := make([]*ir.Node, 0, len(args))
	for _, arg := range args {
		node, _, err := r.read(arg)
		if err != nil {
			return nil, err
		}
		res = append(res, node)
	}
	return res, nil
}

// writeNode encodes node to w, ending the output with a newline.
func writeNode(cfg *MainConfig, w io.Writer, node *ir.Node, in format.Format) error {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, cfg.encOpts(w, in)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	if n := buf.Len(); n == 0 || buf.Bytes()[n-1] != '\n' {
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}
