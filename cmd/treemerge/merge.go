package main

import (
	"fmt"
	"io"

	"github.com/signadot/treemerge"
	"github.com/signadot/treemerge/encode"
	"github.com/signadot/treemerge/ir"
	"github.com/signadot/treemerge/libdiff"
	"github.com/signadot/treemerge/options"

	"github.com/scott-cotton/cli"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		cfg.Cmd.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return runMerge(cfg, cc.In, cc.Out, args)
}

func runMerge(cfg *MergeConfig, in io.Reader, w io.Writer, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: merge requires a target and at least one source", cli.ErrUsage)
	}
	r := newReader(cfg.MainConfig, in)
	frags, err := cfg.fragments(r)
	if err != nil {
		return err
	}
	target, inFmt, err := r.read(args[0])
	if err != nil {
		return err
	}
	var before *ir.Node
	if cfg.Diff {
		before = target.Clone()
	}

	var m *treemerge.Merger
	if len(frags) != 0 {
		m, err = treemerge.NewMerger(frags...)
		if err != nil {
			return fmt.Errorf("error collecting options: %w", err)
		}
	}
	for _, arg := range args[1:] {
		source, _, err := r.read(arg)
		if err != nil {
			return err
		}
		if m == nil {
			_, err = treemerge.MergeInto(target, source)
		} else {
			_, err = m.Into(target, source)
		}
		if err != nil {
			return fmt.Errorf("error merging %s into %s: %w", arg, args[0], err)
		}
	}

	if !cfg.Diff {
		return writeNode(cfg.MainConfig, w, target, inFmt)
	}
	ls, err := libdiff.Nodes(before, target, encode.EncodeFormat(cfg.outFormat(inFmt)))
	if err != nil {
		return err
	}
	return libdiff.Write(w, ls, cfg.colors(w))
}

// fragments gathers option fragments: configured files, then -f files,
// then one fragment from the root flags.
func (cfg *MergeConfig) fragments(r *reader) ([]*ir.Node, error) {
	files := append(append([]string{}, cfg.defaults().Fragments...), cfg.Fragments...)
	res, err := r.readAll(files)
	if err != nil {
		return nil, err
	}
	flags, err := cfg.flagFragment()
	if err != nil {
		return nil, err
	}
	if flags != nil {
		res = append(res, flags)
	}
	return res, nil
}

func (cfg *MergeConfig) flagFragment() (*ir.Node, error) {
	var kvs []ir.KeyVal
	if cfg.Dup {
		kvs = append(kvs, ir.KeyVal{Key: options.DupKey, Val: ir.FromBool(true)})
	}
	if cfg.Merge {
		kvs = append(kvs, ir.KeyVal{Key: options.MergeKey, Val: ir.FromBool(true)})
	}
	if cfg.Sort {
		kvs = append(kvs, ir.KeyVal{Key: options.SortKey, Val: ir.FromBool(true)})
	}
	if len(cfg.By) != 0 {
		sel, err := selectorFromArgs(cfg.By)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: options.CompareByKey, Val: sel.Node()})
	}
	if len(kvs) == 0 {
		return nil, nil
	}
	return ir.FromKeyVals(kvs), nil
}
