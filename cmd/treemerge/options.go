package main

import (
	"fmt"
	"io"

	"github.com/signadot/treemerge/options"

	"github.com/scott-cotton/cli"
)

func showOptions(cfg *OptionsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Options.Parse(cc, args)
	if err != nil {
		cfg.Options.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return runOptions(cfg, cc.In, cc.Out, args)
}

func runOptions(cfg *OptionsConfig, in io.Reader, w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: options requires at least one fragment file", cli.ErrUsage)
	}
	frags, err := newReader(cfg.MainConfig, in).readAll(args)
	if err != nil {
		return err
	}
	tree, err := options.Collect(frags...)
	if err != nil {
		return fmt.Errorf("error collecting options: %w", err)
	}
	if !cfg.Paths {
		return writeNode(cfg.MainConfig, w, tree.Node(), cfg.inFormat(args[0]))
	}
	for _, p := range tree.Paths() {
		opts := tree.Resolve(p)
		if _, err := fmt.Fprintf(w, "%q dup=%t merge=%t sort=%t compareBy=%s\n",
			p.String(), opts.Dup, opts.Merge, opts.Sort, opts.CompareBy); err != nil {
			return err
		}
	}
	return nil
}
