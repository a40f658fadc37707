package main

import (
	"fmt"
	"io"

	"github.com/signadot/treemerge"
	"github.com/signadot/treemerge/selector"

	"github.com/scott-cotton/cli"
)

func selectorFromArgs(by []string) (selector.Selector, error) {
	var (
		sel selector.Selector
		err error
	)
	switch len(by) {
	case 0:
		return selector.None(), nil
	case 1:
		sel, err = selector.Single(by[0])
	default:
		sel, err = selector.List(by...)
	}
	if err != nil {
		return sel, fmt.Errorf("%w: -by: %w", cli.ErrUsage, err)
	}
	return sel, nil
}

func equal(cfg *EqualConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Equal.Parse(cc, args)
	if err != nil {
		cfg.Equal.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	eq, err := runEqual(cfg, cc.In, cc.Out, args)
	if err != nil {
		return err
	}
	if !eq {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func runEqual(cfg *EqualConfig, in io.Reader, w io.Writer, args []string) (bool, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("%w: equal requires exactly two documents", cli.ErrUsage)
	}
	sel, err := selectorFromArgs(cfg.By)
	if err != nil {
		return false, err
	}
	nodes, err := newReader(cfg.MainConfig, in).readAll(args)
	if err != nil {
		return false, err
	}
	eq := treemerge.Equal(nodes[0], nodes[1], sel)
	if !cfg.Quiet {
		fmt.Fprintln(w, eq)
	}
	return eq, nil
}

func compare(cfg *CompareConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Compare.Parse(cc, args)
	if err != nil {
		cfg.Compare.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return runCompare(cfg, cc.In, cc.Out, args)
}

func runCompare(cfg *CompareConfig, in io.Reader, w io.Writer, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: compare requires exactly two documents", cli.ErrUsage)
	}
	sel, err := selectorFromArgs(cfg.By)
	if err != nil {
		return err
	}
	nodes, err := newReader(cfg.MainConfig, in).readAll(args)
	if err != nil {
		return err
	}
	c, err := treemerge.Compare(nodes[0], nodes[1], sel)
	if err != nil {
		return fmt.Errorf("error comparing %s and %s: %w", args[0], args[1], err)
	}
	_, err = fmt.Fprintln(w, c)
	return err
}
