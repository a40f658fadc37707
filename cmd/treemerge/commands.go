package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "treemerge").
		WithSynopsis("treemerge [opts] command [opts]").
		WithDescription("treemerge merges json and yaml documents under path addressed options.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tmMain(cfg, cc, args)
		}).
		WithSubs(
			MergeCommand(cfg),
			EqualCommand(cfg),
			CompareCommand(cfg),
			OptionsCommand(cfg))
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "f",
			Description: "option fragment file, may be repeated",
			Type:        cli.NamedFuncOpt(appendFunc(&cfg.Fragments), "(file)"),
		},
		&cli.Opt{
			Name:        "by",
			Description: "compareBy pointer for root arrays, may be repeated",
			Type:        cli.NamedFuncOpt(appendFunc(&cfg.By), "(pointer)"),
		})
	return cli.NewCommandAt(&cfg.Cmd, "merge").
		WithAliases("m").
		WithSynopsis("merge [-f fragfile]... [-dup] [-merge] [-sort] [-by ptr]... [-diff] target source...").
		WithDescription(mergeDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return merge(cfg, cc, args)
		})
}

const mergeDescription = `merge merges each source into target, in order, and prints the result.

Without any option fragment the merge is shallow: source object properties
replace target properties and source array elements are appended.

Option fragments are files holding an object which mirrors the document:

  {"merge": true, "items": {"sort": true, "compareBy": "/id"}}

or an object naming the paths it applies to:

  {"for": ["/items", "/more"], "sort": true}

Options apply only at the path naming them. -dup, -merge, -sort and -by set
options at the root, after all fragment files.`

func EqualCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EqualConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, byOpt(&cfg.By))
	return cli.NewCommandAt(&cfg.Equal, "equal").
		WithAliases("eq").
		WithSynopsis("equal [-by ptr]... a b").
		WithDescription("report whether two documents are equal, optionally only at the given pointers").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return equal(cfg, cc, args)
		})
}

func CompareCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CompareConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, byOpt(&cfg.By))
	return cli.NewCommandAt(&cfg.Compare, "compare").
		WithAliases("cmp").
		WithSynopsis("compare [-by ptr]... a b").
		WithDescription("order two documents, printing -1, 0 or 1").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return compare(cfg, cc, args)
		})
}

func OptionsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &OptionsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Options, "options").
		WithAliases("opts").
		WithSynopsis("options [-paths] fragfile...").
		WithDescription("print the options collected from fragment files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return showOptions(cfg, cc, args)
		})
}

func byOpt(dst *[]string) *cli.Opt {
	return &cli.Opt{
		Name:        "by",
		Description: "pointer to compare at, may be repeated",
		Type:        cli.NamedFuncOpt(appendFunc(dst), "(pointer)"),
	}
}

func appendFunc(dst *[]string) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		*dst = append(*dst, v)
		return v, nil
	})
}
