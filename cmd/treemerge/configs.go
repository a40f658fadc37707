package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/signadot/treemerge/encode"
	"github.com/signadot/treemerge/format"
	"github.com/signadot/treemerge/internal/config"
	"github.com/signadot/treemerge/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color  bool   `cli:"name=color desc='encode with color'"`
	Indent int    `cli:"name=indent desc='indent json output by this many spaces'"`
	Config string `cli:"name=config desc='config file (default treemerge.yaml in . or ~/.config/treemerge)'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Defaults *config.Config

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// optSet reports whether the main option name was given on the command
// line.
func (cfg *MainConfig) optSet(name string) bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != name {
			continue
		}
		return opt.Value != nil
	}
	return false
}

func (cfg *MainConfig) defaults() *config.Config {
	if cfg.Defaults == nil {
		cfg.Defaults = &config.Config{InputFormat: "json", Color: "auto"}
	}
	return cfg.Defaults
}

func (cfg *MainConfig) loadDefaults() error {
	var (
		c   *config.Config
		err error
	)
	if cfg.Config != "" {
		c, err = config.LoadFile(cfg.Config)
	} else {
		c, err = config.Load()
	}
	if err != nil {
		return err
	}
	cfg.Defaults = c
	return nil
}

// inFormat gives the format for reading path. Flags win over the file
// extension, which wins over the configured default.
func (cfg *MainConfig) inFormat(path string) format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	switch {
	case cfg.Y:
		return format.YAMLFormat
	case cfg.J:
		return format.JSONFormat
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return format.FromPath(path)
	}
	return cfg.defaults().Input()
}

func (cfg *MainConfig) parseOpts(path string) []parse.ParseOption {
	return []parse.ParseOption{parse.ParseFormat(cfg.inFormat(path))}
}

func (cfg *MainConfig) outFormat(in format.Format) format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	switch {
	case cfg.Y:
		return format.YAMLFormat
	case cfg.J:
		return format.JSONFormat
	}
	return cfg.defaults().Output(in)
}

func (cfg *MainConfig) indent() string {
	n := cfg.defaults().Indent
	if cfg.optSet("indent") || cfg.Indent != 0 {
		n = cfg.Indent
	}
	return strings.Repeat(" ", n)
}

// colors decides whether output to w is colored: -color first, then the
// configured color mode, where auto means w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.optSet("color") {
		return false
	}
	switch cfg.defaults().Color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer, in format.Format) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat(in)),
		encode.EncodeIndent(cfg.indent()),
	}
	if cfg.colors(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type MergeConfig struct {
	*MainConfig

	Dup   bool `cli:"name=dup desc='deep copy merged values into the target'"`
	Merge bool `cli:"name=merge desc='merge root object properties recursively'"`
	Sort  bool `cli:"name=sort desc='combine root arrays by sorted merge'"`
	Diff  bool `cli:"name=diff desc='print a diff of the target instead of the result'"`

	Fragments []string
	By        []string

	Cmd *cli.Command
}

type EqualConfig struct {
	*MainConfig

	Quiet bool `cli:"name=q desc='print nothing, only set the exit code'"`
	By    []string

	Equal *cli.Command
}

type CompareConfig struct {
	*MainConfig

	By []string

	Compare *cli.Command
}

type OptionsConfig struct {
	*MainConfig

	Paths bool `cli:"name=paths desc='list the paths holding options'"`

	Options *cli.Command
}
