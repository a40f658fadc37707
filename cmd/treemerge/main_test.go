package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scott-cotton/cli"
	"github.com/signadot/treemerge/internal/config"
	"github.com/signadot/treemerge/ir"
	"github.com/stretchr/testify/require"
)

func testMainConfig() *MainConfig {
	return &MainConfig{Defaults: &config.Config{InputFormat: "json", Color: "never"}}
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestMergeBare(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"t.json": `{"a":{"x":1},"l":[1]}`,
		"s.json": `{"a":{"y":2},"l":[2]}`,
	})
	cfg := &MergeConfig{MainConfig: testMainConfig()}
	out := bytes.NewBuffer(nil)
	err := runMerge(cfg, nil, out, []string{filepath.Join(dir, "t.json"), filepath.Join(dir, "s.json")})
	require.NoError(t, err)
	require.Equal(t, `{"a":{"y":2},"l":[2]}`+"\n", out.String())
}

func TestMergeWithFragments(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"t.json":    `{"a":{"x":1},"items":[{"id":1},{"id":3}]}`,
		"s1.json":   `{"a":{"y":2},"items":[{"id":2}]}`,
		"s2.yaml":   "items:\n  - id: 1\n  - id: 4\n",
		"frag.yaml": "merge: true\na:\n  merge: true\n",
		"for.json":  `{"for":"/items","sort":true,"compareBy":"/id"}`,
	})
	p := func(name string) string { return filepath.Join(dir, name) }
	cfg := &MergeConfig{MainConfig: testMainConfig(), Fragments: []string{p("frag.yaml"), p("for.json")}}
	out := bytes.NewBuffer(nil)
	err := runMerge(cfg, nil, out, []string{p("t.json"), p("s1.json"), p("s2.yaml")})
	require.NoError(t, err)
	require.Equal(t, `{"a":{"x":1,"y":2},"items":[{"id":1},{"id":2},{"id":3},{"id":4}]}`+"\n", out.String())
}

func TestMergeFlags(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"t.json": `[{"k":"a"},{"k":"c"}]`,
		"s.json": `[{"k":"b"},{"k":"c","v":1}]`,
	})
	cfg := &MergeConfig{MainConfig: testMainConfig(), Sort: true, By: []string{"/k"}}
	out := bytes.NewBuffer(nil)
	err := runMerge(cfg, nil, out, []string{filepath.Join(dir, "t.json"), filepath.Join(dir, "s.json")})
	require.NoError(t, err)
	require.Equal(t, `[{"k":"a"},{"k":"b"},{"k":"c"}]`+"\n", out.String())

	frag, err := cfg.flagFragment()
	require.NoError(t, err)
	require.True(t, ir.Equal(frag, ir.FromKeyVals([]ir.KeyVal{
		{Key: "sort", Val: ir.FromBool(true)},
		{Key: "compareBy", Val: ir.FromString("/k")},
	})))
}

func TestMergeConfiguredFragments(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"t.json":    `{"a":{"x":1}}`,
		"s.json":    `{"a":{"y":2}}`,
		"frag.json": `"merge"`,
	})
	mainCfg := testMainConfig()
	mainCfg.Defaults.Fragments = []string{filepath.Join(dir, "frag.json")}
	cfg := &MergeConfig{MainConfig: mainCfg}
	out := bytes.NewBuffer(nil)
	err := runMerge(cfg, nil, out, []string{filepath.Join(dir, "t.json"), filepath.Join(dir, "s.json")})
	require.NoError(t, err)
	require.Equal(t, `{"a":{"x":1,"y":2}}`+"\n", out.String())
}

func TestMergeStdinAndYAMLOutput(t *testing.T) {
	dir := writeFiles(t, map[string]string{"s.json": `{"b":2}`})
	mainCfg := testMainConfig()
	mainCfg.Y = true
	cfg := &MergeConfig{MainConfig: mainCfg}
	out := bytes.NewBuffer(nil)
	in := strings.NewReader("a: 1\n")
	err := runMerge(cfg, in, out, []string{"-", filepath.Join(dir, "s.json")})
	require.NoError(t, err)
	require.Equal(t, "a: 1\nb: 2\n", out.String())
}

func TestMergeDiff(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"t.json": `{"a":1,"b":2}`,
		"s.json": `{"b":3}`,
	})
	cfg := &MergeConfig{MainConfig: testMainConfig(), Diff: true}
	out := bytes.NewBuffer(nil)
	err := runMerge(cfg, nil, out, []string{filepath.Join(dir, "t.json"), filepath.Join(dir, "s.json")})
	require.NoError(t, err)
	require.Equal(t, " {\n   \"a\": 1,\n-  \"b\": 2\n+  \"b\": 3\n }\n", out.String())
}

func TestMergeErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"arr.json":  `[1]`,
		"obj.json":  `{"a":1}`,
		"bad.json":  `{"a":`,
		"frag.json": `{"compareBy":1}`,
	})
	p := func(name string) string { return filepath.Join(dir, name) }

	cfg := &MergeConfig{MainConfig: testMainConfig()}
	err := runMerge(cfg, nil, bytes.NewBuffer(nil), []string{p("arr.json")})
	require.ErrorIs(t, err, cli.ErrUsage)

	err = runMerge(cfg, nil, bytes.NewBuffer(nil), []string{p("arr.json"), p("obj.json")})
	require.ErrorIs(t, err, ir.ErrUnsupportedShape)

	err = runMerge(cfg, nil, bytes.NewBuffer(nil), []string{p("obj.json"), p("bad.json")})
	require.ErrorContains(t, err, "error decoding")

	err = runMerge(cfg, strings.NewReader(`{}`), bytes.NewBuffer(nil), []string{"-", "-"})
	require.ErrorContains(t, err, "more than once")

	cfg.Fragments = []string{p("frag.json")}
	err = runMerge(cfg, nil, bytes.NewBuffer(nil), []string{p("obj.json"), p("obj.json")})
	require.ErrorIs(t, err, ir.ErrInvalidSelector)
}

func TestEqual(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.json": `{"id":1,"v":"x"}`,
		"b.yaml": "v: y\nid: 1\n",
	})
	p := func(name string) string { return filepath.Join(dir, name) }

	cfg := &EqualConfig{MainConfig: testMainConfig()}
	out := bytes.NewBuffer(nil)
	eq, err := runEqual(cfg, nil, out, []string{p("a.json"), p("b.yaml")})
	require.NoError(t, err)
	require.False(t, eq)
	require.Equal(t, "false\n", out.String())

	cfg.By = []string{"/id"}
	out.Reset()
	eq, err = runEqual(cfg, nil, out, []string{p("a.json"), p("b.yaml")})
	require.NoError(t, err)
	require.True(t, eq)
	require.Equal(t, "true\n", out.String())

	cfg.Quiet = true
	out.Reset()
	_, err = runEqual(cfg, nil, out, []string{p("a.json"), p("b.yaml")})
	require.NoError(t, err)
	require.Empty(t, out.String())

	_, err = runEqual(cfg, nil, out, []string{p("a.json")})
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestCompare(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.json": `{"n":2,"s":"b"}`,
		"b.json": `{"n":2,"s":"a"}`,
		"c.json": `{"s":"a"}`,
	})
	p := func(name string) string { return filepath.Join(dir, name) }

	cfg := &CompareConfig{MainConfig: testMainConfig(), By: []string{"/n", "/s"}}
	out := bytes.NewBuffer(nil)
	require.NoError(t, runCompare(cfg, nil, out, []string{p("a.json"), p("b.json")}))
	require.Equal(t, "1\n", out.String())

	err := runCompare(cfg, nil, out, []string{p("a.json"), p("c.json")})
	require.ErrorIs(t, err, ir.ErrIncomparable)

	cfg.By = []string{"/a~2"}
	err = runCompare(cfg, nil, out, []string{p("a.json"), p("b.json")})
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestOptions(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"f1.json": `"merge"`,
		"f2.yaml": "for: /items\nsort: true\ncompareBy: /id\n",
	})
	p := func(name string) string { return filepath.Join(dir, name) }

	cfg := &OptionsConfig{MainConfig: testMainConfig()}
	out := bytes.NewBuffer(nil)
	require.NoError(t, runOptions(cfg, nil, out, []string{p("f1.json"), p("f2.yaml")}))
	require.Equal(t, `{"merge":true,"items":{"sort":true,"compareBy":"/id"}}`+"\n", out.String())

	cfg.Paths = true
	out.Reset()
	require.NoError(t, runOptions(cfg, nil, out, []string{p("f1.json"), p("f2.yaml")}))
	require.Equal(t,
		`"" dup=false merge=true sort=false compareBy=null`+"\n"+
			`"/items" dup=false merge=false sort=true compareBy="/id"`+"\n",
		out.String())

	require.ErrorIs(t, runOptions(cfg, nil, out, nil), cli.ErrUsage)
}

func TestIndentAndColorDefaults(t *testing.T) {
	cfg := testMainConfig()
	require.Equal(t, "", cfg.indent())
	cfg.Defaults.Indent = 2
	require.Equal(t, "  ", cfg.indent())
	cfg.Indent = 4
	require.Equal(t, "    ", cfg.indent())

	require.False(t, cfg.colors(bytes.NewBuffer(nil)))
	cfg.Defaults.Color = "always"
	require.True(t, cfg.colors(bytes.NewBuffer(nil)))
	cfg.Defaults.Color = "auto"
	require.False(t, cfg.colors(bytes.NewBuffer(nil)))
}
