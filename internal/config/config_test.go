package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/signadot/treemerge/format"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, Name+".yaml"), []byte(content), 0o644)
	require.NoError(t, err)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "json", cfg.InputFormat)
	require.Equal(t, "", cfg.OutputFormat)
	require.Equal(t, 0, cfg.Indent)
	require.Equal(t, "auto", cfg.Color)
	require.Empty(t, cfg.Fragments)
	require.Equal(t, format.JSONFormat, cfg.Output(cfg.Input()))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "input_format: yaml\nindent: 2\ncolor: never\nfragments:\n  - a.json\n  - b.yaml\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, format.YAMLFormat, cfg.Input())
	require.Equal(t, format.YAMLFormat, cfg.Output(cfg.Input()))
	require.Equal(t, 2, cfg.Indent)
	require.Equal(t, "never", cfg.Color)
	require.Equal(t, []string{"a.json", "b.yaml"}, cfg.Fragments)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "indent: 2\noutput_format: json\n")
	t.Setenv("TREEMERGE_INDENT", "4")
	t.Setenv("TREEMERGE_OUTPUT_FORMAT", "yaml")
	t.Setenv("TREEMERGE_FRAGMENTS", "x.json y.json")

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Indent)
	require.Equal(t, format.YAMLFormat, cfg.Output(format.JSONFormat))
	require.Equal(t, []string{"x.json", "y.json"}, cfg.Fragments)
}

func TestFirstPathWins(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	writeConfig(t, first, "indent: 1\n")
	writeConfig(t, second, "indent: 7\n")

	cfg, err := Load(first, second)
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Indent)
}

func TestInvalid(t *testing.T) {
	for _, content := range []string{
		"input_format: xml\n",
		"output_format: toml\n",
		"indent: -1\n",
		"color: sometimes\n",
	} {
		t.Run(content, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, content)
			_, err := Load(dir)
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	dir := t.TempDir()
	writeConfig(t, dir, "color: always\n")
	cfg, err := LoadFile(filepath.Join(dir, Name+".yaml"))
	require.NoError(t, err)
	require.Equal(t, "always", cfg.Color)
}
