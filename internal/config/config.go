package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/signadot/treemerge/format"
	"github.com/spf13/viper"
)

const (
	Name      = "treemerge"
	EnvPrefix = "TREEMERGE"
)

// Config holds the defaults of the treemerge command, read from
// treemerge.yaml and TREEMERGE_* environment variables.
type Config struct {
	InputFormat  string   `mapstructure:"input_format"`  // json, yaml
	OutputFormat string   `mapstructure:"output_format"` // json, yaml; empty means as input
	Indent       int      `mapstructure:"indent"`        // 0 means compact json
	Color        string   `mapstructure:"color"`         // auto, always, never
	Fragments    []string `mapstructure:"fragments"`     // option fragment files applied before -f
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input_format", "json")
	v.SetDefault("output_format", "")
	v.SetDefault("indent", 0)
	v.SetDefault("color", "auto")
	v.SetDefault("fragments", []string{})
}

// Paths returns the directories searched for treemerge.yaml, in order of
// precedence.
func Paths() []string {
	res := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		res = append(res, filepath.Join(home, ".config", Name))
	}
	return res
}

// Load reads the configuration from the first treemerge.yaml found in
// dirs, or in Paths() when dirs is empty. A missing file is not an error;
// environment variables apply either way.
func Load(dirs ...string) (*Config, error) {
	if len(dirs) == 0 {
		dirs = Paths()
	}
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(Name)
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return decode(v)
}

// LoadFile reads the configuration from the named file only, plus the
// environment.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	// env values arrive as one space separated string
	if len(cfg.Fragments) == 1 && strings.ContainsAny(cfg.Fragments[0], " \t") {
		cfg.Fragments = strings.Fields(cfg.Fragments[0])
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var ErrInvalid = errors.New("invalid config")

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	if _, err := format.ParseFormat(c.InputFormat); err != nil {
		return fmt.Errorf("%w: input_format: %w", ErrInvalid, err)
	}
	if c.OutputFormat != "" {
		if _, err := format.ParseFormat(c.OutputFormat); err != nil {
			return fmt.Errorf("%w: output_format: %w", ErrInvalid, err)
		}
	}
	if c.Indent < 0 {
		return fmt.Errorf("%w: indent %d is negative", ErrInvalid, c.Indent)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: color %q, want auto, always or never", ErrInvalid, c.Color)
	}
	return nil
}

// Input returns the configured input format.
func (c *Config) Input() format.Format {
	f, _ := format.ParseFormat(c.InputFormat)
	return f
}

// Output returns the configured output format, falling back to in.
func (c *Config) Output(in format.Format) format.Format {
	if c.OutputFormat == "" {
		return in
	}
	f, _ := format.ParseFormat(c.OutputFormat)
	return f
}
