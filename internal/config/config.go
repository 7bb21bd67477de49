// Package config loads calculator settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/CrimsonDemon567/hexcalc/internal/eval"
)

const (
	DefaultPrompt   = "=> "
	DefaultLogLevel = "warn"
	historyName     = ".hexcalc_history"
)

// Config holds the user settings. Empty fields mean "use the default".
type Config struct {
	LogLevel    string `yaml:"log_level"`
	Overflow    string `yaml:"overflow"`
	HistoryFile string `yaml:"history_file"`
	Prompt      string `yaml:"prompt"`
	NoColor     bool   `yaml:"no_color"`
}

// Default returns the built-in settings.
func Default() Config {
	cfg := Config{
		LogLevel: DefaultLogLevel,
		Overflow: eval.Wrap.String(),
		Prompt:   DefaultPrompt,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, historyName)
	}
	return cfg
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hexcalc", "config.yaml")
}

// Load reads the file at path over the defaults. An empty path means
// DefaultPath, which may be missing; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	if err := cfg.decode(f); err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := eval.ParseOverflow(c.Overflow); err != nil {
		return fmt.Errorf("overflow: %w", err)
	}
	return nil
}

// Level returns the parsed log level, falling back to warn.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}

// OverflowPolicy returns the parsed overflow policy, falling back to wrap.
func (c Config) OverflowPolicy() eval.Overflow {
	o, err := eval.ParseOverflow(c.Overflow)
	if err != nil {
		return eval.Wrap
	}
	return o
}
