package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridflow/pkg/pipeline"
)

// Config holds user defaults loaded from the config file. Every field maps
// onto a pipeline option; flags always win over config values.
type Config struct {
	Direction         string  `toml:"direction"`
	MaxTextWidth      int     `toml:"max_text_width"`
	MinBoxWidth       int     `toml:"min_box_width"`
	HorizontalSpacing int     `toml:"horizontal_spacing"`
	VerticalSpacing   int     `toml:"vertical_spacing"`
	NoShadow          bool    `toml:"no_shadow"`
	Rounded           bool    `toml:"rounded"`
	Compact           bool    `toml:"compact"`
	Font              string  `toml:"font"`
	FontSize          float64 `toml:"font_size"`
	Scale             float64 `toml:"scale"`
}

// configPath returns the config file location: .gridflow.toml in the
// working directory wins, then $XDG_CONFIG_HOME/gridflow/config.toml
// (defaulting to ~/.config). Returns "" if no file exists.
func configPath() string {
	if _, err := os.Stat(".gridflow.toml"); err == nil {
		return ".gridflow.toml"
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}

	path := filepath.Join(configHome, appName, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// LoadConfig reads the config file if one exists. A missing file yields
// the zero Config without error.
func LoadConfig() (Config, error) {
	path := configPath()
	if path == "" {
		return Config{}, nil
	}
	return LoadConfigFile(path)
}

// LoadConfigFile reads a config file at an explicit path.
func LoadConfigFile(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// apply copies config values onto unset pipeline options, so flag values
// set by the user are preserved.
func (c Config) apply(opts *pipeline.Options) {
	if opts.Direction == "" {
		opts.Direction = c.Direction
	}
	if opts.MaxTextWidth == 0 {
		opts.MaxTextWidth = c.MaxTextWidth
	}
	if opts.MinBoxWidth == 0 {
		opts.MinBoxWidth = c.MinBoxWidth
	}
	if opts.HorizontalSpacing == 0 {
		opts.HorizontalSpacing = c.HorizontalSpacing
	}
	if opts.VerticalSpacing == 0 {
		opts.VerticalSpacing = c.VerticalSpacing
	}
	if !opts.NoShadow {
		opts.NoShadow = c.NoShadow
	}
	if !opts.Rounded {
		opts.Rounded = c.Rounded
	}
	if !opts.Compact {
		opts.Compact = c.Compact
	}
	if opts.Font == "" {
		opts.Font = c.Font
	}
	if opts.FontSize == 0 {
		opts.FontSize = c.FontSize
	}
	if opts.Scale == 0 {
		opts.Scale = c.Scale
	}
}
