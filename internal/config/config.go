// Package config loads the table configuration from HCL.
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete configuration
type Config struct {
	Table   TableSettings
	Deal    DealSettings
	Display DisplaySettings
	Log     LogSettings
}

// file is the on-disk shape; every block is optional.
type file struct {
	Table   *tableBlock      `hcl:"table,block"`
	Deal    *DealSettings    `hcl:"deal,block"`
	Display *DisplaySettings `hcl:"display,block"`
	Log     *LogSettings     `hcl:"log,block"`
}

// TableSettings controls the table scene
type TableSettings struct {
	HandSize    int     `hcl:"hand_size,optional"`
	FrustumSize float64 `hcl:"frustum_size,optional"`
	Background  string  `hcl:"background,optional"`
}

// tableBlock is TableSettings as written; hand_size may legitimately be 0,
// so only an absent attribute takes the default.
type tableBlock struct {
	HandSize    *int    `hcl:"hand_size,optional"`
	FrustumSize float64 `hcl:"frustum_size,optional"`
	Background  string  `hcl:"background,optional"`
}

// DealSettings controls the shuffle
type DealSettings struct {
	Seed *int64 `hcl:"seed,optional"`
}

// DisplaySettings controls the terminal renderer
type DisplaySettings struct {
	FPS        int  `hcl:"fps,optional"`
	HideLabels bool `hcl:"hide_labels,optional"`
	HideHelp   bool `hcl:"hide_help,optional"`
}

// LogSettings controls logging
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Table: TableSettings{
			HandSize:    13,
			FrustumSize: 40,
			Background:  "",
		},
		Display: DisplaySettings{
			FPS: 30,
		},
		Log: LogSettings{
			Level: "info",
			File:  "mahjong.log",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Config{Table: TableSettings{HandSize: Default().Table.HandSize}}
	if raw.Table != nil {
		cfg.Table.FrustumSize = raw.Table.FrustumSize
		cfg.Table.Background = raw.Table.Background
		if raw.Table.HandSize != nil {
			cfg.Table.HandSize = *raw.Table.HandSize
		}
	}
	if raw.Deal != nil {
		cfg.Deal = *raw.Deal
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.Log != nil {
		cfg.Log = *raw.Log
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills zero values with the defaults.
func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Table.FrustumSize == 0 {
		c.Table.FrustumSize = defaults.Table.FrustumSize
	}
	if c.Display.FPS == 0 {
		c.Display.FPS = defaults.Display.FPS
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.HandSize < 0 {
		return fmt.Errorf("hand size cannot be negative")
	}
	if c.Table.HandSize*4 > 136 {
		return fmt.Errorf("hand size %d needs more than 136 tiles", c.Table.HandSize)
	}
	if c.Table.FrustumSize <= 0 {
		return fmt.Errorf("frustum size must be positive")
	}
	if c.Display.FPS <= 0 || c.Display.FPS > 240 {
		return fmt.Errorf("fps must be between 1 and 240")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
