package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/mahjongtable/internal/config"
)

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"mahjong.hcl" env:"MAHJONG_CONFIG" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" env:"MAHJONG_LOG_LEVEL" help:"Log level (overrides config)"`
}

// loadConfig reads the config file and applies global overrides
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           cfg.LogLevel(),
		ReportTimestamp: true,
	})
}
