package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/lox/mahjongtable/internal/assets"
	"github.com/lox/mahjongtable/internal/host"
	"github.com/lox/mahjongtable/internal/loop"
	"github.com/lox/mahjongtable/internal/randutil"
	"github.com/lox/mahjongtable/internal/table"
	"github.com/lox/mahjongtable/internal/tui"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"
)

// PlayCmd runs the interactive table
type PlayCmd struct {
	Seed       *int64 `env:"MAHJONG_SEED" help:"Deterministic shuffle seed (optional)"`
	Background string `short:"b" env:"MAHJONG_BACKGROUND" help:"Background image path or URL (overrides config)"`
	FPS        int    `help:"Frames per second (overrides config)"`
	LogFile    string `env:"MAHJONG_LOG_FILE" help:"Log file path (overrides config)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Seed != nil {
		cfg.Deal.Seed = c.Seed
	}
	if c.Background != "" {
		cfg.Table.Background = c.Background
	}
	if c.FPS != 0 {
		cfg.Display.FPS = c.FPS
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// The terminal belongs to the TUI, so logs go to a file
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()
	logger := newLogger(logFile, cfg)

	lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).EnvColorProfile())

	seed := randutil.Seed(cfg.Deal.Seed)
	logger.Info("Starting mahjong table",
		"seed", seed,
		"hand_size", cfg.Table.HandSize,
		"background", cfg.Table.Background,
		"fps", cfg.Display.FPS,
		"config", g.Config)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher := host.NewDispatcher(0, 0)
	canvas := tui.NewCanvas(!cfg.Display.HideLabels)
	tbl := table.New(table.Config{
		HandSize:    cfg.Table.HandSize,
		FrustumSize: cfg.Table.FrustumSize,
		Background:  cfg.Table.Background,
	}, dispatcher, canvas, assets.NewLoader(logger), logger)

	if err := tbl.Deal(randutil.New(seed)); err != nil {
		return err
	}
	if err := tbl.Mount(ctx); err != nil {
		return err
	}
	defer tbl.Close()

	model := tui.NewModel(tbl, dispatcher, canvas, tui.Options{
		Seed:     seed,
		HideHelp: cfg.Display.HideHelp,
	}, logger)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	renderLoop := loop.New(quartz.NewReal(), cfg.Display.FPS, func() {
		program.Send(tui.FrameMsg{})
	}, logger)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		// Quitting the program stops the render loop
		defer stop()
		_, err := program.Run()
		return err
	})
	eg.Go(func() error {
		return renderLoop.Run(egCtx)
	})

	err = eg.Wait()
	logger.Info("Table closed", "frames", renderLoop.Frames())
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
