package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/mahjongtable/internal/layout"
	"github.com/lox/mahjongtable/internal/randutil"
	"github.com/lox/mahjongtable/internal/tile"
)

// DealCmd prints the hands a seed produces
type DealCmd struct {
	Seed     *int64 `env:"MAHJONG_SEED" help:"Deterministic shuffle seed (optional)"`
	HandSize *int   `help:"Tiles per hand (overrides config)"`
}

func (c *DealCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Seed != nil {
		cfg.Deal.Seed = c.Seed
	}
	if c.HandSize != nil {
		cfg.Table.HandSize = *c.HandSize
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	seed := randutil.Seed(cfg.Deal.Seed)
	newLogger(os.Stderr, cfg).Debug("Dealing", "seed", seed, "hand_size", cfg.Table.HandSize)
	return printDeal(os.Stdout, seed, cfg.Table.HandSize)
}

func printDeal(w io.Writer, seed int64, handSize int) error {
	deck := tile.NewDeck()
	tile.Shuffle(deck, randutil.New(seed))
	hands, rest, err := tile.Deal(deck, len(layout.Seats), handSize)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "seed %d\n", seed)
	for i, seat := range layout.Seats {
		codes := make([]string, len(hands[i]))
		for j, t := range hands[i] {
			codes[j] = t.String()
		}
		fmt.Fprintf(w, "%-7s %s\n", seat.String()+":", strings.Join(codes, " "))
	}
	fmt.Fprintf(w, "wall    %d tiles\n", len(rest))
	return nil
}
