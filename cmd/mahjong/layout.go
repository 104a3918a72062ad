package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/lox/mahjongtable/internal/config"
	"github.com/lox/mahjongtable/internal/fileutil"
	"github.com/lox/mahjongtable/internal/host"
	"github.com/lox/mahjongtable/internal/layout"
	"github.com/lox/mahjongtable/internal/randutil"
	"github.com/lox/mahjongtable/internal/table"
)

// LayoutCmd prints computed tile positions without a terminal UI
type LayoutCmd struct {
	Width  int    `default:"1920" help:"Viewport width"`
	Height int    `default:"1080" help:"Viewport height"`
	Seed   *int64 `env:"MAHJONG_SEED" help:"Deterministic shuffle seed (optional)"`
	Select *int   `help:"Click the local tile at this hand index before printing"`
	Format string `enum:"table,json" default:"table" help:"Output format (table, json)"`
	Output string `short:"o" help:"Write to this file instead of stdout"`
}

func (c *LayoutCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Seed != nil {
		cfg.Deal.Seed = c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := newLogger(os.Stderr, cfg)

	seed := randutil.Seed(cfg.Deal.Seed)
	placements, err := c.placements(cfg, seed)
	if err != nil {
		return err
	}
	logger.Debug("Computed layout", "seed", seed, "tiles", len(placements), "width", c.Width, "height", c.Height)

	var buf bytes.Buffer
	switch c.Format {
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(placements); err != nil {
			return fmt.Errorf("failed to encode layout: %w", err)
		}
	default:
		if err := writeLayoutTable(&buf, placements); err != nil {
			return err
		}
	}

	if c.Output == "" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := fileutil.WriteFileAtomic(c.Output, buf.Bytes(), 0o644); err != nil {
		return err
	}
	logger.Info("Wrote layout", "file", c.Output, "tiles", len(placements))
	return nil
}

// placements deals a headless table at the requested size and optionally
// clicks one local tile.
func (c *LayoutCmd) placements(cfg *config.Config, seed int64) ([]table.Placement, error) {
	logger := newLogger(io.Discard, cfg)
	d := host.NewDispatcher(c.Width, c.Height)
	tbl := table.New(table.Config{
		HandSize:    cfg.Table.HandSize,
		FrustumSize: cfg.Table.FrustumSize,
	}, d, nil, nil, logger)

	if err := tbl.Deal(randutil.New(seed)); err != nil {
		return nil, err
	}
	if err := tbl.Mount(context.Background()); err != nil {
		return nil, err
	}
	defer tbl.Close()

	if c.Select != nil {
		local := tbl.Nodes(layout.Local)
		if *c.Select < 0 || *c.Select >= len(local) {
			return nil, fmt.Errorf("select %d: local hand has %d tiles", *c.Select, len(local))
		}
		ndcX, ndcY := tbl.Camera().Project(local[*c.Select].Position)
		d.Click((ndcX+1)/2*float64(c.Width), (1-ndcY)/2*float64(c.Height))
	}
	return tbl.Placements(), nil
}

func writeLayoutTable(w io.Writer, placements []table.Placement) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEAT\tIDX\tTILE\tX\tY\tZ\tW\tH\tRAISED")
	for _, p := range placements {
		raised := ""
		if p.Raised {
			raised = "yes"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%s\n",
			p.Seat, p.Index, p.Tile, p.X, p.Y, p.Z, p.Width, p.Height, raised)
	}
	return tw.Flush()
}
