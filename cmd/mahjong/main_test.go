package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lox/mahjongtable/internal/config"
	"github.com/lox/mahjongtable/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintDeal(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, printDeal(&a, 42, 13))
	require.NoError(t, printDeal(&b, 42, 13))
	assert.Equal(t, a.String(), b.String())

	lines := strings.Split(strings.TrimSpace(a.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "seed 42", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "local:"))
	assert.Len(t, strings.Fields(lines[1]), 14)
	assert.Equal(t, "wall    84 tiles", lines[5])

	assert.Error(t, printDeal(&a, 1, 50))
}

func TestLayoutPlacements(t *testing.T) {
	seed := int64(9)
	sel := 4
	cmd := &LayoutCmd{Width: 1200, Height: 800, Select: &sel}

	placements, err := cmd.placements(config.Default(), seed)
	require.NoError(t, err)
	require.Len(t, placements, 52)

	raised := 0
	for _, p := range placements {
		if p.Raised {
			raised++
			assert.Equal(t, "local", p.Seat)
			assert.Equal(t, 4, p.Index)
			assert.InDelta(t, -15.5, p.Y, 1e-9)
		}
	}
	assert.Equal(t, 1, raised)

	bad := -1
	cmd.Select = &bad
	_, err = cmd.placements(config.Default(), seed)
	assert.Error(t, err)
}

func TestLayoutWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "layout.json")
	seed := int64(3)
	cmd := &LayoutCmd{Width: 1920, Height: 1080, Seed: &seed, Format: "json", Output: out}
	g := &Globals{Config: filepath.Join(t.TempDir(), "absent.hcl")}
	require.NoError(t, cmd.Run(g))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var placements []table.Placement
	require.NoError(t, json.Unmarshal(data, &placements))
	assert.Len(t, placements, 52)
}

func TestWriteLayoutTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeLayoutTable(&buf, []table.Placement{
		{Seat: "local", Index: 0, Tile: "5p", X: -25.2, Y: -16, Width: 4, Height: 6, Raised: true},
	}))
	out := buf.String()
	assert.Contains(t, out, "SEAT")
	assert.Contains(t, out, "-25.20")
	assert.Contains(t, out, "yes")
}
