package tui

import (
	"context"
	"image"
	"image/color"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/mahjongtable/internal/assets"
	"github.com/lox/mahjongtable/internal/host"
	"github.com/lox/mahjongtable/internal/interaction"
	"github.com/lox/mahjongtable/internal/layout"
	"github.com/lox/mahjongtable/internal/randutil"
	"github.com/lox/mahjongtable/internal/scene"
	"github.com/lox/mahjongtable/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	tex image.Image
}

func (s staticSource) Load(context.Context, string) *assets.Future {
	return assets.Resolved(s.tex, nil)
}

func newTestModel(t *testing.T, src assets.Source, background string) (*Model, *table.Table) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests

	d := host.NewDispatcher(0, 0)
	canvas := NewCanvas(true)
	tbl := table.New(table.Config{HandSize: 13, Background: background}, d, canvas, src, logger)
	require.NoError(t, tbl.Deal(randutil.New(5)))
	require.NoError(t, tbl.Mount(context.Background()))
	t.Cleanup(tbl.Close)

	m := NewModel(tbl, d, canvas, Options{Seed: 5}, logger)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, tbl
}

func press(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func (m *Model) cellOf(n *scene.Node) (int, int) {
	return m.canvas.CellAt(m.table.Camera(), n.Position.X, n.Position.Y)
}

func TestWindowSizeResizesTable(t *testing.T) {
	m, tbl := newTestModel(t, nil, "")

	cols, rows := m.canvas.Size()
	assert.Equal(t, 120, cols)
	assert.Equal(t, 38, rows, "two footer lines")

	w, h := tbl.Viewport().Size()
	assert.Equal(t, 120, w)
	assert.Equal(t, 76, h)
	assert.InDelta(t, 20, tbl.Camera().Top, 1e-9)
}

func TestClickSelectsLocalTile(t *testing.T) {
	m, tbl := newTestModel(t, nil, "")
	target := tbl.Nodes(layout.Local)[3]

	m.Update(press(m.cellOf(target)))
	assert.Equal(t, interaction.Raised, tbl.Controller().State())
	assert.Same(t, target, tbl.Controller().Selected())
	assert.Contains(t, m.View(), "selected "+target.Tile.String())
}

func TestClickOpponentTileIgnored(t *testing.T) {
	m, tbl := newTestModel(t, nil, "")

	for _, seat := range []layout.Seat{layout.Across, layout.Left, layout.Right} {
		m.Update(press(m.cellOf(tbl.Nodes(seat)[6])))
		assert.Equal(t, interaction.Idle, tbl.Controller().State(), seat.String())
	}
}

func TestMissAndEscClearSelection(t *testing.T) {
	m, tbl := newTestModel(t, nil, "")
	local := tbl.Nodes(layout.Local)

	m.Update(press(m.cellOf(local[0])))
	require.Equal(t, interaction.Raised, tbl.Controller().State())
	m.Update(press(60, 19))
	assert.Equal(t, interaction.Idle, tbl.Controller().State())
	assert.Equal(t, layout.TrayY, local[0].Position.Y)

	m.Update(press(m.cellOf(local[1])))
	require.Equal(t, interaction.Raised, tbl.Controller().State())
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, interaction.Idle, tbl.Controller().State())
}

func TestIgnoresFooterAndOtherButtons(t *testing.T) {
	m, tbl := newTestModel(t, nil, "")
	target := tbl.Nodes(layout.Local)[2]
	col, row := m.cellOf(target)

	m.Update(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m.Update(press(col, 39))
	assert.Equal(t, interaction.Idle, tbl.Controller().State())
}

func TestViewDrawsLabels(t *testing.T) {
	m, tbl := newTestModel(t, nil, "")
	view := m.View()

	for _, tl := range tbl.Hand(layout.Local) {
		assert.Contains(t, view, tl.String())
	}
	assert.Contains(t, view, "wall 84")
	assert.Equal(t, 40, len(strings.Split(view, "\n")))

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	assert.False(t, m.canvas.labels)
}

func TestHelpToggleShrinksCanvas(t *testing.T) {
	m, _ := newTestModel(t, nil, "")
	_, before := m.canvas.Size()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	_, after := m.canvas.Size()
	assert.Less(t, after, before)
}

func TestFrameAttachesBackground(t *testing.T) {
	tex := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			tex.Set(x, y, color.RGBA{G: 0x80, A: 0xff})
		}
	}
	m, tbl := newTestModel(t, staticSource{tex: tex}, "table.png")
	require.Nil(t, tbl.Scene().Lookup(scene.BackgroundName))

	m.Update(FrameMsg{})
	assert.NotNil(t, tbl.Scene().Lookup(scene.BackgroundName))
	assert.Equal(t, 1, m.frames)
	assert.NotEmpty(t, m.View())
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, nil, "")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestViewBeforeSize(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	d := host.NewDispatcher(0, 0)
	canvas := NewCanvas(false)
	tbl := table.New(table.Config{HandSize: 13}, d, canvas, nil, logger)
	m := NewModel(tbl, d, canvas, Options{}, logger)
	assert.Equal(t, "Dealing...", m.View())
}
