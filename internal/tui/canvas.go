package tui

import (
	"fmt"
	"image"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/mahjongtable/internal/layout"
	"github.com/lox/mahjongtable/internal/scene"
)

// CellAspect is how many viewport units tall a terminal cell is for each
// unit of width. Terminal cells are roughly twice as tall as they are wide.
const CellAspect = 2

type cell struct {
	ch     rune
	fg, bg uint32
	filled bool
}

// Canvas rasterises the scene into terminal cells. It is the render surface
// the viewport adapter resizes.
type Canvas struct {
	cols, rows int
	labels     bool
}

// NewCanvas creates a canvas; labels draws tile codes on the local hand.
func NewCanvas(labels bool) *Canvas {
	return &Canvas{labels: labels}
}

// SetSize resizes the canvas for a viewport of width x height units.
func (c *Canvas) SetSize(width, height int) {
	c.cols = width
	c.rows = height / CellAspect
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// ToggleLabels flips tile labels on or off.
func (c *Canvas) ToggleLabels() {
	c.labels = !c.labels
}

// ClientPoint returns the viewport coordinates of the centre of cell
// (col, row).
func ClientPoint(col, row int) (x, y float64) {
	return float64(col) + 0.5, (float64(row) + 0.5) * CellAspect
}

// CellAt returns the cell containing the world point under cam.
func (c *Canvas) CellAt(cam *scene.Camera, x, y float64) (col, row int) {
	fx, fy := c.project(cam, x, y)
	return int(math.Floor(fx)), int(math.Floor(fy))
}

// project maps world XY to fractional cell coordinates.
func (c *Canvas) project(cam *scene.Camera, x, y float64) (col, row float64) {
	ndcX := (x - cam.Position.X - cam.Left) / cam.Width()
	ndcY := (cam.Top + cam.Position.Y - y) / cam.Height()
	return ndcX * float64(c.cols), ndcY * float64(c.rows)
}

// cellRect returns the half-open cell range whose centres lie inside n.
func (c *Canvas) cellRect(cam *scene.Camera, n *scene.Node) (x0, y0, x1, y1 int) {
	b := n.Bounds()
	lo, hi := b.Min, b.Max
	left, top := c.project(cam, lo.X, hi.Y)
	right, bottom := c.project(cam, hi.X, lo.Y)

	x0, x1 = int(math.Round(left)), int(math.Round(right))
	y0, y1 = int(math.Round(top)), int(math.Round(bottom))
	// Small opponent tiles still get a cell
	if x1 == x0 {
		x1 = x0 + 1
	}
	if y1 == y0 {
		y1 = y0 + 1
	}
	return max(x0, 0), max(y0, 0), min(x1, c.cols), min(y1, c.rows)
}

// Render draws nodes back to front as seen through cam.
func (c *Canvas) Render(nodes []*scene.Node, cam *scene.Camera) string {
	if c.cols <= 0 || c.rows <= 0 || cam.Width() <= 0 || cam.Height() <= 0 {
		return ""
	}

	grid := make([][]cell, c.rows)
	for i := range grid {
		grid[i] = make([]cell, c.cols)
	}

	ordered := append([]*scene.Node(nil), nodes...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position.Z < ordered[j].Position.Z
	})

	for _, n := range ordered {
		x0, y0, x1, y1 := c.cellRect(cam, n)
		switch n.Kind {
		case scene.KindBackground:
			c.paintBackground(grid, n, x0, y0, x1, y1)
		default:
			c.paintTile(grid, n, x0, y0, x1, y1)
		}
	}
	return c.flush(grid)
}

func (c *Canvas) paintBackground(grid [][]cell, n *scene.Node, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			color := n.Color
			if n.Texture != nil {
				color = sample(n.Texture, float64(x-x0)/float64(x1-x0), float64(y-y0)/float64(y1-y0))
			}
			grid[y][x] = cell{ch: ' ', bg: color, filled: true}
		}
	}
}

func (c *Canvas) paintTile(grid [][]cell, n *scene.Node, x0, y0, x1, y1 int) {
	bg := n.Color
	if n.Raised {
		bg = raisedColor
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			grid[y][x] = cell{ch: ' ', fg: labelColor, bg: bg, filled: true}
		}
	}

	if !c.labels || n.Seat != layout.Local || y1 <= y0 {
		return
	}
	label := []rune(n.Tile.String())
	if len(label) > x1-x0 {
		return
	}
	row := y0 + (y1-y0)/2
	start := x0 + (x1-x0-len(label))/2
	for i, r := range label {
		grid[row][start+i].ch = r
	}
}

// sample returns the texture colour at (u, v) in [0, 1).
func sample(img image.Image, u, v float64) uint32 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}
	x := b.Min.X + int(u*float64(b.Dx()))
	y := b.Min.Y + int(v*float64(b.Dy()))
	r, g, bl, _ := img.At(x, y).RGBA()
	return (r>>8)<<16 | (g>>8)<<8 | bl>>8
}

func hex(c uint32) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%06x", c&0xffffff))
}

// flush renders the grid row by row, styling runs of identical cells once.
func (c *Canvas) flush(grid [][]cell) string {
	var out strings.Builder
	for y, row := range grid {
		if y > 0 {
			out.WriteByte('\n')
		}
		for x := 0; x < len(row); {
			start := x
			for x < len(row) && row[x].filled == row[start].filled && row[x].fg == row[start].fg && row[x].bg == row[start].bg {
				x++
			}
			var run strings.Builder
			for _, cl := range row[start:x] {
				if cl.ch == 0 {
					run.WriteRune(' ')
				} else {
					run.WriteRune(cl.ch)
				}
			}
			if !row[start].filled {
				out.WriteString(run.String())
				continue
			}
			style := lipgloss.NewStyle().Background(hex(row[start].bg)).Foreground(hex(row[start].fg))
			out.WriteString(style.Render(run.String()))
		}
	}
	return out.String()
}
