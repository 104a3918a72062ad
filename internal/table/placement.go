package table

import (
	"github.com/lox/mahjongtable/internal/layout"
)

// Placement is the exported position of one tile node.
type Placement struct {
	Seat   string  `json:"seat"`
	Index  int     `json:"index"`
	Tile   string  `json:"tile"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Raised bool    `json:"raised,omitempty"`
}

// Placements lists every tile node, seat by seat in deal order.
func (t *Table) Placements() []Placement {
	out := make([]Placement, 0, t.index.Len())
	for _, seat := range layout.Seats {
		for i, n := range t.index.Hand(seat) {
			out = append(out, Placement{
				Seat:   seat.String(),
				Index:  i,
				Tile:   n.Tile.String(),
				X:      n.Position.X,
				Y:      n.Position.Y,
				Z:      n.Position.Z,
				Width:  n.Size.X,
				Height: n.Size.Y,
				Raised: n.Raised,
			})
		}
	}
	return out
}
