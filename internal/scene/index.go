package scene

import (
	"fmt"

	"github.com/lox/mahjongtable/internal/geom"
	"github.com/lox/mahjongtable/internal/layout"
)

// Index maps each seat to its tile nodes in hand order, so relayouts never
// scan the whole scene.
type Index struct {
	hands [len(layout.Seats)][]*Node
}

// NewIndex creates an empty seat index
func NewIndex() *Index {
	return &Index{}
}

// Append records n as the next tile of its seat's hand.
func (ix *Index) Append(n *Node) error {
	if !n.Seat.Valid() {
		return fmt.Errorf("index node %s: %w", n.ID, layout.ErrUnknownSeat)
	}
	ix.hands[n.Seat] = append(ix.hands[n.Seat], n)
	return nil
}

// Hand returns seat's nodes in order. The slice must not be modified.
func (ix *Index) Hand(seat layout.Seat) []*Node {
	if !seat.Valid() {
		return nil
	}
	return ix.hands[seat]
}

// Len returns the number of indexed nodes across all seats.
func (ix *Index) Len() int {
	total := 0
	for _, hand := range ix.hands {
		total += len(hand)
	}
	return total
}

// Layout moves seat's existing nodes to their computed positions. A raised
// node keeps its lift relative to the new resting height.
func (ix *Index) Layout(seat layout.Seat, f geom.Frustum) error {
	hand := ix.Hand(seat)
	positions, err := layout.Place(seat, len(hand), f)
	if err != nil {
		return fmt.Errorf("layout %s: %w", seat, err)
	}
	for i, n := range hand {
		pos := positions[i]
		if n.Raised {
			pos.Y += layout.RaiseDelta
		}
		n.Position = pos
	}
	return nil
}

// LayoutAll repositions every seat's hand.
func (ix *Index) LayoutAll(f geom.Frustum) error {
	for _, seat := range layout.Seats {
		if err := ix.Layout(seat, f); err != nil {
			return err
		}
	}
	return nil
}

// Clear forgets every node. The nodes stay in whatever scene holds them.
func (ix *Index) Clear() {
	for i := range ix.hands {
		ix.hands[i] = nil
	}
}
