package tile

import (
	"fmt"
	"strconv"
)

// Tile geometry shared by every seat before scaling, in world units.
const (
	Width  = 4.0
	Height = 6.0
	Depth  = 1.0
	Gap    = 0.2
)

// Suit represents a tile suit
type Suit int

const (
	Circles Suit = iota + 1
	Bamboo
	Characters
	Honor
)

// String returns the short suit code used in tile notation
func (s Suit) String() string {
	switch s {
	case Circles:
		return "p"
	case Bamboo:
		return "s"
	case Characters:
		return "m"
	case Honor:
		return "z"
	default:
		return "?"
	}
}

// MaxValue returns the highest face value a suit carries
func (s Suit) MaxValue() int {
	if s == Honor {
		return 7
	}
	return 9
}

// Honor values, in deck order.
const (
	East = iota + 1
	South
	West
	North
	Red
	Green
	White
)

var honorCodes = [...]string{"?", "E", "S", "W", "N", "C", "F", "P"}

// Tile is an immutable game piece
type Tile struct {
	Suit  Suit
	Value int
}

// New creates a tile, rejecting suits and values outside the standard set
func New(suit Suit, value int) (Tile, error) {
	t := Tile{Suit: suit, Value: value}
	if err := t.Validate(); err != nil {
		return Tile{}, err
	}
	return t, nil
}

// Validate reports whether the tile exists in a standard set
func (t Tile) Validate() error {
	if t.Suit < Circles || t.Suit > Honor {
		return fmt.Errorf("invalid suit %d", int(t.Suit))
	}
	if t.Value < 1 || t.Value > t.Suit.MaxValue() {
		return fmt.Errorf("invalid value %d for suit %s", t.Value, t.Suit)
	}
	return nil
}

// IsHonor returns true for winds and dragons
func (t Tile) IsHonor() bool {
	return t.Suit == Honor
}

// String returns the tile code (e.g. "5p", "9m", "E")
func (t Tile) String() string {
	if t.IsHonor() {
		if t.Value >= 1 && t.Value < len(honorCodes) {
			return honorCodes[t.Value]
		}
		return "?"
	}
	return strconv.Itoa(t.Value) + t.Suit.String()
}
