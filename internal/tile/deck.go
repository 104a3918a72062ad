package tile

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// Copies is the number of identical tiles per face in a standard set.
const Copies = 4

// DeckSize is the number of tiles NewDeck produces.
const DeckSize = (3*9 + 7) * Copies

// ErrDeckExhausted is returned when a deal asks for more tiles than remain.
var ErrDeckExhausted = errors.New("not enough tiles in deck")

// ErrInvalidDeal is returned for a negative hand count or hand size.
var ErrInvalidDeal = errors.New("invalid deal")

// NewDeck creates the full ordered 136-tile set: suit-major, then value,
// then copy index.
func NewDeck() []Tile {
	tiles := make([]Tile, 0, DeckSize)
	for suit := Circles; suit <= Honor; suit++ {
		for value := 1; value <= suit.MaxValue(); value++ {
			for range Copies {
				tiles = append(tiles, Tile{Suit: suit, Value: value})
			}
		}
	}
	return tiles
}

// Shuffle randomizes tiles in place with Fisher-Yates.
func Shuffle(tiles []Tile, rng *rand.Rand) {
	for i := len(tiles) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		tiles[i], tiles[j] = tiles[j], tiles[i]
	}
}

// Deal slices hands consecutive hands of handSize tiles off the front of
// deck. The returned hands do not alias deck; rest does.
func Deal(deck []Tile, hands, handSize int) ([][]Tile, []Tile, error) {
	if hands < 0 || handSize < 0 {
		return nil, nil, fmt.Errorf("%w: %d x %d", ErrInvalidDeal, hands, handSize)
	}
	need := hands * handSize
	if need > len(deck) {
		return nil, nil, fmt.Errorf("deal %d x %d from %d tiles: %w", hands, handSize, len(deck), ErrDeckExhausted)
	}

	dealt := make([][]Tile, hands)
	for i := range dealt {
		start := i * handSize
		dealt[i] = append([]Tile(nil), deck[start:start+handSize]...)
	}
	return dealt, deck[need:], nil
}
