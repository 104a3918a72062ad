// Package layout computes where each seat's tiles sit on the table.
//
// Everything here is a pure function of the seat, the number of tiles in the
// hand and the camera frustum, so recomputing a layout after a resize always
// lands on the same positions for the same inputs.
package layout

import (
	"errors"
	"fmt"

	"github.com/lox/mahjongtable/internal/geom"
	"github.com/lox/mahjongtable/internal/tile"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// EdgeMargin separates a hand from its screen edge.
	EdgeMargin = 1.0
	// TileZ is the depth every tile is placed at.
	TileZ = 0.0
	// RaiseDelta is how far a selected local tile lifts above its resting height.
	RaiseDelta = 0.5
	// TrayY is where local tiles return after a click that selects nothing.
	TrayY = -10.0
)

var (
	ErrMalformedHand = errors.New("malformed hand")
	ErrUnknownSeat   = errors.New("unknown seat")
)

func checkSeat(seat Seat) error {
	if !seat.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownSeat, int(seat))
	}
	return nil
}

func checkCount(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d tiles", ErrMalformedHand, n)
	}
	return nil
}

// TileWidth returns a tile's X size for seat. Column seats lie their tiles
// on the side, so width and height swap. Invalid seats have zero-sized
// tiles.
func TileWidth(seat Seat) float64 {
	spec := seat.Spec()
	if spec.Orientation == Column {
		return tile.Height * spec.Scale
	}
	return tile.Width * spec.Scale
}

// TileHeight returns a tile's Y size for seat.
func TileHeight(seat Seat) float64 {
	spec := seat.Spec()
	if spec.Orientation == Column {
		return tile.Width * spec.Scale
	}
	return tile.Height * spec.Scale
}

// TileSize returns the box size of a tile drawn for seat.
func TileSize(seat Seat) geom.Vec3 {
	return geom.Vec3{X: TileWidth(seat), Y: TileHeight(seat), Z: tile.Depth}
}

// Dimension returns a tile's size along the axis the seat's hand runs.
func Dimension(seat Seat) float64 {
	if seat.Spec().Orientation == Column {
		return TileHeight(seat)
	}
	return TileWidth(seat)
}

// thickness is a tile's size across the hand's axis.
func thickness(seat Seat) float64 {
	if seat.Spec().Orientation == Column {
		return TileWidth(seat)
	}
	return TileHeight(seat)
}

// HandExtent returns the footprint of n tiles along the seat's axis.
func HandExtent(seat Seat, n int) (float64, error) {
	if err := checkSeat(seat); err != nil {
		return 0, err
	}
	if err := checkCount(n); err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	return Dimension(seat)*float64(n) + tile.Gap*float64(n-1), nil
}

// BaseLine returns the pinned coordinate of a seat's hand: Y for rows, X
// for columns. For the local seat this is the resting height. It is 0 for
// an invalid seat.
func BaseLine(seat Seat, f geom.Frustum) float64 {
	if !seat.Valid() {
		return 0
	}
	spec := seat.Spec()
	inset := thickness(seat)/2 + EdgeMargin + spec.SideMargin
	switch spec.Edge {
	case EdgeBottom:
		return f.Bottom + inset
	case EdgeTop:
		return f.Top - inset
	case EdgeLeft:
		return f.Left + inset
	default:
		return f.Right - inset
	}
}

// RestingY returns the Y a local tile sits at when not raised.
func RestingY(f geom.Frustum) float64 {
	return BaseLine(Local, f)
}

// Origin returns the centre of the first tile of an n-tile hand.
func Origin(seat Seat, n int, f geom.Frustum) (geom.Vec3, error) {
	extent, err := HandExtent(seat, n)
	if err != nil {
		return geom.Vec3{}, err
	}

	along := -extent/2 + Dimension(seat)/2
	across := BaseLine(seat, f)
	if seat.Spec().Orientation == Column {
		return geom.Vec3{X: across, Y: along, Z: TileZ}, nil
	}
	return geom.Vec3{X: along, Y: across, Z: TileZ}, nil
}

// Place returns the centre of each tile of an n-tile hand, first to last.
func Place(seat Seat, n int, f geom.Frustum) ([]geom.Vec3, error) {
	origin, err := Origin(seat, n, f)
	if err != nil {
		return nil, err
	}

	step := geom.Vec3{X: Dimension(seat) + tile.Gap}
	if seat.Spec().Orientation == Column {
		step = geom.Vec3{Y: Dimension(seat) + tile.Gap}
	}

	positions := make([]geom.Vec3, n)
	for i := range positions {
		positions[i] = r3.Add(origin, r3.Scale(float64(i), step))
	}
	return positions, nil
}
