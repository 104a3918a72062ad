package layout

import "fmt"

// Seat identifies one of the four hand positions around the table.
type Seat int

const (
	Local Seat = iota
	Across
	Left
	Right
)

// Seats lists every seat in deal order.
var Seats = [...]Seat{Local, Across, Left, Right}

// Edge is the screen edge a seat's hand is pinned to.
type Edge int

const (
	EdgeBottom Edge = iota
	EdgeTop
	EdgeLeft
	EdgeRight
)

// Orientation is the axis a hand runs along.
type Orientation int

const (
	Row    Orientation = iota // along X
	Column                    // along Y
)

// SeatSpec is the per-seat layout data.
type SeatSpec struct {
	Name        string
	Edge        Edge
	Orientation Orientation
	Scale       float64
	SideMargin  float64 // extra inset so columns clear the top and bottom hands
	Color       uint32  // 0xRRGGBB
}

var seatSpecs = [...]SeatSpec{
	Local:  {Name: "local", Edge: EdgeBottom, Orientation: Row, Scale: 1.0, Color: 0x0000ff},
	Across: {Name: "across", Edge: EdgeTop, Orientation: Row, Scale: 0.3, Color: 0x00ff00},
	Left:   {Name: "left", Edge: EdgeLeft, Orientation: Column, Scale: 0.3, SideMargin: 20, Color: 0xff0000},
	Right:  {Name: "right", Edge: EdgeRight, Orientation: Column, Scale: 0.3, SideMargin: 20, Color: 0xffff00},
}

// Valid reports whether s is one of the four seats.
func (s Seat) Valid() bool {
	return s >= Local && s <= Right
}

// Spec returns the layout data for s, or the zero SeatSpec (scale 0) for
// an invalid seat.
func (s Seat) Spec() SeatSpec {
	if !s.Valid() {
		return SeatSpec{}
	}
	return seatSpecs[s]
}

// String returns the seat name
func (s Seat) String() string {
	if !s.Valid() {
		return fmt.Sprintf("seat(%d)", int(s))
	}
	return seatSpecs[s].Name
}

// ParseSeat resolves a seat by name.
func ParseSeat(name string) (Seat, error) {
	for _, s := range Seats {
		if seatSpecs[s].Name == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSeat, name)
}
