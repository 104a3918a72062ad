package scene

import (
	"image"

	"github.com/google/uuid"
	"github.com/lox/mahjongtable/internal/geom"
	"github.com/lox/mahjongtable/internal/layout"
	"github.com/lox/mahjongtable/internal/tile"
)

// Kind distinguishes what a node draws.
type Kind int

const (
	KindTile Kind = iota
	KindBackground
)

// BackgroundName is the name the table background node is registered under.
const BackgroundName = "background"

// Node is a drawable box in the scene. Tile nodes are bound 1:1 to a tile
// for the lifetime of the scene.
type Node struct {
	ID       uuid.UUID
	Name     string
	Kind     Kind
	Position geom.Vec3
	Size     geom.Vec3
	Color    uint32

	// Tile nodes only
	Tile   tile.Tile
	Seat   layout.Seat
	Raised bool

	// Background nodes only
	Texture image.Image

	// Pickable nodes take part in ray intersection
	Pickable bool
}

// NewTileNode creates a pickable node for t held by seat.
func NewTileNode(t tile.Tile, seat layout.Seat, pos geom.Vec3) *Node {
	return &Node{
		ID:       uuid.New(),
		Name:     t.String(),
		Kind:     KindTile,
		Position: pos,
		Size:     layout.TileSize(seat),
		Color:    seat.Spec().Color,
		Tile:     t,
		Seat:     seat,
		Pickable: true,
	}
}

// NewBackgroundNode creates the table plane behind every tile.
func NewBackgroundNode(tex image.Image, width, height, z float64) *Node {
	return &Node{
		ID:       uuid.New(),
		Name:     BackgroundName,
		Kind:     KindBackground,
		Position: geom.Vec3{Z: z},
		Size:     geom.Vec3{X: width, Y: height},
		Texture:  tex,
	}
}

// Bounds returns the node's box in world space.
func (n *Node) Bounds() geom.Box {
	return geom.BoxAround(n.Position, n.Size)
}
