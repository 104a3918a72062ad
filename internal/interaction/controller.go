// Package interaction turns pointer clicks into tile selection.
package interaction

import (
	"github.com/charmbracelet/log"
	"github.com/lox/mahjongtable/internal/geom"
	"github.com/lox/mahjongtable/internal/layout"
	"github.com/lox/mahjongtable/internal/scene"
)

// State is the selection state.
type State int

const (
	Idle   State = iota // no local tile raised
	Raised              // exactly one local tile raised
)

func (s State) String() string {
	if s == Raised {
		return "raised"
	}
	return "idle"
}

// Outcome reports what a click did.
type Outcome int

const (
	Ignored Outcome = iota
	Selected
	Cleared
)

func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Cleared:
		return "cleared"
	default:
		return "ignored"
	}
}

// PointerEvent is a click in window (client) coordinates, origin top-left.
type PointerEvent struct {
	X, Y float64
}

// Picker finds the nodes under a ray, nearest first.
type Picker interface {
	Intersect(r geom.Ray) []scene.Hit
}

// Hands gives access to a seat's tile nodes.
type Hands interface {
	Hand(seat layout.Seat) []*scene.Node
}

// Viewport reports the current window size.
type Viewport interface {
	Size() (width, height int)
}

// NDC converts client coordinates to normalised device coordinates in
// [-1, 1], with Y pointing up.
func NDC(x, y float64, width, height int) (ndcX, ndcY float64) {
	ndcX = x/float64(width)*2 - 1
	ndcY = -(y/float64(height))*2 + 1
	return ndcX, ndcY
}

// Controller drives the Idle/Raised selection state machine.
type Controller struct {
	camera   *scene.Camera
	picker   Picker
	hands    Hands
	viewport Viewport
	logger   *log.Logger

	state    State
	selected *scene.Node
}

// NewController creates a controller in the Idle state.
func NewController(camera *scene.Camera, picker Picker, hands Hands, viewport Viewport, logger *log.Logger) *Controller {
	return &Controller{
		camera:   camera,
		picker:   picker,
		hands:    hands,
		viewport: viewport,
		logger:   logger.WithPrefix("interaction"),
	}
}

// State returns the current selection state.
func (c *Controller) State() State {
	return c.state
}

// Selected returns the raised node, or nil when Idle.
func (c *Controller) Selected() *scene.Node {
	return c.selected
}

// Click handles a pointer click. A local tile under the pointer becomes the
// only raised tile; a click on nothing clears the selection; opponent tiles
// are ignored.
func (c *Controller) Click(ev PointerEvent) Outcome {
	width, height := c.viewport.Size()
	if width <= 0 || height <= 0 {
		return Ignored
	}

	ndcX, ndcY := NDC(ev.X, ev.Y, width, height)
	hits := c.picker.Intersect(c.camera.Ray(ndcX, ndcY))
	if len(hits) == 0 {
		return c.Clear()
	}

	hit := hits[0].Node
	if hit.Seat != layout.Local {
		c.logger.Debug("Ignoring click on opponent tile", "seat", hit.Seat, "tile", hit.Tile)
		return Ignored
	}

	c.raise(hit)
	return Selected
}

func (c *Controller) raise(n *scene.Node) {
	resting := layout.RestingY(c.camera.Frustum)
	for _, other := range c.hands.Hand(layout.Local) {
		other.Position.Y = resting
		other.Raised = false
	}
	n.Position.Y = resting + layout.RaiseDelta
	n.Raised = true

	c.state = Raised
	c.selected = n
	c.logger.Debug("Raised tile", "tile", n.Tile, "id", n.ID)
}

// Clear drops the selection, returning every local tile to the tray line.
// It does nothing while Idle.
func (c *Controller) Clear() Outcome {
	if c.state == Idle {
		return Ignored
	}
	for _, n := range c.hands.Hand(layout.Local) {
		n.Position.Y = layout.TrayY
		n.Raised = false
	}
	c.logger.Debug("Cleared selection", "tile", c.selected.Tile)

	c.state = Idle
	c.selected = nil
	return Cleared
}
