// Package viewport keeps the camera, render surface, background and hands in
// step with the window size.
package viewport

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/mahjongtable/internal/geom"
	"github.com/lox/mahjongtable/internal/scene"
)

const (
	// DefaultFrustumSize is the vertical extent of the view in world units.
	DefaultFrustumSize = 40.0
	// BackgroundZ is the depth of the table background plane.
	BackgroundZ = -10.0

	near = 0.1
	far  = 1000.0
)

// ErrInvalidViewport is returned for non-positive window sizes.
var ErrInvalidViewport = errors.New("invalid viewport size")

// Surface is the render target resized alongside the camera.
type Surface interface {
	SetSize(width, height int)
}

// Backdrop finds named nodes in the scene.
type Backdrop interface {
	Lookup(name string) *scene.Node
}

// Layouter repositions every hand for a frustum.
type Layouter interface {
	LayoutAll(f geom.Frustum) error
}

// FrustumFor returns the centred orthographic frustum for a width x height
// window with a fixed vertical extent of size.
func FrustumFor(width, height int, size float64) (geom.Frustum, error) {
	if width <= 0 || height <= 0 {
		return geom.Frustum{}, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}
	aspect := float64(width) / float64(height)
	return geom.Frustum{
		Left:   -size * aspect / 2,
		Right:  size * aspect / 2,
		Top:    size / 2,
		Bottom: -size / 2,
		Near:   near,
		Far:    far,
	}, nil
}

// Adapter applies window resizes to the camera and everything laid out
// against it.
type Adapter struct {
	camera   *scene.Camera
	surface  Surface
	backdrop Backdrop
	hands    Layouter
	size     float64
	logger   *log.Logger

	width, height int
}

// NewAdapter creates an adapter. surface may be nil when nothing is drawn.
func NewAdapter(camera *scene.Camera, surface Surface, backdrop Backdrop, hands Layouter, size float64, logger *log.Logger) *Adapter {
	if size <= 0 {
		size = DefaultFrustumSize
	}
	return &Adapter{
		camera:   camera,
		surface:  surface,
		backdrop: backdrop,
		hands:    hands,
		size:     size,
		logger:   logger.WithPrefix("viewport"),
	}
}

// Size returns the last applied window size.
func (a *Adapter) Size() (width, height int) {
	return a.width, a.height
}

// Resize recomputes the frustum for a width x height window and re-places
// the background and every hand. Invalid sizes leave all state untouched.
func (a *Adapter) Resize(width, height int) error {
	f, err := FrustumFor(width, height, a.size)
	if err != nil {
		return err
	}

	a.width, a.height = width, height
	a.camera.SetFrustum(f)
	if a.surface != nil {
		a.surface.SetSize(width, height)
	}

	if bg := a.backdrop.Lookup(scene.BackgroundName); bg != nil {
		a.FitBackground(bg)
	}

	if err := a.hands.LayoutAll(f); err != nil {
		return fmt.Errorf("relayout after resize: %w", err)
	}

	a.logger.Debug("Resized viewport",
		"width", width,
		"height", height,
		"left", f.Left,
		"right", f.Right)
	return nil
}

// FitBackground stretches bg over the current frustum.
func (a *Adapter) FitBackground(bg *scene.Node) {
	f := a.camera.Frustum
	bg.Size = geom.Vec3{X: f.Width(), Y: f.Height()}
	bg.Position = geom.Vec3{Z: BackgroundZ}
}
