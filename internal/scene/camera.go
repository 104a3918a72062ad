package scene

import "github.com/lox/mahjongtable/internal/geom"

// CameraZ is how far in front of the table the camera sits.
const CameraZ = 100.0

// Camera is an orthographic camera looking down -Z at the table.
type Camera struct {
	geom.Frustum
	Position geom.Vec3
}

// NewCamera creates a camera at CameraZ with frustum f.
func NewCamera(f geom.Frustum) *Camera {
	return &Camera{Frustum: f, Position: geom.Vec3{Z: CameraZ}}
}

// SetFrustum replaces the visible volume.
func (c *Camera) SetFrustum(f geom.Frustum) {
	c.Frustum = f
}

// Ray returns the picking ray through normalised device coordinates
// (ndcX, ndcY), each in [-1, 1]. It starts on the near plane and is limited
// to the far plane.
func (c *Camera) Ray(ndcX, ndcY float64) geom.Ray {
	x := c.Position.X + c.Left + (ndcX+1)/2*c.Width()
	y := c.Position.Y + c.Bottom + (ndcY+1)/2*c.Height()
	return geom.Ray{
		Origin:    geom.Vec3{X: x, Y: y, Z: c.Position.Z - c.Near},
		Direction: geom.Vec3{Z: -1},
		Length:    c.Far - c.Near,
	}
}

// Project maps a world point to normalised device coordinates.
func (c *Camera) Project(p geom.Vec3) (ndcX, ndcY float64) {
	ndcX = (p.X-c.Position.X-c.Left)/c.Width()*2 - 1
	ndcY = (p.Y-c.Position.Y-c.Bottom)/c.Height()*2 - 1
	return ndcX, ndcY
}
