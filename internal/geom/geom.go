// Package geom holds the small vector and volume types shared by the layout
// engine, the scene graph and the renderer. Points and boxes are gonum's r3
// types; this package adds the camera volume and ray picking on top.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon is the tolerance used when comparing world coordinates.
const Epsilon = 1e-9

// Vec3 is a point or direction in world space.
type Vec3 = r3.Vec

// Box is an axis-aligned box given by its lowest and highest corners.
type Box = r3.Box

// ApproxEqual reports whether a and b differ by less than Epsilon per axis.
func ApproxEqual(a, b Vec3) bool {
	d := r3.Sub(a, b)
	return math.Abs(d.X) < Epsilon && math.Abs(d.Y) < Epsilon && math.Abs(d.Z) < Epsilon
}

// BoxAround returns the box of the given full size centred on center.
func BoxAround(center, size Vec3) Box {
	half := r3.Scale(0.5, size)
	return Box{Min: r3.Sub(center, half), Max: r3.Add(center, half)}
}

// Frustum is the visible volume of an orthographic camera.
type Frustum struct {
	Left, Right, Top, Bottom float64
	Near, Far                float64
}

// Width returns the horizontal extent.
func (f Frustum) Width() float64 { return f.Right - f.Left }

// Height returns the vertical extent.
func (f Frustum) Height() float64 { return f.Top - f.Bottom }

// Ray is a half-line starting at Origin. Length bounds how far hits count;
// zero means unbounded.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Length    float64
}

// At returns the point t units along the ray.
func (r Ray) At(t float64) Vec3 {
	return r3.Add(r.Origin, r3.Scale(t, r.Direction))
}

// Intersect returns the distance along r to the first point inside b using
// the slab method. ok is false when the ray misses or the box is behind it.
func Intersect(b Box, r Ray) (t float64, ok bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)

	slab := func(origin, dir, lo, hi float64) bool {
		if math.Abs(dir) < Epsilon {
			return origin >= lo && origin <= hi
		}
		t1 := (lo - origin) / dir
		t2 := (hi - origin) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		return tmin <= tmax
	}

	if !slab(r.Origin.X, r.Direction.X, b.Min.X, b.Max.X) ||
		!slab(r.Origin.Y, r.Direction.Y, b.Min.Y, b.Max.Y) ||
		!slab(r.Origin.Z, r.Direction.Z, b.Min.Z, b.Max.Z) {
		return 0, false
	}
	if tmax < 0 {
		return 0, false
	}

	t = tmin
	if t < 0 {
		// Origin is inside the box
		t = 0
	}
	if r.Length > 0 && t > r.Length {
		return 0, false
	}
	return t, true
}
