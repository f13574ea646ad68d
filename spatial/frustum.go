package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultFOV is the vertical field of view in degrees for landscape views.
	DefaultFOV = 75.0
	// maxFOV caps the widened field of view on tall, narrow viewports.
	maxFOV = 110.0

	DefaultNear = 0.1
	DefaultFar  = 1000.0
)

// Camera is a first-person perspective camera. Yaw turns around +y with zero
// looking toward -z; positive pitch looks up.
type Camera struct {
	Position mgl64.Vec3
	Yaw      float64
	Pitch    float64
	FOV      float64 // FOV is the vertical field of view in degrees.
	Aspect   float64
	Near     float64
	Far      float64
}

// NewCamera returns a camera with the default lens for a width×height viewport.
// An empty viewport keeps a square default lens until SetViewport gets a real size.
func NewCamera(width, height int) Camera {
	c := Camera{FOV: DefaultFOV, Aspect: 1, Near: DefaultNear, Far: DefaultFar}
	c.SetViewport(width, height)
	return c
}

// SetViewport recomputes aspect ratio and field of view. Portrait viewports
// widen the vertical field of view so the horizontal one does not collapse.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float64(width) / float64(height)
	c.FOV = DefaultFOV
	if c.Aspect < 1 {
		half := mgl64.DegToRad(DefaultFOV) / 2
		widened := mgl64.RadToDeg(2 * math.Atan(math.Tan(half)/c.Aspect))
		c.FOV = math.Min(widened, maxFOV)
	}
}

// Forward returns the unit look direction.
func (c Camera) Forward() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	return mgl64.Vec3{-math.Sin(c.Yaw) * cp, math.Sin(c.Pitch), -math.Cos(c.Yaw) * cp}
}

// View returns the world to camera matrix.
func (c Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl64.Vec3{0, 1, 0})
}

// Projection returns the perspective projection matrix.
func (c Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// Frustum returns the view volume of the camera.
func (c Camera) Frustum() Frustum {
	return FrustumFromMatrix(c.Projection().Mul4(c.View()))
}

// Frustum is a view volume bounded by six inward facing planes stored as
// (a, b, c, d) with a unit normal, so a·x + b·y + c·z + d is a signed distance.
type Frustum struct {
	Planes [6]mgl64.Vec4
}

// FrustumFromMatrix extracts the planes of a projection·view matrix.
func FrustumFromMatrix(m mgl64.Mat4) Frustum {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)

	f := Frustum{Planes: [6]mgl64.Vec4{
		r3.Add(r0), // left
		r3.Sub(r0), // right
		r3.Add(r1), // bottom
		r3.Sub(r1), // top
		r3.Add(r2), // near
		r3.Sub(r2), // far
	}}
	for i, p := range f.Planes {
		n := p.Vec3().Len()
		if n > 0 {
			f.Planes[i] = p.Mul(1 / n)
		}
	}
	return f
}

// ContainsPoint reports whether p is inside or on the frustum.
func (f Frustum) ContainsPoint(p mgl64.Vec3) bool {
	for _, pl := range f.Planes {
		if pl.Vec3().Dot(p)+pl.W() < 0 {
			return false
		}
	}
	return true
}

// IntersectsBox reports whether any part of b may be inside the frustum. For
// each plane only the corner furthest along the normal is tested, which can
// keep a few boxes near frustum edges but never drops a visible one.
func (f Frustum) IntersectsBox(b Box) bool {
	for _, pl := range f.Planes {
		corner := b.Min
		if pl.X() > 0 {
			corner[0] = b.Max.X()
		}
		if pl.Y() > 0 {
			corner[1] = b.Max.Y()
		}
		if pl.Z() > 0 {
			corner[2] = b.Max.Z()
		}
		if pl.Vec3().Dot(corner)+pl.W() < 0 {
			return false
		}
	}
	return true
}
