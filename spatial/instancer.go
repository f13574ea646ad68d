package spatial

import (
	"github.com/beka-birhanu/vinom-portfolio/maze"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultRenderDistance = 8
	DefaultMaxInstances   = 2000
)

// Instancer collects the walls around the player that fall inside the view
// volume, up to a fixed number of instances per frame.
type Instancer struct {
	Dims           Dims
	RenderDistance int // RenderDistance is the radius in cells scanned around the player.
	MaxInstances   int

	buf []Instance
}

// NewInstancer returns an instancer with the default limits.
func NewInstancer(dims Dims) *Instancer {
	return &Instancer{
		Dims:           dims,
		RenderDistance: DefaultRenderDistance,
		MaxInstances:   DefaultMaxInstances,
	}
}

// Visible recomputes the visible walls for one frame. The returned slice is
// reused by the next call.
func (in *Instancer) Visible(l maze.Layout, pos mgl64.Vec3, f Frustum) []Instance {
	if cap(in.buf) < in.MaxInstances {
		in.buf = make([]Instance, 0, in.MaxInstances)
	}
	out := in.buf[:0]
	if in.MaxInstances <= 0 {
		return out
	}

	home := CellOf(pos, in.Dims.CellSize)
	r := in.RenderDistance
	for x := home.X - r; x <= home.X+r; x++ {
		for z := home.Z - r; z <= home.Z+r; z++ {
			c := maze.Coord{X: x, Z: z}
			cell, ok := l.CellAt(c)
			if !ok {
				continue
			}
			for _, d := range maze.Directions {
				if !cell.HasWall(d) {
					continue
				}
				w := WallTransform(c, d, in.Dims)
				if !f.IntersectsBox(w.Box()) {
					continue
				}
				out = append(out, w)
				if len(out) >= in.MaxInstances {
					in.buf = out
					return out
				}
			}
		}
	}

	in.buf = out
	return out
}
