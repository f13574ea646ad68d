// Package spatial turns maze walls into world space boxes, culls them against
// the camera view volume and answers collision queries for the player.
package spatial

import (
	"math"

	"github.com/beka-birhanu/vinom-portfolio/maze"
	"github.com/go-gl/mathgl/mgl64"
)

// Dims holds the world size of maze geometry.
type Dims struct {
	CellSize   float64 // CellSize is the width of a cell and the run length of a wall.
	WallHeight float64
	Thickness  float64
}

// DefaultDims are the dimensions the maze demo is tuned for.
var DefaultDims = Dims{CellSize: 5, WallHeight: 3, Thickness: 0.3}

// Instance is the world transform of one wall: its center and its scale
// applied to a unit cube.
type Instance struct {
	Center mgl64.Vec3
	Scale  mgl64.Vec3
}

// WallTransform computes the transform of the wall on side d of cell c.
// North and south walls run along x, east and west walls along z.
func WallTransform(c maze.Coord, d maze.Direction, dims Dims) Instance {
	cx := float64(c.X) * dims.CellSize
	cz := float64(c.Z) * dims.CellSize
	half := dims.CellSize / 2
	y := dims.WallHeight / 2

	along := mgl64.Vec3{dims.CellSize, dims.WallHeight, dims.Thickness}
	across := mgl64.Vec3{dims.Thickness, dims.WallHeight, dims.CellSize}

	switch d {
	case maze.North:
		return Instance{Center: mgl64.Vec3{cx + half, y, cz}, Scale: along}
	case maze.East:
		return Instance{Center: mgl64.Vec3{cx + dims.CellSize, y, cz + half}, Scale: across}
	case maze.South:
		return Instance{Center: mgl64.Vec3{cx + half, y, cz + dims.CellSize}, Scale: along}
	default:
		return Instance{Center: mgl64.Vec3{cx, y, cz + half}, Scale: across}
	}
}

// Box returns the axis aligned bounds of the wall.
func (i Instance) Box() Box {
	return BoxFromCenter(i.Center, i.Scale)
}

// Matrix composes the instance matrix (translate then scale) for a unit cube.
func (i Instance) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(i.Center.X(), i.Center.Y(), i.Center.Z()).
		Mul4(mgl64.Scale3D(i.Scale.X(), i.Scale.Y(), i.Scale.Z()))
}

// Box is an axis aligned bounding box.
type Box struct {
	Min, Max mgl64.Vec3
}

// BoxFromCenter builds a box of the given size around center.
func BoxFromCenter(center, size mgl64.Vec3) Box {
	half := size.Mul(0.5)
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

// Intersects reports whether the boxes overlap. Touching faces count as an
// intersection.
func (b Box) Intersects(o Box) bool {
	return b.Min.X() <= o.Max.X() && b.Max.X() >= o.Min.X() &&
		b.Min.Y() <= o.Max.Y() && b.Max.Y() >= o.Min.Y() &&
		b.Min.Z() <= o.Max.Z() && b.Max.Z() >= o.Min.Z()
}

// CellOf returns the maze cell containing the world position p.
func CellOf(p mgl64.Vec3, cellSize float64) maze.Coord {
	return maze.Coord{
		X: int(math.Floor(p.X() / cellSize)),
		Z: int(math.Floor(p.Z() / cellSize)),
	}
}

// Collides reports whether box touches any wall of the 3×3 block of cells
// around its center. Cells the layout does not know contribute no walls.
func Collides(l maze.Layout, box Box, dims Dims) bool {
	center := box.Min.Add(box.Max).Mul(0.5)
	home := CellOf(center, dims.CellSize)

	for x := home.X - 1; x <= home.X+1; x++ {
		for z := home.Z - 1; z <= home.Z+1; z++ {
			c := maze.Coord{X: x, Z: z}
			cell, ok := l.CellAt(c)
			if !ok {
				continue
			}
			for _, d := range maze.Directions {
				if cell.HasWall(d) && box.Intersects(WallTransform(c, d, dims).Box()) {
					return true
				}
			}
		}
	}
	return false
}
