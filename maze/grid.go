/*
Package maze provides perfect maze generation for the first-person maze demo.

A perfect maze has exactly one path between any two cells. Mazes are produced
with a randomized depth-first search (recursive backtracker) that carves
passages by clearing the shared wall on both sides of a pair of cells.

Two layouts are offered: Grid, a dense square grid generated once, and
Chunked, a sparse maze that grows chunk by chunk and stitches each new chunk
to its already generated neighbors.
*/
package maze

import (
	"errors"
	"strings"
)

const (
	maxGridSize = 256
)

var (
	ErrInvalidSize      = errors.New("invalid maze size")
	ErrInvalidChunkSize = errors.New("invalid chunk size")
)

// Grid is a dense square maze of Size×Size cells.
type Grid struct {
	Size  int    // Size is the side length of the grid in cells.
	cells []Cell // cells is stored row by row (z major).
}

// NewGrid returns a size×size grid with every wall present.
// Use Generate to get a carved maze.
func NewGrid(size int) (*Grid, error) {
	if size < 1 || size > maxGridSize {
		return nil, ErrInvalidSize
	}

	cells := make([]Cell, size*size)
	for i := range cells {
		cells[i] = closedCell()
	}
	return &Grid{Size: size, cells: cells}, nil
}

// InBounds reports whether c lies in [0, Size) on both axes.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Size && c.Z >= 0 && c.Z < g.Size
}

// CellAt implements Layout.
func (g *Grid) CellAt(c Coord) (Cell, bool) {
	if !g.InBounds(c) {
		return Cell{}, false
	}
	return g.cells[c.Z*g.Size+c.X], true
}

func (g *Grid) at(c Coord) *Cell {
	if !g.InBounds(c) {
		return nil
	}
	return &g.cells[c.Z*g.Size+c.X]
}

// Carve removes the wall between c and its neighbor in direction d on both
// sides. It returns false when either cell is outside the grid.
func (g *Grid) Carve(c Coord, d Direction) bool {
	from, to := g.at(c), g.at(c.Step(d))
	if from == nil || to == nil {
		return false
	}
	openBetween(from, to, d)
	return true
}

// WallTowards reports whether the wall on side d of c is present.
// Out of range coordinates have no walls.
func (g *Grid) WallTowards(c Coord, d Direction) bool {
	return HasWall(g, c, d)
}

// Passages counts the interior walls that have been removed. A perfect maze
// over Size² cells has exactly Size²-1 of them.
func (g *Grid) Passages() int {
	count := 0
	for z := 0; z < g.Size; z++ {
		for x := 0; x < g.Size; x++ {
			c := Coord{X: x, Z: z}
			// East and south cover every interior wall once.
			if x+1 < g.Size && !g.WallTowards(c, East) {
				count++
			}
			if z+1 < g.Size && !g.WallTowards(c, South) {
				count++
			}
		}
	}
	return count
}

// String provides a textual representation of the maze, north at the top.
func (g *Grid) String() string {
	var b strings.Builder

	b.WriteString("+")
	for x := 0; x < g.Size; x++ {
		if g.WallTowards(Coord{X: x, Z: 0}, North) {
			b.WriteString("---+")
		} else {
			b.WriteString("   +")
		}
	}
	b.WriteString("\n")

	for z := 0; z < g.Size; z++ {
		if g.WallTowards(Coord{X: 0, Z: z}, West) {
			b.WriteString("|")
		} else {
			b.WriteString(" ")
		}
		for x := 0; x < g.Size; x++ {
			if g.WallTowards(Coord{X: x, Z: z}, East) {
				b.WriteString("   |")
			} else {
				b.WriteString("    ")
			}
		}
		b.WriteString("\n")

		b.WriteString("+")
		for x := 0; x < g.Size; x++ {
			if g.WallTowards(Coord{X: x, Z: z}, South) {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// openBetween clears the wall on side d of from and the matching side of to.
func openBetween(from, to *Cell, d Direction) {
	from.SetWall(d, false)
	to.SetWall(d.Opposite(), false)
}
