package maze

import (
	"math/rand"
	"time"
)

// Rand is the random source used to pick the next neighbor.
// *rand.Rand satisfies it; tests may supply a fixed sequence.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded random source. A zero seed uses the current time,
// so every session gets a fresh maze unless a seed is requested.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Generate creates a size×size perfect maze with the recursive backtracker,
// starting from cell (0,0).
func Generate(size int, rng Rand) (*Grid, error) {
	g, err := NewGrid(size)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(0)
	}

	start := Coord{}
	g.at(start).Visited = true
	backtrack(region{origin: Coord{}, size: size, at: g.at}, start, 1, rng)
	return g, nil
}

// region is a square block of cells the backtracker may carve in.
type region struct {
	origin Coord
	size   int
	at     func(Coord) *Cell
}

func (r region) contains(c Coord) bool {
	return c.X >= r.origin.X && c.X < r.origin.X+r.size &&
		c.Z >= r.origin.Z && c.Z < r.origin.Z+r.size
}

func (r region) cell(c Coord) *Cell {
	if !r.contains(c) {
		return nil
	}
	return r.at(c)
}

// backtrack carves a spanning tree over r. start must already be marked
// visited, and visited counts the cells of r marked so far.
func backtrack(r region, start Coord, visited int, rng Rand) {
	total := r.size * r.size
	cur := start
	stack := make([]Coord, 0, total)
	candidates := make([]Direction, 0, len(Directions))

	for visited < total {
		candidates = candidates[:0]
		for _, d := range Directions {
			if n := r.cell(cur.Step(d)); n != nil && !n.Visited {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) > 0 {
			d := candidates[rng.Intn(len(candidates))]
			next := cur.Step(d)
			nc := r.cell(next)
			openBetween(r.cell(cur), nc, d)
			nc.Visited = true
			visited++

			stack = append(stack, cur)
			cur = next
			continue
		}

		if len(stack) > 0 {
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		// The walk ran dry with cells left over.
		next, ok := r.resume()
		if !ok {
			return
		}
		cur = next
		visited++
	}
}

// resume picks the first unvisited cell that borders a visited one, joins the
// two and marks it visited, so the tree stays connected.
func (r region) resume() (Coord, bool) {
	for z := 0; z < r.size; z++ {
		for x := 0; x < r.size; x++ {
			c := Coord{X: r.origin.X + x, Z: r.origin.Z + z}
			cell := r.cell(c)
			if cell.Visited {
				continue
			}
			for _, d := range Directions {
				if n := r.cell(c.Step(d)); n != nil && n.Visited {
					openBetween(cell, n, d)
					cell.Visited = true
					return c, true
				}
			}
		}
	}
	return Coord{}, false
}
