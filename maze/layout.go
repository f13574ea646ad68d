package maze

// Layout is the read side of a maze shared by the fixed grid and the
// chunked variant. CellAt reports false for coordinates outside the grid or
// in chunks that were never generated; callers treat those as open space.
type Layout interface {
	CellAt(c Coord) (Cell, bool)
}

// HasWall reports whether the cell at c has a wall on side d.
// Unknown cells have no walls.
func HasWall(l Layout, c Coord, d Direction) bool {
	cell, ok := l.CellAt(c)
	return ok && cell.HasWall(d)
}

// Passable reports whether a walker can step from c in direction d.
// Both cells must exist and the shared wall must be open on both sides.
func Passable(l Layout, c Coord, d Direction) bool {
	from, ok := l.CellAt(c)
	if !ok || from.HasWall(d) {
		return false
	}
	to, ok := l.CellAt(c.Step(d))
	return ok && !to.HasWall(d.Opposite())
}

// Reachable runs a breadth-first traversal from start through open walls and
// returns every coordinate it visits, start included.
func Reachable(l Layout, start Coord) map[Coord]struct{} {
	seen := map[Coord]struct{}{}
	if _, ok := l.CellAt(start); !ok {
		return seen
	}

	seen[start] = struct{}{}
	queue := []Coord{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
			if !Passable(l, cur, d) {
				continue
			}
			next := cur.Step(d)
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return seen
}
