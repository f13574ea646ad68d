package maze

// Direction names one of the four sides of a cell.
type Direction uint8

const (
	North Direction = iota // North is toward z-1.
	East                   // East is toward x+1.
	South                  // South is toward z+1.
	West                   // West is toward x-1.
)

// Directions lists the four sides in the order the generator examines them.
var Directions = [4]Direction{North, East, South, West}

// Opposite returns the side a neighbor shares with this side.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the grid offset of the neighbor on this side.
func (d Direction) Delta() (dx, dz int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "unknown"
}

// Coord is a logical grid coordinate.
type Coord struct {
	X int // X is the column, growing east.
	Z int // Z is the row, growing south.
}

// Step returns the coordinate of the neighbor in direction d.
func (c Coord) Step(d Direction) Coord {
	dx, dz := d.Delta()
	return Coord{X: c.X + dx, Z: c.Z + dz}
}

// Cell represents a single cell in a maze grid.
// A wall flag set to true means the wall is present.
type Cell struct {
	North   bool // North indicates whether there is a wall on the north side of the cell.
	East    bool // East indicates whether there is a wall on the east side of the cell.
	South   bool // South indicates whether there is a wall on the south side of the cell.
	West    bool // West indicates whether there is a wall on the west side of the cell.
	Visited bool // Visited is only meaningful while the maze is being generated.
}

// closedCell returns a cell with all four walls present.
func closedCell() Cell {
	return Cell{North: true, East: true, South: true, West: true}
}

// HasWall returns true if there is a wall on side d of the cell.
func (c *Cell) HasWall(d Direction) bool {
	switch d {
	case North:
		return c.North
	case East:
		return c.East
	case South:
		return c.South
	case West:
		return c.West
	}
	return false
}

// SetWall sets the presence of the wall on side d of the cell.
func (c *Cell) SetWall(d Direction, present bool) {
	switch d {
	case North:
		c.North = present
	case East:
		c.East = present
	case South:
		c.South = present
	case West:
		c.West = present
	}
}

// OpenSides counts the sides of the cell without a wall.
func (c *Cell) OpenSides() int {
	open := 0
	for _, d := range Directions {
		if !c.HasWall(d) {
			open++
		}
	}
	return open
}
