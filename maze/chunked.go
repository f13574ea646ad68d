package maze

// ChunkKey identifies a chunk of a Chunked maze.
type ChunkKey struct {
	X, Z int
}

// Spawn is the cell reserved for the player in the home chunk.
var Spawn = Coord{}

// Chunked is an unbounded maze generated lazily, one square chunk at a time.
// Cells only ever get added.
type Chunked struct {
	chunkSize int
	rng       Rand
	cells     map[Coord]*Cell
	chunks    map[ChunkKey]struct{}
}

// NewChunked returns an empty chunked maze. Chunks must be at least 2×2 so the
// home chunk can hold the spawn cell and a generation start next to it.
func NewChunked(chunkSize int, rng Rand) (*Chunked, error) {
	if chunkSize < 2 || chunkSize > maxGridSize {
		return nil, ErrInvalidChunkSize
	}
	if rng == nil {
		rng = NewRand(0)
	}

	return &Chunked{
		chunkSize: chunkSize,
		rng:       rng,
		cells:     make(map[Coord]*Cell),
		chunks:    make(map[ChunkKey]struct{}),
	}, nil
}

// ChunkSize returns the side length of a chunk in cells.
func (m *Chunked) ChunkSize() int {
	return m.chunkSize
}

// ChunkOf returns the chunk that contains c.
func (m *Chunked) ChunkOf(c Coord) ChunkKey {
	return ChunkKey{X: floorDiv(c.X, m.chunkSize), Z: floorDiv(c.Z, m.chunkSize)}
}

// Generated reports whether chunk k exists.
func (m *Chunked) Generated(k ChunkKey) bool {
	_, ok := m.chunks[k]
	return ok
}

// ChunkCount returns the number of generated chunks.
func (m *Chunked) ChunkCount() int {
	return len(m.chunks)
}

// CellAt implements Layout. Cells of chunks not generated yet are unknown.
func (m *Chunked) CellAt(c Coord) (Cell, bool) {
	cell, ok := m.cells[c]
	if !ok {
		return Cell{}, false
	}
	return *cell, true
}

// Reveal generates every chunk overlapping the square of cells within radius
// of center and returns how many chunks were created.
func (m *Chunked) Reveal(center Coord, radius int) int {
	lo := m.ChunkOf(Coord{X: center.X - radius, Z: center.Z - radius})
	hi := m.ChunkOf(Coord{X: center.X + radius, Z: center.Z + radius})

	created := 0
	for cz := lo.Z; cz <= hi.Z; cz++ {
		for cx := lo.X; cx <= hi.X; cx++ {
			if m.EnsureChunk(ChunkKey{X: cx, Z: cz}) {
				created++
			}
		}
	}
	return created
}

// EnsureChunk generates chunk k if it does not exist yet and stitches it to
// each generated neighbor chunk. It returns true if the chunk was created.
func (m *Chunked) EnsureChunk(k ChunkKey) bool {
	if m.Generated(k) {
		return false
	}

	origin := m.origin(k)
	for z := 0; z < m.chunkSize; z++ {
		for x := 0; x < m.chunkSize; x++ {
			cell := closedCell()
			m.cells[Coord{X: origin.X + x, Z: origin.Z + z}] = &cell
		}
	}
	m.chunks[k] = struct{}{}

	r := region{origin: origin, size: m.chunkSize, at: m.at}
	start, visited := origin, 1
	if k == m.ChunkOf(Spawn) {
		// The spawn cell is settled before the walk and hangs off the start
		// cell as a leaf, so the walk never disturbs it.
		start = Spawn.Step(East)
		if !r.contains(start) {
			start = Spawn.Step(West)
		}
		m.at(Spawn).Visited = true
		openBetween(m.at(Spawn), m.at(start), directionTo(Spawn, start))
		visited = 2
	}
	m.at(start).Visited = true
	backtrack(r, start, visited, m.rng)

	for _, d := range Directions {
		dx, dz := d.Delta()
		if m.Generated(ChunkKey{X: k.X + dx, Z: k.Z + dz}) {
			m.stitch(k, d)
		}
	}
	return true
}

// stitch opens one randomly chosen wall on the border chunk k shares with
// its neighbor in direction d.
func (m *Chunked) stitch(k ChunkKey, d Direction) Coord {
	origin := m.origin(k)
	offset := m.rng.Intn(m.chunkSize)
	last := m.chunkSize - 1

	var c Coord
	switch d {
	case North:
		c = Coord{X: origin.X + offset, Z: origin.Z}
	case South:
		c = Coord{X: origin.X + offset, Z: origin.Z + last}
	case East:
		c = Coord{X: origin.X + last, Z: origin.Z + offset}
	case West:
		c = Coord{X: origin.X, Z: origin.Z + offset}
	}

	openBetween(m.at(c), m.at(c.Step(d)), d)
	return c
}

func (m *Chunked) origin(k ChunkKey) Coord {
	return Coord{X: k.X * m.chunkSize, Z: k.Z * m.chunkSize}
}

func (m *Chunked) at(c Coord) *Cell {
	return m.cells[c]
}

// directionTo returns the side of a that faces its neighbor b.
func directionTo(a, b Coord) Direction {
	for _, d := range Directions {
		if a.Step(d) == b {
			return d
		}
	}
	return North
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
