package spatial

import (
	"math"
	"testing"

	"github.com/beka-birhanu/vinom-portfolio/maze"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openLayout is a size×size area of cells with no walls at all.
type openLayout int

func (n openLayout) CellAt(c maze.Coord) (maze.Cell, bool) {
	size := int(n)
	if c.X < 0 || c.Z < 0 || c.X >= size || c.Z >= size {
		return maze.Cell{}, false
	}
	return maze.Cell{}, true
}

// closedLayout is a size×size area where every cell keeps all four walls.
type closedLayout int

func (n closedLayout) CellAt(c maze.Coord) (maze.Cell, bool) {
	size := int(n)
	if c.X < 0 || c.Z < 0 || c.X >= size || c.Z >= size {
		return maze.Cell{}, false
	}
	return maze.Cell{North: true, East: true, South: true, West: true}, true
}

func TestWallTransform(t *testing.T) {
	c := maze.Coord{X: 2, Z: 3}
	tests := []struct {
		dir    maze.Direction
		center mgl64.Vec3
		scale  mgl64.Vec3
	}{
		{maze.North, mgl64.Vec3{12.5, 1.5, 15}, mgl64.Vec3{5, 3, 0.3}},
		{maze.East, mgl64.Vec3{15, 1.5, 17.5}, mgl64.Vec3{0.3, 3, 5}},
		{maze.South, mgl64.Vec3{12.5, 1.5, 20}, mgl64.Vec3{5, 3, 0.3}},
		{maze.West, mgl64.Vec3{10, 1.5, 17.5}, mgl64.Vec3{0.3, 3, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			w := WallTransform(c, tt.dir, DefaultDims)
			assert.True(t, w.Center.ApproxEqual(tt.center), "center %v", w.Center)
			assert.True(t, w.Scale.ApproxEqual(tt.scale), "scale %v", w.Scale)
		})
	}

	t.Run("shared walls coincide", func(t *testing.T) {
		a := WallTransform(c, maze.East, DefaultDims)
		b := WallTransform(c.Step(maze.East), maze.West, DefaultDims)
		assert.True(t, a.Center.ApproxEqual(b.Center))
	})
}

func TestInstance_Matrix(t *testing.T) {
	w := WallTransform(maze.Coord{}, maze.North, DefaultDims)
	m := w.Matrix()

	// The unit cube corner (0.5, 0.5, 0.5) lands on the box max corner.
	corner := m.Mul4x1(mgl64.Vec4{0.5, 0.5, 0.5, 1}).Vec3()
	assert.True(t, corner.ApproxEqual(w.Box().Max), "corner %v", corner)
}

func TestBox_Intersects(t *testing.T) {
	a := Box{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}

	assert.True(t, a.Intersects(Box{Min: mgl64.Vec3{0.5, 0.5, 0.5}, Max: mgl64.Vec3{2, 2, 2}}))
	assert.True(t, a.Intersects(Box{Min: mgl64.Vec3{1, 0, 0}, Max: mgl64.Vec3{2, 1, 1}}), "touching faces intersect")
	assert.False(t, a.Intersects(Box{Min: mgl64.Vec3{1.01, 0, 0}, Max: mgl64.Vec3{2, 1, 1}}))
	assert.False(t, a.Intersects(Box{Min: mgl64.Vec3{0, 0, -3}, Max: mgl64.Vec3{1, 1, -0.5}}))
}

func TestCellOf(t *testing.T) {
	assert.Equal(t, maze.Coord{X: 0, Z: 0}, CellOf(mgl64.Vec3{2.5, 1, 2.5}, 5))
	assert.Equal(t, maze.Coord{X: 5, Z: 5}, CellOf(mgl64.Vec3{25, 1, 29.9}, 5))
	assert.Equal(t, maze.Coord{X: -1, Z: 0}, CellOf(mgl64.Vec3{-0.1, 1, 0}, 5))
}

func TestCollides(t *testing.T) {
	size := mgl64.Vec3{0.5, 2, 0.5}

	t.Run("centre of a closed cell is free", func(t *testing.T) {
		box := BoxFromCenter(mgl64.Vec3{27.5, 1, 27.5}, size)
		assert.False(t, Collides(closedLayout(10), box, DefaultDims))
	})

	t.Run("touching a wall collides", func(t *testing.T) {
		box := BoxFromCenter(mgl64.Vec3{25.3, 1, 27.5}, size)
		assert.True(t, Collides(closedLayout(10), box, DefaultDims))
	})

	t.Run("open cells never collide", func(t *testing.T) {
		box := BoxFromCenter(mgl64.Vec3{25, 1, 25}, size)
		assert.False(t, Collides(openLayout(10), box, DefaultDims))
	})

	t.Run("outside the grid has no walls", func(t *testing.T) {
		box := BoxFromCenter(mgl64.Vec3{-20, 1, -20}, size)
		assert.False(t, Collides(closedLayout(10), box, DefaultDims))
	})
}

func TestCamera(t *testing.T) {
	t.Run("forward follows yaw and pitch", func(t *testing.T) {
		c := Camera{}
		f := c.Forward()
		assert.InDelta(t, 0, f.X(), 1e-9)
		assert.InDelta(t, 0, f.Y(), 1e-9)
		assert.InDelta(t, -1, f.Z(), 1e-9)

		c.Yaw = math.Pi / 2
		f = c.Forward()
		assert.InDelta(t, -1, f.X(), 1e-9)
		assert.InDelta(t, 0, f.Y(), 1e-9)
		assert.InDelta(t, 0, f.Z(), 1e-9)

		c.Yaw, c.Pitch = 0, math.Pi/4
		f = c.Forward()
		assert.InDelta(t, 1, f.Len(), 1e-9)
		assert.Greater(t, f.Y(), 0.0)
	})

	t.Run("empty viewport keeps a usable lens", func(t *testing.T) {
		c := NewCamera(0, 0)
		assert.Equal(t, DefaultFOV, c.FOV)
		assert.Equal(t, 1.0, c.Aspect)

		m := c.Projection().Mul4(c.View())
		for _, v := range m {
			require.False(t, math.IsNaN(v))
		}
		f := c.Frustum()
		assert.True(t, f.ContainsPoint(mgl64.Vec3{0, 0, -5}))
		assert.False(t, f.ContainsPoint(mgl64.Vec3{0, 0, 5}))

		c.SetViewport(800, 600)
		c.SetViewport(-1, 0)
		assert.InDelta(t, 800.0/600.0, c.Aspect, 1e-9)
	})

	t.Run("landscape keeps the default fov", func(t *testing.T) {
		c := NewCamera(1600, 900)
		assert.InDelta(t, 16.0/9.0, c.Aspect, 1e-9)
		assert.Equal(t, DefaultFOV, c.FOV)
	})

	t.Run("portrait widens the fov", func(t *testing.T) {
		c := NewCamera(900, 1600)
		assert.Greater(t, c.FOV, DefaultFOV)
		assert.LessOrEqual(t, c.FOV, maxFOV)
	})

	t.Run("empty viewport is ignored", func(t *testing.T) {
		c := NewCamera(800, 600)
		c.SetViewport(0, 600)
		assert.InDelta(t, 800.0/600.0, c.Aspect, 1e-9)
	})
}

func TestFrustum(t *testing.T) {
	c := NewCamera(800, 600)
	c.Position = mgl64.Vec3{0, 1, 0}
	f := c.Frustum()

	for _, pl := range f.Planes {
		assert.InDelta(t, 1, pl.Vec3().Len(), 1e-9)
	}

	assert.True(t, f.ContainsPoint(mgl64.Vec3{0, 1, -10}))
	assert.False(t, f.ContainsPoint(mgl64.Vec3{0, 1, 10}), "behind the camera")
	assert.False(t, f.ContainsPoint(mgl64.Vec3{0, 1, -2000}), "past the far plane")

	ahead := BoxFromCenter(mgl64.Vec3{0, 1, -10}, mgl64.Vec3{1, 1, 1})
	behind := BoxFromCenter(mgl64.Vec3{0, 1, 10}, mgl64.Vec3{1, 1, 1})
	straddling := Box{Min: mgl64.Vec3{-1, 0, -1}, Max: mgl64.Vec3{1, 2, 1}}
	farLeft := BoxFromCenter(mgl64.Vec3{-100, 1, -10}, mgl64.Vec3{1, 1, 1})

	assert.True(t, f.IntersectsBox(ahead))
	assert.False(t, f.IntersectsBox(behind))
	assert.True(t, f.IntersectsBox(straddling))
	assert.False(t, f.IntersectsBox(farLeft))
}

func TestInstancer_Visible(t *testing.T) {
	layout := closedLayout(30)
	in := NewInstancer(DefaultDims)

	c := NewCamera(800, 600)
	c.Position = mgl64.Vec3{2.5, 1, 2.5}

	t.Run("only walls in view are emitted", func(t *testing.T) {
		// Looking south, away from the north border.
		c.Yaw = math.Pi
		walls := in.Visible(layout, c.Position, c.Frustum())
		require.NotEmpty(t, walls)

		f := c.Frustum()
		for _, w := range walls {
			assert.True(t, f.IntersectsBox(w.Box()))
			cell := CellOf(w.Center, DefaultDims.CellSize)
			assert.LessOrEqual(t, cell.X, DefaultRenderDistance+1)
			assert.LessOrEqual(t, cell.Z, DefaultRenderDistance+1)
		}
	})

	t.Run("turning around changes the set", func(t *testing.T) {
		c.Yaw = math.Pi
		south := len(in.Visible(layout, c.Position, c.Frustum()))
		c.Yaw = 0
		north := len(in.Visible(layout, c.Position, c.Frustum()))
		assert.Greater(t, south, north, "the grid lies to the south of the corner cell")
	})

	t.Run("cap is honoured", func(t *testing.T) {
		capped := &Instancer{Dims: DefaultDims, RenderDistance: 8, MaxInstances: 10}
		c.Yaw = math.Pi
		assert.Len(t, capped.Visible(layout, c.Position, c.Frustum()), 10)

		capped.MaxInstances = 0
		assert.Empty(t, capped.Visible(layout, c.Position, c.Frustum()))
	})

	t.Run("open layout has nothing to draw", func(t *testing.T) {
		assert.Empty(t, in.Visible(openLayout(30), c.Position, c.Frustum()))
	})
}
