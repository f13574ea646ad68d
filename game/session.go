// Package game runs one first-person maze session: it owns the maze, the
// player and the render state and advances them one frame at a time.
package game

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-portfolio/maze"
	"github.com/beka-birhanu/vinom-portfolio/player"
	"github.com/beka-birhanu/vinom-portfolio/spatial"
)

// Session errors.
var (
	ErrClosed         = errors.New("session is closed")
	ErrNoRenderer     = errors.New("renderer is required")
	ErrInvalidFrameDt = errors.New("frame delta must not be negative")
)

// Renderer draws frames for a session.
type Renderer interface {
	Draw(frame FrameView) error
	Close() error
}

// FrameView is everything a renderer needs for one frame. Walls is only
// valid until the next frame.
type FrameView struct {
	Number int64
	Layout maze.Layout
	Walls  []spatial.Instance
	Camera spatial.Camera
	Player player.State
	Cell   maze.Coord
	Mode   player.Mode
	Dims   spatial.Dims
}

// Options configures a session.
type Options struct {
	Size      int   // Size of the fixed maze. Ignored when Chunked is set.
	Chunked   bool  // Chunked grows an unbounded maze around the player.
	ChunkSize int   // Chunk side in cells for chunked mazes.
	Seed      int64 // Seed of the maze; zero picks one from the clock.

	Width, Height int // viewport in pixels or terminal cells

	Player  player.Config
	Dims    spatial.Dims
	Capture player.PointerCapture
}

// DefaultOptions returns a fixed 30×30 maze session.
func DefaultOptions() Options {
	return Options{
		Size:      30,
		ChunkSize: 10,
		Width:     800,
		Height:    600,
		Player:    player.DefaultConfig(),
		Dims:      spatial.DefaultDims,
	}
}

// Session is a single maze run. Its methods must be called from one
// goroutine, the one driving the frames.
type Session struct {
	layout    maze.Layout
	chunked   *maze.Chunked
	player    *player.Controller
	instancer *spatial.Instancer
	camera    spatial.Camera
	renderer  Renderer
	dims      spatial.Dims
	frames    int64
	closed    bool
}

// New generates the maze and places the player on the spawn cell.
func New(opts Options, r Renderer) (*Session, error) {
	if r == nil {
		return nil, ErrNoRenderer
	}

	rng := maze.NewRand(opts.Seed)
	s := &Session{
		instancer: spatial.NewInstancer(opts.Dims),
		camera:    spatial.NewCamera(opts.Width, opts.Height),
		renderer:  r,
		dims:      opts.Dims,
	}

	spawn := maze.Coord{}
	if opts.Chunked {
		m, err := maze.NewChunked(opts.ChunkSize, rng)
		if err != nil {
			return nil, fmt.Errorf("chunked maze: %w", err)
		}
		spawn = maze.Spawn
		m.Reveal(spawn, s.instancer.RenderDistance+1)
		s.layout, s.chunked = m, m
	} else {
		g, err := maze.Generate(opts.Size, rng)
		if err != nil {
			return nil, fmt.Errorf("generate maze: %w", err)
		}
		s.layout = g
	}

	s.player = player.New(opts.Player, s.layout, opts.Dims, spawn, opts.Capture)
	s.player.Camera(&s.camera)
	return s, nil
}

// Layout returns the maze the session runs in.
func (s *Session) Layout() maze.Layout { return s.layout }

// Player returns the current player pose.
func (s *Session) Player() player.State { return s.player.State() }

// Mode returns the current control mode.
func (s *Session) Mode() player.Mode { return s.player.Mode() }

// Camera returns the camera used for the last frame.
func (s *Session) Camera() spatial.Camera { return s.camera }

// MouseMove forwards a pointer delta to the player.
func (s *Session) MouseMove(dx, dy float64) {
	if !s.closed {
		s.player.MouseMove(dx, dy)
	}
}

// TouchDrag forwards a look drag delta to the player.
func (s *Session) TouchDrag(dx, dy float64) {
	if !s.closed {
		s.player.TouchDrag(dx, dy)
	}
}

// ToggleMode switches between keyboard and mouse look.
func (s *Session) ToggleMode() error {
	if s.closed {
		return ErrClosed
	}
	return s.player.ToggleMode()
}

// PointerReleased reports that pointer capture was lost.
func (s *Session) PointerReleased() {
	if !s.closed {
		s.player.PointerReleased()
	}
}

// Resize recomputes aspect ratio and field of view for a new viewport.
func (s *Session) Resize(width, height int) {
	s.camera.SetViewport(width, height)
}

// Frame advances the session by dt seconds and draws the result.
func (s *Session) Frame(in player.Input, dt float64) error {
	if s.closed {
		return ErrClosed
	}
	if dt < 0 {
		return ErrInvalidFrameDt
	}

	// Collision must see every wall the player can reach this frame.
	s.reveal()
	s.player.Update(in, dt)
	s.reveal()

	s.player.Camera(&s.camera)
	walls := s.instancer.Visible(s.layout, s.camera.Position, s.camera.Frustum())

	s.frames++
	frame := FrameView{
		Number: s.frames,
		Layout: s.layout,
		Walls:  walls,
		Camera: s.camera,
		Player: s.player.State(),
		Cell:   s.player.Cell(),
		Mode:   s.player.Mode(),
		Dims:   s.dims,
	}
	if err := s.renderer.Draw(frame); err != nil {
		return fmt.Errorf("draw frame %d: %w", s.frames, err)
	}
	return nil
}

func (s *Session) reveal() {
	if s.chunked == nil {
		return
	}
	s.chunked.Reveal(s.player.Cell(), s.instancer.RenderDistance+1)
}

// Close releases the renderer. Later calls are no-ops.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.renderer.Close(); err != nil {
		return fmt.Errorf("close renderer: %w", err)
	}
	return nil
}
