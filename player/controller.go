// Package player moves a first-person walker through a maze. It turns polled
// input into smoothed look angles and collision resolved movement.
package player

import (
	"fmt"
	"math"

	"github.com/beka-birhanu/vinom-portfolio/maze"
	"github.com/beka-birhanu/vinom-portfolio/spatial"
	"github.com/go-gl/mathgl/mgl64"
)

// PitchLimit keeps the camera just short of straight up or down.
const PitchLimit = math.Pi/2 - 0.01

// PointerCapture grabs and releases the pointer for mouse look.
type PointerCapture interface {
	Capture() error
	Release() error
}

// Config tunes the controller. Speeds are per second.
type Config struct {
	MoveSpeed        float64 // world units per second
	TurnSpeed        float64 // radians per second in keyboard mode
	MouseSensitivity float64 // radians per pixel of pointer motion
	TouchSensitivity float64 // radians per pixel of drag
	Smoothing        float64 // responsiveness k of the 1-exp(-k·dt) look smoothing
	EyeHeight        float64
	ColliderWidth    float64
	JoystickArea     float64 // side of the joystick area in pixels
	DeadZone         float64
	MaxStep          float64 // longest collision checked move
}

// DefaultConfig matches the feel of the original 60 fps tuning.
func DefaultConfig() Config {
	return Config{
		MoveSpeed:        6,
		TurnSpeed:        1.8,
		MouseSensitivity: 0.002,
		TouchSensitivity: 0.003,
		Smoothing:        15,
		EyeHeight:        1,
		ColliderWidth:    0.5,
		JoystickArea:     160,
		DeadZone:         0.1,
		MaxStep:          0.25,
	}
}

// State is the pose of the player.
type State struct {
	Position    mgl64.Vec3
	Yaw         float64
	Pitch       float64
	TargetYaw   float64
	TargetPitch float64
}

// Controller owns the player state for one session.
type Controller struct {
	cfg     Config
	dims    spatial.Dims
	layout  maze.Layout
	capture PointerCapture

	state State
	mode  Mode
}

// New places a player at spawn, facing -z, in keyboard mode. capture may be
// nil when the front end has no pointer to grab.
func New(cfg Config, layout maze.Layout, dims spatial.Dims, spawn maze.Coord, capture PointerCapture) *Controller {
	pos := mgl64.Vec3{
		(float64(spawn.X) + 0.5) * dims.CellSize,
		cfg.EyeHeight,
		(float64(spawn.Z) + 0.5) * dims.CellSize,
	}
	return &Controller{
		cfg:     cfg,
		dims:    dims,
		layout:  layout,
		capture: capture,
		state:   State{Position: pos},
	}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Mode() Mode { return c.mode }

// Teleport moves the player to p without collision checks. y is pinned to eye
// height.
func (c *Controller) Teleport(p mgl64.Vec3) {
	c.state.Position = mgl64.Vec3{p.X(), c.cfg.EyeHeight, p.Z()}
}

// Camera writes the player pose into cam.
func (c *Controller) Camera(cam *spatial.Camera) {
	cam.Position = c.state.Position
	cam.Yaw = c.state.Yaw
	cam.Pitch = c.state.Pitch
}

// ToggleMode switches between keyboard and mouse look, grabbing or releasing
// the pointer. On a capture failure the mode is left unchanged.
func (c *Controller) ToggleMode() error {
	if c.mode == ModeKeyboard {
		if c.capture != nil {
			if err := c.capture.Capture(); err != nil {
				return fmt.Errorf("capture pointer: %w", err)
			}
		}
		c.mode = ModeMouse
		return nil
	}

	c.PointerReleased()
	if c.capture != nil {
		if err := c.capture.Release(); err != nil {
			return fmt.Errorf("release pointer: %w", err)
		}
	}
	return nil
}

// PointerReleased handles a capture lost outside the controller's control,
// such as the user pressing Escape. Targets snap to the current look so the
// view does not jump when capture resumes.
func (c *Controller) PointerReleased() {
	c.mode = ModeKeyboard
	c.state.TargetYaw = c.state.Yaw
	c.state.TargetPitch = c.state.Pitch
}

// MouseMove feeds a pointer delta in pixels. It only turns in mouse mode.
func (c *Controller) MouseMove(dx, dy float64) {
	if c.mode != ModeMouse {
		return
	}
	c.look(dx*c.cfg.MouseSensitivity, dy*c.cfg.MouseSensitivity)
}

// TouchDrag feeds a look drag delta in pixels. Touch look works in any mode.
func (c *Controller) TouchDrag(dx, dy float64) {
	c.look(dx*c.cfg.TouchSensitivity, dy*c.cfg.TouchSensitivity)
}

func (c *Controller) look(yaw, pitch float64) {
	c.state.TargetYaw -= yaw
	c.state.TargetPitch = clampPitch(c.state.TargetPitch - pitch)
}

// Update advances the player by dt seconds.
func (c *Controller) Update(in Input, dt float64) {
	if dt <= 0 {
		return
	}

	if c.mode == ModeKeyboard {
		turn := 0.0
		if in.Left {
			turn += c.cfg.TurnSpeed * dt
		}
		if in.Right {
			turn -= c.cfg.TurnSpeed * dt
		}
		c.state.Yaw += turn
		c.state.TargetYaw += turn
	}

	alpha := 1 - math.Exp(-c.cfg.Smoothing*dt)
	c.state.Yaw += (c.state.TargetYaw - c.state.Yaw) * alpha
	c.state.Pitch = clampPitch(c.state.Pitch + (c.state.TargetPitch-c.state.Pitch)*alpha)

	dir := c.moveDirection(in)
	if dir.Len() == 0 {
		return
	}
	step := dir.Mul(c.cfg.MoveSpeed * dt)
	c.Move(step.X(), step.Z())
}

// moveDirection returns the wished horizontal direction with length at most 1.
func (c *Controller) moveDirection(in Input) mgl64.Vec3 {
	sin, cos := math.Sincos(c.state.Yaw)
	forward := mgl64.Vec3{-sin, 0, -cos}
	right := mgl64.Vec3{cos, 0, -sin}

	if in.Joystick.Active {
		f, s := in.Joystick.axes(c.cfg.JoystickArea, c.cfg.DeadZone)
		return forward.Mul(f).Add(right.Mul(s))
	}

	var v mgl64.Vec3
	if in.Forward {
		v = v.Add(forward)
	}
	if in.Backward {
		v = v.Sub(forward)
	}
	if c.mode == ModeMouse {
		if in.Left {
			v = v.Sub(right)
		}
		if in.Right {
			v = v.Add(right)
		}
	}
	if l := v.Len(); l > 0 {
		v = v.Mul(1 / l)
	}
	return v
}

// Move displaces the player by (dx, dz) world units. X and Z are resolved
// separately so a blocked axis does not stop motion along the other one.
// Long moves are split so no single check skips over a wall.
func (c *Controller) Move(dx, dz float64) {
	dist := math.Hypot(dx, dz)
	if dist == 0 {
		return
	}
	steps := 1
	if c.cfg.MaxStep > 0 {
		steps = int(math.Ceil(dist / c.cfg.MaxStep))
	}
	sx, sz := dx/float64(steps), dz/float64(steps)

	for i := 0; i < steps; i++ {
		pos := c.state.Position
		if next := pos.Add(mgl64.Vec3{sx, 0, 0}); !c.collides(next) {
			pos = next
		}
		if next := pos.Add(mgl64.Vec3{0, 0, sz}); !c.collides(next) {
			pos = next
		}
		c.state.Position = pos
	}
}

func (c *Controller) collides(p mgl64.Vec3) bool {
	w := c.cfg.ColliderWidth
	box := spatial.BoxFromCenter(p, mgl64.Vec3{w, 2 * c.cfg.EyeHeight, w})
	return spatial.Collides(c.layout, box, c.dims)
}

// Cell returns the maze cell the player stands in.
func (c *Controller) Cell() maze.Coord {
	return spatial.CellOf(c.state.Position, c.dims.CellSize)
}

func clampPitch(p float64) float64 {
	return math.Max(-PitchLimit, math.Min(PitchLimit, p))
}
