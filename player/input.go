package player

import "math"

// Mode selects how the player turns.
type Mode int

const (
	// ModeKeyboard turns with the left/right keys; they never strafe.
	ModeKeyboard Mode = iota
	// ModeMouse looks with the captured pointer; left/right keys strafe.
	ModeMouse
)

func (m Mode) String() string {
	if m == ModeMouse {
		return "mouse"
	}
	return "keyboard"
}

// Input is the set of held controls polled once per frame.
type Input struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Joystick Joystick
}

// Joystick is the on-screen stick: the offset of the thumb from where the
// touch started, in screen pixels with y growing downward.
type Joystick struct {
	Active bool
	DX, DY float64
}

// axes converts the stick offset to forward and strafe amounts in [-1, 1].
// Amounts inside the dead zone are dropped and the pair is clamped to unit
// length.
func (j Joystick) axes(area, deadZone float64) (forward, strafe float64) {
	if !j.Active || area <= 0 {
		return 0, 0
	}
	maxOffset := area / 3

	forward = clampUnit(-j.DY / maxOffset)
	strafe = clampUnit(j.DX / maxOffset)
	if math.Abs(forward) <= deadZone {
		forward = 0
	}
	if math.Abs(strafe) <= deadZone {
		strafe = 0
	}

	if l := math.Hypot(forward, strafe); l > 1 {
		forward, strafe = forward/l, strafe/l
	}
	return forward, strafe
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
