package terminal

import (
	"time"

	"github.com/beka-birhanu/vinom-portfolio/player"
	"github.com/gdamore/tcell/v2"
)

// Terminals report key presses and repeats but never releases, so a control
// counts as held for a short while after its last press.
const defaultHold = 200 * time.Millisecond

// Pixels one terminal cell of pointer motion stands for.
const (
	pointerPixelsX = 8
	pointerPixelsY = 16
)

type control int

const (
	controlForward control = iota
	controlBackward
	controlLeft
	controlRight
	controlCount
)

// keyState turns press events into held flags.
type keyState struct {
	hold time.Duration
	last [controlCount]time.Time
}

func newKeyState(hold time.Duration) *keyState {
	return &keyState{hold: hold}
}

// press records a key event. It reports whether the key is a movement key.
func (k *keyState) press(ev *tcell.EventKey, now time.Time) bool {
	c, ok := controlFor(ev)
	if !ok {
		return false
	}
	k.last[c] = now
	return true
}

func (k *keyState) held(c control, now time.Time) bool {
	last := k.last[c]
	return !last.IsZero() && now.Sub(last) <= k.hold
}

// input returns the controls held at now.
func (k *keyState) input(now time.Time) player.Input {
	return player.Input{
		Forward:  k.held(controlForward, now),
		Backward: k.held(controlBackward, now),
		Left:     k.held(controlLeft, now),
		Right:    k.held(controlRight, now),
	}
}

func (k *keyState) reset() {
	k.last = [controlCount]time.Time{}
}

func controlFor(ev *tcell.EventKey) (control, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return controlForward, true
	case tcell.KeyDown:
		return controlBackward, true
	case tcell.KeyLeft:
		return controlLeft, true
	case tcell.KeyRight:
		return controlRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return controlForward, true
		case 's', 'S':
			return controlBackward, true
		case 'a', 'A':
			return controlLeft, true
		case 'd', 'D':
			return controlRight, true
		}
	}
	return 0, false
}

// pointerTracker turns absolute pointer positions into deltas.
type pointerTracker struct {
	x, y  int
	valid bool
}

// move returns the motion since the previous position in pixels.
func (p *pointerTracker) move(x, y int) (dx, dy float64) {
	if p.valid {
		dx = float64(x-p.x) * pointerPixelsX
		dy = float64(y-p.y) * pointerPixelsY
	}
	p.x, p.y, p.valid = x, y, true
	return dx, dy
}

func (p *pointerTracker) reset() {
	p.valid = false
}

// pointer grabs the terminal mouse for mouse look.
type pointer struct {
	screen tcell.Screen
}

func (p pointer) Capture() error {
	if !p.screen.HasMouse() {
		return ErrNoMouse
	}
	p.screen.EnableMouse(tcell.MouseMotionEvents)
	return nil
}

func (p pointer) Release() error {
	p.screen.DisableMouse()
	return nil
}
