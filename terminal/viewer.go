package terminal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-portfolio/game"
	"github.com/gdamore/tcell/v2"
)

var ErrNoMouse = errors.New("terminal does not report mouse events")

const frameInterval = 16 * time.Millisecond // ~60 FPS

// Viewer runs a maze session on a terminal screen.
type Viewer struct {
	screen   tcell.Screen
	renderer *Renderer
	session  *game.Session
	pointer pointer
	keys    *keyState
	mouse   pointerTracker
	now     func() time.Time
}

// NewViewer builds a session drawing to screen, which must be initialised.
// The viewport size in opts is replaced by the screen size.
func NewViewer(screen tcell.Screen, opts game.Options) (*Viewer, error) {
	v := &Viewer{
		screen:   screen,
		renderer: NewRenderer(screen),
		pointer:  pointer{screen: screen},
		keys:     newKeyState(defaultHold),
		now:      time.Now,
	}

	w, h := screen.Size()
	opts.Width, opts.Height = w, h*cellAspect
	opts.Capture = v.pointer

	s, err := game.New(opts, v.renderer)
	if err != nil {
		return nil, err
	}
	v.session = s
	return v, nil
}

// Session returns the session driven by the viewer.
func (v *Viewer) Session() *game.Session { return v.session }

// Run drives frames until ctx is done, the user quits, or a frame fails.
// The session is closed, and with it the screen, before Run returns.
func (v *Viewer) Run(ctx context.Context) error {
	defer v.session.Close()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := v.now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !v.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			now := v.now()
			dt := now.Sub(last).Seconds()
			last = now
			if err := v.session.Frame(v.keys.input(now), dt); err != nil {
				return err
			}
		}
	}
}

// handleEvent applies one terminal event. It returns false to quit.
func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyCtrlC,
			ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return false
		case ev.Key() == tcell.KeyEscape:
			// Escape drops pointer capture the way a browser ends pointer lock.
			_ = v.pointer.Release()
			v.mouse.reset()
			v.session.PointerReleased()
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'm' || ev.Rune() == 'M'):
			v.mouse.reset()
			if err := v.session.ToggleMode(); err != nil {
				v.renderer.Notify(fmt.Sprintf("mouse look: %v", err))
			}
		default:
			v.keys.press(ev, v.now())
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		dx, dy := v.mouse.move(x, y)
		v.session.MouseMove(dx, dy)
	case *tcell.EventResize:
		w, h := ev.Size()
		v.session.Resize(w, h*cellAspect)
		v.screen.Sync()
	case *tcell.EventFocus:
		if !ev.Focused {
			v.keys.reset()
		}
	}
	return true
}
