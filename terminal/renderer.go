// Package terminal plays the maze in a text terminal. The renderer casts one
// ray per column against the walls a frame marks visible, and a small map in
// the corner shows the surrounding cells.
package terminal

import (
	"fmt"
	"math"

	"github.com/beka-birhanu/vinom-portfolio/game"
	"github.com/beka-birhanu/vinom-portfolio/maze"
	"github.com/beka-birhanu/vinom-portfolio/spatial"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	mapRadius = 3 // cells shown around the player on the corner map
	mapCells  = 2*mapRadius + 1
	mapWidth  = 4*mapCells + 2
	mapHeight = 2*mapCells + 1

	// A terminal cell is about twice as tall as it is wide.
	cellAspect = 2

	noticeFrames = 120 // about two seconds at the viewer's frame rate
)

var (
	skyStyle    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	wallStyle   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorSilver)
	floorStyle  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGreen)
	mapStyle    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray)
	playerStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorYellow)
	statusStyle = tcell.StyleDefault.Background(tcell.ColorDarkSlateBlue).Foreground(tcell.ColorWhite)
	noticeStyle = tcell.StyleDefault.Background(tcell.ColorMaroon).Foreground(tcell.ColorWhite)
)

// arrows point along the player heading, clockwise from up (north).
var arrows = []rune("↑↗→↘↓↙←↖")

// Renderer draws session frames on a tcell screen.
type Renderer struct {
	screen tcell.Screen

	notice     string
	noticeLeft int
}

// NewRenderer wraps an initialised screen. Close finalises it.
func NewRenderer(screen tcell.Screen) *Renderer {
	screen.HideCursor()
	screen.SetStyle(skyStyle)
	return &Renderer{screen: screen}
}

// Draw implements game.Renderer.
func (r *Renderer) Draw(f game.FrameView) error {
	w, h := r.screen.Size()
	if w <= 0 || h <= 1 {
		return nil
	}
	r.screen.Clear()

	view := h - 1
	r.drawView(f, w, view)
	if w >= mapWidth && view >= mapHeight {
		r.drawMap(f, w-mapWidth, 0)
	}
	r.drawStatus(f, w, h-1)

	r.screen.Show()
	return nil
}

// Notify replaces the status line with msg for the next few frames.
func (r *Renderer) Notify(msg string) {
	r.notice, r.noticeLeft = msg, noticeFrames
}

// Close implements game.Renderer.
func (r *Renderer) Close() error {
	r.screen.Fini()
	return nil
}

// drawView renders the first-person view into the top rows of the screen.
func (r *Renderer) drawView(f game.FrameView, w, h int) {
	cam := f.Camera
	vfov := cam.FOV * math.Pi / 180
	focal := float64(h) / 2 / math.Tan(vfov/2)
	halfH := math.Atan(math.Tan(vfov/2) * float64(w) / float64(h) / cellAspect)
	horizon := float64(h)/2 + math.Tan(cam.Pitch)*focal

	eye := cam.Position.Y()
	walls := wallSpaces(f.Walls)
	for x := 0; x < w; x++ {
		offset := math.Atan((2*(float64(x)+0.5)/float64(w) - 1) * math.Tan(halfH))
		ray := cam.Yaw - offset
		dx, dz := -math.Sin(ray), -math.Cos(ray)

		dist, hit := castRay(cam.Position.X(), cam.Position.Z(), dx, dz, walls)
		top, bottom := math.Inf(1), math.Inf(-1)
		if hit {
			dist *= math.Cos(offset)
			top = horizon - (f.Dims.WallHeight-eye)/dist*focal
			bottom = horizon + eye/dist*focal
		}
		shade := wallShade(dist)

		for y := 0; y < h; y++ {
			fy := float64(y) + 0.5
			switch {
			case hit && fy >= top && fy <= bottom:
				r.screen.SetContent(x, y, shade, nil, wallStyle)
			case fy > horizon:
				r.screen.SetContent(x, y, floorShade(fy-horizon, float64(h)-horizon), nil, floorStyle)
			default:
				r.screen.SetContent(x, y, ' ', nil, skyStyle)
			}
		}
	}
}

// wallSpaces maps world space into the unit cube of each wall instance.
func wallSpaces(walls []spatial.Instance) []mgl64.Mat4 {
	out := make([]mgl64.Mat4, len(walls))
	for i, w := range walls {
		out[i] = w.Matrix().Inv()
	}
	return out
}

// castRay returns the distance along (dx, dz) from (px, pz) to the nearest
// wall. The ray is moved into each wall's unit cube, where the slab test runs
// against [-0.5, 0.5]; affine maps keep the ray parameter unchanged.
func castRay(px, pz, dx, dz float64, walls []mgl64.Mat4) (float64, bool) {
	best, hit := math.Inf(1), false
	for _, inv := range walls {
		o := inv.Mul4x1(mgl64.Vec4{px, 0, pz, 1})
		d := inv.Mul4x1(mgl64.Vec4{dx, 0, dz, 0})

		tmin, tmax := 0.0, math.Inf(1)
		ok := true
		for _, axis := range [2]struct{ p, d float64 }{
			{o.X(), d.X()},
			{o.Z(), d.Z()},
		} {
			if math.Abs(axis.d) < 1e-12 {
				if axis.p < -0.5 || axis.p > 0.5 {
					ok = false
					break
				}
				continue
			}
			t1, t2 := (-0.5-axis.p)/axis.d, (0.5-axis.p)/axis.d
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			tmin, tmax = math.Max(tmin, t1), math.Min(tmax, t2)
			if tmin > tmax {
				ok = false
				break
			}
		}
		if ok && tmin < best {
			best, hit = tmin, true
		}
	}
	return best, hit
}

func wallShade(dist float64) rune {
	switch {
	case dist < 5:
		return '█'
	case dist < 10:
		return '▓'
	case dist < 20:
		return '▒'
	default:
		return '░'
	}
}

func floorShade(below, span float64) rune {
	if span <= 0 {
		return ' '
	}
	switch b := below / span; {
	case b > 0.75:
		return '#'
	case b > 0.5:
		return 'x'
	case b > 0.25:
		return '.'
	default:
		return '-'
	}
}

// drawMap draws the cells around the player with '+', '-' and '|' walls.
func (r *Renderer) drawMap(f game.FrameView, left, top int) {
	for row := 0; row < mapHeight; row++ {
		for col := 0; col < mapWidth; col++ {
			r.screen.SetContent(left+col, top+row, ' ', nil, mapStyle)
		}
	}

	for j := 0; j < mapCells; j++ {
		for i := 0; i < mapCells; i++ {
			c := maze.Coord{X: f.Cell.X - mapRadius + i, Z: f.Cell.Z - mapRadius + j}
			cell, ok := f.Layout.CellAt(c)
			if !ok {
				continue
			}
			cx, cy := left+(2*i+1)*2, top+2*j+1
			r.screen.SetContent(cx-2, cy-1, '+', nil, mapStyle)
			r.screen.SetContent(cx+2, cy-1, '+', nil, mapStyle)
			r.screen.SetContent(cx-2, cy+1, '+', nil, mapStyle)
			r.screen.SetContent(cx+2, cy+1, '+', nil, mapStyle)
			if cell.North {
				r.hline(cx-1, cy-1)
			}
			if cell.South {
				r.hline(cx-1, cy+1)
			}
			if cell.West {
				r.screen.SetContent(cx-2, cy, '|', nil, mapStyle)
			}
			if cell.East {
				r.screen.SetContent(cx+2, cy, '|', nil, mapStyle)
			}
		}
	}

	px, py := left+(2*mapRadius+1)*2, top+2*mapRadius+1
	r.screen.SetContent(px, py, headingArrow(f.Camera.Yaw), nil, playerStyle)
}

func (r *Renderer) hline(x, y int) {
	for i := 0; i < 3; i++ {
		r.screen.SetContent(x+i, y, '-', nil, mapStyle)
	}
}

// headingArrow picks the arrow closest to the look direction.
func headingArrow(yaw float64) rune {
	// Yaw zero looks north and grows counter-clockwise.
	turns := -yaw / (math.Pi / 4)
	i := int(math.Round(turns)) % len(arrows)
	if i < 0 {
		i += len(arrows)
	}
	return arrows[i]
}

func (r *Renderer) drawStatus(f game.FrameView, w, y int) {
	status := fmt.Sprintf(" cell %d,%d | %s | walls %d | [m] mouse look [esc] release [q] quit",
		f.Cell.X, f.Cell.Z, f.Mode, len(f.Walls))
	style := statusStyle
	if r.noticeLeft > 0 {
		r.noticeLeft--
		status, style = " "+r.notice, noticeStyle
	}
	for x := 0; x < w; x++ {
		ch := ' '
		if x < len(status) {
			ch = rune(status[x])
		}
		r.screen.SetContent(x, y, ch, nil, style)
	}
}
