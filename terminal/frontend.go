// Package terminal plays a match in a text terminal using tcell.
package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/game"
)

var (
	styleCourt  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleNet    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Frontend renders a match to a tcell screen and feeds it keyboard input.
type Frontend struct {
	screen tcell.Screen
	match  *game.Match
	keys   *HeldKeys
	fps    int

	// OnEvent, when set, receives the events of every frame.
	OnEvent func(game.Event)
}

// New wraps an initialized screen. The caller owns the screen.
func New(screen tcell.Screen, match *game.Match, fps int) *Frontend {
	if fps <= 0 {
		fps = 60
	}
	return &Frontend{
		screen: screen,
		match:  match,
		keys:   NewHeldKeys(),
		fps:    fps,
	}
}

// Keys returns the input tracker fed by the event loop.
func (f *Frontend) Keys() *HeldKeys { return f.keys }

// Run plays until Escape, Ctrl-C, q or ctx cancellation.
func (f *Frontend) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(f.fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(f.screen, events, done)

	paused := false
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
				if ev.Key() == tcell.KeyRune && ev.Rune() == 'p' {
					paused = !paused
					slog.Debug("pause toggled", "paused", paused)
					continue
				}
				if k, ok := Translate(ev); ok {
					f.keys.Press(k)
				}
			case *tcell.EventResize:
				f.screen.Sync()
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if !paused {
				ev := f.match.Update(dt, f.keys)
				if f.OnEvent != nil && ev != 0 {
					f.OnEvent(ev)
				}
			}
			f.Draw(paused)
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Draw renders the current match state. The bottom row holds the score line.
func (f *Frontend) Draw(paused bool) {
	f.screen.Clear()
	cols, rows := f.screen.Size()
	rows-- // status line
	if cols <= 0 || rows <= 0 {
		f.screen.Show()
		return
	}

	cfg := f.match.Config()
	proj := projection{
		sx:   float32(cols) / cfg.Derived.ScreenW32,
		sy:   float32(rows) / cfg.Derived.ScreenH32,
		cols: cols,
		rows: rows,
	}

	if !f.match.Mode().Kind.Solo() {
		for y := 0; y < rows; y += 2 {
			f.screen.SetContent(cols/2, y, '┊', nil, styleNet)
		}
	}
	f.fill(proj, f.match.LeftPaddle(), '█')
	f.fill(proj, f.match.RightPaddle(), '█')
	if !f.match.Paused() {
		f.fill(proj, f.match.Ball().Rect, '●')
	}

	score := f.match.Score()
	status := fmt.Sprintf(" %d : %d   %s", score.P1, score.P2, f.match.Mode().Kind)
	if f.match.Mode().Kind.Solo() {
		status = fmt.Sprintf(" score %d   %s", score.P1, f.match.Mode().Kind)
	}
	if paused {
		status += "   PAUSED"
	} else if f.match.Paused() {
		status += "   SERVE"
	}
	f.text(0, rows, status+"   (q quits, p pauses)", styleStatus)
	f.screen.Show()
}

type projection struct {
	sx, sy     float32
	cols, rows int
}

// cells maps a court rectangle to an inclusive cell range. Every object
// covers at least one cell.
func (p projection) cells(r components.Rect) (x0, y0, x1, y1 int) {
	x0 = clampInt(int(r.Left()*p.sx), 0, p.cols-1)
	y0 = clampInt(int(r.Top()*p.sy), 0, p.rows-1)
	x1 = clampInt(int((r.Right()-1)*p.sx), x0, p.cols-1)
	y1 = clampInt(int((r.Bottom()-1)*p.sy), y0, p.rows-1)
	return
}

func (f *Frontend) fill(p projection, r components.Rect, ch rune) {
	x0, y0, x1, y1 := p.cells(r)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			f.screen.SetContent(x, y, ch, nil, styleCourt)
		}
	}
}

func (f *Frontend) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		f.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
