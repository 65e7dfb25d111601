package terminal

import (
	"math/rand"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/game"
	"github.com/pthm-cable/pong/player"
)

func TestHeldKeysWindow(t *testing.T) {
	now := time.Unix(0, 0)
	h := NewHeldKeys()
	h.now = func() time.Time { return now }

	if h.IsDown(player.KeyW) {
		t.Error("key down before any press")
	}
	h.Press(player.KeyW)
	if !h.IsDown(player.KeyW) {
		t.Error("key not down right after press")
	}

	now = now.Add(holdWindow)
	if !h.IsDown(player.KeyW) {
		t.Error("key released before hold window elapsed")
	}
	now = now.Add(time.Millisecond)
	if h.IsDown(player.KeyW) {
		t.Error("key still down after hold window")
	}

	h.Press(player.KeyS)
	h.Release(player.KeyS)
	if h.IsDown(player.KeyS) {
		t.Error("released key reported down")
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want player.Key
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), player.KeyUp, true},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), player.KeyDown, true},
		{tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), player.KeyW, true},
		{tcell.NewEventKey(tcell.KeyRune, 'S', tcell.ModNone), player.KeyS, true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, false},
	}
	for _, tc := range tests {
		got, ok := Translate(tc.ev)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("Translate(%v) = %v, %v; want %v, %v", tc.ev.Name(), got, ok, tc.want, tc.ok)
		}
	}
}

func TestDrawProjectsCourt(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 25)

	m := game.NewMatch(config.Default(), game.PlayerVsPlayer, rand.New(rand.NewSource(1)))
	f := New(screen, m, 60)
	f.Draw(false)

	// Left paddle starts at x=20, y=262.5 on an 800x600 court; 80x24 cells.
	if r, _, _, _ := screen.GetContent(2, 10); r != '█' {
		t.Errorf("left paddle cell = %q, want '█'", r)
	}
	if r, _, _, _ := screen.GetContent(40, 0); r != '┊' {
		t.Errorf("net cell = %q, want '┊'", r)
	}
	if r, _, _, _ := screen.GetContent(1, 24); r != '0' {
		t.Errorf("status line starts with %q, want score '0'", r)
	}
}

func TestProjectionCoversSmallObjects(t *testing.T) {
	p := projection{sx: 0.01, sy: 0.01, cols: 8, rows: 6}
	cfg := config.Default()
	m := game.NewMatch(cfg, game.PlayerVsPlayer, rand.New(rand.NewSource(1)))

	x0, y0, x1, y1 := p.cells(m.Ball().Rect)
	if x1 < x0 || y1 < y0 {
		t.Fatalf("empty cell range (%d,%d)-(%d,%d)", x0, y0, x1, y1)
	}
	if x1 >= p.cols || y1 >= p.rows {
		t.Errorf("cell range (%d,%d)-(%d,%d) outside %dx%d", x0, y0, x1, y1, p.cols, p.rows)
	}
}

func TestPollEventsStopsWhenDone(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event) // nobody receives
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		pollEvents(screen, events, done)
		close(exited)
	}()

	close(done)
	screen.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)

	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("event goroutine blocked after done was closed")
	}
	if _, ok := <-events; ok {
		t.Error("events channel left open")
	}
}
