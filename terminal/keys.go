package terminal

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pong/player"
)

// holdWindow is how long a key counts as held after its last press event.
// Terminals report repeats, never releases, so this must exceed the
// typical auto-repeat interval.
const holdWindow = 150 * time.Millisecond

// HeldKeys tracks recent key presses and reports them as held.
type HeldKeys struct {
	mu     sync.Mutex
	now    func() time.Time
	window time.Duration
	last   map[player.Key]time.Time
}

// NewHeldKeys creates a tracker using the wall clock.
func NewHeldKeys() *HeldKeys {
	return &HeldKeys{
		now:    time.Now,
		window: holdWindow,
		last:   make(map[player.Key]time.Time),
	}
}

// Press records a press of k.
func (h *HeldKeys) Press(k player.Key) {
	h.mu.Lock()
	h.last[k] = h.now()
	h.mu.Unlock()
}

// Release forgets k immediately.
func (h *HeldKeys) Release(k player.Key) {
	h.mu.Lock()
	delete(h.last, k)
	h.mu.Unlock()
}

func (h *HeldKeys) IsDown(k player.Key) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.last[k]
	return ok && h.now().Sub(t) <= h.window
}

// Translate maps a tcell key event to a paddle key.
func Translate(ev *tcell.EventKey) (player.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return player.KeyUp, true
	case tcell.KeyDown:
		return player.KeyDown, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return player.KeyW, true
		case 's', 'S':
			return player.KeyS, true
		}
	}
	return 0, false
}
