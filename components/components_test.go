package components

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/pong/config"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(20, 262.5, 12, 75)

	if r.Top() != 262.5 || r.Bottom() != 337.5 {
		t.Errorf("unexpected vertical edges: top=%v bottom=%v", r.Top(), r.Bottom())
	}
	if r.Left() != 20 || r.Right() != 32 {
		t.Errorf("unexpected horizontal edges: left=%v right=%v", r.Left(), r.Right())
	}
	if c := r.Center(); c.X != 26 || c.Y != 300 {
		t.Errorf("unexpected center %+v", c)
	}

	if n := NewRect(0, 0, -3, -4); n.Width != 0 || n.Height != 0 {
		t.Errorf("negative sizes should clamp to zero, got %+v", n)
	}
}

func TestRectOverlaps(t *testing.T) {
	base := NewRect(10, 10, 10, 10)
	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"inside", NewRect(12, 12, 2, 2), true},
		{"partial", NewRect(15, 15, 10, 10), true},
		{"touching edge", NewRect(20, 10, 5, 5), true},
		{"left of", NewRect(0, 10, 5, 5), false},
		{"below", NewRect(10, 25, 5, 5), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.o); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
			if got := tc.o.Overlaps(base); got != tc.want {
				t.Errorf("Overlaps is not symmetric: %v", got)
			}
		})
	}
}

func TestMovePaddleNeverLeavesCourt(t *testing.T) {
	const courtHeight = 600
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		paddle := NewRect(20, rng.Float32()*(courtHeight-75), 12, 75)
		delta := (rng.Float32()*2 - 1) * 400

		MovePaddle(&paddle, delta, courtHeight)

		if paddle.Top() < 0 {
			t.Fatalf("paddle top %v above court after delta %v", paddle.Top(), delta)
		}
		if paddle.Bottom() > courtHeight {
			t.Fatalf("paddle bottom %v below court after delta %v", paddle.Bottom(), delta)
		}
	}
}

func TestMovePaddleSnapsOrAppliesFully(t *testing.T) {
	tests := []struct {
		name  string
		y     float32
		delta float32
		wantY float32
	}{
		{"free move down", 100, 8, 108},
		{"free move up", 100, -8, 92},
		{"snap to top", 5, -8, 0},
		{"snap to bottom", 520, 8, 525},
		{"exact bottom", 517, 8, 525},
		{"no move", 300, 0, 300},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			paddle := NewRect(20, tc.y, 12, 75)
			MovePaddle(&paddle, tc.delta, 600)
			if paddle.Y != tc.wantY {
				t.Errorf("Y = %v, want %v", paddle.Y, tc.wantY)
			}
		})
	}
}

func TestRandomBall(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(7))

	signsX := map[bool]int{}
	for i := 0; i < 500; i++ {
		b := RandomBall(cfg, rng)

		if b.Rect.X != 395 || b.Rect.Y != 295 {
			t.Fatalf("ball should start centered at (395, 295), got (%v, %v)", b.Rect.X, b.Rect.Y)
		}
		for _, v := range []float32{b.Vel.X, b.Vel.Y} {
			mag := abs32(v)
			if mag < 2 || mag > 3 {
				t.Fatalf("velocity component %v outside [2, 3]", v)
			}
		}
		want := float32(math.Hypot(float64(b.Vel.X), float64(b.Vel.Y)))
		if b.Speed != want {
			t.Fatalf("speed %v does not match hypot %v", b.Speed, want)
		}
		signsX[b.Vel.X > 0]++
	}

	if signsX[true] == 0 || signsX[false] == 0 {
		t.Errorf("expected both horizontal directions, got %v", signsX)
	}
}

func TestRandomBallIsReproducible(t *testing.T) {
	cfg := config.Default()
	a := RandomBall(cfg, rand.New(rand.NewSource(99)))
	b := RandomBall(cfg, rand.New(rand.NewSource(99)))
	if a != b {
		t.Errorf("same seed produced different balls: %+v vs %+v", a, b)
	}
}

func TestBounceOffKeepsVerticalSpeedInRange(t *testing.T) {
	cfg := config.Default()
	cfg.Ball.Acceleration = 1.4
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 1000; i++ {
		b := NewBall(100, 100, 10, Vec2{X: 2, Y: (rng.Float32()*2 - 1) * 10})
		before := b.Vel.Y
		wall := WallTop
		if i%2 == 0 {
			wall = WallBottom
		}

		b.BounceOff(wall, cfg)

		mag := abs32(b.Vel.Y)
		if mag < 2 || mag > 3 {
			t.Fatalf("|vy| = %v outside [2, 3] after bounce", mag)
		}
		if before > 0 && b.Vel.Y > 0 || before < 0 && b.Vel.Y < 0 {
			t.Fatalf("vy sign not inverted: before %v after %v", before, b.Vel.Y)
		}
	}
}

func TestBounceOffSideWallsIgnored(t *testing.T) {
	cfg := config.Default()
	for _, wall := range []Wall{WallLeft, WallRight} {
		b := NewBall(0, 0, 10, Vec2{X: -2, Y: 2.5})
		b.BounceOff(wall, cfg)
		if b.Vel != (Vec2{X: -2, Y: 2.5}) {
			t.Errorf("%s wall changed velocity to %+v", wall, b.Vel)
		}
	}
}

func TestBounceOffPaddleGrowsUncapped(t *testing.T) {
	cfg := config.Default()
	b := NewBall(0, 0, 10, Vec2{X: -2, Y: 1})

	for i := 0; i < 20; i++ {
		b.BounceOffPaddle(cfg)
	}

	want := 2 * math.Pow(1.1, 20)
	if math.Abs(float64(b.Vel.X)-want) > 1e-3 {
		t.Errorf("vx = %v, want %v", b.Vel.X, want)
	}
	if b.Vel.Y != 1 {
		t.Errorf("paddle bounce changed vy to %v", b.Vel.Y)
	}
}

func TestBounceOffPaddleCap(t *testing.T) {
	cfg := config.Default()
	cfg.Ball.MaxPaddleVel = 5
	b := NewBall(0, 0, 10, Vec2{X: 4.8, Y: 0})

	b.BounceOffPaddle(cfg)
	if b.Vel.X != -5 {
		t.Errorf("vx = %v, want -5", b.Vel.X)
	}
	b.BounceOffPaddle(cfg)
	if b.Vel.X != 5 {
		t.Errorf("vx = %v, want 5", b.Vel.X)
	}
}
