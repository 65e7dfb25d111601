package neural

import (
	"testing"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/config"
)

func TestEyeStep(t *testing.T) {
	cfg := config.Default()
	eye := NewEye(cfg)

	paddle := components.NewRect(20, 262.5, 12, 75)
	ball := components.NewBall(395, 295, 10, components.Vec2{X: -2, Y: 2.5})

	got := eye.Step(paddle, ball)
	want := []float64{
		300.0 / 525.0,
		400.0 / 790.0,
		300.0 / 590.0,
		-2,
		2.5,
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if diff := got[i] - want[i]; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("input %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEyeFullHeightPaddle(t *testing.T) {
	cfg := config.Default()
	eye := NewEye(cfg)

	wall := components.NewRect(20, 0, 12, 600)
	ball := components.NewBall(395, 295, 10, components.Vec2{X: 2, Y: 2})

	got := eye.Step(wall, ball)
	if got[InputPaddleY] != 0 {
		t.Errorf("full height paddle should read 0, got %v", got[InputPaddleY])
	}
}

func TestEyeExtraInputsAreZero(t *testing.T) {
	cfg := config.Default()
	cfg.Neural.Inputs = 8
	eye := NewEye(cfg)

	got := eye.Step(components.NewRect(20, 0, 12, 75), components.NewBall(0, 0, 10, components.Vec2{X: 3, Y: 3}))
	if len(got) != 8 {
		t.Fatalf("len = %d, want 8", len(got))
	}
	for i := numPerceptionFeatures; i < 8; i++ {
		if got[i] != 0 {
			t.Errorf("input %d = %v, want 0", i, got[i])
		}
	}
}

func TestEyeStepIntoReuses(t *testing.T) {
	eye := NewEye(config.Default())
	buf := make([]float64, 5, 16)
	out := eye.StepInto(buf, components.NewRect(20, 0, 12, 75), components.NewBall(0, 0, 10, components.Vec2{X: 3, Y: 3}))
	if &out[0] != &buf[0] {
		t.Error("StepInto allocated despite sufficient capacity")
	}
}
