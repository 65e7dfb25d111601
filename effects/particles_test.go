package effects

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/game"
)

func TestParticlesExpire(t *testing.T) {
	s := NewParticleSystem(rand.New(rand.NewSource(42)))
	s.EmitHit(20, 300, 1)
	s.EmitBounce(400, 0)
	s.EmitMiss(0, 300)

	if s.Count() == 0 {
		t.Fatal("no particles emitted")
	}
	for _, p := range s.Particles {
		if p.Life <= 0 || p.Life != p.MaxLife {
			t.Fatalf("new particle has life %d/%d", p.Life, p.MaxLife)
		}
	}

	// Longest lifetime is a miss particle at under 70 frames.
	for i := 0; i < 70; i++ {
		s.Update()
	}
	if s.Count() != 0 {
		t.Errorf("%d particles outlived their lifetime", s.Count())
	}
}

func TestHitBurstMovesAwayFromPaddle(t *testing.T) {
	s := NewParticleSystem(rand.New(rand.NewSource(1)))
	s.EmitHit(32, 300, 1)
	for _, p := range s.Particles {
		if p.VelX < 0 {
			t.Fatalf("hit particle moving toward the paddle: %+v", p)
		}
	}
}

func TestParticleCap(t *testing.T) {
	s := NewParticleSystem(rand.New(rand.NewSource(3)))
	for i := 0; i < 100; i++ {
		s.EmitMiss(0, 0)
	}
	if s.Count() > 500 {
		t.Errorf("count %d exceeds cap", s.Count())
	}
	s.Clear()
	if s.Count() != 0 {
		t.Error("Clear left particles")
	}
}

func TestLifeRatio(t *testing.T) {
	p := EffectParticle{Life: 5, MaxLife: 20}
	if r := p.LifeRatio(); r != 0.25 {
		t.Errorf("LifeRatio = %v, want 0.25", r)
	}
	if r := (&EffectParticle{}).LifeRatio(); r != 0 {
		t.Errorf("zero particle LifeRatio = %v", r)
	}
}

func TestReactFollowsEvents(t *testing.T) {
	ball := components.NewBall(100, 100, 10, components.Vec2{X: -2, Y: 2})

	tests := []struct {
		name string
		ev   game.Event
		want ParticleType
	}{
		{"hit", game.EventPaddleHit, ParticleHit},
		{"bounce", game.EventWallBounce, ParticleBounce},
		{"miss", game.EventPoint | game.EventMiss, ParticleMiss},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewParticleSystem(rand.New(rand.NewSource(7)))
			s.React(tc.ev, ball)
			if s.Count() == 0 {
				t.Fatal("no particles emitted")
			}
			for _, p := range s.Particles {
				if p.Type != tc.want {
					t.Fatalf("particle type %d, want %d", p.Type, tc.want)
				}
			}
		})
	}

	s := NewParticleSystem(rand.New(rand.NewSource(7)))
	s.React(game.EventServe|game.EventPoint, ball)
	if s.Count() != 0 {
		t.Errorf("serve and point emitted %d particles", s.Count())
	}
}
