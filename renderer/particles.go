package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/effects"
)

// ParticleRenderer renders effect particles.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Draw renders all particles, fading them out over their life.
func (r *ParticleRenderer) Draw(particles []effects.EffectParticle) {
	for i := range particles {
		p := &particles[i]
		lifeRatio := p.LifeRatio()

		var color rl.Color
		switch p.Type {
		case effects.ParticleHit:
			color = rl.Color{R: 255, G: 220, B: 120, A: uint8(lifeRatio * 220)}
		case effects.ParticleBounce:
			color = rl.Color{R: 180, G: 200, B: 255, A: uint8(lifeRatio * 160)}
		case effects.ParticleMiss:
			color = rl.Color{R: 230, G: 70, B: 60, A: uint8(lifeRatio * 200)}
		}

		size := max(p.Size*lifeRatio, 0.5)
		rl.DrawCircle(int32(p.X), int32(p.Y), size, color)
	}
}
