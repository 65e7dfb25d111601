// Package effects simulates short-lived visual particles for match events.
package effects

import (
	"math"
	"math/rand"
)

// ParticleType identifies the type of effect particle.
type ParticleType uint8

const (
	ParticleHit    ParticleType = iota // paddle return
	ParticleBounce                     // top or bottom wall
	ParticleMiss                       // ball left the court
)

// EffectParticle represents a visual feedback particle.
type EffectParticle struct {
	X, Y       float32
	VelX, VelY float32
	Life       int32
	MaxLife    int32
	Type       ParticleType
	Size       float32
}

// LifeRatio is the remaining fraction of the particle's life.
func (p *EffectParticle) LifeRatio() float32 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float32(p.Life) / float32(p.MaxLife)
}

// ParticleSystem manages effect particles for visual feedback.
type ParticleSystem struct {
	Particles    []EffectParticle
	maxParticles int
	rng          *rand.Rand
}

// NewParticleSystem creates a new particle system.
func NewParticleSystem(rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		Particles:    make([]EffectParticle, 0, 500),
		maxParticles: 500,
		rng:          rng,
	}
}

// Update advances all particles by one frame and drops expired ones.
func (s *ParticleSystem) Update() {
	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.Life--
		if p.Life <= 0 {
			continue
		}

		switch p.Type {
		case ParticleMiss:
			// Sink downward
			p.VelY += 0.05
		case ParticleHit, ParticleBounce:
			p.VelY += 0.005
		}

		p.VelX *= 0.95
		p.VelY *= 0.95
		p.X += p.VelX
		p.Y += p.VelY

		s.Particles[alive] = s.Particles[i]
		alive++
	}
	s.Particles = s.Particles[:alive]
}

// EmitHit emits a burst thrown away from the paddle in direction dirX (-1 or 1).
func (s *ParticleSystem) EmitHit(x, y, dirX float32) {
	count := 8 + s.rng.Intn(7)
	for i := 0; i < count; i++ {
		angle := (s.rng.Float32() - 0.5) * 0.8 * math.Pi
		speed := 1 + s.rng.Float32()*1.5
		s.emit(x, y, ParticleHit,
			dirX*float32(math.Cos(float64(angle)))*speed,
			float32(math.Sin(float64(angle)))*speed,
			int32(20+s.rng.Intn(20)), 2+s.rng.Float32()*1.5)
	}
}

// EmitBounce emits a few sparks where the ball touched a wall.
func (s *ParticleSystem) EmitBounce(x, y float32) {
	for i := 0; i < 4; i++ {
		s.emit(x, y, ParticleBounce,
			(s.rng.Float32()-0.5)*1.5,
			(s.rng.Float32()-0.5)*1.5,
			int32(15+s.rng.Intn(10)), 1.5+s.rng.Float32())
	}
}

// EmitMiss emits a radial burst where the ball left the court.
func (s *ParticleSystem) EmitMiss(x, y float32) {
	count := 16 + s.rng.Intn(8)
	for i := 0; i < count; i++ {
		angle := s.rng.Float32() * 2 * math.Pi
		speed := 0.5 + s.rng.Float32()*2
		s.emit(x, y, ParticleMiss,
			float32(math.Cos(float64(angle)))*speed,
			float32(math.Sin(float64(angle)))*speed,
			int32(40+s.rng.Intn(30)), 2+s.rng.Float32()*2)
	}
}

func (s *ParticleSystem) emit(x, y float32, ptype ParticleType, velX, velY float32, life int32, size float32) {
	if len(s.Particles) >= s.maxParticles {
		return
	}
	s.Particles = append(s.Particles, EffectParticle{
		X:       x + (s.rng.Float32()-0.5)*4,
		Y:       y + (s.rng.Float32()-0.5)*4,
		VelX:    velX,
		VelY:    velY,
		Life:    life,
		MaxLife: life,
		Type:    ptype,
		Size:    size,
	})
}

// Count returns the current number of active particles.
func (s *ParticleSystem) Count() int {
	return len(s.Particles)
}

// Clear removes all particles.
func (s *ParticleSystem) Clear() {
	s.Particles = s.Particles[:0]
}
