package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect. Particles live only in the
// terminal client and never affect the simulation. Velocities are in field
// units per second.
type Particle struct {
	Pos         mgl64.Vec2
	Vel         mgl64.Vec2
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 1/60 s (1.0 = no drag)
	Color       Color
}

// Debris colors for explosions, hottest first.
var explosionColors = []Color{
	{R: 255, G: 240, B: 180},
	{R: 255, G: 200, B: 80},
	{R: 255, G: 140, B: 40},
	{R: 220, G: 70, B: 40},
}

// NewParticle creates a single particle from the pool.
func NewParticle(pos, vel mgl64.Vec2, lifetime float64, color Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.Pos = pos
	p.Vel = vel
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	p.Color = color
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnExplosion appends a circular burst of debris for a destroyed body of
// the given radius to dst.
func SpawnExplosion(dst []*Particle, rng *rand.Rand, pos mgl64.Vec2, radius float64) []*Particle {
	count := 8 + int(radius)
	speed := 40 + 4*radius

	for i := 0; i < count; i++ {
		// Random direction
		angle := rng.Float64() * 2 * math.Pi
		// Random speed variation (50% to 150%)
		spd := speed * (0.5 + rng.Float64())
		// Random lifetime variation (50% to 100%)
		life := 0.8 * (0.5 + rng.Float64()*0.5)

		vel := mgl64.Vec2{math.Cos(angle) * spd, math.Sin(angle) * spd}
		color := explosionColors[rng.Intn(len(explosionColors))]
		dst = append(dst, NewParticle(pos, vel, life, color))
	}
	return dst
}

// SpawnThrust appends exhaust particles behind a ship at pos facing along
// facing (a unit vector) to dst.
func SpawnThrust(dst []*Particle, rng *rand.Rand, pos, facing mgl64.Vec2) []*Particle {
	// Spawn 1-2 particles behind the ship
	count := 1 + rng.Intn(2)
	base := math.Atan2(facing.Y(), facing.X()) + math.Pi

	for i := 0; i < count; i++ {
		// Opposite direction of ship facing, with spread
		angle := base + (rng.Float64()-0.5)*0.5
		speed := 120 + rng.Float64()*60
		lifetime := 0.1 + rng.Float64()*0.15

		vel := mgl64.Vec2{math.Cos(angle) * speed, math.Sin(angle) * speed}
		p := NewParticle(pos, vel, lifetime, Color{R: 120, G: 200, B: 255})
		p.Drag = 0.85
		dst = append(dst, p)
	}
	return dst
}

// Update moves the particle by dt seconds. It returns true once the particle
// has expired.
func (p *Particle) Update(dt float64) bool {
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	// Normalize drag to ~60fps
	p.Vel = p.Vel.Mul(math.Pow(p.Drag, dt*60))
	p.Pos = p.Pos.Add(p.Vel.Mul(dt))
	return false
}

// Visible reports whether the particle should still be drawn. Particles in
// the last quarter of their life are hidden.
func (p *Particle) Visible() bool {
	return p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime >= 0.25
}
