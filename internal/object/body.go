package object

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/gravitroids/internal/loop/config"
	"github.com/tomz197/gravitroids/internal/physics"
)

// BodyID is the stable identity of a body within a session. IDs are never
// reused, so they stay valid while the containing slice is reordered.
type BodyID uint64

// Body is a gravitating planet.
type Body struct {
	ID    BodyID
	Pos   mgl64.Vec2 // Center
	Vel   mgl64.Vec2 // Units per tick
	Color Color
	Name  string

	mass   float64
	radius float64
}

// RadiusForMass is the radius a body of mass m is drawn and collides with.
func RadiusForMass(m float64) float64 {
	return config.BodyRadiusScale * math.Pow(m, 0.75)
}

// NewBody creates a body. Mass must be positive.
func NewBody(id BodyID, pos, vel mgl64.Vec2, mass float64, color Color, name string) *Body {
	b := &Body{
		ID:    id,
		Pos:   pos,
		Vel:   vel,
		Color: color,
		Name:  name,
	}
	b.SetMass(mass)
	return b
}

// Mass returns the body's mass.
func (b *Body) Mass() float64 {
	return b.mass
}

// Radius returns the collision radius derived from the current mass.
func (b *Body) Radius() float64 {
	return b.radius
}

// SetMass changes the mass and recomputes the radius.
func (b *Body) SetMass(m float64) {
	b.mass = m
	b.radius = RadiusForMass(m)
}

// Momentum returns mass times velocity.
func (b *Body) Momentum() mgl64.Vec2 {
	return b.Vel.Mul(b.mass)
}

// Circle returns the body as a gravity participant.
func (b *Body) Circle() physics.Circle {
	return physics.Circle{Pos: b.Pos, Mass: b.mass, Radius: b.radius}
}

// Contains reports whether p is on or inside the body.
func (b *Body) Contains(p mgl64.Vec2) bool {
	return physics.PointInCircle(p, b.Pos, b.radius)
}

// Advance moves the body by its velocity scaled by timeScale.
func (b *Body) Advance(timeScale float64) {
	b.Pos = b.Pos.Add(b.Vel.Mul(timeScale))
}

// Split breaks the body into two half-mass fragments in response to a hit
// by p. The fragments sit at ±radius/√2 along the perpendicular of the
// projectile's heading and fly apart at the projectile's speed along the
// same perpendicular. The body's own velocity is not inherited.
func (b *Body) Split(p *Projectile, idA, idB BodyID) (*Body, *Body) {
	perp := p.Perpendicular()
	offset := perp.Mul(b.radius / math.Sqrt2)
	vel := perp.Mul(p.Speed)
	half := b.mass / 2

	first := NewBody(idA, b.Pos.Add(offset), vel, half, b.Color, b.Name+" I")
	second := NewBody(idB, b.Pos.Sub(offset), vel.Mul(-1), half, b.Color, b.Name+" II")
	return first, second
}
