package object

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/gravitroids/internal/loop/config"
)

// Projectile is a bullet fired by the player. Heading and speed never change.
type Projectile struct {
	Pos    mgl64.Vec2
	Angle  float64 // Heading in degrees, 0 = right, counter-clockwise on screen
	Speed  float64 // Units per tick
	Radius float64
}

// NewProjectile creates a projectile at pos heading along angle (degrees).
func NewProjectile(pos mgl64.Vec2, angle float64) *Projectile {
	return &Projectile{
		Pos:    pos,
		Angle:  angle,
		Speed:  config.ProjectileSpeed,
		Radius: config.ProjectileRadius,
	}
}

// Direction returns the unit vector for an angle in degrees. Screen y grows
// downwards, so positive angles point up.
func Direction(deg float64) mgl64.Vec2 {
	rad := deg * math.Pi / 180
	return mgl64.Vec2{math.Cos(rad), -math.Sin(rad)}
}

// Heading returns the unit direction of travel.
func (p *Projectile) Heading() mgl64.Vec2 {
	return Direction(p.Angle)
}

// Perpendicular returns the heading rotated by 90 degrees.
func (p *Projectile) Perpendicular() mgl64.Vec2 {
	rad := p.Angle * math.Pi / 180
	return mgl64.Vec2{math.Sin(rad), math.Cos(rad)}
}

// Advance moves the projectile one tick along its heading.
func (p *Projectile) Advance() {
	p.Pos = p.Pos.Add(p.Heading().Mul(p.Speed))
}
