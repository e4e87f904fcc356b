package object

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/gravitroids/internal/loop/config"
	"github.com/tomz197/gravitroids/internal/physics"
)

// Player is the ship. Velocities are in units per tick.
type Player struct {
	Pos         mgl64.Vec2
	Vel         mgl64.Vec2
	Angle       float64 // Facing in degrees, wraps mod 360
	Points      int
	Radius      float64
	Projectiles []*Projectile

	ThrustPower float64 // Velocity gained per thrusting tick
	TurnRate    float64 // Degrees per turning tick
	MaxSpeed    float64 // Speed cap applied after thrust
}

// NewPlayer creates a ship at pos facing right.
func NewPlayer(pos mgl64.Vec2) *Player {
	return &Player{
		Pos:         pos,
		Points:      config.InitialPoints,
		Radius:      config.PlayerRadius,
		ThrustPower: config.PlayerThrust,
		TurnRate:    config.PlayerTurnDeg,
		MaxSpeed:    config.MaxPlayerSpeed,
	}
}

// Mass derives the ship's gravitational mass from its points. It is the one
// formula used both at creation and during play; negative points count as zero.
func (u *Player) Mass() float64 {
	if u.Points <= 0 {
		return 0
	}
	return float64(u.Points) / config.PointsPerMass
}

// Circle returns the ship as a gravity participant.
func (u *Player) Circle() physics.Circle {
	return physics.Circle{Pos: u.Pos, Mass: u.Mass(), Radius: u.Radius}
}

// TurnLeft rotates the ship counter-clockwise.
func (u *Player) TurnLeft() {
	u.Angle = wrapDegrees(u.Angle + u.TurnRate)
}

// TurnRight rotates the ship clockwise.
func (u *Player) TurnRight() {
	u.Angle = wrapDegrees(u.Angle - u.TurnRate)
}

// Facing returns the unit vector the nose points along.
func (u *Player) Facing() mgl64.Vec2 {
	return Direction(u.Angle)
}

// Thrust accelerates along the facing direction and clamps the resulting
// speed. Gravity is applied elsewhere and is not clamped.
func (u *Player) Thrust() {
	u.Vel = u.Vel.Add(u.Facing().Mul(u.ThrustPower))

	speed := u.Vel.Len()
	if speed > u.MaxSpeed {
		u.Vel = u.Vel.Mul(u.MaxSpeed / speed)
	}
}

// Fire launches a projectile from the ship's center. It returns false when
// the live projectile limit is reached.
func (u *Player) Fire() bool {
	if len(u.Projectiles) >= config.MaxLiveBullets {
		return false
	}
	u.Projectiles = append(u.Projectiles, NewProjectile(u.Pos, u.Angle))
	return true
}

// Advance applies an externally computed velocity change and moves the ship
// one tick, then moves its projectiles and drops those that left field.
func (u *Player) Advance(dv mgl64.Vec2, field Screen) {
	u.Vel = u.Vel.Add(dv)
	u.Pos = u.Pos.Add(u.Vel)

	kept := u.Projectiles[:0]
	for _, p := range u.Projectiles {
		p.Advance()
		if field.ContainsStrict(p.Pos) {
			kept = append(kept, p)
		}
	}
	clear(u.Projectiles[len(kept):])
	u.Projectiles = kept
}

// ResetTo puts the ship back at center at rest and deducts penalty points.
func (u *Player) ResetTo(center mgl64.Vec2, penalty int) {
	u.Pos = center
	u.Vel = mgl64.Vec2{}
	u.Points -= penalty
}

func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
