package server

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/gravitroids/internal/object"
	"github.com/tomz197/gravitroids/internal/scores"
)

// BodyView is a read-only copy of a body.
type BodyView struct {
	ID     object.BodyID
	Pos    mgl64.Vec2
	Vel    mgl64.Vec2
	Mass   float64
	Radius float64
	Color  object.Color
	Name   string
}

// Momentum returns mass times velocity.
func (b BodyView) Momentum() mgl64.Vec2 {
	return b.Vel.Mul(b.Mass)
}

// PlayerView is a read-only copy of the ship.
type PlayerView struct {
	Pos    mgl64.Vec2
	Vel    mgl64.Vec2
	Angle  float64
	Points int
	Mass   float64
	Radius float64
}

// ProjectileView is a read-only copy of a projectile.
type ProjectileView struct {
	Pos    mgl64.Vec2
	Angle  float64
	Radius float64
}

// Burst marks where a body was destroyed, for explosion effects.
type Burst struct {
	Pos    mgl64.Vec2
	Radius float64
}

// WorldSnapshot is an immutable copy of the world for rendering.
type WorldSnapshot struct {
	Tick        uint64
	Field       object.Screen
	Player      PlayerView
	Bodies      []BodyView
	Projectiles []ProjectileView
	Trajectory  Trajectory
	Selected    *BodyView
	MaxBodies   int
	Paused      bool
	Over        GameOverReason
	Bursts      []Burst // Destructions during the tick that produced this snapshot
	TopScores   []scores.Entry
}

// Snapshot copies the world into a WorldSnapshot. out supplies this tick's
// destruction bursts and may be the zero Outcome.
func (w *WorldState) Snapshot(out Outcome, top []scores.Entry) *WorldSnapshot {
	snap := &WorldSnapshot{
		Tick:       w.Tick,
		Field:      w.Field,
		MaxBodies:  w.Tuning.MaxBodies,
		Paused:     w.Paused,
		Over:       w.Over,
		Trajectory: w.Trajectory(),
		TopScores:  top,
	}

	u := w.Player
	snap.Player = PlayerView{
		Pos:    u.Pos,
		Vel:    u.Vel,
		Angle:  u.Angle,
		Points: u.Points,
		Mass:   u.Mass(),
		Radius: u.Radius,
	}

	snap.Bodies = make([]BodyView, 0, len(w.Bodies))
	for _, b := range w.Bodies {
		view := BodyView{
			ID:     b.ID,
			Pos:    b.Pos,
			Vel:    b.Vel,
			Mass:   b.Mass(),
			Radius: b.Radius(),
			Color:  b.Color,
			Name:   b.Name,
		}
		snap.Bodies = append(snap.Bodies, view)
		if b.ID == w.Selected {
			selected := view
			snap.Selected = &selected
		}
	}

	snap.Projectiles = make([]ProjectileView, 0, len(u.Projectiles))
	for _, p := range u.Projectiles {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{Pos: p.Pos, Angle: p.Angle, Radius: p.Radius})
	}

	for _, c := range out.Collisions {
		snap.Bursts = append(snap.Bursts, Burst{Pos: c.Pos, Radius: c.Radius})
	}
	for _, im := range out.Impacts {
		snap.Bursts = append(snap.Bursts, Burst{Pos: im.Pos, Radius: im.Radius})
	}

	return snap
}
