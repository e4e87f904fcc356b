package server

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/gravitroids/internal/loop/config"
)

// Outcome reports what happened during one tick.
type Outcome struct {
	Advanced    bool // False while paused or after game over
	OutOfBounds bool // The ship left the field and was reset
	Over        GameOverReason
	Collisions  []Collision
	Impacts     []Impact
	Rejected    []error // Declined placement requests
	Removed     int     // Bodies pruned this tick
}

// Step advances the world by one tick.
//
// Session commands (restart, pause, selection, placement) are handled first
// and also work while paused. Then, unless paused or over: ship controls,
// ship gravity and motion, projectile motion, the out-of-bounds reset, the
// game-over check, the body collision pass, projectile impacts, body motion
// and finally population upkeep.
func (w *WorldState) Step(in Intents) Outcome {
	var out Outcome

	if in.Restart {
		w.Reset()
	}
	if in.TogglePause {
		w.Paused = !w.Paused
	}
	for _, p := range in.Select {
		w.SelectAt(p)
	}
	for _, p := range in.Place {
		if _, err := w.PlaceBody(p); err != nil {
			out.Rejected = append(out.Rejected, err)
		}
	}

	if w.Paused || w.Over != NotOver {
		return out
	}
	out.Advanced = true
	w.Tick++

	// Ship controls
	u := w.Player
	if in.TurnLeft {
		u.TurnLeft()
	}
	if in.TurnRight {
		u.TurnRight()
	}
	if in.Thrust {
		u.Thrust()
	}
	if in.Fire && u.Fire() {
		u.Points -= config.FireCost
	}

	// Ship gravity and motion
	dv, _ := playerGravity(u, w.Bodies)
	u.Advance(dv, w.Field)

	if !w.Field.Contains(u.Pos) {
		u.ResetTo(w.Field.Center(), config.OutOfBoundsFine)
		out.OutOfBounds = true
	}

	if reason := w.gameOver(); reason != NotOver {
		w.Over = reason
		out.Over = reason
		return out
	}

	out.Collisions = resolveBodyCollisions(w)
	out.Impacts = resolveImpacts(w)

	for _, b := range w.Bodies {
		if !w.IsRemoved(b.ID) {
			b.Advance(w.Tuning.TimeScale)
		}
	}

	w.FlushSpawned()
	out.Removed = w.prune()
	w.maybeSpawn()

	return out
}

// gameOver checks the terminal conditions: no points left, or the ship
// touching a body.
func (w *WorldState) gameOver() GameOverReason {
	if w.Player.Points <= 0 {
		return OverNoPoints
	}
	if playerTouchesBody(w) {
		return OverCollision
	}
	return NotOver
}

// SelectAt selects the first body under p, or clears the selection.
func (w *WorldState) SelectAt(p mgl64.Vec2) {
	w.Selected = 0
	for _, b := range w.Bodies {
		if b.Contains(p) {
			w.Selected = b.ID
			return
		}
	}
}

// Trajectory predicts the ship's path against the current bodies.
func (w *WorldState) Trajectory() Trajectory {
	return PredictTrajectory(w.Player, w.Bodies, config.PredictSteps, config.PredictDt)
}
