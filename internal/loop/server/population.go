package server

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/gravitroids/internal/loop/config"
	"github.com/tomz197/gravitroids/internal/object"
	"github.com/tomz197/gravitroids/internal/physics"
)

var (
	// ErrTooClose rejects a placement inside another body's clearance.
	ErrTooClose = errors.New("too close to an existing body")
	// ErrPopulationFull rejects a placement when the body cap is reached.
	ErrPopulationFull = errors.New("population cap reached")
)

// PlaceBody spawns a body at pos on request of the player. The request is
// declined with ErrPopulationFull at the cap, or with ErrTooClose when pos is
// within PlacementSpacing of any body's surface.
func (w *WorldState) PlaceBody(pos mgl64.Vec2) (*object.Body, error) {
	if w.Room() < 1 {
		return nil, fmt.Errorf("place body at (%.0f, %.0f): %w", pos.X(), pos.Y(), ErrPopulationFull)
	}
	for _, b := range w.Bodies {
		if w.IsRemoved(b.ID) {
			continue
		}
		if physics.Distance(pos, b.Pos) < b.Radius()+config.PlacementSpacing {
			return nil, fmt.Errorf("place body at (%.0f, %.0f): %w", pos.X(), pos.Y(), ErrTooClose)
		}
	}

	b := w.newBodyAt(pos)
	w.AddBody(b)
	return b, nil
}

// maybeSpawn runs the per-tick spawn trial. Nothing happens at the cap.
func (w *WorldState) maybeSpawn() *object.Body {
	if w.Room() < 1 {
		return nil
	}
	if w.rng.Float64() >= w.Tuning.SpawnChance() {
		return nil
	}
	b := w.newBodyAt(w.edgePoint())
	w.AddBody(b)
	return b
}

// edgePoint picks a random point just outside one of the four field edges.
func (w *WorldState) edgePoint() mgl64.Vec2 {
	width := float64(w.Field.Width)
	height := float64(w.Field.Height)
	off := config.SpawnEdgeOffset

	switch w.rng.Intn(4) {
	case 0: // Left
		return mgl64.Vec2{-off, w.rng.Float64() * height}
	case 1: // Right
		return mgl64.Vec2{width + off, w.rng.Float64() * height}
	case 2: // Top
		return mgl64.Vec2{w.rng.Float64() * width, -off}
	default: // Bottom
		return mgl64.Vec2{w.rng.Float64() * width, height + off}
	}
}

// newBodyAt creates a random body at pos heading roughly for the field
// center: up to 30 degrees off, at a random speed.
func (w *WorldState) newBodyAt(pos mgl64.Vec2) *object.Body {
	mass := uniform(w.rng.Float64(), config.SpawnMinMass, config.SpawnMaxMass)

	dir := w.Field.Center().Sub(pos)
	if d := dir.Len(); d > 0 {
		dir = dir.Mul(1 / d)
	} else {
		a := w.rng.Float64() * 2 * math.Pi
		dir = mgl64.Vec2{math.Cos(a), math.Sin(a)}
	}
	bias := uniform(w.rng.Float64(), -math.Pi/6, math.Pi/6)
	speed := uniform(w.rng.Float64(), config.SpawnMinSpeed, config.SpawnMaxSpeed)
	vel := rotate(dir, bias).Mul(speed)

	return object.NewBody(w.NewID(), pos, vel, mass, object.RandomColor(w.rng), object.GenerateName(w.rng))
}

// prune drops bodies marked for removal and bodies that drifted further than
// SpawnEdgeOffset plus their radius outside the field. Removal is keyed by
// ID in a single compaction pass. It returns the number of bodies removed.
func (w *WorldState) prune() int {
	for _, b := range w.Bodies {
		if w.Field.Beyond(b.Pos, config.SpawnEdgeOffset+b.Radius()) {
			w.MarkRemoved(b.ID)
		}
	}
	if len(w.toRemove) == 0 {
		return 0
	}

	before := len(w.Bodies)
	kept := w.Bodies[:0]
	for _, b := range w.Bodies {
		if !w.IsRemoved(b.ID) {
			kept = append(kept, b)
		}
	}
	clear(w.Bodies[len(kept):])
	w.Bodies = kept

	if w.IsRemoved(w.Selected) {
		w.Selected = 0
	}
	clear(w.toRemove)
	return before - len(kept)
}

func uniform(u, lo, hi float64) float64 {
	return lo + u*(hi-lo)
}

func rotate(v mgl64.Vec2, angle float64) mgl64.Vec2 {
	s, c := math.Sincos(angle)
	return mgl64.Vec2{v.X()*c - v.Y()*s, v.X()*s + v.Y()*c}
}
