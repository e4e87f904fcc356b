package server

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/gravitroids/internal/loop/config"
	"github.com/tomz197/gravitroids/internal/object"
	"github.com/tomz197/gravitroids/internal/physics"
)

// Impact records a projectile striking a body.
type Impact struct {
	Body      object.BodyID
	Fragments []object.BodyID // Empty when the body shattered at the population cap
	Pos       mgl64.Vec2
	Radius    float64
}

// resolveImpacts checks every live projectile against every live body.
//
// Projectiles are processed in firing order and each strikes at most the
// first body it overlaps. A struck body is removed immediately for the rest
// of the pass, so a second projectile touching it in the same tick passes
// through and earns nothing. Bodies removed by the collision pass cannot be
// struck. Fragments are queued and only join the live set after the pass.
func resolveImpacts(w *WorldState) []Impact {
	u := w.Player
	var impacts []Impact

	kept := u.Projectiles[:0]
	for _, p := range u.Projectiles {
		target := struckBody(w, p)
		if target == nil {
			kept = append(kept, p)
			continue
		}
		impacts = append(impacts, splitBody(w, target, p))
		u.Points += config.HitReward
	}
	clear(u.Projectiles[len(kept):])
	u.Projectiles = kept

	return impacts
}

// struckBody returns the first live body p overlaps, or nil.
func struckBody(w *WorldState, p *object.Projectile) *object.Body {
	for _, b := range w.Bodies {
		if w.IsRemoved(b.ID) {
			continue
		}
		if physics.CirclesOverlap(p.Pos, p.Radius, b.Pos, b.Radius()) {
			return b
		}
	}
	return nil
}

// splitBody removes b and queues its two fragments. If the fragments would
// not fit under the population cap the body shatters without fragments.
func splitBody(w *WorldState, b *object.Body, p *object.Projectile) Impact {
	w.MarkRemoved(b.ID)
	impact := Impact{Body: b.ID, Pos: b.Pos, Radius: b.Radius()}

	if w.Room() < 2 {
		return impact
	}
	first, second := b.Split(p, w.NewID(), w.NewID())
	w.Spawn(first)
	w.Spawn(second)
	impact.Fragments = []object.BodyID{first.ID, second.ID}
	return impact
}
