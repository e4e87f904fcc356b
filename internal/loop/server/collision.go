package server

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/gravitroids/internal/loop/config"
	"github.com/tomz197/gravitroids/internal/object"
	"github.com/tomz197/gravitroids/internal/physics"
)

// CollisionKind classifies a contact between two bodies.
type CollisionKind int

const (
	CollisionMerge      CollisionKind = iota // Heavier body absorbs the lighter one
	CollisionAnnihilate                      // Comparable masses destroy each other
)

// Collision records one resolved body-body contact.
type Collision struct {
	Kind     CollisionKind
	A, B     object.BodyID
	Survivor object.BodyID // Zero for annihilation
	Pos      mgl64.Vec2    // Where the destroyed body (or bodies' midpoint) was
	Radius   float64       // Radius of the largest destroyed body
}

// classifyCollision applies the mass-ratio rule: ratios within
// [AnnihilationRatioMin, AnnihilationRatioMax] annihilate, anything else merges.
func classifyCollision(mi, mj float64) CollisionKind {
	r := mi / mj
	if r >= config.AnnihilationRatioMin && r <= config.AnnihilationRatioMax {
		return CollisionAnnihilate
	}
	return CollisionMerge
}

// resolveBodyCollisions runs the gravity and collision pass over all body
// pairs.
//
// Bodies are visited in container order. For each outer body the inner loop
// accumulates the pull of every other body into its velocity until the first
// overlapping partner is found; that contact is resolved and ends the inner
// loop. Only bodies marked for removal drop out of the pass: a merge survivor
// keeps attracting and colliding with its new mass for the rest of the tick.
// Removals are only recorded here and applied by prune.
func resolveBodyCollisions(w *WorldState) []Collision {
	var collisions []Collision

	for _, bi := range w.Bodies {
		if w.IsRemoved(bi.ID) {
			continue
		}
		for _, bj := range w.Bodies {
			if bj == bi || w.IsRemoved(bj.ID) {
				continue
			}
			f, overlap := physics.Pull(bi.Circle(), bj.Circle(), bodyLaw)
			if overlap {
				collisions = append(collisions, collide(w, bi, bj))
				break
			}
			bi.Vel = bi.Vel.Add(f.Mul(1 / bi.Mass()))
		}
	}
	return collisions
}

// collide resolves an overlapping pair according to classifyCollision.
func collide(w *WorldState, a, b *object.Body) Collision {
	if classifyCollision(a.Mass(), b.Mass()) == CollisionAnnihilate {
		w.MarkRemoved(a.ID)
		w.MarkRemoved(b.ID)
		return Collision{
			Kind:   CollisionAnnihilate,
			A:      a.ID,
			B:      b.ID,
			Pos:    a.Pos.Add(b.Pos).Mul(0.5),
			Radius: max(a.Radius(), b.Radius()),
		}
	}

	survivor, loser := mergeBodies(a, b)
	w.MarkRemoved(loser.ID)
	return Collision{
		Kind:     CollisionMerge,
		A:        a.ID,
		B:        b.ID,
		Survivor: survivor.ID,
		Pos:      loser.Pos,
		Radius:   loser.Radius(),
	}
}

// mergeBodies folds the lighter body into the heavier one, conserving mass
// and linear momentum. The survivor keeps its position. The caller removes
// the loser.
func mergeBodies(a, b *object.Body) (survivor, loser *object.Body) {
	total := a.Mass() + b.Mass()
	vel := a.Momentum().Add(b.Momentum()).Mul(1 / total)

	survivor, loser = a, b
	if b.Mass() > a.Mass() {
		survivor, loser = b, a
	}
	survivor.SetMass(total)
	survivor.Vel = vel
	return survivor, loser
}
