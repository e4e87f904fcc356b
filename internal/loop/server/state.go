package server

import (
	"math/rand"

	"github.com/tomz197/gravitroids/internal/loop/config"
	"github.com/tomz197/gravitroids/internal/object"
)

// GameOverReason says why a session ended.
type GameOverReason int

const (
	NotOver GameOverReason = iota
	OverCollision
	OverNoPoints
)

func (r GameOverReason) String() string {
	switch r {
	case OverCollision:
		return "planet collision"
	case OverNoPoints:
		return "ran out of points"
	default:
		return ""
	}
}

// WorldState is the simulation context of one session. It is owned by a
// single writer for the duration of a tick and is never shared directly
// with the shell, which only sees snapshots.
type WorldState struct {
	Field    object.Screen
	Tuning   config.Tuning
	Bodies   []*object.Body
	Player   *object.Player
	Selected object.BodyID // Zero when nothing is selected
	Paused   bool
	Over     GameOverReason
	Tick     uint64

	nextID   object.BodyID
	rng      *rand.Rand
	toSpawn  []*object.Body             // Bodies to add after the current pass
	toRemove map[object.BodyID]struct{} // Bodies removed at the end of this tick
}

// NewWorldState creates a world with a fresh player at the field center.
func NewWorldState(field object.Screen, tuning config.Tuning, rng *rand.Rand) *WorldState {
	w := &WorldState{
		Field:    field,
		Tuning:   tuning,
		rng:      rng,
		toRemove: make(map[object.BodyID]struct{}),
	}
	w.Reset()
	return w
}

// Reset starts a fresh session: no bodies, a new player, nothing selected.
// Body IDs keep counting so stale references from the last session never
// match a new body.
func (w *WorldState) Reset() {
	clear(w.Bodies)
	w.Bodies = w.Bodies[:0]
	w.toSpawn = w.toSpawn[:0]
	clear(w.toRemove)
	w.Player = object.NewPlayer(w.Field.Center())
	w.Selected = 0
	w.Paused = false
	w.Over = NotOver
}

// NewID hands out the next unused body ID.
func (w *WorldState) NewID() object.BodyID {
	w.nextID++
	return w.nextID
}

// AddBody inserts a body into the live set immediately.
func (w *WorldState) AddBody(b *object.Body) {
	w.Bodies = append(w.Bodies, b)
}

// Spawn queues a body to be added after the current pass.
func (w *WorldState) Spawn(b *object.Body) {
	w.toSpawn = append(w.toSpawn, b)
}

// FlushSpawned adds all queued bodies and clears the queue.
func (w *WorldState) FlushSpawned() {
	w.Bodies = append(w.Bodies, w.toSpawn...)
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// MarkRemoved schedules a body for removal at the end of the tick.
func (w *WorldState) MarkRemoved(id object.BodyID) {
	w.toRemove[id] = struct{}{}
}

// IsRemoved reports whether a body is scheduled for removal.
func (w *WorldState) IsRemoved(id object.BodyID) bool {
	_, ok := w.toRemove[id]
	return ok
}

// Body looks a live body up by ID.
func (w *WorldState) Body(id object.BodyID) *object.Body {
	if id == 0 {
		return nil
	}
	for _, b := range w.Bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// LiveCount is the number of bodies that will exist after this tick's
// removals and queued spawns are applied.
func (w *WorldState) LiveCount() int {
	n := len(w.toSpawn)
	for _, b := range w.Bodies {
		if !w.IsRemoved(b.ID) {
			n++
		}
	}
	return n
}

// Room is how many more bodies fit under the population cap.
func (w *WorldState) Room() int {
	room := w.Tuning.MaxBodies - w.LiveCount()
	if room < 0 {
		return 0
	}
	return room
}
