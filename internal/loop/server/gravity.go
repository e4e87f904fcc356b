package server

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/gravitroids/internal/loop/config"
	"github.com/tomz197/gravitroids/internal/object"
	"github.com/tomz197/gravitroids/internal/physics"
)

var (
	// bodyLaw couples planets to each other.
	bodyLaw = physics.Law{G: config.GravityConstant, Exponent: config.BodyForceExponent}
	// playerLaw couples the ship to planets.
	playerLaw = physics.Law{G: config.GravityConstant / 2, Exponent: 2}
)

// playerGravity sums the pull of every body on the ship. The sum is used as
// a velocity change directly. touching is true if any body overlaps the ship;
// overlapping bodies contribute no force.
func playerGravity(u *object.Player, bodies []*object.Body) (dv mgl64.Vec2, touching bool) {
	ship := u.Circle()
	for _, b := range bodies {
		f, overlap := physics.Pull(ship, b.Circle(), playerLaw)
		if overlap {
			touching = true
			continue
		}
		dv = dv.Add(f)
	}
	return dv, touching
}

// playerTouchesBody reports whether the ship overlaps any live body.
func playerTouchesBody(w *WorldState) bool {
	_, touching := playerGravity(w.Player, w.Bodies)
	return touching
}
