package server

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/gravitroids/internal/object"
	"github.com/tomz197/gravitroids/internal/physics"
)

// Trajectory is the predicted path of the ship.
type Trajectory struct {
	Points []mgl64.Vec2 // Starts at the current position
	Hit    bool         // The path ends inside a body
}

// PredictTrajectory integrates the ship's path forward with fixed Euler
// steps under the ship-planet gravity law. Bodies are held still and do not
// interact with each other. Neither the player nor the bodies are modified,
// so repeated calls with the same inputs return the same path.
func PredictTrajectory(u *object.Player, bodies []*object.Body, steps int, dt float64) Trajectory {
	pos, vel := u.Pos, u.Vel
	mass := u.Mass()

	points := make([]mgl64.Vec2, 1, steps+1)
	points[0] = pos

	for i := 0; i < steps; i++ {
		var acc mgl64.Vec2
		probe := physics.Circle{Pos: pos, Mass: mass}
		for _, b := range bodies {
			if physics.PointStrictlyInCircle(pos, b.Pos, b.Radius()) {
				return Trajectory{Points: points, Hit: true}
			}
			f, _ := physics.Pull(probe, b.Circle(), playerLaw)
			acc = acc.Add(f)
		}
		vel = vel.Add(acc.Mul(dt))
		pos = pos.Add(vel.Mul(dt))
		points = append(points, pos)
	}
	return Trajectory{Points: points}
}
