// Package config centralizes all tunable game parameters.
//
// Distances are playfield units and velocities are units per tick; the
// simulation runs on a fixed timestep so there is no delta time.
package config

import "time"

// Playfield size in logical units. Rendering scales to fit the terminal.
const (
	FieldWidth  = 1536
	FieldHeight = 864
)

// Gravity
const (
	GravityConstant   = 10.0
	BodyForceExponent = 1.75 // force falls off as d^1.75
	BodyRadiusScale   = 1.5  // radius = scale * mass^(3/4)
)

// Collisions
const (
	AnnihilationRatioMin = 0.8
	AnnihilationRatioMax = 1.25
)

// Population
const (
	MaxBodies        = 8
	SpawnRatePerSec  = 5.0
	SpawnEdgeOffset  = 20.0 // distance outside the field edge where random bodies appear
	SpawnMinMass     = 5.0
	SpawnMaxMass     = 50.0
	SpawnMinSpeed    = 0.5
	SpawnMaxSpeed    = 2.0
	PlacementSpacing = 50.0 // clearance beyond a body's radius required for placement
)

// Player
const (
	InitialPoints    = 10
	PlayerRadius     = 15.0
	PlayerTurnDeg    = 3.0
	PlayerThrust     = 0.1
	MaxPlayerSpeed   = 4.0
	PointsPerMass    = 25.0 // player mass = points / PointsPerMass
	FireCost         = 2
	HitReward        = 10
	OutOfBoundsFine  = 40
	MaxLiveBullets   = 50
	ProjectileSpeed  = 8.0
	ProjectileRadius = 5.0
)

// Trajectory preview
const (
	PredictSteps = 60
	PredictDt    = 0.5
)

// Timing
const (
	TickRate  = 60
	TickTime  = time.Second / TickRate
	TimeScale = 0.5
)

// Leaderboard
const (
	TopScoresShown = 5
)

// Shutdown
const (
	ShutdownDisplaySeconds = 5.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity (SSH sessions)
const (
	IdleTimeout = 5 * time.Minute  // Disconnect after this long without a key or click
	IdleWarning = 30 * time.Second // Show a countdown this long before disconnecting
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 240 // Render area clamp (columns)
	MaxTermHeight         = 70  // Render area clamp (rows)
)

// Tuning groups the parameters a session can override at startup.
type Tuning struct {
	MaxBodies int
	TickRate  int
	TimeScale float64
	SpawnRate float64 // expected random spawns per second of unscaled time
}

// DefaultTuning returns the compiled-in tuning.
func DefaultTuning() Tuning {
	return Tuning{
		MaxBodies: MaxBodies,
		TickRate:  TickRate,
		TimeScale: TimeScale,
		SpawnRate: SpawnRatePerSec,
	}
}

// SpawnChance is the per-tick probability of a random spawn.
func (t Tuning) SpawnChance() float64 {
	if t.TickRate <= 0 {
		return 0
	}
	return t.SpawnRate * t.TimeScale / float64(t.TickRate)
}

// TickDuration is the wall-clock length of one tick.
func (t Tuning) TickDuration() time.Duration {
	if t.TickRate <= 0 {
		return TickTime
	}
	return time.Second / time.Duration(t.TickRate)
}
