package config

import loopconfig "github.com/tomz197/gravitroids/internal/loop/config"

// Environment variables that override the compiled-in tuning.
const (
	EnvMaxBodies = "GRAVITROIDS_MAX_BODIES"
	EnvTickRate  = "GRAVITROIDS_TICK_RATE"
	EnvTimeScale = "GRAVITROIDS_TIME_SCALE"
	EnvSpawnRate = "GRAVITROIDS_SPAWN_RATE"
)

// TuningFromEnv returns the default tuning with environment overrides
// applied. Values that are not positive keep their default; a spawn rate of
// zero is allowed and turns random spawns off.
func TuningFromEnv() loopconfig.Tuning {
	t := loopconfig.DefaultTuning()
	if n := GetEnvInt(EnvMaxBodies, t.MaxBodies); n > 0 {
		t.MaxBodies = n
	}
	if n := GetEnvInt(EnvTickRate, t.TickRate); n > 0 {
		t.TickRate = n
	}
	if f := GetEnvFloat(EnvTimeScale, t.TimeScale); f > 0 {
		t.TimeScale = f
	}
	if f := GetEnvFloat(EnvSpawnRate, t.SpawnRate); f >= 0 {
		t.SpawnRate = f
	}
	return t
}
