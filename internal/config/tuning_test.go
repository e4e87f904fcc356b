package config

import (
	"testing"

	loopconfig "github.com/tomz197/gravitroids/internal/loop/config"
)

func TestTuningFromEnv(t *testing.T) {
	t.Setenv(EnvMaxBodies, "12")
	t.Setenv(EnvTickRate, "-5")
	t.Setenv(EnvTimeScale, "1")
	t.Setenv(EnvSpawnRate, "0")

	got := TuningFromEnv()
	want := loopconfig.Tuning{
		MaxBodies: 12,
		TickRate:  loopconfig.TickRate,
		TimeScale: 1,
		SpawnRate: 0,
	}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestTuningFromEnvDefaults(t *testing.T) {
	if got := TuningFromEnv(); got != loopconfig.DefaultTuning() {
		t.Fatalf("got %+v want defaults", got)
	}
}
