package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("GRAVITROIDS_TEST_STR", "hello")
	if got := GetEnv("GRAVITROIDS_TEST_STR", "x"); got != "hello" {
		t.Fatalf("got %q want hello", got)
	}
	if got := GetEnv("GRAVITROIDS_TEST_UNSET", "x"); got != "x" {
		t.Fatalf("got %q want fallback", got)
	}
}

func TestGetEnvNumbers(t *testing.T) {
	t.Setenv("GRAVITROIDS_TEST_INT", "12")
	t.Setenv("GRAVITROIDS_TEST_BAD", "twelve")
	t.Setenv("GRAVITROIDS_TEST_FLOAT", "0.25")

	if got := GetEnvInt("GRAVITROIDS_TEST_INT", 3); got != 12 {
		t.Fatalf("GetEnvInt=%d want 12", got)
	}
	if got := GetEnvInt("GRAVITROIDS_TEST_BAD", 3); got != 3 {
		t.Fatalf("bad int should fall back, got %d", got)
	}
	if got := GetEnvFloat("GRAVITROIDS_TEST_FLOAT", 1); got != 0.25 {
		t.Fatalf("GetEnvFloat=%v want 0.25", got)
	}
	if got := GetEnvFloat("GRAVITROIDS_TEST_BAD", 1.5); got != 1.5 {
		t.Fatalf("bad float should fall back, got %v", got)
	}
}
