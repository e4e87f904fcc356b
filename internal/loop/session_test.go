package loop

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func testOptions() Options {
	return Options{
		Player:       "tester",
		Logger:       log.New(io.Discard),
		TermSizeFunc: func() (int, int, error) { return 120, 40, nil },
	}
}

func TestSessionEndsWhenPlayerQuits(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(bufio.NewReader(strings.NewReader(" q")), &out, testOptions())

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("session did not end")
	}

	select {
	case <-s.server.Done():
	default:
		t.Fatal("simulation still running after the session ended")
	}
}

func TestSessionStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	s := NewSession(bufio.NewReader(pr), io.Discard, testOptions())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("session did not stop after cancel")
	}
}
