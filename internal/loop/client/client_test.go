package client

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/gravitroids/internal/draw"
	"github.com/tomz197/gravitroids/internal/input"
	"github.com/tomz197/gravitroids/internal/loop/config"
	"github.com/tomz197/gravitroids/internal/loop/server"
	"github.com/tomz197/gravitroids/internal/object"
)

type fakeServer struct {
	mu      sync.Mutex
	intents []server.Intents
	snap    *server.WorldSnapshot
	events  chan server.Event
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		snap: &server.WorldSnapshot{
			Field:     object.NewScreen(config.FieldWidth, config.FieldHeight),
			MaxBodies: config.MaxBodies,
		},
		events: make(chan server.Event, 4),
	}
}

func (f *fakeServer) SendIntents(in server.Intents) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.intents = append(f.intents, in)
}

func (f *fakeServer) GetSnapshot() *server.WorldSnapshot {
	return f.snap
}

func (f *fakeServer) Events() <-chan server.Event {
	return f.events
}

func fixedSize(w, h int) draw.TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func TestFitTermSizeKeepsAspect(t *testing.T) {
	tests := []struct {
		termW, termH int
	}{
		{80, 24}, {200, 30}, {100, 60}, {400, 200},
	}
	aspect := float64(config.FieldHeight) / float64(config.FieldWidth)
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d", tt.termW, tt.termH), func(t *testing.T) {
			w, h, offCol, offRow := fitTermSize(tt.termW, tt.termH)
			if w > tt.termW || h > tt.termH || w > config.MaxTermWidth || h > config.MaxTermHeight {
				t.Fatalf("render area %dx%d does not fit", w, h)
			}
			got := float64(h*2) / float64(w)
			if got > aspect*1.1 || got < aspect*0.9 {
				t.Fatalf("aspect %v, want about %v", got, aspect)
			}
			if offCol != (tt.termW-w)/2 || offRow != (tt.termH-h)/2 {
				t.Fatalf("offset (%d, %d) does not center", offCol, offRow)
			}
		})
	}
}

func TestBuildIntents(t *testing.T) {
	canvas := draw.NewScaledCanvas(96, 27, config.FieldWidth, config.FieldHeight)
	in := input.Input{
		Left:  true,
		Up:    true,
		Fire:  true,
		Pause: true,
		Clicks: []input.Click{
			{Button: input.MouseLeft, Col: 1, Row: 1},
			{Button: input.MouseRight, Col: 49, Row: 14},
			{Button: input.MouseMiddle, Col: 2, Row: 2},
			{Button: input.MouseRight, Col: 500, Row: 1},
		},
	}

	intents := buildIntents(in, canvas)
	if !intents.TurnLeft || intents.TurnRight || !intents.Thrust || !intents.Fire || !intents.TogglePause {
		t.Fatalf("keys mapped wrong: %+v", intents)
	}
	if len(intents.Select) != 1 || intents.Select[0] != (mgl64.Vec2{0, 16}) {
		t.Fatalf("select %v", intents.Select)
	}
	if len(intents.Place) != 1 {
		t.Fatalf("expected one placement, got %v", intents.Place)
	}
	p := intents.Place[0]
	if p.X() != 768 || p.Y() != 432 {
		t.Fatalf("placement at %v, want (768, 432)", p)
	}
}

func TestRejectReason(t *testing.T) {
	err := fmt.Errorf("place body at (1, 2): %w", server.ErrTooClose)
	if got := rejectReason(err); got != "too close to another body" {
		t.Fatalf("got %q", got)
	}
	if got := rejectReason(server.ErrPopulationFull); got != "too many bodies" {
		t.Fatalf("got %q", got)
	}
}

func TestClientQuit(t *testing.T) {
	gs := newFakeServer()
	var out bytes.Buffer
	c := NewClient(gs, bufio.NewReader(strings.NewReader(" q")), &out, ClientOptions{
		TermSizeFunc: fixedSize(120, 40),
		Username:     "tester",
	})

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("client did not exit")
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()
	if len(gs.intents) == 0 || !gs.intents[len(gs.intents)-1].Quit {
		t.Fatalf("client should end the session on exit, got %+v", gs.intents)
	}
	if out.Len() == 0 {
		t.Fatal("nothing was drawn")
	}
}

func TestClientGameOverEvent(t *testing.T) {
	gs := newFakeServer()
	c := NewClient(gs, bufio.NewReader(strings.NewReader("")), &bytes.Buffer{}, ClientOptions{
		TermSizeFunc: fixedSize(120, 40),
	})
	c.state.GameState = GameStatePlaying

	gs.events <- server.Event{Type: server.EventGameOver, Reason: server.OverCollision, Points: 42}
	c.processServerEvents()

	if c.state.GameState != GameStateOver || c.state.Over != server.OverCollision || c.state.FinalPoints != 42 {
		t.Fatalf("unexpected state %+v", c.state)
	}
}

func TestClientIgnoresStaleGameOver(t *testing.T) {
	gs := newFakeServer()
	gs.snap.Tick = 10
	gs.snap.Over = server.OverNoPoints
	c := NewClient(gs, bufio.NewReader(strings.NewReader("")), &bytes.Buffer{}, ClientOptions{
		TermSizeFunc: fixedSize(120, 40),
	})

	c.startGame()
	c.updatePlayingState()
	if c.state.GameState != GameStatePlaying {
		t.Fatal("result of the previous game must not end the new one")
	}

	gs.snap = &server.WorldSnapshot{Tick: 11, Over: server.OverCollision}
	c.updatePlayingState()
	if c.state.GameState != GameStateOver {
		t.Fatal("game over in a newer snapshot should end the game")
	}
}

func TestCheckIdle(t *testing.T) {
	gs := newFakeServer()
	c := NewClient(gs, bufio.NewReader(strings.NewReader("")), &bytes.Buffer{}, ClientOptions{
		TermSizeFunc: fixedSize(120, 40),
		IdleTimeout:  time.Minute,
	})
	start := time.Now()
	c.state.lastActivity = start

	c.checkIdle(start.Add(10 * time.Second))
	if !c.state.Running || c.state.noticeTimer > 0 {
		t.Fatal("early idle should neither warn nor disconnect")
	}

	c.checkIdle(start.Add(45 * time.Second))
	if !c.state.Running || c.state.noticeTimer <= 0 {
		t.Fatal("expected an idle warning")
	}

	c.state.Input = input.Input{Pressed: []byte{'w'}}
	c.checkIdle(start.Add(50 * time.Second))
	if !c.state.lastActivity.Equal(start.Add(50 * time.Second)) {
		t.Fatal("key press should reset the idle timer")
	}

	c.state.Input = input.Input{}
	c.checkIdle(start.Add(111 * time.Second))
	if c.state.Running {
		t.Fatal("client should disconnect after the idle timeout")
	}
}
