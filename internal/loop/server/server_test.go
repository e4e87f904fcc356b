package server

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/gravitroids/internal/loop/config"
	"github.com/tomz197/gravitroids/internal/scores"
)

type fakeBoard struct {
	mu       sync.Mutex
	recorded []scores.Entry
}

func (f *fakeBoard) Record(_ context.Context, player string, points int, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, scores.Entry{Player: player, Points: points, Reason: reason})
	return nil
}

func (f *fakeBoard) Top(_ context.Context, n int) ([]scores.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]scores.Entry(nil), f.recorded...), nil
}

func newTestServer(t *testing.T, board ScoreBoard) *Server {
	t.Helper()
	tuning := config.DefaultTuning()
	tuning.SpawnRate = 0
	return NewServer(Options{
		Tuning: tuning,
		Seed:   1,
		Player: "tester",
		Scores: board,
		Logger: log.New(io.Discard),
	})
}

func waitDone(t *testing.T, s *Server) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop")
	}
}

func TestServerQuit(t *testing.T) {
	s := newTestServer(t, nil)
	if s.GetSnapshot() == nil {
		t.Fatal("expected an initial snapshot")
	}

	go s.Run(context.Background())
	s.SendIntents(Intents{Quit: true})
	waitDone(t, s)

	if _, ok := <-s.Events(); ok {
		t.Fatal("events channel should be closed")
	}
}

func TestServerContextCancel(t *testing.T) {
	s := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)
	cancel()
	waitDone(t, s)
}

func TestServerAdvancesSnapshots(t *testing.T) {
	s := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	deadline := time.After(2 * time.Second)
	for s.GetSnapshot().Tick < 3 {
		select {
		case <-deadline:
			t.Fatal("snapshots did not advance")
		case <-time.After(5 * time.Millisecond):
		}
	}
	s.SendIntents(Intents{Quit: true})
	waitDone(t, s)
}

func TestServerRecordsGameOver(t *testing.T) {
	board := &fakeBoard{}
	s := newTestServer(t, board)
	s.world.Player.Points = config.FireCost

	go s.Run(context.Background())
	s.SendIntents(Intents{Fire: true})

	select {
	case ev := <-s.Events():
		if ev.Type != EventGameOver || ev.Reason != OverNoPoints || ev.Points != 0 {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no game over event")
	}

	s.SendIntents(Intents{Quit: true})
	waitDone(t, s)

	board.mu.Lock()
	defer board.mu.Unlock()
	if len(board.recorded) != 1 {
		t.Fatalf("expected 1 recorded score, got %d", len(board.recorded))
	}
	got := board.recorded[0]
	if got.Player != "tester" || got.Reason != "ran out of points" {
		t.Fatalf("unexpected record %+v", got)
	}
	if snap := s.GetSnapshot(); snap.Over != OverNoPoints || len(snap.TopScores) != 1 {
		t.Fatalf("snapshot does not reflect game over: %+v", snap)
	}
}

func TestServerShutdownNotifiesClient(t *testing.T) {
	s := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)

	go func() {
		ev, ok := <-s.Events()
		if ok && ev.Type == EventServerShutdown {
			s.SendIntents(Intents{Quit: true})
		}
	}()

	s.Shutdown(2 * time.Second)
	cancel()
	waitDone(t, s)
}
