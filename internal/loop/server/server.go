// Package server owns the simulation of one game session. It runs the
// fixed-timestep loop, consumes intents submitted by the shell and publishes
// read-only snapshots for rendering.
package server

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/gravitroids/internal/loop/config"
	"github.com/tomz197/gravitroids/internal/object"
	"github.com/tomz197/gravitroids/internal/scores"
)

// GameServer is the interface clients use to communicate with a session.
// Decouples the Client from the concrete Server implementation.
type GameServer interface {
	SendIntents(in Intents)
	GetSnapshot() *WorldSnapshot
	Events() <-chan Event
}

// ScoreBoard persists finished sessions. *scores.Store implements it.
type ScoreBoard interface {
	Record(ctx context.Context, player string, points int, reason string) error
	Top(ctx context.Context, n int) ([]scores.Entry, error)
}

// Compile-time checks.
var (
	_ GameServer = (*Server)(nil)
	_ ScoreBoard = (*scores.Store)(nil)
)

// EventType identifies the type of session event.
type EventType int

const (
	EventGameOver EventType = iota
	EventPlacementRejected
	EventServerShutdown
)

// Event is sent from the session to its client.
type Event struct {
	Type   EventType
	Reason GameOverReason // For game over
	Points int            // Final points, for game over
	Err    error          // For rejected placements
}

// Options configures a session.
type Options struct {
	Tuning config.Tuning
	Field  object.Screen
	Seed   int64  // Zero picks a time-based seed
	Player string // Name recorded on the leaderboard
	Scores ScoreBoard
	Logger *log.Logger

	// WaitForStart holds the world paused until the first restart intent,
	// so nothing happens while a title screen is shown.
	WaitForStart bool
}

// Server runs one session's world.
type Server struct {
	world    *WorldState
	snapshot atomic.Pointer[WorldSnapshot]
	intentCh chan Intents
	eventsCh chan Event
	done     chan struct{}

	mu     sync.Mutex // Guards closed against late emits
	closed bool

	player string
	scores ScoreBoard
	top    []scores.Entry
	logger *log.Logger
}

// NewServer creates a session. Zero-valued options fall back to the
// compiled-in defaults.
func NewServer(opts Options) *Server {
	if opts.Tuning == (config.Tuning{}) {
		opts.Tuning = config.DefaultTuning()
	}
	if opts.Field == (object.Screen{}) {
		opts.Field = object.NewScreen(config.FieldWidth, config.FieldHeight)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Player == "" {
		opts.Player = "anonymous"
	}

	world := NewWorldState(opts.Field, opts.Tuning, rand.New(rand.NewSource(opts.Seed)))
	world.Paused = opts.WaitForStart
	s := &Server{
		world:    world,
		intentCh: make(chan Intents, 256),
		eventsCh: make(chan Event, 16),
		done:     make(chan struct{}),
		player:   opts.Player,
		scores:   opts.Scores,
		logger:   opts.Logger.With("player", opts.Player),
	}

	// Initial snapshot so clients can render before the first tick
	s.snapshot.Store(world.Snapshot(Outcome{}, nil))
	return s
}

// Run starts the session loop. It blocks until the context is cancelled or
// the client sends a quit intent.
func (s *Server) Run(ctx context.Context) {
	defer s.stop()

	s.refreshTopScores(ctx)
	s.logger.Info("session started", "seed_bodies", len(s.world.Bodies))

	tickTime := s.world.Tuning.TickDuration()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()

		in := s.collectIntents()
		if in.Quit {
			s.logger.Info("session quit", "points", s.world.Player.Points)
			return
		}
		if in.Restart {
			s.logger.Info("session restarted")
		}

		out := s.world.Step(in)
		s.handleOutcome(ctx, out)
		s.snapshot.Store(s.world.Snapshot(out, s.top))

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < tickTime {
			time.Sleep(tickTime - elapsed)
		}
	}
}

// Shutdown notifies the client and waits for the session loop to end (up to
// the given timeout). The caller should cancel the run context afterwards.
func (s *Server) Shutdown(timeout time.Duration) {
	s.emit(Event{Type: EventServerShutdown})

	select {
	case <-s.done:
	case <-time.After(timeout):
	}
}

// Done is closed when Run returns.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// SendIntents submits intents for the next tick.
func (s *Server) SendIntents(in Intents) {
	select {
	case s.intentCh <- in:
	default:
		// Intent channel full, drop
	}
}

// GetSnapshot returns the current world snapshot.
func (s *Server) GetSnapshot() *WorldSnapshot {
	return s.snapshot.Load()
}

// Events returns the channel session events are delivered on. It is closed
// when the session ends.
func (s *Server) Events() <-chan Event {
	return s.eventsCh
}

// collectIntents drains and merges everything submitted since the last tick.
func (s *Server) collectIntents() Intents {
	var in Intents
	for {
		select {
		case next := <-s.intentCh:
			in.Merge(next)
		default:
			return in
		}
	}
}

// handleOutcome turns a tick's outcome into log lines, events and
// leaderboard updates.
func (s *Server) handleOutcome(ctx context.Context, out Outcome) {
	for _, err := range out.Rejected {
		s.logger.Debug("placement rejected", "err", err)
		s.emit(Event{Type: EventPlacementRejected, Err: err})
	}
	if out.OutOfBounds {
		s.logger.Debug("ship left the field", "points", s.world.Player.Points)
	}
	if out.Over == NotOver {
		return
	}

	points := s.world.Player.Points
	s.logger.Info("game over", "reason", out.Over, "points", points, "tick", s.world.Tick)
	if s.scores != nil {
		if err := s.scores.Record(ctx, s.player, points, out.Over.String()); err != nil {
			s.logger.Error("failed to record score", "err", err)
		}
		s.refreshTopScores(ctx)
	}
	s.emit(Event{Type: EventGameOver, Reason: out.Over, Points: points})
}

// refreshTopScores reloads the leaderboard shown in snapshots.
func (s *Server) refreshTopScores(ctx context.Context) {
	if s.scores == nil {
		return
	}
	top, err := s.scores.Top(ctx, config.TopScoresShown)
	if err != nil {
		s.logger.Error("failed to load top scores", "err", err)
		return
	}
	s.top = top
}

// emit delivers an event without blocking the tick.
func (s *Server) emit(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.eventsCh <- ev:
	default:
	}
}

// stop closes the events channel and marks the session done.
func (s *Server) stop() {
	s.mu.Lock()
	s.closed = true
	close(s.eventsCh)
	s.mu.Unlock()
	close(s.done)
}
