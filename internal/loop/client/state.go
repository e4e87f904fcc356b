package client

import (
	"time"

	"github.com/tomz197/gravitroids/internal/input"
	"github.com/tomz197/gravitroids/internal/loop/server"
	"github.com/tomz197/gravitroids/internal/object"
)

// GameState represents the current screen of a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateOver                      // Session ended, show reason and leaderboard
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection presentation state. The simulation
// itself lives in the server; this is only what the terminal needs.
type ClientState struct {
	Input         input.Input
	GameState     GameState             // This client's screen
	prevGameState GameState             // Screen drawn last frame
	Over          server.GameOverReason // Why the last session ended
	FinalPoints   int                   // Points when the last session ended
	Running       bool                  // Client loop running
	delta         time.Duration         // Frame delta time (client-side)
	shutdownTimer float64               // Countdown before auto-disconnect on shutdown
	notice        string                // Transient message, e.g. a declined placement
	noticeTimer   float64               // Seconds the notice stays visible
	lastTick      uint64                // Last snapshot tick turned into effects
	startTick     uint64                // Snapshot tick when the current game was requested
	lastActivity  time.Time             // Last key press or click
	particles     []*object.Particle    // Client-side explosion and exhaust effects
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		prevGameState: -1,
		Running:       true,
		lastActivity:  time.Now(),
	}
}

// setNotice shows msg for the given number of seconds.
func (s *ClientState) setNotice(msg string, seconds float64) {
	s.notice = msg
	s.noticeTimer = seconds
}
