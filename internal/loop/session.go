// Package loop pairs a simulation server with the terminal client that
// drives it. Every connection gets its own Session.
package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/gravitroids/internal/draw"
	"github.com/tomz197/gravitroids/internal/loop/client"
	"github.com/tomz197/gravitroids/internal/loop/config"
	"github.com/tomz197/gravitroids/internal/loop/server"
)

// Options configures a session.
type Options struct {
	Tuning       config.Tuning
	Player       string
	Scores       server.ScoreBoard // Optional leaderboard
	Logger       *log.Logger
	TermSizeFunc draw.TermSizeFunc
	IdleTimeout  time.Duration
}

// Session is one player's world and terminal.
type Session struct {
	server *server.Server
	client *client.Client
}

// NewSession creates a session reading input from r and drawing to w. The
// world stays paused on the title screen until the player starts a game.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) *Session {
	srv := server.NewServer(server.Options{
		Tuning:       opts.Tuning,
		Player:       opts.Player,
		Scores:       opts.Scores,
		Logger:       opts.Logger,
		WaitForStart: true,
	})
	c := client.NewClient(srv, r, w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Username:     opts.Player,
		IdleTimeout:  opts.IdleTimeout,
	})
	return &Session{server: srv, client: c}
}

// Run blocks until the player leaves or ctx is cancelled, then waits for the
// simulation to stop.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.server.Run(ctx)
	err := s.client.Run()

	cancel()
	<-s.server.Done()
	return err
}

// Shutdown tells the player the server is going away and waits up to
// timeout for the session to end.
func (s *Session) Shutdown(timeout time.Duration) {
	s.server.Shutdown(timeout)
}

// Run plays a single session on r and w.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	return NewSession(r, w, opts).Run(ctx)
}
