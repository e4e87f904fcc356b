package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/gravitroids/internal/config"
	"github.com/tomz197/gravitroids/internal/draw"
	"github.com/tomz197/gravitroids/internal/loop"
	loopconfig "github.com/tomz197/gravitroids/internal/loop/config"
	"github.com/tomz197/gravitroids/internal/scores"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultScoresPath  = "/app/data/scores.db"
	shutdownTimeout    = 15 * time.Second
)

// gameHost holds what all SSH sessions share: the leaderboard, the tuning and
// the set of running sessions.
type gameHost struct {
	ctx    context.Context
	logger *log.Logger
	tuning loopconfig.Tuning
	board  *scores.Store

	mu       sync.Mutex
	sessions map[*loop.Session]struct{}
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gravitroids",
	})
	if config.GetEnv("GRAVITROIDS_DEBUG", "") != "" {
		logger.SetLevel(log.DebugLevel)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	scoresPath := config.GetEnv("GRAVITROIDS_SCORES_DB", defaultScoresPath)
	tuning := config.TuningFromEnv()
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath,
		"scores", scoresPath, "maxBodies", tuning.MaxBodies, "tickRate", tuning.TickRate)

	board, err := scores.Open(scoresPath)
	if err != nil {
		logger.Fatal("failed to open scores", "err", err)
	}
	defer board.Close()

	ctx, cancelSessions := context.WithCancel(context.Background())
	defer cancelSessions()

	gh := &gameHost{
		ctx:      ctx,
		logger:   logger,
		tuning:   tuning,
		board:    board,
		sessions: make(map[*loop.Session]struct{}),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gh.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// Notify players and give them time to see the message
	gh.shutdownSessions(shutdownTimeout)
	cancelSessions()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// gameMiddleware handles SSH sessions and runs one game per connection.
func (gh *gameHost) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		gh.logger.Info("New game session", "user", sess.User(), "terminal", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		session := loop.NewSession(bufio.NewReader(sess), sess, loop.Options{
			Tuning:       gh.tuning,
			Player:       sess.User(),
			Scores:       gh.board,
			Logger:       gh.logger,
			TermSizeFunc: sizeTracker.getSize,
			IdleTimeout:  loopconfig.IdleTimeout,
		})
		gh.track(session)
		if err := session.Run(gh.ctx); err != nil {
			gh.logger.Error("Game error", "user", sess.User(), "err", err)
		}
		gh.untrack(session)

		gh.logger.Info("Session ended", "user", sess.User())
		next(sess)
	}
}

func (gh *gameHost) track(s *loop.Session) {
	gh.mu.Lock()
	defer gh.mu.Unlock()
	gh.sessions[s] = struct{}{}
}

func (gh *gameHost) untrack(s *loop.Session) {
	gh.mu.Lock()
	defer gh.mu.Unlock()
	delete(gh.sessions, s)
}

// shutdownSessions notifies every connected player and waits (up to timeout)
// for their sessions to end.
func (gh *gameHost) shutdownSessions(timeout time.Duration) {
	gh.mu.Lock()
	sessions := make([]*loop.Session, 0, len(gh.sessions))
	for s := range gh.sessions {
		sessions = append(sessions, s)
	}
	gh.mu.Unlock()

	gh.logger.Info("Notifying connected players about shutdown...", "sessions", len(sessions))
	var wg sync.WaitGroup
	for _, s := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Shutdown(timeout)
		}()
	}
	wg.Wait()
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
