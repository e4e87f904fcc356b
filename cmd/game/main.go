package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/tomz197/gravitroids/internal/config"
	"github.com/tomz197/gravitroids/internal/loop"
	"github.com/tomz197/gravitroids/internal/scores"
	"golang.org/x/term"
)

const defaultScoresPath = "gravitroids.db"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The terminal belongs to the game; keep log output to warnings.
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "gravitroids",
		Level:  log.WarnLevel,
	})

	board, err := scores.Open(config.GetEnv("GRAVITROIDS_SCORES_DB", defaultScoresPath))
	if err != nil {
		return fmt.Errorf("failed to open scores: %w", err)
	}
	defer board.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(context.Background(), reader, os.Stdout, loop.Options{
		Tuning: config.TuningFromEnv(),
		Player: playerName(),
		Scores: board,
		Logger: logger,
	}); err != nil {
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}

// playerName is the name recorded on the leaderboard.
func playerName() string {
	if name := config.GetEnv("GRAVITROIDS_PLAYER", ""); name != "" {
		return name
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "player"
}
