// Package client is the terminal front end of a session: it turns key and
// mouse input into intents and renders the server's snapshots.
package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/gravitroids/internal/draw"
	"github.com/tomz197/gravitroids/internal/input"
	"github.com/tomz197/gravitroids/internal/loop/config"
	"github.com/tomz197/gravitroids/internal/loop/server"
	"github.com/tomz197/gravitroids/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	state        *ClientState
	canvas       *draw.Canvas
	frame        *draw.Frame // Output queued for the current frame
	writer       io.Writer
	inputStream  *input.Stream
	username     string
	termSizeFunc draw.TermSizeFunc
	idleTimeout  time.Duration
	rng          *rand.Rand // Effects only, never the simulation
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	IdleTimeout  time.Duration // Zero disables the inactivity disconnect
}

// NewClient creates a new client attached to the given session.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := fitTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.FieldWidth, config.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       gs,
		state:        NewClientState(),
		canvas:       canvas,
		frame:        draw.NewFrame(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		idleTimeout:  opts.IdleTimeout,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run starts the client loop. Blocks until the player quits, the input ends
// or the session stops.
func (c *Client) Run() error {
	draw.EnterGameMode(c.writer)
	defer draw.LeaveGameMode(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		// Handle game state
		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateOver:
			c.updateOverState()
		case GameStateShutdown:
			c.updateShutdownState()
		}
		c.updateEffects()

		// Draw frame
		if err := c.drawFrame(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// End the session
	c.server.SendIntents(server.Intents{Quit: true})
	return nil
}

// processInput reads input and forwards it to the session while playing.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)
	if c.state.Input.Quit || c.inputStream.Closed() {
		c.state.Running = false
		return
	}
	c.checkIdle(time.Now())

	if c.state.GameState != GameStatePlaying {
		return
	}
	intents := buildIntents(c.state.Input, c.canvas)
	if !intents.Empty() {
		c.server.SendIntents(intents)
	}
}

// checkIdle disconnects a client that has not pressed anything for the idle
// timeout, warning it during the last IdleWarning.
func (c *Client) checkIdle(now time.Time) {
	if len(c.state.Input.Pressed) > 0 || len(c.state.Input.Clicks) > 0 {
		c.state.lastActivity = now
	}
	if c.idleTimeout <= 0 {
		return
	}
	left := c.idleTimeout - now.Sub(c.state.lastActivity)
	switch {
	case left <= 0:
		c.state.Running = false
	case left <= config.IdleWarning:
		c.state.setNotice(fmt.Sprintf("Idle - disconnecting in %d s", int(left.Seconds())+1), 0.5)
	}
}

// buildIntents maps one frame of input to simulation intents. Left clicks
// select, right clicks place; clicks outside the playfield are ignored.
func buildIntents(in input.Input, canvas *draw.Canvas) server.Intents {
	intents := server.Intents{
		TurnLeft:    in.Left,
		TurnRight:   in.Right,
		Thrust:      in.Up,
		Fire:        in.Fire,
		TogglePause: in.Pause,
		Restart:     in.Restart,
	}
	for _, click := range in.Clicks {
		x, y, ok := canvas.TerminalToLogical(click.Col, click.Row)
		if !ok {
			continue
		}
		p := mgl64.Vec2{x, y}
		switch click.Button {
		case input.MouseLeft:
			intents.Select = append(intents.Select, p)
		case input.MouseRight:
			intents.Place = append(intents.Place, p)
		}
	}
	return intents
}

// processServerEvents handles events from the session.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.server.Events():
			if !ok {
				// Session ended
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventGameOver:
				c.endGame(event.Reason, event.Points)
			case server.EventPlacementRejected:
				c.state.setNotice("Cannot place body: "+rejectReason(event.Err), 2)
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// rejectReason turns a placement error into a short message.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, server.ErrTooClose):
		return "too close to another body"
	case errors.Is(err, server.ErrPopulationFull):
		return "too many bodies"
	case err != nil:
		return err.Error()
	}
	return "unknown reason"
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := fitTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.frame.ClearScreen()
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.frame.SetOffset(offsetCol, offsetRow)
}

// fitTermSize clamps terminal dimensions to the max render resolution, keeps
// the playfield's aspect ratio (a cell is two pixels tall) and computes the
// centering offset for the render area.
func fitTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(min(termWidth, config.MaxTermWidth), 1)
	renderHeight = max(min(termHeight, config.MaxTermHeight), 1)

	aspect := float64(config.FieldHeight) / float64(config.FieldWidth)
	if h := int(float64(renderWidth) * aspect / 2); h <= renderHeight {
		renderHeight = max(h, 1)
	} else {
		renderWidth = max(int(float64(renderHeight)*2/aspect), 1)
	}

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

// updateStartState handles the title screen.
func (c *Client) updateStartState() {
	if c.state.Input.Fire || c.state.Input.Enter {
		c.startGame()
	}
}

// updatePlayingState handles the playing state.
func (c *Client) updatePlayingState() {
	// Fallback if the game over event was dropped. Snapshots from before the
	// restart still carry the previous session's result.
	snap := c.server.GetSnapshot()
	if snap != nil && snap.Tick > c.state.startTick && snap.Over != server.NotOver {
		c.endGame(snap.Over, snap.Player.Points)
	}
}

// updateOverState handles the game over screen.
func (c *Client) updateOverState() {
	if c.state.Input.Fire || c.state.Input.Enter || c.state.Input.Restart {
		c.startGame()
	}
}

// startGame starts a fresh session.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)
	if snap := c.server.GetSnapshot(); snap != nil {
		c.state.startTick = snap.Tick
	}
	c.server.SendIntents(server.Intents{Restart: true})
	c.state.GameState = GameStatePlaying
}

// endGame switches to the game over screen.
func (c *Client) endGame(reason server.GameOverReason, points int) {
	if c.state.GameState != GameStatePlaying {
		return
	}
	c.state.Over = reason
	c.state.FinalPoints = points
	c.state.GameState = GameStateOver
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// updateEffects spawns particles for destructions in new snapshots and ages
// the existing ones.
func (c *Client) updateEffects() {
	dt := c.state.delta.Seconds()
	if c.state.noticeTimer > 0 {
		c.state.noticeTimer -= dt
	}

	snap := c.server.GetSnapshot()
	if snap != nil && snap.Tick != c.state.lastTick {
		c.state.lastTick = snap.Tick
		for _, b := range snap.Bursts {
			c.state.particles = object.SpawnExplosion(c.state.particles, c.rng, b.Pos, b.Radius)
		}
		if c.state.GameState == GameStatePlaying && c.state.Input.Up && !snap.Paused {
			u := snap.Player
			facing := object.Direction(u.Angle)
			tail := u.Pos.Sub(facing.Mul(u.Radius))
			c.state.particles = object.SpawnThrust(c.state.particles, c.rng, tail, facing)
		}
	}

	kept := c.state.particles[:0]
	for _, p := range c.state.particles {
		if p.Update(dt) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(c.state.particles[len(kept):])
	c.state.particles = kept
}
