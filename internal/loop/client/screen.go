package client

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/gravitroids/internal/draw"
	"github.com/tomz197/gravitroids/internal/loop/config"
	"github.com/tomz197/gravitroids/internal/loop/server"
	"github.com/tomz197/gravitroids/internal/object"
)

// Ship outline: nose angle offset of the two rear corners, in radians.
const shipWingAngle = 140 * math.Pi / 180

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen transitions, do a full terminal clear so UI elements from
	// the previous screen don't persist.
	if c.state.GameState != c.state.prevGameState {
		c.frame.ClearScreen()
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
	}

	c.canvas.Clear()

	snap := c.server.GetSnapshot()
	if snap != nil {
		if c.state.GameState == GameStatePlaying {
			c.drawTrajectory(snap.Trajectory)
		}
		c.drawBodies(snap)
		if c.state.GameState == GameStatePlaying {
			c.drawProjectiles(snap.Projectiles)
			c.drawShip(snap.Player)
		}
	}
	c.drawParticles()

	// Render canvas to terminal
	c.canvas.Render(c.frame)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.frame)

	// Draw UI overlay
	c.drawUI(snap)

	return c.frame.Flush()
}

// drawBodies draws every planet, outlining the selected one.
func (c *Client) drawBodies(snap *server.WorldSnapshot) {
	for _, b := range snap.Bodies {
		center := draw.Point{X: b.Pos.X(), Y: b.Pos.Y()}
		c.canvas.DrawCircle(center, b.Radius, true, toRGB(b.Color))
		if snap.Selected != nil && b.ID == snap.Selected.ID {
			c.canvas.DrawCircle(center, b.Radius+6, false, draw.White)
		}
	}
}

// drawProjectiles draws the player's live bullets.
func (c *Client) drawProjectiles(projectiles []server.ProjectileView) {
	for _, p := range projectiles {
		c.canvas.DrawCircle(draw.Point{X: p.Pos.X(), Y: p.Pos.Y()}, p.Radius, true, draw.Yellow)
	}
}

// drawShip draws the player as a triangle pointing along its facing.
func (c *Client) drawShip(u server.PlayerView) {
	rad := u.Angle * math.Pi / 180
	corner := func(a, r float64) draw.Point {
		return draw.Point{X: u.Pos.X() + r*math.Cos(a), Y: u.Pos.Y() - r*math.Sin(a)}
	}

	pts := c.canvas.BorrowPoints(3)
	pts[0] = corner(rad, u.Radius)
	pts[1] = corner(rad+shipWingAngle, u.Radius)
	pts[2] = corner(rad-shipWingAngle, u.Radius)
	c.canvas.DrawPolygon(pts, false, draw.Cyan)
}

// drawTrajectory dots the predicted path of the ship. A path that ends in
// a body is drawn in red.
func (c *Client) drawTrajectory(tr server.Trajectory) {
	col := draw.Gray
	if tr.Hit {
		col = draw.Red
	}
	for i := 2; i < len(tr.Points); i += 2 {
		p := tr.Points[i]
		c.canvas.SetFloat(p.X(), p.Y(), col)
	}
}

// drawParticles draws the explosion and exhaust effects.
func (c *Client) drawParticles() {
	for _, p := range c.state.particles {
		if p.Visible() {
			c.canvas.SetFloat(p.Pos.X(), p.Pos.Y(), toRGB(p.Color))
		}
	}
}

func toRGB(col object.Color) draw.RGB {
	return draw.RGB{R: col.R, G: col.G, B: col.B}
}

// writeText writes an overlay at a 1-based canvas position and marks the
// cells dirty, so the canvas repaints them once the text goes away.
func (c *Client) writeText(col, row int, s string) {
	if col, ok := c.textCells(col, row, s); ok {
		c.frame.Text(col, row, s)
	}
}

// writeTextColor is writeText in color col.
func (c *Client) writeTextColor(col, row int, s string, color draw.RGB) {
	if col, ok := c.textCells(col, row, s); ok {
		c.frame.TextColor(col, row, s, color)
	}
}

// textCells clamps the start column and marks the covered cells dirty.
func (c *Client) textCells(col, row int, s string) (int, bool) {
	if row < 1 || row > c.canvas.TerminalHeight() {
		return 0, false
	}
	col = max(col, 1)
	c.canvas.MarkTextDirty(col, row, len([]rune(s)))
	return col, true
}

// writeCentered writes s centered on the given canvas column.
func (c *Client) writeCentered(centerX, row int, s string) {
	c.writeText(centerX-len([]rune(s))/2, row, s)
}

// writeCenteredColor is writeCentered in color col.
func (c *Client) writeCenteredColor(centerX, row int, s string, color draw.RGB) {
	c.writeTextColor(centerX-len([]rune(s))/2, row, s, color)
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snap *server.WorldSnapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	switch c.state.GameState {
	case GameStateShutdown:
		c.drawShutdownScreen(centerX, centerY)
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStatePlaying:
		if snap != nil {
			c.drawPlayingHUD(termWidth, termHeight, snap)
		}
	case GameStateOver:
		c.drawOverScreen(centerX, centerY, snap)
	}

	if c.state.noticeTimer > 0 && c.state.GameState != GameStateShutdown {
		c.writeCenteredColor(centerX, termHeight-1, c.state.notice, draw.Orange)
	}
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  ___ ___    ___   _____ _____ ___  ___ ___ ___  ___  `,
		` / __| _ \  /_\ \ / /_ _|_   _| _ \/ _ \_ _|   \/ __| `,
		`| (_ |   / / _ \ V / | |  | | |   / (_) | || |) \__ \ `,
		` \___|_|_\/_/ \_\_/ |___| |_| |_|_\\___/___|___/|___/ `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	titleStartY := centerY - 8
	for i, line := range titleArt {
		c.writeText(centerX-titleWidth/2, titleStartY+i, line)
	}

	c.writeCentered(centerX, titleStartY+len(titleArt)+1, "~ Steer through a field of gravitating planets ~")

	// Controls section
	controlsY := titleStartY + len(titleArt) + 3
	c.writeCentered(centerX, controlsY, "Controls")
	controlLines := []string{
		"W / Up  . . . . . . . . Thrust",
		"A D / < >  . . . . . . Rotate",
		"SPACE  . . . . . . . . . Shoot",
		"Left click  . . .  Select body",
		"Right click . . . . Place body",
		"P  . . . . . . . . . . . Pause",
		"R  . . . . . . . . . . Restart",
		"Q  . . . . . . . . . . . .Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, controlsY+1+i, line)
	}

	// Blinking start prompt
	promptY := controlsY + len(controlLines) + 2
	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, promptY, ">>  Press SPACE to Start  <<")
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, snap *server.WorldSnapshot) {
	u := snap.Player
	c.writeText(2, 1, fmt.Sprintf("Points: %-6d Mass: %-6.2f", u.Points, u.Mass))

	bodies := fmt.Sprintf("Bodies: %d/%d", len(snap.Bodies), snap.MaxBodies)
	c.writeText(termWidth-len(bodies)-1, 1, bodies)

	c.writeText(2, termHeight, fmt.Sprintf("X:%-5.0f Y:%-5.0f Speed:%-5.2f", u.Pos.X(), u.Pos.Y(), u.Vel.Len()))

	if snap.Selected != nil {
		c.drawSelectedPanel(termWidth, *snap.Selected)
	}

	if snap.Paused {
		c.writeCentered(termWidth/2, termHeight/2, "  PAUSED - press P to resume  ")
	}
}

// drawSelectedPanel shows the selected body's properties (top right).
func (c *Client) drawSelectedPanel(termWidth int, b server.BodyView) {
	p := b.Momentum()
	lines := []string{
		fmt.Sprintf("%-24s", b.Name),
		fmt.Sprintf("Mass:     %-14.2f", b.Mass),
		fmt.Sprintf("Radius:   %-14.2f", b.Radius),
		fmt.Sprintf("Velocity: %6.2f, %-6.2f", b.Vel.X(), b.Vel.Y()),
		fmt.Sprintf("Momentum: %6.1f, %-6.1f", p.X(), p.Y()),
	}
	col := termWidth - 26
	c.writeTextColor(col, 3, lines[0], toRGB(b.Color))
	for i, line := range lines[1:] {
		c.writeText(col, 4+i, line)
	}
}

// drawOverScreen draws the game over screen with the leaderboard.
func (c *Client) drawOverScreen(centerX, centerY int, snap *server.WorldSnapshot) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	titleStartY := centerY - 9
	for i, line := range titleArt {
		c.writeText(centerX-titleWidth/2, titleStartY+i, line)
	}

	y := titleStartY + len(titleArt) + 1
	c.writeCenteredColor(centerX, y, "Cause: "+c.state.Over.String(), draw.Red)
	if c.username != "" {
		c.writeCentered(centerX, y+1, fmt.Sprintf("%s finished with %d points", c.username, c.state.FinalPoints))
	} else {
		c.writeCentered(centerX, y+1, fmt.Sprintf("Points: %d", c.state.FinalPoints))
	}

	y += 3
	c.writeCentered(centerX, y, "Top scores")
	if snap == nil || len(snap.TopScores) == 0 {
		c.writeCentered(centerX, y+1, "no scores yet")
	} else {
		for i, e := range snap.TopScores {
			line := fmt.Sprintf("%d. %-16s %6d  %s", i+1, e.Player, e.Points, e.EndedAt.Format("2006-01-02"))
			c.writeCentered(centerX, y+1+i, line)
		}
	}

	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, y+config.TopScoresShown+3, ">>  Press SPACE to Restart  <<")
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCenteredColor(centerX, centerY-3, "SERVER SHUTTING DOWN", draw.Red)
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
