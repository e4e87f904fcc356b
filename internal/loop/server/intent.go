package server

import "github.com/go-gl/mathgl/mgl64"

// Intents is everything the shell asks the simulation to do in one tick.
type Intents struct {
	TurnLeft    bool
	TurnRight   bool
	Thrust      bool
	Fire        bool
	TogglePause bool
	Restart     bool
	Quit        bool
	Place       []mgl64.Vec2 // Body placement requests, field coordinates
	Select      []mgl64.Vec2 // Body selection clicks, field coordinates
}

// Merge folds intents that arrived during the same tick into in. Held keys
// and one-shot commands are ORed, pause toggles cancel out in pairs, and
// placement and selection requests keep their arrival order.
func (in *Intents) Merge(o Intents) {
	in.TurnLeft = in.TurnLeft || o.TurnLeft
	in.TurnRight = in.TurnRight || o.TurnRight
	in.Thrust = in.Thrust || o.Thrust
	in.Fire = in.Fire || o.Fire
	in.TogglePause = in.TogglePause != o.TogglePause
	in.Restart = in.Restart || o.Restart
	in.Quit = in.Quit || o.Quit
	in.Place = append(in.Place, o.Place...)
	in.Select = append(in.Select, o.Select...)
}

// Empty reports whether in carries no request at all.
func (in Intents) Empty() bool {
	return !in.TurnLeft && !in.TurnRight && !in.Thrust && !in.Fire &&
		!in.TogglePause && !in.Restart && !in.Quit &&
		len(in.Place) == 0 && len(in.Select) == 0
}
