// Package object defines the simulated entities: planets, the player ship
// and its projectiles.
package object

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Screen represents the playfield dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen creates a playfield of the given size.
func NewScreen(width, height int) Screen {
	return Screen{
		Width:   width,
		Height:  height,
		CenterX: width / 2,
		CenterY: height / 2,
	}
}

// Center returns the field center as a vector.
func (s Screen) Center() mgl64.Vec2 {
	return mgl64.Vec2{float64(s.CenterX), float64(s.CenterY)}
}

// Contains reports whether p lies inside the field, edges included.
func (s Screen) Contains(p mgl64.Vec2) bool {
	return p.X() >= 0 && p.X() <= float64(s.Width) && p.Y() >= 0 && p.Y() <= float64(s.Height)
}

// ContainsStrict reports whether p lies strictly inside the field.
func (s Screen) ContainsStrict(p mgl64.Vec2) bool {
	return p.X() > 0 && p.X() < float64(s.Width) && p.Y() > 0 && p.Y() < float64(s.Height)
}

// Beyond reports whether p is more than margin outside any edge.
func (s Screen) Beyond(p mgl64.Vec2, margin float64) bool {
	return p.X() < -margin || p.X() > float64(s.Width)+margin ||
		p.Y() < -margin || p.Y() > float64(s.Height)+margin
}

// Color is an RGB display color.
type Color struct {
	R, G, B uint8
}

// RandomColor returns a color with every channel in [50, 255].
func RandomColor(rng *rand.Rand) Color {
	return Color{
		R: uint8(50 + rng.Intn(206)),
		G: uint8(50 + rng.Intn(206)),
		B: uint8(50 + rng.Intn(206)),
	}
}

var (
	namePrefixes = []string{"Alpha", "Beta", "Gamma", "Zeta", "Delta", "Epsilon"}
	nameSuffixes = []string{"Centauri", "Taurus", "Nebula", "Andromeda", "Aurora", "Pulsar"}
)

// GenerateName returns a scientific-sounding planet name.
func GenerateName(rng *rand.Rand) string {
	return namePrefixes[rng.Intn(len(namePrefixes))] + " " + nameSuffixes[rng.Intn(len(nameSuffixes))]
}
