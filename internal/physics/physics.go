// Package physics provides the gravity law and circle overlap utilities.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Distance calculates the Euclidean distance between two points.
func Distance(a, b mgl64.Vec2) float64 {
	return b.Sub(a).Len()
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b mgl64.Vec2) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}

// PointInCircle checks if a point is within radius of a center position.
func PointInCircle(p, center mgl64.Vec2, radius float64) bool {
	return DistanceSquared(p, center) <= radius*radius
}

// PointStrictlyInCircle is PointInCircle without the boundary.
func PointStrictlyInCircle(p, center mgl64.Vec2, radius float64) bool {
	return DistanceSquared(p, center) < radius*radius
}

// CirclesOverlap checks if two circles overlap (touching does not count).
func CirclesOverlap(p1 mgl64.Vec2, r1 float64, p2 mgl64.Vec2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(p1, p2) < minDist*minDist
}

// Circle is a massive disc taking part in gravity.
type Circle struct {
	Pos    mgl64.Vec2
	Mass   float64
	Radius float64
}

// Law is a central force law of the form G*m1*m2/d^Exponent.
type Law struct {
	G        float64
	Exponent float64
}

// Magnitude returns the force magnitude between masses m1 and m2 at distance d.
// A zero distance yields zero force.
func (l Law) Magnitude(m1, m2, d float64) float64 {
	if d == 0 {
		return 0
	}
	// m1*m2 first so the result does not depend on argument order
	mm := m1 * m2
	if l.Exponent == 2 {
		return l.G * mm / (d * d)
	}
	return l.G * mm / math.Pow(d, l.Exponent)
}

// Pull returns the force exerted on a by b under law.
//
// When the two circles touch or overlap (distance <= ra+rb) it returns a zero
// force and overlap=true instead; callers treat that as the collision signal.
// Pull(b, a, law) is always the exact negation of Pull(a, b, law).
func Pull(a, b Circle, law Law) (force mgl64.Vec2, overlap bool) {
	dir := b.Pos.Sub(a.Pos)
	d := dir.Len()
	// Radii are never negative, so d > 0 past this point.
	if d <= a.Radius+b.Radius {
		return mgl64.Vec2{}, true
	}
	mag := law.Magnitude(a.Mass, b.Mass, d)
	return dir.Mul(mag / d), false
}
