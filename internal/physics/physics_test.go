package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

var bodyLaw = Law{G: 10, Exponent: 1.75}

func TestPullOverlapIffWithinRadii(t *testing.T) {
	tests := []struct {
		name    string
		dist    float64
		overlap bool
	}{
		{"far apart", 30, false},
		{"just apart", 10.0001, false},
		{"touching", 10, true},
		{"overlapping", 4, true},
		{"concentric", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Circle{Pos: mgl64.Vec2{0, 0}, Mass: 10, Radius: 4}
			b := Circle{Pos: mgl64.Vec2{tt.dist, 0}, Mass: 20, Radius: 6}
			f, overlap := Pull(a, b, bodyLaw)
			if overlap != tt.overlap {
				t.Fatalf("overlap=%v want %v", overlap, tt.overlap)
			}
			if overlap && f != (mgl64.Vec2{}) {
				t.Fatalf("overlapping pull should be zero, got %v", f)
			}
		})
	}
}

func TestPullIsEqualAndOpposite(t *testing.T) {
	a := Circle{Pos: mgl64.Vec2{12.5, -3}, Mass: 17, Radius: 2}
	b := Circle{Pos: mgl64.Vec2{-40, 81}, Mass: 42.25, Radius: 5}

	fa, _ := Pull(a, b, bodyLaw)
	fb, _ := Pull(b, a, bodyLaw)
	if fa.Add(fb) != (mgl64.Vec2{}) {
		t.Fatalf("forces not opposite: %v vs %v", fa, fb)
	}

	// force on a points toward b
	if fa.Dot(b.Pos.Sub(a.Pos)) <= 0 {
		t.Fatalf("force on a should point at b, got %v", fa)
	}
}

func TestPullMagnitude(t *testing.T) {
	a := Circle{Pos: mgl64.Vec2{0, 0}, Mass: 2, Radius: 1}
	b := Circle{Pos: mgl64.Vec2{0, 16}, Mass: 3, Radius: 1}

	f, _ := Pull(a, b, bodyLaw)
	want := 10 * 2 * 3 / math.Pow(16, 1.75)
	if math.Abs(f.Len()-want) > 1e-12 {
		t.Fatalf("magnitude=%v want %v", f.Len(), want)
	}

	f, _ = Pull(a, b, Law{G: 5, Exponent: 2})
	want = 5 * 2 * 3 / 256.0
	if math.Abs(f.Len()-want) > 1e-12 {
		t.Fatalf("inverse-square magnitude=%v want %v", f.Len(), want)
	}
}

func TestPullCoincidentPointsOverlap(t *testing.T) {
	p := Circle{Pos: mgl64.Vec2{5, 5}, Mass: 1}
	f, overlap := Pull(p, p, bodyLaw)
	if f != (mgl64.Vec2{}) {
		t.Fatalf("zero distance should give zero force, got %v", f)
	}
	if !overlap {
		t.Fatalf("coincident points are touching")
	}
}

func TestMagnitudeZeroDistance(t *testing.T) {
	for _, law := range []Law{bodyLaw, {G: 5, Exponent: 2}} {
		if got := law.Magnitude(3, 4, 0); got != 0 {
			t.Fatalf("%+v: Magnitude at d=0 = %v, want 0", law, got)
		}
	}
}

func TestCircleHelpers(t *testing.T) {
	c := mgl64.Vec2{0, 0}
	if !PointInCircle(mgl64.Vec2{3, 4}, c, 5) {
		t.Fatalf("boundary point should be inside")
	}
	if PointStrictlyInCircle(mgl64.Vec2{3, 4}, c, 5) {
		t.Fatalf("boundary point should not be strictly inside")
	}
	if CirclesOverlap(c, 2, mgl64.Vec2{4, 0}, 2) {
		t.Fatalf("touching circles should not overlap")
	}
	if !CirclesOverlap(c, 2, mgl64.Vec2{3.9, 0}, 2) {
		t.Fatalf("overlapping circles not detected")
	}
	if got := Distance(c, mgl64.Vec2{3, 4}); got != 5 {
		t.Fatalf("Distance=%v want 5", got)
	}
}
