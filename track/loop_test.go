package track

import (
	"math"
	"testing"

	"github.com/lixenwraith/perimeter/vmath"
)

const tolerance = 1e-6

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestLoopLength(t *testing.T) {
	l := NewLoop(1000, 800, 14, 30)

	want := 2*912.0 + 2*712.0 + 4*(math.Pi*30/2)
	if !near(l.Length(), want, tolerance) {
		t.Errorf("Expected length %.4f, got %.4f", want, l.Length())
	}
	if !near(l.Length(), 3436.5, 0.1) {
		t.Errorf("Expected length near 3436.5, got %.4f", l.Length())
	}
}

func TestPositionAtOrigin(t *testing.T) {
	l := NewLoop(1000, 800, 14, 30)

	p := l.PositionAt(0)
	if !near(p.X, 44, tolerance) || !near(p.Y, 14, tolerance) || !near(p.Heading, 0, tolerance) {
		t.Errorf("Expected {44 14 0}, got %+v", p)
	}
}

func TestPositionAtSegmentBoundaries(t *testing.T) {
	l := NewLoop(1000, 800, 14, 30)
	arc := math.Pi * 30 / 2

	tests := []struct {
		name    string
		d       float64
		x, y, h float64
	}{
		{"top strip end", 912, 956, 14, 0},
		{"top-right arc middle", 912 + arc/2, 956 + 30*math.Cos(-math.Pi/4), 44 + 30*math.Sin(-math.Pi/4), 45},
		{"right strip start", 912 + arc, 986, 44, 90},
		{"bottom strip start", 912 + 712 + 2*arc, 956, 786, 180},
		{"left strip start", 2*912 + 712 + 3*arc, 14, 756, 270},
		{"top-left arc middle", 2*912 + 2*712 + 3.5*arc, 44 - 30*math.Cos(math.Pi/4), 44 - 30*math.Sin(math.Pi/4), 315},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := l.PositionAt(tt.d)
			if !near(p.X, tt.x, 1e-6) || !near(p.Y, tt.y, 1e-6) {
				t.Errorf("Expected (%.3f, %.3f), got (%.3f, %.3f)", tt.x, tt.y, p.X, p.Y)
			}
			if !near(p.Heading, tt.h, 1e-6) {
				t.Errorf("Expected heading %.3f, got %.3f", tt.h, p.Heading)
			}
		})
	}
}

func TestPositionAtPeriodic(t *testing.T) {
	l := NewLoop(1000, 800, 14, 30)
	length := l.Length()

	for _, d := range []float64{0, 1, 100.5, 900, 1000, 2500, length - 0.5} {
		base := l.PositionAt(d)
		for _, k := range []float64{-3, -1, 1, 7} {
			p := l.PositionAt(d + k*length)
			if !near(p.X, base.X, 1e-6) || !near(p.Y, base.Y, 1e-6) {
				t.Errorf("d=%.2f k=%.0f: expected (%.4f, %.4f), got (%.4f, %.4f)", d, k, base.X, base.Y, p.X, p.Y)
			}
			if math.Abs(vmath.DeltaDeg(base.Heading, p.Heading)) > 1e-6 {
				t.Errorf("d=%.2f k=%.0f: expected heading %.4f, got %.4f", d, k, base.Heading, p.Heading)
			}
		}
	}
}

func TestPositionAtContinuous(t *testing.T) {
	l := NewLoop(1000, 800, 14, 30)
	const step = 0.05
	length := l.Length()

	prev := l.PositionAt(0)
	for d := step; d <= length+step; d += step {
		p := l.PositionAt(d)
		if dist := vmath.Distance(prev.X, prev.Y, p.X, p.Y); dist > step+1e-6 {
			t.Fatalf("Position jump at d=%.3f: %.6f", d, dist)
		}
		// Curvature bound: 1/R rad per unit distance
		maxTurn := step/30*180/math.Pi + 1e-6
		if turn := math.Abs(vmath.DeltaDeg(prev.Heading, p.Heading)); turn > maxTurn {
			t.Fatalf("Heading jump at d=%.3f: %.6f > %.6f", d, turn, maxTurn)
		}
		prev = p
	}
}

func TestHeadingRange(t *testing.T) {
	l := NewLoop(640, 480, 10, 20)
	for d := -l.Length(); d < 2*l.Length(); d += 7.3 {
		h := l.PositionAt(d).Heading
		if h < 0 || h >= 360 {
			t.Errorf("Heading out of range at d=%.2f: %.4f", d, h)
		}
	}
}

func TestNegativeDistance(t *testing.T) {
	l := NewLoop(1000, 800, 14, 30)

	n := l.Normalize(-10)
	if !near(n, l.Length()-10, 1e-9) {
		t.Errorf("Expected %.4f, got %.4f", l.Length()-10, n)
	}

	p := l.PositionAt(-10)
	q := l.PositionAt(l.Length() - 10)
	if !near(p.X, q.X, 1e-9) || !near(p.Y, q.Y, 1e-9) {
		t.Errorf("Expected %+v, got %+v", q, p)
	}
}

func TestOffset(t *testing.T) {
	l := NewLoop(1000, 800, 14, 30)

	if got := l.Offset(110, 100); !near(got, 10, 1e-9) {
		t.Errorf("Expected 10, got %.4f", got)
	}
	if got := l.Offset(90, 100); !near(got, l.Length()-10, 1e-9) {
		t.Errorf("Expected %.4f, got %.4f", l.Length()-10, got)
	}
	if got := l.Offset(100+l.Length()*3, 100); !near(got, 0, 1e-6) && !near(got, l.Length(), 1e-6) {
		t.Errorf("Expected 0, got %.6f", got)
	}
}

func TestDegenerateLoop(t *testing.T) {
	l := NewLoop(20, 20, 10, 0)

	if l.Length() != 0 {
		t.Fatalf("Expected zero length, got %.4f", l.Length())
	}

	p := l.PositionAt(123)
	if p != (Position{X: 10, Y: 10, Heading: 0}) {
		t.Errorf("Expected fallback {10 10 0}, got %+v", p)
	}
	if n := l.Normalize(55); n != 0 {
		t.Errorf("Expected 0, got %.4f", n)
	}
}

func TestCircularLoop(t *testing.T) {
	// Strips vanish, only the arcs remain
	l := NewLoop(100, 100, 10, 40)

	want := 2 * math.Pi * 40
	if !near(l.Length(), want, 1e-9) {
		t.Fatalf("Expected length %.4f, got %.4f", want, l.Length())
	}

	for d := 0.0; d < l.Length(); d += 3 {
		p := l.PositionAt(d)
		r := vmath.Distance(50, 50, p.X, p.Y)
		if !near(r, 40, 1e-6) {
			t.Errorf("Expected radius 40 at d=%.2f, got %.6f", d, r)
		}
	}
}

func TestNegativeRadiusClamped(t *testing.T) {
	l := NewLoop(200, 100, 10, -5)

	if l.CornerRadius != 0 {
		t.Errorf("Expected radius 0, got %.2f", l.CornerRadius)
	}
	if !near(l.Length(), 2*180+2*80, 1e-9) {
		t.Errorf("Expected rectangular length 520, got %.4f", l.Length())
	}
}
