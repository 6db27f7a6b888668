// Package track maps a scalar distance onto the rounded-rectangle loop running along the viewport edge
package track

import (
	"math"

	"github.com/lixenwraith/perimeter/vmath"
)

// Position is a point on the loop with the travel heading in degrees [0,360)
type Position struct {
	X, Y    float64
	Heading float64
}

// segmentKind selects the interpolation of a segment
type segmentKind uint8

const (
	segmentStrip segmentKind = iota
	segmentArc
)

// segment is one of the eight pieces of the loop, walked clockwise from the top-left strip start
type segment struct {
	kind   segmentKind
	length float64

	// Strip: start point and unit direction
	x0, y0 float64
	dx, dy float64

	// Arc: corner center and start angle (radians, screen coordinates)
	cx, cy     float64
	startAngle float64

	heading0 float64 // Heading at segment entry
}

// Loop is an immutable rounded rectangle of given viewport size, margin and corner radius
type Loop struct {
	Width, Height float64
	Margin        float64
	CornerRadius  float64

	stripW, stripH float64
	arc            float64
	length         float64
	segments       [8]segment
}

// NewLoop builds the loop geometry; strip lengths clamp to zero on tiny viewports
func NewLoop(width, height, margin, cornerRadius float64) Loop {
	if cornerRadius < 0 {
		cornerRadius = 0
	}
	if margin < 0 {
		margin = 0
	}

	l := Loop{
		Width:        width,
		Height:       height,
		Margin:       margin,
		CornerRadius: cornerRadius,
	}

	m, r := margin, cornerRadius
	l.stripW = math.Max(0, width-2*m-2*r)
	l.stripH = math.Max(0, height-2*m-2*r)
	l.arc = math.Pi * r / 2
	l.length = 2*l.stripW + 2*l.stripH + 4*l.arc

	// Corner centers, derived from the strip ends so degenerate strips keep the curve closed
	left := m + r
	top := m + r
	right := left + l.stripW
	bottom := top + l.stripH

	l.segments = [8]segment{
		{kind: segmentStrip, length: l.stripW, x0: left, y0: m, dx: 1, dy: 0, heading0: 0},
		{kind: segmentArc, length: l.arc, cx: right, cy: top, startAngle: -math.Pi / 2, heading0: 0},
		{kind: segmentStrip, length: l.stripH, x0: right + r, y0: top, dx: 0, dy: 1, heading0: 90},
		{kind: segmentArc, length: l.arc, cx: right, cy: bottom, startAngle: 0, heading0: 90},
		{kind: segmentStrip, length: l.stripW, x0: right, y0: bottom + r, dx: -1, dy: 0, heading0: 180},
		{kind: segmentArc, length: l.arc, cx: left, cy: bottom, startAngle: math.Pi / 2, heading0: 180},
		{kind: segmentStrip, length: l.stripH, x0: m, y0: bottom, dx: 0, dy: -1, heading0: 270},
		{kind: segmentArc, length: l.arc, cx: left, cy: top, startAngle: math.Pi, heading0: 270},
	}

	return l
}

// Length returns the perimeter length, zero for a fully degenerate loop
func (l Loop) Length() float64 {
	return l.length
}

// Normalize maps any distance, including negative, into [0, Length)
// Returns 0 for a degenerate loop
func (l Loop) Normalize(d float64) float64 {
	if l.length <= vmath.Epsilon {
		return 0
	}
	return vmath.Mod(d, l.length)
}

// Offset returns how far d lies past anchor travelling forward, in [0, Length)
func (l Loop) Offset(d, anchor float64) float64 {
	return l.Normalize(d - anchor)
}

// Fallback is the position returned when the loop has no length
func (l Loop) Fallback() Position {
	return Position{X: l.Margin, Y: l.Margin, Heading: 0}
}

// PositionAt returns the point and heading at distance d along the loop
func (l Loop) PositionAt(d float64) Position {
	if l.length <= vmath.Epsilon {
		return l.Fallback()
	}

	rem := l.Normalize(d)
	for i := range l.segments {
		s := &l.segments[i]
		if rem < s.length || i == len(l.segments)-1 {
			return s.at(rem, l.CornerRadius)
		}
		rem -= s.length
	}
	// Unreachable: the last segment absorbs any rounding residue
	return l.Fallback()
}

// at evaluates a segment at local distance t
func (s *segment) at(t, radius float64) Position {
	switch s.kind {
	case segmentStrip:
		return Position{
			X:       s.x0 + s.dx*t,
			Y:       s.y0 + s.dy*t,
			Heading: s.heading0,
		}
	case segmentArc:
		frac := 0.0
		if s.length > vmath.Epsilon {
			frac = vmath.Clamp(t/s.length, 0, 1)
		}
		sweep := frac * math.Pi / 2
		angle := s.startAngle + sweep
		return Position{
			X:       s.cx + math.Cos(angle)*radius,
			Y:       s.cy + math.Sin(angle)*radius,
			Heading: vmath.NormalizeDeg(s.heading0 + frac*90),
		}
	default:
		return Position{}
	}
}
