package physics

import (
	"github.com/lixenwraith/perimeter/vmath"
)

// Body is a free-flying point with a facing, used by the service drone
type Body struct {
	X, Y    float64
	Heading float64 // Degrees [0,360), 0 = +x, 90 = +y
}

// SteeringProfile defines fixed-speed seek behavior
type SteeringProfile struct {
	SpeedPerMs    float64 // Cruise speed in units per millisecond
	ArrivalRadius float64 // Distance considered arrived
}

// MoveToward advances the body toward a target at constant speed for dtMs milliseconds
// The body never overshoots: a step that reaches the target snaps onto it
// Returns true when the body ends within the arrival radius
func MoveToward(b *Body, targetX, targetY float64, profile SteeringProfile, dtMs float64) bool {
	dx := targetX - b.X
	dy := targetY - b.Y
	dist := vmath.Distance(b.X, b.Y, targetX, targetY)

	if dist <= profile.ArrivalRadius {
		return true
	}

	step := profile.SpeedPerMs * dtMs
	if step <= 0 {
		return false
	}

	b.Heading = vmath.HeadingDeg(dx, dy)

	if step >= dist {
		b.X = targetX
		b.Y = targetY
		return true
	}

	b.X += dx / dist * step
	b.Y += dy / dist * step

	return vmath.Distance(b.X, b.Y, targetX, targetY) <= profile.ArrivalRadius
}

// Follow places the body on a moving anchor, inheriting its heading
func Follow(b *Body, x, y, heading float64) {
	b.X = x
	b.Y = y
	b.Heading = vmath.NormalizeDeg(heading)
}
