package vmath

import "math"

// Epsilon is the tolerance used for float comparisons in geometry
const Epsilon = 1e-9

// --- Scalars ---

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates between a and b by t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep is the cubic Hermite ease of t clamped to [0,1]
func Smoothstep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// Approach moves current toward target by fraction of the gap, fraction clamped to [0,1]
func Approach(current, target, fraction float64) float64 {
	return current + (target-current)*Clamp(fraction, 0, 1)
}

// Mod returns x modulo m in [0, m), m must be positive
func Mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	// math.Mod of a tiny negative can round up to m
	if r >= m {
		r = 0
	}
	return r
}

// Pow returns base^n for a non-negative integer level
func Pow(base float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= base
	}
	return result
}

// --- Angles ---

// NormalizeDeg wraps degrees into [0, 360)
func NormalizeDeg(deg float64) float64 {
	return Mod(deg, 360)
}

// DeltaDeg returns the signed shortest rotation from a to b in (-180, 180]
func DeltaDeg(a, b float64) float64 {
	d := Mod(b-a, 360)
	if d > 180 {
		d -= 360
	}
	return d
}

// HeadingDeg returns the screen heading of vector (dx, dy), 0 = +x, 90 = +y (down)
func HeadingDeg(dx, dy float64) float64 {
	return NormalizeDeg(math.Atan2(dy, dx) * 180 / math.Pi)
}

// --- Vectors ---

// Distance returns the euclidean distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
