package engine

import "time"

// Timer is a cancellable pending callback
type Timer interface {
	Stop() bool
}

// TimeProvider is the clock source for the simulation and its delayed effects
type TimeProvider interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a real-time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn on its own goroutine after d
func (p *MonotonicTimeProvider) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
