package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock provides simulation time that freezes while paused
// Now() = start + (source elapsed - total paused)
type PausableClock struct {
	mu sync.RWMutex

	source    TimeProvider
	realStart time.Time

	isPaused        atomic.Bool
	pauseStart      time.Time     // Source time when the current pause began
	totalPausedTime time.Duration // Cumulative completed pause duration
}

// NewPausableClock creates a running clock over a time source, nil means real time
func NewPausableClock(source TimeProvider) *PausableClock {
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	return &PausableClock{
		source:    source,
		realStart: source.Now(),
	}
}

// Now returns current simulation time
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.realStart.Add(pc.pauseStart.Sub(pc.realStart) - pc.totalPausedTime)
	}
	return pc.realStart.Add(pc.source.Now().Sub(pc.realStart) - pc.totalPausedTime)
}

// AfterFunc schedules on the source clock; durations are real time
func (pc *PausableClock) AfterFunc(d time.Duration, fn func()) Timer {
	return pc.source.AfterFunc(d, fn)
}

// RealTime returns the source time, unaffected by pause
func (pc *PausableClock) RealTime() time.Time {
	return pc.source.Now()
}

// Pause stops simulation time advancement
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.pauseStart = pc.source.Now()
	}
}

// Resume continues simulation time advancement
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.totalPausedTime += pc.source.Now().Sub(pc.pauseStart)
		pc.pauseStart = time.Time{}
	}
}

// Toggle flips the pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time including an ongoing pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() {
		total += pc.source.Now().Sub(pc.pauseStart)
	}
	return total
}
