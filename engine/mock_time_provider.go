package engine

import (
	"sort"
	"sync"
	"time"
)

// MockTimeProvider provides a controllable time source for testing
// Timers fire synchronously from Advance/SetTime in deadline order, outside the mock's lock
type MockTimeProvider struct {
	mu          sync.Mutex
	currentTime time.Time
	timers      []*mockTimer
	nextSeq     uint64
}

type mockTimer struct {
	owner    *MockTimeProvider
	deadline time.Time
	seq      uint64
	fn       func()
	stopped  bool
	fired    bool
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

// AfterFunc registers fn to run once mocked time reaches now+d
func (m *MockTimeProvider) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSeq++
	t := &mockTimer{
		owner:    m,
		deadline: m.currentTime.Add(d),
		seq:      m.nextSeq,
		fn:       fn,
	}
	m.timers = append(m.timers, t)
	return t
}

// SetTime sets the current time and fires due timers
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	m.currentTime = t
	due := m.collectDueLocked()
	m.mu.Unlock()

	for _, timer := range due {
		timer.fn()
	}
}

// Advance advances the current time by the given duration and fires due timers
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.SetTime(m.Now().Add(d))
}

// PendingTimers returns the number of armed timers
func (m *MockTimeProvider) PendingTimers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *MockTimeProvider) collectDueLocked() []*mockTimer {
	var due, rest []*mockTimer
	for _, t := range m.timers {
		if t.stopped {
			continue
		}
		if !t.deadline.After(m.currentTime) {
			t.fired = true
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	m.timers = rest
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	return due
}

// Stop disarms the timer, returns false if it already fired or was stopped
func (t *mockTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
