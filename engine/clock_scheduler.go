package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/parameter"
)

// periodic is one fixed-cadence job
type periodic struct {
	name     string
	interval time.Duration
	fn       func(now time.Time)
	ticks    atomic.Uint64
}

// ClockScheduler drives the frame loop and the slower periodic jobs (hardware, snapshots)
// Each job runs on its own goroutine with drift-corrected deadlines; all skip while paused
type ClockScheduler struct {
	world  *World
	clock  *PausableClock
	driver *FrameDriver

	frame     *periodic
	periodics []*periodic
	onFrame   func()

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewClockScheduler creates a scheduler that advances driver every frameInterval
func NewClockScheduler(world *World, clock *PausableClock, driver *FrameDriver, frameInterval time.Duration) *ClockScheduler {
	cs := &ClockScheduler{
		world:    world,
		clock:    clock,
		driver:   driver,
		stopChan: make(chan struct{}),
	}
	cs.frame = &periodic{
		name:     "frame",
		interval: frameInterval,
		fn:       cs.runFrame,
	}
	return cs
}

// OnFrame registers a callback run after each frame outside the world lock, must be called before Start()
func (cs *ClockScheduler) OnFrame(fn func()) {
	cs.onFrame = fn
}

// Every registers a periodic job, must be called before Start()
// fn takes the world lock itself if it mutates state
func (cs *ClockScheduler) Every(name string, interval time.Duration, fn func(now time.Time)) {
	cs.periodics = append(cs.periodics, &periodic{name: name, interval: interval, fn: fn})
}

// Start begins all loops
func (cs *ClockScheduler) Start() {
	if !cs.running.CompareAndSwap(false, true) {
		return
	}
	jobs := append([]*periodic{cs.frame}, cs.periodics...)
	for _, job := range jobs {
		cs.wg.Add(1)
		// Use core.Go for safe execution with centralized crash handling
		core.Go(func() {
			cs.loop(job)
		})
	}
}

// Stop halts all loops and waits for them; pending effect timers may still fire harmlessly
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// FrameCount returns the frames driven so far
func (cs *ClockScheduler) FrameCount() uint64 {
	return cs.frame.ticks.Load()
}

// Ticks returns the run count of a named periodic job
func (cs *ClockScheduler) Ticks(name string) uint64 {
	for _, p := range cs.periodics {
		if p.name == name {
			return p.ticks.Load()
		}
	}
	return 0
}

func (cs *ClockScheduler) runFrame(now time.Time) {
	cs.driver.Advance(now)
	if cs.onFrame != nil {
		cs.onFrame()
	}
}

// loop runs one job with deadline tracking; falling more than two intervals behind resynchronizes
func (cs *ClockScheduler) loop(job *periodic) {
	defer cs.wg.Done()

	// Reset discards any unreceived expiry (go1.23 timer semantics)
	timer := time.NewTimer(job.interval)
	defer timer.Stop()

	nextDeadline := cs.clock.Now().Add(job.interval)

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		var sleep time.Duration

		if cs.clock.IsPaused() {
			sleep = parameter.PausedPollInterval
			// Resume must not replay the paused span as a burst of ticks
			nextDeadline = cs.clock.Now().Add(job.interval)
		} else {
			now := cs.clock.Now()
			if !now.Before(nextDeadline) {
				job.fn(now)
				job.ticks.Add(1)

				nextDeadline = nextDeadline.Add(job.interval)
				if now.Sub(nextDeadline) > job.interval*2 {
					nextDeadline = now.Add(job.interval)
				}
			}
			sleep = nextDeadline.Sub(cs.clock.Now())
		}

		if sleep <= 0 {
			continue
		}
		timer.Reset(sleep)
		select {
		case <-timer.C:
		case <-cs.stopChan:
			return
		}
	}
}
