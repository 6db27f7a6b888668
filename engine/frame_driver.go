package engine

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/perimeter/parameter"
	"github.com/lixenwraith/perimeter/status"
)

// FrameDriver advances the simulation once per display refresh
type FrameDriver struct {
	world   *World
	prev    time.Time
	started bool

	statFrames *atomic.Int64
	statDelta  *status.AtomicFloat
	statEvents *atomic.Int64
	statLost   *atomic.Int64
}

// NewFrameDriver creates a driver for a world
func NewFrameDriver(world *World) *FrameDriver {
	reg := world.Resources.Status
	return &FrameDriver{
		world:      world,
		statFrames: reg.Ints.Get("engine.frames"),
		statDelta:  reg.Floats.Get("engine.delta_ms"),
		statEvents: reg.Ints.Get("engine.events"),
		statLost:   reg.Ints.Get("engine.events_dropped"),
	}
}

// Advance runs one frame at now
// The first call only records the timestamp and dispatches pending intents
// Later calls integrate min(now-prev, MaxFrameDelta); a clock stepping backwards integrates nothing
func (fd *FrameDriver) Advance(now time.Time) {
	fd.world.RunSafe(func() {
		fd.advanceLocked(now)
	})
}

func (fd *FrameDriver) advanceLocked(now time.Time) {
	ctx := fd.world.ctx

	if !fd.started {
		fd.started = true
		fd.prev = now
		ctx.Now = now
		ctx.Delta = 0
		fd.statEvents.Add(int64(fd.world.DispatchLocked()))
		return
	}

	dt := now.Sub(fd.prev)
	if dt < 0 {
		dt = 0
	}
	if dt > parameter.MaxFrameDelta {
		dt = parameter.MaxFrameDelta
	}
	fd.prev = now

	ctx.Now = now
	ctx.Delta = dt
	ctx.FrameNumber++
	fd.world.frameNumber.Store(ctx.FrameNumber)

	// Intents first so they take effect this frame, then settlements that came due
	fd.statEvents.Add(int64(fd.world.DispatchLocked()))
	fd.world.effects.FireDue(now)

	fd.world.UpdateLocked()

	fd.statFrames.Store(ctx.FrameNumber)
	fd.statLost.Store(int64(fd.world.queue.Dropped()))
	fd.statDelta.Set(float64(dt) / float64(time.Millisecond))
}

// Reset forgets the previous timestamp so the next call is treated as the first
func (fd *FrameDriver) Reset() {
	fd.world.RunSafe(func() {
		fd.started = false
	})
}
