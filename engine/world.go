package engine

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/perimeter/event"
)

// World owns the simulation context, its systems and the event plumbing
// One mutex serializes frames, hardware ticks, effect timers and snapshot reads
type World struct {
	updateMutex sync.Mutex
	mu          sync.RWMutex // Guards systems slice

	ctx       *SimulationContext
	Resources *Resource

	systems []System
	queue   *event.EventQueue
	router  *event.Router
	effects *Effects
	clock   TimeProvider

	frameNumber atomic.Int64 // Mirror of ctx.FrameNumber for lock-free readers
}

// NewWorld wires a context with resources and a clock for delayed effects
func NewWorld(ctx *SimulationContext, res *Resource, clock TimeProvider) *World {
	if res == nil {
		res = NewResource(nil)
	}
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	w := &World{
		ctx:       ctx,
		Resources: res,
		queue:     event.NewEventQueue(),
		clock:     clock,
	}
	w.router = event.NewRouter(w.queue)
	w.effects = newEffects(w, clock)
	return w
}

// Context returns the simulation state; only touch it under the world lock
func (w *World) Context() *SimulationContext {
	return w.ctx
}

// Effects returns the delayed effect scheduler
func (w *World) Effects() *Effects {
	return w.effects
}

// Clock returns the effect clock
func (w *World) Clock() TimeProvider {
	return w.clock
}

// Queue returns the event queue for lock-free producers
func (w *World) Queue() *event.EventQueue {
	return w.queue
}

// AddSystem registers a system, keeps systems sorted by priority, and routes its events if it handles any
func (w *World) AddSystem(s System) {
	w.mu.Lock()
	w.systems = append(w.systems, s)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
	w.mu.Unlock()

	if h, ok := s.(event.Handler); ok {
		w.router.Register(h)
	}
}

// AddHandler registers a non-system event handler
func (w *World) AddHandler(h event.Handler) {
	w.router.Register(h)
}

// Systems returns a copy of all registered systems
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Lock acquires the world's update mutex
func (w *World) Lock() {
	w.updateMutex.Lock()
}

// TryLock attempts to acquire the update mutex without blocking
func (w *World) TryLock() bool {
	return w.updateMutex.TryLock()
}

// Unlock releases the update mutex
func (w *World) Unlock() {
	w.updateMutex.Unlock()
}

// DispatchLocked routes all pending events, caller holds the lock
func (w *World) DispatchLocked() int {
	return w.router.DispatchAll()
}

// UpdateLocked runs all systems assuming the caller already holds the lock
func (w *World) UpdateLocked() {
	for _, s := range w.Systems() {
		s.Update()
	}
}

// PushEvent emits an event stamped with the current frame; lock-free
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.queue.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   w.frameNumber.Load(),
	})
}

// Snapshot copies the read-only state under the lock
func (w *World) Snapshot() Snapshot {
	var s Snapshot
	w.RunSafe(func() {
		s = w.ctx.Snapshot()
	})
	return s
}

// CurrentFrame copies the last frame output under the lock
func (w *World) CurrentFrame() Frame {
	var f Frame
	w.RunSafe(func() {
		f = w.ctx.Frame.Clone()
	})
	return f
}

// FrameNumber returns the last completed frame index, lock-free
func (w *World) FrameNumber() int64 {
	return w.frameNumber.Load()
}

// Now returns the effect clock time
func (w *World) Now() time.Time {
	return w.clock.Now()
}
