package system

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/perimeter/console"
	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/event"
	"github.com/lixenwraith/perimeter/parameter"
	"github.com/lixenwraith/perimeter/store"
)

// persistQueueSize bounds writes waiting for the worker
const persistQueueSize = 32

// Persister saves the user-facing scalars that survive restarts
type Persister interface {
	SaveAnchor(ctx context.Context, a store.Anchor) error
	SaveLanguage(ctx context.Context, lang string) error
	SaveLivery(ctx context.Context, c core.RGB) error
	SaveHubs(ctx context.Context, hubs []store.HubRecord) error
}

// PersistenceSystem captures values under the world lock and writes them on a worker goroutine
// A full queue drops the write; the next change persists the latest value anyway
type PersistenceSystem struct {
	world *engine.World
	store Persister

	jobs      chan func(context.Context) error
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
	closed    bool // Guarded by the world lock

	statWrites  *atomic.Int64
	statErrors  *atomic.Int64
	statDropped *atomic.Int64
}

func NewPersistenceSystem(world *engine.World, st Persister) *PersistenceSystem {
	s := &PersistenceSystem{
		world: world,
		store: st,
		jobs:  make(chan func(context.Context) error, persistQueueSize),
		done:  make(chan struct{}),
	}

	s.statWrites = world.Resources.Status.Ints.Get("store.writes")
	s.statErrors = world.Resources.Status.Ints.Get("store.errors")
	s.statDropped = world.Resources.Status.Ints.Get("store.dropped")

	return s
}

// Name returns system's name
func (s *PersistenceSystem) Name() string {
	return "persistence"
}

func (s *PersistenceSystem) Priority() int {
	return parameter.PriorityPersistence
}

func (s *PersistenceSystem) Update() {
	// No tick-based logic; all writes via events
}

func (s *PersistenceSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventAnchorMoved,
		event.EventHubBuilt,
		event.EventLanguageRequest,
		event.EventLiveryRequest,
	}
}

func (s *PersistenceSystem) HandleEvent(ev event.GameEvent) {
	ctx := s.world.Context()

	switch ev.Type {
	case event.EventAnchorMoved:
		if p, ok := ev.Payload.(*event.AnchorPayload); ok {
			a := store.Anchor{X: p.X, Y: p.Y}
			s.enqueue(func(c context.Context) error { return s.store.SaveAnchor(c, a) })
		}

	case event.EventHubBuilt:
		hubs := HubRecords(ctx)
		s.enqueue(func(c context.Context) error { return s.store.SaveHubs(c, hubs) })

	case event.EventLanguageRequest:
		if p, ok := ev.Payload.(*event.LanguagePayload); ok {
			lang, err := console.ParseLang(p.Lang)
			if err != nil {
				return
			}
			s.enqueue(func(c context.Context) error { return s.store.SaveLanguage(c, string(lang)) })
		}

	case event.EventLiveryRequest:
		livery := ctx.Cosmetics.Livery
		s.enqueue(func(c context.Context) error { return s.store.SaveLivery(c, livery) })
	}
}

// HubRecords copies the persisted hub fields out of the context
func HubRecords(ctx *engine.SimulationContext) []store.HubRecord {
	out := make([]store.HubRecord, 0, len(ctx.Hubs))
	for _, h := range ctx.Hubs {
		out = append(out, store.HubRecord{
			ID:           h.ID,
			Kind:         h.Kind,
			LoopDistance: h.LoopDistance,
			Waiting:      h.Waiting,
		})
	}
	return out
}

// Start runs the write worker until Close or ctx cancellation
func (s *PersistenceSystem) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		core.Go(func() {
			defer close(s.done)
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-s.jobs:
					if !ok {
						return
					}
					s.run(ctx, job)
				}
			}
		})
	})
}

// Close stops accepting writes and waits for queued ones to finish
// Must not be called while holding the world lock
func (s *PersistenceSystem) Close() {
	s.closeOnce.Do(func() {
		s.world.RunSafe(func() {
			s.closed = true
			close(s.jobs)
		})
	})
	// Never started: nothing to drain
	s.startOnce.Do(func() {
		close(s.done)
	})
	<-s.done
}

func (s *PersistenceSystem) run(ctx context.Context, job func(context.Context) error) {
	if err := job(ctx); err != nil {
		s.statErrors.Add(1)
		s.world.Resources.Logger.Error("persist failed", "err", err)
		return
	}
	s.statWrites.Add(1)
}

func (s *PersistenceSystem) enqueue(job func(context.Context) error) {
	if s.store == nil || s.closed {
		return
	}
	select {
	case s.jobs <- job:
	default:
		s.statDropped.Add(1)
		s.world.Resources.Logger.Warn("persist queue full, write dropped")
	}
}
