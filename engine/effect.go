package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// EffectKind is the closed set of delayed settlements
type EffectKind uint8

const (
	EffectRefuel EffectKind = iota // Drone energy delivery
	EffectReboot                   // Drone derail clearance
	EffectSettle                   // Terminal passenger exchange
	effectKindCount
)

// String returns the effect name
func (k EffectKind) String() string {
	switch k {
	case EffectRefuel:
		return "refuel"
	case EffectReboot:
		return "reboot"
	case EffectSettle:
		return "settle"
	default:
		return "unknown"
	}
}

// Effect is a scheduled settlement record
// Handlers re-check Epoch and Target against live state before applying
type Effect struct {
	ID     uint64
	Kind   EffectKind
	FireAt time.Time
	Epoch  uint64
	Target uuid.UUID
}

// EffectHandler applies an effect, called under the world lock
type EffectHandler func(e Effect)

type pendingEffect struct {
	effect Effect
	timer  Timer
}

// Effects holds pending delayed settlements
// Each effect fires once: from its real timer or from the frame driver, whichever observes it due first
type Effects struct {
	world    *World
	clock    TimeProvider
	pending  map[uint64]*pendingEffect
	nextID   uint64
	handlers [effectKindCount]EffectHandler
}

func newEffects(world *World, clock TimeProvider) *Effects {
	return &Effects{
		world:   world,
		clock:   clock,
		pending: make(map[uint64]*pendingEffect),
	}
}

// Handle registers the handler for a kind, replacing any previous one
func (e *Effects) Handle(kind EffectKind, h EffectHandler) {
	if kind < effectKindCount {
		e.handlers[kind] = h
	}
}

// Schedule records an effect due at now+delay and arms a timer for it
// Caller must hold the world lock
func (e *Effects) Schedule(kind EffectKind, now time.Time, delay time.Duration, epoch uint64, target uuid.UUID) Effect {
	e.nextID++
	eff := Effect{
		ID:     e.nextID,
		Kind:   kind,
		FireAt: now.Add(delay),
		Epoch:  epoch,
		Target: target,
	}

	p := &pendingEffect{effect: eff}
	if e.clock != nil {
		wait := eff.FireAt.Sub(e.clock.Now())
		if wait < 0 {
			wait = 0
		}
		p.timer = e.clock.AfterFunc(wait, e.onTimer)
	}
	e.pending[eff.ID] = p
	return eff
}

// onTimer runs on the timer goroutine
func (e *Effects) onTimer() {
	e.world.RunSafe(func() {
		e.FireDue(e.clock.Now())
	})
}

// FireDue applies every effect due at now in FireAt order and returns the count fired
// Caller must hold the world lock
func (e *Effects) FireDue(now time.Time) int {
	var due []*pendingEffect
	for id, p := range e.pending {
		if !p.effect.FireAt.After(now) {
			due = append(due, p)
			delete(e.pending, id)
		}
	}
	if len(due) == 0 {
		return 0
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].effect.FireAt.Equal(due[j].effect.FireAt) {
			return due[i].effect.ID < due[j].effect.ID
		}
		return due[i].effect.FireAt.Before(due[j].effect.FireAt)
	})

	for _, p := range due {
		if p.timer != nil {
			p.timer.Stop()
		}
		if h := e.handlers[p.effect.Kind]; h != nil {
			h(p.effect)
		}
	}
	return len(due)
}

// Pending returns the number of unfired effects
func (e *Effects) Pending() int {
	return len(e.pending)
}

// PendingKind returns the number of unfired effects of a kind
func (e *Effects) PendingKind(kind EffectKind) int {
	n := 0
	for _, p := range e.pending {
		if p.effect.Kind == kind {
			n++
		}
	}
	return n
}

// Cancel drops all pending effects and disarms their timers
func (e *Effects) Cancel() {
	for id, p := range e.pending {
		if p.timer != nil {
			p.timer.Stop()
		}
		delete(e.pending, id)
	}
}
