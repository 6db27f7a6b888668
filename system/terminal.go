package system

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/economy"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/event"
	"github.com/lixenwraith/perimeter/parameter"
	"github.com/lixenwraith/perimeter/vmath"
)

// TerminalSystem halts the train at passenger terminals and settles the exchange after a delay
type TerminalSystem struct {
	world *engine.World

	statStops   *atomic.Int64
	statWaiting *atomic.Int64
	statStopped *atomic.Bool
	statSettled *atomic.Int64
}

func NewTerminalSystem(world *engine.World) engine.System {
	s := &TerminalSystem{
		world: world,
	}

	s.statStops = world.Resources.Status.Ints.Get("terminal.stops")
	s.statWaiting = world.Resources.Status.Ints.Get("terminal.waiting")
	s.statStopped = world.Resources.Status.Bools.Get("terminal.stopped")
	s.statSettled = world.Resources.Status.Ints.Get("terminal.settled")

	world.Effects().Handle(engine.EffectSettle, s.settle)
	return s
}

// Name returns system's name
func (s *TerminalSystem) Name() string {
	return "terminal"
}

func (s *TerminalSystem) Priority() int {
	return parameter.PriorityTerminal
}

func (s *TerminalSystem) Update() {
	ctx := s.world.Context()
	s.growWaiting(ctx, ctx.Now)
	s.statStopped.Store(ctx.Train.Stopped)

	if ctx.Train.Stopped || ctx.Hardware.Derailed {
		return
	}
	length := ctx.Loop.Length()
	if length <= vmath.Epsilon {
		return
	}

	s.rearm(ctx, length)

	if economy.Count(ctx.Train.Cars, core.CarStandard) == 0 {
		return
	}

	window := max(parameter.TerminalWindowMin, ctx.Train.LastMove*parameter.TerminalWindowSpeedFactor)
	for i := range ctx.Hubs {
		h := &ctx.Hubs[i]
		if h.Kind != core.HubTerminal || h.ID == ctx.Terminal.LastServiced {
			continue
		}
		offset := ctx.Loop.Offset(ctx.Train.Distance, h.LoopDistance)
		if offset < window {
			s.stopAt(ctx, h, offset)
			return
		}
	}
}

// rearm clears the last-serviced marker once the train has moved far enough past it
// Clear distance is capped at half the loop so tiny loops still re-arm
func (s *TerminalSystem) rearm(ctx *engine.SimulationContext, length float64) {
	if ctx.Terminal.LastServiced == uuid.Nil {
		return
	}
	if ctx.Hub(ctx.Terminal.LastServiced) == nil {
		ctx.Terminal.LastServiced = uuid.Nil
		return
	}
	clearDist := min(parameter.TerminalClearDistance, length/2)
	if ctx.Train.Distance-ctx.Terminal.ServicedAt > clearDist {
		ctx.Terminal.LastServiced = uuid.Nil
	}
}

func (s *TerminalSystem) stopAt(ctx *engine.SimulationContext, h *engine.Hub, offset float64) {
	tr := &ctx.Train
	tr.Distance -= offset
	tr.Stopped = true
	tr.StopHubID = h.ID
	tr.StopEpoch++

	ctx.Terminal.LastServiced = h.ID
	ctx.Terminal.ServicedAt = tr.Distance

	s.world.Effects().Schedule(engine.EffectSettle, ctx.Now, parameter.TerminalStopDuration, tr.StopEpoch, h.ID)

	s.statStops.Add(1)
	s.statStopped.Store(true)
	s.world.PushEvent(event.EventTerminalArrival, &event.TerminalPayload{HubID: h.ID})
	s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{SoundType: core.SoundBell})
}

// settle is the EffectSettle handler, called under the world lock
func (s *TerminalSystem) settle(e engine.Effect) {
	ctx := s.world.Context()
	tr := &ctx.Train
	if !tr.Stopped || tr.StopHubID != e.Target || tr.StopEpoch != e.Epoch {
		return
	}

	waiting := 0
	h := ctx.Hub(e.Target)
	if h != nil {
		waiting = h.Waiting
	}
	payout, boarded := ctx.Ledger.Settle(tr.Cars, waiting)
	if h != nil {
		h.Waiting -= boarded
	}
	tr.Stopped = false
	tr.StopHubID = uuid.Nil

	s.statSettled.Add(1)
	s.statStopped.Store(false)
	s.world.PushEvent(event.EventTerminalSettled, &event.SettlementPayload{
		HubID:   e.Target,
		Payout:  payout,
		Boarded: boarded,
	})
	if payout > 0 {
		s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{SoundType: core.SoundCoin})
	}
}

// growWaiting adds one passenger per spawn interval to every terminal, up to the cap
// A long stall never backfills more than a full queue
func (s *TerminalSystem) growWaiting(ctx *engine.SimulationContext, now time.Time) {
	total := 0
	for i := range ctx.Hubs {
		h := &ctx.Hubs[i]
		if h.Kind != core.HubTerminal {
			continue
		}
		if h.NextSpawn.IsZero() {
			h.NextSpawn = now.Add(parameter.TerminalSpawnInterval)
		}
		for n := 0; !now.Before(h.NextSpawn) && n < parameter.TerminalMaxWaiting; n++ {
			if h.Waiting < parameter.TerminalMaxWaiting {
				h.Waiting++
			}
			h.NextSpawn = h.NextSpawn.Add(parameter.TerminalSpawnInterval)
		}
		if !now.Before(h.NextSpawn) {
			h.NextSpawn = now.Add(parameter.TerminalSpawnInterval)
		}
		total += h.Waiting
	}
	s.statWaiting.Store(int64(total))
}
