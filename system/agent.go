package system

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/economy"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/event"
	"github.com/lixenwraith/perimeter/parameter"
	"github.com/lixenwraith/perimeter/physics"
	"github.com/lixenwraith/perimeter/status"
)

var agentProfile = physics.SteeringProfile{
	SpeedPerMs:    parameter.AgentSpeedPerMs,
	ArrivalRadius: parameter.AgentArrivalEpsilon,
}

// AgentSystem drives the service drone: refuel sorties on low energy and reboots on request
// Settlements are delayed effects re-validated against status, task and epoch when they fire
type AgentSystem struct {
	world *engine.World

	statStatus  *status.AtomicString
	statRefuels *atomic.Int64
	statReboots *atomic.Int64
	statSorties *atomic.Int64
}

func NewAgentSystem(world *engine.World) *AgentSystem {
	s := &AgentSystem{
		world: world,
	}

	s.statStatus = world.Resources.Status.Strings.Get("agent.status")
	s.statRefuels = world.Resources.Status.Ints.Get("agent.refuels")
	s.statReboots = world.Resources.Status.Ints.Get("agent.reboots")
	s.statSorties = world.Resources.Status.Ints.Get("agent.sorties")

	world.Effects().Handle(engine.EffectRefuel, s.applyRefuel)
	world.Effects().Handle(engine.EffectReboot, s.applyReboot)

	s.statStatus.Store(core.AgentIdle.String())
	return s
}

// Name returns system's name
func (s *AgentSystem) Name() string {
	return "agent"
}

func (s *AgentSystem) Priority() int {
	return parameter.PriorityAgent
}

func (s *AgentSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventRebootRequest,
	}
}

func (s *AgentSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type != event.EventRebootRequest {
		return
	}
	ctx := s.world.Context()
	ctx.NoteActivity(ctx.Now)
	if err := s.RequestReboot(); err != nil {
		s.world.PushEvent(event.EventRebootDenied, &event.DenialPayload{Err: err})
		s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{SoundType: core.SoundError})
	}
}

func (s *AgentSystem) Update() {
	ctx := s.world.Context()
	now := ctx.Now
	a := &ctx.Agent
	loco := ctx.Locomotive()
	dtMs := float64(ctx.Delta) / float64(time.Millisecond)

	switch a.Status {
	case core.AgentIdle:
		home := ctx.HomeHub()
		physics.Follow(&a.Body, home.X, home.Y, a.Heading)
		if s.needsRefuel(ctx, now) {
			if h := ctx.NearestEnergyHub(loco.X, loco.Y); h != nil {
				a.HomeHubID = h.ID
			}
			a.Status = core.AgentApproaching
			a.Task = core.TaskRefuel
			s.dispatched(ctx)
		}

	case core.AgentApproaching, core.AgentRebooting:
		if physics.MoveToward(&a.Body, loco.X, loco.Y, agentProfile, dtMs) {
			s.beginService(ctx, now)
		}

	case core.AgentServicing:
		physics.Follow(&a.Body, loco.X, loco.Y, loco.Heading)

	case core.AgentReturning:
		home := ctx.HomeHub()
		if physics.MoveToward(&a.Body, home.X, home.Y, agentProfile, dtMs) {
			physics.Follow(&a.Body, home.X, home.Y, a.Heading)
			a.Status = core.AgentIdle
			a.Task = core.TaskNone
			a.LastAction = now
			s.world.PushEvent(event.EventAgentDocked, &event.AgentPayload{Hub: home.Kind})
		}
	}

	s.statStatus.Store(a.Status.String())
}

// RequestReboot sends the drone to clear a derail
// Accepted only while derailed and when no reboot is already under way; any refuel in progress is abandoned
func (s *AgentSystem) RequestReboot() error {
	ctx := s.world.Context()
	a := &ctx.Agent

	if !ctx.Hardware.Derailed {
		return ErrRebootNotNeeded
	}
	if a.Task == core.TaskReboot && (a.Status == core.AgentRebooting || a.Status == core.AgentServicing) {
		return ErrRebootInFlight
	}

	a.Status = core.AgentRebooting
	a.Task = core.TaskReboot
	a.Epoch++
	s.dispatched(ctx)
	return nil
}

func (s *AgentSystem) needsRefuel(ctx *engine.SimulationContext, now time.Time) bool {
	if ctx.Ledger.Energy >= parameter.LowEnergyRatio*ctx.EnergyCap() {
		return false
	}
	return now.Sub(ctx.Agent.LastAction) >= parameter.AgentCooldown
}

func (s *AgentSystem) dispatched(ctx *engine.SimulationContext) {
	s.statSorties.Add(1)
	s.world.PushEvent(event.EventAgentDispatched, &event.AgentPayload{
		Task: ctx.Agent.Task,
		Hub:  ctx.HomeHub().Kind,
	})
	s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{SoundType: core.SoundWhoosh})
}

func (s *AgentSystem) beginService(ctx *engine.SimulationContext, now time.Time) {
	a := &ctx.Agent
	loco := ctx.Locomotive()
	physics.Follow(&a.Body, loco.X, loco.Y, loco.Heading)
	a.Status = core.AgentServicing
	a.Epoch++

	switch a.Task {
	case core.TaskRefuel:
		s.world.Effects().Schedule(engine.EffectRefuel, now, parameter.RefuelDelay, a.Epoch, ctx.HomeHub().ID)
	case core.TaskReboot:
		s.world.Effects().Schedule(engine.EffectReboot, now, parameter.RebootDelay, a.Epoch, ctx.HomeHub().ID)
	case core.TaskNone:
		a.Status = core.AgentReturning
	}
}

// applyReady reports whether a settlement still matches the sortie that scheduled it
func (s *AgentSystem) applyReady(e engine.Effect, task core.AgentTask) bool {
	a := &s.world.Context().Agent
	return a.Status == core.AgentServicing && a.Task == task && a.Epoch == e.Epoch
}

func (s *AgentSystem) applyRefuel(e engine.Effect) {
	if !s.applyReady(e, core.TaskRefuel) {
		return
	}
	ctx := s.world.Context()

	home := ctx.Hub(e.Target)
	if home == nil {
		home = ctx.HomeHub()
	}
	added := ctx.Ledger.AddEnergy(economy.RefuelAmount(home.Kind), ctx.Train.Cars)

	ctx.Agent.Status = core.AgentReturning
	ctx.Agent.Task = core.TaskNone
	s.statRefuels.Add(1)
	s.world.PushEvent(event.EventRefuelComplete, &event.RefuelPayload{Amount: added, Hub: home.Kind})
}

func (s *AgentSystem) applyReboot(e engine.Effect) {
	if !s.applyReady(e, core.TaskReboot) {
		return
	}
	ctx := s.world.Context()

	ctx.Hardware = engine.HardwareState{
		Load:        parameter.MinLoad,
		Temperature: parameter.AmbientTemperature,
	}
	ctx.Train.Impulse = 0
	ctx.Ledger.SetEnergyRatio(parameter.RebootEnergyRatio, ctx.Train.Cars)

	ctx.Agent.Status = core.AgentReturning
	ctx.Agent.Task = core.TaskNone
	s.statReboots.Add(1)
	s.world.PushEvent(event.EventRebootComplete, nil)
	s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{SoundType: core.SoundCoin})
}
