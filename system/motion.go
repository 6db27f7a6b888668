package system

import (
	"sync/atomic"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/economy"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/parameter"
	"github.com/lixenwraith/perimeter/status"
)

// MotionSystem integrates speed into distance and charges the ledger for it
type MotionSystem struct {
	world *engine.World

	statEffective *status.AtomicFloat
	statEnergy    *status.AtomicFloat
	statScrap     *status.AtomicFloat
	statDistance  *status.AtomicFloat
	statImpulse   *status.AtomicFloat
	statMoving    *atomic.Bool
}

func NewMotionSystem(world *engine.World) engine.System {
	s := &MotionSystem{
		world: world,
	}

	s.statEffective = world.Resources.Status.Floats.Get("train.speed")
	s.statEnergy = world.Resources.Status.Floats.Get("energy.current")
	s.statScrap = world.Resources.Status.Floats.Get("ledger.scrap")
	s.statDistance = world.Resources.Status.Floats.Get("train.total_distance")
	s.statImpulse = world.Resources.Status.Floats.Get("train.impulse")
	s.statMoving = world.Resources.Status.Bools.Get("train.moving")

	return s
}

// Name returns system's name
func (s *MotionSystem) Name() string {
	return "motion"
}

func (s *MotionSystem) Priority() int {
	return parameter.PriorityMotion
}

func (s *MotionSystem) Update() {
	ctx := s.world.Context()
	tr := &ctx.Train
	dt := ctx.Delta.Seconds()

	eff := EffectiveSpeed(ctx)
	tr.EffectiveSpeed = eff
	move := eff * parameter.UnitsPerSecond * dt

	switch {
	case ctx.Hardware.Derailed:
		tr.Impulse = 0
	case tr.Stopped:
		// Impulse is held until the terminal releases the train
	case tr.Impulse > 0:
		applied := tr.Impulse * parameter.ImpulseDecay
		tr.Impulse -= applied
		move += applied
		if tr.Impulse < parameter.ImpulseEpsilon {
			tr.Impulse = 0
		}
	}

	if move > 0 {
		ctx.Ledger.Drain(economy.DistanceDrain(move, ctx.Loop.Length(), ctx.Ledger.Efficiency, ctx.Hardware.Temperature))
		residential := economy.Count(tr.Cars, core.CarResidential)
		ctx.Ledger.Scrap += parameter.ScrapPerResidentialPerSecond * float64(residential) * dt
		tr.Distance += move
		ctx.Ledger.TotalDistance += move
	} else {
		move = 0
		ctx.Ledger.Drain(economy.IdleDrain(dt, ctx.Hardware.Derailed))
	}
	tr.LastMove = move

	s.statEffective.Set(eff)
	s.statEnergy.Set(ctx.Ledger.Energy)
	s.statScrap.Set(ctx.Ledger.Scrap)
	s.statDistance.Set(ctx.Ledger.TotalDistance)
	s.statImpulse.Set(tr.Impulse)
	s.statMoving.Store(move > 0)
}

// EffectiveSpeed is the base speed after energy, thermal, idle and wake factors
// Zero while derailed or halted at a terminal
func EffectiveSpeed(ctx *engine.SimulationContext) float64 {
	if ctx.Hardware.Derailed || ctx.Train.Stopped {
		return 0
	}
	return ctx.Train.Speed *
		economy.EnergyFactor(ctx.Ledger.Energy, ctx.EnergyCap()) *
		economy.ThermalThrottle(ctx.Hardware.Temperature) *
		ctx.IdleFactor(ctx.Now) *
		ctx.WakeFactor(ctx.Now)
}
