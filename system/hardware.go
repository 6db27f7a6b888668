package system

import (
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/economy"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/event"
	"github.com/lixenwraith/perimeter/parameter"
	"github.com/lixenwraith/perimeter/status"
	"github.com/lixenwraith/perimeter/vmath"
)

// HardwareSystem simulates load, temperature and glitch storms on its own slow cadence
// It is not a frame system: the scheduler calls Run every HardwareInterval
type HardwareSystem struct {
	world *engine.World
	rng   *rand.Rand

	statLoad     *status.AtomicFloat
	statTemp     *status.AtomicFloat
	statPeak     *status.AtomicFloat
	statStorm    *status.AtomicFloat
	statDerailed *atomic.Bool
	statTicks    *atomic.Int64
}

// NewHardwareSystem creates the hardware ticker; rng drives load jitter, nil seeds from entropy
func NewHardwareSystem(world *engine.World, rng *rand.Rand) *HardwareSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &HardwareSystem{
		world: world,
		rng:   rng,
	}

	s.statLoad = world.Resources.Status.Floats.Get("hardware.load")
	s.statTemp = world.Resources.Status.Floats.Get("hardware.temperature")
	s.statPeak = world.Resources.Status.Floats.Get("hardware.temperature_peak")
	s.statStorm = world.Resources.Status.Floats.Get("hardware.storm_ticks")
	s.statDerailed = world.Resources.Status.Bools.Get("hardware.derailed")
	s.statTicks = world.Resources.Status.Ints.Get("hardware.ticks")

	return s
}

// Name returns system's name
func (s *HardwareSystem) Name() string {
	return "hardware"
}

// Run takes the world lock and ticks once, matching the scheduler job signature
func (s *HardwareSystem) Run(_ time.Time) {
	s.world.RunSafe(s.Tick)
}

// Tick advances the hardware model one step; caller holds the world lock
func (s *HardwareSystem) Tick() {
	ctx := s.world.Context()
	hw := &ctx.Hardware
	cpu := ctx.Ledger.CPU

	hw.Load = vmath.Clamp(hw.Load+(TargetLoad(ctx)-hw.Load)*parameter.LoadDamping+s.jitter(),
		parameter.MinLoad, parameter.MaxLoad)

	tempTarget := parameter.AmbientTemperature +
		hw.Load*parameter.TempPerLoad*vmath.Pow(parameter.ThermalEfficiencyStep, cpu)
	hw.Temperature = vmath.Approach(hw.Temperature, tempTarget, parameter.TempDamping)

	if hw.Load > GlitchThreshold(cpu) {
		hw.StormTicks++
		if hw.StormTicks >= parameter.StormDurationCap && !hw.Derailed {
			hw.Derailed = true
			ctx.Train.Impulse = 0
			s.world.PushEvent(event.EventDerailed, nil)
			s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{SoundType: core.SoundAlarm})
		}
	} else {
		hw.StormTicks = max(0, hw.StormTicks-parameter.StormDecay)
	}

	s.statTicks.Add(1)
	s.statLoad.Set(hw.Load)
	s.statTemp.Set(hw.Temperature)
	s.statPeak.SetMax(hw.Temperature)
	s.statStorm.Set(hw.StormTicks)
	s.statDerailed.Store(hw.Derailed)
}

func (s *HardwareSystem) jitter() float64 {
	return (s.rng.Float64()*2 - 1) * parameter.LoadJitter
}

// TargetLoad is the load the hardware settles toward for the current train
func TargetLoad(ctx *engine.SimulationContext) float64 {
	cars := ctx.Train.Cars
	target := parameter.BaseLoad +
		parameter.LoadPerWagon*float64(economy.Wagons(cars)) +
		parameter.LoadPerAIWagon*float64(economy.Count(cars, core.CarAI)) +
		parameter.LoadPerSpeed*ctx.Train.EffectiveSpeed
	return target * vmath.Pow(parameter.CPUEfficiencyStep, ctx.Ledger.CPU)
}

// GlitchThreshold is the load above which storm ticks accumulate
func GlitchThreshold(cpu int) float64 {
	return min(parameter.GlitchThresholdMax, parameter.GlitchThreshold+parameter.GlitchThresholdPerCPU*float64(cpu))
}
