package system

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/lixenwraith/perimeter/console"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/parameter"
)

var testEpoch = time.Unix(1_700_000_000, 0)

const frame = 16 * time.Millisecond

// harness wires every frame system around a mock clock
type harness struct {
	t         *testing.T
	world     *engine.World
	clock     *engine.MockTimeProvider
	driver    *engine.FrameDriver
	intent    *IntentSystem
	agent     *AgentSystem
	hardware  *HardwareSystem
	particles *ParticleSystem
	log       *console.Log
}

func newHarness(t *testing.T, opts engine.Options) *harness {
	t.Helper()
	clock := engine.NewMockTimeProvider(testEpoch)
	ctx := engine.NewSimulationContext(opts, testEpoch)
	w := engine.NewWorld(ctx, engine.NewResource(nil), clock)

	h := &harness{t: t, world: w, clock: clock}
	h.intent = NewIntentSystem(w, rand.New(rand.NewPCG(1, 2)))
	w.AddSystem(h.intent)
	w.AddSystem(NewMotionSystem(w))
	w.AddSystem(NewTerminalSystem(w))
	h.agent = NewAgentSystem(w)
	w.AddSystem(h.agent)
	h.particles = NewParticleSystem(w, rand.New(rand.NewPCG(3, 4)))
	w.AddSystem(h.particles)
	w.AddSystem(NewTransformSystem(w))
	h.log = console.NewLog(parameter.ConsoleCapacity, console.LangEnglish)
	w.AddSystem(NewConsoleSystem(w, h.log))
	h.hardware = NewHardwareSystem(w, rand.New(rand.NewPCG(5, 6)))

	h.driver = engine.NewFrameDriver(w)
	h.driver.Advance(clock.Now())
	return h
}

// step advances n frames of dt each
func (h *harness) step(n int, dt time.Duration) {
	for i := 0; i < n; i++ {
		h.clock.Advance(dt)
		h.driver.Advance(h.clock.Now())
	}
}

// stepUntil advances frames until cond holds, failing after limit frames
func (h *harness) stepUntil(limit int, cond func(ctx *engine.SimulationContext) bool) int {
	h.t.Helper()
	for i := 0; i < limit; i++ {
		done := false
		h.locked(func(ctx *engine.SimulationContext) { done = cond(ctx) })
		if done {
			return i
		}
		h.step(1, frame)
	}
	h.t.Fatalf("Condition not reached within %d frames", limit)
	return limit
}

func (h *harness) locked(fn func(ctx *engine.SimulationContext)) {
	h.world.RunSafe(func() { fn(h.world.Context()) })
}

func (h *harness) hasEntry(key console.Key) bool {
	for _, e := range h.log.Recent(parameter.ConsoleCapacity) {
		if e.Key == key {
			return true
		}
	}
	return false
}
