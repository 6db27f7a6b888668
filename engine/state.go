package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/economy"
	"github.com/lixenwraith/perimeter/particle"
	"github.com/lixenwraith/perimeter/physics"
	"github.com/lixenwraith/perimeter/track"
)

// TrainState is the locomotive and its wagons
// Cars[0] is always the locomotive
type TrainState struct {
	Distance       float64 // Monotonic except terminal snaps
	Cars           []core.CarKind
	Speed          float64 // Base speed setting [0, MaxSpeed]
	EffectiveSpeed float64 // Speed after all factors, last frame
	Impulse        float64 // Pending pulse distance, released geometrically
	LastMove       float64 // Distance moved last frame
	Stopped        bool    // Halted at a terminal
	StopHubID      uuid.UUID
	StopEpoch      uint64
}

// HardwareState is the slow load/temperature simulation
type HardwareState struct {
	Load        float64
	Temperature float64
	StormTicks  float64
	Derailed    bool
}

// Storm reports whether a glitch storm is building
func (h *HardwareState) Storm() bool {
	return h.StormTicks > 0
}

// AgentState is the service drone
type AgentState struct {
	physics.Body
	Status     core.AgentStatus
	Task       core.AgentTask
	LastAction time.Time
	HomeHubID  uuid.UUID
	Epoch      uint64 // Bumped on every servicing start and reboot retarget
}

// Hub is an energy hub or passenger terminal
type Hub struct {
	ID           uuid.UUID
	Kind         core.HubKind
	LoopDistance float64 // Unused for the command hub, which follows the anchor
	X, Y         float64
	Waiting      int       // Terminal passengers
	NextSpawn    time.Time // Terminal passenger arrival
}

// ActivityState tracks user input for idle cruise
type ActivityState struct {
	LastInput  time.Time
	WakeStart  time.Time // Zero when no wake boost is running
	IdleCruise bool      // Idle floor instead of full stop
}

// TerminalState tracks stop re-arming
type TerminalState struct {
	LastServiced uuid.UUID
	ServicedAt   float64 // Train distance at the stop; the marker clears once the train has moved on
}

// Viewport is the host surface in virtual pixels
type Viewport struct {
	Width, Height float64
}

// Anchor is the draggable command hub position
type Anchor struct {
	X, Y float64
}

// Cosmetics holds presentation-only choices
type Cosmetics struct {
	Livery    core.RGB
	SkinTheme string
	SkinRef   string
}

// SimulationContext is the whole simulation state, owned by World and mutated under its lock
type SimulationContext struct {
	Viewport     Viewport
	Margin       float64
	CornerRadius float64
	CarSpacing   float64
	Loop         track.Loop

	Train    TrainState
	Ledger   economy.Ledger
	Catalog  economy.Catalog
	Hardware HardwareState
	Agent    AgentState
	Hubs     []Hub
	Anchor   Anchor
	Activity ActivityState
	Terminal TerminalState

	Particles *particle.Pool
	Cosmetics Cosmetics
	GodMode   bool

	// Frame timing, written by FrameDriver
	Now         time.Time
	Delta       time.Duration
	FrameNumber int64

	// Frame is the presentation output of the last frame
	Frame Frame
}
