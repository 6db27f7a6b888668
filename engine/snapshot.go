package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/economy"
)

// Snapshot is a read-only copy of economy, hardware and drone state for display and observers
type Snapshot struct {
	Time  time.Time `json:"time"`
	Frame int64     `json:"frame"`

	Energy        float64 `json:"energy"`
	EnergyCap     float64 `json:"energy_cap"`
	Scrap         float64 `json:"scrap"`
	Passengers    int     `json:"passengers"`
	Capacity      int     `json:"capacity"`
	Population    int     `json:"population"`
	TotalDistance float64 `json:"total_distance"`
	Laps          float64 `json:"laps"`
	Efficiency    int     `json:"efficiency"`
	CPU           int     `json:"cpu"`

	Speed          float64        `json:"speed"`
	EffectiveSpeed float64        `json:"effective_speed"`
	Stopped        bool           `json:"stopped"`
	Cars           []core.CarKind `json:"cars"`

	Load        float64 `json:"load"`
	Temperature float64 `json:"temperature"`
	StormTicks  float64 `json:"storm_ticks"`
	Derailed    bool    `json:"derailed"`

	Agent AgentSnapshot `json:"agent"`
	Hubs  []HubSnapshot `json:"hubs"`

	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Margin       float64 `json:"margin"`
	CornerRadius float64 `json:"corner_radius"`
	Length       float64 `json:"length"`

	Livery          string `json:"livery"`
	Skin            string `json:"skin,omitempty"`
	ParticlesActive int    `json:"particles_active"`
}

// AgentSnapshot is the drone part of a snapshot
type AgentSnapshot struct {
	Status  core.AgentStatus `json:"status"`
	Task    core.AgentTask   `json:"task"`
	X       float64          `json:"x"`
	Y       float64          `json:"y"`
	Heading float64          `json:"heading"`
}

// HubSnapshot is one hub in a snapshot
type HubSnapshot struct {
	ID      uuid.UUID    `json:"id"`
	Kind    core.HubKind `json:"kind"`
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	Waiting int          `json:"waiting"`
}

// Snapshot copies the current state, caller must hold the world lock
func (ctx *SimulationContext) Snapshot() Snapshot {
	s := Snapshot{
		Time:  ctx.Now,
		Frame: ctx.FrameNumber,

		Energy:        ctx.Ledger.Energy,
		EnergyCap:     ctx.EnergyCap(),
		Scrap:         ctx.Ledger.Scrap,
		Passengers:    ctx.Ledger.Passengers,
		Capacity:      economy.PassengerCapacity(ctx.Train.Cars),
		Population:    ctx.Ledger.Population,
		TotalDistance: ctx.Ledger.TotalDistance,
		Efficiency:    ctx.Ledger.Efficiency,
		CPU:           ctx.Ledger.CPU,

		Speed:          ctx.Train.Speed,
		EffectiveSpeed: ctx.Train.EffectiveSpeed,
		Stopped:        ctx.Train.Stopped,
		Cars:           append([]core.CarKind(nil), ctx.Train.Cars...),

		Load:        ctx.Hardware.Load,
		Temperature: ctx.Hardware.Temperature,
		StormTicks:  ctx.Hardware.StormTicks,
		Derailed:    ctx.Hardware.Derailed,

		Agent: AgentSnapshot{
			Status:  ctx.Agent.Status,
			Task:    ctx.Agent.Task,
			X:       ctx.Agent.X,
			Y:       ctx.Agent.Y,
			Heading: ctx.Agent.Heading,
		},

		Width:        ctx.Viewport.Width,
		Height:       ctx.Viewport.Height,
		Margin:       ctx.Margin,
		CornerRadius: ctx.CornerRadius,
		Length:       ctx.Loop.Length(),

		Livery:          ctx.Cosmetics.Livery.Hex(),
		Skin:            ctx.Cosmetics.SkinRef,
		ParticlesActive: ctx.Particles.ActiveCount(ctx.Now),
	}

	if l := ctx.Loop.Length(); l > 0 {
		s.Laps = ctx.Ledger.TotalDistance / l
	}

	s.Hubs = make([]HubSnapshot, len(ctx.Hubs))
	for i, h := range ctx.Hubs {
		s.Hubs[i] = HubSnapshot{ID: h.ID, Kind: h.Kind, X: h.X, Y: h.Y, Waiting: h.Waiting}
	}
	return s
}
