package engine

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/economy"
	"github.com/lixenwraith/perimeter/parameter"
	"github.com/lixenwraith/perimeter/particle"
	"github.com/lixenwraith/perimeter/track"
	"github.com/lixenwraith/perimeter/vmath"
)

// Options seeds a new SimulationContext
type Options struct {
	Width, Height float64
	Margin        float64
	CornerRadius  float64
	CarSpacing    float64
	Speed         float64
	IdleCruise    bool
	GodMode       bool
	Livery        core.RGB
	Catalog       economy.Catalog

	// Persisted scalars, nil or empty means default
	Anchor *Anchor
	Hubs   []Hub
}

// DefaultOptions returns the startup options for a default viewport
func DefaultOptions() Options {
	return Options{
		Width:        parameter.DefaultViewportWidth,
		Height:       parameter.DefaultViewportHeight,
		Margin:       parameter.DefaultMargin,
		CornerRadius: parameter.DefaultCornerRadius,
		CarSpacing:   parameter.DefaultCarSpacing,
		Speed:        parameter.DefaultSpeed,
		IdleCruise:   true,
		Livery:       core.Liveries[0],
		Catalog:      economy.DefaultCatalog(),
	}
}

// NewSimulationContext builds the startup state; now seeds activity and agent timestamps
func NewSimulationContext(opts Options, now time.Time) *SimulationContext {
	if opts.CarSpacing <= 0 {
		opts.CarSpacing = parameter.DefaultCarSpacing
	}

	ctx := &SimulationContext{
		Viewport:     Viewport{Width: opts.Width, Height: opts.Height},
		Margin:       vmath.Clamp(opts.Margin, 0, parameter.MaxMargin),
		CornerRadius: vmath.Clamp(opts.CornerRadius, 0, parameter.MaxCornerRadius),
		CarSpacing:   opts.CarSpacing,
		Train: TrainState{
			Cars:  []core.CarKind{core.CarLocomotive},
			Speed: vmath.Clamp(opts.Speed, 0, parameter.MaxSpeed),
		},
		Ledger:  economy.NewLedger(),
		Catalog: opts.Catalog,
		Hardware: HardwareState{
			Load:        parameter.MinLoad,
			Temperature: parameter.AmbientTemperature,
		},
		Activity: ActivityState{
			LastInput:  now,
			IdleCruise: opts.IdleCruise,
		},
		Particles: particle.NewPool(parameter.ParticleCapacity, parameter.ParticleLifetime),
		Cosmetics: Cosmetics{Livery: opts.Livery},
		GodMode:   opts.GodMode,
		Now:       now,
	}
	ctx.Loop = track.NewLoop(ctx.Viewport.Width, ctx.Viewport.Height, ctx.Margin, ctx.CornerRadius)

	if opts.Anchor != nil {
		ctx.Anchor = *opts.Anchor
	} else {
		ctx.Anchor = Anchor{X: ctx.Viewport.Width / 2, Y: ctx.Viewport.Height / 2}
	}
	ctx.clampAnchor()

	// Command hub is always first; persisted hubs restore the rest
	command := Hub{ID: uuid.New(), Kind: core.HubCommand}
	for _, h := range opts.Hubs {
		if h.Kind == core.HubCommand {
			command.ID = h.ID
			continue
		}
		ctx.Hubs = append(ctx.Hubs, h)
	}
	ctx.Hubs = append([]Hub{command}, ctx.Hubs...)
	for i := range ctx.Hubs {
		h := &ctx.Hubs[i]
		if h.Kind == core.HubTerminal && h.NextSpawn.IsZero() {
			h.NextSpawn = now.Add(parameter.TerminalSpawnInterval)
		}
	}
	ctx.layoutHubs()

	ctx.Agent.HomeHubID = command.ID
	ctx.Agent.X, ctx.Agent.Y = ctx.Anchor.X, ctx.Anchor.Y
	ctx.Agent.Status = core.AgentIdle
	ctx.Agent.LastAction = now

	return ctx
}

// --- Geometry ---

// SetViewport resizes the surface and rebuilds the loop
func (ctx *SimulationContext) SetViewport(width, height float64) {
	ctx.Viewport = Viewport{Width: math.Max(0, width), Height: math.Max(0, height)}
	ctx.rebuildLoop()
	ctx.clampAnchor()
	ctx.layoutHubs()
}

// SetGeometry changes margin and corner radius, clamped to their bounds
func (ctx *SimulationContext) SetGeometry(margin, radius float64) {
	ctx.Margin = vmath.Clamp(margin, 0, parameter.MaxMargin)
	ctx.CornerRadius = vmath.Clamp(radius, 0, parameter.MaxCornerRadius)
	ctx.rebuildLoop()
	ctx.layoutHubs()
}

// rebuildLoop recomputes the loop and keeps loop hubs at the same fraction of the perimeter
func (ctx *SimulationContext) rebuildLoop() {
	oldLength := ctx.Loop.Length()
	ctx.Loop = track.NewLoop(ctx.Viewport.Width, ctx.Viewport.Height, ctx.Margin, ctx.CornerRadius)
	newLength := ctx.Loop.Length()

	if oldLength <= vmath.Epsilon || newLength <= vmath.Epsilon {
		return
	}
	scale := newLength / oldLength
	for i := range ctx.Hubs {
		if ctx.Hubs[i].Kind != core.HubCommand {
			ctx.Hubs[i].LoopDistance = vmath.Mod(ctx.Hubs[i].LoopDistance*scale, newLength)
		}
	}
}

// layoutHubs refreshes hub screen positions from the loop and the anchor
func (ctx *SimulationContext) layoutHubs() {
	for i := range ctx.Hubs {
		h := &ctx.Hubs[i]
		if h.Kind == core.HubCommand {
			h.X, h.Y = ctx.Anchor.X, ctx.Anchor.Y
			continue
		}
		p := ctx.Loop.PositionAt(h.LoopDistance)
		h.X, h.Y = p.X, p.Y
	}
}

// MoveAnchor places the command anchor, kept AnchorInset away from the viewport edge
func (ctx *SimulationContext) MoveAnchor(x, y float64) Anchor {
	ctx.Anchor = Anchor{X: x, Y: y}
	ctx.clampAnchor()
	ctx.layoutHubs()
	return ctx.Anchor
}

func (ctx *SimulationContext) clampAnchor() {
	inset := parameter.AnchorInset
	maxX := math.Max(inset, ctx.Viewport.Width-inset)
	maxY := math.Max(inset, ctx.Viewport.Height-inset)
	ctx.Anchor.X = vmath.Clamp(ctx.Anchor.X, inset, maxX)
	ctx.Anchor.Y = vmath.Clamp(ctx.Anchor.Y, inset, maxY)
}

// --- Train ---

// Locomotive returns the live position of the lead car
func (ctx *SimulationContext) Locomotive() track.Position {
	return ctx.Loop.PositionAt(ctx.Train.Distance)
}

// CarDistance returns the loop distance of car i
// Non-lead cars are pulled forward by the locomotive/wagon width difference so couplers meet
func (ctx *SimulationContext) CarDistance(i int) float64 {
	d := ctx.Train.Distance - float64(i)*ctx.CarSpacing
	if i > 0 {
		d += parameter.CarWidthCorrection
	}
	return d
}

// EnergyCap returns the cap for the current composition
func (ctx *SimulationContext) EnergyCap() float64 {
	return economy.EnergyCap(ctx.Train.Cars)
}

// SetSpeed sets the base speed, clamped to [0, MaxSpeed]
func (ctx *SimulationContext) SetSpeed(speed float64) float64 {
	ctx.Train.Speed = vmath.Clamp(speed, 0, parameter.MaxSpeed)
	return ctx.Train.Speed
}

// Attended reports whether an AI wagon keeps the train from idling
func (ctx *SimulationContext) Attended() bool {
	return economy.Count(ctx.Train.Cars, core.CarAI) > 0
}

// --- Activity ---

// NoteActivity records user input; input after idle decay began starts a wake boost
func (ctx *SimulationContext) NoteActivity(now time.Time) {
	if now.Sub(ctx.Activity.LastInput) > parameter.IdleGrace {
		ctx.Activity.WakeStart = now
	}
	ctx.Activity.LastInput = now
}

// IdleFactor is 1 during the grace period, then eases down to the idle floor
func (ctx *SimulationContext) IdleFactor(now time.Time) float64 {
	if ctx.Attended() {
		return 1
	}
	inactive := now.Sub(ctx.Activity.LastInput)
	if inactive <= parameter.IdleGrace {
		return 1
	}
	floor := 0.0
	if ctx.Activity.IdleCruise {
		floor = parameter.IdleFloor
	}
	t := float64(inactive-parameter.IdleGrace) / float64(parameter.IdleDecayWindow)
	return 1 - (1-floor)*vmath.Smoothstep(t)
}

// WakeFactor is the fading boost after activity resumes
func (ctx *SimulationContext) WakeFactor(now time.Time) float64 {
	if ctx.Activity.WakeStart.IsZero() {
		return 1
	}
	elapsed := now.Sub(ctx.Activity.WakeStart)
	if elapsed < 0 || elapsed >= parameter.WakeBoostDuration {
		return 1
	}
	remaining := 1 - float64(elapsed)/float64(parameter.WakeBoostDuration)
	return 1 + (parameter.WakeBoost-1)*remaining
}

// --- Hubs ---

// Hub returns the hub with the given ID
func (ctx *SimulationContext) Hub(id uuid.UUID) *Hub {
	for i := range ctx.Hubs {
		if ctx.Hubs[i].ID == id {
			return &ctx.Hubs[i]
		}
	}
	return nil
}

// CommandHub returns the anchor-bound hub
func (ctx *SimulationContext) CommandHub() *Hub {
	return &ctx.Hubs[0]
}

// AddHub places a new hub at a loop distance
func (ctx *SimulationContext) AddHub(kind core.HubKind, distance float64) Hub {
	h := Hub{
		ID:           uuid.New(),
		Kind:         kind,
		LoopDistance: ctx.Loop.Normalize(distance),
	}
	if kind == core.HubTerminal {
		h.Waiting = parameter.TerminalInitialWaiting
		h.NextSpawn = ctx.Now.Add(parameter.TerminalSpawnInterval)
	}
	p := ctx.Loop.PositionAt(h.LoopDistance)
	h.X, h.Y = p.X, p.Y
	ctx.Hubs = append(ctx.Hubs, h)
	return h
}

// NearestEnergyHub returns the closest hub that can home the drone
func (ctx *SimulationContext) NearestEnergyHub(x, y float64) *Hub {
	var best *Hub
	bestDist := math.Inf(1)
	for i := range ctx.Hubs {
		h := &ctx.Hubs[i]
		if !h.Kind.IsEnergy() {
			continue
		}
		if d := vmath.Distance(x, y, h.X, h.Y); d < bestDist {
			best, bestDist = h, d
		}
	}
	return best
}

// HomeHub returns the drone's home, falling back to the command hub
func (ctx *SimulationContext) HomeHub() *Hub {
	if h := ctx.Hub(ctx.Agent.HomeHubID); h != nil {
		return h
	}
	return ctx.CommandHub()
}
