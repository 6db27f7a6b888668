package system

import (
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/parameter"
	"github.com/lixenwraith/perimeter/particle"
)

// TransformSystem publishes the frame: car, drone, particle and hub placements
// Buffers are reused across frames; World.CurrentFrame hands out copies
type TransformSystem struct {
	world *engine.World
}

func NewTransformSystem(world *engine.World) engine.System {
	return &TransformSystem{
		world: world,
	}
}

// Name returns system's name
func (s *TransformSystem) Name() string {
	return "transform"
}

func (s *TransformSystem) Priority() int {
	return parameter.PriorityTransform
}

func (s *TransformSystem) Update() {
	ctx := s.world.Context()
	now := ctx.Now
	f := &ctx.Frame

	f.Number = ctx.FrameNumber

	f.Cars = f.Cars[:0]
	for i, kind := range ctx.Train.Cars {
		p := ctx.Loop.PositionAt(ctx.CarDistance(i))
		f.Cars = append(f.Cars, engine.CarTransform{Kind: kind, X: p.X, Y: p.Y, Heading: p.Heading})
	}

	a := &ctx.Agent
	f.Agent = engine.AgentTransform{X: a.X, Y: a.Y, Heading: a.Heading, Status: a.Status}

	f.Particles = f.Particles[:0]
	ctx.Particles.Slots(now, func(pt *particle.Particle, age float64, active bool) {
		if !active {
			f.Particles = append(f.Particles, engine.ParticleTransform{})
			return
		}
		elapsed := age * ctx.Particles.Lifetime().Seconds()
		f.Particles = append(f.Particles, engine.ParticleTransform{
			Active:  true,
			X:       pt.X + pt.DriftX*elapsed,
			Y:       pt.Y + pt.DriftY*elapsed,
			Heading: pt.Heading,
			Scale:   pt.Scale + parameter.ParticleGrowth*age,
			Opacity: 1 - age,
			Color:   pt.Color,
			Shape:   pt.Shape,
		})
	})

	f.Hubs = f.Hubs[:0]
	for _, h := range ctx.Hubs {
		f.Hubs = append(f.Hubs, engine.HubTransform{ID: h.ID, Kind: h.Kind, X: h.X, Y: h.Y, Waiting: h.Waiting})
	}

	f.Livery = ctx.Cosmetics.Livery
	f.Skin = ctx.Cosmetics.SkinRef
	f.Stopped = ctx.Train.Stopped
	f.Derailed = ctx.Hardware.Derailed
	f.Storm = ctx.Hardware.Storm()
}
