package system

import (
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/parameter"
	"github.com/lixenwraith/perimeter/particle"
	"github.com/lixenwraith/perimeter/vmath"
)

// ParticleSystem emits smoke behind the locomotive, sparks during a storm
type ParticleSystem struct {
	world *engine.World
	rng   *rand.Rand

	nextSpawn time.Time

	statActive  *atomic.Int64
	statSpawned *atomic.Int64
}

// NewParticleSystem creates the emitter; rng drives drift, scale and color, nil seeds from entropy
func NewParticleSystem(world *engine.World, rng *rand.Rand) *ParticleSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &ParticleSystem{
		world: world,
		rng:   rng,
	}

	s.statActive = world.Resources.Status.Ints.Get("particles.active")
	s.statSpawned = world.Resources.Status.Ints.Get("particles.spawned")

	return s
}

// Name returns system's name
func (s *ParticleSystem) Name() string {
	return "particle"
}

func (s *ParticleSystem) Priority() int {
	return parameter.PriorityParticle
}

func (s *ParticleSystem) Update() {
	ctx := s.world.Context()
	now := ctx.Now
	defer func() {
		s.statActive.Store(int64(ctx.Particles.ActiveCount(now)))
	}()

	speed := ctx.Train.EffectiveSpeed
	if speed <= 0 {
		s.nextSpawn = time.Time{}
		return
	}

	if s.nextSpawn.IsZero() || !now.Before(s.nextSpawn) {
		s.emit(ctx, now)
		s.nextSpawn = now.Add(SpawnInterval(speed, ctx.Hardware.Storm()))
	}
}

// SpawnInterval is the emission period for an effective speed, halved during a storm
func SpawnInterval(speed float64, storm bool) time.Duration {
	if speed <= 0 {
		return parameter.ParticleIntervalMax
	}
	iv := time.Duration(float64(parameter.ParticleIntervalScale) / speed)
	iv = max(parameter.ParticleIntervalMin, min(parameter.ParticleIntervalMax, iv))
	if storm {
		iv = time.Duration(float64(iv) * parameter.StormIntervalFactor)
	}
	return iv
}

func (s *ParticleSystem) emit(ctx *engine.SimulationContext, now time.Time) {
	loco := ctx.Locomotive()
	rad := loco.Heading * math.Pi / 180
	driftAngle := s.rng.Float64() * 2 * math.Pi
	driftSpeed := s.rng.Float64() * parameter.ParticleDriftMax

	palette, shape := core.SmokeColors, core.ShapePuff
	if ctx.Hardware.Storm() {
		palette, shape = core.SparkColors, core.ShapeSpark
	}

	ctx.Particles.Spawn(particle.Particle{
		X:         loco.X - math.Cos(rad)*parameter.ParticleEmitOffset,
		Y:         loco.Y - math.Sin(rad)*parameter.ParticleEmitOffset,
		Heading:   loco.Heading,
		CreatedAt: now,
		Scale:     vmath.Lerp(parameter.ParticleScaleMin, parameter.ParticleScaleMax, s.rng.Float64()),
		DriftX:    math.Cos(driftAngle) * driftSpeed,
		DriftY:    math.Sin(driftAngle) * driftSpeed,
		Color:     palette[s.rng.IntN(len(palette))],
		Shape:     shape,
	})
	s.statSpawned.Add(1)
}
