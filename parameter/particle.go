package parameter

import "time"

// Smoke / Spark Particles
const (
	// ParticleCapacity is the fixed pool size
	ParticleCapacity = 64

	// ParticleLifetime is the age after which a particle is inactive
	ParticleLifetime = 1200 * time.Millisecond

	// ParticleIntervalScale divided by effective speed gives the spawn interval
	ParticleIntervalScale = 2 * time.Second

	// ParticleIntervalMin and ParticleIntervalMax clamp the spawn interval
	ParticleIntervalMin = 30 * time.Millisecond
	ParticleIntervalMax = 600 * time.Millisecond

	// StormIntervalFactor shortens the spawn interval during a storm
	StormIntervalFactor = 0.5

	// ParticleDriftMax is the maximum drift speed in virtual pixels per second
	ParticleDriftMax = 20.0

	// ParticleScaleMin and ParticleScaleMax bound the randomized initial scale
	ParticleScaleMin = 0.6
	ParticleScaleMax = 1.2

	// ParticleGrowth is the scale added over a particle's lifetime
	ParticleGrowth = 0.8

	// ParticleEmitOffset places the emitter behind the locomotive center
	ParticleEmitOffset = 20.0
)
