package parameter

// Hardware Stress
const (
	// BaseLoad is the load target with an empty train at rest
	BaseLoad = 10.0

	// LoadPerWagon is the load target added by each wagon
	LoadPerWagon = 6.0

	// LoadPerAIWagon is the extra load target of each AI wagon
	LoadPerAIWagon = 10.0

	// LoadPerSpeed is the load target added per unit of effective speed
	LoadPerSpeed = 1.5

	// LoadDamping is the fraction of the gap to target closed each tick
	LoadDamping = 0.3

	// LoadJitter is the half-width of the symmetric random load jitter
	LoadJitter = 3.0

	// MinLoad and MaxLoad clamp load
	MinLoad = 5.0
	MaxLoad = 100.0

	// CPUEfficiencyStep is the per-level multiplier on target load
	CPUEfficiencyStep = 0.85

	// AmbientTemperature is the temperature at zero load
	AmbientTemperature = 35.0

	// TempPerLoad converts load into temperature above ambient
	TempPerLoad = 0.6

	// TempDamping is the fraction of the gap to target temperature closed each tick
	TempDamping = 0.2

	// ThermalEfficiencyStep is the per-CPU-level multiplier on heat generation
	ThermalEfficiencyStep = 0.9

	// GlitchThreshold is the load above which storm ticks accumulate
	GlitchThreshold = 85.0

	// GlitchThresholdPerCPU raises the glitch threshold per CPU level
	GlitchThresholdPerCPU = 3.0

	// GlitchThresholdMax caps the raised threshold
	GlitchThresholdMax = 99.0

	// StormDurationCap is the storm tick count that derails the train
	StormDurationCap = 10.0

	// StormDecay is subtracted from storm ticks each calm tick
	StormDecay = 0.5
)
