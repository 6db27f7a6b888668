package audio

import (
	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/parameter"
)

// AudioConfig holds audio settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	SampleRate    int
	EffectVolumes map[core.SoundType]float64
}

// DefaultAudioConfig returns unmuted defaults with per-cue balance
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: parameter.AudioVolume,
		SampleRate:   parameter.AudioSampleRate,
		EffectVolumes: map[core.SoundType]float64{
			core.SoundError:  0.8,
			core.SoundPulse:  0.6,
			core.SoundCoin:   0.7,
			core.SoundAlarm:  1.0,
			core.SoundWhoosh: 0.5,
			core.SoundBell:   0.8,
		},
	}
}

// Volume returns the effective gain for a cue
func (c *AudioConfig) Volume(st core.SoundType) float64 {
	vol := c.MasterVolume
	if ev, ok := c.EffectVolumes[st]; ok {
		vol *= ev
	}
	return vol
}
