package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves, sweeping linearly from freq to endFreq
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from start to end frequency over duration
func NewSweep(start, end float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     start,
		endFreq:  end,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq + (o.endFreq-o.freq)*float64(o.position)/float64(o.duration)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with linear gain; zero or negative is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func shaped(s beep.Streamer, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(s, d, parameter.CueAttack, parameter.CueRelease, rate)
}

// CreateErrorSound generates a low saw buzz for denied intents
func CreateErrorSound(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(parameter.ErrorSoundFreq, parameter.ErrorSoundDuration, WaveSaw, rate)
	return shaped(osc, parameter.ErrorSoundDuration, rate)
}

// CreatePulseSound generates a short blip for a manual pulse
func CreatePulseSound(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(parameter.PulseSoundFreq, parameter.PulseSoundFreq*1.5, parameter.PulseSoundDuration, WaveSine, rate)
	return shaped(osc, parameter.PulseSoundDuration, rate)
}

// CreateCoinSound generates a two-note chime for purchases and payouts
func CreateCoinSound(rate beep.SampleRate) beep.Streamer {
	n1 := NewOscillator(parameter.CoinSoundNote1Freq, parameter.CoinSoundNote1Duration, WaveSquare, rate)
	n2 := NewOscillator(parameter.CoinSoundNote2Freq, parameter.CoinSoundNote2Duration, WaveSquare, rate)
	return beep.Seq(
		shaped(n1, parameter.CoinSoundNote1Duration, rate),
		shaped(n2, parameter.CoinSoundNote2Duration, rate),
	)
}

// CreateAlarmSound generates a falling square siren for a derail
func CreateAlarmSound(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(parameter.AlarmStartFreq, parameter.AlarmEndFreq, parameter.AlarmSoundDuration, WaveSquare, rate)
	return shaped(osc, parameter.AlarmSoundDuration, rate)
}

// CreateWhooshSound generates rising filtered noise for drone dispatch
func CreateWhooshSound(rate beep.SampleRate) beep.Streamer {
	noise := NewOscillator(0, parameter.WhooshSoundDuration, WaveNoise, rate)
	tone := NewSweep(parameter.WhooshStartFreq, parameter.WhooshEndFreq, parameter.WhooshSoundDuration, WaveSine, rate)
	mixed := beep.Mix(newVolume(noise, 0.4), newVolume(tone, 0.6))
	return shaped(mixed, parameter.WhooshSoundDuration, rate)
}

// CreateBellSound generates a ding with an octave overtone for terminal arrival
func CreateBellSound(rate beep.SampleRate) beep.Streamer {
	fund := NewOscillator(parameter.BellSoundFreq, parameter.BellSoundDuration, WaveSine, rate)
	over := NewOscillator(parameter.BellSoundFreq*2, parameter.BellSoundDuration, WaveSine, rate)
	return beep.Mix(
		newVolume(NewEnvelope(fund, parameter.BellSoundDuration, parameter.CueAttack, parameter.BellRelease, rate), 0.7),
		newVolume(NewEnvelope(over, parameter.BellSoundDuration, parameter.CueAttack, parameter.BellRelease/2, rate), 0.3),
	)
}

// GetSoundEffect returns a fresh unity-gain streamer for the cue, nil for unknown types
func GetSoundEffect(st core.SoundType, rate beep.SampleRate) beep.Streamer {
	switch st {
	case core.SoundError:
		return CreateErrorSound(rate)
	case core.SoundPulse:
		return CreatePulseSound(rate)
	case core.SoundCoin:
		return CreateCoinSound(rate)
	case core.SoundAlarm:
		return CreateAlarmSound(rate)
	case core.SoundWhoosh:
		return CreateWhooshSound(rate)
	case core.SoundBell:
		return CreateBellSound(rate)
	default:
		return nil
	}
}
