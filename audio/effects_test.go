package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/parameter"
)

const testRate = beep.SampleRate(parameter.AudioSampleRate)

// drain reads a streamer to the end and returns samples and peak amplitude
func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if a := math.Abs(buf[i][0]); a > peak {
				peak = a
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	d := 100 * time.Millisecond
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		n, peak := drain(NewOscillator(440, d, wave, testRate))
		if n != testRate.N(d) {
			t.Errorf("Wave %d: expected %d samples, got %d", wave, testRate.N(d), n)
		}
		if peak > 1.0 || peak == 0 {
			t.Errorf("Wave %d: peak %f out of range", wave, peak)
		}
	}
}

func TestEnvelopeRampsFromSilence(t *testing.T) {
	d := 50 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, testRate), d, 10*time.Millisecond, 10*time.Millisecond, testRate)

	buf := make([][2]float64, testRate.N(d))
	n, _ := env.Stream(buf)
	if n != len(buf) {
		t.Fatalf("Expected %d samples, got %d", len(buf), n)
	}
	if buf[0][0] != 0 {
		t.Errorf("Expected attack to start at 0, got %f", buf[0][0])
	}
	mid := buf[n/2][0]
	if math.Abs(mid) != 1.0 {
		t.Errorf("Expected full gain in sustain, got %f", mid)
	}
	if last := math.Abs(buf[n-1][0]); last > 0.05 {
		t.Errorf("Expected release near 0, got %f", last)
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	_, peak := drain(newVolume(NewOscillator(440, 20*time.Millisecond, WaveSine, testRate), 0))
	if peak != 0 {
		t.Errorf("Expected silence, peak %f", peak)
	}
}

func TestEveryCueRenders(t *testing.T) {
	for st := core.SoundType(0); st < core.SoundTypeCount; st++ {
		s := GetSoundEffect(st, testRate)
		if s == nil {
			t.Errorf("Expected streamer for %s", st)
			continue
		}
		n, peak := drain(s)
		if n == 0 || peak == 0 {
			t.Errorf("Cue %s rendered %d samples, peak %f", st, n, peak)
		}
		if n > testRate.N(time.Second) {
			t.Errorf("Cue %s too long: %d samples", st, n)
		}
	}
	if GetSoundEffect(core.SoundTypeCount, testRate) != nil {
		t.Error("Expected nil for unknown cue")
	}
}

func TestCoinIsTwoNotes(t *testing.T) {
	n, _ := drain(CreateCoinSound(testRate))
	want := testRate.N(parameter.CoinSoundNote1Duration) + testRate.N(parameter.CoinSoundNote2Duration)
	if n != want {
		t.Errorf("Expected %d samples, got %d", want, n)
	}
}
