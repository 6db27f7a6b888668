// Package audio renders short synthesized cues through beep's speaker
package audio

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/parameter"
)

// ErrAlreadyRunning is returned by a second Start
var ErrAlreadyRunning = errors.New("audio engine already running")

// Output is the device the mixer streams into
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Close()
}

// speakerOutput plays through the default device via beep/speaker
type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerOutput) Play(s beep.Streamer) {
	speaker.Play(s)
}

func (speakerOutput) Close() {
	speaker.Clear()
	speaker.Close()
}

// lockedMixer serializes Add against the device goroutine's Stream
type lockedMixer struct {
	mu    sync.Mutex
	mixer beep.Mixer
}

func (m *lockedMixer) Stream(samples [][2]float64) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mixer.Stream(samples)
}

func (m *lockedMixer) Err() error { return nil }

func (m *lockedMixer) add(s beep.Streamer) {
	m.mu.Lock()
	m.mixer.Add(s)
	m.mu.Unlock()
}

func (m *lockedMixer) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mixer.Len()
}

func (m *lockedMixer) clear() {
	m.mu.Lock()
	m.mixer.Clear()
	m.mu.Unlock()
}

// AudioEngine owns the cue cache and the mixer feeding the output device
type AudioEngine struct {
	config *AudioConfig
	cache  *soundCache
	output Output
	mixer  *lockedMixer
	now    func() time.Time

	running    atomic.Bool
	muted      atomic.Bool
	silentMode atomic.Bool

	mu         sync.Mutex // Protects config and lastPlayed
	lastPlayed [core.SoundTypeCount]time.Time

	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewAudioEngine creates an engine; nil config uses defaults, nil output uses the speaker
func NewAudioEngine(cfg *AudioConfig, out Output) (*AudioEngine, error) {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if cfg.SampleRate <= 0 {
		return nil, errors.New("invalid sample rate")
	}
	if out == nil {
		out = speakerOutput{}
	}
	ae := &AudioEngine{
		config: cfg,
		cache:  newSoundCache(beep.SampleRate(cfg.SampleRate)),
		output: out,
		mixer:  &lockedMixer{},
		now:    time.Now,
	}
	ae.muted.Store(!cfg.Enabled)
	return ae, nil
}

// Start opens the device; a missing device degrades to silent mode without error
func (ae *AudioEngine) Start() error {
	if ae.running.Load() {
		return ErrAlreadyRunning
	}

	rate := beep.SampleRate(ae.config.SampleRate)
	if err := ae.output.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		ae.silentMode.Store(true)
		ae.running.Store(true)
		return nil
	}
	ae.cache.preload()
	ae.output.Play(ae.mixer)
	ae.running.Store(true)
	return nil
}

// Stop releases the device
func (ae *AudioEngine) Stop() {
	if !ae.running.CompareAndSwap(true, false) {
		return
	}
	ae.mixer.clear()
	if !ae.silentMode.Load() {
		ae.output.Close()
	}
}

// Play queues a cue; repeats of one cue closer than MinSoundGap are dropped
func (ae *AudioEngine) Play(st core.SoundType) bool {
	if !ae.running.Load() || ae.muted.Load() || ae.silentMode.Load() {
		return false
	}
	if st < 0 || st >= core.SoundTypeCount {
		return false
	}

	now := ae.now()
	ae.mu.Lock()
	if last := ae.lastPlayed[st]; !last.IsZero() && now.Sub(last) < parameter.MinSoundGap {
		ae.mu.Unlock()
		ae.dropped.Add(1)
		return false
	}
	ae.lastPlayed[st] = now
	vol := ae.config.Volume(st)
	ae.mu.Unlock()

	buf := ae.cache.get(st)
	if buf == nil {
		return false
	}
	ae.mixer.add(newVolume(buf.Streamer(0, buf.Len()), vol))
	ae.played.Add(1)
	return true
}

// ToggleMute toggles mute state, returns true if now enabled
func (ae *AudioEngine) ToggleMute() bool {
	newMute := !ae.muted.Load()
	ae.muted.Store(newMute)
	return !newMute
}

// IsMuted returns current mute state
func (ae *AudioEngine) IsMuted() bool {
	return ae.muted.Load()
}

// IsEnabled returns true if running, unmuted and attached to a device
func (ae *AudioEngine) IsEnabled() bool {
	return ae.running.Load() && !ae.muted.Load() && !ae.silentMode.Load()
}

// IsRunning returns true if engine is running (even in silent mode)
func (ae *AudioEngine) IsRunning() bool {
	return ae.running.Load()
}

// SetVolume updates master volume (0.0-1.0)
func (ae *AudioEngine) SetVolume(vol float64) {
	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}
	ae.mu.Lock()
	ae.config.MasterVolume = vol
	ae.mu.Unlock()
}

// Active returns the number of cues still sounding
func (ae *AudioEngine) Active() int {
	return ae.mixer.len()
}

// GetStats returns played and dropped counts
func (ae *AudioEngine) GetStats() (played, dropped uint64) {
	return ae.played.Load(), ae.dropped.Load()
}
