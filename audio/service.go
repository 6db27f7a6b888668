package audio

import (
	"sync/atomic"

	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/service"
)

// ServiceOptions is the Init argument of AudioService
type ServiceOptions struct {
	Muted   bool // Start muted, toggled at runtime
	Enabled bool // False skips device setup entirely
}

// AudioService owns the engine lifecycle for the service hub
// A missing device degrades to silence; systems then see no audio resource
type AudioService struct {
	audioEngine *AudioEngine
	output      Output
	disabled    atomic.Bool
}

// NewService creates the service; nil output uses the speaker
func NewService(out Output) *AudioService {
	return &AudioService{output: out}
}

func (s *AudioService) Name() string {
	return "audio"
}

func (s *AudioService) Dependencies() []string {
	return nil
}

// Init takes an optional ServiceOptions; without one audio is enabled and unmuted
func (s *AudioService) Init(args ...any) error {
	opts := ServiceOptions{Enabled: true}
	if len(args) > 0 {
		if o, ok := args[0].(ServiceOptions); ok {
			opts = o
		}
	}
	if !opts.Enabled {
		s.disabled.Store(true)
		return nil
	}

	config := DefaultAudioConfig()
	config.Enabled = !opts.Muted
	audioEngine, err := NewAudioEngine(config, s.output)
	if err != nil {
		s.disabled.Store(true)
		return nil
	}
	s.audioEngine = audioEngine
	return nil
}

// Start opens the device; failure leaves the service disabled rather than failing the hub
func (s *AudioService) Start() error {
	if s.disabled.Load() || s.audioEngine == nil {
		return nil
	}
	if err := s.audioEngine.Start(); err != nil {
		s.disabled.Store(true)
		s.audioEngine = nil
	}
	return nil
}

func (s *AudioService) Stop() error {
	if s.audioEngine != nil && s.audioEngine.IsRunning() {
		s.audioEngine.Stop()
	}
	return nil
}

// Contribute publishes an AudioResource when a player is available
func (s *AudioService) Contribute(publish service.ResourcePublisher) {
	if player := s.Player(); player != nil {
		publish(&engine.AudioResource{Player: player})
	}
}

func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Player returns the player for systems, nil if disabled
func (s *AudioService) Player() engine.AudioPlayer {
	if s.disabled.Load() || s.audioEngine == nil {
		return nil
	}
	return s.audioEngine
}
