package engine

import (
	"github.com/charmbracelet/log"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/status"
)

// Resource holds singleton services shared by systems, accessed via World.Resources
type Resource struct {
	// Telemetry
	Status *status.Registry

	// Logger is the component logger, discarding unless debug logging is on
	Logger *log.Logger

	// Audio is nil when sound is disabled
	Audio *AudioResource
}

// AudioPlayer defines the minimal audio interface used by systems
type AudioPlayer interface {
	Play(core.SoundType) bool
	ToggleMute() bool
	IsMuted() bool
	IsRunning() bool
}

// AudioResource wraps the audio player interface
type AudioResource struct {
	Player AudioPlayer
}

// NewResource returns resources with a fresh registry and a discarding logger
func NewResource(logger *log.Logger) *Resource {
	if logger == nil {
		logger = log.New(discard{})
	}
	return &Resource{
		Status: status.NewRegistry(),
		Logger: logger,
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
