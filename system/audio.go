package system

import (
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/event"
	"github.com/lixenwraith/perimeter/parameter"
)

// AudioSystem forwards sound requests to the audio player
type AudioSystem struct {
	world *engine.World
}

func NewAudioSystem(world *engine.World) engine.System {
	return &AudioSystem{
		world: world,
	}
}

// Name returns system's name
func (s *AudioSystem) Name() string {
	return "audio"
}

func (s *AudioSystem) Priority() int {
	return parameter.PriorityAudio
}

func (s *AudioSystem) Update() {
	// No tick-based logic; all cues via events
}

func (s *AudioSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSoundRequest,
	}
}

func (s *AudioSystem) HandleEvent(ev event.GameEvent) {
	audio := s.world.Resources.Audio
	if audio == nil || audio.Player == nil {
		return
	}
	if payload, ok := ev.Payload.(*event.SoundRequestPayload); ok {
		audio.Player.Play(payload.SoundType)
	}
}
