package engine

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/perimeter/core"
)

// CarTransform places one car
type CarTransform struct {
	Kind    core.CarKind
	X, Y    float64
	Heading float64
}

// AgentTransform places the drone
type AgentTransform struct {
	X, Y    float64
	Heading float64
	Status  core.AgentStatus
}

// ParticleTransform is one pool slot; inactive slots carry no position
type ParticleTransform struct {
	Active  bool
	X, Y    float64
	Heading float64
	Scale   float64
	Opacity float64
	Color   core.RGB
	Shape   core.ParticleShape
}

// HubTransform places one hub
type HubTransform struct {
	ID      uuid.UUID
	Kind    core.HubKind
	X, Y    float64
	Waiting int
}

// Frame is the presentation output written once per frame
type Frame struct {
	Number    int64
	Cars      []CarTransform
	Agent     AgentTransform
	Particles []ParticleTransform
	Hubs      []HubTransform
	Livery    core.RGB
	Skin      string
	Stopped   bool
	Derailed  bool
	Storm     bool
}

// Clone deep-copies the frame for use outside the world lock
func (f *Frame) Clone() Frame {
	c := *f
	c.Cars = append([]CarTransform(nil), f.Cars...)
	c.Particles = append([]ParticleTransform(nil), f.Particles...)
	c.Hubs = append([]HubTransform(nil), f.Hubs...)
	return c
}
