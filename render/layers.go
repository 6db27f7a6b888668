package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/track"
	"github.com/lixenwraith/perimeter/vmath"
)

// headingRune picks a line glyph for a heading in degrees, y pointing down
func headingRune(heading float64) rune {
	h := vmath.NormalizeDeg(heading + 22.5)
	switch int(h / 45) {
	case 0, 4:
		return '─'
	case 2, 6:
		return '│'
	case 1, 5:
		return '╲'
	default:
		return '╱'
	}
}

// TrackRenderer samples the loop at half-cell resolution
type TrackRenderer struct {
	cache    track.Loop
	cacheKey [4]float64
}

func NewTrackRenderer() *TrackRenderer {
	return &TrackRenderer{}
}

func (r *TrackRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	s := &ctx.Snapshot
	key := [4]float64{s.Width, s.Height, s.Margin, s.CornerRadius}
	if key != r.cacheKey {
		r.cache = track.NewLoop(s.Width, s.Height, s.Margin, s.CornerRadius)
		r.cacheKey = key
	}
	length := r.cache.Length()
	if length <= vmath.Epsilon {
		return
	}

	step := ctx.CellWidth / 2
	if step <= 0 {
		step = 1
	}
	for d := 0.0; d < length; d += step {
		p := r.cache.PositionAt(d)
		if cx, cy, ok := ctx.ToCell(p.X, p.Y); ok {
			buf.Set(cx, cy, headingRune(p.Heading), RgbTrack)
		}
	}
}

// HubRenderer draws hubs with terminal queues
type HubRenderer struct{}

func NewHubRenderer() *HubRenderer {
	return &HubRenderer{}
}

var hubRunes = map[core.HubKind]rune{
	core.HubCommand:  '⌂',
	core.HubMicro:    '◇',
	core.HubFusion:   '◆',
	core.HubTerminal: '▤',
}

func (r *HubRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	for _, h := range ctx.Frame.Hubs {
		cx, cy, ok := ctx.ToCell(h.X, h.Y)
		if !ok {
			continue
		}
		buf.SetWithAttrs(cx, cy, hubRunes[h.Kind], hubColors[h.Kind], tcell.AttrBold)
		if h.Kind == core.HubTerminal && h.Waiting > 0 {
			buf.SetString(cx+1, cy, fmt.Sprintf("%d", h.Waiting), RgbDimText)
		}
	}
}

// ParticleRenderer draws active pool slots faded by opacity
type ParticleRenderer struct{}

func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

func (r *ParticleRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	for _, p := range ctx.Frame.Particles {
		if !p.Active || p.Opacity <= 0 {
			continue
		}
		cx, cy, ok := ctx.ToCell(p.X, p.Y)
		if !ok {
			continue
		}
		glyph := '*'
		if p.Shape == core.ShapePuff {
			switch {
			case p.Opacity > 0.66:
				glyph = '▓'
			case p.Opacity > 0.33:
				glyph = '▒'
			default:
				glyph = '░'
			}
		}
		buf.BlendFg(cx, cy, glyph, p.Color, p.Opacity)
	}
}

// TrainRenderer draws cars back to front so the locomotive stays on top
type TrainRenderer struct{}

func NewTrainRenderer() *TrainRenderer {
	return &TrainRenderer{}
}

var carRunes = map[core.CarKind]rune{
	core.CarLocomotive:  '■',
	core.CarStandard:    'o',
	core.CarMining:      'm',
	core.CarResidential: 'r',
	core.CarAI:          'A',
}

func (r *TrainRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	f := &ctx.Frame
	for i := len(f.Cars) - 1; i >= 0; i-- {
		c := f.Cars[i]
		cx, cy, ok := ctx.ToCell(c.X, c.Y)
		if !ok {
			continue
		}
		color := carColors[c.Kind]
		attrs := tcell.AttrNone
		if c.Kind == core.CarLocomotive {
			color = f.Livery
			attrs = tcell.AttrBold
			if f.Skin != "" {
				color = RgbSkin
			}
		}
		if f.Derailed {
			color = RgbWarning
			attrs |= tcell.AttrBlink
		}
		buf.SetWithAttrs(cx, cy, carRunes[c.Kind], color, attrs)
	}
}

// AgentRenderer draws the service drone
type AgentRenderer struct{}

func NewAgentRenderer() *AgentRenderer {
	return &AgentRenderer{}
}

func (r *AgentRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	a := ctx.Frame.Agent
	cx, cy, ok := ctx.ToCell(a.X, a.Y)
	if !ok {
		return
	}
	color := RgbDrone
	if a.Status == core.AgentIdle {
		color = RgbDimText
	}
	buf.SetWithAttrs(cx, cy, '✦', color, tcell.AttrBold)
}
