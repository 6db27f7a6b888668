package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/perimeter/console"
	"github.com/lixenwraith/perimeter/parameter"
)

const hudBarWidth = 20

// HUDRenderer draws economy, hardware and the console inside the loop
type HUDRenderer struct{}

func NewHUDRenderer() *HUDRenderer {
	return &HUDRenderer{}
}

// origin returns the top-left HUD cell, just inside the track
func hudOrigin(ctx RenderContext) (int, int) {
	s := &ctx.Snapshot
	x, y, _ := ctx.ToCell(s.Margin+s.CornerRadius/2+2*ctx.CellWidth, s.Margin+2*ctx.CellHeight)
	return max(x, 1), max(y, 1)
}

func bar(value, limit float64, width int) string {
	filled := 0
	if limit > 0 {
		filled = int(value / limit * float64(width))
	}
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (r *HUDRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	s := &ctx.Snapshot
	x, y := hudOrigin(ctx)

	col := buf.SetString(x, y, bar(s.Energy, s.EnergyCap, hudBarWidth), RgbEnergy)
	buf.SetString(col+1, y, fmt.Sprintf("%.0f/%.0f", s.Energy, s.EnergyCap), RgbText)
	y++

	col = buf.SetString(x, y, fmt.Sprintf("scrap %.1f", s.Scrap), RgbScrap)
	buf.SetString(col+2, y, fmt.Sprintf("pax %d/%d  pop %d  laps %.1f", s.Passengers, s.Capacity, s.Population, s.Laps), RgbText)
	y++

	buf.SetString(x, y, fmt.Sprintf("speed %.0f (%.1f)  eff %d  cpu %d", s.Speed, s.EffectiveSpeed, s.Efficiency, s.CPU), RgbText)
	y++

	loadColor := RgbText
	if s.StormTicks > 0 {
		loadColor = RgbWarning
	}
	col = buf.SetString(x, y, fmt.Sprintf("load %3.0f%%  %4.1f°C", s.Load, s.Temperature), loadColor)
	if s.StormTicks > 0 {
		buf.SetString(col+2, y, bar(s.StormTicks, parameter.StormDurationCap, hudBarWidth/2), RgbWarning)
	}
	y++

	buf.SetString(x, y, fmt.Sprintf("drone %s/%s", s.Agent.Status, s.Agent.Task), RgbDrone)
	y += 2

	for _, e := range ctx.Console {
		color, ok := levelColors[e.Level]
		if !ok {
			color = RgbText
		}
		buf.SetString(x, y, e.String(), color)
		y++
	}
}

// OverlayRenderer centers pause and derail banners
type OverlayRenderer struct{}

func NewOverlayRenderer() *OverlayRenderer {
	return &OverlayRenderer{}
}

func (r *OverlayRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	w, h := buf.Bounds()
	row := h / 2
	if ctx.IsPaused {
		r.banner(buf, w, row, console.Translate(ctx.Lang, console.KeyPaused))
		row++
	}
	if ctx.Frame.Derailed {
		r.banner(buf, w, row, console.Translate(ctx.Lang, console.KeyRebootHint))
	}
}

func (r *OverlayRenderer) banner(buf *RenderBuffer, w, y int, text string) {
	x := max((w-len([]rune(text)))/2, 0)
	for i, ch := range []rune(text) {
		buf.SetWithAttrs(x+i, y, ch, RgbWarning, tcell.AttrBold|tcell.AttrReverse)
	}
}
