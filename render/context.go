package render

import (
	"time"

	"github.com/lixenwraith/perimeter/console"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/parameter"
)

// RenderContext is everything a renderer reads for one frame, copied out of the world lock
type RenderContext struct {
	Time     time.Time
	IsPaused bool

	Frame    engine.Frame
	Snapshot engine.Snapshot
	Console  []console.Entry
	Lang     console.Lang

	// Screen dimensions (terminal cells)
	ScreenWidth  int
	ScreenHeight int

	// Virtual pixels per cell
	CellWidth  float64
	CellHeight float64
}

// NewRenderContext copies frame and snapshot from the world; log may be nil
func NewRenderContext(w *engine.World, log *console.Log, paused bool, screenWidth, screenHeight int) RenderContext {
	rc := RenderContext{
		Time:         w.Now(),
		IsPaused:     paused,
		Frame:        w.CurrentFrame(),
		Snapshot:     w.Snapshot(),
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		CellWidth:    parameter.CellWidthPx,
		CellHeight:   parameter.CellHeightPx,
	}
	if log != nil {
		rc.Console = log.Recent(parameter.HUDConsoleLines)
		rc.Lang = log.Lang()
	}
	return rc
}

// ToCell projects a virtual pixel onto a screen cell
// Returns (cx, cy, visible) where visible=false if outside the screen
func (rc *RenderContext) ToCell(x, y float64) (int, int, bool) {
	cw, ch := rc.CellWidth, rc.CellHeight
	if cw <= 0 {
		cw = parameter.CellWidthPx
	}
	if ch <= 0 {
		ch = parameter.CellHeightPx
	}
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	cx := int(x / cw)
	cy := int(y / ch)
	return cx, cy, cx < rc.ScreenWidth && cy < rc.ScreenHeight
}

// ViewportPx returns the virtual pixel viewport covering a terminal of the given size
func ViewportPx(cols, rows int) (float64, float64) {
	return float64(cols) * parameter.CellWidthPx, float64(rows) * parameter.CellHeightPx
}
