package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/perimeter/console"
	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/engine"
)

const (
	testCols = 100
	testRows = 40
)

func testContext() RenderContext {
	w, h := ViewportPx(testCols, testRows)
	return RenderContext{
		Time: time.Unix(1_700_000_000, 0),
		Snapshot: engine.Snapshot{
			Width: w, Height: h, Margin: 16, CornerRadius: 32,
			Energy: 50, EnergyCap: 100,
		},
		ScreenWidth:  testCols,
		ScreenHeight: testRows,
		CellWidth:    8,
		CellHeight:   16,
	}
}

func rowText(buf *RenderBuffer, y int) string {
	w, _ := buf.Bounds()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		if r := buf.Get(x, y).Rune; r != 0 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func TestToCell(t *testing.T) {
	ctx := testContext()
	tests := []struct {
		x, y   float64
		cx, cy int
		ok     bool
	}{
		{0, 0, 0, 0, true},
		{15.9, 31.9, 1, 1, true},
		{799, 639, 99, 39, true},
		{800, 0, 100, 0, false},
		{-1, 10, 0, 0, false},
	}
	for _, tt := range tests {
		cx, cy, ok := ctx.ToCell(tt.x, tt.y)
		if ok != tt.ok || (ok && (cx != tt.cx || cy != tt.cy)) {
			t.Errorf("ToCell(%v,%v): expected (%d,%d,%v), got (%d,%d,%v)", tt.x, tt.y, tt.cx, tt.cy, tt.ok, cx, cy, ok)
		}
	}
}

func TestHeadingRune(t *testing.T) {
	tests := map[float64]rune{0: '─', 90: '│', 180: '─', 270: '│', 45: '╲', 135: '╱', 225: '╲', 315: '╱', 359: '─'}
	for h, want := range tests {
		if got := headingRune(h); got != want {
			t.Errorf("headingRune(%v): expected %q, got %q", h, want, got)
		}
	}
}

func TestTrackDrawsLoop(t *testing.T) {
	ctx := testContext()
	buf := NewRenderBuffer(testCols, testRows)
	NewTrackRenderer().Render(ctx, buf)

	// Top strip runs along y = margin
	if got := buf.Get(50, 1).Rune; got != '─' {
		t.Errorf("Expected top strip at (50,1), got %q", got)
	}
	// Left strip runs along x = margin
	if got := buf.Get(2, 20).Rune; got != '│' {
		t.Errorf("Expected left strip at (2,20), got %q", got)
	}
	// Interior stays empty
	if got := buf.Get(50, 20).Rune; got != ' ' {
		t.Errorf("Expected empty interior, got %q", got)
	}
}

func TestTrackSkipsDegenerateLoop(t *testing.T) {
	ctx := testContext()
	ctx.Snapshot.Width, ctx.Snapshot.Height = 10, 10
	ctx.Snapshot.Margin, ctx.Snapshot.CornerRadius = 20, 0
	buf := NewRenderBuffer(testCols, testRows)
	NewTrackRenderer().Render(ctx, buf)
	for y := 0; y < testRows; y++ {
		if strings.TrimSpace(rowText(buf, y)) != "" {
			t.Fatalf("Expected nothing drawn, row %d is %q", y, rowText(buf, y))
		}
	}
}

func TestLocomotiveDrawnOnTop(t *testing.T) {
	ctx := testContext()
	ctx.Frame.Livery = core.Liveries[0]
	ctx.Frame.Cars = []engine.CarTransform{
		{Kind: core.CarLocomotive, X: 400, Y: 16},
		{Kind: core.CarStandard, X: 401, Y: 17},
	}
	buf := NewRenderBuffer(testCols, testRows)
	NewTrainRenderer().Render(ctx, buf)

	c := buf.Get(50, 1)
	if c.Rune != '■' || c.Fg != core.Liveries[0] {
		t.Errorf("Expected livery locomotive, got %q %v", c.Rune, c.Fg)
	}

	ctx.Frame.Derailed = true
	buf.Clear()
	NewTrainRenderer().Render(ctx, buf)
	if c := buf.Get(50, 1); c.Fg != RgbWarning {
		t.Errorf("Expected warning color while derailed, got %v", c.Fg)
	}
}

func TestParticlesFadeAndSkipInactive(t *testing.T) {
	ctx := testContext()
	ctx.Frame.Particles = []engine.ParticleTransform{
		{Active: true, X: 80, Y: 160, Opacity: 0.9, Color: core.RGBWhite, Shape: core.ShapePuff},
		{Active: true, X: 160, Y: 160, Opacity: 0.2, Color: core.RGBWhite, Shape: core.ShapePuff},
		{Active: false, X: 240, Y: 160, Opacity: 1},
		{Active: true, X: 320, Y: 160, Opacity: 1, Color: core.SparkColors[0], Shape: core.ShapeSpark},
	}
	buf := NewRenderBuffer(testCols, testRows)
	NewParticleRenderer().Render(ctx, buf)

	if got := buf.Get(10, 10).Rune; got != '▓' {
		t.Errorf("Expected dense puff, got %q", got)
	}
	faint := buf.Get(20, 10)
	if faint.Rune != '░' {
		t.Errorf("Expected faint puff, got %q", faint.Rune)
	}
	if faint.Fg == core.RGBWhite {
		t.Error("Expected faint puff blended toward background")
	}
	if got := buf.Get(30, 10).Rune; got != ' ' {
		t.Errorf("Expected inactive slot skipped, got %q", got)
	}
	if got := buf.Get(40, 10).Rune; got != '*' {
		t.Errorf("Expected spark, got %q", got)
	}
}

func TestHUDShowsEnergyAndConsole(t *testing.T) {
	ctx := testContext()
	ctx.Console = []console.Entry{
		{Time: ctx.Time, Level: core.LevelWarning, Text: "Not enough scrap for mining"},
	}
	buf := NewRenderBuffer(testCols, testRows)
	NewHUDRenderer().Render(ctx, buf)

	_, y := hudOrigin(ctx)
	if row := rowText(buf, y); !strings.Contains(row, "50/100") || !strings.Contains(row, strings.Repeat("█", 10)) {
		t.Errorf("Expected half energy bar, got %q", row)
	}
	found := false
	for row := y; row < testRows; row++ {
		if strings.Contains(rowText(buf, row), "Not enough scrap") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected console entry on HUD")
	}
}

func TestOverlayLocalized(t *testing.T) {
	ctx := testContext()
	ctx.IsPaused = true
	ctx.Lang = console.LangCzech
	buf := NewRenderBuffer(testCols, testRows)
	NewOverlayRenderer().Render(ctx, buf)

	if row := rowText(buf, testRows/2); !strings.Contains(row, "POZASTAVENO") {
		t.Errorf("Expected Czech pause banner, got %q", row)
	}
}

func TestRegisterOrdersByPriority(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(testCols, testRows)

	o := NewRenderOrchestrator(screen)
	o.Register(NewOverlayRenderer(), PriorityOverlay)
	o.Register(NewTrackRenderer(), PriorityTrack)
	o.Register(NewHUDRenderer(), PriorityUI)

	want := []RenderPriority{PriorityTrack, PriorityUI, PriorityOverlay}
	for i, e := range o.renderers {
		if e.priority != want[i] {
			t.Errorf("Position %d: expected priority %d, got %d", i, want[i], e.priority)
		}
	}
}

func TestRenderFrameFlushesToScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(testCols, testRows)

	o := NewDefaultOrchestrator(screen)
	ctx := testContext()
	ctx.Frame.Hubs = []engine.HubTransform{{Kind: core.HubTerminal, X: 400, Y: 320, Waiting: 7}}
	o.RenderFrame(ctx)

	if r, _, _, _ := screen.GetContent(50, 20); r != '▤' {
		t.Errorf("Expected terminal hub on screen, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(51, 20); r != '7' {
		t.Errorf("Expected waiting count, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(50, 1); r != '─' {
		t.Errorf("Expected track on screen, got %q", r)
	}
}

func TestNewRenderContextFromWorld(t *testing.T) {
	epoch := time.Unix(1_700_000_000, 0)
	opts := engine.DefaultOptions()
	opts.Width, opts.Height = ViewportPx(testCols, testRows)
	w := engine.NewWorld(engine.NewSimulationContext(opts, epoch), nil, engine.NewMockTimeProvider(epoch))
	log := console.NewLog(10, console.LangEnglish)
	log.Add(epoch, core.LevelInfo, console.KeyWelcome)

	rc := NewRenderContext(w, log, true, testCols, testRows)
	if !rc.IsPaused || len(rc.Console) != 1 || rc.Lang != console.LangEnglish {
		t.Errorf("Unexpected context %+v", rc)
	}
	if rc.Snapshot.Width != opts.Width {
		t.Errorf("Expected width %v, got %v", opts.Width, rc.Snapshot.Width)
	}
}
