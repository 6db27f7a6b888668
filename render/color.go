package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/perimeter/core"
)

// Palette
var (
	RgbBackground = core.RGB{R: 0x11, G: 0x18, B: 0x27}
	RgbTrack      = core.RGB{R: 0x37, G: 0x41, B: 0x51}
	RgbText       = core.RGB{R: 0xd1, G: 0xd5, B: 0xdb}
	RgbDimText    = core.RGB{R: 0x6b, G: 0x72, B: 0x80}
	RgbEnergy     = core.RGB{R: 0x22, G: 0xc5, B: 0x5e}
	RgbScrap      = core.RGB{R: 0xf5, G: 0x9e, B: 0x0b}
	RgbWarning    = core.RGB{R: 0xef, G: 0x44, B: 0x44}
	RgbSuccess    = core.RGB{R: 0x10, G: 0xb9, B: 0x81}
	RgbInput      = core.RGB{R: 0x60, G: 0xa5, B: 0xfa}
	RgbDrone      = core.RGB{R: 0xa7, G: 0x8b, B: 0xfa}
	RgbSkin       = core.RGB{R: 0xe8, G: 0x79, B: 0xf9}
)

// carColors tints non-locomotive cars by kind
var carColors = map[core.CarKind]core.RGB{
	core.CarStandard:    {R: 0x93, G: 0xc5, B: 0xfd},
	core.CarMining:      {R: 0xfb, G: 0xbf, B: 0x24},
	core.CarResidential: {R: 0x86, G: 0xef, B: 0xac},
	core.CarAI:          {R: 0xf4, G: 0x72, B: 0xb6},
}

// hubColors tints hubs by kind
var hubColors = map[core.HubKind]core.RGB{
	core.HubCommand:  {R: 0x60, G: 0xa5, B: 0xfa},
	core.HubMicro:    {R: 0x34, G: 0xd3, B: 0x99},
	core.HubFusion:   {R: 0xfa, G: 0xcc, B: 0x15},
	core.HubTerminal: {R: 0xe5, G: 0xe7, B: 0xeb},
}

// levelColors tints console entries by level
var levelColors = map[core.Level]core.RGB{
	core.LevelInfo:    RgbText,
	core.LevelSuccess: RgbSuccess,
	core.LevelWarning: RgbWarning,
	core.LevelInput:   RgbInput,
}

// tcellColor converts to a truecolor tcell color
func tcellColor(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Style builds a tcell style from a cell
func Style(c Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcellColor(c.Fg)).
		Background(tcellColor(c.Bg)).
		Attributes(c.Attrs)
}
