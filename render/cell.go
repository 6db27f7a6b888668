package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/perimeter/core"
)

// Cell is one composited terminal cell
type Cell struct {
	Rune  rune
	Fg    core.RGB
	Bg    core.RGB
	Attrs tcell.AttrMask
}

// emptyCell is the cleared state
var emptyCell = Cell{Rune: ' ', Fg: RgbText, Bg: RgbBackground}
