package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/perimeter/console"
	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/event"
	"github.com/lixenwraith/perimeter/parameter"
)

// skinRequester is the part of the skin service the keyboard drives
type skinRequester interface {
	Request(theme string) error
	NextTheme() string
}

// inputHandler translates key presses into intents
// Intents are queued on the world and applied at the start of the next frame
type inputHandler struct {
	world  *engine.World
	clock  *engine.PausableClock
	log    *console.Log
	skin   skinRequester
	livery int
}

var purchaseKeys = map[rune]core.Item{
	'1': core.ItemStandard,
	'2': core.ItemMining,
	'3': core.ItemResidential,
	'4': core.ItemAI,
	'm': core.ItemMicroHub,
	'f': core.ItemFusionHub,
	't': core.ItemTerminal,
	'e': core.ItemEfficiency,
	'c': core.ItemCPU,
}

func newInputHandler(world *engine.World, clock *engine.PausableClock, log *console.Log, skin skinRequester) *inputHandler {
	return &inputHandler{
		world: world,
		clock: clock,
		log:   log,
		skin:  skin,
	}
}

// HandleKey applies one key press, returns false when the user quits
func (h *inputHandler) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return false
	case tcell.KeyUp:
		h.moveAnchor(0, -parameter.AnchorStepPx)
		return true
	case tcell.KeyDown:
		h.moveAnchor(0, parameter.AnchorStepPx)
		return true
	case tcell.KeyLeft:
		h.moveAnchor(-parameter.AnchorStepPx, 0)
		return true
	case tcell.KeyRight:
		h.moveAnchor(parameter.AnchorStepPx, 0)
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	r := ev.Rune()
	if item, ok := purchaseKeys[r]; ok {
		h.world.PushEvent(event.EventPurchaseRequest, &event.PurchaseRequestPayload{Item: item})
		return true
	}

	switch r {
	case 'q':
		return false
	case ' ':
		h.world.PushEvent(event.EventPulseRequest, nil)
	case 'x':
		snap := h.world.Snapshot()
		h.world.PushEvent(event.EventSellRequest, &event.SellRequestPayload{Index: len(snap.Cars) - 1})
	case 'r':
		h.world.PushEvent(event.EventRebootRequest, nil)
	case '+', '=':
		h.adjustSpeed(parameter.SpeedStep)
	case '-', '_':
		h.adjustSpeed(-parameter.SpeedStep)
	case ']':
		h.adjustGeometry(parameter.GeometryStepPx, 0)
	case '[':
		h.adjustGeometry(-parameter.GeometryStepPx, 0)
	case '>', '.':
		h.adjustGeometry(0, parameter.GeometryStepPx)
	case '<', ',':
		h.adjustGeometry(0, -parameter.GeometryStepPx)
	case 'l':
		next := console.LangEnglish
		if h.log != nil {
			next = h.log.Lang().Next()
		}
		h.world.PushEvent(event.EventLanguageRequest, &event.LanguagePayload{Lang: string(next)})
	case 'g':
		h.world.PushEvent(event.EventGodModeRequest, nil)
	case 'v':
		h.livery = (h.livery + 1) % len(core.Liveries)
		h.world.PushEvent(event.EventLiveryRequest, &event.LiveryPayload{Index: h.livery})
	case 'k':
		if h.skin != nil {
			_ = h.skin.Request(h.skin.NextTheme())
		}
	case 'u':
		if res := h.world.Resources.Audio; res != nil && res.Player != nil {
			res.Player.ToggleMute()
		}
	case 'p':
		if h.clock != nil {
			h.clock.Toggle()
		}
	}
	return true
}

func (h *inputHandler) adjustSpeed(delta float64) {
	snap := h.world.Snapshot()
	h.world.PushEvent(event.EventSpeedRequest, &event.SpeedRequestPayload{Speed: snap.Speed + delta})
}

func (h *inputHandler) adjustGeometry(dMargin, dRadius float64) {
	snap := h.world.Snapshot()
	h.world.PushEvent(event.EventGeometryRequest, &event.GeometryRequestPayload{
		Margin:       snap.Margin + dMargin,
		CornerRadius: snap.CornerRadius + dRadius,
	})
}

func (h *inputHandler) moveAnchor(dx, dy float64) {
	snap := h.world.Snapshot()
	for _, hub := range snap.Hubs {
		if hub.Kind == core.HubCommand {
			h.world.PushEvent(event.EventAnchorRequest, &event.AnchorPayload{X: hub.X + dx, Y: hub.Y + dy})
			return
		}
	}
}
