package system

import (
	"errors"

	"github.com/lixenwraith/perimeter/console"
	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/economy"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/event"
	"github.com/lixenwraith/perimeter/parameter"
)

// ConsoleSystem turns outcome events into localized console entries
type ConsoleSystem struct {
	world *engine.World
	log   *console.Log
}

func NewConsoleSystem(world *engine.World, log *console.Log) *ConsoleSystem {
	return &ConsoleSystem{
		world: world,
		log:   log,
	}
}

// Name returns system's name
func (s *ConsoleSystem) Name() string {
	return "console"
}

func (s *ConsoleSystem) Priority() int {
	return parameter.PriorityConsole
}

func (s *ConsoleSystem) Update() {
	// No tick-based logic; all entries via events
}

func (s *ConsoleSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventPulseAccepted,
		event.EventPulseDenied,
		event.EventPurchaseAccepted,
		event.EventPurchaseDenied,
		event.EventCarSold,
		event.EventHubBuilt,
		event.EventGodModeGranted,
		event.EventDerailed,
		event.EventAgentDispatched,
		event.EventRebootDenied,
		event.EventRefuelComplete,
		event.EventRebootComplete,
		event.EventAgentDocked,
		event.EventTerminalArrival,
		event.EventTerminalSettled,
		event.EventSpeedRequest,
		event.EventGeometryRequest,
		event.EventLiveryRequest,
		event.EventLanguageRequest,
		event.EventSkinApplied,
		event.EventSkinFailed,
	}
}

func (s *ConsoleSystem) HandleEvent(ev event.GameEvent) {
	ctx := s.world.Context()
	now := ctx.Now

	switch ev.Type {
	case event.EventPulseAccepted:
		if p, ok := ev.Payload.(*event.PulsePayload); ok {
			s.log.Add(now, core.LevelInput, console.KeyPulse, p.Scrap)
		}

	case event.EventPulseDenied, event.EventPurchaseDenied, event.EventRebootDenied:
		if p, ok := ev.Payload.(*event.DenialPayload); ok {
			key, args := DenialKey(p.Err, p.Item)
			s.log.Add(now, core.LevelWarning, key, args...)
		}

	case event.EventPurchaseAccepted:
		if p, ok := ev.Payload.(*event.PurchasePayload); ok {
			s.log.Add(now, core.LevelSuccess, console.KeyPurchase, p.Item.String(), p.Cost)
		}

	case event.EventCarSold:
		if p, ok := ev.Payload.(*event.SalePayload); ok {
			s.log.Add(now, core.LevelSuccess, console.KeySold, p.Kind.String(), p.Refund)
		}

	case event.EventHubBuilt:
		if p, ok := ev.Payload.(*event.HubPayload); ok {
			s.log.Add(now, core.LevelSuccess, console.KeyHubBuilt, p.Kind.String())
		}

	case event.EventGodModeGranted:
		if p, ok := ev.Payload.(*event.ScrapPayload); ok {
			s.log.Add(now, core.LevelSuccess, console.KeyGodMode, p.Amount)
		}

	case event.EventDerailed:
		s.log.Add(now, core.LevelWarning, console.KeyDerailed)

	case event.EventAgentDispatched:
		if p, ok := ev.Payload.(*event.AgentPayload); ok {
			s.log.Add(now, core.LevelInfo, console.KeyDispatched, p.Task.String())
		}

	case event.EventRefuelComplete:
		if p, ok := ev.Payload.(*event.RefuelPayload); ok {
			s.log.Add(now, core.LevelSuccess, console.KeyRefuel, p.Amount)
		}

	case event.EventRebootComplete:
		s.log.Add(now, core.LevelSuccess, console.KeyRebootComplete)

	case event.EventAgentDocked:
		s.log.Add(now, core.LevelInfo, console.KeyDocked)

	case event.EventTerminalArrival:
		s.log.Add(now, core.LevelInfo, console.KeyTerminalArrival)

	case event.EventTerminalSettled:
		if p, ok := ev.Payload.(*event.SettlementPayload); ok {
			s.log.Add(now, core.LevelSuccess, console.KeyTerminalSettled, p.Payout, p.Boarded)
		}

	case event.EventSpeedRequest:
		s.log.Add(now, core.LevelInput, console.KeySpeed, ctx.Train.Speed)

	case event.EventGeometryRequest:
		s.log.Add(now, core.LevelInput, console.KeyGeometry, ctx.Margin, ctx.CornerRadius)

	case event.EventLiveryRequest:
		s.log.Add(now, core.LevelInput, console.KeyLivery)

	case event.EventLanguageRequest:
		if p, ok := ev.Payload.(*event.LanguagePayload); ok {
			lang, err := console.ParseLang(p.Lang)
			if err != nil {
				s.world.Resources.Logger.Warn("language request rejected", "lang", p.Lang, "err", err)
				return
			}
			s.log.SetLang(lang)
			s.log.Add(now, core.LevelInput, console.KeyLanguage)
		}

	case event.EventSkinApplied:
		if p, ok := ev.Payload.(*event.SkinPayload); ok {
			s.log.Add(now, core.LevelSuccess, console.KeySkinApplied, p.Theme)
		}

	case event.EventSkinFailed:
		if p, ok := ev.Payload.(*event.SkinPayload); ok {
			s.world.Resources.Logger.Warn("skin generation failed", "theme", p.Theme, "err", p.Err)
		}
		s.log.Add(now, core.LevelWarning, console.KeySkinFailed)
	}
}

// DenialKey maps a rejection error to its console message and arguments
func DenialKey(err error, item core.Item) (console.Key, []any) {
	switch {
	case errors.Is(err, economy.ErrInsufficientScrap):
		return console.KeyDeniedScrap, []any{item.String()}
	case errors.Is(err, economy.ErrWagonLimit):
		return console.KeyDeniedWagons, nil
	case errors.Is(err, economy.ErrMaxLevel):
		return console.KeyDeniedLevel, []any{item.String()}
	case errors.Is(err, economy.ErrNotSellable):
		return console.KeyDeniedSell, nil
	case errors.Is(err, ErrDerailed):
		return console.KeyPulseDerailed, nil
	case errors.Is(err, ErrPulseCooldown):
		return console.KeyPulseCooldown, nil
	case errors.Is(err, ErrRebootNotNeeded):
		return console.KeyRebootNotNeeded, nil
	case errors.Is(err, ErrRebootInFlight):
		return console.KeyRebootInFlight, nil
	default:
		return console.KeyDeniedUnknown, nil
	}
}
