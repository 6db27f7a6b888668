package system

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/event"
	"github.com/lixenwraith/perimeter/parameter"
)

// IntentSystem applies economy and control intents to the simulation context
// Every intent counts as user activity for idle cruise
type IntentSystem struct {
	world *engine.World
	rng   *rand.Rand

	lastPulse time.Time
}

// NewIntentSystem creates the intent handler; rng places new loop hubs, nil seeds from entropy
func NewIntentSystem(world *engine.World, rng *rand.Rand) *IntentSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &IntentSystem{
		world: world,
		rng:   rng,
	}
}

// Name returns system's name
func (s *IntentSystem) Name() string {
	return "intent"
}

func (s *IntentSystem) Priority() int {
	return parameter.PriorityIntent
}

func (s *IntentSystem) Update() {
	// No tick-based logic; all mutations via events
}

func (s *IntentSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventPulseRequest,
		event.EventPurchaseRequest,
		event.EventSellRequest,
		event.EventSpeedRequest,
		event.EventGeometryRequest,
		event.EventViewportResize,
		event.EventAnchorRequest,
		event.EventGodModeRequest,
		event.EventLiveryRequest,
		event.EventSkinApplied,
	}
}

func (s *IntentSystem) HandleEvent(ev event.GameEvent) {
	ctx := s.world.Context()
	if ev.Type != event.EventViewportResize && ev.Type != event.EventSkinApplied {
		ctx.NoteActivity(ctx.Now)
	}

	switch ev.Type {
	case event.EventPulseRequest:
		_ = s.Pulse()

	case event.EventPurchaseRequest:
		if payload, ok := ev.Payload.(*event.PurchaseRequestPayload); ok {
			_ = s.Purchase(payload.Item)
		}

	case event.EventSellRequest:
		if payload, ok := ev.Payload.(*event.SellRequestPayload); ok {
			_ = s.Sell(payload.Index)
		}

	case event.EventSpeedRequest:
		if payload, ok := ev.Payload.(*event.SpeedRequestPayload); ok {
			ctx.SetSpeed(payload.Speed)
		}

	case event.EventGeometryRequest:
		if payload, ok := ev.Payload.(*event.GeometryRequestPayload); ok {
			ctx.SetGeometry(payload.Margin, payload.CornerRadius)
		}

	case event.EventViewportResize:
		if payload, ok := ev.Payload.(*event.ViewportPayload); ok {
			ctx.SetViewport(payload.Width, payload.Height)
		}

	case event.EventAnchorRequest:
		if payload, ok := ev.Payload.(*event.AnchorPayload); ok {
			a := ctx.MoveAnchor(payload.X, payload.Y)
			s.world.PushEvent(event.EventAnchorMoved, &event.AnchorPayload{X: a.X, Y: a.Y})
		}

	case event.EventGodModeRequest:
		_ = s.GrantGodMode()

	case event.EventLiveryRequest:
		if payload, ok := ev.Payload.(*event.LiveryPayload); ok {
			_ = s.SetLivery(payload.Index)
		}

	case event.EventSkinApplied:
		if payload, ok := ev.Payload.(*event.SkinPayload); ok {
			ctx.Cosmetics.SkinTheme = payload.Theme
			ctx.Cosmetics.SkinRef = payload.Ref
		}
	}
}

// Pulse grants energy, scrap and a forward impulse
// Denied while derailed or within the cooldown of the last accepted pulse
func (s *IntentSystem) Pulse() error {
	ctx := s.world.Context()
	now := ctx.Now

	var err error
	switch {
	case ctx.Hardware.Derailed:
		err = ErrDerailed
	case !s.lastPulse.IsZero() && now.Sub(s.lastPulse) < parameter.PulseCooldown:
		err = ErrPulseCooldown
	}
	if err != nil {
		s.world.PushEvent(event.EventPulseDenied, &event.DenialPayload{Err: err})
		s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{SoundType: core.SoundError})
		return err
	}

	s.lastPulse = now
	energy := ctx.Ledger.AddEnergy(parameter.PulseEnergy, ctx.Train.Cars)
	scrap := ctx.Ledger.EarnScrap(parameter.PulseScrap, ctx.Train.Cars)
	ctx.Train.Impulse += parameter.PulseImpulse

	s.world.PushEvent(event.EventPulseAccepted, &event.PulsePayload{Energy: energy, Scrap: scrap})
	s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{SoundType: core.SoundPulse})
	return nil
}

// Purchase buys an item; hubs are placed at a random loop distance
func (s *IntentSystem) Purchase(item core.Item) error {
	ctx := s.world.Context()

	rcpt, err := ctx.Ledger.Buy(ctx.Catalog, item, ctx.Train.Cars)
	if err != nil {
		s.deny(item, err)
		return err
	}

	ctx.Train.Cars = rcpt.Cars
	if rcpt.IsHub {
		h := ctx.AddHub(rcpt.Hub, s.rng.Float64()*ctx.Loop.Length())
		s.world.PushEvent(event.EventHubBuilt, &event.HubPayload{
			ID:           h.ID,
			Kind:         h.Kind,
			LoopDistance: h.LoopDistance,
		})
	}

	s.world.PushEvent(event.EventPurchaseAccepted, &event.PurchasePayload{Item: item, Cost: rcpt.Cost})
	s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{SoundType: core.SoundCoin})
	return nil
}

// Sell removes the car at index for a partial refund
func (s *IntentSystem) Sell(index int) error {
	ctx := s.world.Context()

	var kind core.CarKind
	if index >= 0 && index < len(ctx.Train.Cars) {
		kind = ctx.Train.Cars[index]
	}

	next, refund, err := ctx.Ledger.Sell(ctx.Catalog, ctx.Train.Cars, index)
	if err != nil {
		s.deny(core.ItemCount, err)
		return err
	}
	ctx.Train.Cars = next

	s.world.PushEvent(event.EventCarSold, &event.SalePayload{Kind: kind, Refund: refund})
	s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{SoundType: core.SoundCoin})
	return nil
}

// GrantGodMode credits the developer scrap grant when enabled
func (s *IntentSystem) GrantGodMode() error {
	ctx := s.world.Context()
	if !ctx.GodMode {
		return ErrGodModeDisabled
	}
	ctx.Ledger.Scrap += parameter.GodModeScrap
	s.world.PushEvent(event.EventGodModeGranted, &event.ScrapPayload{Amount: parameter.GodModeScrap})
	s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{SoundType: core.SoundCoin})
	return nil
}

// SetLivery selects a locomotive palette entry and drops any generated skin
func (s *IntentSystem) SetLivery(index int) error {
	if index < 0 || index >= len(core.Liveries) {
		return ErrLiveryOutOfRange
	}
	ctx := s.world.Context()
	ctx.Cosmetics.Livery = core.Liveries[index]
	ctx.Cosmetics.SkinTheme = ""
	ctx.Cosmetics.SkinRef = ""
	return nil
}

func (s *IntentSystem) deny(item core.Item, err error) {
	s.world.PushEvent(event.EventPurchaseDenied, &event.DenialPayload{Item: item, Err: err})
	s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{SoundType: core.SoundError})
}
