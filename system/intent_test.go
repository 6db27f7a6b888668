package system

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/perimeter/console"
	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/economy"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/event"
	"github.com/lixenwraith/perimeter/parameter"
)

func TestPulseCooldownAndImpulse(t *testing.T) {
	h := newHarness(t, engine.DefaultOptions())

	var err error
	h.locked(func(ctx *engine.SimulationContext) {
		err = h.intent.Pulse()
		if ctx.Train.Impulse != parameter.PulseImpulse {
			t.Errorf("Expected impulse %v, got %v", parameter.PulseImpulse, ctx.Train.Impulse)
		}
		if ctx.Ledger.Scrap != parameter.PulseScrap {
			t.Errorf("Expected scrap %v, got %v", parameter.PulseScrap, ctx.Ledger.Scrap)
		}
	})
	if err != nil {
		t.Fatalf("Expected first pulse accepted, got %v", err)
	}

	h.locked(func(ctx *engine.SimulationContext) { err = h.intent.Pulse() })
	if !errors.Is(err, ErrPulseCooldown) {
		t.Errorf("Expected ErrPulseCooldown, got %v", err)
	}

	h.step(1, frame)
	h.locked(func(ctx *engine.SimulationContext) {
		want := parameter.PulseImpulse * (1 - parameter.ImpulseDecay)
		if math.Abs(ctx.Train.Impulse-want) > 1e-9 {
			t.Errorf("Expected impulse %v after one frame, got %v", want, ctx.Train.Impulse)
		}
	})

	h.step(10, frame)
	h.locked(func(ctx *engine.SimulationContext) { err = h.intent.Pulse() })
	if err != nil {
		t.Errorf("Expected pulse accepted after cooldown, got %v", err)
	}
}

func TestPulseDeniedWhileDerailed(t *testing.T) {
	h := newHarness(t, engine.DefaultOptions())
	h.locked(func(ctx *engine.SimulationContext) {
		ctx.Hardware.Derailed = true
	})

	h.world.PushEvent(event.EventPulseRequest, nil)
	h.step(2, frame)

	h.locked(func(ctx *engine.SimulationContext) {
		if ctx.Train.Impulse != 0 {
			t.Errorf("Expected no impulse while derailed, got %v", ctx.Train.Impulse)
		}
		if ctx.Ledger.Scrap != 0 {
			t.Errorf("Expected no scrap while derailed, got %v", ctx.Ledger.Scrap)
		}
	})
	if !h.hasEntry(console.KeyPulseDerailed) {
		t.Error("Expected derailed pulse denial in console")
	}
}

func TestPurchaseResidentialThroughIntent(t *testing.T) {
	h := newHarness(t, engine.DefaultOptions())
	h.locked(func(ctx *engine.SimulationContext) {
		ctx.Ledger.Scrap = 20
	})

	h.world.PushEvent(event.EventPurchaseRequest, &event.PurchaseRequestPayload{Item: core.ItemResidential})
	h.step(2, frame)

	h.locked(func(ctx *engine.SimulationContext) {
		if len(ctx.Train.Cars) != 2 || ctx.Train.Cars[1] != core.CarResidential {
			t.Errorf("Expected [locomotive residential], got %v", ctx.Train.Cars)
		}
		if ctx.Ledger.Population != parameter.PopulationPerResidential {
			t.Errorf("Expected population %d, got %d", parameter.PopulationPerResidential, ctx.Ledger.Population)
		}
		if ctx.EnergyCap() != parameter.BaseEnergyCap {
			t.Errorf("Expected cap unchanged at %v, got %v", parameter.BaseEnergyCap, ctx.EnergyCap())
		}
		if ctx.Ledger.Scrap < 0 || ctx.Ledger.Scrap > 0.01 {
			t.Errorf("Expected scrap spent down to accrual only, got %v", ctx.Ledger.Scrap)
		}
	})
	if !h.hasEntry(console.KeyPurchase) {
		t.Error("Expected purchase entry in console")
	}
}

func TestPurchaseDeniedKeepsState(t *testing.T) {
	h := newHarness(t, engine.DefaultOptions())

	var err error
	h.locked(func(ctx *engine.SimulationContext) {
		err = h.intent.Purchase(core.ItemAI)
	})
	if !errors.Is(err, economy.ErrInsufficientScrap) {
		t.Fatalf("Expected ErrInsufficientScrap, got %v", err)
	}

	h.step(1, frame)
	h.locked(func(ctx *engine.SimulationContext) {
		if len(ctx.Train.Cars) != 1 {
			t.Errorf("Expected composition unchanged, got %v", ctx.Train.Cars)
		}
	})
	if !h.hasEntry(console.KeyDeniedScrap) {
		t.Error("Expected scrap denial in console")
	}
}

func TestHubPurchasePlacedOnLoop(t *testing.T) {
	h := newHarness(t, engine.DefaultOptions())

	h.locked(func(ctx *engine.SimulationContext) {
		ctx.Ledger.Scrap = 500
		if err := h.intent.Purchase(core.ItemTerminal); err != nil {
			t.Fatalf("Purchase failed: %v", err)
		}
		if err := h.intent.Purchase(core.ItemFusionHub); err != nil {
			t.Fatalf("Purchase failed: %v", err)
		}

		if len(ctx.Hubs) != 3 {
			t.Fatalf("Expected command hub plus 2, got %d", len(ctx.Hubs))
		}
		for _, hub := range ctx.Hubs[1:] {
			if hub.LoopDistance < 0 || hub.LoopDistance >= ctx.Loop.Length() {
				t.Errorf("Hub %s distance %v outside loop", hub.Kind, hub.LoopDistance)
			}
			p := ctx.Loop.PositionAt(hub.LoopDistance)
			if hub.X != p.X || hub.Y != p.Y {
				t.Errorf("Hub %s not placed on loop", hub.Kind)
			}
		}
		if ctx.Hubs[1].Waiting != parameter.TerminalInitialWaiting {
			t.Errorf("Expected %d waiting at new terminal, got %d", parameter.TerminalInitialWaiting, ctx.Hubs[1].Waiting)
		}
	})
}

func TestSellLocomotiveDenied(t *testing.T) {
	h := newHarness(t, engine.DefaultOptions())
	var err error
	h.locked(func(ctx *engine.SimulationContext) {
		err = h.intent.Sell(0)
	})
	if !errors.Is(err, economy.ErrNotSellable) {
		t.Errorf("Expected ErrNotSellable, got %v", err)
	}
}

func TestSellStandardClampsEnergy(t *testing.T) {
	h := newHarness(t, engine.DefaultOptions())
	h.locked(func(ctx *engine.SimulationContext) {
		ctx.Train.Cars = []core.CarKind{core.CarLocomotive, core.CarStandard}
		ctx.Ledger.Energy = 115
		if err := h.intent.Sell(1); err != nil {
			t.Fatalf("Sell failed: %v", err)
		}
		if ctx.Ledger.Energy != parameter.BaseEnergyCap {
			t.Errorf("Expected energy clamped to %v, got %v", parameter.BaseEnergyCap, ctx.Ledger.Energy)
		}
		if len(ctx.Train.Cars) != 1 {
			t.Errorf("Expected only the locomotive left, got %v", ctx.Train.Cars)
		}
	})
}

func TestControlIntents(t *testing.T) {
	h := newHarness(t, engine.DefaultOptions())

	h.world.PushEvent(event.EventSpeedRequest, &event.SpeedRequestPayload{Speed: 999})
	h.world.PushEvent(event.EventGeometryRequest, &event.GeometryRequestPayload{Margin: 20, CornerRadius: -5})
	h.world.PushEvent(event.EventAnchorRequest, &event.AnchorPayload{X: -100, Y: 5000})
	h.step(1, frame)

	h.locked(func(ctx *engine.SimulationContext) {
		if ctx.Train.Speed != parameter.MaxSpeed {
			t.Errorf("Expected speed clamped to %v, got %v", parameter.MaxSpeed, ctx.Train.Speed)
		}
		if ctx.Margin != 20 || ctx.CornerRadius != 0 {
			t.Errorf("Expected geometry (20, 0), got (%v, %v)", ctx.Margin, ctx.CornerRadius)
		}
		if ctx.Anchor.X != parameter.AnchorInset || ctx.Anchor.Y != ctx.Viewport.Height-parameter.AnchorInset {
			t.Errorf("Expected anchor clamped into viewport, got %+v", ctx.Anchor)
		}
		if cmd := ctx.CommandHub(); cmd.X != ctx.Anchor.X || cmd.Y != ctx.Anchor.Y {
			t.Errorf("Expected command hub on anchor, got (%v, %v)", cmd.X, cmd.Y)
		}
	})
	if !h.hasEntry(console.KeySpeed) || !h.hasEntry(console.KeyGeometry) {
		t.Error("Expected speed and geometry entries in console")
	}
}

func TestGodModeGate(t *testing.T) {
	h := newHarness(t, engine.DefaultOptions())
	var err error
	h.locked(func(ctx *engine.SimulationContext) { err = h.intent.GrantGodMode() })
	if !errors.Is(err, ErrGodModeDisabled) {
		t.Errorf("Expected ErrGodModeDisabled, got %v", err)
	}

	opts := engine.DefaultOptions()
	opts.GodMode = true
	h = newHarness(t, opts)
	h.locked(func(ctx *engine.SimulationContext) {
		if err := h.intent.GrantGodMode(); err != nil {
			t.Fatalf("GrantGodMode failed: %v", err)
		}
		if ctx.Ledger.Scrap != parameter.GodModeScrap {
			t.Errorf("Expected scrap %v, got %v", parameter.GodModeScrap, ctx.Ledger.Scrap)
		}
	})
}

func TestLiveryDropsSkin(t *testing.T) {
	h := newHarness(t, engine.DefaultOptions())
	h.world.PushEvent(event.EventSkinApplied, &event.SkinPayload{Theme: "steampunk", Ref: "https://img/1.png"})
	h.step(1, frame)

	h.locked(func(ctx *engine.SimulationContext) {
		if ctx.Frame.Skin != "https://img/1.png" {
			t.Errorf("Expected skin in frame, got %q", ctx.Frame.Skin)
		}
		if err := h.intent.SetLivery(3); err != nil {
			t.Fatalf("SetLivery failed: %v", err)
		}
		if ctx.Cosmetics.SkinRef != "" || ctx.Cosmetics.Livery != core.Liveries[3] {
			t.Errorf("Expected livery %v without skin, got %+v", core.Liveries[3], ctx.Cosmetics)
		}
		if err := h.intent.SetLivery(len(core.Liveries)); !errors.Is(err, ErrLiveryOutOfRange) {
			t.Errorf("Expected ErrLiveryOutOfRange, got %v", err)
		}
	})
}
