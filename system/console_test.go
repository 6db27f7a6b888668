package system

import (
	"fmt"
	"testing"

	"github.com/lixenwraith/perimeter/console"
	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/economy"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/event"
)

func TestDenialKey(t *testing.T) {
	tests := []struct {
		err  error
		want console.Key
	}{
		{fmt.Errorf("ai costs 60, have 0: %w", economy.ErrInsufficientScrap), console.KeyDeniedScrap},
		{economy.ErrWagonLimit, console.KeyDeniedWagons},
		{economy.ErrMaxLevel, console.KeyDeniedLevel},
		{economy.ErrNotSellable, console.KeyDeniedSell},
		{economy.ErrUnknownItem, console.KeyDeniedUnknown},
		{ErrDerailed, console.KeyPulseDerailed},
		{ErrPulseCooldown, console.KeyPulseCooldown},
		{ErrRebootNotNeeded, console.KeyRebootNotNeeded},
		{ErrRebootInFlight, console.KeyRebootInFlight},
	}
	for _, tt := range tests {
		if got, _ := DenialKey(tt.err, core.ItemAI); got != tt.want {
			t.Errorf("DenialKey(%v): expected %s, got %s", tt.err, tt.want, got)
		}
	}
}

func TestConsoleLanguageSwitch(t *testing.T) {
	h := newHarness(t, engine.DefaultOptions())

	h.world.PushEvent(event.EventLanguageRequest, &event.LanguagePayload{Lang: "cs"})
	h.step(1, frame)

	if h.log.Lang() != console.LangCzech {
		t.Fatalf("Expected Czech console, got %s", h.log.Lang())
	}
	entries := h.log.Recent(1)
	if len(entries) != 1 || entries[0].Key != console.KeyLanguage || entries[0].Lang != console.LangCzech {
		t.Errorf("Expected Czech language entry, got %+v", entries)
	}

	h.world.PushEvent(event.EventLanguageRequest, &event.LanguagePayload{Lang: "xx"})
	h.step(1, frame)
	if h.log.Lang() != console.LangCzech {
		t.Errorf("Expected unsupported language ignored, got %s", h.log.Lang())
	}
}

func TestConsoleRebootDenial(t *testing.T) {
	h := newHarness(t, engine.DefaultOptions())
	h.world.PushEvent(event.EventRebootRequest, nil)
	h.step(2, frame)

	entries := h.log.Recent(1)
	if len(entries) != 1 || entries[0].Key != console.KeyRebootNotNeeded || entries[0].Level != core.LevelWarning {
		t.Errorf("Expected reboot-not-needed warning, got %+v", entries)
	}
}
