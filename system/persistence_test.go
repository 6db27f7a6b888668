package system

import (
	"context"
	"sync"
	"testing"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/event"
	"github.com/lixenwraith/perimeter/store"
)

// memStore records the latest value of every write
type memStore struct {
	mu     sync.Mutex
	anchor store.Anchor
	lang   string
	livery core.RGB
	hubs   []store.HubRecord
	writes int
}

func (m *memStore) SaveAnchor(_ context.Context, a store.Anchor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.anchor = a
	m.writes++
	return nil
}

func (m *memStore) SaveLanguage(_ context.Context, lang string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lang = lang
	m.writes++
	return nil
}

func (m *memStore) SaveLivery(_ context.Context, c core.RGB) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.livery = c
	m.writes++
	return nil
}

func (m *memStore) SaveHubs(_ context.Context, hubs []store.HubRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hubs = hubs
	m.writes++
	return nil
}

func TestPersistenceWritesUserScalars(t *testing.T) {
	h := newHarness(t, engine.DefaultOptions())
	mem := &memStore{}
	ps := NewPersistenceSystem(h.world, mem)
	h.world.AddSystem(ps)
	ps.Start(context.Background())

	h.locked(func(ctx *engine.SimulationContext) {
		ctx.Ledger.Scrap = 200
	})
	h.world.PushEvent(event.EventAnchorRequest, &event.AnchorPayload{X: 300, Y: 200})
	h.world.PushEvent(event.EventLanguageRequest, &event.LanguagePayload{Lang: "CS"})
	h.world.PushEvent(event.EventLiveryRequest, &event.LiveryPayload{Index: 2})
	h.world.PushEvent(event.EventPurchaseRequest, &event.PurchaseRequestPayload{Item: core.ItemMicroHub})
	h.step(2, frame)

	ps.Close()

	mem.mu.Lock()
	defer mem.mu.Unlock()
	if mem.anchor != (store.Anchor{X: 300, Y: 200}) {
		t.Errorf("Expected anchor (300,200), got %+v", mem.anchor)
	}
	if mem.lang != "cs" {
		t.Errorf("Expected language cs, got %q", mem.lang)
	}
	if mem.livery != core.Liveries[2] {
		t.Errorf("Expected livery %v, got %v", core.Liveries[2], mem.livery)
	}
	if len(mem.hubs) != 2 || mem.hubs[0].Kind != core.HubCommand || mem.hubs[1].Kind != core.HubMicro {
		t.Errorf("Expected command and micro hubs, got %+v", mem.hubs)
	}
	if mem.writes != 4 {
		t.Errorf("Expected 4 writes, got %d", mem.writes)
	}
}

func TestPersistenceCloseWithoutStart(t *testing.T) {
	h := newHarness(t, engine.DefaultOptions())
	ps := NewPersistenceSystem(h.world, &memStore{})
	h.world.AddSystem(ps)
	ps.Close()

	// Writes after close are ignored, not panics
	h.world.PushEvent(event.EventLiveryRequest, &event.LiveryPayload{Index: 1})
	h.step(1, frame)
}
