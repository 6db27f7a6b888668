package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/lixenwraith/perimeter/core"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "perimeter.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMissingKeys(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	if _, ok, err := s.LoadAnchor(ctx); err != nil || ok {
		t.Errorf("Expected no anchor, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := s.LoadLanguage(ctx); err != nil || ok {
		t.Errorf("Expected no language, got ok=%v err=%v", ok, err)
	}
	hubs, err := s.LoadHubs(ctx)
	if err != nil {
		t.Fatalf("LoadHubs failed: %v", err)
	}
	if len(hubs) != 0 {
		t.Errorf("Expected no hubs, got %d", len(hubs))
	}
}

func TestScalarsRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	if err := s.SaveAnchor(ctx, Anchor{X: 120, Y: 340}); err != nil {
		t.Fatalf("SaveAnchor failed: %v", err)
	}
	if err := s.SaveAnchor(ctx, Anchor{X: 200, Y: 300}); err != nil {
		t.Fatalf("SaveAnchor failed: %v", err)
	}
	a, ok, err := s.LoadAnchor(ctx)
	if err != nil || !ok {
		t.Fatalf("LoadAnchor failed: ok=%v err=%v", ok, err)
	}
	if a.X != 200 || a.Y != 300 {
		t.Errorf("Expected latest anchor (200,300), got (%v,%v)", a.X, a.Y)
	}

	if err := s.SaveLanguage(ctx, "cs"); err != nil {
		t.Fatalf("SaveLanguage failed: %v", err)
	}
	lang, ok, err := s.LoadLanguage(ctx)
	if err != nil || !ok || lang != "cs" {
		t.Errorf("Expected language cs, got %q ok=%v err=%v", lang, ok, err)
	}

	if err := s.SaveLivery(ctx, core.Liveries[2]); err != nil {
		t.Fatalf("SaveLivery failed: %v", err)
	}
	c, ok, err := s.LoadLivery(ctx)
	if err != nil || !ok || c != core.Liveries[2] {
		t.Errorf("Expected livery %v, got %v ok=%v err=%v", core.Liveries[2], c, ok, err)
	}
}

func TestHubsReplaceAndOrder(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	first := []HubRecord{
		{ID: uuid.New(), Kind: core.HubCommand},
		{ID: uuid.New(), Kind: core.HubFusion, LoopDistance: 812.5},
		{ID: uuid.New(), Kind: core.HubTerminal, LoopDistance: 40, Waiting: 12},
	}
	if err := s.SaveHubs(ctx, first); err != nil {
		t.Fatalf("SaveHubs failed: %v", err)
	}

	second := append(first[:1:1], HubRecord{ID: uuid.New(), Kind: core.HubMicro, LoopDistance: 10})
	if err := s.SaveHubs(ctx, second); err != nil {
		t.Fatalf("SaveHubs failed: %v", err)
	}

	got, err := s.LoadHubs(ctx)
	if err != nil {
		t.Fatalf("LoadHubs failed: %v", err)
	}
	if len(got) != len(second) {
		t.Fatalf("Expected %d hubs after replace, got %d", len(second), len(got))
	}
	for i := range second {
		if got[i] != second[i] {
			t.Errorf("Hub %d: expected %+v, got %+v", i, second[i], got[i])
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perimeter.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SaveLanguage(ctx, "en"); err != nil {
		t.Fatalf("SaveLanguage failed: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer s.Close()
	lang, ok, err := s.LoadLanguage(ctx)
	if err != nil || !ok || lang != "en" {
		t.Errorf("Expected persisted language en, got %q ok=%v err=%v", lang, ok, err)
	}
}
