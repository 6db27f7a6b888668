package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/parameter"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Track.Margin != parameter.DefaultMargin || cfg.Train.Speed != parameter.DefaultSpeed {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	doc := `
track:
  margin: 20
train:
  speed: 12
  livery: "#ef4444"
dev:
  god_mode: true
prices:
  ai: 10
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Track.Margin != 20 {
		t.Errorf("Expected margin 20, got %v", cfg.Track.Margin)
	}
	if cfg.Track.CornerRadius != parameter.DefaultCornerRadius {
		t.Errorf("Expected default radius kept, got %v", cfg.Track.CornerRadius)
	}
	if !cfg.Train.IdleCruise {
		t.Error("Expected idle cruise default kept")
	}

	opts := cfg.EngineOptions()
	if opts.Speed != 12 || !opts.GodMode {
		t.Errorf("Expected speed 12 and god mode, got %+v", opts)
	}
	if opts.Livery != (core.RGB{R: 0xef, G: 0x44, B: 0x44}) {
		t.Errorf("Expected red livery, got %v", opts.Livery)
	}
	if price, _ := opts.Catalog.Base(core.ItemAI); price != 10 {
		t.Errorf("Expected ai price override 10, got %v", price)
	}
	if price, _ := opts.Catalog.Base(core.ItemMining); price != parameter.PriceMining {
		t.Errorf("Expected mining price default, got %v", price)
	}
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown section", "turbo: true\n"},
		{"negative margin", "track:\n  margin: -1\n"},
		{"speed too high", "train:\n  speed: 99\n"},
		{"bad language", "console:\n  lang: de\n"},
		{"bad livery", "train:\n  livery: blue\n"},
		{"unknown price item", "prices:\n  rocket: 5\n"},
		{"wrong type", "audio:\n  enabled: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Errorf("Expected error for %q", tt.doc)
			}
		})
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Console.Lang != "en" {
		t.Errorf("Expected default language, got %q", cfg.Console.Lang)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perimeter.yaml")
	if err := os.WriteFile(path, []byte("console:\n  lang: cs\nobserver:\n  addr: \":8089\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Console.Lang != "cs" || cfg.Observer.Addr != ":8089" {
		t.Errorf("Expected cs and :8089, got %q %q", cfg.Console.Lang, cfg.Observer.Addr)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Errorf("Expected read error, got %v", err)
	}
}

func TestParseItem(t *testing.T) {
	for i := core.Item(0); i < core.ItemCount; i++ {
		got, ok := ParseItem(i.String())
		if !ok || got != i {
			t.Errorf("ParseItem(%q): expected %v, got %v ok=%v", i.String(), i, got, ok)
		}
	}
	if _, ok := ParseItem("unknown"); ok {
		t.Error("Expected unknown item rejected")
	}
}
