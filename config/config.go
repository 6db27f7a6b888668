// Package config loads the YAML configuration, validated against an embedded JSON schema
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/economy"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/parameter"
)

//go:embed config.schema.json
var schemaJSON string

const schemaURL = "config.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// Config is the file-level configuration; zero sections keep their defaults
type Config struct {
	Viewport ViewportConfig     `yaml:"viewport"`
	Track    TrackConfig        `yaml:"track"`
	Train    TrainConfig        `yaml:"train"`
	Audio    AudioConfig        `yaml:"audio"`
	Console  ConsoleConfig      `yaml:"console"`
	Store    StoreConfig        `yaml:"store"`
	Observer ObserverConfig     `yaml:"observer"`
	Skin     SkinConfig         `yaml:"skin"`
	Dev      DevConfig          `yaml:"dev"`
	Prices   map[string]float64 `yaml:"prices,omitempty"`
}

type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type TrackConfig struct {
	Margin       float64 `yaml:"margin"`
	CornerRadius float64 `yaml:"corner_radius"`
	CarSpacing   float64 `yaml:"car_spacing"`
}

type TrainConfig struct {
	Speed      float64 `yaml:"speed"`
	IdleCruise bool    `yaml:"idle_cruise"`
	Livery     string  `yaml:"livery"`
}

type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

type ConsoleConfig struct {
	Lang       string `yaml:"lang"`
	JournalDir string `yaml:"journal_dir"` // Empty disables the journal
}

type StoreConfig struct {
	Path string `yaml:"path"` // Empty disables persistence
}

type ObserverConfig struct {
	Addr           string `yaml:"addr"` // Empty disables the observer server
	PushIntervalMs int    `yaml:"push_interval_ms"`
}

type SkinConfig struct {
	Endpoint          string  `yaml:"endpoint"` // Empty disables skins
	RequestsPerMinute float64 `yaml:"requests_per_minute"`
	Burst             int     `yaml:"burst"`
	TimeoutMs         int     `yaml:"timeout_ms"`
}

type DevConfig struct {
	GodMode bool `yaml:"god_mode"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Viewport: ViewportConfig{
			Width:  parameter.DefaultViewportWidth,
			Height: parameter.DefaultViewportHeight,
		},
		Track: TrackConfig{
			Margin:       parameter.DefaultMargin,
			CornerRadius: parameter.DefaultCornerRadius,
			CarSpacing:   parameter.DefaultCarSpacing,
		},
		Train: TrainConfig{
			Speed:      parameter.DefaultSpeed,
			IdleCruise: true,
			Livery:     core.Liveries[0].Hex(),
		},
		Audio:   AudioConfig{Enabled: true},
		Console: ConsoleConfig{Lang: "en"},
		Store:   StoreConfig{Path: "perimeter.db"},
		Observer: ObserverConfig{
			PushIntervalMs: int(parameter.SnapshotInterval / time.Millisecond),
		},
		Skin: SkinConfig{
			RequestsPerMinute: parameter.SkinRequestsPerMinute,
			Burst:             parameter.SkinBurst,
			TimeoutMs:         int(parameter.SkinTimeout / time.Millisecond),
		},
	}
}

// Load reads a YAML file over the defaults; an empty path returns the defaults
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates a YAML document against the schema and decodes it over the defaults
func Parse(data []byte) (Config, error) {
	cfg := Default()

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if doc != nil {
		if err := validateSchema(doc); err != nil {
			return cfg, err
		}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// validateSchema round-trips the YAML tree through JSON so the validator sees JSON value types
func validateSchema(doc any) error {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString(schemaURL, schemaJSON)
	})
	if schemaErr != nil {
		return fmt.Errorf("compile schema: %w", schemaErr)
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate checks cross-field rules the schema cannot express
func (c Config) Validate() error {
	if _, err := core.ParseHex(c.Train.Livery); err != nil {
		return fmt.Errorf("train.livery: %w", err)
	}
	for name := range c.Prices {
		if _, ok := ParseItem(name); !ok {
			return fmt.Errorf("prices: unknown item %q", name)
		}
	}
	return nil
}

// ParseItem resolves a catalog item by name
func ParseItem(name string) (core.Item, bool) {
	for i := core.Item(0); i < core.ItemCount; i++ {
		if i.String() == name {
			return i, true
		}
	}
	return 0, false
}

// Catalog returns the default catalog with configured price overrides
func (c Config) Catalog() economy.Catalog {
	cat := economy.DefaultCatalog()
	for name, price := range c.Prices {
		if item, ok := ParseItem(name); ok {
			cat = cat.WithPrice(item, price)
		}
	}
	return cat
}

// EngineOptions maps the configuration onto simulation startup options
func (c Config) EngineOptions() engine.Options {
	opts := engine.DefaultOptions()
	opts.Width = c.Viewport.Width
	opts.Height = c.Viewport.Height
	opts.Margin = c.Track.Margin
	opts.CornerRadius = c.Track.CornerRadius
	opts.CarSpacing = c.Track.CarSpacing
	opts.Speed = c.Train.Speed
	opts.IdleCruise = c.Train.IdleCruise
	opts.GodMode = c.Dev.GodMode
	if livery, err := core.ParseHex(c.Train.Livery); err == nil {
		opts.Livery = livery
	}
	opts.Catalog = c.Catalog()
	return opts
}

// PushInterval is the observer push cadence
func (c Config) PushInterval() time.Duration {
	return time.Duration(c.Observer.PushIntervalMs) * time.Millisecond
}

// SkinTimeout is the per-request generator timeout
func (c Config) SkinTimeout() time.Duration {
	return time.Duration(c.Skin.TimeoutMs) * time.Millisecond
}
