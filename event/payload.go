package event

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/perimeter/core"
)

// PurchaseRequestPayload names the item to buy
type PurchaseRequestPayload struct {
	Item core.Item `json:"item"`
}

// SellRequestPayload names the car index to sell, 0 is the locomotive
type SellRequestPayload struct {
	Index int `json:"index"`
}

// SpeedRequestPayload carries the requested base speed, clamped by the consumer
type SpeedRequestPayload struct {
	Speed float64 `json:"speed"`
}

// GeometryRequestPayload carries loop margin and corner radius
type GeometryRequestPayload struct {
	Margin       float64 `json:"margin"`
	CornerRadius float64 `json:"corner_radius"`
}

// ViewportPayload carries the surface size in virtual pixels
type ViewportPayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AnchorPayload carries the command anchor position
type AnchorPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LiveryPayload selects a palette entry
type LiveryPayload struct {
	Index int `json:"index"`
}

// LanguagePayload carries a console language code
type LanguagePayload struct {
	Lang string `json:"lang"`
}

// SkinPayload carries a skin theme and, on success, the generated image reference
type SkinPayload struct {
	Theme string `json:"theme"`
	Ref   string `json:"ref,omitempty"`
	Err   error  `json:"-"`
}

// PulsePayload reports what an accepted pulse yielded
type PulsePayload struct {
	Energy float64 `json:"energy"`
	Scrap  float64 `json:"scrap"`
}

// DenialPayload reports why an intent was rejected
type DenialPayload struct {
	Item core.Item `json:"item"`
	Err  error     `json:"-"`
}

// PurchasePayload reports a completed purchase
type PurchasePayload struct {
	Item core.Item `json:"item"`
	Cost float64   `json:"cost"`
}

// SalePayload reports a completed sale
type SalePayload struct {
	Kind   core.CarKind `json:"kind"`
	Refund float64      `json:"refund"`
}

// HubPayload describes a hub
type HubPayload struct {
	ID           uuid.UUID    `json:"id"`
	Kind         core.HubKind `json:"kind"`
	LoopDistance float64      `json:"loop_distance"`
}

// ScrapPayload carries a scrap amount
type ScrapPayload struct {
	Amount float64 `json:"amount"`
}

// AgentPayload describes a drone sortie
type AgentPayload struct {
	Task core.AgentTask `json:"task"`
	Hub  core.HubKind   `json:"hub"`
}

// RefuelPayload reports delivered energy
type RefuelPayload struct {
	Amount float64      `json:"amount"`
	Hub    core.HubKind `json:"hub"`
}

// TerminalPayload identifies a terminal
type TerminalPayload struct {
	HubID uuid.UUID `json:"hub_id"`
}

// SettlementPayload reports a terminal passenger exchange
type SettlementPayload struct {
	HubID   uuid.UUID `json:"hub_id"`
	Payout  float64   `json:"payout"`
	Boarded int       `json:"boarded"`
}

// SoundRequestPayload names a cue to play
type SoundRequestPayload struct {
	SoundType core.SoundType `json:"sound_type"`
}
