package event

// EventType represents the type of simulation event
type EventType int

const (
	// EventNone is the zero value, never emitted
	EventNone EventType = iota

	// === Intents (host → simulation) ===

	// EventPulseRequest asks for a manual pulse
	// Trigger: Host input | Consumer: IntentSystem | Payload: nil
	EventPulseRequest

	// EventPurchaseRequest asks to buy a wagon, hub or upgrade
	// Trigger: Host input | Consumer: IntentSystem | Payload: *PurchaseRequestPayload
	EventPurchaseRequest

	// EventSellRequest asks to sell the car at an index
	// Trigger: Host input | Consumer: IntentSystem | Payload: *SellRequestPayload
	EventSellRequest

	// EventRebootRequest asks the drone to reboot a derailed train
	// Trigger: Host input | Consumer: AgentSystem | Payload: nil
	EventRebootRequest

	// EventSpeedRequest sets the base speed
	// Trigger: Host input | Consumer: IntentSystem | Payload: *SpeedRequestPayload
	EventSpeedRequest

	// EventGeometryRequest sets loop margin and corner radius
	// Trigger: Host input | Consumer: IntentSystem | Payload: *GeometryRequestPayload
	EventGeometryRequest

	// EventViewportResize reports a new surface size in virtual pixels
	// Trigger: Host resize | Consumer: IntentSystem | Payload: *ViewportPayload
	EventViewportResize

	// EventAnchorRequest moves the command anchor
	// Trigger: Host input | Consumer: IntentSystem | Payload: *AnchorPayload
	EventAnchorRequest

	// EventGodModeRequest asks for the developer scrap grant
	// Trigger: Host input | Consumer: IntentSystem | Payload: nil
	EventGodModeRequest

	// EventLiveryRequest selects a locomotive paint from the palette
	// Trigger: Host input | Consumer: IntentSystem | Payload: *LiveryPayload
	EventLiveryRequest

	// EventLanguageRequest switches the console language
	// Trigger: Host input | Consumer: ConsoleSystem, PersistenceSystem | Payload: *LanguagePayload
	EventLanguageRequest

	// EventSkinApplied installs a generated cosmetic skin
	// Trigger: Skin service | Consumer: IntentSystem, ConsoleSystem | Payload: *SkinPayload
	EventSkinApplied

	// EventSkinFailed reports a failed skin generation, the current skin stays
	// Trigger: Skin service | Consumer: ConsoleSystem | Payload: *SkinPayload
	EventSkinFailed

	// === Outcomes (simulation → observers) ===

	// EventPulseAccepted reports an accepted pulse
	// Trigger: IntentSystem | Consumer: ConsoleSystem, AudioSystem | Payload: *PulsePayload
	EventPulseAccepted

	// EventPulseDenied reports a rejected pulse
	// Trigger: IntentSystem | Consumer: ConsoleSystem | Payload: *DenialPayload
	EventPulseDenied

	// EventPurchaseAccepted reports a completed purchase
	// Trigger: IntentSystem | Consumer: ConsoleSystem | Payload: *PurchasePayload
	EventPurchaseAccepted

	// EventPurchaseDenied reports a rejected purchase or sale
	// Trigger: IntentSystem | Consumer: ConsoleSystem | Payload: *DenialPayload
	EventPurchaseDenied

	// EventCarSold reports a completed sale
	// Trigger: IntentSystem | Consumer: ConsoleSystem | Payload: *SalePayload
	EventCarSold

	// EventHubBuilt reports a new hub on the loop
	// Trigger: IntentSystem | Consumer: ConsoleSystem, PersistenceSystem | Payload: *HubPayload
	EventHubBuilt

	// EventAnchorMoved reports the committed anchor position
	// Trigger: IntentSystem | Consumer: PersistenceSystem | Payload: *AnchorPayload
	EventAnchorMoved

	// EventGodModeGranted reports the developer grant
	// Trigger: IntentSystem | Consumer: ConsoleSystem | Payload: *ScrapPayload
	EventGodModeGranted

	// EventDerailed reports a storm-induced derail
	// Trigger: HardwareSystem | Consumer: ConsoleSystem | Payload: nil
	EventDerailed

	// EventAgentDispatched reports the drone leaving its hub
	// Trigger: AgentSystem | Consumer: ConsoleSystem | Payload: *AgentPayload
	EventAgentDispatched

	// EventRebootDenied reports a rejected reboot request
	// Trigger: AgentSystem | Consumer: ConsoleSystem | Payload: *DenialPayload
	EventRebootDenied

	// EventRefuelComplete reports a delivered refuel
	// Trigger: AgentSystem | Consumer: ConsoleSystem | Payload: *RefuelPayload
	EventRefuelComplete

	// EventRebootComplete reports a cleared derail
	// Trigger: AgentSystem | Consumer: ConsoleSystem | Payload: nil
	EventRebootComplete

	// EventAgentDocked reports the drone back at its hub
	// Trigger: AgentSystem | Consumer: ConsoleSystem | Payload: *AgentPayload
	EventAgentDocked

	// EventTerminalArrival reports a stop at a terminal
	// Trigger: TerminalSystem | Consumer: ConsoleSystem | Payload: *TerminalPayload
	EventTerminalArrival

	// EventTerminalSettled reports passenger exchange at a terminal
	// Trigger: TerminalSystem | Consumer: ConsoleSystem | Payload: *SettlementPayload
	EventTerminalSettled

	// === Audio ===

	// EventSoundRequest requests a sound cue
	// Trigger: Any system | Consumer: AudioSystem | Payload: *SoundRequestPayload
	EventSoundRequest

	eventTypeCount
)

// GameEvent is a single queued event
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
