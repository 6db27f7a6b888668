package event

var typeNames = [eventTypeCount]string{
	EventNone:             "none",
	EventPulseRequest:     "pulse_request",
	EventPurchaseRequest:  "purchase_request",
	EventSellRequest:      "sell_request",
	EventRebootRequest:    "reboot_request",
	EventSpeedRequest:     "speed_request",
	EventGeometryRequest:  "geometry_request",
	EventViewportResize:   "viewport_resize",
	EventAnchorRequest:    "anchor_request",
	EventGodModeRequest:   "god_mode_request",
	EventLiveryRequest:    "livery_request",
	EventLanguageRequest:  "language_request",
	EventSkinApplied:      "skin_applied",
	EventSkinFailed:       "skin_failed",
	EventPulseAccepted:    "pulse_accepted",
	EventPulseDenied:      "pulse_denied",
	EventPurchaseAccepted: "purchase_accepted",
	EventPurchaseDenied:   "purchase_denied",
	EventCarSold:          "car_sold",
	EventHubBuilt:         "hub_built",
	EventAnchorMoved:      "anchor_moved",
	EventGodModeGranted:   "god_mode_granted",
	EventDerailed:         "derailed",
	EventAgentDispatched:  "agent_dispatched",
	EventRebootDenied:     "reboot_denied",
	EventRefuelComplete:   "refuel_complete",
	EventRebootComplete:   "reboot_complete",
	EventAgentDocked:      "agent_docked",
	EventTerminalArrival:  "terminal_arrival",
	EventTerminalSettled:  "terminal_settled",
	EventSoundRequest:     "sound_request",
}

var nameToType = func() map[string]EventType {
	m := make(map[string]EventType, len(typeNames))
	for i, name := range typeNames {
		if name != "" {
			m[name] = EventType(i)
		}
	}
	return m
}()

// String returns the snake_case event name used in journals and the observer stream
func (t EventType) String() string {
	if t >= 0 && t < eventTypeCount && typeNames[t] != "" {
		return typeNames[t]
	}
	return "unknown"
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[name]
	return et, ok
}

// IsIntent reports whether the event originates from the host rather than the simulation
func (t EventType) IsIntent() bool {
	return t >= EventPulseRequest && t <= EventSkinFailed
}
