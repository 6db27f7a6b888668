package network

import (
	"encoding/json"

	"github.com/lixenwraith/perimeter/engine"
)

// MessageType identifies the semantic meaning of a message
type MessageType string

const (
	MsgHello    MessageType = "hello"    // First message after upgrade
	MsgSnapshot MessageType = "snapshot" // Periodic state push
	MsgMetrics  MessageType = "metrics"  // Telemetry registry dump
)

// ProtocolVersion is sent in the hello message
const ProtocolVersion = 1

// Message is the JSON envelope of every websocket text frame
type Message struct {
	Type     MessageType      `json:"type"`
	Seq      uint64           `json:"seq"`
	Version  int              `json:"version,omitempty"`
	Snapshot *engine.Snapshot `json:"snapshot,omitempty"`
	Metrics  map[string]any   `json:"metrics,omitempty"`
}

// Encode marshals the message for a text frame
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode parses a text frame into a message
func Decode(data []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
