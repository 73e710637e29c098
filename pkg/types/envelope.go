package types

import (
	"encoding/json"
)

// Envelope is the wire format for every WebSocket frame in both
// directions: a type tag plus a type-specific JSON payload.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope marshals payload and wraps it with the given type tag.
func NewEnvelope(msgType string, payload interface{}) (*Envelope, error) {
	if payload == nil {
		return &Envelope{Type: msgType}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Envelope{Type: msgType, Payload: data}, nil
}

// DecodePayload unmarshals the payload into v.
func (e *Envelope) DecodePayload(v interface{}) error {
	if len(e.Payload) == 0 {
		return ErrEmptyPayload
	}
	return json.Unmarshal(e.Payload, v)
}
