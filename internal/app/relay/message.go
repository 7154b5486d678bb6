package relay

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrSenderNotJoined is returned when an event needs the sender's room but the sender has not joined one.
	ErrSenderNotJoined = errors.New("sender has not joined a room")

	// ErrUnknownTarget is returned when a unicast event or a status change names a connection that is not registered.
	ErrUnknownTarget = errors.New("target connection not found")

	// ErrUnknownEvent is returned for event names with no handler.
	ErrUnknownEvent = errors.New("unsupported event")

	// ErrInvalidPayload is returned when an envelope or its data cannot be decoded.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrAlreadyJoined is returned when a connection that already has a user record tries to join again.
	ErrAlreadyJoined = errors.New("connection already joined a room")
)

// Envelope is the frame format used in both directions: an event name and its JSON data.
type Envelope struct {
	Event EventName       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewEnvelope marshals data and wraps it under the given event name.
// A nil data value produces an empty JSON object.
func NewEnvelope(event EventName, data any) (Envelope, error) {
	if data == nil {
		return Envelope{Event: event, Data: json.RawMessage("{}")}, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", event, err)
	}

	return Envelope{Event: event, Data: raw}, nil
}

// ParseEnvelope decodes a raw frame read from a connection.
func ParseEnvelope(frame []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if env.Event == "" {
		return Envelope{}, fmt.Errorf("%w: missing event name", ErrInvalidPayload)
	}

	return env, nil
}

// decodeData unmarshals the envelope data into dst. Absent data decodes as an empty object.
func decodeData(event EventName, data json.RawMessage, dst any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, event, err)
	}

	return nil
}
