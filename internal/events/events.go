package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Change event types.
const (
	TypeRecordAdded   = "record.added"
	TypeRecordRemoved = "record.removed"
	TypeTargetUpdated = "target.updated"
)

// ChangeEvent describes one persisted change.
type ChangeEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload holds the type-specific data as JSON
	Payload json.RawMessage `json:"payload"`

	OccurredAt time.Time `json:"occurred_at"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *ChangeEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewChangeEvent creates a ChangeEvent with the given type and payload.
func NewChangeEvent(eventType string, payload interface{}) (*ChangeEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &ChangeEvent{
		ID:         uuid.New(),
		Type:       eventType,
		Payload:    payloadBytes,
		OccurredAt: time.Now().UTC(),
	}, nil
}

// RecordPayload is the payload of record.added and record.removed.
type RecordPayload struct {
	RecordID string `json:"record_id"`
	Date     string `json:"date,omitempty"`
	Total    int    `json:"total,omitempty"`
	Count    int    `json:"count"`
}

// TargetPayload is the payload of target.updated.
type TargetPayload struct {
	Target int `json:"target"`
}

// Handler processes change events.
type Handler interface {
	HandleEvent(ctx context.Context, event *ChangeEvent) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event *ChangeEvent) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *ChangeEvent) error {
	return f(ctx, event)
}

// Emitter publishes change events.
type Emitter interface {
	Emit(ctx context.Context, event *ChangeEvent) error
}
