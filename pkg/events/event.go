package events

import "time"

// Domain events published on the NATS bus.
const (
	UserRegistered = "USER_REGISTERED"
	NotesGenerated = "NOTES_GENERATED"
	ExamCompleted  = "EXAM_COMPLETED"
)

// CollectionChanged is the in-process topic the realtime feed listens on.
const CollectionChanged = "collection.changed"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "EXAM_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// String reads a string field from the payload.
func String(e Event, key string) string {
	v, _ := e.Payload()[key].(string)
	return v
}
