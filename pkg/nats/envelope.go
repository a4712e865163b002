package nats

import (
	"encoding/json"
	"strings"
	"time"

	"study-assistant-be/pkg/events"
)

const (
	streamName    = "EVENTS"
	subjectPrefix = "events."
)

// Logger is the subset of the application logger the bus needs.
type Logger interface {
	Info(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
}

type envelope struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

// Subject maps an event type to its NATS subject.
func Subject(eventType string) string {
	return subjectPrefix + eventType
}

func encode(event events.Event) ([]byte, error) {
	return json.Marshal(envelope{
		Type:       event.EventType(),
		OccurredAt: event.Timestamp(),
		Data:       event.Payload(),
	})
}

// decode accepts the envelope and falls back to a bare payload, taking the
// type from the subject.
func decode(subject string, raw []byte) (events.BaseEvent, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return events.BaseEvent{}, err
	}
	if env.Type == "" {
		var payload map[string]interface{}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return events.BaseEvent{}, err
		}
		env.Type = strings.TrimPrefix(subject, subjectPrefix)
		env.Data = payload
	}
	if env.OccurredAt.IsZero() {
		env.OccurredAt = time.Now()
	}
	return events.BaseEvent{Type: env.Type, Data: env.Data, OccurredAt: env.OccurredAt}, nil
}
