package nats

import (
	"testing"
	"time"

	"study-assistant-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	in := events.BaseEvent{Type: events.NotesGenerated, Data: map[string]interface{}{"note_id": "n1"}, OccurredAt: at}

	raw, err := encode(in)
	require.NoError(t, err)

	out, err := decode(Subject(events.NotesGenerated), raw)
	require.NoError(t, err)
	assert.Equal(t, events.NotesGenerated, out.Type)
	assert.Equal(t, "n1", out.Data["note_id"])
	assert.True(t, at.Equal(out.OccurredAt))
}

func TestDecodeBarePayload(t *testing.T) {
	out, err := decode("events.USER_REGISTERED", []byte(`{"email":"a@b.c"}`))
	require.NoError(t, err)

	assert.Equal(t, events.UserRegistered, out.Type)
	assert.Equal(t, "a@b.c", out.Data["email"])
	assert.False(t, out.OccurredAt.IsZero())
}

func TestDecodeGarbage(t *testing.T) {
	_, err := decode("events.X", []byte("nope"))
	assert.Error(t, err)
}
