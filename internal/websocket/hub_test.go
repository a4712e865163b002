package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"study-assistant-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func attach(t *testing.T, hub *Hub, userID uuid.UUID) *Client {
	t.Helper()
	c := newClient(hub, nil, userID)
	require.True(t, hub.join(c))
	require.Eventually(t, func() bool { return hub.Connected(userID) > 0 }, time.Second, 5*time.Millisecond)
	return c
}

func readFrame(t *testing.T, c *Client) Frame {
	t.Helper()
	select {
	case raw, ok := <-c.Send:
		require.True(t, ok, "channel closed")
		var f Frame
		require.NoError(t, json.Unmarshal(raw, &f))
		return f
	case <-time.After(time.Second):
		t.Fatal("no frame received")
		return Frame{}
	}
}

func TestSendToUserOnlyReachesThatUser(t *testing.T) {
	hub := startHub(t)
	alice, bob := uuid.New(), uuid.New()
	a1 := attach(t, hub, alice)
	a2 := attach(t, hub, alice)
	b := attach(t, hub, bob)

	hub.SendToUser(alice, SnapshotFrame("notes", []string{"n1"}))

	for _, c := range []*Client{a1, a2} {
		f := readFrame(t, c)
		assert.Equal(t, FrameSnapshot, f.Type)
		assert.Equal(t, "notes", f.Collection)
	}
	assert.Len(t, b.Send, 0)
}

func TestDisconnectUserSendsSignedOutAndCloses(t *testing.T) {
	hub := startHub(t)
	user := uuid.New()
	c := attach(t, hub, user)

	hub.DisconnectUser(user)

	f := readFrame(t, c)
	assert.Equal(t, FrameAuth, f.Type)
	assert.Equal(t, AuthSignedOut, f.State)

	_, ok := <-c.Send
	assert.False(t, ok)
	assert.Zero(t, hub.Connected(user))
	assert.False(t, c.trySend([]byte("late")))
}

func TestOnConnectCallback(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	seen := make(chan uuid.UUID, 1)
	hub.OnConnect(func(id uuid.UUID) { seen <- id })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	user := uuid.New()
	require.True(t, hub.join(newClient(hub, nil, user)))

	select {
	case got := <-seen:
		assert.Equal(t, user, got)
	case <-time.After(time.Second):
		t.Fatal("callback not called")
	}
}

func TestHandleClusterIgnoresOwnMessages(t *testing.T) {
	hub := startHub(t)
	user := uuid.New()
	c := attach(t, hub, user)

	own, _ := json.Marshal(clusterMessage{Origin: hub.instanceID, Kind: clusterDeliver, TargetUserID: user.String(), Message: json.RawMessage(`{"type":"snapshot"}`)})
	hub.handleCluster(own)
	assert.Len(t, c.Send, 0)

	remote, _ := json.Marshal(clusterMessage{Origin: "other", Kind: clusterDeliver, TargetUserID: user.String(), Message: json.RawMessage(`{"type":"snapshot"}`)})
	hub.handleCluster(remote)
	assert.Equal(t, FrameSnapshot, readFrame(t, c).Type)
}

func TestStoppedHubDoesNotBlockClients(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	user := uuid.New()
	c := attach(t, hub, user)
	cancel()

	select {
	case <-hub.done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	finished := make(chan bool, 1)
	go func() {
		hub.leave(c)
		finished <- hub.join(newClient(hub, nil, user))
	}()

	select {
	case joined := <-finished:
		assert.False(t, joined)
	case <-time.After(time.Second):
		t.Fatal("client blocked on a stopped hub")
	}
	assert.Zero(t, hub.Connected(user))
}

func TestDroppedClientIsRemoved(t *testing.T) {
	hub := startHub(t)
	user := uuid.New()
	c := attach(t, hub, user)

	for i := 0; i < sendBuffer; i++ {
		require.True(t, c.trySend([]byte("{}")))
	}
	hub.SendToUser(user, AuthFrame(AuthSignedIn))

	require.Eventually(t, func() bool { return hub.Connected(user) == 0 }, time.Second, 5*time.Millisecond)
}
