package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"study-assistant-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "cluster_events"

const (
	clusterDeliver    = "deliver"
	clusterDisconnect = "disconnect"
)

type clusterMessage struct {
	Origin       string          `json:"origin"`
	Kind         string          `json:"kind"`
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message,omitempty"`
}

type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	// done is closed once Run returns.
	done chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out. Optional.
	rdb *redis.Client

	// instanceID filters out our own messages coming back from Redis.
	instanceID string

	onConnect func(userID uuid.UUID)

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// OnConnect registers a callback run after every new connection.
func (h *Hub) OnConnect(fn func(userID uuid.UUID)) {
	h.onConnect = fn
}

// Run serves register/unregister requests until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

			if h.onConnect != nil {
				go h.onConnect(client.UserID)
			}

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// join hands the client to Run. It reports false once the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// leave hands the client back to Run, or gives up once the hub has stopped.
func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
			client.close()
			break
		}
	}
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
		h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, clients := range h.clients {
		for _, c := range clients {
			c.close()
		}
		delete(h.clients, userID)
	}
}

// Connected reports how many sockets the user has on this instance.
func (h *Hub) Connected(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// SendToUser pushes a frame to every socket of the user, here and on other instances.
func (h *Hub) SendToUser(userID uuid.UUID, frame Frame) {
	data, err := frame.encode()
	if err != nil {
		h.logger.Error("Hub", "Failed to encode frame", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(userID, data)
	h.publish(clusterDeliver, userID, data)
}

// DisconnectUser says goodbye to and closes every socket of the user.
func (h *Hub) DisconnectUser(userID uuid.UUID) {
	data, _ := AuthFrame(AuthSignedOut).encode()
	h.disconnectLocal(userID, data)
	h.publish(clusterDisconnect, userID, data)
}

func (h *Hub) deliverLocal(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := append([]*Client(nil), h.clients[userID]...)
	h.mu.RUnlock()

	for _, client := range clients {
		if !client.trySend(data) {
			h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"user_id": userID})
			go h.leave(client)
		}
	}
}

func (h *Hub) disconnectLocal(userID uuid.UUID, farewell []byte) {
	h.mu.Lock()
	clients := h.clients[userID]
	delete(h.clients, userID)
	h.mu.Unlock()

	for _, client := range clients {
		client.trySend(farewell)
		client.close()
	}
	if len(clients) > 0 {
		h.logger.Info("Hub", "User disconnected", map[string]interface{}{"user_id": userID, "sockets": len(clients)})
	}
}

func (h *Hub) publish(kind string, userID uuid.UUID, data []byte) {
	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(clusterMessage{
		Origin:       h.instanceID,
		Kind:         kind,
		TargetUserID: userID.String(),
		Message:      data,
	})
	if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Redis publish failed", map[string]interface{}{"error": err.Error()})
	}
}

// subscribeToRedis relays frames published by other instances to our local sockets.
func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.handleCluster([]byte(msg.Payload))
		}
	}
}

func (h *Hub) handleCluster(raw []byte) {
	var m clusterMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
		return
	}
	if m.Origin == h.instanceID {
		return
	}

	uid, err := uuid.Parse(m.TargetUserID)
	if err != nil {
		return
	}

	switch m.Kind {
	case clusterDisconnect:
		h.disconnectLocal(uid, m.Message)
	default:
		h.deliverLocal(uid, m.Message)
	}
}
