package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"orgnotes-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ChangeMessage is what subscribers receive when a note changes in their
// organization. It carries no delta: the client reacts by refetching the
// listing, which collapses rapid-fire events into the latest state.
type ChangeMessage struct {
	Type   string    `json:"type"`
	OrgId  uuid.UUID `json:"org_id"`
	NoteId uuid.UUID `json:"note_id"`
	Action string    `json:"action"`
}

type Hub struct {
	// Registered clients map: OrgID -> List of Clients. A client lives in
	// exactly one org room; switching orgs is a new connection.
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fanout
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.OrgID] = append(h.clients[client.OrgID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{
				"org_id":  client.OrgID,
				"user_id": client.UserID,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.OrgID]; ok {
				for i, c := range clients {
					if c == client {
						// Remove from slice
						h.clients[client.OrgID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.OrgID]) == 0 {
					delete(h.clients, client.OrgID)
					h.logger.Info("Hub", "Org room drained", map[string]interface{}{"org_id": client.OrgID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastChange notifies every client subscribed to the change's org room.
// Clients of other organizations never see it.
func (h *Hub) BroadcastChange(change ChangeMessage) {
	data, _ := json.Marshal(change)

	// With Redis the publish round-trips through the shared channel and every
	// instance (this one included) delivers to its local slice of the room.
	// When the publish fails the event must still reach this instance's room:
	// a local delivery is degraded (other instances miss it), a dropped one
	// is a dark feed.
	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_org_id": change.OrgId.String(),
			"message":       data,
		}
		jsonPayload, _ := json.Marshal(payload)
		err := h.rdb.Publish(context.Background(), "cluster_events", jsonPayload).Err()
		if err == nil {
			return
		}
		h.logger.Warn("Hub", "Redis publish failed, delivering locally", map[string]interface{}{
			"org_id": change.OrgId,
			"error":  err.Error(),
		})
	}

	h.broadcastLocal(change.OrgId, data)
}

func (h *Hub) broadcastLocal(orgID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := append([]*Client(nil), h.clients[orgID]...)
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer: drop the connection, a refetch nudge is
			// recoverable on reconnect.
			h.logger.Warn("Hub", "Client send buffer full, dropping", map[string]interface{}{
				"org_id":  orgID,
				"user_id": client.UserID,
			})
			h.unregister <- client
		}
	}
}

// DisconnectUser closes every connection held by one identity, across all
// org rooms. Called on sign-out so a revoked session stops receiving
// tenant-scoped events.
func (h *Hub) DisconnectUser(userID uuid.UUID) {
	h.mu.RLock()
	var toClose []*Client
	for _, clients := range h.clients {
		for _, client := range clients {
			if client.UserID == userID {
				toClose = append(toClose, client)
			}
		}
	}
	h.mu.RUnlock()

	for _, client := range toClose {
		client.Conn.Close()
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the shared channel; messages carry the
	// target org, and each instance delivers to whatever slice of the room
	// it holds locally.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetOrgID string          `json:"target_org_id"`
			Message     json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		orgID, err := uuid.Parse(payload.TargetOrgID)
		if err != nil {
			continue
		}

		h.broadcastLocal(orgID, payload.Message)
	}
}
