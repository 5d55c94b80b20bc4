package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"loan-marketplace-be/internal/pkg/logger"
)

const clusterChannel = "lender_events"

// Hub routes dashboard notifications to connected lender clients. One lender
// may hold several connections (multiple tabs or devices).
type Hub struct {
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Optional cross-instance fanout. Nil when running single-node.
	rdb *redis.Client

	log logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		log:        log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.LenderID] = append(h.clients[client.LenderID], client)
			h.mu.Unlock()
			h.log.Info("Hub", "client registered", map[string]interface{}{"lender_id": client.LenderID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.LenderID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.LenderID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.LenderID]) == 0 {
					delete(h.clients, client.LenderID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Push delivers an event to every connection the lender holds, locally and
// via redis for connections held by other instances.
func (h *Hub) Push(lenderID uuid.UUID, eventType string, payload interface{}) {
	data, err := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": payload,
	})
	if err != nil {
		h.log.Warn("Hub", "push payload marshal failed", map[string]interface{}{"error": err.Error()})
		return
	}

	h.mu.RLock()
	clients := h.clients[lenderID]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// The unregister branch owns closing Send.
			h.log.Warn("Hub", "client send buffer full, dropping connection", map[string]interface{}{"lender_id": lenderID})
			h.unregister <- client
		}
	}

	if h.rdb != nil {
		envelope, _ := json.Marshal(clusterEnvelope{
			TargetLenderID: lenderID.String(),
			Message:        data,
		})
		h.rdb.Publish(context.Background(), clusterChannel, envelope)
	}
}

type clusterEnvelope struct {
	TargetLenderID string          `json:"target_lender_id"`
	Message        json.RawMessage `json:"message"`
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope clusterEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			h.log.Warn("Hub", "cluster message parse failed", map[string]interface{}{"error": err.Error()})
			continue
		}

		lenderID, err := uuid.Parse(envelope.TargetLenderID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients := h.clients[lenderID]
		h.mu.RUnlock()

		for _, client := range clients {
			select {
			case client.Send <- envelope.Message:
			default:
				h.unregister <- client
			}
		}
	}
}
