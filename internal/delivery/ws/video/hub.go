package ws_video

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/humanbelnik/catalog/internal/model"
)

const (
	EventMediaStatus = "MEDIA_STATUS"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Event
	// uuid.Nil subscribes to every video.
	videoID uuid.UUID
}

// Hub fans media status events out to websocket subscribers.
type Hub struct {
	logger     *slog.Logger
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan model.MediaStatusEvent
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		logger:     slog.Default(),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan model.MediaStatusEvent, 256),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case e := <-h.broadcast:
			h.broadcastEvent(e)
		}
	}
}

// Publish never blocks the caller; events are dropped when the hub lags.
func (h *Hub) Publish(e model.MediaStatusEvent) {
	select {
	case h.broadcast <- e:
	case <-h.done:
	default:
		h.logger.Warn("media status event dropped", "video_id", e.VideoID.String())
	}
}

func (h *Hub) ClientsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.logger.Info("client registered", "video_id", client.videoID.String())
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.logger.Info("client unregistered", "video_id", client.videoID.String())
}

func (h *Hub) broadcastEvent(e model.MediaStatusEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	event := Event{Type: EventMediaStatus, Payload: e}
	for client := range h.clients {
		if client.videoID != uuid.Nil && client.videoID != e.VideoID {
			continue
		}
		select {
		case client.send <- event:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	close(h.done)
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
