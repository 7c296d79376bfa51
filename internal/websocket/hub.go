// Package websocket pushes progress updates to a user's open tracker pages.
// After every completed session the hub broadcasts the fresh stats and any
// newly unlocked achievements to that user's connected clients.
package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/service"
)

type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan progressEvent
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	mu         sync.RWMutex
}

type progressEvent struct {
	userID uuid.UUID
	update service.ProgressUpdate
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan progressEvent, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for _, clients := range h.clients {
				for client := range clients {
					client.Close()
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				if h.clients[client.userID] == nil {
					h.clients[client.userID] = make(map[*Client]bool)
				}
				h.clients[client.userID][client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if clients, ok := h.clients[client.userID]; ok {
					if _, ok := clients[client]; ok {
						delete(clients, client)
						client.Close()
						if len(clients) == 0 {
							delete(h.clients, client.userID)
						}
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

// Stop gracefully shuts down the hub and waits for Run() to exit.
func (h *Hub) Stop() {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}
	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// NotifyProgress implements service.ProgressNotifier. Non-blocking: if the
// hub's queue is full the update is dropped, the next completed session will
// carry newer stats anyway.
func (h *Hub) NotifyProgress(userID uuid.UUID, update service.ProgressUpdate) {
	select {
	case h.broadcast <- progressEvent{userID: userID, update: update}:
	default:
		log.Printf("ERROR [websocket.Hub] broadcast queue full, dropping update for user %s", userID)
	}
}

func (h *Hub) deliver(event progressEvent) {
	data, err := json.Marshal(Message{Type: MessageTypeProgress, Payload: event.update})
	if err != nil {
		log.Printf("ERROR [websocket.Hub] failed to marshal progress update: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[event.userID] {
		select {
		case client.send <- data:
		default:
			// Slow consumer, skip rather than block the hub.
		}
	}
}

const MessageTypeProgress = "progress_update"

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
