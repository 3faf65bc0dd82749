package feed

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"cafe45/internal/metrics"
)

// Hub fans change events out to every connected websocket client and to
// in-process subscribers (the workflow board). One hub per server.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	clients    map[*Client]bool

	mu          sync.Mutex
	subscribers map[chan Event]bool
}

// NewHub creates a hub; call Run before publishing.
func NewHub() *Hub {
	return &Hub{
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan Event, 64),
		clients:     make(map[*Client]bool),
		subscribers: make(map[chan Event]bool),
	}
}

// Run owns the client set until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			metrics.FeedClientConnected()
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.FeedClientDisconnected()
			}
		case event := <-h.broadcast:
			h.deliver(event)
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
				metrics.FeedClientDisconnected()
			}
			return
		}
	}
}

// Publish queues a change notification. Non-blocking: if the hub is
// saturated the event is dropped, since subscribers do a full re-fetch on
// the next event anyway.
func (h *Hub) Publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
		log.Println("feed: broadcast buffer full, dropping event")
	}
}

// Subscribe registers an in-process listener. The returned cancel func must
// be called when the listener goes away.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.subscribers[ch] = true
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.subscribers[ch] {
			delete(h.subscribers, ch)
			close(ch)
		}
	}
	return ch, cancel
}

func (h *Hub) deliver(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("feed: marshal event: %v", err)
		return
	}

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			log.Println("feed: client buffer full, dropping message")
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
