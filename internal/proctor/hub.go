package proctor

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/saulo-duarte/quiz-proctor/internal/config"
)

type direct struct {
	client *Client
	data   []byte
}

// Hub owns the set of connected sockets. All mutations of the set happen on
// the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	send       chan direct
	done       chan struct{}
	count      atomic.Int64
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		send:       make(chan direct, 256),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	log := config.WithContext(ctx)
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.count.Store(int64(len(h.clients)))
			log.WithField("clients", len(h.clients)).Debug("Socket registered")

		case c := <-h.unregister:
			if h.clients[c] {
				h.drop(c)
			}
			log.WithField("clients", len(h.clients)).Debug("Socket unregistered")

		case data := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					log.Warn("Dropping slow socket")
					h.drop(c)
				}
			}

		case d := <-h.send:
			if !h.clients[d.client] {
				continue
			}
			select {
			case d.client.send <- d.data:
			default:
				h.drop(d.client)
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Store(int64(len(h.clients)))
}

// Clients reports how many sockets are connected.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// Broadcast queues msg for every connected socket. It never blocks on a
// stopped hub.
func (h *Hub) Broadcast(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	}
	return nil
}

func (h *Hub) sendTo(c *Client, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	select {
	case h.send <- direct{client: c, data: data}:
	case <-h.done:
	}
	return nil
}

func (h *Hub) attach(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) detach(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
