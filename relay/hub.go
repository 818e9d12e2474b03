package relay

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one connected dashboard session subscribed to a channel.
type Client struct {
	Conn    *websocket.Conn
	Send    chan []byte
	Channel string
	UserID  string
}

type broadcastMsg struct {
	Channel string
	Data    []byte
}

// Hub fans events out to every client on a channel. Delivery is best
// effort: a client whose send buffer is full is dropped.
type Hub struct {
	channels   map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	quit       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		channels:   make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		quit:       make(chan struct{}),
	}
}

// Broadcast queues data for every client on the channel.
func (h *Hub) Broadcast(channel string, data []byte) {
	h.broadcast <- broadcastMsg{Channel: channel, Data: data}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.channels[c.Channel] == nil {
				h.channels[c.Channel] = make(map[*Client]bool)
			}
			h.channels[c.Channel][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.channels[c.Channel]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.channels[m.Channel] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.channels[m.Channel], c)
				}
			}
			h.mu.Unlock()

		case <-h.quit:
			h.mu.Lock()
			for channel, conns := range h.channels {
				for c := range conns {
					close(c.Send)
				}
				delete(h.channels, channel)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and closes every client send channel.
func (h *Hub) Stop() {
	close(h.quit)
}
