package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"gamehub/internal/bus"
)

// Hub fans bus events out to WebSocket subscribers. It keeps one bus
// subscription per channel, opened when the first socket subscribes
// and released when the last one leaves.
type Hub struct {
	bus bus.Subscriber

	mu       sync.Mutex
	channels map[string]*channelSub
}

type channelSub struct {
	conns  map[*Connection]bool
	cancel func()
}

// Connection represents one WebSocket subscriber on a single channel.
type Connection struct {
	Channel string
	Send    chan []byte
}

// NewHub creates a new WebSocket hub
func NewHub(b bus.Subscriber) *Hub {
	return &Hub{
		bus:      b,
		channels: make(map[string]*channelSub),
	}
}

// Register adds a connection, opening the backing bus subscription if
// this is the channel's first subscriber.
func (h *Hub) Register(conn *Connection) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	cs, ok := h.channels[conn.Channel]
	if !ok {
		events, cancel, err := h.bus.Subscribe(context.Background(), conn.Channel)
		if err != nil {
			return err
		}
		cs = &channelSub{
			conns:  make(map[*Connection]bool),
			cancel: cancel,
		}
		h.channels[conn.Channel] = cs
		go h.forward(conn.Channel, events)
		logrus.WithField("channel", conn.Channel).Info("subscribed to channel")
	}
	cs.conns[conn] = true
	return nil
}

// Unregister removes a connection, releasing the bus subscription when
// the channel has no subscribers left.
func (h *Hub) Unregister(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cs, ok := h.channels[conn.Channel]
	if !ok || !cs.conns[conn] {
		return
	}
	delete(cs.conns, conn)
	close(conn.Send)

	if len(cs.conns) == 0 {
		cs.cancel()
		delete(h.channels, conn.Channel)
		logrus.WithField("channel", conn.Channel).Info("released channel")
	}
}

func (h *Hub) forward(channel string, events <-chan bus.Event) {
	for ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			continue
		}

		h.mu.Lock()
		cs, ok := h.channels[channel]
		if !ok {
			h.mu.Unlock()
			return
		}
		for conn := range cs.conns {
			select {
			case conn.Send <- data:
			default:
				// Drop message if the socket's buffer is full.
			}
		}
		h.mu.Unlock()
	}
}
