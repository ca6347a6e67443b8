package client

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"gamehub/internal/model"
)

// defaultHeartbeatInterval is how often the presence heartbeat fires.
const defaultHeartbeatInterval = 30 * time.Second

// Presence reports the advisory online-user count: it heartbeats the
// server on an interval and follows user-count events on the global
// channel.
type Presence struct {
	client   *Client
	clientID string
	conn     *websocket.Conn
	done     chan struct{}

	mu    sync.Mutex
	count int
}

// TrackPresence starts heartbeating as clientID. A non-positive
// interval uses the default of 30 seconds.
func (c *Client) TrackPresence(ctx context.Context, clientID string, interval time.Duration) (*Presence, error) {
	if interval <= 0 {
		interval = defaultHeartbeatInterval
	}

	conn, err := c.dial(ctx, model.GlobalChannel)
	if err != nil {
		return nil, err
	}

	p := &Presence{
		client:   c,
		clientID: clientID,
		conn:     conn,
		done:     make(chan struct{}),
	}
	go p.readLoop()
	go p.heartbeatLoop(interval)
	return p, nil
}

// Count returns the last known online-user count.
func (p *Presence) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// Close stops the heartbeat and the subscription.
func (p *Presence) Close() {
	close(p.done)
	p.conn.Close()
}

func (p *Presence) heartbeatLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.heartbeat()
	for {
		select {
		case <-ticker.C:
			p.heartbeat()
		case <-p.done:
			return
		}
	}
}

func (p *Presence) heartbeat() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var resp struct {
		Count int `json:"count"`
	}
	err := p.client.post(ctx, "/v1/presence", map[string]string{"userId": p.clientID}, &resp)
	if err != nil {
		logrus.Warn("presence heartbeat failed: ", err)
		return
	}
	p.mu.Lock()
	p.count = resp.Count
	p.mu.Unlock()
}

func (p *Presence) readLoop() {
	for {
		var ev envelope
		if err := p.conn.ReadJSON(&ev); err != nil {
			select {
			case <-p.done:
			default:
				logrus.Warn("global channel closed: ", err)
			}
			return
		}
		if ev.Event != model.EventUserCount {
			continue
		}
		var payload model.UserCountPayload
		if json.Unmarshal(ev.Payload, &payload) != nil {
			continue
		}
		p.mu.Lock()
		p.count = payload.Count
		p.mu.Unlock()
	}
}
