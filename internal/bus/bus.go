// Package bus is the room event bus: a named-channel publish/subscribe
// layer that fans room and score state changes out to every connected
// client. There is one concrete backing (Redis Pub/Sub); the interface
// exists so services and the websocket hub never couple to it.
package bus

import (
	"context"
	"encoding/json"
)

// Event is the envelope delivered to subscribers.
type Event struct {
	Name    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Publisher emits a named event on a channel. Delivery is best effort:
// subscribers that connect later never see earlier events.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, payload interface{}) error
}

// Subscriber receives every event published on a channel from the
// moment of subscription. The returned cancel func releases the
// subscription and closes the event channel.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan Event, func(), error)
}

// Bus is the full event bus surface.
type Bus interface {
	Publisher
	Subscriber
}
