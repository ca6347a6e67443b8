package bus

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisBus backs the event bus with Redis Pub/Sub, so every server
// instance sees events published by any other instance.
type RedisBus struct {
	client *redis.Client
}

// NewRedisBus creates a Redis-backed event bus
func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

func (b *RedisBus) Publish(ctx context.Context, channel, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	msg, err := json.Marshal(Event{Name: event, Payload: data})
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, channel, msg).Err()
}

func (b *RedisBus) Subscribe(ctx context.Context, channel string) (<-chan Event, func(), error) {
	sub := b.client.Subscribe(ctx, channel)

	// Force the SUBSCRIBE round trip so a failed connection surfaces
	// here instead of as a silently dead channel.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, nil, err
	}

	events := make(chan Event, 64)
	go func() {
		defer close(events)
		for msg := range sub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				logrus.WithField("channel", channel).Warn("dropping malformed bus event: ", err)
				continue
			}
			select {
			case events <- ev:
			default:
				// Slow subscriber: drop rather than block the reader.
			}
		}
	}()

	cancel := func() {
		sub.Close()
	}
	return events, cancel, nil
}
