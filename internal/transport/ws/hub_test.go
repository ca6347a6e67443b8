package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamehub/internal/bus"
)

type fakeBus struct {
	mu       sync.Mutex
	chans    map[string]chan bus.Event
	cancels  map[string]int
	subErr   error
	subCount int
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		chans:   make(map[string]chan bus.Event),
		cancels: make(map[string]int),
	}
}

func (f *fakeBus) Subscribe(_ context.Context, channel string) (<-chan bus.Event, func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subErr != nil {
		return nil, nil, f.subErr
	}
	f.subCount++
	ch := make(chan bus.Event, 8)
	f.chans[channel] = ch
	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.cancels[channel]++
		close(ch)
		delete(f.chans, channel)
	}, nil
}

func (f *fakeBus) push(channel string, ev bus.Event) {
	f.mu.Lock()
	ch := f.chans[channel]
	f.mu.Unlock()
	ch <- ev
}

func (f *fakeBus) cancelCount(channel string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancels[channel]
}

func recvData(t *testing.T, conn *Connection) []byte {
	t.Helper()
	select {
	case data := <-conn.Send:
		return data
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
		return nil
	}
}

func TestHubForwardsEventsToSubscribers(t *testing.T) {
	b := newFakeBus()
	hub := NewHub(b)

	conn := &Connection{Channel: "game-ttt", Send: make(chan []byte, 4)}
	require.NoError(t, hub.Register(conn))

	payload, _ := json.Marshal(map[string]string{"gameId": "ttt"})
	b.push("game-ttt", bus.Event{Name: "players-update", Payload: payload})

	var got bus.Event
	require.NoError(t, json.Unmarshal(recvData(t, conn), &got))
	assert.Equal(t, "players-update", got.Name)
	assert.JSONEq(t, `{"gameId":"ttt"}`, string(got.Payload))
}

func TestHubSharesOneSubscriptionPerChannel(t *testing.T) {
	b := newFakeBus()
	hub := NewHub(b)

	a := &Connection{Channel: "game-ttt", Send: make(chan []byte, 4)}
	c := &Connection{Channel: "game-ttt", Send: make(chan []byte, 4)}
	require.NoError(t, hub.Register(a))
	require.NoError(t, hub.Register(c))
	assert.Equal(t, 1, b.subCount)

	b.push("game-ttt", bus.Event{Name: "room-info"})
	recvData(t, a)
	recvData(t, c)
}

func TestHubReleasesChannelWhenLastSocketLeaves(t *testing.T) {
	b := newFakeBus()
	hub := NewHub(b)

	a := &Connection{Channel: "game-ttt", Send: make(chan []byte, 4)}
	c := &Connection{Channel: "game-ttt", Send: make(chan []byte, 4)}
	require.NoError(t, hub.Register(a))
	require.NoError(t, hub.Register(c))

	hub.Unregister(a)
	assert.Equal(t, 0, b.cancelCount("game-ttt"), "channel stays while a socket remains")

	hub.Unregister(c)
	assert.Equal(t, 1, b.cancelCount("game-ttt"))

	hub.Unregister(c)
	assert.Equal(t, 1, b.cancelCount("game-ttt"), "double unregister is a no-op")
}

func TestHubRegisterSurfacesSubscribeError(t *testing.T) {
	b := newFakeBus()
	b.subErr = errors.New("redis down")
	hub := NewHub(b)

	conn := &Connection{Channel: "game-ttt", Send: make(chan []byte, 4)}
	assert.Error(t, hub.Register(conn))
}

func TestHubDropsWhenSocketBufferFull(t *testing.T) {
	b := newFakeBus()
	hub := NewHub(b)

	conn := &Connection{Channel: "game-ttt", Send: make(chan []byte, 1)}
	require.NoError(t, hub.Register(conn))

	b.push("game-ttt", bus.Event{Name: "first"})
	b.push("game-ttt", bus.Event{Name: "second"})
	b.push("game-ttt", bus.Event{Name: "third"})

	var got bus.Event
	require.NoError(t, json.Unmarshal(recvData(t, conn), &got))
	assert.Equal(t, "first", got.Name)
}
