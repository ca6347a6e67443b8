package client

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"gamehub/internal/model"
)

// ScoreWatcher follows a session's score channel and keeps the latest
// score per player.
type ScoreWatcher struct {
	gameID    string
	sessionID string
	conn      *websocket.Conn
	done      chan struct{}

	mu     sync.Mutex
	scores map[string]int
}

// WatchScores subscribes to the session's score channel.
func (c *Client) WatchScores(ctx context.Context, gameID, sessionID string) (*ScoreWatcher, error) {
	conn, err := c.dial(ctx, model.ScoresChannel(gameID, sessionID))
	if err != nil {
		return nil, err
	}
	w := &ScoreWatcher{
		gameID:    gameID,
		sessionID: sessionID,
		conn:      conn,
		done:      make(chan struct{}),
		scores:    make(map[string]int),
	}
	go w.readLoop()
	return w, nil
}

// Scores returns the latest known score per player id.
func (w *ScoreWatcher) Scores() map[string]int {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]int, len(w.scores))
	for id, s := range w.scores {
		out[id] = s
	}
	return out
}

// Close stops the watcher.
func (w *ScoreWatcher) Close() {
	close(w.done)
	w.conn.Close()
}

func (w *ScoreWatcher) readLoop() {
	for {
		var ev envelope
		if err := w.conn.ReadJSON(&ev); err != nil {
			select {
			case <-w.done:
			default:
				logrus.WithField("sessionId", w.sessionID).Warn("score channel closed: ", err)
			}
			return
		}
		w.apply(ev)
	}
}

func (w *ScoreWatcher) apply(ev envelope) {
	if ev.Event != model.EventScoreUpdate {
		return
	}
	var p model.ScoreUpdatePayload
	if json.Unmarshal(ev.Payload, &p) != nil {
		return
	}
	if p.GameID != w.gameID || p.SessionID != w.sessionID {
		return
	}
	w.mu.Lock()
	w.scores[p.UserID] = p.Score
	w.mu.Unlock()
}
