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

// errDisplayDuration is how long a received error message stays
// visible before it self-clears.
const errDisplayDuration = 5 * time.Second

// RoomState is the controller's lifecycle state.
type RoomState int

const (
	StateDisconnected RoomState = iota
	StateConnecting
	StateJoined
	StateGameStarted
	StateLeft
)

// RoomController tracks one room's live state: membership, the host
// flag, the active session and transient errors. State is refreshed by
// push events and is eventually consistent with the server.
type RoomController struct {
	client *Client
	gameID string
	userID string

	conn *websocket.Conn
	done chan struct{}

	mu        sync.Mutex
	state     RoomState
	players   model.PlayerMap
	isHost    bool
	started   bool
	sessionID string
	errMsg    string
	errTimer  *time.Timer
}

// JoinRoom subscribes to the room channel and joins the room. The
// returned controller keeps following events until Leave is called.
func (c *Client) JoinRoom(ctx context.Context, gameID, userID string) (*RoomController, error) {
	rc := &RoomController{
		client:  c,
		gameID:  gameID,
		userID:  userID,
		state:   StateConnecting,
		players: model.PlayerMap{},
		done:    make(chan struct{}),
	}

	conn, err := c.dial(ctx, model.GameChannel(gameID))
	if err != nil {
		rc.state = StateDisconnected
		return nil, err
	}
	rc.conn = conn
	go rc.readLoop()

	if err := c.post(ctx, "/v1/room/join", map[string]string{"gameId": gameID}, nil); err != nil {
		conn.Close()
		return nil, err
	}

	rc.mu.Lock()
	rc.state = StateJoined
	rc.mu.Unlock()
	return rc, nil
}

// Leave issues the leave call fire-and-forget, unsubscribes and stops
// the controller. Navigation away must never block on the server.
func (rc *RoomController) Leave() {
	rc.mu.Lock()
	if rc.state == StateLeft {
		rc.mu.Unlock()
		return
	}
	rc.state = StateLeft
	rc.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rc.client.post(ctx, "/v1/room/leave", map[string]string{"gameId": rc.gameID}, nil); err != nil {
			logrus.WithField("gameId", rc.gameID).Warn("leave room failed: ", err)
		}
	}()

	close(rc.done)
	rc.conn.Close()
}

// StartGame starts a scored session. It is a no-op returning empty
// values unless the local host flag is set.
func (rc *RoomController) StartGame(ctx context.Context) (string, []string, error) {
	if !rc.IsHost() {
		return "", nil, nil
	}
	var resp struct {
		SessionID string   `json:"sessionId"`
		Players   []string `json:"players"`
	}
	err := rc.client.post(ctx, "/v1/start-game", map[string]string{"gameId": rc.gameID}, &resp)
	if err != nil {
		return "", nil, err
	}
	return resp.SessionID, resp.Players, nil
}

// UpdateScore overwrites the caller's score for the active session. It
// is a no-op until a session id is known.
func (rc *RoomController) UpdateScore(ctx context.Context, score int) error {
	sessionID := rc.SessionID()
	if sessionID == "" {
		return nil
	}
	return rc.client.post(ctx, "/v1/update-score", map[string]interface{}{
		"gameId":    rc.gameID,
		"sessionId": sessionID,
		"score":     score,
	}, nil)
}

// Players returns the last received membership map.
func (rc *RoomController) Players() model.PlayerMap {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	out := make(model.PlayerMap, len(rc.players))
	for id, m := range rc.players {
		out[id] = m
	}
	return out
}

// IsHost reports whether this user is the room's host.
func (rc *RoomController) IsHost() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.isHost
}

// Started reports whether a session has started.
func (rc *RoomController) Started() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.started
}

// SessionID returns the active session id, or "" before game start.
func (rc *RoomController) SessionID() string {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.sessionID
}

// Err returns the current transient error message, or "". Messages
// clear themselves after five seconds.
func (rc *RoomController) Err() string {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.errMsg
}

// State returns the controller's lifecycle state.
func (rc *RoomController) State() RoomState {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.state
}

func (rc *RoomController) readLoop() {
	for {
		var ev envelope
		if err := rc.conn.ReadJSON(&ev); err != nil {
			select {
			case <-rc.done:
			default:
				logrus.WithField("gameId", rc.gameID).Warn("room channel closed: ", err)
			}
			return
		}
		rc.dispatch(ev)
	}
}

// dispatch applies one received event to local state. become-host and
// a room-info naming this user are not mutually exclusive; either one
// sets the host flag.
func (rc *RoomController) dispatch(ev envelope) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	switch ev.Event {
	case model.EventPlayersUpdate:
		var p model.PlayersUpdatePayload
		if json.Unmarshal(ev.Payload, &p) != nil || p.GameID != rc.gameID {
			return
		}
		rc.players = p.Players

	case model.EventBecomeHost:
		var p model.BecomeHostPayload
		if json.Unmarshal(ev.Payload, &p) != nil || p.GameID != rc.gameID {
			return
		}
		// UserID is empty on room creation (addressed to the creator,
		// the only subscriber at that point) and set on succession.
		if p.UserID == "" || p.UserID == rc.userID {
			rc.isHost = true
		}

	case model.EventRoomInfo:
		var p model.RoomInfoPayload
		if json.Unmarshal(ev.Payload, &p) != nil || p.RoomInfo == nil {
			return
		}
		if p.RoomInfo.HostUID == rc.userID {
			rc.isHost = true
		}

	case model.EventGameStarted:
		var p model.GameStartedPayload
		if json.Unmarshal(ev.Payload, &p) != nil || p.GameID != rc.gameID {
			return
		}
		rc.started = true
		rc.sessionID = p.SessionID
		if rc.state == StateJoined {
			rc.state = StateGameStarted
		}

	case model.EventError:
		var p model.ErrorPayload
		if json.Unmarshal(ev.Payload, &p) != nil {
			return
		}
		rc.errMsg = p.Message
		if rc.errTimer != nil {
			rc.errTimer.Stop()
		}
		rc.errTimer = time.AfterFunc(errDisplayDuration, func() {
			rc.mu.Lock()
			rc.errMsg = ""
			rc.mu.Unlock()
		})
	}
}
