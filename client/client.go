// Package client is the Go client for the gamehub API: it joins rooms,
// follows room and score channels over WebSocket and exposes the
// resulting state to callers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"gamehub/internal/model"
)

// Client is a configured API client. It is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client against the given base URL (e.g.
// "http://localhost:8080") using the given session token. Use Login to
// obtain a token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Login obtains a session token for the username, creating the account
// when it does not exist.
func Login(ctx context.Context, baseURL, username string) (*model.LoginResponse, error) {
	c := New(baseURL, "")
	var resp model.LoginResponse
	if err := c.post(ctx, "/v1/auth/login", model.LoginRequest{Username: username}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// envelope is the wire format delivered on WebSocket channels.
type envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		body, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// dial opens a WebSocket subscription to the named channel.
func (c *Client) dial(ctx context.Context, channel string) (*websocket.Conn, error) {
	wsBase := c.baseURL
	switch {
	case strings.HasPrefix(wsBase, "https://"):
		wsBase = "wss://" + strings.TrimPrefix(wsBase, "https://")
	case strings.HasPrefix(wsBase, "http://"):
		wsBase = "ws://" + strings.TrimPrefix(wsBase, "http://")
	}
	url := fmt.Sprintf("%s/v1/ws/%s?token=%s", wsBase, channel, c.token)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	return conn, err
}

// Games returns the catalog, optionally filtered to one game code.
func (c *Client) Games(ctx context.Context, code string) ([]*model.Game, error) {
	path := "/v1/games"
	if code != "" {
		path += "?gameId=" + code
	}
	var resp struct {
		Games []*model.Game `json:"games"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Games, nil
}

// Leaderboard returns the session's scores, best first.
func (c *Client) Leaderboard(ctx context.Context, gameID, sessionID string) ([]*model.LeaderboardRow, error) {
	var resp struct {
		Leaderboard []*model.LeaderboardRow `json:"leaderboard"`
	}
	path := fmt.Sprintf("/v1/leaderboard?gameId=%s&sessionId=%s", gameID, sessionID)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Leaderboard, nil
}
