package service

import "errors"

var (
	// ErrRoomNotFound is returned when an operation targets a game id
	// with no room record.
	ErrRoomNotFound = errors.New("room not found")

	// ErrNotHost is returned when a non-host attempts a host-only
	// operation.
	ErrNotHost = errors.New("only the host can start the game")

	// ErrInvalidToken is returned for a missing, malformed or expired
	// session token.
	ErrInvalidToken = errors.New("invalid or expired token")
)
