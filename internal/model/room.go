package model

import "time"

// RoomInfo is the room record stored under room:<gameId>.
// The first user to join a game becomes the host.
type RoomInfo struct {
	HostUID   string    `json:"host_uid"`
	CreatedAt time.Time `json:"created_at"`
}

// Membership is one player's association with a room, stored as a
// field of the room:<gameId>:players hash. Leaving a room flips the
// exited flag; the entry itself is only removed by the cleanup sweep.
type Membership struct {
	JoinedAt time.Time `json:"joined_at"`
	Exited   bool      `json:"exited"`
}

// PlayerMap maps userId to membership for a single room.
type PlayerMap map[string]Membership

// ActiveIDs returns the ids of members that have not exited, excluding
// the given id.
func (p PlayerMap) ActiveIDs(exclude string) []string {
	ids := make([]string, 0, len(p))
	for id, m := range p {
		if id == exclude || m.Exited {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// AllExited reports whether the room holds no active member. An empty
// map counts as all-exited.
func (p PlayerMap) AllExited() bool {
	for _, m := range p {
		if !m.Exited {
			return false
		}
	}
	return true
}
