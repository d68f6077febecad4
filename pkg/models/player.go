package models

import "time"

// Player represents a connected player
type Player struct {
	// Identity, from JWT claims or generated for guests
	ID       string `json:"id"`
	Username string `json:"username"`
	Guest    bool   `json:"guest"`

	// Connection state
	Connected   bool      `json:"connected"`
	ConnectedAt time.Time `json:"connected_at"`
}

// Stats holds a player's accumulated puzzle results.
type Stats struct {
	Wins      int64 `json:"wins"`
	BestMoves int64 `json:"best_moves,omitempty"` // 0 means no recorded solve
}
