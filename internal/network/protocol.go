package network

import (
	"encoding/json"

	"github.com/gravitas-games/lightsout/internal/puzzle"
)

// Message types - Client → Server
const (
	MsgTypeNewGame = "new_game"
	MsgTypeFlip    = "flip"
	MsgTypeHint    = "hint"
	MsgTypeStats   = "stats"
	MsgTypePing    = "ping"
)

// Message types - Server → Client
const (
	MsgTypeWelcome     = "welcome"
	MsgTypeBoardState  = "board_state"
	MsgTypeHintResult  = "hint"
	MsgTypeStatsResult = "stats"
	MsgTypeError       = "error"
	MsgTypePong        = "pong"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// NewGamePayload requests a fresh board. Zero values fall back to the
// server's configured defaults.
type NewGamePayload struct {
	Rows                int     `json:"rows"`
	Cols                int     `json:"cols"`
	ChanceLightStartsOn float64 `json:"chance_light_starts_on"`
}

// FlipPayload presses the cell at (row, col) on the current board.
type FlipPayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to the client after the connection is accepted
type WelcomePayload struct {
	PlayerID string       `json:"player_id"`
	Username string       `json:"username"`
	Guest    bool         `json:"guest"`
	Defaults GameDefaults `json:"defaults"`
}

// GameDefaults echoes the configured board parameters so clients can
// render a new-game form without guessing.
type GameDefaults struct {
	Rows                int     `json:"rows"`
	Cols                int     `json:"cols"`
	ChanceLightStartsOn float64 `json:"chance_light_starts_on"`
}

// BoardStatePayload is the board snapshot sent after every state
// change. Cells is a deep copy; the client may hold on to it.
type BoardStatePayload struct {
	Cells [][]bool `json:"cells"`
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Moves int      `json:"moves"`
	Won   bool     `json:"won"`
}

// HintPayload suggests the next cell to press.
type HintPayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// StatsPayload reports a player's accumulated results.
type StatsPayload struct {
	Wins      int64 `json:"wins"`
	BestMoves int64 `json:"best_moves,omitempty"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewBoardState builds the snapshot payload for a board.
func NewBoardState(b puzzle.Board, moves int) BoardStatePayload {
	return BoardStatePayload{
		Cells: b.Clone(),
		Rows:  b.Rows(),
		Cols:  b.Cols(),
		Moves: moves,
		Won:   b.Won(),
	}
}
