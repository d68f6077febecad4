package server

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gravitas-games/lightsout/internal/config"
	"github.com/gravitas-games/lightsout/internal/network"
	"github.com/gravitas-games/lightsout/internal/puzzle"
	"github.com/gravitas-games/lightsout/internal/solver"
	"github.com/gravitas-games/lightsout/pkg/models"
)

// Session errors surfaced to the client as error events.
var (
	ErrNoGame      = errors.New("no active game")
	ErrGameWon     = errors.New("game already won")
	ErrOutOfBounds = errors.New("coordinates outside the board")
)

// Session owns one player's current game. The engine itself is purely
// functional; the session holds the board between moves, counts them,
// and refuses input once the board is won.
type Session struct {
	Player    *models.Player
	CreatedAt time.Time

	mu    sync.Mutex
	board puzzle.Board
	moves int

	rng      puzzle.Rand
	defaults config.GameConfig
}

// NewSession creates a session for an authenticated player.
func NewSession(player *models.Player, defaults config.GameConfig, rng puzzle.Rand) *Session {
	return &Session{
		Player:    player,
		CreatedAt: time.Now(),
		rng:       rng,
		defaults:  defaults,
	}
}

// NewGame replaces the session's board with a freshly scrambled one.
// Zero dimensions and a zero chance fall back to the configured
// defaults; anything else is validated against the server limits.
func (s *Session) NewGame(rows, cols int, chance float64) (network.BoardStatePayload, error) {
	if rows == 0 {
		rows = s.defaults.Rows
	}
	if cols == 0 {
		cols = s.defaults.Cols
	}
	if chance == 0 {
		chance = s.defaults.ChanceLightStartsOn
	}

	if rows < 0 || cols < 0 || rows > s.defaults.MaxRows || cols > s.defaults.MaxCols {
		return network.BoardStatePayload{}, fmt.Errorf("dimensions %dx%d outside accepted range 1x1..%dx%d",
			rows, cols, s.defaults.MaxRows, s.defaults.MaxCols)
	}

	board, err := puzzle.NewRandom(rows, cols, chance, s.rng)
	if err != nil {
		return network.BoardStatePayload{}, err
	}

	s.mu.Lock()
	s.board = board
	s.moves = 0
	s.mu.Unlock()

	log.Printf("Player %s started a %dx%d game (chance %v)", s.Player.ID, rows, cols, chance)
	return network.NewBoardState(board, 0), nil
}

// Flip presses the cell at (row, col). The flip the engine applies is
// tolerant of out-of-bounds coordinates, but a client sending them is
// broken, so the session rejects them before they reach the board.
// A won session stays won until the next NewGame.
func (s *Session) Flip(row, col int) (network.BoardStatePayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.board == nil {
		return network.BoardStatePayload{}, ErrNoGame
	}
	if s.board.Won() {
		return network.BoardStatePayload{}, ErrGameWon
	}
	if !s.board.InBounds(row, col) {
		return network.BoardStatePayload{}, ErrOutOfBounds
	}

	s.board = s.board.FlipAround(row, col)
	s.moves++

	return network.NewBoardState(s.board, s.moves), nil
}

// Hint returns the next press of a minimal solution for the current
// board.
func (s *Session) Hint() (solver.Press, error) {
	s.mu.Lock()
	board := s.board
	s.mu.Unlock()

	if board == nil {
		return solver.Press{}, ErrNoGame
	}
	if board.Won() {
		return solver.Press{}, ErrGameWon
	}

	press, ok := solver.Hint(board)
	if !ok {
		return solver.Press{}, fmt.Errorf("no solution for the current board")
	}
	return press, nil
}

// Snapshot returns the current board state, or false when no game has
// been started yet.
func (s *Session) Snapshot() (network.BoardStatePayload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.board == nil {
		return network.BoardStatePayload{}, false
	}
	return network.NewBoardState(s.board, s.moves), true
}

// Moves returns the number of presses applied to the current board.
func (s *Session) Moves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moves
}
