package server

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/gravitas-games/lightsout/internal/config"
	"github.com/gravitas-games/lightsout/pkg/models"
)

func testDefaults() config.GameConfig {
	return config.GameConfig{
		Rows:                5,
		Cols:                5,
		ChanceLightStartsOn: 0.25,
		MaxRows:             20,
		MaxCols:             20,
	}
}

func testSession(seed int64) *Session {
	player := &models.Player{ID: "p1", Username: "tester"}
	return NewSession(player, testDefaults(), rand.New(rand.NewSource(seed)))
}

func TestSessionNewGameDefaults(t *testing.T) {
	s := testSession(1)

	state, err := s.NewGame(0, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Rows != 5 || state.Cols != 5 {
		t.Fatalf("expected default 5x5 board, got %dx%d", state.Rows, state.Cols)
	}
	if state.Moves != 0 {
		t.Fatalf("new game should start at zero moves, got %d", state.Moves)
	}
}

func TestSessionNewGameRejectsOversizedBoard(t *testing.T) {
	s := testSession(1)

	if _, err := s.NewGame(100, 5, 0.25); err == nil {
		t.Fatalf("expected error for oversized board, got nil")
	}
	if _, err := s.NewGame(5, 5, 2); err == nil {
		t.Fatalf("expected error for chance outside [0,1], got nil")
	}
}

func TestSessionFlipWithoutGame(t *testing.T) {
	s := testSession(1)

	if _, err := s.Flip(0, 0); !errors.Is(err, ErrNoGame) {
		t.Fatalf("expected ErrNoGame, got %v", err)
	}
	if _, err := s.Hint(); !errors.Is(err, ErrNoGame) {
		t.Fatalf("expected ErrNoGame from Hint, got %v", err)
	}
}

func TestSessionFlipCountsMovesAndCopies(t *testing.T) {
	s := testSession(7)
	if _, err := s.NewGame(3, 3, 0.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := s.Flip(1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Moves != 1 {
		t.Fatalf("expected 1 move, got %d", first.Moves)
	}

	// The snapshot must be independent of the session's board.
	first.Cells[0][0] = !first.Cells[0][0]
	again, _ := s.Snapshot()
	if again.Cells[0][0] == first.Cells[0][0] {
		t.Fatalf("snapshot aliases the session board")
	}
}

func TestSessionFlipOutOfBounds(t *testing.T) {
	s := testSession(1)
	if _, err := s.NewGame(3, 3, 0.25); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := s.Flip(-1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := s.Flip(0, 3); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestSessionWonIsTerminal(t *testing.T) {
	s := testSession(1)

	// chance 0 keeps the board all-on, so a 1x1 game is winnable in
	// two presses: off, then on again.
	if _, err := s.NewGame(1, 1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, err := s.Flip(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Won {
		t.Fatalf("board should be off after one press")
	}

	state, err = s.Flip(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state.Won || state.Moves != 2 {
		t.Fatalf("expected win after two presses, got %+v", state)
	}

	// Won is terminal until the next NewGame.
	if _, err := s.Flip(0, 0); !errors.Is(err, ErrGameWon) {
		t.Fatalf("expected ErrGameWon, got %v", err)
	}
	if _, err := s.Hint(); !errors.Is(err, ErrGameWon) {
		t.Fatalf("expected ErrGameWon from Hint, got %v", err)
	}

	if _, err := s.NewGame(1, 1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Moves() != 0 {
		t.Fatalf("NewGame should reset the move counter")
	}
}

func TestSessionHintSolvesBoard(t *testing.T) {
	s := testSession(42)
	state, err := s.NewGame(5, 5, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Follow hints to the end; a fresh scramble is always solvable,
	// so this must terminate well before the press-count bound.
	for presses := 0; !state.Won; presses++ {
		if presses > 25*25 {
			t.Fatalf("hints did not converge")
		}
		press, err := s.Hint()
		if err != nil {
			t.Fatalf("unexpected hint error: %v", err)
		}
		state, err = s.Flip(press.Row, press.Col)
		if err != nil {
			t.Fatalf("unexpected flip error: %v", err)
		}
	}
}
