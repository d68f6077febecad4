package puzzle

import "fmt"

// Board is a rectangular grid of boolean cells. A true cell is lit,
// a false cell is unlit. Rows and columns are zero-indexed and the
// dimensions are fixed for the lifetime of a game.
type Board [][]bool

// Rand is the random source used by NewRandom. *math/rand.Rand
// satisfies it, so tests can inject a seeded source.
type Rand interface {
	Float64() float64
}

// New creates an all-on board with the given dimensions.
func New(rows, cols int) (Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid board dimensions %dx%d", rows, cols)
	}

	b := make(Board, rows)
	for r := 0; r < rows; r++ {
		b[r] = make([]bool, cols)
		for c := 0; c < cols; c++ {
			b[r][c] = true
		}
	}
	return b, nil
}

// NewRandom creates the initial board for a new game: an all-on grid
// perturbed by flipping each coordinate's neighborhood with the given
// probability, visiting coordinates in row-major order. Because every
// perturbation is itself a legal move, the result is always solvable.
func NewRandom(rows, cols int, chance float64, rng Rand) (Board, error) {
	if chance < 0 || chance > 1 {
		return nil, fmt.Errorf("chance %v outside [0,1]", chance)
	}

	b, err := New(rows, cols)
	if err != nil {
		return nil, err
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rng.Float64() < chance {
				b = b.FlipAround(r, c)
			}
		}
	}
	return b, nil
}

// FlipAround returns a new board with the cell at (row, col) and its
// four orthogonal neighbors inverted. Coordinates outside the grid are
// skipped silently, so edge and corner presses just flip fewer cells.
// The receiver is never mutated; the result shares no storage with it,
// which lets callers detect a move by identity.
func (b Board) FlipAround(row, col int) Board {
	out := b.Clone()

	flip := func(r, c int) {
		if b.InBounds(r, c) {
			out[r][c] = !out[r][c]
		}
	}

	flip(row, col)
	flip(row-1, col)
	flip(row+1, col)
	flip(row, col-1)
	flip(row, col+1)

	return out
}

// Won reports whether every cell on the board is lit.
func (b Board) Won() bool {
	for _, row := range b {
		for _, lit := range row {
			if !lit {
				return false
			}
		}
	}
	return true
}

// Rows returns the number of rows.
func (b Board) Rows() int {
	return len(b)
}

// Cols returns the number of columns.
func (b Board) Cols() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// InBounds reports whether (row, col) lies inside the grid.
func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Rows() && col >= 0 && col < b.Cols()
}

// Clone returns a deep copy of the board, independent rows included.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for r, row := range b {
		out[r] = make([]bool, len(row))
		copy(out[r], row)
	}
	return out
}

// Equal reports whether two boards have identical dimensions and cells.
func (b Board) Equal(other Board) bool {
	if len(b) != len(other) {
		return false
	}
	for r, row := range b {
		if len(row) != len(other[r]) {
			return false
		}
		for c, lit := range row {
			if lit != other[r][c] {
				return false
			}
		}
	}
	return true
}
