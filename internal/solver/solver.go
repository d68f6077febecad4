package solver

import (
	"github.com/gravitas-games/lightsout/internal/puzzle"
)

// maxChaseCols bounds the first-row enumeration. Beyond this width the
// 2^cols search is no longer interactive.
const maxChaseCols = 20

// Press identifies a single cell press.
type Press struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Solve returns a minimal set of presses that drives the board to the
// all-on state, or false if the board is unsolvable or too wide.
//
// It uses light chasing: fix a press pattern for the first row, then for
// each following row press exactly the cells below unlit ones, which
// lights everything above the last row. Every solution is determined by
// its first-row presses, so enumerating those patterns and keeping the
// shortest result is exhaustive.
func Solve(b puzzle.Board) ([]Press, bool) {
	rows, cols := b.Rows(), b.Cols()
	if rows == 0 || cols == 0 || cols > maxChaseCols {
		return nil, false
	}
	if b.Won() {
		return []Press{}, true
	}

	var best []Press
	for mask := 0; mask < 1<<uint(cols); mask++ {
		work := b.Clone()
		var presses []Press

		press := func(r, c int) {
			for _, n := range [5][2]int{{r, c}, {r - 1, c}, {r + 1, c}, {r, c - 1}, {r, c + 1}} {
				if work.InBounds(n[0], n[1]) {
					work[n[0]][n[1]] = !work[n[0]][n[1]]
				}
			}
			presses = append(presses, Press{Row: r, Col: c})
		}

		for c := 0; c < cols; c++ {
			if mask>>uint(c)&1 == 1 {
				press(0, c)
			}
		}
		for r := 1; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if !work[r-1][c] {
					press(r, c)
				}
			}
		}

		if work.Won() && (best == nil || len(presses) < len(best)) {
			best = presses
		}
	}

	if best == nil {
		return nil, false
	}
	return best, true
}

// Hint returns one press from a minimal solution of the board. It
// returns false when the board is already won or cannot be solved.
func Hint(b puzzle.Board) (Press, bool) {
	presses, ok := Solve(b)
	if !ok || len(presses) == 0 {
		return Press{}, false
	}
	return presses[0], true
}
