package puzzle

import (
	"math/rand"
	"testing"
)

func TestNewAllOn(t *testing.T) {
	b, err := New(3, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Rows() != 3 || b.Cols() != 4 {
		t.Fatalf("expected 3x4 board, got %dx%d", b.Rows(), b.Cols())
	}
	if !b.Won() {
		t.Fatalf("all-on board should satisfy the win condition")
	}
}

func TestNewRejectsBadDimensions(t *testing.T) {
	cases := [][2]int{{0, 5}, {5, 0}, {-1, 5}, {5, -3}, {0, 0}}
	for _, dims := range cases {
		if _, err := New(dims[0], dims[1]); err == nil {
			t.Fatalf("expected error for dimensions %dx%d, got nil", dims[0], dims[1])
		}
	}
}

func TestNewRandomRejectsBadChance(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, chance := range []float64{-0.1, 1.1, 2} {
		if _, err := NewRandom(5, 5, chance, rng); err == nil {
			t.Fatalf("expected error for chance %v, got nil", chance)
		}
	}
}

func TestWonDetectsOffCell(t *testing.T) {
	b, _ := New(2, 2)
	b[1][0] = false
	if b.Won() {
		t.Fatalf("board with an off cell should not be won")
	}
}

func TestFlipAroundCenter(t *testing.T) {
	b, _ := New(3, 3)
	got := b.FlipAround(1, 1)

	want := Board{
		{true, false, true},
		{false, false, false},
		{true, false, true},
	}
	if !got.Equal(want) {
		t.Fatalf("center flip mismatch: got %v, want %v", got, want)
	}
}

func TestFlipAroundIsItsOwnInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b, _ := NewRandom(4, 5, 0.5, rng)

	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			twice := b.FlipAround(r, c).FlipAround(r, c)
			if !twice.Equal(b) {
				t.Fatalf("double flip at (%d,%d) did not restore the board", r, c)
			}
		}
	}
}

func TestFlipAroundDoesNotMutateInput(t *testing.T) {
	b, _ := New(3, 3)
	before := b.Clone()

	_ = b.FlipAround(1, 1)

	if !b.Equal(before) {
		t.Fatalf("input board was mutated by FlipAround")
	}
}

func TestFlipAroundReturnsIndependentRows(t *testing.T) {
	b, _ := New(2, 2)
	out := b.FlipAround(0, 0)

	out[1][1] = !out[1][1]
	if b[1][1] != true {
		t.Fatalf("result rows alias the input rows")
	}
}

func TestFlipAroundOutOfBoundsCenter(t *testing.T) {
	b, _ := New(3, 3)

	// Pressing just above the grid only reaches (0,1).
	got := b.FlipAround(-1, 1)
	want := Board{
		{true, false, true},
		{true, true, true},
		{true, true, true},
	}
	if !got.Equal(want) {
		t.Fatalf("out-of-bounds center flip mismatch: got %v, want %v", got, want)
	}

	// A press far outside touches nothing.
	if !b.FlipAround(10, 10).Equal(b) {
		t.Fatalf("fully out-of-bounds press should leave the board unchanged")
	}
}

func TestSingleCellBoard(t *testing.T) {
	b, _ := New(1, 1)

	off := b.FlipAround(0, 0)
	if off[0][0] || off.Won() {
		t.Fatalf("expected [[false]] after one press, got %v", off)
	}

	on := off.FlipAround(0, 0)
	if !on[0][0] || !on.Won() {
		t.Fatalf("expected [[true]] after two presses, got %v", on)
	}
}

func TestNewRandomChanceZero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b, err := NewRandom(4, 6, 0, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Rows() != 4 || b.Cols() != 6 || !b.Won() {
		t.Fatalf("chance 0 should produce an all-on 4x6 board, got %v", b)
	}
}

func TestNewRandomChanceOne(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b, err := NewRandom(3, 3, 1, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// With probability one, every coordinate's neighborhood is flipped
	// exactly once. Simulate that directly and compare.
	want, _ := New(3, 3)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			want = want.FlipAround(r, c)
		}
	}
	if !b.Equal(want) {
		t.Fatalf("chance 1 mismatch: got %v, want %v", b, want)
	}
}

func TestNewRandomDeterministicWithSeed(t *testing.T) {
	a, _ := NewRandom(5, 5, 0.25, rand.New(rand.NewSource(42)))
	b, _ := NewRandom(5, 5, 0.25, rand.New(rand.NewSource(42)))
	if !a.Equal(b) {
		t.Fatalf("same seed should produce the same board")
	}
}
