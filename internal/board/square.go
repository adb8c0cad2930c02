// Package board implements the chess rules: an 8x8 board, fully legal move
// generation, move application and reversal, and checkmate/stalemate detection.
package board

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Square addresses a cell of the board.
// Row 0 is rank 8 (black's back rank) and Col 0 is file a.
type Square struct {
	Row, Col int
}

// NoSquare marks the absence of a square, e.g. no en passant target.
var NoSquare = Square{Row: -1, Col: -1}

// files and ranks map columns and rows to algebraic notation.
const (
	files = "abcdefgh"
	ranks = "87654321"
)

// NewSquare creates a square from row and column (0-indexed).
func NewSquare(row, col int) Square {
	return Square{Row: row, Col: col}
}

// OnBoard returns true if the square lies inside the 8x8 board.
func (sq Square) OnBoard() bool {
	return sq.Row >= 0 && sq.Row < 8 && sq.Col >= 0 && sq.Col < 8
}

// Offset returns the square displaced by the given direction n times.
func (sq Square) Offset(d Direction, n int) Square {
	return Square{Row: sq.Row + d.DRow*n, Col: sq.Col + d.DCol*n}
}

// Distance returns the Manhattan distance to o.
func (sq Square) Distance(o Square) int {
	return abs(o.Row-sq.Row) + abs(o.Col-sq.Col)
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.OnBoard() {
		return "-"
	}
	return string([]byte{files[sq.Col], ranks[sq.Row]})
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: square %q", ErrOutOfBounds, s)
	}

	col := int(s[0]) - 'a'
	row := '8' - int(s[1])

	sq := NewSquare(row, col)
	if !sq.OnBoard() {
		return NoSquare, fmt.Errorf("%w: square %q", ErrOutOfBounds, s)
	}
	return sq, nil
}

// Direction is a unit step on the board.
type Direction struct {
	DRow, DCol int
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return Direction{DRow: -d.DRow, DCol: -d.DCol}
}

// IsZero reports whether d carries no ray (knight checks).
func (d Direction) IsZero() bool {
	return d.DRow == 0 && d.DCol == 0
}

// Diagonal reports whether d is one of the four diagonal steps.
func (d Direction) Diagonal() bool {
	return d.DRow != 0 && d.DCol != 0
}

// alignedWith reports whether d runs along the same line as o, in either sense.
func (d Direction) alignedWith(o Direction) bool {
	return d == o || d == o.Reverse()
}

// Direction tables. The first four rays are orthogonal and the last four
// diagonal; attack analysis relies on that split.
var (
	orthogonalDirs = []Direction{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}
	diagonalDirs   = []Direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	allDirs        = append(append([]Direction{}, orthogonalDirs...), diagonalDirs...)
	knightOffsets  = []Direction{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
)

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
