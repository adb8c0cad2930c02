package board

import "strings"

// Board is the 8x8 grid of cells, indexed [row][col].
type Board [8][8]Piece

// backRank is the piece order on each side's first rank, file a to h.
var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// EmptyBoard returns a board with no pieces.
func EmptyBoard() Board {
	var b Board
	for row := range b {
		for col := range b[row] {
			b[row][col] = NoPiece
		}
	}
	return b
}

// StartingBoard returns the standard initial position.
func StartingBoard() Board {
	b := EmptyBoard()
	for col, pt := range backRank {
		b[0][col] = NewPiece(pt, Black)
		b[1][col] = BlackPawn
		b[6][col] = WhitePawn
		b[7][col] = NewPiece(pt, White)
	}
	return b
}

// At returns the piece on sq, or NoPiece for an empty or off-board square.
func (b *Board) At(sq Square) Piece {
	if !sq.OnBoard() {
		return NoPiece
	}
	return b[sq.Row][sq.Col]
}

// IsEmpty returns true if the square is empty.
func (b *Board) IsEmpty(sq Square) bool {
	return b.At(sq) == NoPiece
}

// set places a piece (or NoPiece) on a square.
func (b *Board) set(sq Square, p Piece) {
	b[sq.Row][sq.Col] = p
}

// move relocates whatever stands on from to to, clearing from.
func (b *Board) move(from, to Square) {
	b.set(to, b.At(from))
	b.set(from, NoPiece)
}

// findKing locates the king of the given color, or NoSquare.
func (b *Board) findKing(c Color) Square {
	king := NewPiece(King, c)
	for row := range b {
		for col := range b[row] {
			if b[row][col] == king {
				return NewSquare(row, col)
			}
		}
	}
	return NoSquare
}

// String returns a diagram of the board, rank 8 first.
func (b Board) String() string {
	var sb strings.Builder
	for row := range b {
		sb.WriteByte(ranks[row])
		sb.WriteString("  ")
		for col := range b[row] {
			sb.WriteString(b[row][col].String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
