package board

// Move describes a single ply. Moves are produced by the generator and carry
// everything needed to apply and reverse them.
type Move struct {
	From, To Square

	Moved    Piece
	Captured Piece // NoPiece for quiet moves; the passed pawn for en passant

	EnPassant bool
	Castle    bool
	Promotion bool
	PromoteTo PieceType // only meaningful when Promotion is set
}

// newMove creates a move from the board contents at generation time.
func newMove(b *Board, from, to Square) Move {
	return Move{
		From:     from,
		To:       to,
		Moved:    b.At(from),
		Captured: b.At(to),
	}
}

// newEnPassant creates an en passant capture. The destination cell is empty,
// so the captured pawn is synthesized from the mover's color.
func newEnPassant(b *Board, from, to Square) Move {
	m := newMove(b, from, to)
	m.Captured = NewPiece(Pawn, m.Moved.Color().Other())
	m.EnPassant = true
	return m
}

// newCastle creates a castling move (the king's movement).
func newCastle(b *Board, from, to Square) Move {
	m := newMove(b, from, to)
	m.Castle = true
	return m
}

// Equal compares moves structurally: squares, pieces and special-move flags.
// The promotion choice is not part of a move's identity.
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To &&
		m.Moved == o.Moved && m.Captured == o.Captured &&
		m.EnPassant == o.EnPassant && m.Castle == o.Castle && m.Promotion == o.Promotion
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m.Captured != NoPiece
}

// CaptureSquare returns the square the captured piece stands on. It differs
// from To only for en passant.
func (m Move) CaptureSquare() Square {
	if m.EnPassant {
		return NewSquare(m.From.Row, m.To.Col)
	}
	return m.To
}

// IsDoubleStep returns true for a two-square pawn advance.
func (m Move) IsDoubleStep() bool {
	return m.Moved.Type() == Pawn && abs(m.To.Row-m.From.Row) == 2
}

// RookSquares returns the rook's origin and destination for a castling move.
func (m Move) RookSquares() (from, to Square) {
	if m.To.Col > m.From.Col {
		return NewSquare(m.From.Row, 7), NewSquare(m.From.Row, 5)
	}
	return NewSquare(m.From.Row, 0), NewSquare(m.From.Row, 3)
}

// Notation returns the origin square followed by the destination (e.g. "e2e4").
func (m Move) Notation() string {
	return m.From.String() + m.To.String()
}

// String implements the fmt.Stringer interface.
func (m Move) String() string {
	return m.Notation()
}
