package board

import "fmt"

// GameState is the authoritative state of one game. It is not safe for
// concurrent use.
type GameState struct {
	Board      Board
	SideToMove Color

	MoveHistory         []Move
	CastleRightsHistory []CastleRights // one entry per ply, plus the initial rights
	CastleRights        CastleRights

	// EnPassant is the square a pawn passed over on the previous ply, or NoSquare.
	EnPassant Square

	KingSquare [2]Square

	InCheck bool
	Pins    []Pin
	Checks  []Check

	Checkmate bool
	Stalemate bool

	enPassantHistory []Square
}

// NewGame returns a game in the standard starting position, white to move.
func NewGame() *GameState {
	return newGameFromBoard(StartingBoard(), White, AllCastleRights, NoSquare)
}

func newGameFromBoard(b Board, side Color, rights CastleRights, ep Square) *GameState {
	g := &GameState{
		Board:               b,
		SideToMove:          side,
		CastleRights:        rights,
		CastleRightsHistory: []CastleRights{rights},
		EnPassant:           ep,
		KingSquare:          [2]Square{b.findKing(White), b.findKing(Black)},
	}
	g.CheckForPinsAndChecks()
	return g
}

// CheckForPinsAndChecks analyzes the side to move's king and stores the result.
func (g *GameState) CheckForPinsAndChecks() {
	a := Analyze(&g.Board, g.KingSquare[g.SideToMove], g.SideToMove)
	g.InCheck = a.InCheck
	g.Pins = a.Pins
	g.Checks = a.Checks
}

// MakeMove applies m without checking legality.
func (g *GameState) MakeMove(m Move) {
	us := m.Moved.Color()

	g.Board.set(m.From, NoPiece)
	g.Board.set(m.To, m.Moved)
	g.MoveHistory = append(g.MoveHistory, m)
	g.SideToMove = g.SideToMove.Other()

	if m.Moved.Type() == King {
		g.KingSquare[us] = m.To
	}

	if m.Promotion {
		g.Board.set(m.To, NewPiece(promotionKind(m.PromoteTo), us))
	}

	g.enPassantHistory = append(g.enPassantHistory, g.EnPassant)
	if m.IsDoubleStep() {
		g.EnPassant = NewSquare((m.From.Row+m.To.Row)/2, m.From.Col)
	} else {
		g.EnPassant = NoSquare
	}

	if m.EnPassant {
		g.Board.set(m.CaptureSquare(), NoPiece)
	}

	if m.Castle {
		rookFrom, rookTo := m.RookSquares()
		g.Board.move(rookFrom, rookTo)
	}

	g.CastleRights.update(m)
	g.CastleRightsHistory = append(g.CastleRightsHistory, g.CastleRights)
}

// UndoMove reverses the last move. It does nothing when no move was made.
func (g *GameState) UndoMove() {
	n := len(g.MoveHistory)
	if n == 0 {
		return
	}
	m := g.MoveHistory[n-1]
	g.MoveHistory = g.MoveHistory[:n-1]

	g.Board.set(m.From, m.Moved)
	g.Board.set(m.To, m.Captured)
	g.SideToMove = g.SideToMove.Other()

	if m.Moved.Type() == King {
		g.KingSquare[m.Moved.Color()] = m.From
	}

	if m.EnPassant {
		g.Board.set(m.To, NoPiece)
		g.Board.set(m.CaptureSquare(), m.Captured)
	}

	if k := len(g.enPassantHistory); k > 0 {
		g.EnPassant = g.enPassantHistory[k-1]
		g.enPassantHistory = g.enPassantHistory[:k-1]
	} else {
		g.EnPassant = NoSquare
	}

	if k := len(g.CastleRightsHistory); k > 1 {
		g.CastleRightsHistory = g.CastleRightsHistory[:k-1]
	}
	g.CastleRights = g.CastleRightsHistory[len(g.CastleRightsHistory)-1]

	if m.Castle {
		rookFrom, rookTo := m.RookSquares()
		g.Board.move(rookTo, rookFrom)
	}
}

// promotionKind maps a requested promotion piece to the piece placed on the
// board; anything that is not a minor or major piece becomes a queen.
func promotionKind(pt PieceType) PieceType {
	switch pt {
	case Knight, Bishop, Rook, Queen:
		return pt
	}
	return Queen
}

// SquareUnderAttack reports whether the opponent of the side to move attacks sq.
func (g *GameState) SquareUnderAttack(sq Square) bool {
	return SquareAttacked(&g.Board, sq, g.SideToMove.Other())
}

// PieceAt returns the piece on sq.
func (g *GameState) PieceAt(sq Square) (Piece, error) {
	if !sq.OnBoard() {
		return NoPiece, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, sq.Row, sq.Col)
	}
	return g.Board.At(sq), nil
}

// FindMove returns the legal move from one square to another.
func (g *GameState) FindMove(from, to Square) (Move, error) {
	if err := onBoard(from, to); err != nil {
		return Move{}, err
	}
	return SelectMove(g.ValidMoves(), from, to, NoPieceType)
}

func onBoard(squares ...Square) error {
	for _, sq := range squares {
		if !sq.OnBoard() {
			return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, sq.Row, sq.Col)
		}
	}
	return nil
}

// SelectMove picks the move from one square to another out of a legal move
// list and applies the promotion choice to it. promo must be NoPieceType
// (queen) or a knight, bishop, rook or queen.
func SelectMove(moves []Move, from, to Square, promo PieceType) (Move, error) {
	switch promo {
	case NoPieceType, Knight, Bishop, Rook, Queen:
	default:
		return Move{}, fmt.Errorf("%w: %s", ErrInvalidPromotion, promo)
	}
	for _, m := range moves {
		if m.From == from && m.To == to {
			if m.Promotion {
				m.PromoteTo = promotionKind(promo)
			}
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
}

// Play validates and applies the move from one square to another. promo
// selects the promotion piece; NoPieceType means queen. The state is left
// unchanged on error.
func (g *GameState) Play(from, to Square, promo PieceType) (Move, error) {
	if err := onBoard(from, to); err != nil {
		return Move{}, err
	}
	m, err := SelectMove(g.ValidMoves(), from, to, promo)
	if err != nil {
		return Move{}, err
	}
	g.MakeMove(m)
	g.ValidMoves()
	return m, nil
}

// Outcome returns the result as of the last ValidMoves call: "1-0", "0-1",
// "1/2-1/2" or "*" while the game is running.
func (g *GameState) Outcome() string {
	switch {
	case g.Checkmate && g.SideToMove == White:
		return "0-1"
	case g.Checkmate:
		return "1-0"
	case g.Stalemate:
		return "1/2-1/2"
	}
	return "*"
}

// LastMove returns the most recently played move.
func (g *GameState) LastMove() (Move, bool) {
	if len(g.MoveHistory) == 0 {
		return Move{}, false
	}
	return g.MoveHistory[len(g.MoveHistory)-1], true
}

// Plies returns the number of half-moves played.
func (g *GameState) Plies() int {
	return len(g.MoveHistory)
}
