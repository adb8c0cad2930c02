package board

// generator produces moves for one color. Three modes share the per-piece
// code:
//   - legal: pins restrict movement and king steps must be safe
//   - loose: piece movement only, no pins or king safety
//   - attack: the squares each piece attacks, including empty pawn diagonals
//     and squares held by friendly pieces
type generator struct {
	b      *Board
	us     Color
	pins   []Pin
	ep     Square
	loose  bool
	attack bool

	moves []Move
}

// pseudoLegalMoves generates the moves of color us that respect piece
// movement, the given pins and king safety. Check evasion and castling are
// handled by the caller.
func pseudoLegalMoves(b *Board, us Color, pins []Pin, ep Square) []Move {
	g := generator{b: b, us: us, pins: pins, ep: ep}
	g.run()
	return g.moves
}

// run walks the board row by row and dispatches on the piece type.
func (g *generator) run() {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := g.b[row][col]
			if p.IsEmpty() || p.Color() != g.us {
				continue
			}
			from := NewSquare(row, col)
			switch p.Type() {
			case Pawn:
				g.pawn(from)
			case Knight:
				g.knight(from)
			case Bishop:
				g.slider(from, diagonalDirs)
			case Rook:
				g.slider(from, orthogonalDirs)
			case Queen:
				g.slider(from, allDirs)
			case King:
				g.king(from)
			}
		}
	}
}

// pinned returns the pin direction for the piece on sq, if it is pinned.
func (g *generator) pinned(sq Square) (Direction, bool) {
	if g.loose || g.attack {
		return Direction{}, false
	}
	for _, p := range g.pins {
		if p.Square == sq {
			return p.Dir, true
		}
	}
	return Direction{}, false
}

// reachable reports whether to is empty or holds a piece the mover may take.
func (g *generator) reachable(to Square) bool {
	t := g.b.At(to)
	return t.IsEmpty() || t.Color() != g.us || g.attack
}

func (g *generator) add(m Move) {
	g.moves = append(g.moves, m)
}

// addPawn adds a pawn move, flagging it as a queen promotion on the far row.
func (g *generator) addPawn(from, to Square) {
	m := newMove(g.b, from, to)
	if to.Row == g.us.Other().backRow() {
		m.Promotion = true
		m.PromoteTo = Queen
	}
	g.add(m)
}

func (g *generator) pawn(from Square) {
	fwd := g.us.forward()
	pin, isPinned := g.pinned(from)
	allowed := func(d Direction) bool {
		return !isPinned || d.alignedWith(pin)
	}

	push := Direction{DRow: fwd}
	if !g.attack && allowed(push) {
		one := from.Offset(push, 1)
		if one.OnBoard() && g.b.IsEmpty(one) {
			g.addPawn(from, one)
			two := from.Offset(push, 2)
			if from.Row == g.us.pawnStartRow() && g.b.IsEmpty(two) {
				g.add(newMove(g.b, from, two))
			}
		}
	}

	for _, dc := range [2]int{-1, 1} {
		d := Direction{DRow: fwd, DCol: dc}
		to := from.Offset(d, 1)
		if !to.OnBoard() || !allowed(d) {
			continue
		}
		if g.attack {
			g.add(newMove(g.b, from, to))
			continue
		}
		t := g.b.At(to)
		switch {
		case !t.IsEmpty() && t.Color() != g.us:
			g.addPawn(from, to)
		case t.IsEmpty() && to == g.ep:
			g.add(newEnPassant(g.b, from, to))
		}
	}
}

func (g *generator) knight(from Square) {
	if _, isPinned := g.pinned(from); isPinned {
		return
	}
	for _, o := range knightOffsets {
		to := from.Offset(o, 1)
		if to.OnBoard() && g.reachable(to) {
			g.add(newMove(g.b, from, to))
		}
	}
}

func (g *generator) slider(from Square, dirs []Direction) {
	pin, isPinned := g.pinned(from)
	for _, d := range dirs {
		if isPinned && !d.alignedWith(pin) {
			continue
		}
		for n := 1; n < 8; n++ {
			to := from.Offset(d, n)
			if !to.OnBoard() {
				break
			}
			if g.b.IsEmpty(to) {
				g.add(newMove(g.b, from, to))
				continue
			}
			if g.reachable(to) {
				g.add(newMove(g.b, from, to))
			}
			break
		}
	}
}

func (g *generator) king(from Square) {
	for _, d := range allDirs {
		to := from.Offset(d, 1)
		if !to.OnBoard() || !g.reachable(to) {
			continue
		}
		if !g.attack && !g.loose && !kingSafeAt(g.b, from, to, g.us) {
			continue
		}
		g.add(newMove(g.b, from, to))
	}
}

// castleMoves returns the castling moves available to the side to move.
// Castling is never generated while in check.
func (g *GameState) castleMoves() []Move {
	if g.InCheck {
		return nil
	}
	us := g.SideToMove
	them := us.Other()
	king := g.KingSquare[us]
	east, west := Direction{DCol: 1}, Direction{DCol: -1}

	var moves []Move
	if g.CastleRights.CanCastle(us, true) &&
		g.Board.IsEmpty(king.Offset(east, 1)) && g.Board.IsEmpty(king.Offset(east, 2)) &&
		!SquareAttacked(&g.Board, king.Offset(east, 1), them) &&
		!SquareAttacked(&g.Board, king.Offset(east, 2), them) {
		moves = append(moves, newCastle(&g.Board, king, king.Offset(east, 2)))
	}
	if g.CastleRights.CanCastle(us, false) &&
		g.Board.IsEmpty(king.Offset(west, 1)) && g.Board.IsEmpty(king.Offset(west, 2)) &&
		g.Board.IsEmpty(king.Offset(west, 3)) &&
		!SquareAttacked(&g.Board, king.Offset(west, 1), them) &&
		!SquareAttacked(&g.Board, king.Offset(west, 2), them) {
		moves = append(moves, newCastle(&g.Board, king, king.Offset(west, 2)))
	}
	return moves
}

// ValidMoves returns all legal moves for the side to move and refreshes the
// pin, check, checkmate and stalemate fields.
func (g *GameState) ValidMoves() []Move {
	g.CheckForPinsAndChecks()
	us := g.SideToMove
	king := g.KingSquare[us]

	var moves []Move
	switch len(g.Checks) {
	case 0:
		moves = pseudoLegalMoves(&g.Board, us, g.Pins, g.EnPassant)
		moves = append(moves, g.castleMoves()...)
	case 1:
		check := g.Checks[0]
		targets := blockSquares(king, check)
		for _, m := range pseudoLegalMoves(&g.Board, us, g.Pins, g.EnPassant) {
			switch {
			case m.Moved.Type() == King:
				moves = append(moves, m)
			case m.EnPassant && m.CaptureSquare() == check.Square:
				moves = append(moves, m)
			case containsSquare(targets, m.To):
				moves = append(moves, m)
			}
		}
	default:
		for _, m := range pseudoLegalMoves(&g.Board, us, g.Pins, g.EnPassant) {
			if m.Moved.Type() == King {
				moves = append(moves, m)
			}
		}
	}

	moves = g.verifyEnPassant(moves)

	g.Checkmate = len(moves) == 0 && g.InCheck
	g.Stalemate = len(moves) == 0 && !g.InCheck
	return moves
}

// PseudoLegalMoves returns the side to move's moves that obey piece movement
// but ignore pins and king safety. Castling is not included.
func (g *GameState) PseudoLegalMoves() []Move {
	gen := generator{b: &g.Board, us: g.SideToMove, ep: g.EnPassant, loose: true}
	gen.run()
	return gen.moves
}

// blockSquares lists the squares that resolve a single check: the checker's
// own square and, for sliders, every square between it and the king.
func blockSquares(king Square, c Check) []Square {
	if c.Knight {
		return []Square{c.Square}
	}
	var squares []Square
	for n := 1; n < 8; n++ {
		sq := king.Offset(c.Dir, n)
		squares = append(squares, sq)
		if sq == c.Square {
			break
		}
	}
	return squares
}

func containsSquare(squares []Square, sq Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}

// verifyEnPassant drops en passant captures that expose the king. Removing
// two pawns from one rank can open a line no pin scan sees.
func (g *GameState) verifyEnPassant(moves []Move) []Move {
	us := g.SideToMove
	king := g.KingSquare[us]
	out := moves[:0]
	for _, m := range moves {
		if m.EnPassant {
			scratch := g.Board
			scratch.move(m.From, m.To)
			scratch.set(m.CaptureSquare(), NoPiece)
			if Analyze(&scratch, king, us).InCheck {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}
