package board

import (
	"sort"
	"testing"
)

// PieceFromChar converts a diagram letter to a Piece. Anything else is empty.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	}
	return NoPiece
}

// fromDiagram builds a game from eight rows of eight letters, rank 8 first,
// with '.' for empty cells. ep is the en passant target or "-".
func fromDiagram(t testing.TB, rows [8]string, side Color, rights CastleRights, ep string) *GameState {
	t.Helper()
	b := EmptyBoard()
	for row, line := range rows {
		if len(line) != 8 {
			t.Fatalf("diagram row %d has %d cells", row, len(line))
		}
		for col := 0; col < 8; col++ {
			b[row][col] = PieceFromChar(line[col])
		}
	}

	target := NoSquare
	if ep != "-" {
		sq, err := ParseSquare(ep)
		if err != nil {
			t.Fatalf("bad en passant square: %v", err)
		}
		target = sq
	}
	return newGameFromBoard(b, side, rights, target)
}

func sq(t testing.TB, s string) Square {
	t.Helper()
	square, err := ParseSquare(s)
	if err != nil {
		t.Fatal(err)
	}
	return square
}

// notations returns the sorted notations of moves.
func notations(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.Notation())
	}
	sort.Strings(out)
	return out
}

// movesFrom returns the sorted notations of the moves starting on from.
func movesFrom(moves []Move, from Square) []string {
	var picked []Move
	for _, m := range moves {
		if m.From == from {
			picked = append(picked, m)
		}
	}
	return notations(picked)
}

var (
	kiwipete = [8]string{
		"r...k..r",
		"p.ppqpb.",
		"bn..pnp.",
		"...PN...",
		".p..P...",
		"..N..Q.p",
		"PPPBBPPP",
		"R...K..R",
	}
	position3 = [8]string{
		"........",
		"..p.....",
		"...p....",
		"KP.....r",
		".R...p.k",
		"........",
		"....P.P.",
		"........",
	}
	enPassantPin = [8]string{
		"........",
		"........",
		"........",
		"........",
		"k..Pp..R",
		"........",
		"........",
		"....K...",
	}
)
