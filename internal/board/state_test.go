package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, g *GameState, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		_, err := g.Play(sq(t, mv[:2]), sq(t, mv[2:4]), NoPieceType)
		require.NoError(t, err, "playing %s", mv)
	}
}

func TestNewGame(t *testing.T) {
	g := NewGame()

	assert.Equal(t, White, g.SideToMove)
	assert.Equal(t, AllCastleRights, g.CastleRights)
	assert.Equal(t, NoSquare, g.EnPassant)
	assert.Equal(t, sq(t, "e1"), g.KingSquare[White])
	assert.Equal(t, sq(t, "e8"), g.KingSquare[Black])
	assert.Len(t, g.CastleRightsHistory, 1)

	moves := g.ValidMoves()
	require.Len(t, moves, 20)
	for _, m := range moves {
		assert.False(t, m.EnPassant || m.Castle || m.Promotion || m.IsCapture(), "%v", m)
	}
	assert.Equal(t, "a2a3", moves[0].Notation())
	assert.Equal(t, "a2a4", moves[1].Notation())
	assert.Equal(t, "*", g.Outcome())
}

func TestFoolsMate(t *testing.T) {
	g := NewGame()
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	assert.Empty(t, g.ValidMoves())
	assert.True(t, g.InCheck)
	assert.True(t, g.Checkmate)
	assert.False(t, g.Stalemate)
	assert.Equal(t, "0-1", g.Outcome())

	last, ok := g.LastMove()
	require.True(t, ok)
	assert.Equal(t, "d8h4", last.Notation())
	assert.Equal(t, 4, g.Plies())

	g.UndoMove()
	assert.NotEmpty(t, g.ValidMoves())
	assert.False(t, g.Checkmate)
	assert.Equal(t, "*", g.Outcome())
}

func TestBackRankMate(t *testing.T) {
	g := fromDiagram(t, [8]string{
		"R......k",
		"......pp",
		"........",
		"........",
		"........",
		"........",
		"........",
		"K.......",
	}, Black, CastleRights{}, "-")

	assert.Empty(t, g.ValidMoves())
	assert.True(t, g.Checkmate)
	assert.Equal(t, "1-0", g.Outcome())
}

func TestNotCheckmate(t *testing.T) {
	// The king can take the undefended rook.
	g := fromDiagram(t, [8]string{
		"......Rk",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"K.......",
	}, Black, CastleRights{}, "-")

	moves := g.ValidMoves()
	assert.False(t, g.Checkmate)
	assert.Contains(t, notations(moves), "h8g8")
}

func TestStalemate(t *testing.T) {
	g := fromDiagram(t, [8]string{
		"k.......",
		"........",
		".Q......",
		"........",
		"........",
		"........",
		"........",
		".......K",
	}, Black, CastleRights{}, "-")

	assert.Empty(t, g.ValidMoves())
	assert.False(t, g.InCheck)
	assert.True(t, g.Stalemate)
	assert.False(t, g.Checkmate)
	assert.Equal(t, "1/2-1/2", g.Outcome())
}

func TestEnPassant(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "a7a6", "e4e5", "d7d5")
	require.Equal(t, sq(t, "d6"), g.EnPassant)

	m, err := g.FindMove(sq(t, "e5"), sq(t, "d6"))
	require.NoError(t, err)
	assert.True(t, m.EnPassant)
	assert.Equal(t, BlackPawn, m.Captured)
	assert.Equal(t, sq(t, "d5"), m.CaptureSquare())

	_, err = g.Play(m.From, m.To, NoPieceType)
	require.NoError(t, err)
	assert.Equal(t, WhitePawn, g.Board.At(sq(t, "d6")))
	assert.Equal(t, NoPiece, g.Board.At(sq(t, "d5")))
	assert.Equal(t, NoPiece, g.Board.At(sq(t, "e5")))
	assert.Equal(t, NoSquare, g.EnPassant)

	g.UndoMove()
	assert.Equal(t, BlackPawn, g.Board.At(sq(t, "d5")))
	assert.Equal(t, WhitePawn, g.Board.At(sq(t, "e5")))
	assert.Equal(t, NoPiece, g.Board.At(sq(t, "d6")))
	assert.Equal(t, sq(t, "d6"), g.EnPassant)
}

func TestEnPassantExpires(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "a7a6", "e4e5", "d7d5", "h2h3", "h7h6")

	_, err := g.FindMove(sq(t, "e5"), sq(t, "d6"))
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestUndoRestoresEnPassantTarget(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4")
	require.Equal(t, sq(t, "e3"), g.EnPassant)

	play(t, g, "g8f6")
	require.Equal(t, NoSquare, g.EnPassant)

	g.UndoMove()
	assert.Equal(t, sq(t, "e3"), g.EnPassant)

	g.UndoMove()
	assert.Equal(t, NoSquare, g.EnPassant)
}

func TestEnPassantRemovesCheckingPawn(t *testing.T) {
	g := fromDiagram(t, [8]string{
		"k.......",
		"...p....",
		"........",
		"....P...",
		"....K...",
		"........",
		"........",
		"........",
	}, Black, CastleRights{}, "-")

	play(t, g, "d7d5")
	require.True(t, g.InCheck)

	moves := g.ValidMoves()
	m, err := g.FindMove(sq(t, "e5"), sq(t, "d6"))
	require.NoError(t, err)
	assert.True(t, m.EnPassant)
	assert.Contains(t, notations(moves), "e4d5")
}

func TestCastling(t *testing.T) {
	rows := [8]string{
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"R...K..R",
	}

	t.Run("both sides", func(t *testing.T) {
		g := fromDiagram(t, rows, White, AllCastleRights, "-")
		moves := g.ValidMoves()

		var castles []Move
		for _, m := range moves {
			if m.Castle {
				castles = append(castles, m)
			}
		}
		assert.Equal(t, []string{"e1c1", "e1g1"}, notations(castles))
		// castling comes after every other move
		assert.True(t, moves[len(moves)-1].Castle)
		assert.True(t, moves[len(moves)-2].Castle)
	})

	t.Run("king side apply and undo", func(t *testing.T) {
		g := fromDiagram(t, rows, White, AllCastleRights, "-")
		play(t, g, "e1g1")

		assert.Equal(t, WhiteKing, g.Board.At(sq(t, "g1")))
		assert.Equal(t, WhiteRook, g.Board.At(sq(t, "f1")))
		assert.Equal(t, NoPiece, g.Board.At(sq(t, "h1")))
		assert.Equal(t, sq(t, "g1"), g.KingSquare[White])
		assert.False(t, g.CastleRights.WhiteKingSide)
		assert.False(t, g.CastleRights.WhiteQueenSide)
		assert.True(t, g.CastleRights.BlackKingSide)

		g.UndoMove()
		assert.Equal(t, WhiteKing, g.Board.At(sq(t, "e1")))
		assert.Equal(t, WhiteRook, g.Board.At(sq(t, "h1")))
		assert.Equal(t, NoPiece, g.Board.At(sq(t, "f1")))
		assert.Equal(t, AllCastleRights, g.CastleRights)
	})

	t.Run("queen side apply", func(t *testing.T) {
		g := fromDiagram(t, rows, White, AllCastleRights, "-")
		play(t, g, "e1c1")
		assert.Equal(t, WhiteKing, g.Board.At(sq(t, "c1")))
		assert.Equal(t, WhiteRook, g.Board.At(sq(t, "d1")))
		assert.Equal(t, NoPiece, g.Board.At(sq(t, "a1")))
	})

	t.Run("rook move clears one flank", func(t *testing.T) {
		g := fromDiagram(t, rows, White, AllCastleRights, "-")
		play(t, g, "h1h2")
		assert.False(t, g.CastleRights.WhiteKingSide)
		assert.True(t, g.CastleRights.WhiteQueenSide)
	})
}

func TestCastlingBlocked(t *testing.T) {
	tests := []struct {
		name string
		rows [8]string
		want []string
	}{
		{
			name: "transit square attacked by rook",
			rows: [8]string{
				"....kr..",
				"........",
				"........",
				"........",
				"........",
				"........",
				"........",
				"R...K..R",
			},
			want: []string{"e1c1"},
		},
		{
			name: "transit squares attacked by pawn",
			rows: [8]string{
				"....k...",
				"........",
				"........",
				"........",
				"........",
				"........",
				"....p...",
				"R...K..R",
			},
			want: nil,
		},
		{
			name: "b1 attacked does not stop queen side",
			rows: [8]string{
				".r..k...",
				"........",
				"........",
				"........",
				"........",
				"........",
				"........",
				"R...K..R",
			},
			want: []string{"e1c1", "e1g1"},
		},
		{
			name: "path occupied",
			rows: [8]string{
				"....k...",
				"........",
				"........",
				"........",
				"........",
				"........",
				"........",
				"RN..K.NR",
			},
			want: nil,
		},
		{
			name: "in check",
			rows: [8]string{
				"....k...",
				"........",
				"........",
				"........",
				"....r...",
				"........",
				"........",
				"R...K..R",
			},
			want: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := fromDiagram(t, tc.rows, White, AllCastleRights, "-")
			var got []Move
			for _, m := range g.ValidMoves() {
				if m.Castle {
					got = append(got, m)
				}
			}
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, notations(got))
		})
	}
}

func TestCapturedRookClearsRights(t *testing.T) {
	g := fromDiagram(t, [8]string{
		"r...k..r",
		"........",
		"........",
		"........",
		"........",
		"........",
		".B......",
		"....K...",
	}, White, CastleRights{BlackKingSide: true, BlackQueenSide: true}, "-")

	play(t, g, "b2h8")
	assert.False(t, g.CastleRights.BlackKingSide)
	assert.True(t, g.CastleRights.BlackQueenSide)

	for _, m := range g.ValidMoves() {
		assert.False(t, m.Castle && m.To.Col == 6, "castled with a captured rook: %v", m)
	}
}

func TestDoubleCheck(t *testing.T) {
	g := fromDiagram(t, [8]string{
		"....r..k",
		"........",
		"........",
		"........",
		"........",
		"R..n....",
		"........",
		"....K...",
	}, White, CastleRights{}, "-")

	moves := g.ValidMoves()
	require.Len(t, g.Checks, 2)
	for _, m := range moves {
		assert.Equal(t, King, m.Moved.Type(), "%v", m)
	}
	assert.Equal(t, []string{"e1d1", "e1d2", "e1f1"}, notations(moves))
}

func TestSingleCheckEvasions(t *testing.T) {
	// Rook check down the e-file: block on e2..e7, capture on e8 or step aside.
	g := fromDiagram(t, [8]string{
		"....r..k",
		"........",
		"........",
		"........",
		"........",
		"........",
		"R.......",
		"....K...",
	}, White, CastleRights{}, "-")

	moves := g.ValidMoves()
	assert.Equal(t, []string{"a2e2"}, movesFrom(moves, sq(t, "a2")))
	assert.Equal(t, []string{"e1d1", "e1d2", "e1f1", "e1f2"}, movesFrom(moves, sq(t, "e1")))

	seen := make(map[string]bool)
	for _, m := range moves {
		assert.False(t, seen[m.Notation()], "duplicate move %v", m)
		seen[m.Notation()] = true
	}
}

func TestKnightCheckAllowsCaptureOnly(t *testing.T) {
	g := fromDiagram(t, [8]string{
		".......k",
		"........",
		"........",
		"........",
		"........",
		"...n....",
		"........",
		"...RK...",
	}, White, CastleRights{}, "-")

	moves := g.ValidMoves()
	require.True(t, g.InCheck)
	require.Len(t, g.Checks, 1)
	assert.True(t, g.Checks[0].Knight)
	assert.True(t, g.Checks[0].Dir.IsZero())
	assert.Equal(t, []string{"d1d3"}, movesFrom(moves, sq(t, "d1")))
}

func TestPins(t *testing.T) {
	g := fromDiagram(t, [8]string{
		"k...r...",
		"........",
		"........",
		"b.......",
		"....R..b",
		"........",
		"...B.P..",
		"....K...",
	}, White, CastleRights{}, "-")

	moves := g.ValidMoves()
	require.Len(t, g.Pins, 3)
	assert.False(t, g.InCheck)

	assert.Equal(t, []string{"e4e2", "e4e3", "e4e5", "e4e6", "e4e7", "e4e8"}, movesFrom(moves, sq(t, "e4")))
	assert.Equal(t, []string{"d2a5", "d2b4", "d2c3"}, movesFrom(moves, sq(t, "d2")))
	assert.Empty(t, movesFrom(moves, sq(t, "f2")))
}

func TestPinnedPawnCapturesPinner(t *testing.T) {
	g := fromDiagram(t, [8]string{
		"k.......",
		"........",
		"........",
		"........",
		"........",
		"......b.",
		".....P..",
		"....K...",
	}, White, CastleRights{}, "-")

	moves := g.ValidMoves()
	assert.Equal(t, []string{"f2g3"}, movesFrom(moves, sq(t, "f2")))
}

func TestPinnedKnightFrozen(t *testing.T) {
	g := fromDiagram(t, [8]string{
		"k...q...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....N...",
		"....K...",
	}, White, CastleRights{}, "-")

	assert.Empty(t, movesFrom(g.ValidMoves(), sq(t, "e2")))
}

func TestPromotion(t *testing.T) {
	rows := [8]string{
		"........",
		"P.......",
		".......k",
		"........",
		"........",
		"........",
		"........",
		".......K",
	}

	t.Run("auto queen", func(t *testing.T) {
		g := fromDiagram(t, rows, White, CastleRights{}, "-")
		from := movesFrom(g.ValidMoves(), sq(t, "a7"))
		require.Equal(t, []string{"a7a8"}, from)

		play(t, g, "a7a8")
		assert.Equal(t, WhiteQueen, g.Board.At(sq(t, "a8")))
	})

	t.Run("under promotion", func(t *testing.T) {
		g := fromDiagram(t, rows, White, CastleRights{}, "-")
		m, err := g.Play(sq(t, "a7"), sq(t, "a8"), Knight)
		require.NoError(t, err)
		assert.Equal(t, Knight, m.PromoteTo)
		assert.Equal(t, WhiteKnight, g.Board.At(sq(t, "a8")))

		g.UndoMove()
		assert.Equal(t, WhitePawn, g.Board.At(sq(t, "a7")))
		assert.Equal(t, NoPiece, g.Board.At(sq(t, "a8")))
	})
}

func TestPlayErrors(t *testing.T) {
	g := NewGame()
	before := g.Board

	_, err := g.Play(NewSquare(8, 0), sq(t, "e4"), NoPieceType)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = g.Play(sq(t, "e2"), sq(t, "e5"), NoPieceType)
	assert.ErrorIs(t, err, ErrIllegalMove)

	_, err = g.Play(sq(t, "e2"), sq(t, "e4"), King)
	assert.ErrorIs(t, err, ErrInvalidPromotion)

	_, err = g.PieceAt(NewSquare(0, -1))
	assert.ErrorIs(t, err, ErrOutOfBounds)

	assert.Equal(t, before, g.Board)
	assert.Equal(t, 0, g.Plies())
	assert.Equal(t, White, g.SideToMove)
}

func TestSelectMove(t *testing.T) {
	g := NewGame()
	for _, mv := range []string{"h2h4", "g7g5", "h4g5", "h7h6", "g5h6", "a7a6", "h6h7", "a6a5"} {
		_, err := g.Play(sq(t, mv[:2]), sq(t, mv[2:]), NoPieceType)
		require.NoError(t, err, mv)
	}
	moves := g.ValidMoves()

	m, err := SelectMove(moves, sq(t, "h7"), sq(t, "g8"), NoPieceType)
	require.NoError(t, err)
	assert.True(t, m.Promotion)
	assert.Equal(t, Queen, m.PromoteTo)

	m, err = SelectMove(moves, sq(t, "h7"), sq(t, "g8"), Knight)
	require.NoError(t, err)
	assert.Equal(t, Knight, m.PromoteTo)

	m, err = SelectMove(moves, sq(t, "g1"), sq(t, "f3"), Rook)
	require.NoError(t, err, "promotion choice is ignored for other moves")
	assert.False(t, m.Promotion)

	_, err = SelectMove(moves, sq(t, "h7"), sq(t, "h8"), NoPieceType)
	assert.ErrorIs(t, err, ErrIllegalMove)

	_, err = SelectMove(moves, sq(t, "h7"), sq(t, "g8"), Pawn)
	assert.ErrorIs(t, err, ErrInvalidPromotion)

	_, err = SelectMove(nil, sq(t, "e2"), sq(t, "e4"), NoPieceType)
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestUndoEmptyHistory(t *testing.T) {
	g := NewGame()
	g.UndoMove()

	assert.Equal(t, StartingBoard(), g.Board)
	assert.Equal(t, White, g.SideToMove)
	assert.Len(t, g.CastleRightsHistory, 1)
}

func TestUndoRoundTrip(t *testing.T) {
	g := NewGame()
	fresh := NewGame()

	for i := 0; i < 60; i++ {
		moves := g.ValidMoves()
		if len(moves) == 0 {
			break
		}
		m := moves[(i*7+3)%len(moves)]
		g.MakeMove(m)

		mover := m.Moved.Color()
		assert.False(t, Analyze(&g.Board, g.KingSquare[mover], mover).InCheck, "move %v left its king in check", m)
	}
	require.NotZero(t, g.Plies())

	for g.Plies() > 0 {
		g.UndoMove()
	}

	assert.Equal(t, fresh.Board, g.Board)
	assert.Equal(t, fresh.SideToMove, g.SideToMove)
	assert.Equal(t, fresh.CastleRights, g.CastleRights)
	assert.Equal(t, fresh.EnPassant, g.EnPassant)
	assert.Equal(t, fresh.KingSquare, g.KingSquare)
	assert.Len(t, g.CastleRightsHistory, 1)
}

func TestSquareUnderAttack(t *testing.T) {
	g := NewGame()

	assert.True(t, g.SquareUnderAttack(sq(t, "f6")))
	assert.True(t, g.SquareUnderAttack(sq(t, "d6")))
	assert.False(t, g.SquareUnderAttack(sq(t, "e4")))
	assert.False(t, g.SquareUnderAttack(sq(t, "e5")))
}

func TestPieceAt(t *testing.T) {
	g := NewGame()

	p, err := g.PieceAt(sq(t, "d8"))
	require.NoError(t, err)
	assert.Equal(t, BlackQueen, p)

	p, err = g.PieceAt(sq(t, "e4"))
	require.NoError(t, err)
	assert.Equal(t, NoPiece, p)
}
