package board

import "testing"

// TestPerftStartingPosition tests move generation from the starting position.
func TestPerftStartingPosition(t *testing.T) {
	g := NewGame()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := Perft(g, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftKiwipete tests the Kiwipete position with castling, pins and en passant.
// No promotion occurs within depth 3, so queen-only promotion does not skew counts.
func TestPerftKiwipete(t *testing.T) {
	g := fromDiagram(t, kiwipete, White, AllCastleRights, "-")

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := Perft(g, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftPosition3 tests en passant and rank pins in an endgame.
func TestPerftPosition3(t *testing.T) {
	g := fromDiagram(t, position3, White, CastleRights{}, "-")

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := Perft(g, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftEnPassantPin tests the horizontal pin: exd3 would leave the black
// king on a4 facing the rook on h4 once both pawns leave the rank.
func TestPerftEnPassantPin(t *testing.T) {
	g := fromDiagram(t, enPassantPin, Black, CastleRights{}, "d3")

	for _, m := range g.ValidMoves() {
		if m.EnPassant {
			t.Errorf("en passant move %v should be illegal (horizontal pin)", m)
		}
	}

	// Depth 1: Ka3, Ka5, Kb3, Kb4, Kb5, e3 = 6 moves
	// Depth 2: after e4e3 (14), after king moves (16 each x5) = 14 + 80 = 94
	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 6},
		{2, 94},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := Perft(g, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestPerftDivide(t *testing.T) {
	g := NewGame()
	div := PerftDivide(g, 2)

	if len(div) != 20 {
		t.Fatalf("divide has %d root moves, want 20", len(div))
	}
	var total int64
	for move, n := range div {
		if n != 20 {
			t.Errorf("%s: %d, want 20", move, n)
		}
		total += n
	}
	if total != 400 {
		t.Errorf("total = %d, want 400", total)
	}
	if g.Plies() != 0 {
		t.Errorf("divide left %d plies on the game", g.Plies())
	}
}
