package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(g *GameState, depth int) int64 {
	n := perft(g, depth)
	g.ValidMoves()
	return n
}

func perft(g *GameState, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	moves := g.ValidMoves()
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		g.MakeMove(m)
		nodes += perft(g, depth-1)
		g.UndoMove()
	}
	return nodes
}

// PerftDivide returns the perft count below each root move, keyed by its
// notation.
func PerftDivide(g *GameState, depth int) map[string]int64 {
	result := make(map[string]int64)
	if depth <= 0 {
		return result
	}
	for _, m := range g.ValidMoves() {
		g.MakeMove(m)
		result[m.Notation()] = perft(g, depth-1)
		g.UndoMove()
	}
	g.ValidMoves()
	return result
}
