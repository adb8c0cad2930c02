// Command chessplay-perft counts legal move tree leaves from the starting
// position, optionally after a sequence of moves.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/hailam/chessboard/internal/board"
)

func main() {
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	moves := flag.String("moves", "", "Space separated moves to play first, e.g. \"e2e4 e7e5 g1f3\" (append n/b/r/q to promote)")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	g := board.NewGame()
	g.ValidMoves()
	for _, mv := range strings.Fields(*moves) {
		if err := play(g, mv); err != nil {
			fmt.Fprintf(os.Stderr, "move %s: %v\n", mv, err)
			os.Exit(2)
		}
	}

	if *divide {
		div := board.PerftDivide(g, *depth)
		keys := make([]string, 0, len(div))
		var sum int64
		for k, n := range div {
			keys = append(keys, k)
			sum += n
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s: %d\n", k, div[k])
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	start := time.Now()
	nodes := board.Perft(g, *depth)
	elapsed := time.Since(start)

	nps := 0.0
	if secs := elapsed.Seconds(); secs > 0 {
		nps = float64(nodes) / secs
	}
	fmt.Printf("depth=%d nodes=%d time=%s nps=%.0f\n", *depth, nodes, elapsed.Round(time.Millisecond), nps)
}

// play applies a move written as origin and destination squares with an
// optional promotion letter.
func play(g *board.GameState, mv string) error {
	if len(mv) != 4 && len(mv) != 5 {
		return fmt.Errorf("%w: %q", board.ErrIllegalMove, mv)
	}
	from, err := board.ParseSquare(mv[:2])
	if err != nil {
		return err
	}
	to, err := board.ParseSquare(mv[2:4])
	if err != nil {
		return err
	}

	promo := board.NoPieceType
	if len(mv) == 5 {
		switch mv[4] {
		case 'n':
			promo = board.Knight
		case 'b':
			promo = board.Bishop
		case 'r':
			promo = board.Rook
		case 'q':
			promo = board.Queen
		default:
			return fmt.Errorf("%w: %q", board.ErrInvalidPromotion, mv[4:])
		}
	}

	_, err = g.Play(from, to, promo)
	return err
}
