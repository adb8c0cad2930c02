package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessboard/internal/board"
)

// framesPerSquare is how many frames a moving piece spends per square of
// Manhattan distance.
const framesPerSquare = 10

// MoveAnimation slides a piece from its origin to its destination after the
// move has been applied to the board.
type MoveAnimation struct {
	move   board.Move
	frame  int
	frames int
}

// NewMoveAnimation creates the animation for m.
func NewMoveAnimation(m board.Move) *MoveAnimation {
	return &MoveAnimation{move: m, frames: m.From.Distance(m.To) * framesPerSquare}
}

// Update advances one frame. It returns false once the animation is over.
func (a *MoveAnimation) Update() bool {
	if a.frame < a.frames {
		a.frame++
	}
	return !a.Done()
}

// Done reports whether the last frame has been shown.
func (a *MoveAnimation) Done() bool {
	return a.frame >= a.frames
}

// Hidden returns the squares the static piece pass must skip: the
// destination, where the moving piece already sits, and for castling the
// rook's destination.
func (a *MoveAnimation) Hidden() []board.Square {
	hidden := []board.Square{a.move.To}
	if a.move.Castle {
		_, rookTo := a.move.RookSquares()
		hidden = append(hidden, rookTo)
	}
	return hidden
}

// Draw renders the captured piece, still on its square, and the moving piece
// at its interpolated position.
func (a *MoveAnimation) Draw(screen *ebiten.Image, r *Renderer) {
	t := 1.0
	if a.frames > 0 {
		t = float64(a.frame) / float64(a.frames)
	}

	if a.move.IsCapture() {
		x, y := r.SquareToScreen(a.move.CaptureSquare())
		r.Sprites().DrawPieceAt(screen, a.move.Captured, float64(x), float64(y))
	}

	piece := a.move.Moved
	if a.move.Promotion {
		piece = board.NewPiece(a.move.PromoteTo, piece.Color())
	}
	a.slide(screen, r, piece, a.move.From, a.move.To, t)

	if a.move.Castle {
		rookFrom, rookTo := a.move.RookSquares()
		a.slide(screen, r, board.NewPiece(board.Rook, piece.Color()), rookFrom, rookTo, t)
	}
}

func (a *MoveAnimation) slide(screen *ebiten.Image, r *Renderer, p board.Piece, from, to board.Square, t float64) {
	fx, fy := r.SquareToScreen(from)
	tx, ty := r.SquareToScreen(to)
	x := float64(fx) + float64(tx-fx)*t
	y := float64(fy) + float64(ty-fy)*t
	r.Sprites().DrawPieceAt(screen, p, x, y)
}
