package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessboard/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
	CoordLight     color.RGBA
	CoordDark      color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{222, 184, 135, 150}, // Burlywood
		LegalMoveColor: color.RGBA{95, 158, 160, 200},  // Cadet blue dots
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180},
		Background:     color.RGBA{40, 44, 52, 255},
		CoordLight:     color.RGBA{181, 136, 99, 255},
		CoordDark:      color.RGBA{240, 217, 181, 255},
	}
}

// Renderer handles board drawing. Screen coordinates are logical pixels with
// the origin at the board's top-left corner.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	boardSize  int
	squareSize int
	flipped    bool // Black at the bottom
}

// NewRenderer creates a new renderer.
func NewRenderer(boardSize, squareSize int) *Renderer {
	return &Renderer{
		sprites:    NewSpriteManager(squareSize),
		theme:      DefaultTheme(),
		boardSize:  boardSize,
		squareSize: squareSize,
	}
}

// SetFlipped chooses whether the board is drawn from Black's side.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports whether Black is drawn at the bottom.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

// DrawBoard draws the chess board squares and their coordinates.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	size := float32(r.squareSize)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			x, y := r.SquareToScreen(board.NewSquare(row, col))
			c := r.theme.LightSquare
			if (row+col)%2 == 1 {
				c = r.theme.DarkSquare
			}
			vector.DrawFilledRect(screen, float32(x), float32(y), size, size, c, false)
		}
	}

	r.drawCoordinates(screen)
}

// drawCoordinates labels the files along the bottom edge and the ranks along
// the left edge, in the contrasting square color.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := GetSmallFace()
	if face == nil {
		return
	}

	bottom, left := 7, 0
	if r.flipped {
		bottom, left = 0, 7
	}

	for col := 0; col < 8; col++ {
		sq := board.NewSquare(bottom, col)
		x, y := r.SquareToScreen(sq)
		label := sq.String()[:1]
		w, h := MeasureText(label, face)
		r.drawLabel(screen, label, face, float64(x+r.squareSize)-w-3, float64(y+r.squareSize)-h-2, sq)
	}
	for row := 0; row < 8; row++ {
		sq := board.NewSquare(row, left)
		x, y := r.SquareToScreen(sq)
		r.drawLabel(screen, sq.String()[1:], face, float64(x)+3, float64(y)+2, sq)
	}
}

func (r *Renderer) drawLabel(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, sq board.Square) {
	c := r.theme.CoordLight
	if (sq.Row+sq.Col)%2 == 1 {
		c = r.theme.CoordDark
	}
	drawText(screen, s, face, x, y, c)
}

// DrawHighlights draws the last move, the selected square and the legal
// destinations of the selected piece.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, targets []board.Square, lastMove *board.Move) {
	if lastMove != nil {
		r.highlightSquare(screen, lastMove.From, r.theme.LastMoveColor)
		r.highlightSquare(screen, lastMove.To, r.theme.LastMoveColor)
	}

	r.highlightSquare(screen, selected, r.theme.SelectedSquare)

	for _, sq := range targets {
		r.drawLegalMoveIndicator(screen, sq)
	}
}

// DrawCheck highlights the king's square if in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	r.highlightSquare(screen, kingSq, r.theme.CheckColor)
}

func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if !sq.OnBoard() {
		return
	}
	x, y := r.SquareToScreen(sq)
	size := float32(r.squareSize)
	vector.DrawFilledRect(screen, float32(x), float32(y), size, size, c, false)
}

func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square) {
	x, y := r.SquareToScreen(sq)
	half := float32(r.squareSize) / 2
	vector.DrawFilledCircle(screen, float32(x)+half, float32(y)+half, float32(r.squareSize)*0.15, r.theme.LegalMoveColor, true)
}

// DrawPieces draws every piece except those on the skipped squares, applying
// any active shake offsets.
func (r *Renderer) DrawPieces(b *board.Board, screen *ebiten.Image, anims *AnimationManager, skip ...board.Square) {
	for row := 0; row < 8; row++ {
	next:
		for col := 0; col < 8; col++ {
			sq := board.NewSquare(row, col)
			for _, s := range skip {
				if s == sq {
					continue next
				}
			}

			piece := b.At(sq)
			if piece.IsEmpty() {
				continue
			}

			x, y := r.SquareToScreen(sq)
			fx, fy := float64(x), float64(y)
			if anims != nil {
				dx, dy := anims.GetShakeOffset(sq)
				fx += dx
				fy += dy
			}
			r.sprites.DrawPieceAt(screen, piece, fx, fy)
		}
	}
}

// DrawPieceCentered draws a piece centered on a screen point, used for the
// dragged piece.
func (r *Renderer) DrawPieceCentered(screen *ebiten.Image, piece board.Piece, cx, cy int) {
	half := r.squareSize / 2
	r.sprites.DrawPieceAt(screen, piece, float64(cx-half), float64(cy-half))
}

// SquareToScreen converts a board square to the screen coordinates of its
// top-left corner.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	row, col := sq.Row, sq.Col
	if r.flipped {
		row, col = 7-row, 7-col
	}
	return col * r.squareSize, row * r.squareSize
}

// ScreenToSquare converts screen coordinates to a board square, or
// board.NoSquare when the point is off the board.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	if x < 0 || x >= r.boardSize || y < 0 || y >= r.boardSize {
		return board.NoSquare
	}
	row, col := y/r.squareSize, x/r.squareSize
	if r.flipped {
		row, col = 7-row, 7-col
	}
	return board.NewSquare(row, col)
}

// BoardSize returns the board size in pixels.
func (r *Renderer) BoardSize() int {
	return r.boardSize
}

// SquareSize returns the size of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.squareSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// Sprites returns the sprite manager.
func (r *Renderer) Sprites() *SpriteManager {
	return r.sprites
}
