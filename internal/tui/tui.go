// Package tui is a terminal front end for the chess board built on tcell.
// It drives the same play.Session as the GUI.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/play"
)

// Layout of the board on screen: each square is cellWidth columns wide and
// one row tall, to the right of the rank labels.
const (
	boardX    = 2
	boardY    = 1
	cellWidth = 3

	filesY   = boardY + 8
	statusY  = filesY + 2
	messageY = statusY + 1
	helpY    = messageY + 1
)

const helpText = "arrows/hjkl move  enter/space select  z undo  r new  f flip  q quit"

// glyphs are drawn in the piece's color, indexed by PieceType.
var glyphs = [...]rune{'♟', '♞', '♝', '♜', '♛', '♚'}

var (
	lightSquare  = tcell.NewRGBColor(240, 217, 181)
	darkSquare   = tcell.NewRGBColor(181, 136, 99)
	whitePiece   = tcell.NewRGBColor(255, 255, 255)
	blackPiece   = tcell.NewRGBColor(0, 0, 0)
	selectedBg   = tcell.ColorBurlyWood
	targetBg     = tcell.ColorCadetBlue
	checkBg      = tcell.NewRGBColor(220, 80, 80)
	cursorBg     = tcell.NewRGBColor(120, 170, 230)
	labelStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	statusStyle  = tcell.StyleDefault.Bold(true)
	messageStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// App is the terminal game loop.
type App struct {
	screen  tcell.Screen
	session *play.Session

	cursor  board.Square
	flipped bool
	message string
	buttons tcell.ButtonMask // mouse buttons held after the last mouse event
	quit    bool
}

// New creates an App drawing to screen. The screen must already be
// initialized; the caller owns it.
func New(screen tcell.Screen, s *play.Session) *App {
	return &App{
		screen:  screen,
		session: s,
		cursor:  board.NewSquare(6, 4), // e2
	}
}

// Run draws and handles events until the user quits or the screen is
// finalized.
func (a *App) Run() error {
	a.screen.EnableMouse()
	a.screen.HideCursor()
	for !a.quit {
		a.Draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		a.HandleEvent(ev)
	}
	return nil
}

// HandleEvent applies one terminal event. It returns false once the user
// has asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return !a.quit
}

func (a *App) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.quit = true
	case tcell.KeyUp:
		a.moveCursor(-1, 0)
	case tcell.KeyDown:
		a.moveCursor(1, 0)
	case tcell.KeyLeft:
		a.moveCursor(0, -1)
	case tcell.KeyRight:
		a.moveCursor(0, 1)
	case tcell.KeyEnter:
		a.click(a.cursor)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			a.quit = true
		case 'k':
			a.moveCursor(-1, 0)
		case 'j':
			a.moveCursor(1, 0)
		case 'h':
			a.moveCursor(0, -1)
		case 'l':
			a.moveCursor(0, 1)
		case ' ':
			a.click(a.cursor)
		case 'z':
			if a.session.Undo() {
				a.message = "Move taken back"
			} else {
				a.message = "Nothing to undo"
			}
		case 'r':
			a.session.Reset()
			a.message = "New game"
		case 'f':
			a.flipped = !a.flipped
		}
	}
}

// moveCursor moves the cursor in screen directions, so up is always
// towards the top of the terminal.
func (a *App) moveCursor(dRow, dCol int) {
	if a.flipped {
		dRow, dCol = -dRow, -dCol
	}
	next := board.NewSquare(a.cursor.Row+dRow, a.cursor.Col+dCol)
	if next.OnBoard() {
		a.cursor = next
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0 && a.buttons&tcell.Button1 == 0
	a.buttons = ev.Buttons()
	if !pressed {
		return
	}
	if sq := a.squareAt(ev.Position()); sq.OnBoard() {
		a.cursor = sq
		a.click(sq)
	}
}

func (a *App) click(sq board.Square) {
	ev := a.session.Click(sq)
	switch ev.Kind {
	case play.EventSelected:
		a.message = fmt.Sprintf("Selected %s", sq)
	case play.EventDeselected:
		a.message = ""
	case play.EventMoved:
		a.message = fmt.Sprintf("Played %s", ev.Move.Notation())
	case play.EventRejected:
		a.message = ev.Reason.String()
	}
}

// squareAt maps a terminal cell to a board square.
func (a *App) squareAt(x, y int) board.Square {
	if x < boardX || x >= boardX+8*cellWidth || y < boardY || y >= boardY+8 {
		return board.NoSquare
	}
	return a.orient(y-boardY, (x-boardX)/cellWidth)
}

// orient converts between screen and board coordinates; it is its own inverse.
func (a *App) orient(row, col int) board.Square {
	if a.flipped {
		return board.NewSquare(7-row, 7-col)
	}
	return board.NewSquare(row, col)
}

// Draw renders the board, labels and status lines.
func (a *App) Draw() {
	a.screen.Clear()

	state := a.session.State()
	selected := a.session.Selected()
	targets := a.session.TargetsFrom(selected)

	for sr := 0; sr < 8; sr++ {
		sq := a.orient(sr, 0)
		a.puts(0, boardY+sr, labelStyle, string("87654321"[sq.Row]))

		for sc := 0; sc < 8; sc++ {
			sq := a.orient(sr, sc)
			bg := lightSquare
			if (sq.Row+sq.Col)%2 == 1 {
				bg = darkSquare
			}
			switch {
			case sq == a.cursor:
				bg = cursorBg
			case sq == selected:
				bg = selectedBg
			case containsSquare(targets, sq):
				bg = targetBg
			case state.InCheck && sq == state.KingSquare[state.SideToMove]:
				bg = checkBg
			}

			style := tcell.StyleDefault.Background(bg)
			glyph := ' '
			if p := state.Board.At(sq); !p.IsEmpty() {
				glyph = glyphs[p.Type()]
				fg := whitePiece
				if p.Color() == board.Black {
					fg = blackPiece
				}
				style = style.Foreground(fg)
			}

			x := boardX + sc*cellWidth
			a.screen.SetContent(x, boardY+sr, ' ', nil, style)
			a.screen.SetContent(x+1, boardY+sr, glyph, nil, style)
			a.screen.SetContent(x+2, boardY+sr, ' ', nil, style)
		}
	}
	for sc := 0; sc < 8; sc++ {
		sq := a.orient(0, sc)
		a.puts(boardX+sc*cellWidth+1, filesY, labelStyle, string("abcdefgh"[sq.Col]))
	}

	a.puts(0, statusY, statusStyle, a.status())
	a.puts(0, messageY, messageStyle, a.message)
	a.puts(0, helpY, labelStyle, helpText)
	a.screen.Show()
}

// status describes the side to move, check and the result.
func (a *App) status() string {
	if a.session.Over() {
		return a.session.Result()
	}
	state := a.session.State()
	var b strings.Builder
	fmt.Fprintf(&b, "%s to move", state.SideToMove)
	if state.InCheck {
		b.WriteString(" (check)")
	}
	if h := a.session.History(); len(h) > 0 {
		fmt.Fprintf(&b, "  last %s", h[len(h)-1])
	}
	return b.String()
}

func (a *App) puts(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Cursor returns the square under the keyboard cursor.
func (a *App) Cursor() board.Square {
	return a.cursor
}

func containsSquare(list []board.Square, sq board.Square) bool {
	for _, s := range list {
		if s == sq {
			return true
		}
	}
	return false
}
