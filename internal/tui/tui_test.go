package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/play"
)

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)
	return New(screen, play.NewSession(nil)), screen
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// line returns the text of one screen row.
func line(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(string(c.Runes))
	}
	return strings.TrimRight(b.String(), " ")
}

func cellRune(screen tcell.SimulationScreen, x, y int) rune {
	cells, width, _ := screen.GetContents()
	c := cells[y*width+x]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

// squareX returns the column holding the glyph of a square in the unflipped view.
func squareX(col int) int {
	return boardX + col*cellWidth + 1
}

func TestDrawStartingPosition(t *testing.T) {
	app, screen := newTestApp(t)
	app.Draw()

	assert.Equal(t, '♜', cellRune(screen, squareX(0), boardY))   // a8
	assert.Equal(t, '♚', cellRune(screen, squareX(4), boardY))   // e8
	assert.Equal(t, '♟', cellRune(screen, squareX(3), boardY+6)) // d2
	assert.Equal(t, ' ', cellRune(screen, squareX(3), boardY+4)) // d4

	assert.True(t, strings.HasPrefix(line(screen, boardY), "8"))
	assert.Contains(t, line(screen, filesY), "a  b  c  d  e  f  g  h")
	assert.Equal(t, "White to move", line(screen, statusY))
	assert.Equal(t, helpText, line(screen, helpY))
}

func TestKeyboardMove(t *testing.T) {
	app, screen := newTestApp(t)
	require.Equal(t, board.NewSquare(6, 4), app.Cursor())

	app.HandleEvent(key(tcell.KeyEnter)) // select e2
	assert.Equal(t, board.NewSquare(6, 4), app.session.Selected())

	app.HandleEvent(char('k'))
	app.HandleEvent(key(tcell.KeyUp))
	assert.Equal(t, "e4", app.Cursor().String())

	app.HandleEvent(char(' '))
	app.Draw()
	assert.Equal(t, []string{"e2e4"}, app.session.History())
	assert.Equal(t, "Played e2e4", line(screen, messageY))
	assert.Equal(t, "Black to move  last e2e4", line(screen, statusY))
}

func TestCursorStaysOnBoard(t *testing.T) {
	app, _ := newTestApp(t)
	for i := 0; i < 10; i++ {
		app.HandleEvent(key(tcell.KeyRight))
		app.HandleEvent(key(tcell.KeyDown))
	}
	assert.Equal(t, "h1", app.Cursor().String())

	for i := 0; i < 10; i++ {
		app.HandleEvent(char('h'))
		app.HandleEvent(char('k'))
	}
	assert.Equal(t, "a8", app.Cursor().String())
}

func TestRejectedClickShowsReason(t *testing.T) {
	app, screen := newTestApp(t)

	app.HandleEvent(char('k'))
	app.HandleEvent(char('k')) // e4, empty
	app.HandleEvent(key(tcell.KeyEnter))
	app.Draw()
	assert.Equal(t, play.ReasonNoPiece.String(), line(screen, messageY))
}

func TestMouseClicks(t *testing.T) {
	app, _ := newTestApp(t)

	press := func(col, row int) {
		app.HandleEvent(tcell.NewEventMouse(squareX(col), boardY+row, tcell.Button1, tcell.ModNone))
		app.HandleEvent(tcell.NewEventMouse(squareX(col), boardY+row, tcell.ButtonNone, tcell.ModNone))
	}

	press(6, 7) // g1
	assert.Equal(t, "g1", app.session.Selected().String())
	press(5, 5) // f3
	assert.Equal(t, []string{"g1f3"}, app.session.History())
	assert.Equal(t, "f3", app.Cursor().String())

	// Holding the button while moving does not click again.
	app.HandleEvent(tcell.NewEventMouse(squareX(6), boardY+1, tcell.Button1, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(squareX(6), boardY+2, tcell.Button1, tcell.ModNone))
	assert.Equal(t, "g7", app.session.Selected().String())

	// Clicks off the board are ignored.
	app.HandleEvent(tcell.NewEventMouse(70, 20, tcell.ButtonNone, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(70, 20, tcell.Button1, tcell.ModNone))
	assert.Equal(t, "g7", app.session.Selected().String())
}

func TestFlip(t *testing.T) {
	app, screen := newTestApp(t)
	app.HandleEvent(char('f'))
	app.Draw()

	assert.Equal(t, '♜', cellRune(screen, squareX(0), boardY)) // h1
	assert.True(t, strings.HasPrefix(line(screen, boardY), "1"))
	assert.Contains(t, line(screen, filesY), "h  g  f  e  d  c  b  a")
	assert.Equal(t, board.NewSquare(7, 7), app.squareAt(squareX(0), boardY))

	// Up still means up on screen: from e2 towards rank 1.
	app.HandleEvent(key(tcell.KeyUp))
	assert.Equal(t, "e1", app.Cursor().String())
}

func TestUndoResetAndMate(t *testing.T) {
	app, screen := newTestApp(t)

	app.HandleEvent(char('z'))
	app.Draw()
	assert.Equal(t, "Nothing to undo", line(screen, messageY))

	for _, mv := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		from, _ := board.ParseSquare(mv[:2])
		to, _ := board.ParseSquare(mv[2:])
		app.click(from)
		app.click(to)
	}
	app.Draw()
	assert.Equal(t, "Black wins by checkmate!", line(screen, statusY))

	app.HandleEvent(char('z'))
	app.Draw()
	assert.Equal(t, "Move taken back", line(screen, messageY))
	assert.Equal(t, "Black to move  last g2g4", line(screen, statusY))

	app.HandleEvent(char('r'))
	app.Draw()
	assert.Empty(t, app.session.History())
	assert.Equal(t, "New game", line(screen, messageY))
}

func TestQuit(t *testing.T) {
	for _, ev := range []tcell.Event{char('q'), key(tcell.KeyEscape), key(tcell.KeyCtrlC)} {
		app, _ := newTestApp(t)
		assert.False(t, app.HandleEvent(ev))
	}
}

func TestRunReturnsOnQuit(t *testing.T) {
	app, screen := newTestApp(t)
	screen.InjectKey(tcell.KeyRune, 'l', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	require.NoError(t, app.Run())
	assert.Equal(t, "f2", app.Cursor().String())
}
