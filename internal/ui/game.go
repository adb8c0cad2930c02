package ui

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/play"
	"github.com/hailam/chessboard/internal/storage"
)

// UI Constants
const (
	BoardSize    = 512
	SquareSize   = BoardSize / 8
	PanelWidth   = 240
	ScreenWidth  = BoardSize + PanelWidth
	ScreenHeight = BoardSize
)

const helpMessage = "Click or drag to move. Z undo, R new, F flip, M sound"

// Game implements ebiten.Game interface.
type Game struct {
	session *play.Session

	// Storage; store is nil when persistence is disabled
	store *storage.Storage
	prefs *storage.UserPreferences
	stats *storage.GameStats

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager
	glass    *GlassEffect

	// Board interaction
	anim         *MoveAnimation
	dragging     bool
	dragFrom     board.Square
	dragPiece    board.Piece
	pressedAgain bool // press landed on the already selected square
}

// NewGame creates the GUI. store may be nil, in which case preferences and
// statistics live only for this run.
func NewGame(store *storage.Storage) *Game {
	g := &Game{
		store:    store,
		renderer: NewRenderer(BoardSize, SquareSize),
		input:    NewInputHandler(),
		feedback: NewFeedbackManager(),
		glass:    NewGlassEffect(),
		dragFrom: board.NoSquare,
	}

	var rec play.Recorder
	if store != nil {
		rec = store
	}
	g.session = play.NewSession(rec)

	g.loadPreferences()
	g.refreshStats()
	g.panel = NewPanel(g)
	g.checkFirstLaunch()
	return g
}

// loadPreferences loads user preferences from storage and applies them.
func (g *Game) loadPreferences() {
	g.prefs = storage.DefaultPreferences()
	if g.store != nil {
		prefs, err := g.store.LoadPreferences()
		if err != nil {
			log.Printf("Warning: Failed to load preferences: %v", err)
		} else {
			g.prefs = prefs
		}
	}

	g.renderer.SetFlipped(g.prefs.FlipBoard)
	g.feedback.Audio().SetEnabled(g.prefs.SoundEnabled)
}

// savePreferences saves current preferences to storage.
func (g *Game) savePreferences() {
	if g.store == nil {
		return
	}
	g.prefs.FlipBoard = g.renderer.Flipped()
	g.prefs.SoundEnabled = g.feedback.Audio().IsEnabled()
	if err := g.store.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

func (g *Game) refreshStats() {
	if g.store == nil {
		return
	}
	stats, err := g.store.LoadStats()
	if err != nil {
		log.Printf("Warning: Failed to load stats: %v", err)
		return
	}
	g.stats = stats
}

// checkFirstLaunch shows the controls once, on the very first run.
func (g *Game) checkFirstLaunch() {
	if g.store == nil {
		return
	}
	first, err := g.store.IsFirstLaunch()
	if err != nil {
		log.Printf("Warning: Failed to check first launch: %v", err)
		return
	}
	if !first {
		return
	}
	g.feedback.Info(helpMessage, 6*time.Second)
	if err := g.store.MarkFirstLaunchComplete(); err != nil {
		log.Printf("Warning: Failed to mark first launch complete: %v", err)
	}
}

// Update handles game logic updates.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()

	g.handleKeys()

	if g.panel.HandleInput(g.input) {
		g.updateCursor()
		return nil
	}

	if g.anim != nil {
		if !g.anim.Update() {
			g.anim = nil
		}
	} else {
		g.handleBoardInput()
	}

	g.updateCursor()
	return nil
}

func (g *Game) handleKeys() {
	for _, k := range g.input.JustPressedKeys() {
		switch k {
		case ebiten.KeyZ:
			g.UndoAction()
		case ebiten.KeyR:
			g.NewGameAction()
		case ebiten.KeyF:
			g.FlipAction()
		case ebiten.KeyM:
			g.ToggleSoundAction()
		case ebiten.KeyH:
			g.feedback.Info(helpMessage, 4*time.Second)
		}
	}
}

// updateCursor sets the cursor shape based on what's being hovered.
func (g *Game) updateCursor() {
	if g.panel.AnyButtonHovered() || g.dragging {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// handleBoardInput turns presses into Session clicks and drops into moves.
func (g *Game) handleBoardInput() {
	mx, my := g.input.MousePosition()
	sq := g.renderer.ScreenToSquare(mx, my)

	if g.input.IsLeftJustPressed() && sq.OnBoard() {
		g.press(sq)
	}
	if g.dragging && g.input.IsLeftJustReleased() {
		g.release(sq)
	}
}

func (g *Game) press(sq board.Square) {
	if sq == g.session.Selected() {
		g.pressedAgain = true
		g.startDrag(sq)
		return
	}

	g.pressedAgain = false
	ev := g.session.Click(sq)
	g.handleEvent(ev, true)
	if ev.Kind == play.EventSelected {
		g.startDrag(sq)
	}
}

func (g *Game) startDrag(sq board.Square) {
	g.dragging = true
	g.dragFrom = sq
	g.dragPiece = g.session.State().Board.At(sq)
}

func (g *Game) release(sq board.Square) {
	from := g.dragFrom
	g.dragging = false
	g.dragFrom = board.NoSquare

	switch {
	case sq == from:
		// A plain click. Clicking the selected square again deselects it.
		if g.pressedAgain {
			g.handleEvent(g.session.Click(sq), true)
		}
	case sq.OnBoard():
		ev, err := g.session.Move(from, g.dropTarget(from, sq), board.NoPieceType)
		if err != nil {
			log.Printf("[UI] Drop %s%s rejected: %v", from, sq, err)
		}
		g.handleEvent(ev, false)
	}
}

// dropTarget lets a king be dropped on its own rook to castle.
func (g *Game) dropTarget(from, to board.Square) board.Square {
	b := &g.session.State().Board
	king, rook := b.At(from), b.At(to)
	if king.Type() != board.King || rook.Type() != board.Rook || king.Color() != rook.Color() {
		return to
	}
	for _, m := range g.session.ValidMoves() {
		if m.Castle && m.From == from && (m.To.Col > from.Col) == (to.Col > from.Col) {
			return m.To
		}
	}
	return to
}

// handleEvent turns a Session event into feedback. animate is false for
// drops, where the piece has already been carried to its square.
func (g *Game) handleEvent(ev play.Event, animate bool) {
	switch ev.Kind {
	case play.EventMoved:
		if animate && g.prefs.AnimateMoves {
			g.anim = NewMoveAnimation(ev.Move)
		}
		g.feedback.OnMoved(ev.Move, g.session)
		g.panel.ScrollToEnd()
		if g.session.Over() {
			g.refreshStats()
		}
	case play.EventRejected:
		g.feedback.OnRejected(ev)
	}
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.renderer.Theme().Background)
	g.renderer.DrawBoard(screen)

	state := g.session.State()
	var last *board.Move
	if m, ok := state.LastMove(); ok {
		last = &m
	}

	var targets []board.Square
	if g.prefs.ShowLegalMoves {
		targets = g.session.TargetsFrom(g.session.Selected())
	}
	g.renderer.DrawHighlights(screen, g.session.Selected(), targets, last)

	if state.InCheck {
		g.renderer.DrawCheck(screen, state.KingSquare[state.SideToMove])
	}

	var skip []board.Square
	if g.dragging {
		skip = append(skip, g.dragFrom)
	}
	if g.anim != nil {
		skip = append(skip, g.anim.Hidden()...)
	}
	g.renderer.DrawPieces(&state.Board, screen, g.feedback.Animations(), skip...)

	if g.anim != nil {
		g.anim.Draw(screen, g.renderer)
	}
	if g.dragging {
		mx, my := g.input.MousePosition()
		g.renderer.DrawPieceCentered(screen, g.dragPiece, mx, my)
	}

	g.feedback.Draw(screen, g.renderer)
	g.panel.Draw(screen)

	if g.session.Over() && g.anim == nil {
		g.glass.DrawBanner(screen, g.session.Result())
	}
}

// Layout returns the game's logical screen dimensions; ebiten scales them
// to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// NewGameAction discards the current game and starts over.
func (g *Game) NewGameAction() {
	g.session.Reset()
	g.resetInteraction()
	log.Printf("[GAME] New game")
}

// UndoAction takes back the last move.
func (g *Game) UndoAction() {
	g.resetInteraction()
	if !g.session.Undo() {
		g.feedback.Info("Nothing to undo", time.Second)
	}
}

// FlipAction turns the board around and remembers the choice.
func (g *Game) FlipAction() {
	g.renderer.SetFlipped(!g.renderer.Flipped())
	g.savePreferences()
}

// ToggleSoundAction mutes or unmutes the sound effects.
func (g *Game) ToggleSoundAction() {
	audio := g.feedback.Audio()
	audio.SetEnabled(!audio.IsEnabled())
	g.savePreferences()
}

func (g *Game) resetInteraction() {
	g.anim = nil
	g.dragging = false
	g.dragFrom = board.NoSquare
	g.pressedAgain = false
}

// Session returns the game being played.
func (g *Game) Session() *play.Session {
	return g.session
}

// Stats returns the statistics last read from storage, or nil.
func (g *Game) Stats() *storage.GameStats {
	return g.stats
}

// SoundEnabled reports whether sound effects are on.
func (g *Game) SoundEnabled() bool {
	return g.feedback.Audio().IsEnabled()
}

// Close saves preferences before shutdown.
func (g *Game) Close() {
	g.savePreferences()
}
