// Package play drives a game from user input. It turns square clicks and
// drag-and-drop moves into engine calls and keeps the per-turn legal move
// list that both front ends draw from.
package play

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/storage"
)

// ErrGameOver is returned by Move once the game has ended.
var ErrGameOver = errors.New("game is over")

// Recorder persists finished games.
type Recorder interface {
	RecordGame(result storage.GameResult) error
}

// EventKind classifies the outcome of a click or move request.
type EventKind int

const (
	EventSelected EventKind = iota
	EventDeselected
	EventMoved
	EventRejected
)

// Reason explains a rejected click or move.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoPiece
	ReasonBlockedByOwnPiece
	ReasonWouldLeaveKingInCheck
	ReasonInvalidPieceMovement
	ReasonInvalidPromotion
	ReasonGameOver
	ReasonOutOfBounds
)

// String returns a short message for the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNoPiece:
		return "No piece of yours there"
	case ReasonBlockedByOwnPiece:
		return "Square occupied by your piece"
	case ReasonWouldLeaveKingInCheck:
		return "King would be in check"
	case ReasonInvalidPieceMovement:
		return "Invalid move for this piece"
	case ReasonInvalidPromotion:
		return "Invalid promotion piece"
	case ReasonGameOver:
		return "Game is over"
	case ReasonOutOfBounds:
		return "Off the board"
	}
	return ""
}

// Event reports what a click or move request did.
type Event struct {
	Kind   EventKind
	Square board.Square // the square acted on
	From   board.Square // the selection a rejected move started from
	Move   board.Move   // set for EventMoved
	Reason Reason       // set for EventRejected
}

// Session is a single game driven by user input. It is not safe for
// concurrent use.
type Session struct {
	game     *board.GameState
	moves    []board.Move
	selected board.Square

	rec      Recorder
	started  time.Time
	recorded bool
}

// NewSession starts a new game. rec may be nil.
func NewSession(rec Recorder) *Session {
	s := &Session{rec: rec}
	s.Reset()
	return s
}

// Reset discards the current game and starts a new one.
func (s *Session) Reset() {
	s.game = board.NewGame()
	s.moves = s.game.ValidMoves()
	s.selected = board.NoSquare
	s.started = time.Now()
	s.recorded = false
}

// Click handles a click on sq using two-click selection: the first click picks
// one of the mover's pieces, the second plays a legal move to the clicked
// square. Clicking the selected square again deselects it.
func (s *Session) Click(sq board.Square) Event {
	if !sq.OnBoard() {
		return Event{Kind: EventRejected, Square: sq, From: s.selected, Reason: ReasonOutOfBounds}
	}
	if s.Over() {
		return Event{Kind: EventRejected, Square: sq, From: s.selected, Reason: ReasonGameOver}
	}

	if sq == s.selected {
		s.selected = board.NoSquare
		return Event{Kind: EventDeselected, Square: sq}
	}

	piece := s.game.Board.At(sq)
	own := !piece.IsEmpty() && piece.Color() == s.game.SideToMove

	if s.selected == board.NoSquare {
		if own {
			s.selected = sq
			return Event{Kind: EventSelected, Square: sq}
		}
		return Event{Kind: EventRejected, Square: sq, Reason: ReasonNoPiece}
	}

	from := s.selected
	if m, ok := s.find(from, sq); ok {
		s.apply(m)
		return Event{Kind: EventMoved, Square: sq, From: from, Move: m}
	}
	if own {
		s.selected = sq
		return Event{Kind: EventSelected, Square: sq}
	}

	s.selected = board.NoSquare
	return Event{Kind: EventRejected, Square: sq, From: from, Reason: s.reason(from, sq)}
}

// Move plays the move from one square to another, as used for drag and drop
// and typed input. promo picks the promotion piece; NoPieceType means queen.
func (s *Session) Move(from, to board.Square, promo board.PieceType) (Event, error) {
	reject := func(r Reason) Event {
		return Event{Kind: EventRejected, Square: to, From: from, Reason: r}
	}

	if !from.OnBoard() || !to.OnBoard() {
		return reject(ReasonOutOfBounds), fmt.Errorf("%w: %s%s", board.ErrOutOfBounds, from, to)
	}
	if s.Over() {
		return reject(ReasonGameOver), ErrGameOver
	}
	// The cached list is the one Click and TargetsFrom offer the user.
	m, err := board.SelectMove(s.moves, from, to, promo)
	if errors.Is(err, board.ErrInvalidPromotion) {
		return reject(ReasonInvalidPromotion), err
	}
	if err != nil {
		s.selected = board.NoSquare
		return reject(s.reason(from, to)), err
	}

	s.apply(m)
	return Event{Kind: EventMoved, Square: to, From: from, Move: m}, nil
}

// Undo takes back the last move. It returns false when there is nothing to undo.
func (s *Session) Undo() bool {
	if s.game.Plies() == 0 {
		return false
	}
	s.game.UndoMove()
	s.moves = s.game.ValidMoves()
	s.selected = board.NoSquare
	log.Printf("[MOVE] Undo: SideToMove=%v, plies=%d", s.game.SideToMove, s.game.Plies())
	return true
}

// find looks up a legal move in the cached list.
func (s *Session) find(from, to board.Square) (board.Move, bool) {
	m, err := board.SelectMove(s.moves, from, to, board.NoPieceType)
	return m, err == nil
}

// apply plays m and regenerates the legal move list for the next turn.
func (s *Session) apply(m board.Move) {
	log.Printf("[MOVE] %v plays %s (%s)", s.game.SideToMove, m, m.Moved.Code())

	s.game.MakeMove(m)
	s.moves = s.game.ValidMoves()
	s.selected = board.NoSquare

	s.checkGameEnd()
}

// checkGameEnd records the result the first time the game ends.
func (s *Session) checkGameEnd() {
	if !s.Over() || s.recorded {
		return
	}
	s.recorded = true
	log.Printf("[GAME] %s (%s after %d plies)", s.Result(), s.game.Outcome(), s.game.Plies())

	if s.rec == nil {
		return
	}
	result := storage.GameResult{
		Stalemate: s.game.Stalemate,
		Plies:     s.game.Plies(),
		Duration:  s.Elapsed(),
	}
	if s.game.Checkmate {
		result.Winner = storage.WinnerWhite
		if s.game.SideToMove == board.White {
			result.Winner = storage.WinnerBlack
		}
	}
	if err := s.rec.RecordGame(result); err != nil {
		log.Printf("[STORAGE] Failed to record game: %v", err)
	}
}

// reason explains why from-to is not a legal move.
func (s *Session) reason(from, to board.Square) Reason {
	piece := s.game.Board.At(from)
	if piece.IsEmpty() || piece.Color() != s.game.SideToMove {
		return ReasonNoPiece
	}

	dest := s.game.Board.At(to)
	if !dest.IsEmpty() && dest.Color() == piece.Color() {
		return ReasonBlockedByOwnPiece
	}

	// Generated without pins and king safety, so legal filtering removed it.
	for _, m := range s.game.PseudoLegalMoves() {
		if m.From == from && m.To == to {
			return ReasonWouldLeaveKingInCheck
		}
	}
	return ReasonInvalidPieceMovement
}

// ValidMoves returns the legal moves for the side to move.
func (s *Session) ValidMoves() []board.Move {
	return s.moves
}

// TargetsFrom returns the destinations of the legal moves starting on sq.
func (s *Session) TargetsFrom(sq board.Square) []board.Square {
	var targets []board.Square
	for _, m := range s.moves {
		if m.From == sq {
			targets = append(targets, m.To)
		}
	}
	return targets
}

// Selected returns the selected square, or board.NoSquare.
func (s *Session) Selected() board.Square {
	return s.selected
}

// State returns the engine state. Callers must not modify it.
func (s *Session) State() *board.GameState {
	return s.game
}

// Over returns true once the game has ended by checkmate or stalemate.
func (s *Session) Over() bool {
	return s.game.Checkmate || s.game.Stalemate
}

// Result returns a human readable result, or "" while the game is running.
func (s *Session) Result() string {
	switch {
	case s.game.Checkmate && s.game.SideToMove == board.White:
		return "Black wins by checkmate!"
	case s.game.Checkmate:
		return "White wins by checkmate!"
	case s.game.Stalemate:
		return "Draw by stalemate"
	}
	return ""
}

// History returns the notation of every move played.
func (s *Session) History() []string {
	out := make([]string, len(s.game.MoveHistory))
	for i, m := range s.game.MoveHistory {
		out[i] = m.Notation()
	}
	return out
}

// Elapsed returns the time since the game started.
func (s *Session) Elapsed() time.Duration {
	return time.Since(s.started)
}
