package ui

import (
	"image/color"
	"math"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/play"
)

// timed is anything that runs for a fixed duration from a start time.
type timed struct {
	start    time.Time
	duration time.Duration
}

func startTimed(d time.Duration) timed {
	return timed{start: time.Now(), duration: d}
}

// progress returns the elapsed fraction in [0, 1].
func (t timed) progress() float64 {
	p := float64(time.Since(t.start)) / float64(t.duration)
	return math.Min(math.Max(p, 0), 1)
}

func (t timed) expired() bool {
	return time.Since(t.start) >= t.duration
}

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastSuccess
)

var toastStyles = map[ToastType]struct{ bg, fg color.RGBA }{
	ToastInfo:    {color.RGBA{50, 100, 150, 220}, color.RGBA{255, 255, 255, 255}},
	ToastWarning: {color.RGBA{180, 140, 20, 220}, color.RGBA{40, 30, 0, 255}},
	ToastSuccess: {color.RGBA{50, 150, 50, 220}, color.RGBA{255, 255, 255, 255}},
}

// Toast represents a notification message.
type Toast struct {
	timed
	Message string
	Type    ToastType
}

// alpha fades the toast in and out over its first and last 200ms.
func (t *Toast) alpha() float64 {
	const fade = 0.2
	elapsed := time.Since(t.start).Seconds()
	remaining := t.duration.Seconds() - elapsed
	return math.Max(0, math.Min(1, math.Min(elapsed, remaining)/fade))
}

// ToastManager keeps at most maxStack toasts on screen.
type ToastManager struct {
	toasts   []*Toast
	maxStack int
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{maxStack: 3}
}

// Show displays a new toast notification, dropping the oldest when full.
func (tm *ToastManager) Show(message string, toastType ToastType, duration time.Duration) {
	tm.toasts = append(tm.toasts, &Toast{timed: startTimed(duration), Message: message, Type: toastType})
	if over := len(tm.toasts) - tm.maxStack; over > 0 {
		tm.toasts = tm.toasts[over:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update() {
	tm.toasts = slices.DeleteFunc(tm.toasts, func(t *Toast) bool { return t.expired() })
}

// Draw stacks the active toasts near the top of the board.
func (tm *ToastManager) Draw(screen *ebiten.Image) {
	face := GetRegularFace()
	if face == nil {
		return
	}

	const padding = 12.0
	y := 50.0
	for _, t := range tm.toasts {
		style := toastStyles[t.Type]
		a := t.alpha()

		w, h := MeasureText(t.Message, face)
		boxW, boxH := w+padding*2, h+padding*2
		x := float64(BoardSize)/2 - boxW/2

		vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), scaleAlpha(style.bg, a), false)
		drawText(screen, t.Message, face, x+padding, y+padding, scaleAlpha(style.fg, a))
		y += boxH + 8
	}
}

func scaleAlpha(c color.RGBA, a float64) color.RGBA {
	// Premultiplied: every channel scales with alpha.
	return color.RGBA{uint8(float64(c.R) * a), uint8(float64(c.G) * a), uint8(float64(c.B) * a), uint8(float64(c.A) * a)}
}

type effectKind int

const (
	effectShake effectKind = iota
	effectFlash
)

// squareEffect is a short-lived shake or flash on one square.
type squareEffect struct {
	timed
	kind   effectKind
	square board.Square
	color  color.RGBA
}

// AnimationManager runs the square effects shown after a rejected move.
type AnimationManager struct {
	effects []squareEffect
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartShake begins a shake animation on a square.
func (am *AnimationManager) StartShake(sq board.Square) {
	am.effects = append(am.effects, squareEffect{timed: startTimed(300 * time.Millisecond), kind: effectShake, square: sq})
}

// StartFlash begins a flash animation on a square.
func (am *AnimationManager) StartFlash(sq board.Square, c color.RGBA) {
	am.effects = append(am.effects, squareEffect{timed: startTimed(400 * time.Millisecond), kind: effectFlash, square: sq, color: c})
}

// Update removes expired animations.
func (am *AnimationManager) Update() {
	am.effects = slices.DeleteFunc(am.effects, func(e squareEffect) bool { return e.expired() })
}

// GetShakeOffset returns the horizontal displacement of a shaking piece: a
// damped sine of 8px amplitude.
func (am *AnimationManager) GetShakeOffset(sq board.Square) (float64, float64) {
	for _, e := range am.effects {
		if e.kind != effectShake || e.square != sq {
			continue
		}
		p := e.progress()
		return 8 * math.Exp(-5*p) * math.Sin(40*p), 0
	}
	return 0, 0
}

// DrawFlashes renders the fading flash overlays.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, r *Renderer) {
	size := float32(r.SquareSize())
	for _, e := range am.effects {
		if e.kind != effectFlash {
			continue
		}
		c := e.color
		c.A = uint8(float64(c.A) * (1 - e.progress()))
		x, y := r.SquareToScreen(e.square)
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, c, false)
	}
}

// FeedbackManager coordinates toasts, square effects and sounds.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager() *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(),
		animations: NewAnimationManager(),
		audio:      NewAudioManager(),
	}
}

// Update expires finished toasts and effects.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders all feedback overlays.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, r *Renderer) {
	fm.animations.DrawFlashes(screen, r)
	fm.toasts.Draw(screen)
}

// Animations returns the animation manager for renderer integration.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// OnRejected reacts to a rejected click or drop. Clicks that simply miss a
// piece stay silent.
func (fm *FeedbackManager) OnRejected(ev play.Event) {
	switch ev.Reason {
	case play.ReasonNone, play.ReasonNoPiece, play.ReasonOutOfBounds:
		return
	case play.ReasonGameOver:
		fm.toasts.Show(ev.Reason.String(), ToastInfo, 2*time.Second)
		return
	}

	fm.toasts.Show(ev.Reason.String(), ToastWarning, 2*time.Second)
	if ev.From.OnBoard() {
		fm.animations.StartShake(ev.From)
	}
	fm.animations.StartFlash(ev.Square, color.RGBA{255, 80, 80, 150})
	fm.audio.Play(SoundInvalid)
}

// OnMoved plays the move sound and announces check or the end of the game.
func (fm *FeedbackManager) OnMoved(m board.Move, s *play.Session) {
	switch {
	case m.Castle:
		fm.audio.Play(SoundCastle)
	case m.IsCapture():
		fm.audio.Play(SoundCapture)
	default:
		fm.audio.Play(SoundMove)
	}

	state := s.State()
	switch {
	case state.Checkmate:
		fm.toasts.Show(s.Result(), ToastSuccess, 5*time.Second)
		fm.audio.Play(SoundGameEnd)
	case state.Stalemate:
		fm.toasts.Show(s.Result(), ToastInfo, 5*time.Second)
		fm.audio.Play(SoundGameEnd)
	case state.InCheck:
		fm.toasts.Show("Check!", ToastWarning, 2*time.Second)
		fm.audio.Play(SoundCheck)
	}
}

// Info shows a neutral toast.
func (fm *FeedbackManager) Info(message string, d time.Duration) {
	fm.toasts.Show(message, ToastInfo, d)
}

// Audio returns the audio manager for settings access.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}
