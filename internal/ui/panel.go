package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessboard/internal/board"
)

// Panel dimensions
const (
	PanelPadding   = 20
	SectionSpacing = 24
	ButtonHeight   = 40
	SmallButtonH   = 32
	SectionLabelH  = 20
	moveRowHeight  = 22
	statsHeight    = 56
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}
	buttonBg        = color.RGBA{50, 54, 60, 255}
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}
	buttonPressedBg = color.RGBA{40, 44, 50, 255}
	buttonBorder    = color.RGBA{70, 75, 82, 255}
	accentColor     = color.RGBA{76, 175, 120, 255}
	accentHover     = color.RGBA{96, 195, 140, 255}
	accentPressed   = color.RGBA{56, 155, 100, 255}
	textPrimary     = color.RGBA{240, 240, 245, 255}
	textSecondary   = color.RGBA{160, 165, 175, 255}
	textMuted       = color.RGBA{120, 125, 135, 255}
	dividerColor    = color.RGBA{60, 65, 72, 255}
	moveRowAlt      = color.RGBA{44, 48, 54, 255}
	statusCheck     = color.RGBA{255, 120, 120, 255}
	statusGameOver  = color.RGBA{255, 200, 80, 255}
)

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      func() string
	OnClick    func()
	primary    bool
	hovered    bool
	pressed    bool
}

func (b *Button) contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

func (b *Button) draw(screen *ebiten.Image) {
	bg, border, fg := buttonBg, buttonBorder, textSecondary
	if b.primary {
		bg, border, fg = accentColor, accentPressed, textPrimary
	}
	switch {
	case b.pressed && b.primary:
		bg = accentPressed
	case b.pressed:
		bg = buttonPressedBg
	case b.hovered && b.primary:
		bg = accentHover
	case b.hovered:
		bg, border = buttonHoverBg, accentColor
	}

	x, y, w, h := float32(b.X), float32(b.Y), float32(b.W), float32(b.H)
	vector.DrawFilledRect(screen, x, y, w, h, bg, false)
	vector.StrokeRect(screen, x, y, w, h, 1, border, false)
	drawTextCentered(screen, b.Label(), GetRegularFace(), float64(b.X+b.W/2), float64(b.Y+b.H/2), fg)
}

func staticLabel(s string) func() string {
	return func() string { return s }
}

// Panel is the side panel with controls, status, move history and stats.
type Panel struct {
	game    *Game
	buttons []*Button

	// Move history scroll
	scrollY    int
	maxScrollY int
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g}

	contentX := BoardSize + PanelPadding
	contentW := PanelWidth - PanelPadding*2
	smallW := (contentW - 8) / 3
	rowY := PanelPadding + ButtonHeight + 8

	p.buttons = []*Button{
		{X: contentX, Y: PanelPadding, W: contentW, H: ButtonHeight,
			Label: staticLabel("New Game"), OnClick: g.NewGameAction, primary: true},
		{X: contentX, Y: rowY, W: smallW, H: SmallButtonH,
			Label: staticLabel("Undo"), OnClick: g.UndoAction},
		{X: contentX + smallW + 4, Y: rowY, W: smallW, H: SmallButtonH,
			Label: staticLabel("Flip"), OnClick: g.FlipAction},
		{X: contentX + (smallW+4)*2, Y: rowY, W: smallW, H: SmallButtonH,
			Label: func() string {
				if g.SoundEnabled() {
					return "Sound"
				}
				return "Muted"
			},
			OnClick: g.ToggleSoundAction},
	}
	return p
}

func (p *Panel) statusY() int {
	return PanelPadding + ButtonHeight + 8 + SmallButtonH + SectionSpacing
}

func (p *Panel) historyY() int {
	return p.statusY() + SectionLabelH + 24 + SectionSpacing - 8
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	if _, wheelY := ebiten.Wheel(); wheelY != 0 && mx >= BoardSize && my >= p.historyY() {
		p.scrollY = max(0, min(p.maxScrollY, p.scrollY-int(wheelY*30)))
	}

	for _, b := range p.buttons {
		b.hovered = b.contains(mx, my)
		b.pressed = b.hovered && input.IsLeftPressed()
	}

	if !input.IsLeftJustPressed() {
		return false
	}
	for _, b := range p.buttons {
		if b.hovered {
			b.OnClick()
			return true
		}
	}
	return false
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	for _, b := range p.buttons {
		if b.hovered {
			return true
		}
	}
	return false
}

// ScrollToEnd keeps the latest move visible.
func (p *Panel) ScrollToEnd() {
	p.scrollY = 1 << 30
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, BoardSize, 0, PanelWidth, ScreenHeight, panelBg, false)

	for _, b := range p.buttons {
		b.draw(screen)
	}

	x := float64(BoardSize + PanelPadding)
	drawText(screen, "Status", GetRegularFace(), x, float64(p.statusY()), textMuted)
	if s := p.game.Session(); !s.Over() {
		clock := formatClock(s.Elapsed())
		w, _ := MeasureText(clock, GetRegularFace())
		drawText(screen, clock, GetRegularFace(), float64(ScreenWidth-PanelPadding)-w, float64(p.statusY()), textMuted)
	}
	p.drawStatus(screen, x, float64(p.statusY()+SectionLabelH+2))

	drawText(screen, "Moves", GetRegularFace(), x, float64(p.historyY()), textMuted)
	p.drawMoveHistory(screen, p.historyY()+SectionLabelH+4)

	p.drawStats(screen)
}

// formatClock renders d as m:ss, or h:mm:ss past the hour.
func formatClock(d time.Duration) string {
	secs := int(d / time.Second)
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func (p *Panel) drawStatus(screen *ebiten.Image, x, y float64) {
	s := p.game.Session()
	state := s.State()

	status, c := state.SideToMove.String()+" to move", color.Color(textPrimary)
	switch {
	case s.Over():
		status, c = s.Result(), statusGameOver
	case state.InCheck:
		status, c = state.SideToMove.String()+" is in check", statusCheck
	}
	drawText(screen, status, GetBoldFace(), x, y, c)
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, startY int) {
	moves := p.game.Session().History()
	x := float64(BoardSize + PanelPadding)
	if len(moves) == 0 {
		drawText(screen, "No moves yet", GetRegularFace(), x, float64(startY+5), textMuted)
		return
	}

	maxY := ScreenHeight - statsHeight - 8
	visible := maxY - startY
	rows := (len(moves) + 1) / 2
	p.maxScrollY = max(0, rows*moveRowHeight-visible)
	p.scrollY = min(p.scrollY, p.maxScrollY)

	first := p.scrollY / moveRowHeight
	y := startY - p.scrollY%moveRowHeight
	for row := first; row < rows && y <= maxY-moveRowHeight; row++ {
		if y >= startY {
			if row%2 == 1 {
				vector.DrawFilledRect(screen, float32(x-4), float32(y-2),
					float32(PanelWidth-PanelPadding*2+8), moveRowHeight, moveRowAlt, false)
			}
			drawText(screen, fmt.Sprintf("%d.", row+1), GetRegularFace(), x, float64(y), textMuted)
			drawText(screen, moves[row*2], GetRegularFace(), x+36, float64(y), textPrimary)
			if row*2+1 < len(moves) {
				drawText(screen, moves[row*2+1], GetRegularFace(), x+110, float64(y), textPrimary)
			}
		}
		y += moveRowHeight
	}

	if p.maxScrollY > 0 {
		total := float32(rows * moveRowHeight)
		barH := max(20, float32(visible)*float32(visible)/total)
		barY := float32(startY) + float32(p.scrollY)/float32(p.maxScrollY)*(float32(visible)-barH)
		vector.DrawFilledRect(screen, BoardSize+PanelWidth-8, barY, 4, barH, textMuted, false)
	}
}

func (p *Panel) drawStats(screen *ebiten.Image) {
	y := ScreenHeight - statsHeight
	x := float64(BoardSize + PanelPadding)
	vector.DrawFilledRect(screen, float32(x), float32(y), PanelWidth-PanelPadding*2, 1, dividerColor, false)

	stats := p.game.Stats()
	if stats == nil {
		drawText(screen, "Statistics unavailable", GetSmallFace(), x, float64(y+10), textMuted)
		return
	}
	drawText(screen, fmt.Sprintf("Games %d   %s %d   %s %d   Draws %d",
		stats.GamesPlayed, board.White, stats.WhiteWins, board.Black, stats.BlackWins, stats.Stalemates),
		GetSmallFace(), x, float64(y+10), textSecondary)
	drawText(screen, fmt.Sprintf("Average length %.1f plies, longest %d", stats.AverageLength(), stats.LongestGame),
		GetSmallFace(), x, float64(y+28), textSecondary)
}
