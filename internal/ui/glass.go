package ui

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// frostShader box-blurs the captured region with a 7x7 kernel spread by
// Spread pixels, then mixes in Tint by its alpha.
var frostShader = []byte(`
//kage:unit pixels

package main

var Spread float
var Tint vec4

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	var sum vec4
	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			sum += imageSrc0At(srcPos + vec2(float(i-3), float(j-3))*Spread)
		}
	}
	sum /= 49.0
	return mix(sum, vec4(Tint.rgb, 1), Tint.a)
}
`)

var (
	bannerTint = color.RGBA{20, 24, 30, 150}
	bannerText = color.RGBA{255, 220, 120, 255}
)

// GlassEffect draws frosted strips over the board.
type GlassEffect struct {
	shader  *ebiten.Shader
	capture *ebiten.Image
}

// NewGlassEffect compiles the frost shader. Without it strips fall back to a
// flat translucent fill.
func NewGlassEffect() *GlassEffect {
	shader, err := ebiten.NewShader(frostShader)
	if err != nil {
		log.Printf("[UI] Glass shader unavailable: %v", err)
		return &GlassEffect{}
	}
	return &GlassEffect{shader: shader}
}

// DrawStrip frosts the screen region x, y, w, h.
func (ge *GlassEffect) DrawStrip(screen *ebiten.Image, x, y, w, h int, tint color.RGBA, spread float32) {
	if w <= 0 || h <= 0 {
		return
	}
	if ge.shader == nil {
		overlay := ebiten.NewImage(w, h)
		overlay.Fill(tint)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(x), float64(y))
		screen.DrawImage(overlay, op)
		return
	}

	if ge.capture == nil || ge.capture.Bounds().Dx() != w || ge.capture.Bounds().Dy() != h {
		ge.capture = ebiten.NewImage(w, h)
	}
	ge.capture.Clear()
	cop := &ebiten.DrawImageOptions{}
	cop.GeoM.Translate(float64(-x), float64(-y))
	ge.capture.DrawImage(screen, cop)

	op := &ebiten.DrawRectShaderOptions{
		Uniforms: map[string]any{
			"Spread": spread,
			"Tint": []float32{
				float32(tint.R) / 255, float32(tint.G) / 255, float32(tint.B) / 255, float32(tint.A) / 255,
			},
		},
		Images: [4]*ebiten.Image{ge.capture},
	}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawRectShader(w, h, ge.shader, op)
}

// DrawBanner draws the game result across the middle of the board.
func (ge *GlassEffect) DrawBanner(screen *ebiten.Image, result string) {
	const height = 72
	y := (BoardSize - height) / 2
	ge.DrawStrip(screen, 0, y, BoardSize, height, bannerTint, 2)

	face := GetBannerFace()
	drawTextCentered(screen, result, face, BoardSize/2, float64(y)+height/2-8, bannerText)
	drawTextCentered(screen, "Press R for a new game", GetSmallFace(), BoardSize/2, float64(y)+height-14, textSecondary)
}
