// Package pieces draws the piece set as SVG and rasterizes it.
package pieces

import (
	"bytes"
	"fmt"
	"image"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/chessboard/internal/board"
)

// ViewBox is the side of the square canvas the drawings use.
const ViewBox = 100

// Render draws p into a size x size image.
func Render(p board.Piece, size int) (*image.RGBA, error) {
	if p.IsEmpty() {
		return nil, fmt.Errorf("render %s: empty cell", p.Code())
	}
	return Rasterize(SVG(p), size)
}

// Rasterize renders an SVG document into a size x size RGBA image.
func Rasterize(data []byte, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	// The parser accepts non-SVG input and yields an empty icon.
	if icon.ViewBox.W == 0 || icon.ViewBox.H == 0 || len(icon.SVGPaths) == 0 {
		return nil, fmt.Errorf("parse svg: no drawing")
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

// SVG returns the drawing of p. Every piece stands on the same base.
func SVG(p board.Piece) []byte {
	fill, stroke := `fill="#f8f8f4"`, `stroke="#1a1a1a"`
	if p.Color() == board.Black {
		fill, stroke = `fill="#2b2b2b"`, `stroke="#050505"`
	}
	style := []string{fill, stroke, `stroke-width="3"`, `stroke-linejoin="round"`}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(ViewBox, ViewBox, 0, 0, ViewBox, ViewBox)

	switch p.Type() {
	case board.Pawn:
		canvas.Polygon([]int{40, 60, 68, 32}, []int{46, 46, 80, 80}, style...)
		canvas.Circle(50, 32, 13, style...)
	case board.Knight:
		canvas.Polygon(
			[]int{30, 33, 46, 38, 50, 58, 74, 70},
			[]int{80, 54, 38, 28, 14, 22, 44, 80},
			style...)
		canvas.Circle(52, 28, 3, stroke, `fill="#1a1a1a"`)
	case board.Bishop:
		canvas.Polygon([]int{34, 66, 70, 30}, []int{70, 70, 80, 80}, style...)
		canvas.Ellipse(50, 48, 16, 24, style...)
		canvas.Circle(50, 18, 6, style...)
		canvas.Line(44, 46, 56, 38, stroke, `stroke-width="3"`)
	case board.Rook:
		canvas.Rect(32, 36, 36, 40, style...)
		canvas.Rect(26, 18, 12, 18, style...)
		canvas.Rect(44, 18, 12, 18, style...)
		canvas.Rect(62, 18, 12, 18, style...)
		canvas.Rect(26, 70, 48, 10, style...)
	case board.Queen:
		canvas.Polygon(
			[]int{28, 20, 36, 42, 50, 58, 64, 80, 72},
			[]int{80, 32, 54, 24, 50, 24, 54, 32, 80},
			style...)
		canvas.Circle(20, 32, 5, style...)
		canvas.Circle(42, 24, 5, style...)
		canvas.Circle(58, 24, 5, style...)
		canvas.Circle(80, 32, 5, style...)
	case board.King:
		canvas.Polygon([]int{30, 34, 66, 70}, []int{80, 40, 40, 80}, style...)
		canvas.Rect(46, 8, 8, 30, style...)
		canvas.Rect(37, 16, 26, 8, style...)
	}

	canvas.Roundrect(22, 80, 56, 10, 4, 4, style...)
	canvas.End()
	return buf.Bytes()
}
