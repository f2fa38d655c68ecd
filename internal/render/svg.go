// SVG rendering of cutting layouts.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/mesh-intelligence/sawmill/pkg/types"
)

// DefaultScale is the pixels-per-unit used when the caller passes 0.
const DefaultScale = 10.0

// margin is the pixel gap around and between boards.
const margin = 20

// Drawing styles. Primary crosscuts are red, rip cuts and secondary
// crosscuts green, matching the shop convention of marking first cuts red.
const (
	styleBoard     = "fill:white;stroke:black;stroke-width:2"
	stylePiece     = "fill:burlywood;stroke:saddlebrown;stroke-width:1"
	stylePrimary   = "stroke:red;stroke-width:1"
	styleSecondary = "stroke:green;stroke-width:1"
	styleLabel     = "font-family:sans-serif;font-size:11px;fill:black"
	styleBoardID   = "font-family:sans-serif;font-size:13px;fill:black"
)

// WriteSVG draws the layout with boards stacked vertically, board length on
// the horizontal axis. Scale is pixels per unit; 0 means DefaultScale.
func WriteSVG(w io.Writer, l types.Layout, scale float64) {
	if scale <= 0 {
		scale = DefaultScale
	}
	px := func(v float64) int { return int(v * scale) }

	maxLen := 0.0
	totalWidth := 0.0
	for _, b := range l.Boards {
		if b.Board.Length > maxLen {
			maxLen = b.Board.Length
		}
		totalWidth += b.Board.Width
	}
	canvasW := px(maxLen) + 2*margin
	canvasH := px(totalWidth) + margin*(len(l.Boards)+1)

	canvas := svg.New(w)
	canvas.Start(canvasW, canvasH)

	y := margin
	for _, b := range l.Boards {
		drawBoard(canvas, b, margin, y, px)
		y += px(b.Board.Width) + margin
	}

	canvas.End()
}

// drawBoard draws one board outline, its pieces, and its cut lines at the
// given pixel origin.
func drawBoard(canvas *svg.SVG, b types.LayoutBoard, x0, y0 int, px func(float64) int) {
	boardW := px(b.Board.Length)
	boardH := px(b.Board.Width)
	canvas.Rect(x0, y0, boardW, boardH, styleBoard)
	canvas.Text(x0, y0-5, fmt.Sprintf("%s  %gx%g", b.Board.ID, b.Board.Length, b.Board.Width), styleBoardID)

	for _, r := range b.Rips {
		ripX := x0 + px(r.Offset)

		// Rip lines between adjacent strips run the segment length.
		for i, s := range r.Strips {
			stripY := y0 + px(s.Offset)
			if i > 0 {
				canvas.Line(ripX, stripY, ripX+px(r.Length), stripY, styleSecondary)
			}
			for j, c := range s.Cuts {
				cutX := ripX + px(c.Offset)
				canvas.Rect(cutX, stripY, px(c.Cut.Length), px(c.Cut.Width), stylePiece)
				if c.Cut.Name != "" {
					canvas.Text(cutX+3, stripY+px(c.Cut.Width)-4, c.Cut.Name, styleLabel)
				}
				// Secondary crosscut behind each piece except the strip's last.
				if j < len(s.Cuts)-1 {
					endX := cutX + px(c.Cut.Length)
					canvas.Line(endX, stripY, endX, stripY+px(s.Width), styleSecondary)
				}
			}
		}

		// Primary crosscut at the segment's far edge, unless it coincides
		// with the board end. Secondary segments get a green line instead.
		endX := ripX + px(r.Length)
		if endX < x0+px(b.Board.Length) {
			style := stylePrimary
			if r.Secondary {
				style = styleSecondary
			}
			canvas.Line(endX, y0, endX, y0+px(b.Board.Width), style)
		}
	}
}
