// Package render stamps fixed glyph patterns onto the canvas: node boxes
// with optional shadows and rounded corners, dotted group frames with
// labels, and the double-line title box. Everything here writes fixed
// shapes at precomputed coordinates; line routing lives elsewhere.
package render

import (
	"github.com/matzehuels/gridflow/pkg/canvas"
	"github.com/matzehuels/gridflow/pkg/geometry"
)

// Rounded corner glyphs, swapped in for the square set when requested.
const (
	roundedTopLeft     = '╭'
	roundedTopRight    = '╮'
	roundedBottomLeft  = '╰'
	roundedBottomRight = '╯'
)

// BoxStyle selects the appearance of node boxes.
type BoxStyle struct {
	Rounded bool // Rounded corners instead of square
	Shadow  bool // Light-shade shadow right and below
}

// DrawBox stamps a node box at (x, y) with the label lines centered inside.
//
//	┌──────────┐
//	│   TEXT   │░
//	└──────────┘░
//	  ░░░░░░░░░░░
//
// The shadow covers the right side of the content and bottom border rows
// plus one full row below, offset one cell so it reads as depth rather
// than outline.
func DrawBox(c *canvas.Canvas, x, y int, d geometry.Dimensions, style BoxStyle) {
	w, h := d.Width, d.Height

	topLeft, topRight := canvas.BoxTopLeft, canvas.BoxTopRight
	bottomLeft, bottomRight := canvas.BoxBottomLeft, canvas.BoxBottomRight
	if style.Rounded {
		topLeft, topRight = roundedTopLeft, roundedTopRight
		bottomLeft, bottomRight = roundedBottomLeft, roundedBottomRight
	}

	c.Set(x, y, topLeft)
	for i := 1; i < w-1; i++ {
		c.Set(x+i, y, canvas.BoxHorizontal)
	}
	c.Set(x+w-1, y, topRight)

	for row := 1; row < h-1; row++ {
		c.Set(x, y+row, canvas.BoxVertical)
		c.Set(x+w-1, y+row, canvas.BoxVertical)
		if style.Shadow {
			c.Set(x+w, y+row, canvas.Shadow)
		}
	}

	c.Set(x, y+h-1, bottomLeft)
	for i := 1; i < w-1; i++ {
		c.Set(x+i, y+h-1, canvas.BoxHorizontal)
	}
	c.Set(x+w-1, y+h-1, bottomRight)

	if style.Shadow {
		c.Set(x+w, y+h-1, canvas.Shadow)
		for i := 1; i <= w; i++ {
			c.Set(x+i, y+h, canvas.Shadow)
		}
	}

	// Center the label block vertically between the borders, then each
	// line horizontally. Compact boxes have exactly as many content rows
	// as label lines, so the vertical offset collapses to zero.
	contentRows := h - 2
	topOffset := (contentRows - len(d.TextLines)) / 2
	for i, line := range d.TextLines {
		textX := x + 1 + (w-2-len(line))/2
		c.DrawText(textX, y+1+topOffset+i, line)
	}
}
