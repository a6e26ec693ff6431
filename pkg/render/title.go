package render

import (
	"github.com/matzehuels/gridflow/pkg/canvas"
	"github.com/matzehuels/gridflow/pkg/geometry"
)

// Title boxes use double-line borders so they read differently from nodes.
const (
	titleTopLeft     = '╔'
	titleTopRight    = '╗'
	titleBottomLeft  = '╚'
	titleBottomRight = '╝'
	titleHorizontal  = '═'
	titleVertical    = '║'
)

const (
	titlePadding   = 2
	titleWrapWidth = 15
)

// TitleDimensions returns the outer size of the title box. The title wraps
// at a fixed width and the box sizes to the wrapped content.
func TitleDimensions(title string) (width, height int) {
	lines := geometry.WrapText(title, titleWrapWidth)

	maxLine := 0
	for _, line := range lines {
		if len(line) > maxLine {
			maxLine = len(line)
		}
	}
	return maxLine + 2*titlePadding + 2, len(lines) + 2
}

// DrawTitle stamps the title box at (x, y) and returns its height.
func DrawTitle(c *canvas.Canvas, x, y int, title string) int {
	lines := geometry.WrapText(title, titleWrapWidth)
	w, h := TitleDimensions(title)

	c.Set(x, y, titleTopLeft)
	for i := 1; i < w-1; i++ {
		c.Set(x+i, y, titleHorizontal)
	}
	c.Set(x+w-1, y, titleTopRight)

	for row := 1; row < h-1; row++ {
		c.Set(x, y+row, titleVertical)
		c.Set(x+w-1, y+row, titleVertical)
	}

	c.Set(x, y+h-1, titleBottomLeft)
	for i := 1; i < w-1; i++ {
		c.Set(x+i, y+h-1, titleHorizontal)
	}
	c.Set(x+w-1, y+h-1, titleBottomRight)

	for i, line := range lines {
		textX := x + 1 + (w-2-len(line))/2
		c.DrawText(textX, y+1+i, line)
	}
	return h
}
