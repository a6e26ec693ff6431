package render

import (
	"github.com/matzehuels/gridflow/pkg/canvas"
	"github.com/matzehuels/gridflow/pkg/geometry"
)

// DrawGroupFrame stamps a dotted group frame with solid corners and the
// wrapped label centered in the rows above the members.
//
//	┌.....................┐
//	.       Backend       .
//	.                     .
//	.  ┌────────┐         .
//	└.....................┘
//
// Frames are drawn before boxes and edges, so later passes may stamp over
// the dotted cells freely.
func DrawGroupFrame(c *canvas.Canvas, box geometry.GroupBox) {
	x, y := box.X, box.Y
	w, h := box.Width, box.Height

	c.Set(x, y, canvas.BoxTopLeft)
	c.Set(x+w-1, y, canvas.BoxTopRight)
	c.Set(x, y+h-1, canvas.BoxBottomLeft)
	c.Set(x+w-1, y+h-1, canvas.BoxBottomRight)

	for i := 1; i < w-1; i++ {
		c.Set(x+i, y, canvas.GroupBorder)
		c.Set(x+i, y+h-1, canvas.GroupBorder)
	}
	for row := 1; row < h-1; row++ {
		c.Set(x, y+row, canvas.GroupBorder)
		c.Set(x+w-1, y+row, canvas.GroupBorder)
	}

	for i, line := range box.LabelLines {
		textX := x + (w-len(line))/2
		c.DrawText(textX, y+1+i, line)
	}
}
