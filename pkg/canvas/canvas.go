// Package canvas provides the 2D character grid that flowcharts are drawn on.
//
// The canvas tracks one rune per cell. Writes outside the grid are silently
// ignored, which lets drawing code run unguarded near the edges. Line glyphs
// are combined through [Canvas.MergeLine], which unions the direction sets of
// the existing and incoming glyphs so crossing and joining edges upgrade to
// the correct tee or cross automatically.
package canvas

import "strings"

// Box-drawing glyphs.
const (
	BoxTopLeft     = '┌'
	BoxTopRight    = '┐'
	BoxBottomLeft  = '└'
	BoxBottomRight = '┘'
	BoxHorizontal  = '─'
	BoxVertical    = '│'
	Shadow         = '░'
)

// Arrowhead glyphs. Arrows are terminal: once placed, no line merge
// overwrites them.
const (
	ArrowDown  = '▼'
	ArrowUp    = '▲'
	ArrowRight = '►'
	ArrowLeft  = '◄'
)

// GroupBorder is the dotted glyph used for group frame edges. Like blanks
// and shadows, it may be drawn over by edges.
const GroupBorder = '.'

// Canvas is a fixed-size 2D character grid.
// The zero value is not usable - use New.
type Canvas struct {
	width  int
	height int
	grid   [][]rune
}

// New creates a canvas of the given size filled with spaces.
// Negative dimensions are treated as zero.
func New(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	grid := make([][]rune, height)
	for y := range grid {
		row := make([]rune, width)
		for x := range row {
			row[x] = ' '
		}
		grid[y] = row
	}
	return &Canvas{width: width, height: height, grid: grid}
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in cells.
func (c *Canvas) Height() int { return c.height }

// Set writes a rune at (x, y). Out-of-bounds writes are ignored.
func (c *Canvas) Set(x, y int, r rune) {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		c.grid[y][x] = r
	}
}

// Get returns the rune at (x, y), or a space for out-of-bounds reads.
func (c *Canvas) Get(x, y int) rune {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		return c.grid[y][x]
	}
	return ' '
}

// DrawText writes a string left-to-right starting at (x, y).
// Characters falling outside the grid are dropped.
func (c *Canvas) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		c.Set(x+i, y, r)
		i++
	}
}

// MergeLine merges a line glyph with the given direction set into (x, y).
//
// Overwritable cells (blank, shadow, group borders) take the incoming glyph
// directly. Arrowheads are never overwritten. Any other line glyph is
// replaced by the glyph for the union of its direction set and d, which is
// what turns a corner crossed by a vertical line into a tee, or a tee fed
// from its missing side into a cross.
//
// Cells holding glyphs with no direction set - box interiors, label and
// title text - are left untouched. Routed segments legitimately pass over
// such cells (a group label sitting in the channel above a member box, a
// back edge crossing a taller sibling's label row), and the run simply
// resumes on the far side.
func (c *Canvas) MergeLine(x, y int, d Dirs) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}

	cur := c.grid[y][x]
	switch cur {
	case ' ', Shadow, GroupBorder:
		c.grid[y][x] = d.Glyph()
		return
	case ArrowDown, ArrowUp, ArrowRight, ArrowLeft:
		return
	}

	existing, ok := glyphDirs[cur]
	if !ok {
		return
	}
	c.grid[y][x] = (existing | d).Glyph()
}

// Render converts the canvas to a string. Trailing spaces are stripped from
// each line and trailing blank lines are dropped.
func (c *Canvas) Render() string {
	lines := make([]string, c.height)
	for y, row := range c.grid {
		lines[y] = strings.TrimRight(string(row), " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
