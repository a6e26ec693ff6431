// Package geometry computes grid coordinates for all flowchart elements.
//
// Given a layered layout, it derives box dimensions from node labels,
// places boxes row by row (TB) or column by column (LR) centered against
// the widest layer, records the safe routing bands between layers, and
// computes group bounding boxes and the overall canvas size. All math is
// integer cell arithmetic - there are no fractional coordinates.
package geometry

import "strings"

// Config holds the spacing and sizing knobs for geometry calculations.
// Zero values are not defaulted here - use DefaultConfig and override.
type Config struct {
	MaxTextWidth      int  // Wrap node labels beyond this width
	MinBoxWidth       int  // Boxes narrower than this are widened
	Padding           int  // Horizontal padding inside boxes
	HorizontalSpacing int  // Cells between boxes in a row
	VerticalSpacing   int  // Cells between layers
	Shadow            bool // Boxes cast a one-cell shadow right and below
	Compact           bool // Skip the blank row above and below label text
	GroupPadding      int  // Cells between group frame and member boxes
	GroupSpacing      int  // Minimum cells between adjacent group frames
}

// DefaultConfig returns the standard geometry configuration.
func DefaultConfig() Config {
	return Config{
		MaxTextWidth:      22,
		MinBoxWidth:       10,
		Padding:           1,
		HorizontalSpacing: 12,
		VerticalSpacing:   3,
		Shadow:            true,
		GroupPadding:      2,
		GroupSpacing:      2,
	}
}

// Dimensions describes a node box: outer size including borders, plus the
// wrapped label lines drawn inside.
type Dimensions struct {
	Width     int
	Height    int
	TextLines []string
}

// Point is a cell coordinate on the canvas. X grows right, Y grows down.
type Point struct {
	X int
	Y int
}

// BackEdgeMargin returns the extra margin reserved for routing back edges:
// four cells for the minimum horizontal run before the arrow, plus a
// three-cell lane per back edge. Zero when there are no back edges.
func BackEdgeMargin(backEdges int) int {
	if backEdges == 0 {
		return 0
	}
	return 4 + backEdges*3
}

// BoxDimensions computes the box size for a node label.
// The label is word-wrapped at MaxTextWidth; the box is then sized around
// the wrapped lines and widened to MinBoxWidth if needed. Compact boxes
// hold only the text rows between the borders; regular boxes add one blank
// row above and below.
func (c Config) BoxDimensions(label string) Dimensions {
	lines := WrapText(label, c.MaxTextWidth)

	maxLine := 1
	for _, line := range lines {
		if len(line) > maxLine {
			maxLine = len(line)
		}
	}

	width := maxLine + 2*c.Padding + 2
	if width < c.MinBoxWidth {
		width = c.MinBoxWidth
	}

	height := len(lines) + 2
	if !c.Compact {
		height += 2
	}

	return Dimensions{Width: width, Height: height, TextLines: lines}
}

// AllBoxDimensions computes dimensions for every node.
func (c Config) AllBoxDimensions(nodes []string) map[string]Dimensions {
	dims := make(map[string]Dimensions, len(nodes))
	for _, id := range nodes {
		dims[id] = c.BoxDimensions(id)
	}
	return dims
}

// WrapText word-wraps text to the given width. Words longer than the width
// get their own line rather than being split. Empty input yields a single
// empty line.
func WrapText(text string, width int) []string {
	words := strings.Fields(text)

	var lines []string
	var current []string
	length := 0

	for _, word := range words {
		spaceNeeded := 0
		if len(current) > 0 {
			spaceNeeded = 1
		}
		if length+len(word)+spaceNeeded <= width {
			current = append(current, word)
			length += len(word) + spaceNeeded
		} else {
			if len(current) > 0 {
				lines = append(lines, strings.Join(current, " "))
			}
			current = []string{word}
			length = len(word)
		}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// shadowWidth is the extra horizontal footprint of a shadowed box.
func (c Config) shadowWidth() int {
	if c.Shadow {
		return 1
	}
	return 0
}

// shadowHeight is the extra vertical footprint of a shadowed box.
// The shadow row below the box plus the offset row it occupies.
func (c Config) shadowHeight() int {
	if c.Shadow {
		return 2
	}
	return 0
}

// CanvasSize returns the canvas extent needed to fit all placed boxes,
// including shadows. The caller adds outer padding.
func (c Config) CanvasSize(dims map[string]Dimensions, positions map[string]Point) (width, height int) {
	for id, pos := range positions {
		d := dims[id]
		right := pos.X + d.Width + c.shadowHeight()
		bottom := pos.Y + d.Height + c.shadowHeight()
		if right > width {
			width = right
		}
		if bottom > height {
			height = bottom
		}
	}
	return width, height
}
