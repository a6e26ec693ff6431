package geometry

// LayerBoundary records the vertical extent of a layer and the safe routing
// band below it in TB mode. Horizontal edge segments placed between
// GapStartY and GapEndY cannot collide with boxes.
type LayerBoundary struct {
	Index     int // Layer index, 0-based from the top
	TopY      int // First row occupied by the layer's boxes
	BottomY   int // Last row occupied, shadow included
	GapStartY int // First row of the gap below the layer
	GapEndY   int // Last row of the gap (row before the next layer)
}

// ColumnBoundary is the LR-mode counterpart of LayerBoundary, recording a
// column's horizontal extent and the safe band to its right.
type ColumnBoundary struct {
	Index     int // Column index, 0-based from the left
	LeftX     int // First column occupied by the layer's boxes
	RightX    int // Last column occupied, shadow included
	GapStartX int // First column of the gap to the right
	GapEndX   int // Last column of the gap (column before the next layer)
}

// LayerBoundaries computes the per-layer boundaries for TB routing.
// The placement math mirrors PositionsTB exactly, so the recorded bands
// line up with the boxes actually drawn.
func (c Config) LayerBoundaries(layers [][]string, dims map[string]Dimensions) []LayerBoundary {
	heights := make([]int, len(layers))
	for i, layer := range layers {
		for _, id := range layer {
			if h := dims[id].Height + c.shadowHeight(); h > heights[i] {
				heights[i] = h
			}
		}
	}

	yPositions := make([]int, len(layers))
	for i := 1; i < len(layers); i++ {
		yPositions[i] = yPositions[i-1] + heights[i-1] + c.VerticalSpacing
	}

	boundaries := make([]LayerBoundary, len(layers))
	for i := range layers {
		top := yPositions[i]
		gapStart := top + heights[i]
		gapEnd := gapStart + c.VerticalSpacing
		if i < len(layers)-1 {
			gapEnd = yPositions[i+1] - 1
		}
		boundaries[i] = LayerBoundary{
			Index:     i,
			TopY:      top,
			BottomY:   top + heights[i] - 1,
			GapStartY: gapStart,
			GapEndY:   gapEnd,
		}
	}
	return boundaries
}

// ColumnBoundaries computes the per-column boundaries for LR routing,
// mirroring PositionsLR.
func (c Config) ColumnBoundaries(layers [][]string, dims map[string]Dimensions) []ColumnBoundary {
	widths := make([]int, len(layers))
	for i, layer := range layers {
		for _, id := range layer {
			if w := dims[id].Width + c.shadowWidth(); w > widths[i] {
				widths[i] = w
			}
		}
	}

	xPositions := make([]int, len(layers))
	for i := 1; i < len(layers); i++ {
		xPositions[i] = xPositions[i-1] + widths[i-1] + c.HorizontalSpacing
	}

	boundaries := make([]ColumnBoundary, len(layers))
	for i := range layers {
		left := xPositions[i]
		gapStart := left + widths[i]
		gapEnd := gapStart + c.HorizontalSpacing
		if i < len(layers)-1 {
			gapEnd = xPositions[i+1] - 1
		}
		boundaries[i] = ColumnBoundary{
			Index:     i,
			LeftX:     left,
			RightX:    left + widths[i] - 1,
			GapStartX: gapStart,
			GapEndX:   gapEnd,
		}
	}
	return boundaries
}

// OffsetLayerBoundaries shifts all boundaries down by dy.
// Used when a title row pushes the diagram down.
func OffsetLayerBoundaries(boundaries []LayerBoundary, dy int) []LayerBoundary {
	if dy == 0 {
		return boundaries
	}
	shifted := make([]LayerBoundary, len(boundaries))
	for i, b := range boundaries {
		b.TopY += dy
		b.BottomY += dy
		b.GapStartY += dy
		b.GapEndY += dy
		shifted[i] = b
	}
	return shifted
}

// OffsetColumnBoundaries shifts all boundaries right by dx.
func OffsetColumnBoundaries(boundaries []ColumnBoundary, dx int) []ColumnBoundary {
	if dx == 0 {
		return boundaries
	}
	shifted := make([]ColumnBoundary, len(boundaries))
	for i, b := range boundaries {
		b.LeftX += dx
		b.RightX += dx
		b.GapStartX += dx
		b.GapEndX += dx
		shifted[i] = b
	}
	return shifted
}
