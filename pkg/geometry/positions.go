package geometry

// PositionsTB places boxes for top-to-bottom flow. Layers become rows, each
// row is centered against the widest row, and leftMargin shifts the whole
// diagram right to leave room for back edge lanes.
func (c Config) PositionsTB(layers [][]string, dims map[string]Dimensions, leftMargin int) map[string]Point {
	layerHeights := make([]int, len(layers))
	layerWidths := make([][]int, len(layers))

	for i, layer := range layers {
		maxHeight := 0
		widths := make([]int, len(layer))
		for j, id := range layer {
			d := dims[id]
			if h := d.Height + c.shadowHeight(); h > maxHeight {
				maxHeight = h
			}
			widths[j] = d.Width + c.shadowWidth()
		}
		layerHeights[i] = maxHeight
		layerWidths[i] = widths
	}

	// Top of each row.
	yPositions := make([]int, len(layers))
	for i := 1; i < len(layers); i++ {
		yPositions[i] = yPositions[i-1] + layerHeights[i-1] + c.VerticalSpacing
	}

	totalWidths := make([]int, len(layers))
	maxLayerWidth := 0
	for i, widths := range layerWidths {
		total := 0
		for _, w := range widths {
			total += w
		}
		if len(widths) > 1 {
			total += c.HorizontalSpacing * (len(widths) - 1)
		}
		totalWidths[i] = total
		if total > maxLayerWidth {
			maxLayerWidth = total
		}
	}

	positions := make(map[string]Point)
	for i, layer := range layers {
		x := leftMargin + (maxLayerWidth-totalWidths[i])/2
		for j, id := range layer {
			positions[id] = Point{X: x, Y: yPositions[i]}
			x += layerWidths[i][j] + c.HorizontalSpacing
		}
	}
	return positions
}

// PositionsLR places boxes for left-to-right flow. Layers become columns,
// nodes within a layer stack vertically, each column is centered against
// the tallest column, and topMargin leaves room for back edge lanes above.
func (c Config) PositionsLR(layers [][]string, dims map[string]Dimensions, topMargin int) map[string]Point {
	layerWidths := make([]int, len(layers))
	layerHeights := make([][]int, len(layers))

	for i, layer := range layers {
		maxWidth := 0
		heights := make([]int, len(layer))
		for j, id := range layer {
			d := dims[id]
			if w := d.Width + c.shadowWidth(); w > maxWidth {
				maxWidth = w
			}
			heights[j] = d.Height + c.shadowHeight()
		}
		layerWidths[i] = maxWidth
		layerHeights[i] = heights
	}

	// Left edge of each column.
	xPositions := make([]int, len(layers))
	for i := 1; i < len(layers); i++ {
		xPositions[i] = xPositions[i-1] + layerWidths[i-1] + c.HorizontalSpacing
	}

	totalHeights := make([]int, len(layers))
	maxLayerHeight := 0
	for i, heights := range layerHeights {
		total := 0
		for _, h := range heights {
			total += h
		}
		if len(heights) > 1 {
			total += c.VerticalSpacing * (len(heights) - 1)
		}
		totalHeights[i] = total
		if total > maxLayerHeight {
			maxLayerHeight = total
		}
	}

	positions := make(map[string]Point)
	for i, layer := range layers {
		y := topMargin + (maxLayerHeight-totalHeights[i])/2
		for j, id := range layer {
			positions[id] = Point{X: xPositions[i], Y: y}
			y += layerHeights[i][j] + c.VerticalSpacing
		}
	}
	return positions
}
