package geometry

// PortX returns the x coordinate of a connection port on a box's top or
// bottom edge (TB mode). A single port sits at the box center; multiple
// ports are distributed evenly across the edge, keeping a two-cell margin
// from the corners.
func PortX(boxX, boxWidth, portIdx, portCount int) int {
	if portCount == 1 {
		return boxX + boxWidth/2
	}
	usable := boxWidth - 4
	spacing := usable / (portCount + 1)
	return boxX + 2 + spacing*(portIdx+1)
}

// PortY returns the y coordinate of a connection port on a box's left or
// right edge (LR mode). Ports land on content rows only - the rows between
// the top and bottom borders. A single port (or a one-row content area)
// uses the middle content row; multiple ports are spread across the
// content rows and clamped inside them.
func PortY(boxY, boxHeight, portIdx, portCount int) int {
	contentTop := boxY + 1
	contentBottom := boxY + boxHeight - 2
	if contentBottom < contentTop {
		contentBottom = contentTop
	}
	contentHeight := contentBottom - contentTop + 1

	if portCount == 1 || contentHeight == 1 {
		return contentTop + contentHeight/2
	}

	spacing := contentHeight / (portCount + 1)
	if spacing < 1 {
		spacing = 1
	}
	y := contentTop + spacing*(portIdx+1)
	if y < contentTop {
		y = contentTop
	}
	if y > contentBottom {
		y = contentBottom
	}
	return y
}
