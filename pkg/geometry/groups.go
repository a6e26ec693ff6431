package geometry

import "github.com/matzehuels/gridflow/pkg/parse"

// groupLabelWidth is the wrap width for group labels.
const groupLabelWidth = 20

// minGroupWidth and minGroupHeight floor the shrinking done by
// SeparateGroupBoxes so frames never collapse onto their members.
const (
	minGroupWidth  = 10
	minGroupHeight = 5
)

// GroupBox is the computed frame around a group's member boxes.
// The label rows sit inside the frame above the members.
type GroupBox struct {
	Group       parse.Group
	X           int
	Y           int
	Width       int
	Height      int
	LabelHeight int // Wrapped label rows plus one spacing row
	LabelLines  []string
}

// GroupBoxes computes the bounding frame for each group: the members'
// union rectangle (shadows included) padded by GroupPadding, with extra
// rows at the top for the wrapped label. Groups whose members were all
// dropped from the layout are skipped. Frames may extend to negative
// coordinates; callers fold that overhang into the diagram margin.
func (c Config) GroupBoxes(groups []parse.Group, dims map[string]Dimensions, positions map[string]Point) []GroupBox {
	var boxes []GroupBox

	for _, group := range groups {
		minX, minY := 0, 0
		maxX, maxY := 0, 0
		found := false

		for _, member := range group.Members {
			pos, okP := positions[member]
			d, okD := dims[member]
			if !okP || !okD {
				continue
			}

			right := pos.X + d.Width + c.shadowWidth()
			bottom := pos.Y + d.Height + c.shadowHeight()

			if !found {
				minX, minY, maxX, maxY = pos.X, pos.Y, right, bottom
				found = true
				continue
			}
			if pos.X < minX {
				minX = pos.X
			}
			if pos.Y < minY {
				minY = pos.Y
			}
			if right > maxX {
				maxX = right
			}
			if bottom > maxY {
				maxY = bottom
			}
		}
		if !found {
			continue
		}

		labelLines := WrapText(group.Name, groupLabelWidth)
		labelHeight := len(labelLines) + 1

		boxes = append(boxes, GroupBox{
			Group:       group,
			X:           minX - c.GroupPadding,
			Y:           minY - c.GroupPadding - labelHeight,
			Width:       maxX - minX + 2*c.GroupPadding + 1,
			Height:      maxY - minY + 2*c.GroupPadding + labelHeight + 1,
			LabelHeight: labelHeight,
			LabelLines:  labelLines,
		})
	}
	return boxes
}

// SeparateGroupBoxes adjusts frames so no two groups touch or overlap.
// Frames too close to a neighbor are shrunk or shifted until at least
// GroupSpacing cells separate them, bounded by the minimum frame size.
func (c Config) SeparateGroupBoxes(boxes []GroupBox) []GroupBox {
	if len(boxes) <= 1 {
		return boxes
	}

	adjusted := make([]GroupBox, 0, len(boxes))
	for i, box := range boxes {
		newX, newY := box.X, box.Y
		newW, newH := box.Width, box.Height

		for j, other := range boxes {
			if i == j {
				continue
			}

			right := newX + newW
			bottom := newY + newH
			otherRight := other.X + other.Width
			otherBottom := other.Y + other.Height

			hOverlap := newX < otherRight+c.GroupSpacing && right > other.X-c.GroupSpacing
			vOverlap := newY < otherBottom+c.GroupSpacing && bottom > other.Y-c.GroupSpacing
			if !hOverlap || !vOverlap {
				continue
			}

			// Right edge intrudes on the neighbor's left side: shrink width.
			if other.X-right < c.GroupSpacing && newX < other.X && right >= other.X-c.GroupSpacing {
				if shrink := right - (other.X - c.GroupSpacing); shrink > 0 {
					newW = max(newW-shrink, minGroupWidth)
				}
			}

			// Bottom edge intrudes on the neighbor's top side: shrink height.
			if other.Y-bottom < c.GroupSpacing && newY < other.Y && bottom >= other.Y-c.GroupSpacing {
				if shrink := bottom - (other.Y - c.GroupSpacing); shrink > 0 {
					newH = max(newH-shrink, minGroupHeight)
				}
			}

			// Left edge intrudes on the neighbor's right side: move and shrink.
			if newX-otherRight < c.GroupSpacing && newX > other.X && newX <= otherRight+c.GroupSpacing {
				if move := (otherRight + c.GroupSpacing) - newX; move > 0 {
					newX += move
					newW = max(newW-move, minGroupWidth)
				}
			}

			// Top edge intrudes on the neighbor's bottom side: move and shrink.
			if newY-otherBottom < c.GroupSpacing && newY > other.Y && newY <= otherBottom+c.GroupSpacing {
				if move := (otherBottom + c.GroupSpacing) - newY; move > 0 {
					newY += move
					newH = max(newH-move, minGroupHeight)
				}
			}
		}

		box.X, box.Y = newX, newY
		box.Width, box.Height = newW, newH
		adjusted = append(adjusted, box)
	}
	return adjusted
}

// GroupMargin returns how far group frames extend past the diagram origin
// on each axis. The flowchart generator folds this overhang into extra
// margin so frames never clip at the canvas edge.
func GroupMargin(boxes []GroupBox) (left, top int) {
	for _, b := range boxes {
		if b.X < 0 && -b.X > left {
			left = -b.X
		}
		if b.Y < 0 && -b.Y > top {
			top = -b.Y
		}
	}
	return left, top
}
