package router

import (
	"github.com/matzehuels/gridflow/pkg/canvas"
	"github.com/matzehuels/gridflow/pkg/geometry"
)

// DrawForwardEdges draws every forward edge in top-to-bottom mode.
// Edges leave the source's bottom border and enter the target's top
// border; the horizontal jog, when needed, sits in the safe gap band
// below the source layer.
func (r *Router) DrawForwardEdges(boundaries []geometry.LayerBoundary) {
	edges, from, to := r.forwardEdges(r.layerRank())
	for _, e := range edges {
		r.drawEdge(e.From, e.To, from[e.From], to[e.To], boundaries)
	}
}

func (r *Router) drawEdge(source, target string, sourceTargets, targetSources []string, boundaries []geometry.LayerBoundary) {
	srcDims, tgtDims := r.dims[source], r.dims[target]
	srcPos, tgtPos := r.pos[source], r.pos[target]
	srcLayer, tgtLayer := r.lay.LayerOf(source), r.lay.LayerOf(target)

	// Horizontal overlap of the two boxes' interiors decides whether a
	// straight drop is possible.
	srcLeft, srcRight := srcPos.X+1, srcPos.X+srcDims.Width-2
	tgtLeft, tgtRight := tgtPos.X+1, tgtPos.X+tgtDims.Width-2
	overlapLeft := max(srcLeft, tgtLeft)
	overlapRight := min(srcRight, tgtRight)
	hasOverlap := overlapLeft < overlapRight

	// A straight drop across skipped layers only works when no box in an
	// intermediate layer stands inside the overlap column range.
	boxesInPath := false
	if hasOverlap && tgtLayer-srcLayer > 1 {
	scan:
		for layer := srcLayer + 1; layer < tgtLayer; layer++ {
			for _, id := range r.lay.Layers[layer] {
				left := r.pos[id].X
				right := r.pos[id].X + r.dims[id].Width
				if left < overlapRight && right > overlapLeft {
					boxesInPath = true
					break scan
				}
			}
		}
	}

	var srcPortX, tgtPortX int
	if hasOverlap && !boxesInPath {
		// Straight drop: share one column between source and target.
		// Fan-out to several overlapping targets spreads the shared
		// columns across the overlap region.
		var overlapping []string
		for _, t := range sourceTargets {
			tLeft := r.pos[t].X + 1
			tRight := r.pos[t].X + r.dims[t].Width - 2
			if max(srcLeft, tLeft) < min(srcRight, tRight) {
				overlapping = append(overlapping, t)
			}
		}

		overlapWidth := overlapRight - overlapLeft
		count := len(overlapping)
		idx := indexOf(overlapping, target)

		var portX int
		switch {
		case count == 1:
			portX = (overlapLeft + overlapRight) / 2
		case overlapWidth >= count*2:
			spacing := overlapWidth / (count + 1)
			portX = overlapLeft + spacing*(idx+1)
		default:
			portX = overlapLeft + (overlapWidth*(idx+1))/(count+1)
		}
		srcPortX, tgtPortX = portX, portX
	} else {
		srcPortX = geometry.PortX(srcPos.X, srcDims.Width, indexOf(sourceTargets, target), len(sourceTargets))
		tgtPortX = geometry.PortX(tgtPos.X, tgtDims.Width, indexOf(targetSources, source), len(targetSources))
	}

	srcPortY := srcPos.Y + srcDims.Height - 1
	tgtPortY := tgtPos.Y

	// Open a port in the source's bottom border.
	r.c.MergeLine(srcPortX, srcPortY, canvas.Down)

	startY := srcPortY + 1
	endY := tgtPortY

	switch {
	case boxesInPath:
		// Detour around the blockers: down, right past the rightmost
		// blocker, down along the bypass column, then back left and down
		// into the target.
		maxRight := srcPos.X + srcDims.Width
		for layer := srcLayer + 1; layer < tgtLayer; layer++ {
			for _, id := range r.lay.Layers[layer] {
				right := r.pos[id].X + r.dims[id].Width
				if r.shadow {
					right += 2
				}
				maxRight = max(maxRight, right)
			}
		}
		routeX := maxRight + 2

		midY := safeHorizontalY(boundaries, srcLayer, startY)
		r.vline(srcPortX, startY, midY-1)
		r.corner(srcPortX, midY, canvas.Up|canvas.Right)
		r.hline(srcPortX, routeX, midY)
		r.corner(routeX, midY, canvas.Down|canvas.Left)

		tgtMidY := safeHorizontalY(boundaries, tgtLayer-1, startY)
		if midY+1 <= tgtMidY-1 {
			r.vline(routeX, midY+1, tgtMidY-1)
		}
		r.corner(routeX, tgtMidY, canvas.Up|canvas.Left)
		r.hline(tgtPortX, routeX, tgtMidY)
		r.corner(tgtPortX, tgtMidY, canvas.Down|canvas.Right)
		if tgtMidY+1 <= endY-2 {
			r.vline(tgtPortX, tgtMidY+1, endY-2)
		}
		r.c.Set(tgtPortX, tgtPortY-1, canvas.ArrowDown)

	case srcPortX == tgtPortX:
		// Straight drop, arrow one row above the target border.
		r.vline(srcPortX, startY, endY-2)
		r.c.Set(tgtPortX, tgtPortY-1, canvas.ArrowDown)

	default:
		// One horizontal jog through the gap band below the source layer.
		midY := safeHorizontalY(boundaries, srcLayer, startY)
		r.vline(srcPortX, startY, midY-1)
		if tgtPortX > srcPortX {
			r.corner(srcPortX, midY, canvas.Up|canvas.Right)
		} else {
			r.corner(srcPortX, midY, canvas.Up|canvas.Left)
		}
		r.hline(srcPortX, tgtPortX, midY)
		if tgtPortX > srcPortX {
			r.corner(tgtPortX, midY, canvas.Down|canvas.Left)
		} else {
			r.corner(tgtPortX, midY, canvas.Down|canvas.Right)
		}
		if midY+1 <= endY-2 {
			r.vline(tgtPortX, midY+1, endY-2)
		}
		r.c.Set(tgtPortX, tgtPortY-1, canvas.ArrowDown)
	}
}

// safeHorizontalY picks the row for a horizontal routing segment below
// srcLayer: the middle of the box-free gap band, but never above the row
// where the edge actually starts.
func safeHorizontalY(boundaries []geometry.LayerBoundary, srcLayer, startY int) int {
	if srcLayer < len(boundaries) {
		b := boundaries[srcLayer]
		return max((b.GapStartY+b.GapEndY)/2, startY+1)
	}
	return startY + 2
}
