package router

import (
	"sort"

	"github.com/matzehuels/gridflow/pkg/canvas"
	"github.com/matzehuels/gridflow/pkg/geometry"
	"github.com/matzehuels/gridflow/pkg/graph"
)

// DrawForwardEdgesLR draws every forward edge in left-to-right mode.
// Edges leave the source's right border and enter the target's left
// border; the vertical jog sits in the safe gap band right of the source
// column. Ports are ordered by the peer box's vertical position.
func (r *Router) DrawForwardEdgesLR(boundaries []geometry.ColumnBoundary) {
	edges, from, to := r.forwardEdges(func(id string) int { return r.pos[id].Y })
	for _, e := range edges {
		r.drawEdgeLR(e.From, e.To, from[e.From], to[e.To], boundaries)
	}
}

func (r *Router) drawEdgeLR(source, target string, sourceTargets, targetSources []string, boundaries []geometry.ColumnBoundary) {
	srcDims, tgtDims := r.dims[source], r.dims[target]
	srcPos, tgtPos := r.pos[source], r.pos[target]
	srcLayer, tgtLayer := r.lay.LayerOf(source), r.lay.LayerOf(target)

	srcTop, srcBottom := srcPos.Y+1, srcPos.Y+srcDims.Height-2
	tgtTop, tgtBottom := tgtPos.Y+1, tgtPos.Y+tgtDims.Height-2
	overlapTop := max(srcTop, tgtTop)
	overlapBottom := min(srcBottom, tgtBottom)
	hasOverlap := overlapTop < overlapBottom

	boxesInPath := false
	if hasOverlap && tgtLayer-srcLayer > 1 {
	scan:
		for layer := srcLayer + 1; layer < tgtLayer; layer++ {
			for _, id := range r.lay.Layers[layer] {
				top := r.pos[id].Y
				bottom := r.pos[id].Y + r.dims[id].Height
				if top < overlapBottom && bottom > overlapTop {
					boxesInPath = true
					break scan
				}
			}
		}
	}

	var srcPortY, tgtPortY int
	if hasOverlap && !boxesInPath {
		var overlapping []string
		for _, t := range sourceTargets {
			tTop := r.pos[t].Y + 1
			tBottom := r.pos[t].Y + r.dims[t].Height - 2
			if max(srcTop, tTop) < min(srcBottom, tBottom) {
				overlapping = append(overlapping, t)
			}
		}

		overlapHeight := overlapBottom - overlapTop
		count := len(overlapping)
		idx := indexOf(overlapping, target)

		var portY int
		switch {
		case count == 1:
			portY = (overlapTop + overlapBottom) / 2
		case overlapHeight >= count*2:
			spacing := overlapHeight / (count + 1)
			portY = overlapTop + spacing*(idx+1)
		default:
			portY = overlapTop + (overlapHeight*(idx+1))/(count+1)
		}
		srcPortY, tgtPortY = portY, portY
	} else {
		srcPortY = geometry.PortY(srcPos.Y, srcDims.Height, indexOf(sourceTargets, target), len(sourceTargets))
		tgtPortY = geometry.PortY(tgtPos.Y, tgtDims.Height, indexOf(targetSources, source), len(targetSources))
	}

	srcPortX := srcPos.X + srcDims.Width - 1
	tgtPortX := tgtPos.X

	// Open a port in the source's right border.
	r.c.MergeLine(srcPortX, srcPortY, canvas.Right)

	startX := srcPortX + 1
	endX := tgtPortX

	switch {
	case boxesInPath:
		// Detour below the blockers: right, down past the lowest blocker,
		// right along the bypass row, then back up and right into the
		// target.
		maxBottom := srcPos.Y + srcDims.Height
		for layer := srcLayer + 1; layer < tgtLayer; layer++ {
			for _, id := range r.lay.Layers[layer] {
				bottom := r.pos[id].Y + r.dims[id].Height
				if r.shadow {
					bottom += 2
				}
				maxBottom = max(maxBottom, bottom)
			}
		}
		routeY := maxBottom + 2

		midX := safeVerticalX(boundaries, srcLayer, startX)
		r.hline(startX-1, midX, srcPortY)
		r.corner(midX, srcPortY, canvas.Down|canvas.Left)
		r.vline(midX, srcPortY+1, routeY-1)
		r.corner(midX, routeY, canvas.Up|canvas.Right)

		tgtMidX := safeVerticalX(boundaries, tgtLayer-1, startX)
		r.hline(midX, tgtMidX, routeY)
		r.corner(tgtMidX, routeY, canvas.Up|canvas.Left)
		r.vline(tgtMidX, tgtPortY+1, routeY-1)
		r.corner(tgtMidX, tgtPortY, canvas.Down|canvas.Right)
		r.hline(tgtMidX, endX-1, tgtPortY)
		r.c.Set(tgtPortX-1, tgtPortY, canvas.ArrowRight)

	case srcPortY == tgtPortY:
		// Straight run, arrow one column before the target border.
		r.hline(startX-1, endX-1, srcPortY)
		r.c.Set(tgtPortX-1, tgtPortY, canvas.ArrowRight)

	default:
		// One vertical jog through the gap band right of the source layer.
		midX := safeVerticalX(boundaries, srcLayer, startX)
		r.hline(startX-1, midX, srcPortY)
		if tgtPortY > srcPortY {
			r.corner(midX, srcPortY, canvas.Down|canvas.Left)
		} else {
			r.corner(midX, srcPortY, canvas.Up|canvas.Left)
		}
		if lo, hi := min(srcPortY, tgtPortY), max(srcPortY, tgtPortY); lo+1 <= hi-1 {
			r.vline(midX, lo+1, hi-1)
		}
		if tgtPortY > srcPortY {
			r.corner(midX, tgtPortY, canvas.Up|canvas.Right)
		} else {
			r.corner(midX, tgtPortY, canvas.Down|canvas.Right)
		}
		r.hline(midX, endX-1, tgtPortY)
		r.c.Set(tgtPortX-1, tgtPortY, canvas.ArrowRight)
	}
}

// safeVerticalX picks the column for a vertical routing segment right of
// srcLayer: the middle of the box-free gap band, but never left of the
// column where the edge actually starts.
func safeVerticalX(boundaries []geometry.ColumnBoundary, srcLayer, startX int) int {
	if srcLayer < len(boundaries) {
		b := boundaries[srcLayer]
		return max((b.GapStartX+b.GapEndX)/2, startX+1)
	}
	return startX + 2
}

// DrawBackEdgesLR draws every back edge through the top margin in
// left-to-right mode. Each edge exits near the top-right of its source,
// climbs to its margin lane, runs left, and drops into the target's top
// border. Blockers on the climb push the turn column right; blockers on
// the descent push the edge further left to enter the target's left side
// instead.
func (r *Router) DrawBackEdgesLR(marginY int) {
	if len(r.lay.BackEdges) == 0 {
		return
	}

	edges := make([]graph.Edge, len(r.lay.BackEdges))
	copy(edges, r.lay.BackEdges)
	sort.SliceStable(edges, func(i, j int) bool {
		return r.lay.LayerOf(edges[i].From) > r.lay.LayerOf(edges[j].From)
	})

	entryCount := make(map[string]int)

	for i, e := range edges {
		srcDims, tgtDims := r.dims[e.From], r.dims[e.To]
		srcPos, tgtPos := r.pos[e.From], r.pos[e.To]

		routeY := marginY + i*backEdgeStride

		entryIdx := entryCount[e.To]
		entryCount[e.To]++

		exitBorderX := srcPos.X + srcDims.Width - 1
		exitRightX := exitBorderX + 1
		if r.shadow {
			exitRightX = exitBorderX + 2
		}

		// Entry on the target's top border, staggered per prior entries
		// and clamped to the content columns.
		entryY := tgtPos.Y
		entryX := tgtPos.X + 1 + entryIdx
		if maxX := tgtPos.X + tgtDims.Width - 2; entryX > maxX {
			entryX = maxX
		}

		var descentBlockers []string
		for _, id := range r.g.Nodes() {
			if id == e.To {
				continue
			}
			p, d := r.pos[id], r.dims[id]
			right := p.X + d.Width + r.shadowRight()
			bottom := p.Y + d.Height + r.shadowBelow()
			if p.Y > routeY && bottom < entryY && p.X <= entryX && entryX < right {
				descentBlockers = append(descentBlockers, id)
			}
		}

		// Exit port shifts down with the lane so stacked exits from one
		// source do not collide.
		exitY := srcPos.Y + 1 + i*backEdgeStride
		if exitY >= srcPos.Y+srcDims.Height-1 {
			exitY = srcPos.Y + 1
		}

		r.c.MergeLine(exitBorderX, exitY, canvas.Right)

		var ascentBlockers []string
		for _, id := range r.g.Nodes() {
			if id == e.From {
				continue
			}
			p, d := r.pos[id], r.dims[id]
			right := p.X + d.Width + r.shadowRight()
			bottom := p.Y + d.Height + r.shadowBelow()
			if p.Y > routeY && bottom < exitY && p.X <= exitRightX && exitRightX < right {
				ascentBlockers = append(ascentBlockers, id)
			}
		}

		if len(ascentBlockers) > 0 {
			// Run further right past the blockers before climbing.
			maxBlockingRight := 0
			for _, id := range ascentBlockers {
				right := r.pos[id].X + r.dims[id].Width + 1
				if r.shadow {
					right++
				}
				maxBlockingRight = max(maxBlockingRight, right)
			}
			turnUpX := maxBlockingRight + 1

			r.hline(exitBorderX, turnUpX, exitY)
			r.corner(turnUpX, exitY, canvas.Up|canvas.Left)
			if routeY+1 <= exitY-1 {
				r.vline(turnUpX, routeY+1, exitY-1)
			}
			r.corner(turnUpX, routeY, canvas.Down|canvas.Left)
			exitRightX = turnUpX
		} else {
			if exitBorderX+1 <= exitRightX-1 {
				r.hline(exitBorderX, exitRightX, exitY)
			}
			r.corner(exitRightX, exitY, canvas.Up|canvas.Left)
			if routeY+1 <= exitY-1 {
				r.vline(exitRightX, routeY+1, exitY-1)
			}
			r.corner(exitRightX, routeY, canvas.Down|canvas.Left)
		}

		// Margin run from the climb column back toward the target.
		if entryX+1 <= exitRightX-1 {
			r.hline(entryX, exitRightX, routeY)
		}

		if len(descentBlockers) > 0 {
			// Keep going left past the blockers, then drop and enter the
			// target from the left.
			minBlockingLeft := r.pos[descentBlockers[0]].X
			for _, id := range descentBlockers[1:] {
				minBlockingLeft = min(minBlockingLeft, r.pos[id].X)
			}
			turnDownX := minBlockingLeft - 2

			targetEntryY := tgtPos.Y + 1 + entryIdx
			if maxY := tgtPos.Y + tgtDims.Height - 2; targetEntryY > maxY {
				targetEntryY = maxY
			}

			if turnDownX+1 <= entryX {
				r.hline(turnDownX, entryX+1, routeY)
			}
			r.corner(turnDownX, routeY, canvas.Down|canvas.Right)
			if routeY+1 <= targetEntryY-1 {
				r.vline(turnDownX, routeY+1, targetEntryY-1)
			}
			r.corner(turnDownX, targetEntryY, canvas.Up|canvas.Right)
			r.hline(turnDownX, tgtPos.X-1, targetEntryY)
			r.c.Set(tgtPos.X-1, targetEntryY, canvas.ArrowRight)
		} else {
			r.corner(entryX, routeY, canvas.Down|canvas.Right)
			if routeY+1 <= entryY-2 {
				r.vline(entryX, routeY+1, entryY-2)
			}
			r.c.Set(entryX, entryY-1, canvas.ArrowDown)
		}
	}
}
