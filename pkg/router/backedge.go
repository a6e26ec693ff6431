package router

import (
	"sort"

	"github.com/matzehuels/gridflow/pkg/canvas"
	"github.com/matzehuels/gridflow/pkg/graph"
)

// backEdgeStride is the lane spacing between back edges in the margin.
const backEdgeStride = 3

// DrawBackEdges draws every back edge through the left margin in
// top-to-bottom mode. Each edge exits near the bottom-left of its source,
// drops below the shadow, runs left into its own margin lane, climbs the
// lane, and enters the target's left side. Edges are drawn deepest source
// first so lanes nest without crossing; multiple entries into one target
// stagger down its content rows.
func (r *Router) DrawBackEdges() {
	if len(r.lay.BackEdges) == 0 {
		return
	}

	edges := make([]graph.Edge, len(r.lay.BackEdges))
	copy(edges, r.lay.BackEdges)
	sort.SliceStable(edges, func(i, j int) bool {
		return r.lay.LayerOf(edges[i].From) > r.lay.LayerOf(edges[j].From)
	})

	const marginX = 2
	entryCount := make(map[string]int)

	for i, e := range edges {
		srcDims, tgtDims := r.dims[e.From], r.dims[e.To]
		srcPos, tgtPos := r.pos[e.From], r.pos[e.To]

		routeX := marginX + i*backEdgeStride

		entryIdx := entryCount[e.To]
		entryCount[e.To]++

		exitBorderY := srcPos.Y + srcDims.Height - 1
		exitBelowY := exitBorderY + 1
		if r.shadow {
			exitBelowY = exitBorderY + 2
		}

		// Entry on the target's left side, staggered per prior entries and
		// clamped to the content rows.
		entryX := tgtPos.X
		entryY := tgtPos.Y + 1 + entryIdx
		if maxY := tgtPos.Y + tgtDims.Height - 2; entryY > maxY {
			entryY = maxY
		}

		// Boxes standing between the margin lane and the target entry row
		// force a detour over the top of the target layer.
		var blockers []string
		for _, id := range r.g.Nodes() {
			if id == e.To {
				continue
			}
			p, d := r.pos[id], r.dims[id]
			right := p.X + d.Width + r.shadowRight()
			bottom := p.Y + d.Height + r.shadowBelow()
			if p.X > routeX && right < entryX && p.Y <= entryY && entryY < bottom {
				blockers = append(blockers, id)
			}
		}

		// Exit port shifts right with the lane so stacked exits from one
		// source do not collide.
		exitX := srcPos.X + 1 + i*backEdgeStride
		if exitX >= srcPos.X+srcDims.Width-1 {
			exitX = srcPos.X + 1
		}

		r.c.MergeLine(exitX, exitBorderY, canvas.Down)
		if exitBelowY-1 > exitBorderY {
			r.vline(exitX, exitBorderY+1, exitBelowY-1)
		}
		r.corner(exitX, exitBelowY, canvas.Up|canvas.Left)
		r.hline(routeX, exitX, exitBelowY)
		r.corner(routeX, exitBelowY, canvas.Up|canvas.Right)

		if len(blockers) > 0 {
			// Climb the lane past the target layer, run right above the
			// blockers, then drop to the entry row left of the target.
			safeY := tgtPos.Y - 2

			maxBlockingRight := 0
			for _, id := range blockers {
				right := r.pos[id].X + r.dims[id].Width + 1
				if r.shadow {
					right++
				}
				maxBlockingRight = max(maxBlockingRight, right)
			}
			approachX := min(maxBlockingRight+2, entryX-4)
			if approachX < routeX+4 {
				approachX = routeX + 4
			}

			if safeY+1 <= exitBelowY-1 {
				r.vline(routeX, safeY+1, exitBelowY-1)
			}
			r.corner(routeX, safeY, canvas.Down|canvas.Right)
			r.hline(routeX, approachX, safeY)
			r.corner(approachX, safeY, canvas.Down|canvas.Left)
			if safeY+1 <= entryY-1 {
				r.vline(approachX, safeY+1, entryY-1)
			}
			r.corner(approachX, entryY, canvas.Up|canvas.Right)
			r.hline(approachX, entryX-1, entryY)
			r.c.Set(entryX-1, entryY, canvas.ArrowRight)
		} else {
			if entryY+1 <= exitBelowY-1 {
				r.vline(routeX, entryY+1, exitBelowY-1)
			}
			r.corner(routeX, entryY, canvas.Down|canvas.Right)
			r.hline(routeX, entryX-1, entryY)
			r.c.Set(entryX-1, entryY, canvas.ArrowRight)
		}
	}
}
