// Package router draws the edges of a laid-out flowchart onto the canvas.
//
// Forward edges run between adjacent or skipping layers: each one picks
// ports on the source and target box borders, then draws either a straight
// segment, a single-bend path through the safe gap band between layers, or
// a multi-bend detour around boxes sitting in the way. Back edges travel
// through the reserved margin outside the diagram, one staggered lane per
// edge. All line cells are painted through the canvas merge automaton so
// crossing edges upgrade to tees and crosses instead of clobbering each
// other; arrowheads are stamped last and are never painted over.
package router

import (
	"sort"

	"github.com/matzehuels/gridflow/pkg/canvas"
	"github.com/matzehuels/gridflow/pkg/geometry"
	"github.com/matzehuels/gridflow/pkg/graph"
	"github.com/matzehuels/gridflow/pkg/layout"
)

// Router draws edges for one diagram. It holds the shared canvas plus the
// geometry computed for the current generation and is not safe for reuse
// across diagrams.
type Router struct {
	c      *canvas.Canvas
	g      *graph.Graph
	lay    *layout.Result
	dims   map[string]geometry.Dimensions
	pos    map[string]geometry.Point
	shadow bool
}

// New creates a router over the given canvas and layout geometry.
func New(c *canvas.Canvas, g *graph.Graph, lay *layout.Result, dims map[string]geometry.Dimensions, pos map[string]geometry.Point, shadow bool) *Router {
	return &Router{c: c, g: g, lay: lay, dims: dims, pos: pos, shadow: shadow}
}

// shadowRight is the extra horizontal clearance a shadowed box needs.
func (r *Router) shadowRight() int {
	if r.shadow {
		return 1
	}
	return 0
}

// shadowBelow is the extra vertical clearance a shadowed box needs.
func (r *Router) shadowBelow() int {
	if r.shadow {
		return 2
	}
	return 0
}

// insideBox reports whether (x, y) falls on any node box, border included.
// Line runs and corners skip such cells; only port-opening merges touch a
// border, and they go to the canvas directly.
func (r *Router) insideBox(x, y int) bool {
	for id, p := range r.pos {
		d := r.dims[id]
		if x >= p.X && x < p.X+d.Width && y >= p.Y && y < p.Y+d.Height {
			return true
		}
	}
	return false
}

// vline paints a vertical run over [y0, y1] inclusive, in either order,
// skipping cells occupied by boxes.
func (r *Router) vline(x, y0, y1 int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		if r.insideBox(x, y) {
			continue
		}
		r.c.MergeLine(x, y, canvas.Up|canvas.Down)
	}
}

// hline paints a horizontal run between x0 and x1, both endpoints
// excluded, skipping cells occupied by boxes. Endpoint cells are corners
// or ports and are painted by the caller with their exact direction sets.
func (r *Router) hline(x0, x1, y int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0 + 1; x < x1; x++ {
		if r.insideBox(x, y) {
			continue
		}
		r.c.MergeLine(x, y, canvas.Left|canvas.Right)
	}
}

// corner paints a two-arm bend at (x, y) unless a box occupies the cell.
func (r *Router) corner(x, y int, d canvas.Dirs) {
	if r.insideBox(x, y) {
		return
	}
	r.c.MergeLine(x, y, d)
}

// forwardEdges returns the forward edge list plus per-node port orderings.
// Ports are allocated left to right following the crossing-minimized
// position of the peer node, so edges to adjacent nodes do not swap over
// each other right at the border.
func (r *Router) forwardEdges(peerRank func(id string) int) (edges []graph.Edge, from, to map[string][]string) {
	from = make(map[string][]string)
	to = make(map[string][]string)

	for _, e := range r.g.Edges() {
		if r.lay.IsBackEdge(e.From, e.To) {
			continue
		}
		if r.lay.LayerOf(e.To) <= r.lay.LayerOf(e.From) {
			continue
		}
		edges = append(edges, e)
		from[e.From] = append(from[e.From], e.To)
		to[e.To] = append(to[e.To], e.From)
	}

	for _, peers := range from {
		sortByRank(peers, peerRank)
	}
	for _, peers := range to {
		sortByRank(peers, peerRank)
	}
	return edges, from, to
}

// sortByRank stably orders ids by a rank function, preserving edge
// declaration order for ties.
func sortByRank(ids []string, rank func(string) int) {
	sort.SliceStable(ids, func(i, j int) bool { return rank(ids[i]) < rank(ids[j]) })
}

// layerRank returns each node's crossing-minimized index within its layer.
func (r *Router) layerRank() func(string) int {
	pos := make(map[string]int)
	for _, layer := range r.lay.Layers {
		for i, id := range layer {
			pos[id] = i
		}
	}
	return func(id string) int { return pos[id] }
}

// indexOf returns the first index of id in peers. Parallel edges share
// the first port.
func indexOf(peers []string, id string) int {
	for i, p := range peers {
		if p == id {
			return i
		}
	}
	return 0
}
