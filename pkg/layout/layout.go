// Package layout assigns flowchart nodes to layers and orders them within
// each layer (Sugiyama-style layered layout).
//
// # Overview
//
// The layout runs in three phases:
//
//  1. Cycle breaking - [FindBackEdges] detects back edges with a depth-first
//     search; back edges are excluded from layering and routed separately
//     through the diagram margin later.
//  2. Layer assignment - [AssignLayers] computes a longest-path layering via
//     topological traversal of the forward (acyclic) edge set.
//  3. Crossing minimization - [OrderLayers] runs alternating barycenter
//     sweeps to reduce edge crossings between adjacent layers.
//
// All phases are deterministic: identical input graphs produce identical
// results. Degenerate inputs (single node, fully cyclic graphs, self-loops)
// are handled without error.
package layout

import (
	"github.com/matzehuels/gridflow/pkg/graph"
)

// orderingSweeps is the number of alternating barycenter passes.
// Each sweep runs one forward (top-down) and one backward (bottom-up) pass.
const orderingSweeps = 4

// Result holds the layered layout for a graph.
type Result struct {
	// Layers contains node IDs grouped by layer, ordered within each layer
	// by the crossing minimization phase.
	Layers [][]string

	// Layer maps each node ID to its layer index.
	Layer map[string]int

	// BackEdges are the edges removed to break cycles, in detection order.
	// They are drawn through the diagram margin instead of between layers.
	BackEdges []graph.Edge

	// HasCycles reports whether any back edges were found.
	HasCycles bool
}

// IsBackEdge reports whether the given edge was classified as a back edge.
// Parallel back edges match by endpoints.
func (r *Result) IsBackEdge(from, to string) bool {
	for _, e := range r.BackEdges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

// LayerOf returns the layer index of a node, or 0 for unknown nodes.
func (r *Result) LayerOf(id string) int { return r.Layer[id] }

// Compute runs the full layout pipeline on a graph.
// The graph itself is not modified.
func Compute(g *graph.Graph) *Result {
	backEdges := FindBackEdges(g)
	forward := forwardAdjacency(g, backEdges)
	layerOf := AssignLayers(g, forward)

	layers := buildLayers(g, layerOf)
	OrderLayers(layers, layerOf, forward)

	return &Result{
		Layers:    layers,
		Layer:     layerOf,
		BackEdges: backEdges,
		HasCycles: len(backEdges) > 0,
	}
}

// adjacency holds the forward (cycle-free) edge relation in both directions.
type adjacency struct {
	successors   map[string][]string
	predecessors map[string][]string
}

// forwardAdjacency builds adjacency lists for the graph minus its back edges.
// Each back edge occurrence removes exactly one matching edge, so parallel
// forward edges survive.
func forwardAdjacency(g *graph.Graph, backEdges []graph.Edge) adjacency {
	remove := make(map[graph.Edge]int, len(backEdges))
	for _, e := range backEdges {
		remove[e]++
	}

	adj := adjacency{
		successors:   make(map[string][]string, g.NodeCount()),
		predecessors: make(map[string][]string, g.NodeCount()),
	}
	for _, e := range g.Edges() {
		if remove[e] > 0 {
			remove[e]--
			continue
		}
		adj.successors[e.From] = append(adj.successors[e.From], e.To)
		adj.predecessors[e.To] = append(adj.predecessors[e.To], e.From)
	}
	return adj
}

// buildLayers groups nodes by layer, preserving first-appearance order
// within each layer as the initial ordering.
func buildLayers(g *graph.Graph, layerOf map[string]int) [][]string {
	maxLayer := 0
	for _, l := range layerOf {
		if l > maxLayer {
			maxLayer = l
		}
	}

	layers := make([][]string, maxLayer+1)
	for _, id := range g.Nodes() {
		l := layerOf[id]
		layers[l] = append(layers[l], id)
	}
	return layers
}
