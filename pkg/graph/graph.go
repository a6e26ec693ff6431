// Package graph provides the directed graph structure underlying a flowchart.
//
// Nodes are identified by their display name and kept in first-appearance
// order, which makes every downstream stage (layering, ordering, geometry)
// deterministic for identical input. Cycles are allowed - the layout package
// detects and breaks them before layering.
package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	// All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrUnknownNode is returned by lookups that require an existing node.
	ErrUnknownNode = errors.New("unknown node")
)

// Edge represents a directed connection between two nodes.
// Parallel edges are allowed; each occurrence is routed separately.
type Edge struct {
	From string // Source node ID
	To   string // Target node ID
}

// Graph is a directed multigraph with deterministic iteration order.
// Nodes appear in the order they were first added, and adjacency lists
// preserve edge insertion order.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	order    []string // node IDs in first-appearance order
	index    map[string]int
	edges    []Edge
	outgoing map[string][]string // nodeID -> successor IDs
	incoming map[string][]string // nodeID -> predecessor IDs
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index:    make(map[string]int),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode registers a node. Adding an existing node is a no-op, so callers
// can freely add both endpoints of every edge. Returns ErrInvalidNodeID for
// an empty ID.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[id]; exists {
		return nil
	}
	g.index[id] = len(g.order)
	g.order = append(g.order, id)
	return nil
}

// AddEdge adds a directed edge from source to target, registering both
// endpoints if they are new. Self-loops and parallel edges are allowed.
func (g *Graph) AddEdge(from, to string) error {
	if err := g.AddNode(from); err != nil {
		return err
	}
	if err := g.AddNode(to); err != nil {
		return err
	}
	g.edges = append(g.edges, Edge{From: from, To: to})
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
	return nil
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Nodes returns all node IDs in first-appearance order.
// The returned slice is a copy and safe to modify.
func (g *Graph) Nodes() []string { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Successors returns the IDs this node points to, in edge insertion order.
// The returned slice should not be modified - use it as a read-only view.
func (g *Graph) Successors(id string) []string { return g.outgoing[id] }

// Predecessors returns the IDs pointing to this node, in edge insertion order.
// The returned slice should not be modified - use it as a read-only view.
func (g *Graph) Predecessors(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Roots returns nodes with no incoming edges, in first-appearance order.
// A fully cyclic graph has no roots.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// Leaves returns nodes with no outgoing edges, in first-appearance order.
func (g *Graph) Leaves() []string {
	var leaves []string
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// HasCycle reports whether the graph contains a directed cycle.
// Detection uses iterative depth-first search with white/gray/black coloring.
func (g *Graph) HasCycle() bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.order))

	for _, start := range g.order {
		if color[start] != white {
			continue
		}

		type frame struct {
			id   string
			next int
		}
		stack := []frame{{id: start}}
		color[start] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succ := g.outgoing[top.id]
			if top.next < len(succ) {
				child := succ[top.next]
				top.next++
				switch color[child] {
				case white:
					color[child] = gray
					stack = append(stack, frame{id: child})
				case gray:
					return true
				}
				continue
			}
			color[top.id] = black
			stack = stack[:len(stack)-1]
		}
	}
	return false
}

// TopologicalOrder returns the nodes in topological order using Kahn's
// algorithm. Ties are broken by first-appearance order. If the graph
// contains a cycle, the remaining nodes are appended in first-appearance
// order so the result always covers every node.
func (g *Graph) TopologicalOrder() []string {
	inDegree := make(map[string]int, len(g.order))
	for _, id := range g.order {
		inDegree[id] = len(g.incoming[id])
	}

	var queue []string
	for _, id := range g.order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	result := make([]string, 0, len(g.order))
	seen := make(map[string]bool, len(g.order))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		result = append(result, id)
		seen[id] = true

		for _, succ := range g.outgoing[id] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	// Cycle: cover the leftovers deterministically.
	if len(result) != len(g.order) {
		for _, id := range g.order {
			if !seen[id] {
				result = append(result, id)
			}
		}
	}
	return result
}

// PosMap creates a position lookup map from a slice of node IDs.
// The returned map maps each ID to its index in the slice.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}
