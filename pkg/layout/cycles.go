package layout

import "github.com/matzehuels/gridflow/pkg/graph"

// FindBackEdges detects the edges that close cycles using depth-first search
// with white/gray/black coloring. An edge into a node currently on the DFS
// stack (gray) is a back edge; self-loops are always back edges.
//
// Traversal starts from the graph's roots in first-appearance order, then
// covers any remaining unvisited nodes (a fully cyclic graph has no roots).
// The search is iterative with an explicit stack, so recursion depth never
// limits the input size.
//
// Each occurrence of a parallel edge is reported separately. Removing the
// returned edges from the graph always yields an acyclic forward edge set.
func FindBackEdges(g *graph.Graph) []graph.Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	var backEdges []graph.Edge

	type frame struct {
		id   string
		next int
	}

	dfs := func(start string) {
		color[start] = gray
		stack := []frame{{id: start}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succ := g.Successors(top.id)
			if top.next < len(succ) {
				child := succ[top.next]
				top.next++
				switch color[child] {
				case white:
					color[child] = gray
					stack = append(stack, frame{id: child})
				case gray:
					backEdges = append(backEdges, graph.Edge{From: top.id, To: child})
				}
				continue
			}
			color[top.id] = black
			stack = stack[:len(stack)-1]
		}
	}

	for _, id := range g.Roots() {
		if color[id] == white {
			dfs(id)
		}
	}

	for _, id := range g.Nodes() {
		if color[id] == white {
			dfs(id)
		}
	}

	return backEdges
}
