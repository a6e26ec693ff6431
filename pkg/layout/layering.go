package layout

import "github.com/matzehuels/gridflow/pkg/graph"

// AssignLayers computes a longest-path layering over the forward edge set.
//
// AssignLayers performs a topological traversal (Kahn's algorithm):
//
//  1. Nodes with no forward predecessors start at layer 0 and seed the queue
//  2. Each dequeued node pushes its successors to max(successor, node+1)
//  3. Successors join the queue once all their predecessors are processed
//
// Every node ends up exactly one layer below its deepest forward predecessor,
// so forward edges always point to strictly greater layers. The forward edge
// set must be acyclic - run [FindBackEdges] first and exclude its result.
//
// Time complexity is O(V + E).
func AssignLayers(g *graph.Graph, adj adjacency) map[string]int {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	layerOf := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, id := range nodes {
		degree := len(adj.predecessors[id])
		inDegree[id] = degree
		layerOf[id] = 0
		if degree == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range adj.successors[curr] {
			if l := layerOf[curr] + 1; l > layerOf[child] {
				layerOf[child] = l
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return layerOf
}
