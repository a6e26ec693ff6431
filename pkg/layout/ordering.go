package layout

import (
	"sort"

	"github.com/matzehuels/gridflow/pkg/graph"
)

// OrderLayers reduces edge crossings with the barycenter heuristic.
//
// The layers slice is reordered in place. Four alternating sweeps are run:
// each sweep reorders every layer top-down against its predecessor layer,
// then bottom-up against its successor layer. A node's barycenter is the
// mean position of its forward neighbors in the reference layer; nodes with
// no neighbors there keep their current position. Sorting is stable, so
// equal barycenters preserve the existing order and the result is fully
// deterministic.
func OrderLayers(layers [][]string, layerOf map[string]int, adj adjacency) {
	if len(layers) <= 1 {
		return
	}

	for sweep := 0; sweep < orderingSweeps; sweep++ {
		// Top-down: order each layer by its predecessors one layer up.
		for i := 1; i < len(layers); i++ {
			reorderLayer(layers, i, layers[i-1], adj.predecessors, layerOf, i-1)
		}
		// Bottom-up: order each layer by its successors one layer down.
		for i := len(layers) - 2; i >= 0; i-- {
			reorderLayer(layers, i, layers[i+1], adj.successors, layerOf, i+1)
		}
	}
}

// reorderLayer sorts layers[idx] by the barycenter of each node's neighbors
// in the reference layer. Only neighbors actually placed in the reference
// layer count; forward edges can skip layers and those are ignored here.
func reorderLayer(layers [][]string, idx int, reference []string, neighbors map[string][]string, layerOf map[string]int, refLayer int) {
	refPos := graph.PosMap(reference)
	layer := layers[idx]

	barycenters := make([]float64, len(layer))
	for i, node := range layer {
		sum, count := 0, 0
		for _, n := range neighbors[node] {
			if layerOf[n] != refLayer {
				continue
			}
			sum += refPos[n]
			count++
		}
		if count == 0 {
			// No anchor in the reference layer: hold the current position.
			barycenters[i] = float64(i)
			continue
		}
		barycenters[i] = float64(sum) / float64(count)
	}

	order := make([]int, len(layer))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return barycenters[order[a]] < barycenters[order[b]]
	})

	reordered := make([]string, len(layer))
	for i, o := range order {
		reordered[i] = layer[o]
	}
	layers[idx] = reordered
}
