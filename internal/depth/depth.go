// Package depth assigns each node of an asserted-acyclic runtime graph a
// layer index: the longest path, in connection hops, from any input node.
package depth

import (
	"errors"
	"fmt"

	"phenome/internal/connectome"
)

// ErrCycleDetected is returned when the defensive back-edge check observes a
// connection into a node that is an ancestor on the current descent — the
// caller's acyclicity assertion did not hold. Detection is best-effort, not
// exhaustive: behavior on cyclic input is otherwise undefined per the graph
// builder contract.
var ErrCycleDetected = errors.New("cycle detected")

// Analyze computes nodeDepth[n] for every node in g (inputs are depth 0) and
// graphDepth, the number of distinct depth layers present (one more than
// the deepest node's depth, so a caller can iterate layers as
// [0, graphDepth)). It performs an iterative, stack-based depth-first
// traversal rooted at each input node in turn; a node is re-descended into
// whenever a deeper path reaches it, since the longest path — not the first
// one found — determines its depth.
func Analyze(g *connectome.CyclicGraph) ([]int, int, error) {
	adjacency := buildAdjacency(g)

	nodeDepth := make([]int, g.TotalNodeCount)
	onStack := make([]bool, g.TotalNodeCount)

	type frame struct {
		node    int
		edgeIdx int
	}

	for start := 0; start < g.InputCount; start++ {
		stack := []frame{{node: start}}
		onStack[start] = true

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			edges := adjacency[top.node]
			if top.edgeIdx >= len(edges) {
				onStack[top.node] = false
				stack = stack[:len(stack)-1]
				continue
			}
			target := edges[top.edgeIdx]
			top.edgeIdx++

			if onStack[target] {
				return nil, 0, fmt.Errorf("%w: back edge into node %d", ErrCycleDetected, target)
			}

			candidateDepth := nodeDepth[top.node] + 1
			if candidateDepth > nodeDepth[target] {
				nodeDepth[target] = candidateDepth
				onStack[target] = true
				stack = append(stack, frame{node: target})
			}
		}
	}

	maxDepth := 0
	for _, d := range nodeDepth {
		if d > maxDepth {
			maxDepth = d
		}
	}
	return nodeDepth, maxDepth + 1, nil
}

// buildAdjacency groups target node IDs by source node ID. g.SourceID is
// already sorted ascending (cyclic graph invariant), so this is a single
// linear pass.
func buildAdjacency(g *connectome.CyclicGraph) [][]int {
	adjacency := make([][]int, g.TotalNodeCount)
	for i, src := range g.SourceID {
		adjacency[src] = append(adjacency[src], g.TargetID[i])
	}
	return adjacency
}
