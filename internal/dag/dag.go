// Package dag rebuilds a cyclic-form runtime graph, plus its per-node depth
// info, into a layered DAG form that an acyclic activation engine can walk
// in a single pass.
package dag

import (
	"phenome/internal/connectome"

	"golang.org/x/exp/slices"
)

// LayerBound records, for one depth layer, the half-open prefix of nodes and
// connections that belong to depths less than or equal to that layer.
type LayerBound struct {
	EndNodeIdx       int
	EndConnectionIdx int
}

// DAG is the layered runtime form: nodes are ordered by ascending depth and
// connections are ordered by (sourceId, targetId) within that renumbering,
// so a single forward pass over both arrays suffices to activate the whole
// graph.
type DAG struct {
	InputCount     int
	OutputCount    int
	TotalNodeCount int
	GraphDepth     int

	SourceID []int
	TargetID []int
	Weight   []float64

	// OutputNodeIdx holds the new id of each output node, in original output
	// order, since outputs no longer occupy a contiguous range after the
	// depth-based renumbering.
	OutputNodeIdx []int

	// LayerEnd has GraphDepth entries; LayerEnd[d] bounds the nodes and
	// connections belonging to depth <= d.
	LayerEnd []LayerBound

	// NodeDepth holds each node's depth under the new, post-renumbering
	// ids: NodeDepth[TargetID[i]] > NodeDepth[SourceID[i]] for every
	// connection i, and NodeDepth is non-decreasing over node index.
	NodeDepth []int
}

// Build renumbers g's nodes by ascending nodeDepth (stable within a depth,
// so same-depth nodes retain their relative order from g) and remaps every
// connection through the new numbering.
func Build(g *connectome.CyclicGraph, nodeDepth []int, graphDepth int) *DAG {
	n := g.TotalNodeCount

	nodeOrder := make([]int, n-g.InputCount)
	for i := range nodeOrder {
		nodeOrder[i] = g.InputCount + i
	}
	slices.SortStableFunc(nodeOrder, func(a, b int) int {
		return nodeDepth[a] - nodeDepth[b]
	})

	newIDByOldID := make([]int, n)
	for i := 0; i < g.InputCount; i++ {
		newIDByOldID[i] = i
	}
	for newIdx, oldID := range nodeOrder {
		newIDByOldID[oldID] = g.InputCount + newIdx
	}

	remappedSource := make([]int, len(g.SourceID))
	remappedTarget := make([]int, len(g.TargetID))
	for i := range g.SourceID {
		remappedSource[i] = newIDByOldID[g.SourceID[i]]
		remappedTarget[i] = newIDByOldID[g.TargetID[i]]
	}

	connectionIndexMap := make([]int, len(remappedSource))
	for i := range connectionIndexMap {
		connectionIndexMap[i] = i
	}
	slices.SortFunc(connectionIndexMap, func(a, b int) int {
		if remappedSource[a] != remappedSource[b] {
			return remappedSource[a] - remappedSource[b]
		}
		return remappedTarget[a] - remappedTarget[b]
	})

	sourceID := make([]int, len(connectionIndexMap))
	targetID := make([]int, len(connectionIndexMap))
	weight := make([]float64, len(connectionIndexMap))
	for newIdx, origIdx := range connectionIndexMap {
		sourceID[newIdx] = remappedSource[origIdx]
		targetID[newIdx] = remappedTarget[origIdx]
		weight[newIdx] = g.Weight[origIdx]
	}

	newNodeDepth := make([]int, n)
	for oldID, d := range nodeDepth {
		newNodeDepth[newIDByOldID[oldID]] = d
	}

	outputNodeIdx := make([]int, g.OutputCount)
	for i := 0; i < g.OutputCount; i++ {
		outputNodeIdx[i] = newIDByOldID[g.InputCount+i]
	}

	layerEnd := make([]LayerBound, graphDepth)
	nodeCursor, connCursor := 0, 0
	for currDepth := 0; currDepth < graphDepth; currDepth++ {
		for nodeCursor < n && newNodeDepth[nodeCursor] == currDepth {
			nodeCursor++
		}
		for connCursor < len(sourceID) && newNodeDepth[sourceID[connCursor]] == currDepth {
			connCursor++
		}
		layerEnd[currDepth] = LayerBound{EndNodeIdx: nodeCursor, EndConnectionIdx: connCursor}
	}

	return &DAG{
		InputCount:     g.InputCount,
		OutputCount:    g.OutputCount,
		TotalNodeCount: n,
		GraphDepth:     graphDepth,
		SourceID:       sourceID,
		TargetID:       targetID,
		Weight:         weight,
		OutputNodeIdx:  outputNodeIdx,
		LayerEnd:       layerEnd,
		NodeDepth:      newNodeDepth,
	}
}
