package connectome

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// CyclicGraph is the compact, index-based runtime form of a genome's
// connection list. Node IDs have been renumbered to a dense [0,
// totalNodeCount) range; connections are sorted ascending by (sourceId,
// targetId) and stored as parallel arrays for cache-friendly traversal.
//
// A CyclicGraph is immutable after construction and safe to share across
// goroutines.
type CyclicGraph struct {
	InputCount     int
	OutputCount    int
	TotalNodeCount int

	SourceID []int
	TargetID []int
	Weight   []float64
}

// BuildCyclic compiles a sparse connection list into a CyclicGraph. Hidden
// node IDs (any ID outside the reserved [0, inputCount+outputCount) range)
// are collected, sorted, and assigned dense IDs starting at
// inputCount+outputCount; input and output IDs pass through unchanged since
// they already satisfy the dense convention.
func BuildCyclic(conns []WeightedConnection, inputCount, outputCount int) (*CyclicGraph, error) {
	if inputCount < 0 || outputCount < 0 {
		return nil, fmt.Errorf("%w: negative input/output count", ErrInvalidGraph)
	}
	reservedCount := inputCount + outputCount

	sorted := append([]WeightedConnection(nil), conns...)
	slices.SortFunc(sorted, func(a, b WeightedConnection) int {
		if a.SourceID != b.SourceID {
			return a.SourceID - b.SourceID
		}
		return a.TargetID - b.TargetID
	})

	hiddenIDs := make(map[int]struct{})
	for _, c := range sorted {
		if c.SourceID < 0 || c.TargetID < 0 {
			return nil, fmt.Errorf("%w: negative node id in connection %+v", ErrInvalidGraph, c)
		}
		if c.SourceID >= reservedCount {
			hiddenIDs[c.SourceID] = struct{}{}
		}
		if c.TargetID >= reservedCount {
			hiddenIDs[c.TargetID] = struct{}{}
		}
	}

	sortedHidden := make([]int, 0, len(hiddenIDs))
	for id := range hiddenIDs {
		sortedHidden = append(sortedHidden, id)
	}
	slices.Sort(sortedHidden)

	hiddenIdxByID := make(map[int]int, len(sortedHidden))
	for i, id := range sortedHidden {
		hiddenIdxByID[id] = reservedCount + i
	}

	remap := func(id int) int {
		if id < reservedCount {
			return id
		}
		return hiddenIdxByID[id]
	}

	sourceID := make([]int, len(sorted))
	targetID := make([]int, len(sorted))
	weight := make([]float64, len(sorted))
	for i, c := range sorted {
		sourceID[i] = remap(c.SourceID)
		targetID[i] = remap(c.TargetID)
		weight[i] = c.Weight
	}

	return &CyclicGraph{
		InputCount:     inputCount,
		OutputCount:    outputCount,
		TotalNodeCount: reservedCount + len(sortedHidden),
		SourceID:       sourceID,
		TargetID:       targetID,
		Weight:         weight,
	}, nil
}
