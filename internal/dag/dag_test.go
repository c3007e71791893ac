package dag

import (
	"testing"

	"phenome/internal/connectome"
	"phenome/internal/depth"
)

// buildDiamond compiles input(0) -> output(1) directly and input(0) ->
// hidden(10) -> output(1) through a detour, so the output is reachable at
// depth 1 and depth 2; the longest path must set its final depth.
func buildDiamond(t *testing.T) (*connectome.CyclicGraph, []int, int) {
	t.Helper()
	conns := []connectome.WeightedConnection{
		{SourceID: 0, TargetID: 10, Weight: 0.5},
		{SourceID: 10, TargetID: 1, Weight: 1},
		{SourceID: 0, TargetID: 1, Weight: 2},
	}
	g, err := connectome.BuildCyclic(conns, 1, 1)
	if err != nil {
		t.Fatalf("BuildCyclic: %v", err)
	}
	nodeDepth, graphDepth, err := depth.Analyze(g)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return g, nodeDepth, graphDepth
}

func TestBuildOrdersNodesByDepth(t *testing.T) {
	g, nodeDepth, graphDepth := buildDiamond(t)
	d := Build(g, nodeDepth, graphDepth)

	if d.GraphDepth != 3 {
		t.Fatalf("GraphDepth: got=%d want=3", d.GraphDepth)
	}
	if len(d.LayerEnd) != 3 {
		t.Fatalf("LayerEnd length: got=%d want=3", len(d.LayerEnd))
	}

	// the hidden node (depth 1) must be renumbered ahead of the output
	// node (depth 2).
	if d.OutputNodeIdx[0] != 2 {
		t.Fatalf("output new id: got=%d want=2 (hidden node must sort first)", d.OutputNodeIdx[0])
	}
}

func TestBuildLayerEndBoundsAreMonotonic(t *testing.T) {
	g, nodeDepth, graphDepth := buildDiamond(t)
	d := Build(g, nodeDepth, graphDepth)

	if d.LayerEnd[0].EndNodeIdx != 1 || d.LayerEnd[0].EndConnectionIdx != 2 {
		t.Fatalf("layer 0 bounds: got=%+v", d.LayerEnd[0])
	}
	last := d.LayerEnd[len(d.LayerEnd)-1]
	if last.EndNodeIdx != d.TotalNodeCount {
		t.Fatalf("final layer must cover all nodes: got=%d want=%d", last.EndNodeIdx, d.TotalNodeCount)
	}
	if last.EndConnectionIdx != len(d.SourceID) {
		t.Fatalf("final layer must cover all connections: got=%d want=%d", last.EndConnectionIdx, len(d.SourceID))
	}
	for i := 1; i < len(d.LayerEnd); i++ {
		if d.LayerEnd[i].EndNodeIdx < d.LayerEnd[i-1].EndNodeIdx || d.LayerEnd[i].EndConnectionIdx < d.LayerEnd[i-1].EndConnectionIdx {
			t.Fatalf("layer bounds must be non-decreasing: %+v then %+v", d.LayerEnd[i-1], d.LayerEnd[i])
		}
	}
}

func TestBuildNodeDepthSatisfiesInvariants(t *testing.T) {
	g, nodeDepth, graphDepth := buildDiamond(t)
	d := Build(g, nodeDepth, graphDepth)

	if len(d.NodeDepth) != d.TotalNodeCount {
		t.Fatalf("NodeDepth length: got=%d want=%d", len(d.NodeDepth), d.TotalNodeCount)
	}
	for i := range d.SourceID {
		if d.NodeDepth[d.TargetID[i]] <= d.NodeDepth[d.SourceID[i]] {
			t.Fatalf("connection %d: target depth %d must exceed source depth %d",
				i, d.NodeDepth[d.TargetID[i]], d.NodeDepth[d.SourceID[i]])
		}
	}
	for i := 1; i < len(d.NodeDepth); i++ {
		if d.NodeDepth[i] < d.NodeDepth[i-1] {
			t.Fatalf("NodeDepth must be non-decreasing by node index: %v", d.NodeDepth)
		}
	}
}

func TestBuildConnectionsSortedBySourceThenTarget(t *testing.T) {
	g, nodeDepth, graphDepth := buildDiamond(t)
	d := Build(g, nodeDepth, graphDepth)

	for i := 1; i < len(d.SourceID); i++ {
		prevSrc, curSrc := d.SourceID[i-1], d.SourceID[i]
		if prevSrc > curSrc {
			t.Fatalf("sourceId not ascending at %d", i)
		}
		if prevSrc == curSrc && d.TargetID[i-1] > d.TargetID[i] {
			t.Fatalf("targetId not ascending within equal source at %d", i)
		}
	}

	// connections are grouped by source depth, and every connection leaving
	// an input node sits in the depth-0 group, so the first layer bound must
	// already cover at least one connection.
	if d.LayerEnd[0].EndConnectionIdx == 0 {
		t.Fatalf("expected at least one connection to originate from depth 0")
	}
}
