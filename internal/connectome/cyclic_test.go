package connectome

import (
	"errors"
	"testing"
)

func TestBuildCyclicRemapsHiddenIDs(t *testing.T) {
	// inputs 0,1; output 2; hidden historical IDs 107 and 42 (sparse, non-contiguous).
	conns := []WeightedConnection{
		{SourceID: 0, TargetID: 107, Weight: 0.5},
		{SourceID: 107, TargetID: 2, Weight: -1.0},
		{SourceID: 1, TargetID: 42, Weight: 2.0},
		{SourceID: 42, TargetID: 2, Weight: 1.0},
	}

	g, err := BuildCyclic(conns, 2, 1)
	if err != nil {
		t.Fatalf("BuildCyclic: %v", err)
	}

	if g.TotalNodeCount != 5 {
		t.Fatalf("unexpected total node count: got=%d want=5", g.TotalNodeCount)
	}

	// 42 sorts before 107, so 42 -> 3, 107 -> 4.
	for i := range g.SourceID {
		if g.SourceID[i] >= g.TotalNodeCount || g.TargetID[i] >= g.TotalNodeCount {
			t.Fatalf("connection %d out of range: src=%d tgt=%d total=%d", i, g.SourceID[i], g.TargetID[i], g.TotalNodeCount)
		}
	}

	for i := 1; i < len(g.SourceID); i++ {
		prev, cur := g.SourceID[i-1], g.SourceID[i]
		if prev > cur {
			t.Fatalf("sourceId not ascending at %d: %d > %d", i, prev, cur)
		}
		if prev == cur && g.TargetID[i-1] > g.TargetID[i] {
			t.Fatalf("targetId not ascending within equal source at %d", i)
		}
	}
}

func TestBuildCyclicRejectsNegativeID(t *testing.T) {
	_, err := BuildCyclic([]WeightedConnection{{SourceID: -1, TargetID: 0, Weight: 1}}, 1, 1)
	if !errors.Is(err, ErrInvalidGraph) {
		t.Fatalf("expected ErrInvalidGraph, got %v", err)
	}
}

func TestBuildCyclicSelfLoopAndParallelEdges(t *testing.T) {
	conns := []WeightedConnection{
		{SourceID: 0, TargetID: 0, Weight: 0.5},
		{SourceID: 0, TargetID: 1, Weight: 1},
		{SourceID: 0, TargetID: 1, Weight: 2},
	}
	g, err := BuildCyclic(conns, 1, 1)
	if err != nil {
		t.Fatalf("BuildCyclic: %v", err)
	}
	if len(g.SourceID) != 3 {
		t.Fatalf("expected parallel edges preserved, got %d connections", len(g.SourceID))
	}
}
