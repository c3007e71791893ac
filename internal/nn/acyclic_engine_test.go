package nn

import (
	"math"
	"testing"

	"phenome/internal/connectome"
	"phenome/internal/dag"
	"phenome/internal/depth"
	"phenome/internal/pool"
)

func buildSmallFeedForward(t *testing.T) *dag.DAG {
	t.Helper()
	conns := []connectome.WeightedConnection{
		{SourceID: 0, TargetID: 10, Weight: 0.6},
		{SourceID: 1, TargetID: 10, Weight: -0.4},
		{SourceID: 0, TargetID: 11, Weight: 0.3},
		{SourceID: 1, TargetID: 11, Weight: 0.8},
		{SourceID: 10, TargetID: 2, Weight: 1.0},
		{SourceID: 11, TargetID: 2, Weight: -1.0},
	}
	graph, err := connectome.BuildCyclic(conns, 2, 1)
	if err != nil {
		t.Fatalf("BuildCyclic: %v", err)
	}
	nodeDepth, graphDepth, err := depth.Analyze(graph)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return dag.Build(graph, nodeDepth, graphDepth)
}

func TestAcyclicEngineIdempotent(t *testing.T) {
	d := buildSmallFeedForward(t)
	tanh, err := GetActivation("tanh")
	if err != nil {
		t.Fatalf("GetActivation: %v", err)
	}
	arrayPool := pool.NewArrayPool()
	engine := NewAcyclicEngine(d, tanh, false, arrayPool)
	defer engine.Dispose()

	engine.InputVector().Set(0, 0.5)
	engine.InputVector().Set(1, -0.3)
	engine.Activate()
	first := engine.OutputVector().Get(0)

	engine.Activate()
	second := engine.OutputVector().Get(0)

	if first != second {
		t.Fatalf("idempotent activation violated: first=%v second=%v", first, second)
	}
}

func TestAcyclicEngineHandlesSkipLevelConnection(t *testing.T) {
	// input(0) -> output(1) directly, and input(0) -> hidden(10) ->
	// output(1) through a detour: the direct edge must not be activated
	// (squashed) before the hidden-path contribution also arrives.
	conns := []connectome.WeightedConnection{
		{SourceID: 0, TargetID: 10, Weight: 1.0},
		{SourceID: 10, TargetID: 1, Weight: 1.0},
		{SourceID: 0, TargetID: 1, Weight: 1.0},
	}
	graph, err := connectome.BuildCyclic(conns, 1, 1)
	if err != nil {
		t.Fatalf("BuildCyclic: %v", err)
	}
	nodeDepth, graphDepth, err := depth.Analyze(graph)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	d := dag.Build(graph, nodeDepth, graphDepth)

	arrayPool := pool.NewArrayPool()
	engine := NewAcyclicEngine(d, identityActivation, false, arrayPool)
	defer engine.Dispose()

	engine.InputVector().Set(0, 2.0)
	engine.Activate()
	// output receives 2.0 (direct) + 2.0 (through hidden) = 4.0
	if got := engine.OutputVector().Get(0); math.Abs(got-4.0) > 1e-12 {
		t.Fatalf("skip-level accumulation: got=%v want=4", got)
	}
}
