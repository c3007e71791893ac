package nn

import (
	"math"
	"testing"

	"phenome/internal/connectome"
	"phenome/internal/pool"
)

func identityActivation(buf []float64, start, end int) {}

// TestCyclicEngineSelfLoopAccumulation drives a single output node with a
// self-loop of weight 0.5: after n iterations with constant input x and an
// identity activation, the output must equal x * sum(0.5^k, k=0..n-1) —
// this exercises the accumulate-then-activate ordering within one step.
func TestCyclicEngineSelfLoopAccumulation(t *testing.T) {
	conns := []connectome.WeightedConnection{
		{SourceID: 0, TargetID: 1, Weight: 1.0},
		{SourceID: 1, TargetID: 1, Weight: 0.5},
	}
	graph, err := connectome.BuildCyclic(conns, 1, 1)
	if err != nil {
		t.Fatalf("BuildCyclic: %v", err)
	}

	const n = 5
	const x = 2.0
	arrayPool := pool.NewArrayPool()
	engine := NewCyclicEngine(graph, identityActivation, n, false, arrayPool)
	defer engine.Dispose()

	engine.InputVector().Set(0, x)
	engine.Activate()

	want := 0.0
	for k := 0; k < n; k++ {
		want += x * math.Pow(0.5, float64(k))
	}
	got := engine.OutputVector().Get(0)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("self-loop accumulation: got=%v want=%v", got, want)
	}
}

func TestCyclicEngineResetIsolation(t *testing.T) {
	conns := []connectome.WeightedConnection{
		{SourceID: 0, TargetID: 1, Weight: 1.0},
		{SourceID: 1, TargetID: 1, Weight: 0.5},
	}
	graph, err := connectome.BuildCyclic(conns, 1, 1)
	if err != nil {
		t.Fatalf("BuildCyclic: %v", err)
	}
	arrayPool := pool.NewArrayPool()
	engine := NewCyclicEngine(graph, identityActivation, 3, false, arrayPool)
	defer engine.Dispose()

	engine.InputVector().Set(0, 2.0)
	engine.Activate()
	first := engine.OutputVector().Get(0)

	engine.ResetState()
	engine.InputVector().Set(0, 2.0)
	engine.Activate()
	second := engine.OutputVector().Get(0)

	if first != second {
		t.Fatalf("reset isolation violated: first=%v second=%v", first, second)
	}
}

func TestCyclicEngineBoundedOutputClamps(t *testing.T) {
	conns := []connectome.WeightedConnection{
		{SourceID: 0, TargetID: 1, Weight: 100.0},
	}
	graph, err := connectome.BuildCyclic(conns, 1, 1)
	if err != nil {
		t.Fatalf("BuildCyclic: %v", err)
	}
	arrayPool := pool.NewArrayPool()
	engine := NewCyclicEngine(graph, identityActivation, 1, true, arrayPool)
	defer engine.Dispose()

	engine.InputVector().Set(0, 1.0)
	engine.Activate()
	if got := engine.OutputVector().Get(0); got != 1.0 {
		t.Fatalf("bounded output should clamp to 1.0, got %v", got)
	}
}
