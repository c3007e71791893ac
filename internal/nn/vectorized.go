package nn

import (
	"phenome/internal/dag"
	"phenome/internal/io"
	"phenome/internal/pool"
)

// vectorLanes is the strip-mining width for the connection accumulation
// loop. Go has no portable SIMD intrinsics, so "vectorized" here means
// manually unrolled lanes that keep the gather (indexed load) and multiply
// independent per lane, letting the compiler schedule them without a
// carried dependency; the scatter-add into target slots stays scalar
// because lanes in the same strip may share a target index.
const vectorLanes = 4

// VectorizedAcyclicEngine is result-equivalent to AcyclicEngine (modulo
// floating-point summation order) but strip-mines the per-layer connection
// loop in chunks of vectorLanes, falling back to a scalar tail.
type VectorizedAcyclicEngine struct {
	graph      *dag.DAG
	activation ActivationFunc

	handle      *pool.Handle
	activations []float64

	inputView  *io.ContiguousInput
	outputView io.OutputView
}

// NewVectorizedAcyclicEngine mirrors NewAcyclicEngine's construction.
func NewVectorizedAcyclicEngine(graph *dag.DAG, activation ActivationFunc, boundedOutput bool, arrayPool *pool.ArrayPool) *VectorizedAcyclicEngine {
	handle := arrayPool.AcquireHandle(graph.TotalNodeCount)
	e := &VectorizedAcyclicEngine{
		graph:       graph,
		activation:  activation,
		handle:      handle,
		activations: handle.Slice(),
	}

	e.inputView = io.NewContiguousInput(e.activations, graph.InputCount)
	var out io.OutputView = io.NewScatterOutput(e.activations, graph.OutputNodeIdx)
	if boundedOutput {
		out = io.NewBoundedOutput(out, -1, 1)
	}
	e.outputView = out
	return e
}

func (e *VectorizedAcyclicEngine) InputVector() io.InputView   { return e.inputView }
func (e *VectorizedAcyclicEngine) OutputVector() io.OutputView { return e.outputView }

// Activate has the same layer-by-layer structure as AcyclicEngine.Activate;
// only the connection accumulation loop is strip-mined.
func (e *VectorizedAcyclicEngine) Activate() {
	g := e.graph
	for i := g.InputCount; i < g.TotalNodeCount; i++ {
		e.activations[i] = 0
	}
	if g.GraphDepth < 2 {
		return
	}

	prevNodeEnd := g.LayerEnd[0].EndNodeIdx
	prevConnEnd := 0
	for l := 0; l <= g.GraphDepth-2; l++ {
		accumulateLayerVectorized(e.activations, g.SourceID, g.TargetID, g.Weight, prevConnEnd, g.LayerEnd[l].EndConnectionIdx)
		e.activation(e.activations, prevNodeEnd, g.LayerEnd[l+1].EndNodeIdx)
		prevNodeEnd = g.LayerEnd[l+1].EndNodeIdx
		prevConnEnd = g.LayerEnd[l].EndConnectionIdx
	}
}

// accumulateLayerVectorized strip-mines [start, end) in chunks of
// vectorLanes: each lane's gather (activations[source]) and multiply are
// independent of the others, but the scatter-add into activations[target]
// is done lane-by-lane in order since two lanes in the same strip can
// target the same node.
func accumulateLayerVectorized(activations []float64, sourceID, targetID []int, weight []float64, start, end int) {
	c := start
	for ; c+vectorLanes <= end; c += vectorLanes {
		var gathered [vectorLanes]float64
		for lane := 0; lane < vectorLanes; lane++ {
			gathered[lane] = activations[sourceID[c+lane]] * weight[c+lane]
		}
		for lane := 0; lane < vectorLanes; lane++ {
			activations[targetID[c+lane]] += gathered[lane]
		}
	}
	for ; c < end; c++ {
		activations[targetID[c]] += activations[sourceID[c]] * weight[c]
	}
}

// ResetState is a no-op for the same reason as AcyclicEngine: Activate
// unconditionally zeroes non-input state on entry.
func (e *VectorizedAcyclicEngine) ResetState() {}

// Dispose returns the backing array to its pool.
func (e *VectorizedAcyclicEngine) Dispose() {
	e.handle.Dispose()
}
