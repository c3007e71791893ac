package nn

import (
	"phenome/internal/dag"
	"phenome/internal/io"
	"phenome/internal/pool"
)

// AcyclicEngine activates a layered DAG graph in a single forward pass: the
// depth-based node and connection ordering guarantees every connection
// feeding a node has been accumulated before that node is activated, so
// unlike CyclicEngine no node is ever visited more than once per Activate.
//
// Not safe for concurrent use; one instance is driven by one evaluator on
// one goroutine.
type AcyclicEngine struct {
	graph      *dag.DAG
	activation ActivationFunc

	handle      *pool.Handle
	activations []float64

	inputView  *io.ContiguousInput
	outputView io.OutputView
}

// NewAcyclicEngine constructs an engine over graph. When boundedOutput is
// set, reads from the output view are clamped to [-1, 1].
func NewAcyclicEngine(graph *dag.DAG, activation ActivationFunc, boundedOutput bool, arrayPool *pool.ArrayPool) *AcyclicEngine {
	handle := arrayPool.AcquireHandle(graph.TotalNodeCount)
	e := &AcyclicEngine{
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

func (e *AcyclicEngine) InputVector() io.InputView   { return e.inputView }
func (e *AcyclicEngine) OutputVector() io.OutputView { return e.outputView }

// Activate zeroes hidden/output state, then walks layers 0..graphDepth-2,
// accumulating each layer's outgoing connections before activating the
// layer they feed. Because activations are zeroed unconditionally at entry,
// ResetState is a no-op for this engine.
func (e *AcyclicEngine) Activate() {
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
		for c := prevConnEnd; c < g.LayerEnd[l].EndConnectionIdx; c++ {
			e.activations[g.TargetID[c]] += e.activations[g.SourceID[c]] * g.Weight[c]
		}
		e.activation(e.activations, prevNodeEnd, g.LayerEnd[l+1].EndNodeIdx)
		prevNodeEnd = g.LayerEnd[l+1].EndNodeIdx
		prevConnEnd = g.LayerEnd[l].EndConnectionIdx
	}
}

// ResetState is a no-op: Activate unconditionally zeroes non-input slots on
// entry, so there is no stale state to clear between calls.
func (e *AcyclicEngine) ResetState() {}

// Dispose returns the backing array to its pool.
func (e *AcyclicEngine) Dispose() {
	e.handle.Dispose()
}
