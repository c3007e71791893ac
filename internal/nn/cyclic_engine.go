package nn

import (
	"phenome/internal/connectome"
	"phenome/internal/io"
	"phenome/internal/pool"
)

// CyclicEngine activates a possibly-recurrent runtime graph by iterating a
// fixed number of propagation steps. It holds two activation arrays — pre
// and post — because a cyclic graph's connections may feed a node whose own
// output hasn't settled yet within the current step; separating the
// accumulation buffer from the read buffer makes that well-defined.
//
// A CyclicEngine is not safe for concurrent use: it is mutable per-instance
// state meant to be driven by a single evaluator on a single goroutine.
type CyclicEngine struct {
	graph           *connectome.CyclicGraph
	activation      ActivationFunc
	activationCount int

	preHandle  *pool.Handle
	postHandle *pool.Handle
	pre        []float64
	post       []float64

	inputView  *io.ContiguousInput
	outputView io.OutputView
}

// NewCyclicEngine constructs an engine over graph, running activationCount
// propagation iterations per Activate call. When boundedOutput is set, reads
// from the output view are clamped to [-1, 1].
func NewCyclicEngine(graph *connectome.CyclicGraph, activation ActivationFunc, activationCount int, boundedOutput bool, arrayPool *pool.ArrayPool) *CyclicEngine {
	preHandle := arrayPool.AcquireHandle(graph.TotalNodeCount)
	postHandle := arrayPool.AcquireHandle(graph.TotalNodeCount)

	e := &CyclicEngine{
		graph:           graph,
		activation:      activation,
		activationCount: activationCount,
		preHandle:       preHandle,
		postHandle:      postHandle,
		pre:             preHandle.Slice(),
		post:            postHandle.Slice(),
	}

	e.inputView = io.NewContiguousInput(e.post, graph.InputCount)
	var out io.OutputView = io.NewContiguousOutput(e.post, graph.InputCount, graph.OutputCount)
	if boundedOutput {
		out = io.NewBoundedOutput(out, -1, 1)
	}
	e.outputView = out
	return e
}

// InputVector is the writable view an evaluator drives before Activate.
func (e *CyclicEngine) InputVector() io.InputView { return e.inputView }

// OutputVector is the readable view an evaluator consumes after Activate.
func (e *CyclicEngine) OutputVector() io.OutputView { return e.outputView }

// Activate runs activationCount propagation iterations. Each iteration
// accumulates every connection's contribution into pre, copies the hidden
// and output range into post, activates it in place, then zeroes pre over
// that same range for the next iteration.
func (e *CyclicEngine) Activate() {
	g := e.graph
	for iter := 0; iter < e.activationCount; iter++ {
		for i := range g.SourceID {
			e.pre[g.TargetID[i]] += e.post[g.SourceID[i]] * g.Weight[i]
		}
		copy(e.post[g.InputCount:g.TotalNodeCount], e.pre[g.InputCount:g.TotalNodeCount])
		e.activation(e.post, g.InputCount, g.TotalNodeCount)
		for i := g.InputCount; i < g.TotalNodeCount; i++ {
			e.pre[i] = 0
		}
	}
}

// ResetState zeroes both pre and post for hidden and output nodes, leaving
// input slots untouched since only the caller assigns them. pre is already
// re-zeroed by the last Activate call's own loop, but ResetState also
// covers the case where it's called before any Activate has run on a
// freshly pool-acquired array, which may hold another evaluation's values.
// Callers must reset between independent evaluations that share an engine
// instance.
func (e *CyclicEngine) ResetState() {
	g := e.graph
	for i := g.InputCount; i < g.TotalNodeCount; i++ {
		e.pre[i] = 0
		e.post[i] = 0
	}
}

// Dispose returns both backing arrays to their pool. Calling Dispose more
// than once, or using the engine afterward, is undefined behavior.
func (e *CyclicEngine) Dispose() {
	e.preHandle.Dispose()
	e.postHandle.Dispose()
}
