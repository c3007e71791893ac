// Package phenome is the module's single public entrypoint: it wires the
// connectome builder, depth analyzer, DAG builder, activation engines,
// pooled allocation, and evaluators together behind one surface so a
// caller never has to import the internal packages directly.
package phenome

import (
	"fmt"

	"phenome/internal/connectome"
	"phenome/internal/dag"
	"phenome/internal/depth"
	"phenome/internal/io"
	"phenome/internal/nn"
	"phenome/internal/pool"
	"phenome/internal/scape"
)

// Connection is one (source, target, weight) edge of a phenome's connection
// list, as a genome or hand-built topology would hand it to a compiler.
type Connection = connectome.WeightedConnection

// Network is the compiled, engine-agnostic facade an evaluator drives. Both
// the cyclic and acyclic engines satisfy it.
type Network interface {
	scape.BlackBox
}

// EngineOptions configures how a compiled Network computes its output.
type EngineOptions struct {
	// Activation names a registered activation function (see
	// RegisterActivation/ListActivations). Defaults to "identity" when empty.
	Activation string
	// ActivationCount is the number of propagation iterations a cyclic
	// engine runs per Activate call. Ignored by acyclic engines, which
	// always settle in one pass. Defaults to 1 when <= 0.
	ActivationCount int
	// BoundedOutput clamps reads from the output vector to [-1, 1].
	BoundedOutput bool
}

func (o EngineOptions) resolve() (nn.ActivationFunc, int, error) {
	name := o.Activation
	if name == "" {
		name = "identity"
	}
	fn, err := nn.GetActivation(name)
	if err != nil {
		return nil, 0, err
	}
	count := o.ActivationCount
	if count <= 0 {
		count = 1
	}
	return fn, count, nil
}

// CompileCyclic compiles conns into a CyclicGraph and wraps it in a
// CyclicEngine, the form to use for recurrent topologies.
func CompileCyclic(conns []Connection, inputCount, outputCount int, opts EngineOptions, arrayPool *pool.ArrayPool) (*nn.CyclicEngine, error) {
	graph, err := connectome.BuildCyclic(conns, inputCount, outputCount)
	if err != nil {
		return nil, fmt.Errorf("compile cyclic: %w", err)
	}
	activation, activationCount, err := opts.resolve()
	if err != nil {
		return nil, fmt.Errorf("compile cyclic: %w", err)
	}
	return nn.NewCyclicEngine(graph, activation, activationCount, opts.BoundedOutput, arrayPool), nil
}

// CompileAcyclic compiles conns, asserts acyclicity via depth analysis, and
// wraps the resulting layered DAG in an AcyclicEngine. Depth analysis
// rejects a cycle reached from an input node; a cycle that no input
// reaches is not detected.
func CompileAcyclic(conns []Connection, inputCount, outputCount int, opts EngineOptions, arrayPool *pool.ArrayPool) (*nn.AcyclicEngine, error) {
	d, activation, err := compileDAG(conns, inputCount, outputCount, opts)
	if err != nil {
		return nil, err
	}
	return nn.NewAcyclicEngine(d, activation, opts.BoundedOutput, arrayPool), nil
}

// CompileVectorized is CompileAcyclic's strip-mined sibling: result-equivalent
// modulo floating-point summation order, faster on wide layers.
func CompileVectorized(conns []Connection, inputCount, outputCount int, opts EngineOptions, arrayPool *pool.ArrayPool) (*nn.VectorizedAcyclicEngine, error) {
	d, activation, err := compileDAG(conns, inputCount, outputCount, opts)
	if err != nil {
		return nil, err
	}
	return nn.NewVectorizedAcyclicEngine(d, activation, opts.BoundedOutput, arrayPool), nil
}

func compileDAG(conns []Connection, inputCount, outputCount int, opts EngineOptions) (*dag.DAG, nn.ActivationFunc, error) {
	graph, err := connectome.BuildCyclic(conns, inputCount, outputCount)
	if err != nil {
		return nil, nil, fmt.Errorf("compile acyclic: %w", err)
	}
	nodeDepth, graphDepth, err := depth.Analyze(graph)
	if err != nil {
		return nil, nil, fmt.Errorf("compile acyclic: %w", err)
	}
	activation, _, err := opts.resolve()
	if err != nil {
		return nil, nil, fmt.Errorf("compile acyclic: %w", err)
	}
	return dag.Build(graph, nodeDepth, graphDepth), activation, nil
}

// RegisterActivation installs a custom activation function under name, for
// topologies that need something beyond the built-in registry
// (identity, tanh, sigmoid, ...).
func RegisterActivation(name string, fn nn.ActivationFunc) error {
	return nn.RegisterActivation(name, fn)
}

// ListActivations returns every registered activation function's name.
func ListActivations() []string {
	return nn.ListActivations()
}

// ArrayPool re-exports pool.ArrayPool so a caller can hold and share one
// across repeated Compile calls without importing phenome/internal/pool.
type ArrayPool = pool.ArrayPool

// NewArrayPool returns a fresh pooled allocator for engine construction.
// Sharing one ArrayPool across repeated Compile calls is what lets a
// benchmark loop construct and dispose many engines without burdening the
// garbage collector with a fresh backing array each time.
func NewArrayPool() *pool.ArrayPool {
	return pool.NewArrayPool()
}

// CountingNetwork wraps a Network so a caller can recover how many times
// Activate was called, the activation-count figure evalstats.RunResult
// records for throughput reporting.
type CountingNetwork struct {
	Network
	count int64
}

// Count wraps net in a CountingNetwork starting at zero.
func Count(net Network) *CountingNetwork {
	return &CountingNetwork{Network: net}
}

func (c *CountingNetwork) Activate() {
	c.Network.Activate()
	c.count++
}

// Activations returns the number of Activate calls observed so far.
func (c *CountingNetwork) Activations() int64 {
	return c.count
}

// Evaluator re-exports scape.Evaluator so callers need only import this
// package to build evaluators and drive them against a compiled Network.
type Evaluator = scape.Evaluator

// BlackBox re-exports scape.BlackBox for the same reason.
type BlackBox = scape.BlackBox

// InputView and OutputView re-export the io package's vector interfaces so
// a caller assembling a hand-built BlackBox never needs to import
// phenome/internal/io directly.
type InputView = io.InputView
type OutputView = io.OutputView

// NewXOREvaluator builds the XOR truth-table evaluator, reconfigured for
// the named evaluation mode ("" or "gt" for the default training table;
// "validation", "test", or "benchmark" to reorder cases for out-of-sample
// scoring).
func NewXOREvaluator(mode string) (Evaluator, error) {
	return scape.NewXOR().ForMode(mode)
}

// NewMultiplexerEvaluator builds an addressBits-address-line multiplexer
// truth-table evaluator, reconfigured for the named evaluation mode.
func NewMultiplexerEvaluator(addressBits int, mode string) (Evaluator, error) {
	return scape.NewMultiplexer(addressBits).ForMode(mode)
}

// NewSinglePoleBalanceEvaluator builds the classic cart-pole balancing
// task, reconfigured for the named evaluation mode.
func NewSinglePoleBalanceEvaluator(mode string) (Evaluator, error) {
	return scape.NewSinglePoleBalance().ForMode(mode)
}

// NewDoublePoleBalanceEvaluator builds the harder two-pole balancing task,
// reconfigured for the named evaluation mode.
func NewDoublePoleBalanceEvaluator(mode string) (Evaluator, error) {
	return scape.NewDoublePoleBalance().ForMode(mode)
}
