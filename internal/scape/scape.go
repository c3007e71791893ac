// Package scape implements phenome evaluators: tasks that drive a black-box
// network through its input/output vectors and score the result.
package scape

import "phenome/internal/io"

// BlackBox is the facade an evaluator drives. It hides whether the network
// behind it is a cyclic or acyclic engine.
type BlackBox interface {
	InputVector() io.InputView
	OutputVector() io.OutputView
	Activate()
	ResetState()
}

// Evaluator scores a black box. Per the core's failure semantics,
// evaluators never fail — a degenerate or diverging network simply scores
// low — so the contract has no error return.
type Evaluator interface {
	Name() string
	Evaluate(box BlackBox) float64
}
