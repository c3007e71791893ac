package scape

import (
	"fmt"
	"strings"
)

// TruthTableCase is one row of a truth-table evaluation: an input vector
// (excluding the bias the evaluator prepends) and the wanted output sign,
// encoded bipolar (-1/+1).
type TruthTableCase struct {
	Input []float64
	Want  float64
}

// TruthTableEvaluator scores a black box against a fixed table of
// input/output pairs. XOR and the N-address multiplexer are both instances
// of this evaluator with different case tables.
//
// Each case drives the box with a bias input of 1.0 followed by the case's
// input bits, and is preceded by a ResetState call so prior cases leave no
// trace in a cyclic network's hidden state. The per-case reward is
// continuous rather than pass/fail, so a network that gets the sign right
// but the margin wrong still earns partial credit; an all-correct run adds
// a fixed bonus on top.
type TruthTableEvaluator struct {
	EvalName string
	Cases    []TruthTableCase
	Bonus    float64
}

func (t TruthTableEvaluator) Name() string { return t.EvalName }

// ForMode returns t reconfigured for a named evaluation mode by rotating
// its case table, a scheme that works for any case count: "gt" leaves the
// table in its built order, "validation" rotates it by one case, and
// "test"/"benchmark" share an identical rotation by len(Cases)-1,
// evaluating the same case ordering.
func (t TruthTableEvaluator) ForMode(mode string) (TruthTableEvaluator, error) {
	out := t
	n := len(t.Cases)
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "", "gt":
		return out, nil
	case "validation":
		out.Cases = rotateCases(t.Cases, 1%max(n, 1))
	case "test", "benchmark":
		out.Cases = rotateCases(t.Cases, (n-1)%max(n, 1))
	default:
		return TruthTableEvaluator{}, fmt.Errorf("unsupported %s mode: %s", t.EvalName, mode)
	}
	return out, nil
}

// rotateCases returns a copy of cases rotated left by n positions.
func rotateCases(cases []TruthTableCase, n int) []TruthTableCase {
	if len(cases) == 0 {
		return cases
	}
	out := make([]TruthTableCase, len(cases))
	for i := range cases {
		out[i] = cases[(i+n)%len(cases)]
	}
	return out
}

func (t TruthTableEvaluator) Evaluate(box BlackBox) float64 {
	total := 0.0
	allCorrect := true

	for _, c := range t.Cases {
		box.ResetState()

		in := box.InputVector()
		in.Set(0, 1.0)
		for i, v := range c.Input {
			in.Set(i+1, v)
		}
		box.Activate()
		y := box.OutputVector().Get(0)

		if c.Want > 0 {
			total += 0.75 + 0.5*y - 0.25*y*y
		} else {
			total += 0.75 - 0.5*y - 0.25*y*y
		}

		correctSign := (c.Want > 0 && y > 0) || (c.Want < 0 && y < 0)
		if !correctSign {
			allCorrect = false
		}
	}

	if allCorrect {
		total += t.Bonus
	}
	return total
}
