package scape

// NewXOR returns the canonical bipolar XOR truth table: bias plus two
// inputs, one output, four cases.
func NewXOR() TruthTableEvaluator {
	return TruthTableEvaluator{
		EvalName: "xor",
		Bonus:    10,
		Cases: []TruthTableCase{
			{Input: []float64{-1, -1}, Want: -1},
			{Input: []float64{-1, 1}, Want: 1},
			{Input: []float64{1, -1}, Want: 1},
			{Input: []float64{1, 1}, Want: -1},
		},
	}
}
