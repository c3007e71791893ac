// Package io implements the black-box facade's input and output vector
// views. A view hides whether the underlying storage is a contiguous slice
// of an engine's activation array (cyclic engine, acyclic inputs) or a
// scattered set of indices into it (acyclic outputs, whose node ids are no
// longer contiguous after depth-based renumbering).
package io

// InputView is the writable surface an evaluator drives: it writes signal
// values, the engine owns where they land in its activation storage.
type InputView interface {
	Len() int
	Set(i int, v float64)
}

// OutputView is the readable surface an evaluator consumes after activate.
type OutputView interface {
	Len() int
	Get(i int) float64
}

// ContiguousInput is an InputView over a contiguous subrange of an engine's
// backing array, starting at index 0 — the convention both engines use for
// input storage.
type ContiguousInput struct {
	backing []float64
	count   int
}

// NewContiguousInput returns a view over backing[0:count].
func NewContiguousInput(backing []float64, count int) *ContiguousInput {
	return &ContiguousInput{backing: backing, count: count}
}

func (v *ContiguousInput) Len() int { return v.count }

func (v *ContiguousInput) Set(i int, val float64) {
	v.backing[i] = val
}

// ContiguousOutput is an OutputView over a contiguous subrange of an
// engine's backing array, as produced by the cyclic engine where output
// node ids sit right after input node ids.
type ContiguousOutput struct {
	backing []float64
	offset  int
	count   int
}

// NewContiguousOutput returns a view over backing[offset:offset+count].
func NewContiguousOutput(backing []float64, offset, count int) *ContiguousOutput {
	return &ContiguousOutput{backing: backing, offset: offset, count: count}
}

func (v *ContiguousOutput) Len() int { return v.count }

func (v *ContiguousOutput) Get(i int) float64 {
	return v.backing[v.offset+i]
}

// ScatterOutput is an OutputView over output node values that are not
// contiguous in the backing array — the acyclic engine's case, where
// outputNodeIdx[] carries the post-renumbering position of each output.
type ScatterOutput struct {
	backing []float64
	indices []int
}

// NewScatterOutput returns a view that reads backing[indices[i]] for Get(i).
func NewScatterOutput(backing []float64, indices []int) *ScatterOutput {
	return &ScatterOutput{backing: backing, indices: indices}
}

func (v *ScatterOutput) Len() int { return len(v.indices) }

func (v *ScatterOutput) Get(i int) float64 {
	return v.backing[v.indices[i]]
}

// BoundedOutput decorates an OutputView, clamping every read value to
// [Min, Max]. Whether bounding is applied at all is a per-engine
// construction choice (the boundedOutput flag); the view itself is
// agnostic to which engine produced the values it clamps.
type BoundedOutput struct {
	inner    OutputView
	Min, Max float64
}

// NewBoundedOutput wraps inner, clamping every Get to [min, max].
func NewBoundedOutput(inner OutputView, min, max float64) *BoundedOutput {
	return &BoundedOutput{inner: inner, Min: min, Max: max}
}

func (v *BoundedOutput) Len() int { return v.inner.Len() }

func (v *BoundedOutput) Get(i int) float64 {
	return Sat(v.inner.Get(i), v.Max, v.Min)
}

// Sat clamps value to [min, max]. It lives here rather than in
// phenome/internal/nn because nn imports this package for its vector
// views, and every other caller of this clamp (BoundedOutput, the
// pole-balancing evaluators) already imports this package too.
func Sat(value, max, min float64) float64 {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// ScaleValue maps value from [min, max] to [-1, 1].
func ScaleValue(value, max, min float64) float64 {
	if max == min {
		return 0
	}
	return (value*2 - (max + min)) / (max - min)
}
