package scape

import (
	"math"
	"testing"

	"phenome/internal/io"
)

// constantOutputBox is a stub BlackBox whose output is fixed regardless of
// input, used to exercise the two named single-pole scenarios without a
// real compiled network.
type constantOutputBox struct {
	in     []float64
	output float64
}

func newConstantOutputBox(output float64) *constantOutputBox {
	return &constantOutputBox{in: make([]float64, 6), output: output}
}

func (b *constantOutputBox) InputVector() io.InputView   { return constantInput{b} }
func (b *constantOutputBox) OutputVector() io.OutputView { return constantOutput{b} }
func (b *constantOutputBox) Activate()                   {}
func (b *constantOutputBox) ResetState()                 {}

type constantInput struct{ b *constantOutputBox }

func (v constantInput) Len() int            { return len(v.b.in) }
func (v constantInput) Set(i int, x float64) { v.b.in[i] = x }

type constantOutput struct{ b *constantOutputBox }

func (v constantOutput) Len() int          { return 1 }
func (v constantOutput) Get(i int) float64 { return v.b.output }

func TestSinglePoleTrivialControllerRunsToMaxTimesteps(t *testing.T) {
	task := NewSinglePoleBalance()
	box := newConstantOutputBox(0.5) // output-0.5 clamped = 0 force
	fitness := task.Evaluate(box)

	want := float64(task.MaxTimesteps) + task.TrackLengthThreshold*5.0
	if fitness != want {
		t.Fatalf("trivial controller fitness: got=%v want=%v", fitness, want)
	}
}

func TestSinglePoleMaxLeftControllerTerminatesEarly(t *testing.T) {
	task := NewSinglePoleBalance()
	box := newConstantOutputBox(0.0) // output-0.5 clamped = -1, force = -10N
	fitness := task.Evaluate(box)

	if fitness >= float64(task.MaxTimesteps) {
		t.Fatalf("expected early termination, fitness=%v", fitness)
	}
	if fitness < 0 {
		t.Fatalf("fitness must be non-negative, got %v", fitness)
	}
}

func TestSinglePoleForModeTestAndBenchmarkMatch(t *testing.T) {
	task := NewSinglePoleBalance()
	test, err := task.ForMode("test")
	if err != nil {
		t.Fatalf("ForMode(test): %v", err)
	}
	benchmark, err := task.ForMode("benchmark")
	if err != nil {
		t.Fatalf("ForMode(benchmark): %v", err)
	}
	if test != benchmark {
		t.Fatalf("test and benchmark modes should match, got %+v vs %+v", test, benchmark)
	}
	if test.InitPoleAngle == 0 {
		t.Fatal("test mode should start the pole off-center")
	}
}

func TestSinglePoleForModeUnknownModeErrors(t *testing.T) {
	task := NewSinglePoleBalance()
	if _, err := task.ForMode("bogus"); err == nil {
		t.Fatal("expected error for unsupported mode")
	}
}

func TestSinglePoleFitnessNeverNegative(t *testing.T) {
	task := NewSinglePoleBalance()
	for _, output := range []float64{0, 0.25, 0.5, 0.75, 1.0} {
		box := newConstantOutputBox(output)
		if fitness := task.Evaluate(box); fitness < 0 || math.IsNaN(fitness) {
			t.Fatalf("output=%v produced invalid fitness=%v", output, fitness)
		}
	}
}
