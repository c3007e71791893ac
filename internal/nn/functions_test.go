package nn

import (
	"math"
	"testing"
)

func TestSaturationHelpers(t *testing.T) {
	if got := Saturation(1500); got != 1000 {
		t.Fatalf("expected saturation upper clamp, got=%f", got)
	}
	if got := Saturation(-1500); got != -1000 {
		t.Fatalf("expected saturation lower clamp, got=%f", got)
	}
	if got := SaturationWithSpread(5, 2); got != 2 {
		t.Fatalf("expected spread clamp, got=%f", got)
	}
	if got := SaturationWithSpread(-5, 2); got != -2 {
		t.Fatalf("expected spread lower clamp, got=%f", got)
	}
}

func TestScaleAndSatHelpers(t *testing.T) {
	if got := ScaleValue(2, 4, 0); math.Abs(got-0) > 1e-12 {
		t.Fatalf("expected midpoint scale=0, got=%f", got)
	}
	gotSlice := ScaleSlice([]float64{0, 2, 4}, 4, 0)
	wantSlice := []float64{-1, 0, 1}
	for i := range wantSlice {
		if math.Abs(gotSlice[i]-wantSlice[i]) > 1e-12 {
			t.Fatalf("unexpected scaled slice at %d: got=%f want=%f", i, gotSlice[i], wantSlice[i])
		}
	}
	if got := Sat(5, 3, -3); got != 3 {
		t.Fatalf("expected sat max clamp, got=%f", got)
	}
	if got := SatDeadZone(0.1, 3, -3, 0.5, -0.5); got != 0 {
		t.Fatalf("expected sat deadzone zero, got=%f", got)
	}
}

func TestAvgAndStd(t *testing.T) {
	avg, err := Avg([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("avg failed: %v", err)
	}
	if math.Abs(avg-2) > 1e-12 {
		t.Fatalf("unexpected avg: %f", avg)
	}
	std, err := Std([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("std failed: %v", err)
	}
	if math.Abs(std-math.Sqrt(2.0/3.0)) > 1e-12 {
		t.Fatalf("unexpected std: %f", std)
	}
	if _, err := Avg(nil); err == nil {
		t.Fatal("expected avg empty error")
	}
}
