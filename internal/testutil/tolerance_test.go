package testutil

import (
	"testing"

	"github.com/cwbudde/algo-deblur/dsp/raster"
)

func TestRequireSliceNearlyEqualPasses(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2, 3}, []float64{1, 2, 3 + 1e-12}, 1e-9)
}

func TestRequireImageNearlyEqualPasses(t *testing.T) {
	a := raster.Filled(3, 2, 0.5)
	b := a.Clone()
	b.Data[4] += 1e-12
	RequireImageNearlyEqual(t, a, b, 1e-9)
}

func TestRequireFinitePasses(t *testing.T) {
	RequireFinite(t, []float64{0, -1, 1e300})
}

func TestRequireNonNegativePasses(t *testing.T) {
	RequireNonNegative(t, []float64{0, 1, 1e-300})
}

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatal(err)
	}
	if d != 1 {
		t.Fatalf("MaxAbsDiff = %v, want 1", d)
	}
	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
