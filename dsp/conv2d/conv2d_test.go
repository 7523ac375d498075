package conv2d

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-deblur/dsp/core"
	"github.com/cwbudde/algo-deblur/dsp/raster"
	"github.com/cwbudde/algo-deblur/internal/testutil"
	"gonum.org/v1/gonum/floats"
)

// naiveConvolve is a direct reference implementation of centered-anchor
// convolution with reflect borders.
func naiveConvolve(img, k *raster.Image) *raster.Image {
	out := raster.New(img.Rows, img.Cols)
	ar, ac := k.Rows/2, k.Cols/2
	for i := range img.Rows {
		for j := range img.Cols {
			var sum float64
			for u := range k.Rows {
				for v := range k.Cols {
					r := raster.ReflectIndex(i+ar-u, img.Rows)
					c := raster.ReflectIndex(j+ac-v, img.Cols)
					sum += k.At(u, v) * img.At(r, c)
				}
			}
			out.Set(i, j, sum)
		}
	}
	return out
}

func TestConvolveMatchesReference(t *testing.T) {
	img := testutil.DeterministicPositive(1, 0, 1, 13, 17)
	kernels := []*raster.Image{
		testutil.DeterministicPositive(2, 0, 1, 3, 3),
		testutil.DeterministicPositive(3, 0, 1, 5, 3),
		testutil.DeterministicPositive(4, 0, 1, 4, 6),
		testutil.DeterministicPositive(5, 0, 1, 1, 7),
	}
	for _, k := range kernels {
		t.Run(k.Size().String(), func(t *testing.T) {
			got, err := Convolve(img, k)
			if err != nil {
				t.Fatal(err)
			}
			testutil.RequireImageNearlyEqual(t, got, naiveConvolve(img, k), 1e-12)
		})
	}
}

func TestConvolveIdentity(t *testing.T) {
	img := testutil.DeterministicPositive(9, 0, 1, 8, 11)
	for _, k := range []*raster.Image{
		testutil.Impulse(1, 1, 0, 0),
		testutil.Impulse(3, 3, 1, 1),
		testutil.Impulse(5, 5, 2, 2),
	} {
		got, err := Convolve(img, k)
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireImageNearlyEqual(t, got, img, 0)
	}
}

func TestConvolveShiftDirection(t *testing.T) {
	img := testutil.DeterministicPositive(10, 0, 1, 9, 9)
	k := testutil.Impulse(3, 3, 0, 0)

	conv, err := Convolve(img, k)
	if err != nil {
		t.Fatal(err)
	}
	corr, err := Correlate(img, k)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < 8; i++ {
		for j := 1; j < 8; j++ {
			if got, want := conv.At(i, j), img.At(i+1, j+1); got != want {
				t.Fatalf("convolve(%d,%d) = %v, want %v", i, j, got, want)
			}
			if got, want := corr.At(i, j), img.At(i-1, j-1); got != want {
				t.Fatalf("correlate(%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestConvolveFlippedEqualsCorrelateForOddKernels(t *testing.T) {
	img := testutil.DeterministicPositive(11, 0, 1, 10, 12)
	k := testutil.DeterministicPositive(12, 0, 1, 5, 3)

	a, err := Convolve(img, raster.Flip(k))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Correlate(img, k)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireImageNearlyEqual(t, a, b, 1e-12)
}

func TestConvolveOnesPreservesKernelSum(t *testing.T) {
	ones := raster.Filled(7, 9, 1)
	k := testutil.DeterministicPositive(13, 0, 1, 5, 5)
	sum := k.Sum()

	got, err := Convolve(ones, raster.Flip(k))
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range got.Data {
		if !core.NearlyEqual(v, sum, 1e-12) {
			t.Fatalf("index %d: %v, want %v", i, v, sum)
		}
	}
}

// interior returns img with every sample within margin of the border zeroed.
func interior(img *raster.Image, margin int) *raster.Image {
	out := img.Clone()
	for r := range out.Rows {
		for c := range out.Cols {
			if r < margin || c < margin || r >= out.Rows-margin || c >= out.Cols-margin {
				out.Set(r, c, 0)
			}
		}
	}
	return out
}

func TestCorrelateToIsAdjointOfConvolve(t *testing.T) {
	// Supports away from the border make reflect padding irrelevant, so
	// <Convolve(x, k), y> must equal <x, Correlate(y, k)> exactly.
	x := interior(testutil.DeterministicPositive(20, 0, 1, 24, 22), 6)
	y := interior(testutil.DeterministicPositive(21, 0, 1, 24, 22), 6)

	for _, size := range []raster.Size{{Rows: 4, Cols: 1}, {Rows: 1, Cols: 4}, {Rows: 2, Cols: 2}, {Rows: 4, Cols: 5}, {Rows: 3, Cols: 3}} {
		t.Run(size.String(), func(t *testing.T) {
			k := testutil.DeterministicPositive(22, 0, 1, size.Rows, size.Cols)

			ax, err := Convolve(x, k)
			if err != nil {
				t.Fatal(err)
			}
			aty := raster.New(y.Rows, y.Cols)
			if err := CorrelateTo(aty, y, k); err != nil {
				t.Fatal(err)
			}

			lhs := floats.Dot(ax.Data, y.Data)
			rhs := floats.Dot(x.Data, aty.Data)
			if !core.NearlyEqual(lhs, rhs, 1e-12) {
				t.Fatalf("<Ax,y> = %v, <x,A'y> = %v", lhs, rhs)
			}
		})
	}
}

func TestCorrelateToMatchesCorrelate(t *testing.T) {
	img := testutil.DeterministicPositive(23, 0, 1, 9, 12)
	k := testutil.DeterministicPositive(24, 0, 1, 4, 2)

	want, err := Correlate(img, k)
	if err != nil {
		t.Fatal(err)
	}
	dst := raster.New(9, 12)
	if err := CorrelateTo(dst, img, k); err != nil {
		t.Fatal(err)
	}
	testutil.RequireImageNearlyEqual(t, dst, want, 0)

	if err := CorrelateTo(raster.New(9, 11), img, k); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestConvolveWorkersAgree(t *testing.T) {
	img := testutil.DeterministicPositive(14, 0, 1, 31, 29)
	k := testutil.DeterministicPositive(15, 0, 1, 5, 5)

	seq, err := Convolve(img, k, core.WithWorkers(1))
	if err != nil {
		t.Fatal(err)
	}
	par, err := Convolve(img, k, core.WithWorkers(8))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireImageNearlyEqual(t, par, seq, 0)
}

func TestLaplacian(t *testing.T) {
	flat := raster.Filled(6, 6, 0.7)
	lap, err := Laplacian(flat)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range lap.Data {
		if v != 0 {
			t.Fatalf("laplacian of constant at %d = %v", i, v)
		}
	}

	peak := testutil.Impulse(5, 5, 2, 2)
	lap, err = Laplacian(peak)
	if err != nil {
		t.Fatal(err)
	}
	if lap.At(2, 2) != -4 || lap.At(1, 2) != 1 || lap.At(2, 3) != 1 || lap.At(0, 0) != 0 {
		t.Fatalf("unexpected laplacian of impulse: %v", lap.Data)
	}

	dst := raster.New(5, 5)
	if err := LaplacianTo(dst, peak); err != nil {
		t.Fatal(err)
	}
	testutil.RequireImageNearlyEqual(t, dst, lap, 0)
}

func TestConvolveErrors(t *testing.T) {
	k := raster.Filled(3, 3, 1)
	if _, err := Convolve(&raster.Image{}, k); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := Correlate(raster.New(4, 4), &raster.Image{}); !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("expected ErrEmptyKernel, got %v", err)
	}
	if err := ConvolveTo(raster.New(3, 4), raster.New(4, 4), k); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func BenchmarkConvolve(b *testing.B) {
	img := testutil.DeterministicPositive(1, 0, 1, 256, 256)
	k := testutil.DeterministicPositive(2, 0, 1, 9, 9)
	dst := raster.New(256, 256)

	b.ResetTimer()
	for b.Loop() {
		if err := ConvolveTo(dst, img, k); err != nil {
			b.Fatal(err)
		}
	}
}
