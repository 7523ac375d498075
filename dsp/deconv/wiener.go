package deconv

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-deblur/dsp/raster"
	"github.com/cwbudde/algo-deblur/dsp/spectral"
)

// Wiener restores degraded with the Wiener filter
//
//	F = G * conj(H) / (|H|^2 + mu)
//
// where G is the spectrum of the periodically padded image and H the OTF of
// psf. Larger mu suppresses more noise at the cost of sharpness. The result
// has the size of degraded.
func Wiener(degraded, psf *raster.Image, mu float64, opts ...Option) (*raster.Image, error) {
	if err := validateInputs(degraded, psf); err != nil {
		return nil, err
	}
	if err := validateNonNegative("mu", mu); err != nil {
		return nil, err
	}

	cfg := ApplyOptions(opts...)

	padded, err := spectral.PadToPeriodic(degraded)
	if err != nil {
		return nil, err
	}

	plan, err := spectral.NewPlan2D(padded.Rows, padded.Cols, cfg.Processor...)
	if err != nil {
		return nil, err
	}

	spec, err := plan.Forward(padded)
	if err != nil {
		return nil, fmt.Errorf("deconv: forward transform: %w", err)
	}

	otf, err := spectral.KernelToTransferFunction(psf, padded.Size(), cfg.Processor...)
	if err != nil {
		return nil, err
	}

	// otf is turned into the filter gain in place.
	for i, h := range otf.Data {
		otf.Data[i] = wienerGain(h, mu, cfg.Epsilon)
	}
	if err := spec.MulInPlace(otf); err != nil {
		return nil, err
	}

	if err := plan.InverseInPlace(spec); err != nil {
		return nil, fmt.Errorf("deconv: inverse transform: %w", err)
	}
	restored := raster.New(padded.Rows, padded.Cols)
	for i, c := range spec.Data {
		restored.Data[i] = real(c)
	}

	top, left := spectral.CropOffset(degraded.Size(), psf.Size())
	return spectral.CropCenterRegion(restored, degraded.Size(), top, left)
}

// wienerGain returns conj(h)/(conj(h)*h + mu). When the denominator magnitude
// falls below floor, conj(h)/floor is returned instead.
func wienerGain(h complex128, mu, floor float64) complex128 {
	conj := cmplx.Conj(h)
	denom := conj*h + complex(mu, 0)
	if cmplx.Abs(denom) < floor {
		return conj / complex(floor, 0)
	}
	return conj / denom
}
