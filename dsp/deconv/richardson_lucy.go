package deconv

import (
	"fmt"

	"github.com/cwbudde/algo-deblur/dsp/conv2d"
	"github.com/cwbudde/algo-deblur/dsp/core"
	"github.com/cwbudde/algo-deblur/dsp/raster"
	"github.com/cwbudde/algo-vecmath"
)

// RichardsonLucy restores degraded by running exactly iterations steps of
//
//	reblurred  = x_k (*) psf
//	ratio      = degraded / max(reblurred, eps)
//	correction = ratio (x) psf
//	x_{k+1}    = x_k * correction
//
// where (*) is convolution and (x) correlation, both with reflect borders and
// the anchor at the kernel center (rows/2, cols/2), so the correction is
// the adjoint of the blur for odd and even kernel sizes. psf must be non-negative with a positive
// sum (normally 1). Negative samples in degraded are treated as zero. The
// estimate stays non-negative; it is not rescaled and may exceed 1.
func RichardsonLucy(degraded, psf *raster.Image, iterations int, opts ...Option) (*raster.Image, error) {
	if err := validateRichardsonLucy(degraded, psf, iterations); err != nil {
		return nil, err
	}
	cfg := ApplyOptions(opts...)
	if err := validateInitial(cfg.Initial, degraded); err != nil {
		return nil, err
	}
	return richardsonLucy(degraded, psf, 0, iterations, cfg)
}

func validateRichardsonLucy(degraded, psf *raster.Image, iterations int) error {
	if err := validateInputs(degraded, psf); err != nil {
		return err
	}
	if err := validateIterations(iterations); err != nil {
		return err
	}
	return validateIntensityKernel(psf)
}

func validateInitial(initial, degraded *raster.Image) error {
	if initial == nil {
		return nil
	}
	if initial.Empty() || !initial.SameSize(degraded) {
		return fmt.Errorf("%w: initial estimate size %v, image %v", ErrInvalidParameter, initial.Size(), degraded.Size())
	}
	for _, v := range initial.Data {
		if !(v >= 0) {
			return fmt.Errorf("%w: initial estimate has negative sample %v", ErrInvalidParameter, v)
		}
	}
	return nil
}

// richardsonLucy runs the multiplicative iteration. A positive lambda divides
// the correction by the one-step-late Tikhonov term 1 - 2*lambda*lap(x_k),
// clamped to [minDamping, maxDamping].
func richardsonLucy(degraded, psf *raster.Image, lambda float64, iterations int, cfg Config) (*raster.Image, error) {
	eps := cfg.Epsilon
	procs := cfg.Processor

	observed := degraded.Clone()
	for i, v := range observed.Data {
		if v < 0 {
			observed.Data[i] = 0
		}
	}

	var estimate *raster.Image
	if cfg.Initial != nil {
		estimate = cfg.Initial.Clone()
	} else {
		estimate = observed.Clone()
		for i, v := range estimate.Data {
			estimate.Data[i] = core.FloorAbove(v, eps)
		}
	}

	reblurred := raster.New(degraded.Rows, degraded.Cols)
	ratio := raster.New(degraded.Rows, degraded.Cols)
	correction := raster.New(degraded.Rows, degraded.Cols)

	var lap *raster.Image
	if lambda > 0 {
		lap = raster.New(degraded.Rows, degraded.Cols)
	}

	cfg.notify(0, estimate)

	for k := 1; k <= iterations; k++ {
		if err := conv2d.ConvolveTo(reblurred, estimate, psf, procs...); err != nil {
			return nil, fmt.Errorf("deconv: iteration %d: %w", k, err)
		}

		for i, b := range reblurred.Data {
			ratio.Data[i] = observed.Data[i] / core.FloorAbove(b, eps)
		}

		if err := conv2d.CorrelateTo(correction, ratio, psf, procs...); err != nil {
			return nil, fmt.Errorf("deconv: iteration %d: %w", k, err)
		}

		if lap != nil {
			if err := conv2d.LaplacianTo(lap, estimate, procs...); err != nil {
				return nil, fmt.Errorf("deconv: iteration %d: %w", k, err)
			}
			dampCorrection(correction.Data, lap.Data, lambda)
		}

		vecmath.MulBlockInPlace(estimate.Data, correction.Data)
		cfg.notify(k, estimate)
	}

	return estimate, nil
}

func (cfg Config) notify(k int, estimate *raster.Image) {
	if cfg.Observer != nil {
		cfg.Observer(k, estimate)
	}
}
