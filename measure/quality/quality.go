package quality

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-deblur/dsp/conv2d"
	"github.com/cwbudde/algo-deblur/dsp/core"
	"github.com/cwbudde/algo-deblur/dsp/degrade"
	"github.com/cwbudde/algo-deblur/dsp/raster"
	"github.com/cwbudde/algo-deblur/dsp/spectral"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Errors returned by quality metrics.
var (
	ErrSizeMismatch   = errors.New("quality: image size mismatch")
	ErrEmptyInput     = errors.New("quality: empty input")
	ErrZeroVariance   = errors.New("quality: image has zero variance")
	ErrInvalidCutoff  = errors.New("quality: cutoff must be in [0, 0.5*sqrt(2))")
	ErrInvalidPeakVal = errors.New("quality: peak must be positive")
)

const (
	ssimWindowSize  = 11
	ssimWindowSigma = 1.5
	ssimK1          = 0.01
	ssimK2          = 0.03
)

func checkPair(ref, img *raster.Image) error {
	if ref.Empty() || img.Empty() {
		return ErrEmptyInput
	}
	if !ref.SameSize(img) {
		return fmt.Errorf("%w: %v vs %v", ErrSizeMismatch, ref.Size(), img.Size())
	}
	return nil
}

// MSE returns the mean squared difference between ref and img.
func MSE(ref, img *raster.Image) (float64, error) {
	if err := checkPair(ref, img); err != nil {
		return 0, err
	}
	diff := make([]float64, len(ref.Data))
	floats.SubTo(diff, img.Data, ref.Data)
	return floats.Dot(diff, diff) / float64(len(diff)), nil
}

// PSNR returns 10*log10(peak^2 / MSE) in dB. Identical images give +Inf.
func PSNR(ref, img *raster.Image, peak float64) (float64, error) {
	if !(peak > 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPeakVal, peak)
	}
	mse, err := MSE(ref, img)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}
	return core.LinearPowerToDB(peak * peak / mse), nil
}

// SSIM returns the mean structural similarity index between ref and img for
// intensities in [0, 1]. Local statistics use an 11x11 Gaussian window with
// reflect borders.
func SSIM(ref, img *raster.Image, opts ...core.ProcessorOption) (float64, error) {
	if err := checkPair(ref, img); err != nil {
		return 0, err
	}

	window, err := degrade.GaussianKernel(ssimWindowSize, ssimWindowSigma)
	if err != nil {
		return 0, fmt.Errorf("quality: %w", err)
	}
	blur := func(m *raster.Image) (*raster.Image, error) { return conv2d.Correlate(m, window, opts...) }

	n := len(ref.Data)
	xx := raster.New(ref.Rows, ref.Cols)
	yy := raster.New(ref.Rows, ref.Cols)
	xy := raster.New(ref.Rows, ref.Cols)
	floats.MulTo(xx.Data, ref.Data, ref.Data)
	floats.MulTo(yy.Data, img.Data, img.Data)
	floats.MulTo(xy.Data, ref.Data, img.Data)

	stats := make([]*raster.Image, 5)
	for i, m := range []*raster.Image{ref, img, xx, yy, xy} {
		s, err := blur(m)
		if err != nil {
			return 0, fmt.Errorf("quality: ssim: %w", err)
		}
		stats[i] = s
	}
	muX, muY, sXX, sYY, sXY := stats[0].Data, stats[1].Data, stats[2].Data, stats[3].Data, stats[4].Data

	c1 := ssimK1 * ssimK1
	c2 := ssimK2 * ssimK2
	ssimMap := make([]float64, n)
	for i := range ssimMap {
		mx, my := muX[i], muY[i]
		varX := sXX[i] - mx*mx
		varY := sYY[i] - my*my
		cov := sXY[i] - mx*my
		num := (2*mx*my + c1) * (2*cov + c2)
		den := (mx*mx + my*my + c1) * (varX + varY + c2)
		ssimMap[i] = num / den
	}
	return stat.Mean(ssimMap, nil), nil
}

// HighFrequencyEnergy returns the spectral power of img at radial
// frequencies above cutoff (cycles per sample), divided by the squared
// number of samples. By Parseval a cutoff below every bin yields the mean
// squared sample value.
func HighFrequencyEnergy(img *raster.Image, cutoff float64, opts ...core.ProcessorOption) (float64, error) {
	if img.Empty() {
		return 0, ErrEmptyInput
	}
	if !(cutoff >= 0 && cutoff < 0.5*math.Sqrt2) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCutoff, cutoff)
	}

	spec, err := spectral.Forward(img, opts...)
	if err != nil {
		return 0, fmt.Errorf("quality: %w", err)
	}
	power := spec.Power()

	var energy float64
	for u := range spec.Rows {
		fu := float64(min(u, spec.Rows-u)) / float64(spec.Rows)
		for v := range spec.Cols {
			fv := float64(min(v, spec.Cols-v)) / float64(spec.Cols)
			if math.Hypot(fu, fv) > cutoff {
				energy += power[u*spec.Cols+v]
			}
		}
	}
	n := float64(len(img.Data))
	return energy / (n * n), nil
}

// NoiseToSignal returns noiseSigma^2 divided by the population variance of
// img, the usual choice of the Wiener regularization parameter mu.
func NoiseToSignal(noiseSigma float64, img *raster.Image) (float64, error) {
	if img.Empty() {
		return 0, ErrEmptyInput
	}
	variance := stat.PopVariance(img.Data, nil)
	if variance == 0 {
		return 0, ErrZeroVariance
	}
	return noiseSigma * noiseSigma / variance, nil
}
