// Package degrade synthesizes degraded observations for testing and
// demonstrating the restorers: Gaussian point-spread functions, blurring
// with reflect borders and additive Gaussian noise.
package degrade

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-deblur/dsp/conv2d"
	"github.com/cwbudde/algo-deblur/dsp/core"
	"github.com/cwbudde/algo-deblur/dsp/raster"
)

// Errors returned by degradation functions.
var (
	ErrInvalidKernelSize = errors.New("degrade: kernel size must be >= 1")
	ErrInvalidSigma      = errors.New("degrade: sigma must be finite and >= 0")
)

// GaussianWindow returns n samples of exp(-(i-(n-1)/2)^2 / (2*sigma^2))
// normalized to unit sum. A non-positive sigma is derived from n as
// 0.3*((n-1)*0.5 - 1) + 0.8.
func GaussianWindow(n int, sigma float64) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKernelSize, n)
	}
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigma, sigma)
	}
	if sigma <= 0 {
		sigma = 0.3*(float64(n-1)*0.5-1) + 0.8
	}

	w := make([]float64, n)
	center := float64(n-1) / 2
	scale := -0.5 / (sigma * sigma)
	var sum float64
	for i := range w {
		d := float64(i) - center
		w[i] = mathExp(scale * d * d)
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}
	return w, nil
}

// GaussianKernel returns a size x size PSF built as the outer product of two
// Gaussian windows. It sums to 1.
func GaussianKernel(size int, sigma float64) (*raster.Image, error) {
	w, err := GaussianWindow(size, sigma)
	if err != nil {
		return nil, err
	}
	k := raster.New(size, size)
	for r, wr := range w {
		row := k.Row(r)
		for c, wc := range w {
			row[c] = wr * wc
		}
	}
	return k, nil
}

// Blur applies kernel to img with a centered anchor and reflect borders.
func Blur(img, kernel *raster.Image, opts ...core.ProcessorOption) (*raster.Image, error) {
	out, err := conv2d.Correlate(img, kernel, opts...)
	if err != nil {
		return nil, fmt.Errorf("degrade: blur: %w", err)
	}
	return out, nil
}

// AddGaussianNoise returns img plus zero-mean Gaussian noise of standard
// deviation sigma drawn from a source seeded with seed.
func AddGaussianNoise(img *raster.Image, sigma float64, seed int64) (*raster.Image, error) {
	if img.Empty() {
		return nil, raster.ErrEmptyImage
	}
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigma, sigma)
	}

	out := img.Clone()
	if sigma == 0 {
		return out, nil
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range out.Data {
		out.Data[i] += sigma * rng.NormFloat64()
	}
	return out, nil
}

// BlurNoise blurs img with kernel and then adds Gaussian noise.
func BlurNoise(img, kernel *raster.Image, sigma float64, seed int64, opts ...core.ProcessorOption) (*raster.Image, error) {
	blurred, err := Blur(img, kernel, opts...)
	if err != nil {
		return nil, err
	}
	return AddGaussianNoise(blurred, sigma, seed)
}
