package deconv

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-deblur/dsp/raster"
	"github.com/cwbudde/algo-deblur/dsp/spectral"
)

// Errors returned by the restorers.
var (
	ErrEmptyInput        = errors.New("deconv: empty input")
	ErrInvalidKernelSize = spectral.ErrInvalidKernelSize
	ErrInvalidParameter  = errors.New("deconv: invalid parameter")
	ErrInvalidKernel     = errors.New("deconv: kernel must be non-negative with positive sum")
)

func validateInputs(degraded, psf *raster.Image) error {
	if degraded.Empty() {
		return fmt.Errorf("%w: degraded image", ErrEmptyInput)
	}
	if psf.Empty() {
		return fmt.Errorf("%w: kernel", ErrEmptyInput)
	}
	if !degraded.Size().Contains(psf.Size()) {
		return fmt.Errorf("%w: kernel %v, image %v", ErrInvalidKernelSize, psf.Size(), degraded.Size())
	}
	return nil
}

func validateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s = %v, must be finite and >= 0", ErrInvalidParameter, name, v)
	}
	return nil
}

func validateIterations(iterations int) error {
	if iterations < 1 {
		return fmt.Errorf("%w: iterations = %d, must be >= 1", ErrInvalidParameter, iterations)
	}
	return nil
}

func validateIntensityKernel(psf *raster.Image) error {
	var sum float64
	for _, w := range psf.Data {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: weight %v", ErrInvalidKernel, w)
		}
		sum += w
	}
	if !(sum > 0) {
		return fmt.Errorf("%w: sum %v", ErrInvalidKernel, sum)
	}
	return nil
}
