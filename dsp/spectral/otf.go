package spectral

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-deblur/dsp/core"
	"github.com/cwbudde/algo-deblur/dsp/raster"
)

// ErrInvalidKernelSize is returned when a PSF does not fit the target size.
var ErrInvalidKernelSize = errors.New("spectral: kernel larger than target size")

// KernelToTransferFunction converts a spatial PSF into its optical transfer
// function of the given size. The PSF is zero-padded on the trailing edges
// only (anchored at the origin) and forward transformed.
func KernelToTransferFunction(psf *raster.Image, target raster.Size, opts ...core.ProcessorOption) (*Spectrum, error) {
	if psf.Empty() || target.Empty() {
		return nil, ErrEmptyInput
	}
	if !target.Contains(psf.Size()) {
		return nil, fmt.Errorf("%w: kernel %v, target %v", ErrInvalidKernelSize, psf.Size(), target)
	}

	padded, err := raster.Pad(psf, raster.Margins{
		Bottom: target.Rows - psf.Rows,
		Right:  target.Cols - psf.Cols,
	}, raster.BorderConstant, 0)
	if err != nil {
		return nil, fmt.Errorf("spectral: kernel padding: %w", err)
	}

	return Forward(padded, opts...)
}
