package conv2d

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-deblur/dsp/core"
	"github.com/cwbudde/algo-deblur/dsp/raster"
	"gonum.org/v1/gonum/floats"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput   = errors.New("conv2d: empty input")
	ErrEmptyKernel  = errors.New("conv2d: empty kernel")
	ErrSizeMismatch = errors.New("conv2d: destination size mismatch")
)

var laplacianKernel = &raster.Image{Rows: 3, Cols: 3, Data: []float64{
	0, 1, 0,
	1, -4, 1,
	0, 1, 0,
}}

// Convolve returns the linear convolution of img with kernel using a
// centered anchor and reflect borders.
func Convolve(img, kernel *raster.Image, opts ...core.ProcessorOption) (*raster.Image, error) {
	if err := validate(img, kernel); err != nil {
		return nil, err
	}
	dst := raster.New(img.Rows, img.Cols)
	if err := convolveTo(dst, img, kernel, opts); err != nil {
		return nil, err
	}
	return dst, nil
}

// ConvolveTo is like Convolve but writes into dst, which must match img.
func ConvolveTo(dst, img, kernel *raster.Image, opts ...core.ProcessorOption) error {
	if err := validate(img, kernel); err != nil {
		return err
	}
	if dst == nil || !dst.SameSize(img) {
		return ErrSizeMismatch
	}
	return convolveTo(dst, img, kernel, opts)
}

// Correlate returns the cross-correlation of img with kernel (the kernel is
// applied unflipped) using a centered anchor and reflect borders.
func Correlate(img, kernel *raster.Image, opts ...core.ProcessorOption) (*raster.Image, error) {
	if err := validate(img, kernel); err != nil {
		return nil, err
	}
	dst := raster.New(img.Rows, img.Cols)
	if err := correlateAnchored(dst, img, kernel, kernel.Rows/2, kernel.Cols/2, opts); err != nil {
		return nil, err
	}
	return dst, nil
}

// CorrelateTo is like Correlate but writes into dst, which must match img.
// With the same kernel it is the adjoint of Convolve: both place the anchor
// at (kernel.Rows/2, kernel.Cols/2), also for even kernel sizes.
func CorrelateTo(dst, img, kernel *raster.Image, opts ...core.ProcessorOption) error {
	if err := validate(img, kernel); err != nil {
		return err
	}
	if dst == nil || !dst.SameSize(img) {
		return ErrSizeMismatch
	}
	return correlateAnchored(dst, img, kernel, kernel.Rows/2, kernel.Cols/2, opts)
}

// Laplacian returns the 5-point discrete Laplacian of img with reflect borders.
func Laplacian(img *raster.Image, opts ...core.ProcessorOption) (*raster.Image, error) {
	return Correlate(img, laplacianKernel, opts...)
}

// LaplacianTo is like Laplacian but writes into dst.
func LaplacianTo(dst, img *raster.Image, opts ...core.ProcessorOption) error {
	if err := validate(img, laplacianKernel); err != nil {
		return err
	}
	if dst == nil || !dst.SameSize(img) {
		return ErrSizeMismatch
	}
	return correlateAnchored(dst, img, laplacianKernel, 1, 1, opts)
}

func validate(img, kernel *raster.Image) error {
	if img.Empty() {
		return ErrEmptyInput
	}
	if kernel.Empty() {
		return ErrEmptyKernel
	}
	return nil
}

// convolveTo maps convolution onto correlation with the flipped kernel. The
// flipped kernel's anchor moves to the mirrored position, which coincides
// with the center for odd kernel sizes.
func convolveTo(dst, img, kernel *raster.Image, opts []core.ProcessorOption) error {
	flipped := raster.Flip(kernel)
	anchorRow := kernel.Rows - 1 - kernel.Rows/2
	anchorCol := kernel.Cols - 1 - kernel.Cols/2
	return correlateAnchored(dst, img, flipped, anchorRow, anchorCol, opts)
}

// correlateAnchored computes
//
//	dst(i,j) = sum_{u,v} k(u,v) * img(i+u-anchorRow, j+v-anchorCol)
//
// with reflect continuation outside img.
func correlateAnchored(dst, img, kernel *raster.Image, anchorRow, anchorCol int, opts []core.ProcessorOption) error {
	padded, err := raster.Pad(img, raster.Margins{
		Top:    anchorRow,
		Bottom: kernel.Rows - 1 - anchorRow,
		Left:   anchorCol,
		Right:  kernel.Cols - 1 - anchorCol,
	}, raster.BorderReflect, 0)
	if err != nil {
		return fmt.Errorf("conv2d: %w", err)
	}

	cfg := core.ApplyProcessorOptions(opts...)
	cols := img.Cols

	return core.ParallelRows(img.Rows, cfg.Workers, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			out := dst.Row(i)
			for j := range out {
				out[j] = 0
			}
			for u := range kernel.Rows {
				src := padded.Row(i + u)
				weights := kernel.Row(u)
				for v, w := range weights {
					if w == 0 {
						continue
					}
					floats.AddScaled(out, w, src[v:v+cols])
				}
			}
		}
		return nil
	})
}
