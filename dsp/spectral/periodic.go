package spectral

import (
	"fmt"

	"github.com/cwbudde/algo-deblur/dsp/raster"
)

// PeriodicMargins returns the padding added by PadToPeriodic for an image
// of the given size: half the height above and below, half the width left
// and right (integer division).
func PeriodicMargins(size raster.Size) raster.Margins {
	return raster.Margins{
		Top:    size.Rows / 2,
		Bottom: size.Rows / 2,
		Left:   size.Cols / 2,
		Right:  size.Cols / 2,
	}
}

// PeriodicSize returns the extent of PadToPeriodic's output for size.
func PeriodicSize(size raster.Size) raster.Size {
	m := PeriodicMargins(size)
	return raster.Size{
		Rows: size.Rows + m.Top + m.Bottom,
		Cols: size.Cols + m.Left + m.Right,
	}
}

// PadToPeriodic extends img on every side by half its height/width using
// mirror continuation, so the periodic extension assumed by the DFT has no
// jump at the borders.
func PadToPeriodic(img *raster.Image) (*raster.Image, error) {
	if img.Empty() {
		return nil, ErrEmptyInput
	}
	padded, err := raster.Pad(img, PeriodicMargins(img.Size()), raster.BorderReflect, 0)
	if err != nil {
		return nil, fmt.Errorf("spectral: periodic padding: %w", err)
	}
	return padded, nil
}

// CropOffset returns the top-left corner at which CropCenterRegion must cut
// a periodically padded, frequency-filtered image to realign it with the
// unpadded input. The kernel half-size term undoes the circular shift
// introduced by anchoring the PSF at the origin of the OTF.
func CropOffset(imageSize, kernelSize raster.Size) (top, left int) {
	m := PeriodicMargins(imageSize)
	return m.Top - kernelSize.Rows/2, m.Left - kernelSize.Cols/2
}

// CropCenterRegion extracts the outSize region at (top, left). It undoes
// PadToPeriodic when called with the offset from CropOffset.
func CropCenterRegion(img *raster.Image, outSize raster.Size, top, left int) (*raster.Image, error) {
	out, err := raster.Crop(img, top, left, outSize)
	if err != nil {
		return nil, fmt.Errorf("spectral: crop: %w", err)
	}
	return out, nil
}
