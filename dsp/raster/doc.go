// Package raster provides the dense single-channel image type shared by the
// restoration packages, together with border-aware padding and cropping.
//
// Images are stored row-major in a flat []float64:
//
//	img := raster.New(rows, cols)
//	img.Set(r, c, 0.5)
//	v := img.At(r, c)
//
// # Border modes
//
// [Pad] extends an image using one of two border modes:
//
//   - [BorderReflect]: mirror continuation with the edge sample repeated
//     (fedcba|abcdef|fedcba). This is the continuation used by the periodic
//     padding of the Wiener filter and by the spatial convolutions.
//   - [BorderConstant]: fill with a constant value, used to zero-pad kernels.
package raster
