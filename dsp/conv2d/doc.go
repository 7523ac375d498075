// Package conv2d provides spatial 2-D convolution and correlation of
// single-channel images with small kernels.
//
// All routines produce "same"-size output: the kernel anchor is its center
// sample (rows/2, cols/2) and samples outside the image are synthesized by
// mirror continuation ([raster.BorderReflect]), so no periodic wrap-around
// artifacts appear at the image edges.
//
//	blurred, err := conv2d.Convolve(img, psf)
//	adjoint, err := conv2d.Convolve(residual, raster.Flip(psf))
//
// Rows are processed in parallel according to [core.ProcessorOption]s; the
// result does not depend on the worker count.
package conv2d
