// Package spectral provides the frequency-domain utilities used by the
// restoration filters: 2-D discrete Fourier transforms of images, conversion
// of a spatial point-spread function (PSF) into an optical transfer function
// (OTF), and the periodic padding/cropping that limits circular-convolution
// artifacts at the image borders.
//
// # Conventions
//
// The forward transform is unnormalized and the inverse is scaled by
// 1/(rows*cols), so
//
//	spec, _ := spectral.Forward(img)
//	back, _ := spectral.Inverse(spec) // back == img within rounding
//
// # Backends
//
// A 2-D transform is computed as 1-D transforms along every row followed by
// every column. Power-of-two lengths use algo-fft plans; all other lengths use
// the mixed-radix transform from gonum's dsp/fourier package. Both produce
// identical conventions.
//
// # Periodic padding
//
// The Wiener filter assumes a circular blur. [PadToPeriodic] extends the
// image by half its height and width on every side with mirror continuation,
// so that the periodic extension seen by the DFT is continuous. After
// filtering, [CropCenterRegion] at [CropOffset] recovers the original frame,
// compensating for the shift introduced by anchoring the PSF at the origin in
// [KernelToTransferFunction].
package spectral
