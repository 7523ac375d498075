// Package quality scores restored images against a reference.
//
// The scores are used for reporting only; no restorer depends on them.
//
//   - [PSNR]: peak signal-to-noise ratio in dB.
//   - [SSIM]: mean structural similarity with an 11x11 Gaussian window
//     (sigma 1.5) and the usual stabilizers C1=(0.01L)^2, C2=(0.03L)^2.
//   - [HighFrequencyEnergy]: mean spectral power above a radial frequency
//     cutoff, a simple measure of residual noise and ringing.
//   - [NoiseToSignal]: the Wiener mu heuristic sigma^2 / var(image).
//
// # Usage
//
//	psnr, err := quality.PSNR(reference, restored, 1)
//	ssim, err := quality.SSIM(reference, restored)
package quality
