// Package deconv restores sharp images from blurred, noisy observations given
// a known point-spread function (non-blind deconvolution).
//
// Three restorers are provided:
//
//   - [Wiener]: one-shot closed-form filter in the frequency domain with a
//     scalar noise-to-signal regularization mu.
//   - [RichardsonLucy]: iterative maximum-likelihood restoration under a
//     Poisson noise model, using a multiplicative update that keeps the
//     estimate non-negative.
//   - [RichardsonLucyTikhonov]: the same iteration damped by a smoothness
//     penalty lambda*||grad x||^2, which tolerates many more iterations before
//     noise amplification sets in.
//
// # Usage
//
//	restored, err := deconv.Wiener(degraded, psf, 1e-3)
//	restored, err := deconv.RichardsonLucy(degraded, psf, 30)
//	restored, err := deconv.RichardsonLucyTikhonov(degraded, psf, 0.002, 300)
//
// All inputs are single-channel images; color images are handled by
// restoring every channel independently with [Channels].
//
// # Numerical floors
//
// Near-zero spectral denominators in the Wiener filter and near-zero reblurred
// values in Richardson-Lucy are floored at sqrt(machine epsilon) (see
// [WithEpsilon]). The Tikhonov damping denominator is clamped to [0.8, 1.25].
// These degeneracies are never reported as errors.
//
// # Semi-convergence
//
// Richardson-Lucy runs for exactly the requested number of iterations. Its
// quality first improves and then degrades as noise is amplified, so the
// iteration count acts as the regularization parameter.
package deconv
