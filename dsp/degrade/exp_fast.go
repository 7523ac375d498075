//go:build fastmath

package degrade

import "github.com/meko-christian/algo-approx"

// mathExp computes e^x using fast approximation. The window is renormalized
// afterwards, so only the relative shape error remains.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}
