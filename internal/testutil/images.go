package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-deblur/dsp/raster"
)

// DeterministicNoise generates an image of uniform noise in
// [-amplitude, amplitude] with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, rows, cols int) *raster.Image {
	img := raster.New(rows, cols)
	rng := rand.New(rand.NewSource(seed))
	for i := range img.Data {
		img.Data[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return img
}

// DeterministicPositive generates an image of uniform values in [lo, hi).
func DeterministicPositive(seed int64, lo, hi float64, rows, cols int) *raster.Image {
	img := raster.New(rows, cols)
	rng := rand.New(rand.NewSource(seed))
	for i := range img.Data {
		img.Data[i] = lo + rng.Float64()*(hi-lo)
	}
	return img
}

// Impulse generates a rows x cols image with a single 1 at (r, c).
func Impulse(rows, cols, r, c int) *raster.Image {
	img := raster.New(rows, cols)
	if r >= 0 && r < rows && c >= 0 && c < cols {
		img.Set(r, c, 1)
	}
	return img
}

// Scene generates a smooth synthetic test scene in [0, 1]: a bright disc, a
// darker square and a low-frequency sinusoidal background.
func Scene(rows, cols int) *raster.Image {
	img := raster.New(rows, cols)
	cr, cc := float64(rows)*0.4, float64(cols)*0.6
	radius := float64(min(rows, cols)) * 0.2
	for r := range rows {
		for c := range cols {
			v := 0.3 + 0.1*math.Sin(2*math.Pi*float64(r)/float64(rows))*math.Cos(2*math.Pi*float64(c)/float64(cols))
			if math.Hypot(float64(r)-cr, float64(c)-cc) < radius {
				v = 0.9
			}
			if r > rows*2/3 && r < rows*5/6 && c > cols/8 && c < cols/3 {
				v = 0.1
			}
			img.Set(r, c, v)
		}
	}
	return img
}
