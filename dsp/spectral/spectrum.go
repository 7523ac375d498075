package spectral

import (
	"fmt"

	"github.com/cwbudde/algo-deblur/dsp/raster"
	"github.com/cwbudde/algo-vecmath"
)

// Spectrum is a dense 2-D array of complex frequency coefficients in
// row-major order. Bin (0,0) holds the DC component.
type Spectrum struct {
	Rows int
	Cols int
	Data []complex128
}

// NewSpectrum allocates a zero spectrum.
func NewSpectrum(rows, cols int) *Spectrum {
	return &Spectrum{Rows: rows, Cols: cols, Data: make([]complex128, rows*cols)}
}

// Size returns the spectrum extent.
func (s *Spectrum) Size() raster.Size { return raster.Size{Rows: s.Rows, Cols: s.Cols} }

// Row returns row u as a sub-slice of the backing data.
func (s *Spectrum) Row(u int) []complex128 { return s.Data[u*s.Cols : (u+1)*s.Cols] }

// Clone returns a deep copy.
func (s *Spectrum) Clone() *Spectrum {
	out := &Spectrum{Rows: s.Rows, Cols: s.Cols, Data: make([]complex128, len(s.Data))}
	copy(out.Data, s.Data)
	return out
}

// MulInPlace multiplies s element-wise by other.
func (s *Spectrum) MulInPlace(other *Spectrum) error {
	if s.Rows != other.Rows || s.Cols != other.Cols {
		return fmt.Errorf("%w: %v vs %v", raster.ErrSizeMismatch, s.Size(), other.Size())
	}
	for i, v := range other.Data {
		s.Data[i] *= v
	}
	return nil
}

// Power returns |X[u,v]|^2 for every bin, row-major.
func (s *Spectrum) Power() []float64 {
	n := len(s.Data)
	out := make([]float64, n)
	re := make([]float64, n)
	im := make([]float64, n)
	for i, c := range s.Data {
		re[i] = real(c)
		im[i] = imag(c)
	}
	vecmath.Power(out, re, im)
	return out
}
