package raster

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Errors returned by raster functions.
var (
	ErrEmptyImage    = errors.New("raster: empty image")
	ErrSizeMismatch  = errors.New("raster: size mismatch")
	ErrInvalidRegion = errors.New("raster: invalid region")
)

// Size is a 2-D extent in samples.
type Size struct {
	Rows int
	Cols int
}

// Empty reports whether the extent holds no samples.
func (s Size) Empty() bool { return s.Rows <= 0 || s.Cols <= 0 }

// Contains reports whether other fits inside s in both dimensions.
func (s Size) Contains(other Size) bool {
	return other.Rows <= s.Rows && other.Cols <= s.Cols
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Rows, s.Cols) }

// Image is a dense single-channel image of real samples in row-major order.
type Image struct {
	Rows int
	Cols int
	Data []float64
}

// New allocates a zero-filled image.
func New(rows, cols int) *Image {
	return &Image{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// FromSlice wraps data as a rows x cols image without copying.
func FromSlice(rows, cols int, data []float64) (*Image, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyImage
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d samples for %dx%d", ErrSizeMismatch, len(data), rows, cols)
	}
	return &Image{Rows: rows, Cols: cols, Data: data}, nil
}

// FromRows copies a slice of equally long rows into a new image.
func FromRows(rows [][]float64) (*Image, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyImage
	}
	img := New(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != img.Cols {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d", ErrSizeMismatch, r, len(row), img.Cols)
		}
		copy(img.Row(r), row)
	}
	return img, nil
}

// Filled returns a rows x cols image with every sample set to value.
func Filled(rows, cols int, value float64) *Image {
	img := New(rows, cols)
	for i := range img.Data {
		img.Data[i] = value
	}
	return img
}

// Size returns the image extent.
func (m *Image) Size() Size { return Size{Rows: m.Rows, Cols: m.Cols} }

// Empty reports whether the image is nil or holds no samples.
func (m *Image) Empty() bool {
	return m == nil || m.Rows <= 0 || m.Cols <= 0 || len(m.Data) < m.Rows*m.Cols
}

// At returns the sample at (r, c).
func (m *Image) At(r, c int) float64 { return m.Data[r*m.Cols+c] }

// Set stores v at (r, c).
func (m *Image) Set(r, c int, v float64) { m.Data[r*m.Cols+c] = v }

// Row returns row r as a sub-slice of the backing data.
func (m *Image) Row(r int) []float64 { return m.Data[r*m.Cols : (r+1)*m.Cols] }

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	out := &Image{Rows: m.Rows, Cols: m.Cols, Data: make([]float64, len(m.Data))}
	copy(out.Data, m.Data)
	return out
}

// SameSize reports whether m and other have identical dimensions.
func (m *Image) SameSize(other *Image) bool {
	return m.Rows == other.Rows && m.Cols == other.Cols
}

// Sum returns the sum of all samples.
func (m *Image) Sum() float64 { return floats.Sum(m.Data) }

// Min returns the smallest sample.
func (m *Image) Min() float64 { return floats.Min(m.Data) }

// Max returns the largest sample.
func (m *Image) Max() float64 { return floats.Max(m.Data) }

// Flip returns the image rotated by 180 degrees (mirrored in both axes).
func Flip(m *Image) *Image {
	out := New(m.Rows, m.Cols)
	n := len(m.Data)
	for i, v := range m.Data {
		out.Data[n-1-i] = v
	}
	return out
}

// Normalize linearly rescales m into [0, 1] in place (min-max normalization).
// A constant image becomes all zeros.
func Normalize(m *Image) {
	lo, hi := m.Min(), m.Max()
	span := hi - lo
	if span == 0 {
		for i := range m.Data {
			m.Data[i] = 0
		}
		return
	}
	floats.AddConst(-lo, m.Data)
	floats.Scale(1/span, m.Data)
}

// Crop copies the size region whose top-left corner is (top, left).
func Crop(m *Image, top, left int, size Size) (*Image, error) {
	if m.Empty() {
		return nil, ErrEmptyImage
	}
	if size.Empty() || top < 0 || left < 0 || top+size.Rows > m.Rows || left+size.Cols > m.Cols {
		return nil, fmt.Errorf("%w: %v at (%d,%d) in %v", ErrInvalidRegion, size, top, left, m.Size())
	}

	out := New(size.Rows, size.Cols)
	for r := range size.Rows {
		src := m.Data[(top+r)*m.Cols+left:]
		copy(out.Row(r), src[:size.Cols])
	}
	return out, nil
}
