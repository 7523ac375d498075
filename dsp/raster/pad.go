package raster

import "fmt"

// BorderMode selects how samples outside the image are synthesized.
type BorderMode int

const (
	// BorderReflect mirrors the image with the edge sample repeated:
	// fedcba|abcdef|fedcba.
	BorderReflect BorderMode = iota

	// BorderConstant fills the border with a constant value.
	BorderConstant
)

// Margins holds padding widths on each side.
type Margins struct {
	Top, Bottom, Left, Right int
}

// ReflectIndex maps an arbitrary index onto [0, n) using mirror continuation
// with the edge repeated. It is periodic with period 2n.
func ReflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}

// Pad returns m extended by the given margins. value is used only by
// BorderConstant.
func Pad(m *Image, margins Margins, mode BorderMode, value float64) (*Image, error) {
	if m.Empty() {
		return nil, ErrEmptyImage
	}
	if margins.Top < 0 || margins.Bottom < 0 || margins.Left < 0 || margins.Right < 0 {
		return nil, fmt.Errorf("%w: negative margins %+v", ErrInvalidRegion, margins)
	}

	rows := m.Rows + margins.Top + margins.Bottom
	cols := m.Cols + margins.Left + margins.Right
	out := New(rows, cols)

	switch mode {
	case BorderConstant:
		if value != 0 {
			for i := range out.Data {
				out.Data[i] = value
			}
		}
		for r := range m.Rows {
			dst := out.Row(r + margins.Top)
			copy(dst[margins.Left:margins.Left+m.Cols], m.Row(r))
		}
	case BorderReflect:
		colMap := make([]int, cols)
		for c := range colMap {
			colMap[c] = ReflectIndex(c-margins.Left, m.Cols)
		}
		for r := range rows {
			src := m.Row(ReflectIndex(r-margins.Top, m.Rows))
			dst := out.Row(r)
			for c, sc := range colMap {
				dst[c] = src[sc]
			}
		}
	default:
		return nil, fmt.Errorf("raster: unknown border mode %d", mode)
	}

	return out, nil
}
