package spectral

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-deblur/dsp/core"
	"github.com/cwbudde/algo-deblur/dsp/raster"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrEmptyInput is returned when transforming an empty image or spectrum.
var ErrEmptyInput = errors.New("spectral: empty input")

// lineTransform is a 1-D complex DFT of fixed length. inverse is normalized
// by 1/n. Implementations are not safe for concurrent use.
type lineTransform interface {
	forward(dst, src []complex128) error
	inverse(dst, src []complex128) error
}

// fftLine wraps an algo-fft plan (power-of-two lengths).
type fftLine struct {
	plan *algofft.Plan[complex128]
}

func (l fftLine) forward(dst, src []complex128) error { return l.plan.Forward(dst, src) }
func (l fftLine) inverse(dst, src []complex128) error { return l.plan.Inverse(dst, src) }

// gonumLine wraps a gonum mixed-radix transform (any length).
type gonumLine struct {
	fft   *fourier.CmplxFFT
	scale complex128
}

func (l gonumLine) forward(dst, src []complex128) error {
	l.fft.Coefficients(dst, src)
	return nil
}

func (l gonumLine) inverse(dst, src []complex128) error {
	l.fft.Sequence(dst, src)
	for i := range dst {
		dst[i] *= l.scale
	}
	return nil
}

// identityLine is the length-1 transform.
type identityLine struct{}

func (identityLine) forward(dst, src []complex128) error { copy(dst, src); return nil }
func (identityLine) inverse(dst, src []complex128) error { copy(dst, src); return nil }

func newLineTransform(n int) (lineTransform, error) {
	if n == 1 {
		return identityLine{}, nil
	}
	if n >= 2 && isPowerOf2(n) {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("spectral: failed to create FFT plan: %w", err)
		}
		return fftLine{plan: plan}, nil
	}
	return gonumLine{fft: fourier.NewCmplxFFT(n), scale: complex(1/float64(n), 0)}, nil
}

// Plan2D computes 2-D DFTs of a fixed size. It holds no per-call state and
// may be shared between goroutines; each pass creates its own line
// transforms per worker.
type Plan2D struct {
	rows, cols int
	workers    int
}

// NewPlan2D creates a plan for rows x cols transforms.
func NewPlan2D(rows, cols int, opts ...core.ProcessorOption) (*Plan2D, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyInput
	}
	cfg := core.ApplyProcessorOptions(opts...)
	return &Plan2D{rows: rows, cols: cols, workers: cfg.Workers}, nil
}

// Size returns the transform extent.
func (p *Plan2D) Size() raster.Size { return raster.Size{Rows: p.rows, Cols: p.cols} }

// Forward returns the unnormalized 2-D DFT of a real image.
func (p *Plan2D) Forward(img *raster.Image) (*Spectrum, error) {
	if img.Empty() {
		return nil, ErrEmptyInput
	}
	if img.Rows != p.rows || img.Cols != p.cols {
		return nil, fmt.Errorf("%w: image %v, plan %v", raster.ErrSizeMismatch, img.Size(), p.Size())
	}

	spec := NewSpectrum(p.rows, p.cols)
	for i, v := range img.Data {
		spec.Data[i] = complex(v, 0)
	}
	if err := p.transform(spec, false); err != nil {
		return nil, err
	}
	return spec, nil
}

// Inverse returns the real part of the normalized inverse 2-D DFT. spec is
// left unchanged.
func (p *Plan2D) Inverse(spec *Spectrum) (*raster.Image, error) {
	if err := p.check(spec); err != nil {
		return nil, err
	}

	work := spec.Clone()
	if err := p.transform(work, true); err != nil {
		return nil, err
	}

	img := raster.New(p.rows, p.cols)
	for i, c := range work.Data {
		img.Data[i] = real(c)
	}
	return img, nil
}

// InverseInPlace applies the normalized inverse transform to spec in place.
func (p *Plan2D) InverseInPlace(spec *Spectrum) error {
	if err := p.check(spec); err != nil {
		return err
	}
	return p.transform(spec, true)
}

func (p *Plan2D) check(spec *Spectrum) error {
	if spec == nil || spec.Rows <= 0 || spec.Cols <= 0 || len(spec.Data) != spec.Rows*spec.Cols {
		return ErrEmptyInput
	}
	if spec.Rows != p.rows || spec.Cols != p.cols {
		return fmt.Errorf("%w: spectrum %v, plan %v", raster.ErrSizeMismatch, spec.Size(), p.Size())
	}
	return nil
}

// transform runs the row pass then the column pass.
func (p *Plan2D) transform(spec *Spectrum, inverse bool) error {
	rows, cols := p.rows, p.cols

	err := core.ParallelRows(rows, p.workers, func(lo, hi int) error {
		line, err := newLineTransform(cols)
		if err != nil {
			return err
		}
		out := make([]complex128, cols)
		for r := lo; r < hi; r++ {
			row := spec.Row(r)
			if err := apply(line, out, row, inverse); err != nil {
				return fmt.Errorf("spectral: row %d: %w", r, err)
			}
			copy(row, out)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return core.ParallelRows(cols, p.workers, func(lo, hi int) error {
		line, err := newLineTransform(rows)
		if err != nil {
			return err
		}
		in := make([]complex128, rows)
		out := make([]complex128, rows)
		for c := lo; c < hi; c++ {
			for r := range rows {
				in[r] = spec.Data[r*cols+c]
			}
			if err := apply(line, out, in, inverse); err != nil {
				return fmt.Errorf("spectral: column %d: %w", c, err)
			}
			for r := range rows {
				spec.Data[r*cols+c] = out[r]
			}
		}
		return nil
	})
}

func apply(line lineTransform, dst, src []complex128, inverse bool) error {
	if inverse {
		return line.inverse(dst, src)
	}
	return line.forward(dst, src)
}

// Forward is a convenience wrapper that plans and runs a single forward
// transform.
func Forward(img *raster.Image, opts ...core.ProcessorOption) (*Spectrum, error) {
	if img.Empty() {
		return nil, ErrEmptyInput
	}
	plan, err := NewPlan2D(img.Rows, img.Cols, opts...)
	if err != nil {
		return nil, err
	}
	return plan.Forward(img)
}

// Inverse is a convenience wrapper that plans and runs a single inverse
// transform, returning the real part.
func Inverse(spec *Spectrum, opts ...core.ProcessorOption) (*raster.Image, error) {
	if spec == nil {
		return nil, ErrEmptyInput
	}
	plan, err := NewPlan2D(spec.Rows, spec.Cols, opts...)
	if err != nil {
		return nil, err
	}
	return plan.Inverse(spec)
}

// isPowerOf2 returns true if n is a power of 2.
func isPowerOf2(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
