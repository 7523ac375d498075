package deconv

import (
	"github.com/cwbudde/algo-deblur/dsp/core"
	"github.com/cwbudde/algo-deblur/dsp/raster"
)

// Observer receives the working estimate after initialization (iteration 0)
// and after every update. The image is owned by the restorer and must not
// be modified or retained.
type Observer func(iteration int, estimate *raster.Image)

// Config holds restorer settings.
type Config struct {
	// Epsilon is the numeric floor for near-zero denominators.
	Epsilon float64

	// Initial is the Richardson-Lucy starting estimate. If nil, the degraded
	// image (negative samples clamped to zero, floored at Epsilon) is used.
	Initial *raster.Image

	// Observer, if set, is called on every Richardson-Lucy iterate.
	Observer Observer

	// Processor controls internal parallelism.
	Processor []core.ProcessorOption
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default restorer settings.
func DefaultConfig() Config {
	return Config{
		Epsilon: core.SqrtEpsilon,
	}
}

// WithEpsilon overrides the numeric floor. Non-positive values are ignored.
func WithEpsilon(eps float64) Option {
	return func(cfg *Config) {
		if eps > 0 {
			cfg.Epsilon = eps
		}
	}
}

// WithInitialEstimate sets the Richardson-Lucy starting point. It must match
// the degraded image size and be non-negative. The image is copied.
func WithInitialEstimate(img *raster.Image) Option {
	return func(cfg *Config) {
		cfg.Initial = img
	}
}

// WithObserver installs an iteration observer.
func WithObserver(fn Observer) Option {
	return func(cfg *Config) {
		cfg.Observer = fn
	}
}

// WithWorkers bounds the goroutines used for transforms and convolutions.
func WithWorkers(workers int) Option {
	return func(cfg *Config) {
		cfg.Processor = append(cfg.Processor, core.WithWorkers(workers))
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
