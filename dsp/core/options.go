package core

import "runtime"

// ProcessorConfig defines execution settings shared by the 2-D routines.
type ProcessorConfig struct {
	// Workers bounds the number of goroutines used for row-parallel loops.
	// Results do not depend on it.
	Workers int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns one worker per available CPU.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		Workers: runtime.GOMAXPROCS(0),
	}
}

// WithWorkers sets the worker count. Non-positive values are ignored.
func WithWorkers(workers int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if workers > 0 {
			cfg.Workers = workers
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
