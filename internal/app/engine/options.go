package engine

import (
	"github.com/hoanghiep2625/cex-be/internal/config"
	"github.com/hoanghiep2625/cex-be/pkg/retry"
)

// Options represents configuration options for the Engine.
type Options struct {
	QueueSize int
	Retry     retry.Config
	// DepthLevels bounds the depth carried by book.depth events.
	DepthLevels int
	// Symbols restricts the engine to these symbols. Empty means every TRADING symbol.
	Symbols []string
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		QueueSize:   1024,
		Retry:       retry.DefaultConfig(),
		DepthLevels: 50,
	}
}

// OptionsFromConfig builds engine options from the service configuration.
func OptionsFromConfig(cfg config.EngineConfig) *Options {
	return &Options{
		QueueSize:   cfg.QueueSize,
		Retry:       cfg.Retry,
		DepthLevels: cfg.DepthMirrorLevels,
		Symbols:     cfg.Symbols,
	}
}
