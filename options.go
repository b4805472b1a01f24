package src2pdf

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	assetPath     string
	documentStyle string
}

// defaultTimeout bounds the browser page load when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the browser page-load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("src2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithLogger sets the logger used for per-file diagnostics.
// A nil logger keeps the default no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAssetPath sets a directory whose styles/ and templates/ override the
// embedded assets. Assets missing there fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithDocumentStyle selects the document stylesheet by name
// (e.g., "default", "compact").
func WithDocumentStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.documentStyle = name
	}
}
