package wakachi

import (
	"log/slog"
	"runtime"

	"github.com/happyhackingspace/wakachi/segmenter"
)

// Option configures a Segmenter.
type Option func(*config)

type config struct {
	normalize bool
	patterns  []segmenter.Pattern
	poolSize  int
	logger    *slog.Logger
}

func defaultConfig() config {
	return config{
		poolSize: runtime.NumCPU(),
		logger:   slog.Default(),
	}
}

// WithNormalization enables NFKC width folding and whitespace collapsing
// of input text before segmentation (default: off). A model should be used
// with the same setting it was trained with.
func WithNormalization(enabled bool) Option {
	return func(c *config) {
		c.normalize = enabled
	}
}

// WithCharTypes sets the character type patterns (default:
// segmenter.DefaultPatterns).
func WithCharTypes(patterns ...segmenter.Pattern) Option {
	return func(c *config) {
		if len(patterns) > 0 {
			c.patterns = patterns
		}
	}
}

// WithPoolSize sets how many lines SegmentLines works on at once
// (default: runtime.NumCPU()).
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
