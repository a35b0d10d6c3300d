package normpack

import (
	"github.com/hupe1980/normpack/normal"
	"github.com/hupe1980/normpack/stream"
)

type options struct {
	policy           normal.DecodePolicy
	compression      stream.Compression
	workers          int
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures a Codec.
type Option func(*options)

// WithDecodePolicy sets how words outside the unit disk are decoded.
// The default is normal.PolicyClamp.
func WithDecodePolicy(p normal.DecodePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithCompression sets the payload compression of encoded streams.
func WithCompression(c stream.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithWorkers limits the goroutines used by batch operations.
// Values <= 0 select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets the logger. If nil, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics sets the metrics collector. If nil, metrics are discarded.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = m
	}
}
