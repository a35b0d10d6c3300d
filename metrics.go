package normpack

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordPack is called after n normals were packed.
	RecordPack(n int)

	// RecordUnpack is called after n words were unpacked, clamped of which
	// lay outside the unit disk.
	RecordUnpack(n, clamped int)

	// RecordStream is called after each stream encode or decode.
	// bytes is the encoded size, err is nil if successful.
	RecordStream(bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPack(int)                         {}
func (NoopMetricsCollector) RecordUnpack(int, int)                  {}
func (NoopMetricsCollector) RecordStream(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	Packed           atomic.Int64
	Unpacked         atomic.Int64
	Clamped          atomic.Int64
	StreamCount      atomic.Int64
	StreamBytes      atomic.Int64
	StreamErrors     atomic.Int64
	StreamTotalNanos atomic.Int64
}

// RecordPack implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPack(n int) {
	b.Packed.Add(int64(n))
}

// RecordUnpack implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUnpack(n, clamped int) {
	b.Unpacked.Add(int64(n))
	b.Clamped.Add(int64(clamped))
}

// RecordStream implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStream(bytes int, duration time.Duration, err error) {
	b.StreamCount.Add(1)
	b.StreamTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.StreamErrors.Add(1)
		return
	}
	b.StreamBytes.Add(int64(bytes))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		Packed:       b.Packed.Load(),
		Unpacked:     b.Unpacked.Load(),
		Clamped:      b.Clamped.Load(),
		StreamCount:  b.StreamCount.Load(),
		StreamBytes:  b.StreamBytes.Load(),
		StreamErrors: b.StreamErrors.Load(),
	}
	if s.StreamCount > 0 {
		s.StreamAvgNanos = b.StreamTotalNanos.Load() / s.StreamCount
	}
	return s
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	Packed         int64
	Unpacked       int64
	Clamped        int64
	StreamCount    int64
	StreamBytes    int64
	StreamErrors   int64
	StreamAvgNanos int64
}
