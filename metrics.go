package sparsepack

import (
	"sync/atomic"
	"time"
)

// Kind names the archive kind an operation worked on.
type Kind string

const (
	// KindVector is a dense vector archive.
	KindVector Kind = "vector"
	// KindMatrix is a dense matrix archive.
	KindMatrix Kind = "matrix"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    compressCounter   prometheus.Counter
//	    ratioHistogram    prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordCompress(kind sparsepack.Kind, d time.Duration, raw, compressed int, err error) {
//	    p.compressCounter.Inc()
//	    // ... record ratio, duration, etc.
//	}
type MetricsCollector interface {
	// RecordCompress is called after each compress operation.
	// rawBytes is the dense float32 size of the input, compressedBytes the
	// combined size of both streams, err is nil if successful.
	RecordCompress(kind Kind, duration time.Duration, rawBytes, compressedBytes int, err error)

	// RecordDecompress is called after each decompress operation.
	RecordDecompress(kind Kind, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCompress(Kind, time.Duration, int, int, error) {}
func (NoopMetricsCollector) RecordDecompress(Kind, time.Duration, error)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CompressCount        atomic.Int64
	CompressErrors       atomic.Int64
	CompressTotalNanos   atomic.Int64
	RawBytes             atomic.Int64
	CompressedBytes      atomic.Int64
	DecompressCount      atomic.Int64
	DecompressErrors     atomic.Int64
	DecompressTotalNanos atomic.Int64
}

// RecordCompress implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCompress(_ Kind, duration time.Duration, rawBytes, compressedBytes int, err error) {
	b.CompressCount.Add(1)
	b.CompressTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CompressErrors.Add(1)
		return
	}
	b.RawBytes.Add(int64(rawBytes))
	b.CompressedBytes.Add(int64(compressedBytes))
}

// RecordDecompress implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecompress(_ Kind, duration time.Duration, err error) {
	b.DecompressCount.Add(1)
	b.DecompressTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DecompressErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CompressCount:      b.CompressCount.Load(),
		CompressErrors:     b.CompressErrors.Load(),
		CompressAvgNanos:   avg(b.CompressTotalNanos.Load(), b.CompressCount.Load()),
		RawBytes:           b.RawBytes.Load(),
		CompressedBytes:    b.CompressedBytes.Load(),
		DecompressCount:    b.DecompressCount.Load(),
		DecompressErrors:   b.DecompressErrors.Load(),
		DecompressAvgNanos: avg(b.DecompressTotalNanos.Load(), b.DecompressCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CompressCount      int64
	CompressErrors     int64
	CompressAvgNanos   int64
	RawBytes           int64
	CompressedBytes    int64
	DecompressCount    int64
	DecompressErrors   int64
	DecompressAvgNanos int64
}

// Ratio returns raw bytes over compressed bytes for successful compress
// calls, or 0 if nothing was compressed.
func (s BasicMetricsStats) Ratio() float64 {
	if s.CompressedBytes == 0 {
		return 0
	}
	return float64(s.RawBytes) / float64(s.CompressedBytes)
}
