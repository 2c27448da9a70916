package sparsepack

import (
	"log/slog"

	"github.com/hupe1980/sparsepack/codec"
	"github.com/hupe1980/sparsepack/codec/fpz"
	"github.com/hupe1980/sparsepack/codec/streamvbyte"
	"github.com/hupe1980/sparsepack/resource"
)

type options struct {
	indexCodec         codec.IndexCodec
	valueCodec         codec.ValueCodec
	metricsCollector   MetricsCollector
	logger             *Logger
	resourceController *resource.Controller
}

// Option configures a Compressor.
type Option func(*options)

// WithIndexCodec configures the codec for the sparse index stream.
//
// If nil is passed, the stream-vbyte delta codec is used.
func WithIndexCodec(c codec.IndexCodec) Option {
	return func(o *options) {
		if c == nil {
			c = streamvbyte.New()
		}
		o.indexCodec = c
	}
}

// WithValueCodec configures the codec for the nonzero value stream.
//
// If nil is passed, the fpz codec is used.
func WithValueCodec(c codec.ValueCodec) Option {
	return func(o *options) {
		if c == nil {
			c = fpz.New()
		}
		o.valueCodec = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &sparsepack.BasicMetricsCollector{}
//	c := sparsepack.New(sparsepack.WithMetricsCollector(metrics))
//	// ... use c ...
//	stats := metrics.GetStats()
//	fmt.Printf("Compressed: %d, ratio: %.2f\n", stats.CompressCount, stats.Ratio())
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := sparsepack.NewJSONLogger(slog.LevelDebug)
//	c := sparsepack.New(sparsepack.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController bounds the scratch memory held by concurrent calls.
// A call whose working set does not fit fails with ErrResourceExhausted.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resourceController = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		indexCodec:       streamvbyte.New(),
		valueCodec:       fpz.New(),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
