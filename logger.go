package sparsepack

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with sparsepack-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithKind adds an archive kind field to the logger.
func (l *Logger) WithKind(kind Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", string(kind)),
	}
}

// WithCodecs adds the configured codec names to the logger.
func (l *Logger) WithCodecs(index, value string) *Logger {
	return &Logger{
		Logger: l.Logger.With("index_codec", index, "value_codec", value),
	}
}

// LogCompress logs a compress operation.
func (l *Logger) LogCompress(elements int, nonzeros uint64, compressedBytes int, err error) {
	if err != nil {
		l.Error("compress failed",
			"elements", elements,
			"error", err,
		)
	} else {
		l.Debug("compress completed",
			"elements", elements,
			"nonzeros", nonzeros,
			"compressed_bytes", compressedBytes,
		)
	}
}

// LogDecompress logs a decompress operation.
func (l *Logger) LogDecompress(elements int, err error) {
	if err != nil {
		l.Error("decompress failed",
			"error", err,
		)
	} else {
		l.Debug("decompress completed",
			"elements", elements,
		)
	}
}
