// Package log provides a structured logging interface for gaussnb.
//
// The Logger interface is slog-compatible and carries ML-specific attribute
// keys (operation, data shape, metrics). The default backend is zerolog,
// configured through the package-level provider:
//
//	logger := log.GetLoggerWithName("naive_bayes.gaussian").With(
//	    log.ModelNameKey, "GaussianNB",
//	)
//	logger.Info("Model fitted",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 800,
//	    log.FeaturesKey, 10,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key/value pairs. The returned logger from With
// carries its fields into every subsequent record.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs potentially problematic situations that do not stop execution.
	Warn(msg string, fields ...any)

	// Error logs an error condition. If the first field is an error value it
	// is attached as the record's error.
	//
	//	logger.Error("Model training failed",
	//	    err,
	//	    log.OperationKey, log.OperationFit,
	//	)
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	// Use it to skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates and configures loggers. The package-level
// functions delegate to the provider installed with SetProvider.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
