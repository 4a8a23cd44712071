// Package log provides the structured logging interface used by id3tree.
//
// The interface is slog-compatible so callers can plug in their own backend;
// the default implementation writes JSON lines through zerolog. Training and
// inference code log with the attribute keys defined in attributes.go.
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.ModelNameKey, "DecisionTreeClassifier",
//	    log.TargetKey, "Name",
//	)
//	logger.Info("Training started",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 12,
//	    log.FeaturesKey, 2,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with log/slog.
//
// Fields are passed as alternating key/value pairs. With returns a child
// logger that includes the given fields in every record.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs conditions that do not stop execution, such as an unseen
	// feature value resolved by fallback.
	Warn(msg string, fields ...any)

	// Error logs a failure. If the first field is an error it is attached
	// as the record's error together with its stack trace.
	//
	// Example:
	//   logger.Error("Failed to load tree", err, "path", path)
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether records at level would be emitted.
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

// LoggerProvider creates loggers. It lets tests swap the backend.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum level for loggers created by this provider.
	SetLevel(level Level)
}
