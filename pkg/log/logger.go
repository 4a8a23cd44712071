package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	globalMu     sync.RWMutex
	globalLogger Logger = NewZerologLogger(os.Stderr, LevelInfo)
)

// SetupLogger configures the global logger to write JSON lines to w at the
// given level, installs the cockroachdb stack marshaler and routes library
// warnings through the logger.
func SetupLogger(level string, w io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.ErrorStackMarshaler = marshalStack

	zl := newZerolog(w, lvl)
	SetLogger(&zerologLogger{zl: zl})
	errors.SetZerologWarnFunc(warnSink(zl))
	return nil
}

// ParseLevel converts a level name such as "info" or "WARNING" to a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log_level", "unknown log level", level)
	}
}

// GetLogger returns the global logger.
func GetLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// GetLoggerWithName returns the global logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// SetLogger replaces the global logger.
func SetLogger(l Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// NewZerologLogger returns a Logger that writes JSON lines to w.
func NewZerologLogger(w io.Writer, level Level) Logger {
	return &zerologLogger{zl: newZerolog(w, level)}
}

func newZerolog(w io.Writer, level Level) zerolog.Logger {
	return zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
}

type zerologLogger struct {
	zl zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	emit(l.zl.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	emit(l.zl.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	emit(l.zl.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	e := l.zl.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			e = e.Stack().Err(err)
			fields = fields[1:]
		}
	}
	emit(e, msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	return &zerologLogger{zl: l.zl.With().Fields(normalize(fields)).Logger()}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= l.zl.GetLevel()
}

func emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	e.Fields(normalize(fields)).Msg(msg)
}

// normalize stringifies keys so callers may pass typed constants.
func normalize(fields []any) []any {
	out := make([]any, 0, len(fields))
	for i := 0; i+1 < len(fields); i += 2 {
		out = append(out, fmt.Sprintf("%v", fields[i]), fields[i+1])
	}
	return out
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// warnSink logs library warnings, expanding types that know how to marshal
// themselves into zerolog objects.
func warnSink(zl zerolog.Logger) func(error) {
	return func(w error) {
		e := zl.Warn()
		if obj, ok := w.(zerolog.LogObjectMarshaler); ok {
			e = e.Object("warning", obj)
		}
		e.Msg(w.Error())
	}
}
