package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	gnbErrors "github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger on top of zerolog.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger wraps an existing zerolog.Logger.
func NewZerologLogger(zl zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{zl: zl}
}

// Debug implements Logger.Debug.
func (l *ZerologLogger) Debug(msg string, fields ...any) {
	emit(l.zl.Debug(), msg, fields)
}

// Info implements Logger.Info.
func (l *ZerologLogger) Info(msg string, fields ...any) {
	emit(l.zl.Info(), msg, fields)
}

// Warn implements Logger.Warn.
func (l *ZerologLogger) Warn(msg string, fields ...any) {
	emit(l.zl.Warn(), msg, fields)
}

// Error implements Logger.Error. A leading error field becomes the record's
// "error" attribute.
func (l *ZerologLogger) Error(msg string, fields ...any) {
	ev := l.zl.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			ev = ev.Err(err)
			fields = fields[1:]
		}
	}
	emit(ev, msg, fields)
}

// With implements Logger.With.
func (l *ZerologLogger) With(fields ...any) Logger {
	return &ZerologLogger{zl: l.zl.With().Fields(fields).Logger()}
}

// Enabled implements Logger.Enabled.
func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	zlevel := toZerologLevel(level)
	return zlevel >= l.zl.GetLevel() && zlevel >= zerolog.GlobalLevel()
}

// Zerolog exposes the underlying logger.
func (l *ZerologLogger) Zerolog() zerolog.Logger {
	return l.zl
}

func emit(ev *zerolog.Event, msg string, fields []any) {
	if ev == nil {
		return
	}
	if len(fields) > 0 {
		ev = ev.Fields(fields)
	}
	ev.Msg(msg)
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

// ZerologProvider is the default LoggerProvider.
type ZerologProvider struct {
	mu      sync.RWMutex
	base    zerolog.Logger
	console bool
}

// NewZerologProvider creates a provider writing JSON lines to w, or a
// human-readable console format when console is true.
func NewZerologProvider(w io.Writer, level Level, console bool) *ZerologProvider {
	return &ZerologProvider{base: newBase(w, toZerologLevel(level), console), console: console}
}

func newBase(w io.Writer, level zerolog.Level, console bool) zerolog.Logger {
	if console {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(level)
}

// SetOutput redirects the provider to w, keeping its level and format.
func (p *ZerologProvider) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.base = newBase(w, p.base.GetLevel(), p.console)
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *ZerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &ZerologLogger{zl: p.base}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &ZerologLogger{zl: p.base.With().Str(ComponentKey, name).Logger()}
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *ZerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.base = p.base.Level(toZerologLevel(level))
}

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = NewZerologProvider(os.Stderr, LevelWarn, false)
)

func init() {
	gnbErrors.SetZerologWarnFunc(logWarning)
}

// SetProvider replaces the package-level provider. Tests install a
// TestLoggerProvider here to capture library output.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

// GetProvider returns the package-level provider.
func GetProvider() LoggerProvider {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider
}

// SetOutput redirects the package-level provider to w. Providers other than
// ZerologProvider are replaced by a JSON ZerologProvider at LevelWarn.
func SetOutput(w io.Writer) {
	if zp, ok := GetProvider().(*ZerologProvider); ok {
		zp.SetOutput(w)
		return
	}
	SetProvider(NewZerologProvider(w, LevelWarn, false))
}

// GetLogger returns the default logger of the package-level provider.
func GetLogger() Logger {
	return GetProvider().GetLogger()
}

// GetLoggerWithName returns a component-tagged logger of the package-level provider.
func GetLoggerWithName(name string) Logger {
	return GetProvider().GetLoggerWithName(name)
}

// SetLevel sets the minimum level of the package-level provider.
func SetLevel(level Level) {
	GetProvider().SetLevel(level)
}

// logWarning routes errors.Warn into the current provider. Warnings that
// implement zerolog.LogObjectMarshaler keep their structured fields.
func logWarning(w error) {
	logger := GetLoggerWithName("warnings")
	if zl, ok := logger.(*ZerologLogger); ok {
		ev := zl.zl.Warn()
		if ev == nil {
			return
		}
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(m)
		}
		ev.Msg(w.Error())
		return
	}
	logger.Warn(w.Error(), ErrorTypeKey, fmt.Sprintf("%T", w))
}
