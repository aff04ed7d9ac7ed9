package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// SetupLogger configures both backends from one level string: the slog
// default (JSON or text, wrapped by ErrFmtHandler so cockroachdb stacks are
// emitted) and the zerolog provider used by the library packages.
func SetupLogger(level, format string, w io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	ops := slog.HandlerOptions{
		AddSource: lvl == LevelDebug,
		Level:     slog.Level(lvl),
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{Key: "severity", Value: attr.Value}
			case slog.MessageKey:
				attr = slog.Attr{Key: "message", Value: attr.Value}
			}
			return attr
		},
	}

	var handler slog.Handler
	switch format {
	case "", "json":
		handler = slog.NewJSONHandler(w, &ops)
	case "console", "text":
		handler = slog.NewTextHandler(w, &ops)
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))

	SetProvider(NewZerologProvider(w, lvl, format == "console"))
	return nil
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
