package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

const LevelCritical = slog.Level(12)

// Logger is the process-wide logging surface. BusinessError is for expected
// domain failures (warn), InternalError for everything unexpected (error).
type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
	Critical(message string, args ...any)
	BusinessError(message string, err error, args ...any)
	InternalError(message string, err error, args ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	base *slog.Logger
}

// NewFromEnv builds a logger from LOG_LEVEL and LOG_FORMAT, defaulting to
// debug/text in development and info/json elsewhere.
func NewFromEnv() Logger {
	dev := strings.EqualFold(strings.TrimSpace(os.Getenv("ENV")), "development")
	return New(os.Stdout, parseLevel(os.Getenv("LOG_LEVEL"), dev), parseFormat(os.Getenv("LOG_FORMAT"), dev))
}

func New(output io.Writer, level slog.Level, format string) Logger {
	options := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: renameCritical,
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(output, options)
	} else {
		handler = slog.NewJSONHandler(output, options)
	}

	return &slogLogger{base: slog.New(handler)}
}

func (l *slogLogger) Debug(message string, args ...any) { l.base.Debug(message, args...) }
func (l *slogLogger) Info(message string, args ...any)  { l.base.Info(message, args...) }
func (l *slogLogger) Warn(message string, args ...any)  { l.base.Warn(message, args...) }
func (l *slogLogger) Error(message string, args ...any) { l.base.Error(message, args...) }

func (l *slogLogger) Critical(message string, args ...any) {
	l.base.Log(context.Background(), LevelCritical, message, args...)
}

func (l *slogLogger) BusinessError(message string, err error, args ...any) {
	if err == nil {
		return
	}
	l.base.Warn(message, append([]any{"err", err}, args...)...)
}

func (l *slogLogger) InternalError(message string, err error, args ...any) {
	if err == nil {
		return
	}
	l.base.Error(message, append([]any{"err", err}, args...)...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{base: l.base.With(args...)}
}

func parseLevel(value string, dev bool) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "critical", "fatal":
		return LevelCritical
	case "info":
		return slog.LevelInfo
	default:
		if dev {
			return slog.LevelDebug
		}
		return slog.LevelInfo
	}
}

func parseFormat(value string, dev bool) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "text":
		return "text"
	case "json":
		return "json"
	default:
		if dev {
			return "text"
		}
		return "json"
	}
}

func renameCritical(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.LevelKey {
		return attr
	}
	if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelCritical {
		attr.Value = slog.StringValue("CRITICAL")
	}
	return attr
}
