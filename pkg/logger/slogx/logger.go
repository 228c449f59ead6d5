package slogx

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Logger is a context-first wrapper around slog.Logger. All methods take
// slog.Attr only, so call sites cannot pass unpaired key/values.
type Logger struct {
	l *slog.Logger
}

func New(h slog.Handler) *Logger {
	return &Logger{l: slog.New(h)}
}

func (l *Logger) Handler() slog.Handler {
	return l.l.Handler()
}

// Slog exposes the underlying logger for libraries that accept *slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.l
}

func (l *Logger) With(attrs ...slog.Attr) *Logger {
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}

	return &Logger{l: l.l.With(args...)}
}

func (l *Logger) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.Log(ctx, slog.LevelInfo, msg, attrs...)
}

func (l *Logger) Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.Log(ctx, slog.LevelDebug, msg, attrs...)
}

func (l *Logger) Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.Log(ctx, slog.LevelWarn, msg, attrs...)
}

func (l *Logger) Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.Log(ctx, slog.LevelError, msg, attrs...)
}

func (l *Logger) Log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	l.l.LogAttrs(ctx, level, msg, attrs...)
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
