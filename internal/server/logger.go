package server

import (
	"context"
	"log/slog"
	"os"
)

// Logger interface for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value any
}

// SlogLogger writes through a *slog.Logger.
type SlogLogger struct {
	logger *slog.Logger
	fields []Field
}

// NewSlogLogger wraps l. A nil l uses slog.Default().
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{logger: l}
}

// NewDefaultLogger logs text lines to stdout at info level.
func NewDefaultLogger() *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}

// With returns a logger that adds fields to every entry.
func (l *SlogLogger) With(fields ...Field) Logger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &SlogLogger{logger: l.logger, fields: merged}
}

func (l *SlogLogger) Debug(msg string, fields ...Field) {
	l.log(slog.LevelDebug, msg, fields)
}

func (l *SlogLogger) Info(msg string, fields ...Field) {
	l.log(slog.LevelInfo, msg, fields)
}

func (l *SlogLogger) Warn(msg string, fields ...Field) {
	l.log(slog.LevelWarn, msg, fields)
}

func (l *SlogLogger) Error(msg string, fields ...Field) {
	l.log(slog.LevelError, msg, fields)
}

func (l *SlogLogger) log(level slog.Level, msg string, fields []Field) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}

	attrs := make([]slog.Attr, 0, len(l.fields)+len(fields))
	for _, f := range l.fields {
		attrs = append(attrs, slog.Any(f.Key, sanitizeValue(f.Value)))
	}
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, sanitizeValue(f.Value)))
	}
	l.logger.LogAttrs(ctx, level, msg, attrs...)
}

// sanitizeValue truncates long strings such as raw request paths.
func sanitizeValue(v any) any {
	switch val := v.(type) {
	case string:
		if len(val) > 100 {
			return val[:100] + "...[truncated]"
		}
	case error:
		return val.Error()
	}
	return v
}

// withFields attaches fields when the logger supports it.
func withFields(l Logger, fields ...Field) Logger {
	if fl, ok := l.(interface{ With(...Field) Logger }); ok {
		return fl.With(fields...)
	}
	return l
}

// NullLogger discards all logs (for testing)
type NullLogger struct{}

func (NullLogger) Debug(msg string, fields ...Field) {}
func (NullLogger) Info(msg string, fields ...Field)  {}
func (NullLogger) Warn(msg string, fields ...Field)  {}
func (NullLogger) Error(msg string, fields ...Field) {}
