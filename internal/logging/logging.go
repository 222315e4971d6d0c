// Package logging provides structured logging using Go's slog package.
//
// Logs go to stderr so that formatted chord sheets can be written to
// stdout.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// SourceKey is the context key for the chord sheet being processed.
	SourceKey ContextKey = "source"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger *slog.Logger
)

func init() {
	InitLogger(LevelWarn, FormatText)
}

// Level represents a log level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// Format represents a log output format.
type Format int

const (
	// FormatJSON outputs logs in JSON format.
	FormatJSON Format = iota
	// FormatText outputs logs in human-readable text format.
	FormatText
)

// ParseLevel parses "debug", "info", "warn" or "error".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// ParseFormat parses "json" or "text".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	}
	return FormatText, fmt.Errorf("unknown log format %q", s)
}

// InitLogger initializes the global logger with the specified level and
// format, writing to stderr.
func InitLogger(level Level, format Format) {
	InitLoggerTo(os.Stderr, level, format)
}

// InitLoggerTo is like InitLogger but writes to w.
func InitLoggerTo(w io.Writer, level Level, format Format) {
	var slogLevel slog.Level
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelWarn:
		slogLevel = slog.LevelWarn
	case LevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// WithSource records the chord sheet being processed in the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, SourceKey, source)
}

// getSource retrieves the chord sheet source from the context.
func getSource(ctx context.Context) string {
	if source, ok := ctx.Value(SourceKey).(string); ok {
		return source
	}
	return ""
}

// loggerFromContext returns a logger with context values attached.
func loggerFromContext(ctx context.Context) *slog.Logger {
	logger := defaultLogger
	if source := getSource(ctx); source != "" {
		logger = logger.With("source", source)
	}
	return logger
}

// DebugContext logs a debug message with context.
func DebugContext(ctx context.Context, msg string, args ...any) {
	loggerFromContext(ctx).Debug(msg, args...)
}

// InfoContext logs an info message with context.
func InfoContext(ctx context.Context, msg string, args ...any) {
	loggerFromContext(ctx).Info(msg, args...)
}

// WarnContext logs a warning message with context.
func WarnContext(ctx context.Context, msg string, args ...any) {
	loggerFromContext(ctx).Warn(msg, args...)
}

// ErrorContext logs an error message with context.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	loggerFromContext(ctx).Error(msg, args...)
}

// ParseWarning logs a structural problem found while reading a chord
// sheet. Zero line and column are left out.
func ParseWarning(ctx context.Context, line, column int, message string, args ...any) {
	allArgs := []any{"message", message}
	if line > 0 {
		allArgs = append(allArgs, "line", line, "column", column)
	}
	allArgs = append(allArgs, args...)
	loggerFromContext(ctx).Warn("parse_warning", allArgs...)
}

// SongParsed logs a parsed chord sheet.
func SongParsed(ctx context.Context, format string, lines, warnings int, args ...any) {
	allArgs := []any{
		"format", format,
		"lines", lines,
		"warnings", warnings,
	}
	allArgs = append(allArgs, args...)
	loggerFromContext(ctx).Info("song_parsed", allArgs...)
}

// SongTransformed logs a transformation applied to a song.
func SongTransformed(ctx context.Context, operation string, args ...any) {
	allArgs := []any{"operation", operation}
	allArgs = append(allArgs, args...)
	loggerFromContext(ctx).Info("song_transformed", allArgs...)
}

// OutputWritten logs rendered or encoded output.
func OutputWritten(ctx context.Context, format, destination string, size int, args ...any) {
	allArgs := []any{
		"format", format,
		"destination", destination,
		"bytes", size,
	}
	allArgs = append(allArgs, args...)
	loggerFromContext(ctx).Debug("output_written", allArgs...)
}

// SecurityEvent logs security-related events.
func SecurityEvent(event, component string, args ...any) {
	allArgs := []any{
		"event", event,
		"component", component,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Warn("security_event", allArgs...)
}
