package logging

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Logger is the logging interface used across the SDK
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, fields map[string]interface{})

	// WithField returns a logger with the field attached to every entry
	WithField(key string, value interface{}) Logger
}

type zerologLogger struct {
	logger zerolog.Logger
}

// New creates a logger writing JSON to stderr. The level is taken from the
// LOG_LEVEL environment variable (debug, info, warn, error); default info.
func New() Logger {
	return &zerologLogger{
		logger: zerolog.New(os.Stderr).Level(levelFromEnv()).With().Timestamp().Logger(),
	}
}

// NewConsoleLogger creates a logger with human-readable console output,
// intended for the exercises.
func NewConsoleLogger() Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return &zerologLogger{
		logger: zerolog.New(writer).Level(levelFromEnv()).With().Timestamp().Logger(),
	}
}

func levelFromEnv() zerolog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *zerologLogger) log(ctx context.Context, event *zerolog.Event, msg string, fields map[string]interface{}) {
	if span := trace.SpanContextFromContext(ctx); span.IsValid() {
		event = event.Str("trace_id", span.TraceID().String()).Str("span_id", span.SpanID().String())
	}
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

func (l *zerologLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	l.log(ctx, l.logger.Debug(), msg, fields)
}

func (l *zerologLogger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	l.log(ctx, l.logger.Info(), msg, fields)
}

func (l *zerologLogger) Warn(ctx context.Context, msg string, fields map[string]interface{}) {
	l.log(ctx, l.logger.Warn(), msg, fields)
}

func (l *zerologLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	l.log(ctx, l.logger.Error(), msg, fields)
}

func (l *zerologLogger) WithField(key string, value interface{}) Logger {
	return &zerologLogger{logger: l.logger.With().Interface(key, value).Logger()}
}

type noOpLogger struct{}

// NewNoOpLogger creates a logger that discards all entries
func NewNoOpLogger() Logger {
	return &noOpLogger{}
}

func (l *noOpLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {}
func (l *noOpLogger) Info(ctx context.Context, msg string, fields map[string]interface{})  {}
func (l *noOpLogger) Warn(ctx context.Context, msg string, fields map[string]interface{})  {}
func (l *noOpLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {}
func (l *noOpLogger) WithField(key string, value interface{}) Logger                       { return l }
