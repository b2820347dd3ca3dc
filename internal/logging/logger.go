// Package logging builds the zap loggers used by wareki.
// Each subsystem logs through a named child logger (its Category).
package logging

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"wareki/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config loading
	CategoryCLI    Category = "cli"    // One-shot commands
	CategoryUI     Category = "ui"     // Interactive search list
	CategoryServer Category = "server" // HTTP API
)

// New builds a logger from cfg. verbose forces debug level.
// Output goes to stderr, or to cfg.File when set.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if cfg.File != "" {
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewFileOnly is like New but returns a no-op logger when no file is
// configured. The interactive UI owns the terminal and must not log to it.
func NewFileOnly(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}
	return New(cfg, verbose)
}

// For returns the child logger of a category.
func For(logger *zap.Logger, category Category) *zap.Logger {
	return logger.Named(string(category))
}

type ctxKey string

const requestIDKey ctxKey = "requestID"

// GenerateRequestID creates a new UUID for tracing requests.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a new context containing the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from the context, if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// FromContext returns logger with the request_id field when ctx carries one.
func FromContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if id, ok := RequestIDFromContext(ctx); ok {
		return logger.With(zap.String("request_id", id))
	}
	return logger
}
