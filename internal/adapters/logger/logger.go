// Package logger implements the logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/mrmachine/reqs/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
}

// New creates a Logger writing human-readable output to stderr.
func New() *Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a Logger writing to the given writer.
func NewWithWriter(w io.Writer) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &Logger{logger: slog.New(handler)}
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error, flattening zerr metadata into attributes.
func (l *Logger) Error(err error) {
	args := []any{"error", err}

	var zErr *zerr.Error
	if errors.As(err, &zErr) {
		for k, v := range zErr.Metadata() {
			args = append(args, k, v)
		}
	}

	l.logger.Error("operation failed", args...)
}
