// Package slog provides logging decorators for figreact services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/figreact"
)

// Ensure decorators implement their interfaces at compile time.
var (
	_ figreact.Extractor = (*LoggingExtractor)(nil)
	_ figreact.Relabeler = (*LoggingRelabeler)(nil)
)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   figreact.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next figreact.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(source string, opts figreact.Options) (result *figreact.Result, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"bytes_in", len(source),
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs,
				"changed", result.Changed,
				"components", len(result.Components),
				"bytes_out", len(result.Code),
			)
			for _, d := range result.Diagnostics {
				e.logger.Warn("extract diagnostic",
					"code", d.Code,
					"component", d.Component,
					"message", d.Message,
				)
			}
		}
		if err != nil {
			attrs = append(attrs, "code", figreact.ErrorCode(err), "error", err)
			e.logger.Error("extract", attrs...)
			return
		}
		e.logger.Debug("extract", attrs...)
	}(time.Now())

	return e.next.Extract(source, opts)
}

// LoggingRelabeler wraps a Relabeler with debug logging.
type LoggingRelabeler struct {
	next   figreact.Relabeler
	logger *slog.Logger
}

// NewLoggingRelabeler creates a new LoggingRelabeler.
func NewLoggingRelabeler(next figreact.Relabeler, logger *slog.Logger) *LoggingRelabeler {
	return &LoggingRelabeler{next: next, logger: logger}
}

// Relabel delegates to the wrapped relabeler and logs timing.
func (r *LoggingRelabeler) Relabel(ctx context.Context, code, target string) (out string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			r.logger.Error("relabel",
				"target", target,
				"duration", time.Since(begin),
				"error", err,
			)
			return
		}
		r.logger.Debug("relabel",
			"target", target,
			"bytes_in", len(code),
			"bytes_out", len(out),
			"duration", time.Since(begin),
		)
	}(time.Now())

	return r.next.Relabel(ctx, code, target)
}
