// Package slog provides logging decorators for bisque services using
// log/slog.
package slog

import (
	"log/slog"
	"time"

	"github.com/lmmx/bisque"
)

// Ensure LoggingExtractor implements bisque.Extractor.
var _ bisque.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with timing and outcome logging.
type LoggingExtractor struct {
	next   bisque.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next bisque.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(schema *bisque.Record, root *bisque.Node) (res *bisque.Result, err error) {
	defer func(begin time.Time) {
		failures := 0
		if res != nil {
			failures = len(res.Errs)
		}
		e.logger.Info("record extraction",
			"schema", schema.Name,
			"fields", len(schema.Fields),
			"failures", failures,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(schema, root)
}
