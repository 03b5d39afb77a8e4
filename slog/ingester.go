package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docingest"
)

// Ensure LoggingIngester implements docingest.Ingester.
var _ docingest.Ingester = (*LoggingIngester)(nil)

// LoggingIngester wraps an Ingester with logging of its outcome counts.
type LoggingIngester struct {
	next   docingest.Ingester
	logger *slog.Logger
}

// NewLoggingIngester creates a new LoggingIngester.
func NewLoggingIngester(next docingest.Ingester, logger *slog.Logger) *LoggingIngester {
	return &LoggingIngester{next: next, logger: logger}
}

// Name delegates to the wrapped ingester.
func (i *LoggingIngester) Name() string { return i.next.Name() }

// Ingest delegates to the wrapped ingester and logs the result.
// Every failed outcome is logged individually at warn level.
func (i *LoggingIngester) Ingest(ctx context.Context) (result *docingest.Result, err error) {
	defer func(begin time.Time) {
		if err != nil {
			i.logger.ErrorContext(ctx, "ingest",
				"name", i.next.Name(),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		for _, o := range result.Outcomes {
			if o.Kind == docingest.OutcomeFailed {
				i.logger.WarnContext(ctx, "ingest failure", "name", result.Name, "url", o.URL, "err", o.Err)
			}
		}
		i.logger.InfoContext(ctx, "ingest",
			"name", result.Name,
			"source", string(result.Source),
			"documents", len(result.Documents),
			"skipped", result.Count(docingest.OutcomeSkipped),
			"failed", result.Count(docingest.OutcomeFailed),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return i.next.Ingest(ctx)
}
