package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docingest"
)

// Ensure LoggingStore implements docingest.DocumentStore.
var _ docingest.DocumentStore = (*LoggingStore)(nil)

// LoggingStore wraps a DocumentStore with logging.
type LoggingStore struct {
	next   docingest.DocumentStore
	dest   string
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore. dest names the destination
// in log records.
func NewLoggingStore(next docingest.DocumentStore, dest string, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, dest: dest, logger: logger}
}

// SaveDocuments delegates to the wrapped store and logs the operation.
func (s *LoggingStore) SaveDocuments(ctx context.Context, docs []*docingest.Document) (err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelError
		}
		s.logger.Log(ctx, level, "save documents",
			"dest", s.dest,
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveDocuments(ctx, docs)
}
