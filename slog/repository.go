package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docingest"
)

// Ensure LoggingRepositoryService implements docingest.RepositoryService.
var _ docingest.RepositoryService = (*LoggingRepositoryService)(nil)

// LoggingRepositoryService wraps a RepositoryService with debug logging.
type LoggingRepositoryService struct {
	next   docingest.RepositoryService
	logger *slog.Logger
}

// NewLoggingRepositoryService creates a new LoggingRepositoryService.
func NewLoggingRepositoryService(next docingest.RepositoryService, logger *slog.Logger) *LoggingRepositoryService {
	return &LoggingRepositoryService{next: next, logger: logger}
}

func (s *LoggingRepositoryService) Owner() string { return s.next.Owner() }

func (s *LoggingRepositoryService) Repo() string { return s.next.Repo() }

// Readme delegates to the wrapped service and logs the operation.
func (s *LoggingRepositoryService) Readme(ctx context.Context) (entry *docingest.RepositoryEntry, err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "readme",
			"repo", s.next.Owner()+"/"+s.next.Repo(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Readme(ctx)
}

// ListDirectory delegates to the wrapped service and logs the operation.
func (s *LoggingRepositoryService) ListDirectory(ctx context.Context, path string) (entries []*docingest.RepositoryEntry, err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "list directory",
			"repo", s.next.Owner()+"/"+s.next.Repo(),
			"path", path,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListDirectory(ctx, path)
}

// Download delegates to the wrapped service and logs the operation.
func (s *LoggingRepositoryService) Download(ctx context.Context, url string) (content string, err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "download",
			"url", url,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Download(ctx, url)
}
