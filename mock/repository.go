package mock

import (
	"context"

	"github.com/fwojciec/docingest"
)

var _ docingest.RepositoryService = (*RepositoryService)(nil)

// RepositoryService is a mock implementation of docingest.RepositoryService.
type RepositoryService struct {
	OwnerFn         func() string
	RepoFn          func() string
	ReadmeFn        func(ctx context.Context) (*docingest.RepositoryEntry, error)
	ListDirectoryFn func(ctx context.Context, path string) ([]*docingest.RepositoryEntry, error)
	DownloadFn      func(ctx context.Context, url string) (string, error)
}

func (s *RepositoryService) Owner() string {
	return s.OwnerFn()
}

func (s *RepositoryService) Repo() string {
	return s.RepoFn()
}

func (s *RepositoryService) Readme(ctx context.Context) (*docingest.RepositoryEntry, error) {
	return s.ReadmeFn(ctx)
}

func (s *RepositoryService) ListDirectory(ctx context.Context, path string) ([]*docingest.RepositoryEntry, error) {
	return s.ListDirectoryFn(ctx, path)
}

func (s *RepositoryService) Download(ctx context.Context, url string) (string, error) {
	return s.DownloadFn(ctx, url)
}
