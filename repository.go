package docingest

import "context"

// Repository entry types.
const (
	EntryFile = "file"
	EntryDir  = "dir"
)

// RepositoryEntry is one item of a repository directory listing.
type RepositoryEntry struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	DownloadURL string `json:"download_url"`
	HTMLURL     string `json:"html_url"`
}

// RepositoryService reads documentation from a hosted source repository.
type RepositoryService interface {
	// Owner and Repo identify the repository.
	Owner() string
	Repo() string

	// Readme resolves the repository readme metadata.
	Readme(ctx context.Context) (*RepositoryEntry, error)

	// ListDirectory lists the entries at path.
	// Returns ENOTFOUND if the path does not exist.
	ListDirectory(ctx context.Context, path string) ([]*RepositoryEntry, error)

	// Download returns the raw content behind a download URL.
	Download(ctx context.Context, url string) (string, error)
}
