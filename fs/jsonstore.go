// Package fs provides file-based persistence for ingested documents.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/docingest"
)

// Ensure JSONStore implements docingest.DocumentStore at compile time.
var _ docingest.DocumentStore = (*JSONStore)(nil)

// JSONStore writes the whole collection as one JSON array file.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSONStore writing to path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the destination file.
func (s *JSONStore) Path() string { return s.path }

// SaveDocuments replaces the file at the store's path with docs, indented
// by two spaces with HTML and non-ASCII characters written literally.
// The array is written to a temporary file next to the destination and
// renamed over it, so readers never observe a partial artifact.
func (s *JSONStore) SaveDocuments(ctx context.Context, docs []*docingest.Document) error {
	if err := validateAll(docs); err != nil {
		return err
	}
	if docs == nil {
		docs = []*docingest.Document{}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	// CreateTemp creates the file 0600; the artifact is world-readable.
	if err := f.Chmod(0644); err != nil {
		_ = f.Close()
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(docs); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode documents: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// ReadDocuments parses a JSON artifact written by a JSONStore.
func ReadDocuments(path string) ([]*docingest.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, docingest.Errorf(docingest.ENOTFOUND, "%s does not exist", path)
		}
		return nil, err
	}
	var docs []*docingest.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, docingest.Errorf(docingest.EINVALID, "decode %s: %v", path, err)
	}
	return docs, nil
}

func validateAll(docs []*docingest.Document) error {
	for i, d := range docs {
		if d == nil {
			return docingest.Errorf(docingest.EINVALID, "document %d is nil", i)
		}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
	}
	return nil
}
