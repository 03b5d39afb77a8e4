package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docingest"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docingest.DocumentStore = (*DocumentStore)(nil)

// Run describes one saved collection.
type Run struct {
	ID            string
	DocumentCount int
	CreatedAt     time.Time
}

// DocumentFilter narrows ListDocuments.
type DocumentFilter struct {
	Source *docingest.Source
	URL    *string

	Limit  int
	Offset int
}

// DocumentStore implements docingest.DocumentStore using SQLite.
type DocumentStore struct {
	db  *DB
	now func() time.Time
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db, now: time.Now}
}

// HashContent computes xxHash of content and returns a 16-digit hex string.
// It is the value ContentHash reports for stored documents.
func HashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// SaveDocuments replaces the stored collection with docs in a single
// transaction. Document order is kept in the position column.
func (s *DocumentStore) SaveDocuments(ctx context.Context, docs []*docingest.Document) error {
	for i, d := range docs {
		if d == nil {
			return docingest.Errorf(docingest.EINVALID, "document %d is nil", i)
		}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM runs"); err != nil {
		return err
	}

	runID := uuid.New().String()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, document_count, created_at)
		VALUES (?, ?, ?)
	`, runID, len(docs), s.now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (id, run_id, position, source, url, title, content, content_hash, metadata, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, d := range docs {
		meta, err := json.Marshal(d.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata of %s: %w", d.URL, err)
		}
		if _, err := stmt.ExecContext(ctx,
			uuid.New().String(), runID, i, string(d.Source), d.URL, d.Title, d.Content,
			HashContent(d.Content), string(meta), d.Metadata.ScrapedAt.Format(docingest.ScrapedAtLayout),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LatestRun returns the currently stored run.
func (s *DocumentStore) LatestRun(ctx context.Context) (*Run, error) {
	var run Run
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, document_count, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&run.ID, &run.DocumentCount, &createdAt)
	if err == sql.ErrNoRows {
		return nil, docingest.Errorf(docingest.ENOTFOUND, "no saved run")
	}
	if err != nil {
		return nil, err
	}

	if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListDocuments returns stored documents matching filter in position order.
func (s *DocumentStore) ListDocuments(ctx context.Context, filter DocumentFilter) ([]*docingest.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT source, url, title, content, metadata FROM documents WHERE 1=1")

	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, string(*filter.Source))
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*docingest.Document
	for rows.Next() {
		var doc docingest.Document
		var source, meta string

		if err := rows.Scan(&source, &doc.URL, &doc.Title, &doc.Content, &meta); err != nil {
			return nil, err
		}
		doc.Source = docingest.Source(source)
		if err := json.Unmarshal([]byte(meta), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("failed to parse metadata of %s: %w", doc.URL, err)
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// ContentHash returns the stored content hash of the document at url.
func (s *DocumentStore) ContentHash(ctx context.Context, url string) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, "SELECT content_hash FROM documents WHERE url = ? ORDER BY position LIMIT 1", url).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", docingest.Errorf(docingest.ENOTFOUND, "document %q not found", url)
	}
	return hash, err
}
