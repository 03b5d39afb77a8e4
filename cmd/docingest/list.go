package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fwojciec/docingest"
	"github.com/fwojciec/docingest/fs"
	"github.com/fwojciec/docingest/sqlite"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := sqlite.DocumentFilter{Limit: c.Limit}
	if c.Source != "" {
		source := docingest.Source(c.Source)
		if !source.Valid() {
			err := docingest.Errorf(docingest.EINVALID, "unknown source %q", c.Source)
			fmt.Fprintf(deps.Stderr, "error: %s\n", docingest.ErrorMessage(err))
			return err
		}
		filter.Source = &source
	}

	l, err := c.listing(deps, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if l.run != nil {
		fmt.Fprintf(deps.Stdout, "Run %s  %s  %d documents\n", l.run.ID, l.run.CreatedAt.Format(time.RFC3339), l.run.DocumentCount)
	}

	if len(l.docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'docingest run' to collect some.")
		return nil
	}

	for i, d := range l.docs {
		if c.Hash {
			fmt.Fprintf(deps.Stdout, "%s  ", l.hashes[i])
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", d.Source, d.Title, d.URL)
	}
	return nil
}

// listing is what the list command prints. The run is known only for
// database outputs.
type listing struct {
	run    *sqlite.Run
	docs   []*docingest.Document
	hashes []string
}

func (c *ListCmd) listing(deps *Dependencies, filter sqlite.DocumentFilter) (*listing, error) {
	dest := deps.Config.Output

	switch kindOf(dest) {
	case storeJSON:
		docs, err := fs.ReadDocuments(dest)
		if err != nil {
			return nil, err
		}
		l := &listing{docs: filterDocuments(docs, filter)}
		if c.Hash {
			for _, d := range l.docs {
				l.hashes = append(l.hashes, sqlite.HashContent(d.Content))
			}
		}
		return l, nil
	case storeSQLite:
		if _, err := os.Stat(dest); errors.Is(err, os.ErrNotExist) {
			return nil, docingest.Errorf(docingest.ENOTFOUND, "database %q not found", dest)
		}
		db, err := openDB(dest)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return c.databaseListing(deps.Ctx, sqlite.NewDocumentStore(db), filter)
	}
	return nil, docingest.Errorf(docingest.EINVALID, "cannot list %q: only .json and .db outputs can be listed", dest)
}

func (c *ListCmd) databaseListing(ctx context.Context, store *sqlite.DocumentStore, filter sqlite.DocumentFilter) (*listing, error) {
	run, err := store.LatestRun(ctx)
	if docingest.ErrorCode(err) == docingest.ENOTFOUND {
		return &listing{}, nil
	} else if err != nil {
		return nil, err
	}

	docs, err := store.ListDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	l := &listing{run: run, docs: docs}
	if c.Hash {
		for _, d := range docs {
			hash, err := store.ContentHash(ctx, d.URL)
			if err != nil {
				return nil, err
			}
			l.hashes = append(l.hashes, hash)
		}
	}
	return l, nil
}

// filterDocuments applies the source filter and limit to an in-memory list.
func filterDocuments(docs []*docingest.Document, filter sqlite.DocumentFilter) []*docingest.Document {
	var out []*docingest.Document
	for _, d := range docs {
		if filter.Source != nil && d.Source != *filter.Source {
			continue
		}
		out = append(out, d)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out
}
