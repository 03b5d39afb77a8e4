package crawl

import (
	"context"
	"errors"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/docingest"
)

// DefaultDocsPath is the repository directory searched for documentation.
const DefaultDocsPath = "docs"

// DocExtensions lists the file extensions collected from the docs directory.
var DocExtensions = []string{".md", ".markdown", ".rst"}

// ErrWikiUnsupported is recorded as a skipped outcome for the wiki step.
var ErrWikiUnsupported = errors.New("wiki unsupported")

var _ docingest.Ingester = (*RepositoryIngester)(nil)

// RepositoryIngester collects a repository's readme and the documentation
// files below DocsPath. It makes structured API calls and follows no links.
type RepositoryIngester struct {
	Label    string
	Service  docingest.RepositoryService
	DocsPath string

	Now      func() time.Time
	Progress ProgressFunc
}

// NewRepositoryIngester creates an ingester over svc.
func NewRepositoryIngester(name string, svc docingest.RepositoryService) *RepositoryIngester {
	return &RepositoryIngester{
		Label:    name,
		Service:  svc,
		DocsPath: DefaultDocsPath,
	}
}

// Name implements docingest.Ingester.
func (r *RepositoryIngester) Name() string {
	if r.Label != "" {
		return r.Label
	}
	return r.fullName()
}

// Ingest runs the readme, wiki and docs steps in order. A failure in one
// step never prevents the next from running.
func (r *RepositoryIngester) Ingest(ctx context.Context) (*docingest.Result, error) {
	if r.Service == nil {
		return nil, docingest.Errorf(docingest.EINVALID, "repository ingester %q has no service", r.Label)
	}

	result := &docingest.Result{Source: docingest.SourceRepository, Name: r.Name()}
	r.ingestReadme(ctx, result)
	r.ingestWiki(result)
	r.ingestDocs(ctx, result)

	r.emit(ProgressEvent{Type: ProgressFinished, Name: result.Name, Completed: len(result.Documents), Total: len(result.Documents)})
	return result, nil
}

func (r *RepositoryIngester) ingestReadme(ctx context.Context, result *docingest.Result) {
	entry, err := r.Service.Readme(ctx)
	if err != nil {
		r.fail(result, r.fullName()+"/README", err)
		return
	}

	content, err := r.Service.Download(ctx, entry.DownloadURL)
	if err != nil {
		r.fail(result, entry.DownloadURL, err)
		return
	}

	doc := &docingest.Document{
		Source:   docingest.SourceRepository,
		URL:      entry.HTMLURL,
		Title:    r.Service.Repo() + " - README",
		Content:  content,
		Metadata: docingest.Metadata{ScrapedAt: r.now()},
	}
	doc.Metadata.Set(docingest.MetaType, docingest.TypeReadme)
	doc.Metadata.Set(docingest.MetaRepo, r.fullName())
	r.succeed(result, entry.DownloadURL, doc)
}

// ingestWiki is a declared no-op; repository wikis are not reachable
// through the contents API.
func (r *RepositoryIngester) ingestWiki(result *docingest.Result) {
	result.Outcomes = append(result.Outcomes, docingest.Outcome{
		Kind: docingest.OutcomeSkipped,
		URL:  r.fullName() + "/wiki",
		Err:  ErrWikiUnsupported,
	})
}

// ingestDocs walks the docs tree depth-first in listing order, keeping one
// frame per open directory on an explicit stack. A missing root yields
// nothing. Any other listing error drops only that directory, and a
// download error drops only that file.
func (r *RepositoryIngester) ingestDocs(ctx context.Context, result *docingest.Result) {
	root := r.DocsPath
	if root == "" {
		root = DefaultDocsPath
	}

	entries, err := r.Service.ListDirectory(ctx, root)
	if err != nil {
		if docingest.ErrorCode(err) != docingest.ENOTFOUND {
			r.fail(result, root, err)
		}
		return
	}

	stack := []*listing{{entries: entries}}
	for len(stack) > 0 {
		if ctx.Err() != nil {
			return
		}

		top := stack[len(stack)-1]
		if top.next == len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		e := top.entries[top.next]
		top.next++

		switch e.Type {
		case docingest.EntryDir:
			children, err := r.Service.ListDirectory(ctx, e.Path)
			if err != nil {
				r.fail(result, e.Path, err)
				continue
			}
			stack = append(stack, &listing{entries: children})
		case docingest.EntryFile:
			if isDocFile(e.Name) {
				r.ingestDocFile(ctx, result, e)
			}
		}
	}
}

// listing is a directory whose entries are partially walked.
type listing struct {
	entries []*docingest.RepositoryEntry
	next    int
}

func (r *RepositoryIngester) ingestDocFile(ctx context.Context, result *docingest.Result, e *docingest.RepositoryEntry) {
	if e.DownloadURL == "" {
		r.fail(result, e.Path, docingest.Errorf(docingest.EINVALID, "%s has no download URL", e.Path))
		return
	}

	content, err := r.Service.Download(ctx, e.DownloadURL)
	if err != nil {
		r.fail(result, e.DownloadURL, err)
		return
	}

	doc := &docingest.Document{
		Source:   docingest.SourceRepository,
		URL:      e.HTMLURL,
		Title:    e.Name,
		Content:  content,
		Metadata: docingest.Metadata{ScrapedAt: r.now()},
	}
	doc.Metadata.Set(docingest.MetaType, docingest.TypeDocsFile)
	doc.Metadata.Set(docingest.MetaRepo, r.fullName())
	doc.Metadata.Set(docingest.MetaPath, e.Path)
	r.succeed(result, e.Path, doc)
}

// succeed records doc, or a failure against target when the API handed
// back an entry that cannot form a valid document.
func (r *RepositoryIngester) succeed(result *docingest.Result, target string, doc *docingest.Document) {
	if err := doc.Validate(); err != nil {
		r.fail(result, target, err)
		return
	}
	result.Documents = append(result.Documents, doc)
	result.Outcomes = append(result.Outcomes, docingest.Outcome{Kind: docingest.OutcomeDocument, URL: doc.URL})
	r.emit(ProgressEvent{Type: ProgressCompleted, Name: result.Name, Completed: len(result.Documents), URL: doc.URL})
}

func (r *RepositoryIngester) fail(result *docingest.Result, target string, err error) {
	result.Outcomes = append(result.Outcomes, docingest.Outcome{Kind: docingest.OutcomeFailed, URL: target, Err: err})
	r.emit(ProgressEvent{Type: ProgressFailed, Name: result.Name, Completed: len(result.Documents), URL: target, Error: err})
}

func (r *RepositoryIngester) fullName() string {
	return r.Service.Owner() + "/" + r.Service.Repo()
}

func (r *RepositoryIngester) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *RepositoryIngester) emit(event ProgressEvent) {
	if r.Progress != nil {
		r.Progress(event)
	}
}

func isDocFile(name string) bool {
	return slices.Contains(DocExtensions, strings.ToLower(path.Ext(name)))
}
