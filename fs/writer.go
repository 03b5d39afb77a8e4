package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docingest"
	"gopkg.in/yaml.v3"
)

// URLToPath converts a document URL to a relative file path below its host.
// Example: https://example.com/docs/api/users → example.com/docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", docingest.Errorf(docingest.EINVALID, "URL %q has no host", rawURL)
	}

	p := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
	switch {
	case p == "" || p == ".":
		p = "index.md"
	case strings.HasSuffix(u.Path, "/"):
		p += "/index.md"
	default:
		switch strings.ToLower(path.Ext(p)) {
		case ".html", ".htm", ".md", ".markdown", ".rst":
			p = strings.TrimSuffix(p, path.Ext(p))
		}
		p += ".md"
	}
	return path.Join(u.Host, p), nil
}

type frontmatter struct {
	Source    docingest.Source  `yaml:"source"`
	URL       string            `yaml:"url"`
	Title     string            `yaml:"title"`
	ScrapedAt string            `yaml:"scraped_at"`
	Fields    map[string]string `yaml:"metadata,omitempty"`
}

// FormatDocument formats a document as markdown with YAML frontmatter.
func FormatDocument(doc *docingest.Document) (string, error) {
	fm, err := yaml.Marshal(frontmatter{
		Source:    doc.Source,
		URL:       doc.URL,
		Title:     doc.Title,
		ScrapedAt: doc.Metadata.ScrapedAt.Format(docingest.ScrapedAtLayout),
		Fields:    doc.Metadata.Fields,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(doc.Content)
	b.WriteString("\n")
	return b.String(), nil
}

// Ensure MarkdownStore implements docingest.DocumentStore at compile time.
var _ docingest.DocumentStore = (*MarkdownStore)(nil)

// MarkerFile is written at the root of every directory a MarkdownStore
// produces. Only directories carrying it are ever replaced.
const MarkerFile = ".docingest"

// MarkdownStore writes one markdown file per document under a directory.
// Files are staged in <dir>.tmp and swapped in once every file is written.
// An existing destination is replaced only if it is empty or was written
// by a MarkdownStore.
type MarkdownStore struct {
	dir string
}

// NewMarkdownStore creates a MarkdownStore writing to dir.
func NewMarkdownStore(dir string) *MarkdownStore {
	return &MarkdownStore{dir: filepath.Clean(dir)}
}

// Path returns the destination directory.
func (s *MarkdownStore) Path() string { return s.dir }

func (s *MarkdownStore) tempDir() string {
	return s.dir + ".tmp"
}

// SaveDocuments replaces the directory contents with docs. When two
// documents map to the same file, later ones get a numeric suffix.
func (s *MarkdownStore) SaveDocuments(ctx context.Context, docs []*docingest.Document) error {
	if err := validateAll(docs); err != nil {
		return err
	}

	if err := checkReplaceable(s.dir); err != nil {
		return err
	}
	tmp := s.tempDir()
	if err := checkReplaceable(tmp); err != nil {
		return err
	}

	if err := os.RemoveAll(tmp); err != nil {
		return err
	}
	if err := os.MkdirAll(tmp, 0755); err != nil {
		return err
	}

	if err := s.stage(ctx, docs); err != nil {
		_ = os.RemoveAll(tmp)
		return err
	}

	if err := os.RemoveAll(s.dir); err != nil {
		return err
	}
	return os.Rename(tmp, s.dir)
}

// checkReplaceable returns EINVALID unless dir is missing, empty, or
// carries the marker file.
func checkReplaceable(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	if !info.IsDir() {
		return docingest.Errorf(docingest.EINVALID, "output %s exists and is not a directory", dir)
	}

	if _, err := os.Stat(filepath.Join(dir, MarkerFile)); err == nil {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return docingest.Errorf(docingest.EINVALID, "output directory %s is not empty and was not written by docingest", dir)
	}
	return nil
}

func (s *MarkdownStore) stage(ctx context.Context, docs []*docingest.Document) error {
	if err := os.WriteFile(filepath.Join(s.tempDir(), MarkerFile), nil, 0644); err != nil {
		return err
	}

	used := make(map[string]bool, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := URLToPath(doc.URL)
		if err != nil {
			return err
		}
		rel = uniquePath(rel, used)

		content, err := FormatDocument(doc)
		if err != nil {
			return fmt.Errorf("format %s: %w", doc.URL, err)
		}

		full := filepath.Join(s.tempDir(), filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

func uniquePath(rel string, used map[string]bool) string {
	candidate := rel
	base := strings.TrimSuffix(rel, ".md")
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d.md", base, n)
	}
	used[candidate] = true
	return candidate
}
