package docingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
	"unicode/utf8"
)

// Source identifies the kind of origin a document was collected from.
type Source string

// Supported document sources.
const (
	SourceDocSite    Source = "readthedocs"
	SourceRepository Source = "github"
	SourceWebsite    Source = "website"
)

// Valid returns true if s is one of the known source tags.
func (s Source) Valid() bool {
	switch s {
	case SourceDocSite, SourceRepository, SourceWebsite:
		return true
	}
	return false
}

// Metadata keys used across sources.
const (
	MetaScrapedAt     = "scraped_at"
	MetaContentLength = "content_length"
	MetaType          = "type"
	MetaRepo          = "repo"
	MetaPath          = "path"
	MetaFramework     = "framework"
)

// Repository document types stored under MetaType.
const (
	TypeReadme   = "readme"
	TypeDocsFile = "docs_file"
)

// ScrapedAtLayout is the layout of the capture timestamp in serialized metadata.
const ScrapedAtLayout = "2006-01-02 15:04:05"

// Metadata describes how and when a document was captured.
// ScrapedAt is always present; Fields is an open extension area.
type Metadata struct {
	ScrapedAt     time.Time
	ContentLength *int
	Fields        map[string]string
}

// NewPageMetadata returns metadata for a crawled page, recording the
// capture time and the content length in characters.
func NewPageMetadata(scrapedAt time.Time, content string) Metadata {
	n := utf8.RuneCountInString(content)
	return Metadata{ScrapedAt: scrapedAt, ContentLength: &n}
}

// Set stores an extension field, allocating the map on first use.
func (m *Metadata) Set(key, value string) {
	if m.Fields == nil {
		m.Fields = make(map[string]string)
	}
	m.Fields[key] = value
}

// Get returns an extension field.
func (m Metadata) Get(key string) string {
	return m.Fields[key]
}

// MarshalJSON encodes the metadata as a flat object: scraped_at first,
// content_length when known, then extension fields sorted by key.
func (m Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeKV(&buf, MetaScrapedAt, m.ScrapedAt.Format(ScrapedAtLayout))
	if m.ContentLength != nil {
		buf.WriteString(`,"` + MetaContentLength + `":`)
		buf.WriteString(strconv.Itoa(*m.ContentLength))
	}

	keys := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		if k == MetaScrapedAt || k == MetaContentLength {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf.WriteByte(',')
		writeKV(&buf, k, m.Fields[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeKV writes a JSON string pair without escaping HTML characters.
func writeKV(buf *bytes.Buffer, key, value string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(key)
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
	buf.WriteByte(':')
	_ = enc.Encode(value)
	buf.Truncate(buf.Len() - 1)
}

// UnmarshalJSON decodes the flat object produced by MarshalJSON.
// Unknown keys are kept as extension fields; non-string values are
// stored in their JSON text form.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = Metadata{}
	for k, v := range raw {
		switch k {
		case MetaScrapedAt:
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return fmt.Errorf("decode %s: %w", MetaScrapedAt, err)
			}
			t, err := time.ParseInLocation(ScrapedAtLayout, s, time.Local)
			if err != nil {
				return fmt.Errorf("decode %s: %w", MetaScrapedAt, err)
			}
			m.ScrapedAt = t
		case MetaContentLength:
			var n int
			if err := json.Unmarshal(v, &n); err != nil {
				return fmt.Errorf("decode %s: %w", MetaContentLength, err)
			}
			m.ContentLength = &n
		default:
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				s = string(v)
			}
			m.Set(k, s)
		}
	}
	return nil
}

// Document is a normalized documentation page. Field order matches the
// serialized artifact.
type Document struct {
	Source   Source   `json:"source"`
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if !d.Source.Valid() {
		return Errorf(EINVALID, "document source %q unknown", d.Source)
	}
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	return nil
}

// DocumentStore persists a complete document collection.
type DocumentStore interface {
	// SaveDocuments replaces whatever the store holds with docs.
	// Implementations never leave a partially written artifact behind.
	SaveDocuments(ctx context.Context, docs []*Document) error
}
