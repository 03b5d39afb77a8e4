package crawl

import (
	"github.com/fwojciec/docingest"
	"github.com/fwojciec/docingest/bloom"
)

// Compile-time interface verification.
var _ docingest.URLFrontier = (*Frontier)(nil)

// Frontier sizing for the visited-set pre-check.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate of the pre-check.
	frontierFalsePositiveRate = 0.01
)

// Frontier is the FIFO queue and visited set of a single crawl.
// It is owned by one crawl invocation and not safe for concurrent use.
//
// The visited map is authoritative. The Bloom filter in front of it
// answers most "never seen" lookups without touching the map.
type Frontier struct {
	queue   []string
	visited map[string]struct{}
	seen    *bloom.Filter
}

// NewFrontier creates a Frontier with seeds queued in order.
func NewFrontier(seeds ...string) *Frontier {
	f := &Frontier{
		visited: make(map[string]struct{}),
		seen:    bloom.NewFilter(frontierExpectedURLs, frontierFalsePositiveRate),
	}
	for _, s := range seeds {
		f.Push(s)
	}
	return f
}

// Push appends url to the back of the queue.
// Returns false if url has already been visited. A URL that is queued but
// not yet visited may be queued again; the duplicate is skipped on Pop.
func (f *Frontier) Push(url string) bool {
	if f.Visited(url) {
		return false
	}
	f.queue = append(f.queue, url)
	return true
}

// Pop removes and returns the URL at the front of the queue.
// The bool result is false if the queue is empty.
func (f *Frontier) Pop() (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	return url, true
}

// Visit marks url as visited.
// Returns false if it had been visited before.
func (f *Frontier) Visit(url string) bool {
	if f.Visited(url) {
		return false
	}
	f.visited[url] = struct{}{}
	f.seen.Add(url)
	return true
}

// Visited returns true if url has been marked visited.
func (f *Frontier) Visited(url string) bool {
	if !f.seen.MayContain(url) {
		return false
	}
	_, ok := f.visited[url]
	return ok
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	return len(f.queue)
}

// VisitedCount returns the number of distinct URLs visited.
func (f *Frontier) VisitedCount() int {
	return len(f.visited)
}
