package crawl_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/docingest/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_Pop_is_first_in_first_out(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier("https://example.com/a")
	f.Push("https://example.com/b")
	f.Push("https://example.com/c")

	for _, want := range []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"} {
		got, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := f.Pop()
	assert.False(t, ok, "pop on empty frontier should return false")
}

func TestFrontier_Push_rejects_visited_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	assert.True(t, f.Visit("https://example.com/page"))
	assert.False(t, f.Push("https://example.com/page"), "visited URL should not be queued")
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_Push_allows_queued_but_unvisited_duplicates(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	assert.True(t, f.Push("https://example.com/page"))
	assert.True(t, f.Push("https://example.com/page"))
	assert.Equal(t, 2, f.Len())
}

func TestFrontier_Visit_reports_first_visit_only(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	assert.False(t, f.Visited("https://example.com/page"))
	assert.True(t, f.Visit("https://example.com/page"))
	assert.False(t, f.Visit("https://example.com/page"))
	assert.True(t, f.Visited("https://example.com/page"))
	assert.Equal(t, 1, f.VisitedCount())
}

func TestFrontier_Visited_is_exact_for_many_urls(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	for i := range 20000 {
		f.Visit(fmt.Sprintf("https://example.com/added/%d", i))
	}

	for i := range 2000 {
		assert.False(t, f.Visited(fmt.Sprintf("https://example.com/other/%d", i)))
	}
	assert.Equal(t, 20000, f.VisitedCount())
}

func TestFrontier_Len_tracks_queue_size(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	assert.Equal(t, 0, f.Len(), "new frontier should be empty")

	f.Push("https://example.com/a")
	assert.Equal(t, 1, f.Len())

	f.Push("https://example.com/b")
	assert.Equal(t, 2, f.Len())

	f.Pop()
	assert.Equal(t, 1, f.Len())

	f.Pop()
	assert.Equal(t, 0, f.Len())
}
