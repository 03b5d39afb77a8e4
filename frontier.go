package docingest

import "context"

// URLFrontier manages the pending queue and visited set of one crawl.
type URLFrontier interface {
	// Push appends a URL to the back of the queue.
	// Returns false if the URL has already been visited.
	Push(url string) bool

	// Pop removes and returns the URL at the front of the queue.
	// Returns false if the queue is empty.
	Pop() (string, bool)

	// Visit marks a URL as visited.
	// Returns false if it was visited before.
	Visit(url string) bool

	// Visited returns true if the URL has been marked visited.
	Visited(url string) bool

	// Len returns the number of URLs in the queue.
	Len() int
}

// Pacer spaces the requests of a single crawl.
type Pacer interface {
	// Pause blocks for the politeness delay that follows a processed URL.
	// Returns an error if the context is canceled.
	Pause(ctx context.Context) error
}
