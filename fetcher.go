package docingest

import "context"

// Fetcher retrieves page bodies from URLs.
type Fetcher interface {
	// Fetch issues a GET request and returns the response body.
	// Any non-success status is returned as an error.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)
}
