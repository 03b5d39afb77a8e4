package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/docingest"
	"golang.org/x/time/rate"
)

var _ docingest.Pacer = (*Pacer)(nil)

// DefaultPoliteDelay is the pause between two URLs of the same crawl.
const DefaultPoliteDelay = 500 * time.Millisecond

// Pacer enforces a fixed pause after every processed URL of one crawl,
// whatever host the URL was on. Time spent fetching does not count
// towards the pause.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer pausing for delay.
// A non-positive delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	every := rate.Inf
	if delay > 0 {
		every = rate.Every(delay)
	}
	return &Pacer{limiter: rate.NewLimiter(every, 1)}
}

// Pause blocks for one full delay.
// Returns an error if the context is canceled before the delay has passed.
func (p *Pacer) Pause(ctx context.Context) error {
	if p.limiter.Limit() == rate.Inf {
		return p.limiter.Wait(ctx)
	}

	// Dropping the burst to zero and back empties the bucket, so the wait
	// below always takes one whole interval.
	now := time.Now()
	p.limiter.SetBurstAt(now, 0)
	p.limiter.SetBurstAt(now, 1)
	return p.limiter.Wait(ctx)
}
