package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/docingest"
	"github.com/fwojciec/docingest/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacer(t *testing.T) {
	t.Parallel()

	t.Run("implements docingest.Pacer interface", func(t *testing.T) {
		t.Parallel()
		var _ docingest.Pacer = crawl.NewPacer(time.Second)
	})

	t.Run("first pause waits the full delay", func(t *testing.T) {
		t.Parallel()

		pacer := crawl.NewPacer(100 * time.Millisecond)

		start := time.Now()
		err := pacer.Pause(context.Background())

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	})

	t.Run("time spent between pauses does not shorten the next pause", func(t *testing.T) {
		t.Parallel()

		pacer := crawl.NewPacer(100 * time.Millisecond)
		require.NoError(t, pacer.Pause(context.Background()))

		// A slow fetch between two pauses.
		time.Sleep(150 * time.Millisecond)

		start := time.Now()
		err := pacer.Pause(context.Background())

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	})

	t.Run("back to back pauses each wait one delay", func(t *testing.T) {
		t.Parallel()

		pacer := crawl.NewPacer(50 * time.Millisecond)

		start := time.Now()
		for range 3 {
			require.NoError(t, pacer.Pause(context.Background()))
		}
		elapsed := time.Since(start)

		assert.GreaterOrEqual(t, elapsed, 140*time.Millisecond)
		assert.Less(t, elapsed, 300*time.Millisecond)
	})

	t.Run("zero delay never waits", func(t *testing.T) {
		t.Parallel()

		pacer := crawl.NewPacer(0)

		start := time.Now()
		for range 10 {
			require.NoError(t, pacer.Pause(context.Background()))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		pacer := crawl.NewPacer(time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := pacer.Pause(ctx)
		assert.Error(t, err, "should fail when context times out")
	})
}
