package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpmhone/folio/pkg/async"
)

func TestForEach(t *testing.T) {
	t.Parallel()

	errOdd := errors.New("odd")
	items := []int{1, 2, 3, 4, 5, 6}

	errs := async.ForEach(context.Background(), 2, items, func(_ context.Context, n int) error {
		if n%2 == 1 {
			return errOdd
		}
		return nil
	})

	require.Len(t, errs, len(items))
	for i, n := range items {
		if n%2 == 1 {
			assert.ErrorIs(t, errs[i], errOdd)
		} else {
			assert.NoError(t, errs[i])
		}
	}

	ok, failed := async.Count(errs)
	assert.Equal(t, 3, ok)
	assert.Equal(t, 3, failed)
}

func TestForEach_RespectsLimit(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32
	items := make([]int, 20)

	async.ForEach(context.Background(), 3, items, func(_ context.Context, _ int) error {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	})

	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Positive(t, peak.Load())
}

func TestForEach_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	errs := async.ForEach(ctx, 1, []int{1, 2, 3}, func(_ context.Context, _ int) error {
		calls.Add(1)
		return nil
	})

	assert.Zero(t, calls.Load())
	for _, err := range errs {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestForEach_Empty(t *testing.T) {
	t.Parallel()

	errs := async.ForEach(context.Background(), 0, []string(nil), func(context.Context, string) error {
		return errors.New("never")
	})
	assert.Empty(t, errs)
}
