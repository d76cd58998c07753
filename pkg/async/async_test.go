package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storykit/pkg/async"
)

func TestGo(t *testing.T) {
	t.Parallel()

	t.Run("returns result", func(t *testing.T) {
		t.Parallel()
		f := async.Go(context.Background(), func(context.Context) (int, error) { return 42, nil })
		v, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		_, err := async.Go(context.Background(), func(context.Context) (string, error) { return "", boom }).Await()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("skips fn on cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var called atomic.Bool
		_, err := async.Go(ctx, func(context.Context) (int, error) {
			called.Store(true)
			return 1, nil
		}).Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called.Load())
	})
}

func TestAwaitContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	f := async.Go(context.Background(), func(context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	ctx := context.Background()
	futures := []*async.Future[int]{
		async.Go(ctx, func(context.Context) (int, error) {
			time.Sleep(5 * time.Millisecond)
			return 1, nil
		}),
		async.Go(ctx, func(context.Context) (int, error) { return 0, boom }),
		async.Go(ctx, func(context.Context) (int, error) { return 3, nil }),
	}

	results, err := async.WaitAll(futures...)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1, 0, 3}, results)
}
