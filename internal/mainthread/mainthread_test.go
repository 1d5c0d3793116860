package mainthread

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallWithoutLoop(t *testing.T) {
	err := Call(context.Background(), func() { t.Fatal("must not run") })
	assert.ErrorIs(t, err, ErrStopped)
}

func TestLoopServesCalls(t *testing.T) {
	var (
		order []int
		wg    sync.WaitGroup
	)

	err := Loop(context.Background(), func(ctx context.Context) error {
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				// order is only touched on the loop goroutine.
				assert.NoError(t, Call(ctx, func() { order = append(order, i) }))
			}()
		}
		wg.Wait()
		return nil
	})

	require.NoError(t, err)
	assert.Len(t, order, 10)
	assert.ErrorIs(t, Call(context.Background(), func() {}), ErrStopped)
}

func TestLoopReturnsError(t *testing.T) {
	boom := errors.New("boom")
	err := Loop(context.Background(), func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestCallCancelled(t *testing.T) {
	err := Loop(context.Background(), func(ctx context.Context) error {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		return Call(cctx, func() { t.Error("must not run") })
	})
	assert.ErrorIs(t, err, context.Canceled)
}
