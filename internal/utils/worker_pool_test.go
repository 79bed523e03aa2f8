package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWorkerPool_SingleWorkerKeepsOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool := NewWorkerPool(1, 4)

	var mu sync.Mutex
	var order []int
	for i := 0; i < 20; i++ {
		i := i
		require.NoError(t, pool.Submit(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}))
	}
	pool.Shutdown()

	require.Len(t, order, 20)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestWorkerPool_SubmitAfterShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool := NewWorkerPool(2, 0)
	pool.Shutdown()
	pool.Shutdown()

	assert.ErrorIs(t, pool.Submit(func() {}), ErrPoolClosed)
}

func TestWorkerPool_TrySubmitQueueFull(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool := NewWorkerPool(1, 1)
	started := make(chan struct{})
	release := make(chan struct{})

	require.NoError(t, pool.TrySubmit(func() {
		close(started)
		<-release
	}))
	<-started

	// The worker is busy: one job fits in the queue, the next one is rejected without blocking
	require.NoError(t, pool.TrySubmit(func() {}))
	assert.ErrorIs(t, pool.TrySubmit(func() {}), ErrQueueFull)

	close(release)
	pool.Shutdown()
	assert.ErrorIs(t, pool.TrySubmit(func() {}), ErrPoolClosed)
}
