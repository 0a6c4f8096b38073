package shard

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolRunsSubmittedTasks(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var n atomic.Int64
	const tasks = 100
	for i := 0; i < tasks; i++ {
		require.NoError(t, pool.Submit(context.Background(), func() { n.Add(1) }))
	}

	require.Eventually(t, func() bool { return n.Load() == tasks }, time.Second, time.Millisecond)
}

func TestWorkerPoolSubmitAfterCloseFails(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.Close()

	err := pool.Submit(context.Background(), func() {})
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestWorkerPoolCloseIsIdempotent(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.Close()
	pool.Close() // must not panic or block
}

func TestWorkerPoolSubmitRespectsContextCancellation(t *testing.T) {
	pool := NewWorkerPool(1) // one worker, channel buffer of 2

	// Occupy the single worker and fill the channel buffer (capacity
	// 3 total: 1 in-flight + 2 buffered), so the next Submit has
	// nowhere to enqueue and must wait on the channel send.
	block := make(chan struct{})
	require.NoError(t, pool.Submit(context.Background(), func() { <-block }))
	for i := 0; i < 2; i++ {
		require.NoError(t, pool.Submit(context.Background(), func() {}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pool.Submit(ctx, func() {})
	assert.ErrorIs(t, err, context.Canceled)

	close(block)
	pool.Close()
}
