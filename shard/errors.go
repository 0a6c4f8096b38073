package shard

import "errors"

var (
	// ErrUnknownHandle names a hop that targets a handle this shard has
	// no node for (SPEC_FULL.md §7's "unknown handle at hop target").
	// Neither InMemoryTransport nor Runtime.Dispatch returns it:
	// Dispatch treats a missing node as the soft deleted-node case.
	ErrUnknownHandle = errors.New("shard: unknown handle")

	// ErrUnknownShard is returned by InMemoryTransport.Send when no
	// Runtime is registered for a hop's target shard.
	ErrUnknownShard = errors.New("shard: unknown shard id")

	// ErrPoolClosed is returned by WorkerPool.Submit once the pool has
	// been closed.
	ErrPoolClosed = errors.New("shard: worker pool closed")
)
