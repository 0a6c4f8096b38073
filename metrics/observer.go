// Package metrics defines the pluggable operational-counter interface
// consumed by the shard runtime (weaver core's ambient metrics concern,
// SPEC_FULL.md §2/§7). It follows the teacher's two metrics surfaces —
// vecgo's MetricsCollector/NoopMetricsCollector/BasicMetricsCollector
// trio and engine's event-named MetricsObserver — collapsed into one
// observer shaped around shard-dispatch events rather than index events.
package metrics

import "time"

// Observer receives events from a shard.Runtime (dispatches and worker
// pool depth), a namemap.Client (batches) and a reach.Cache (lookups),
// each of which takes it through its own WithMetrics option. Implement
// this to integrate with a monitoring system; NoopObserver and
// BasicObserver cover the no-dependency cases.
type Observer interface {
	// OnDispatch is called after a single Runtime.Dispatch call
	// completes: one node-program invocation for one hop.
	OnDispatch(duration time.Duration, hopsEmitted int, err error)

	// OnCacheLookup is called after a reach.Cache.GetReqID lookup. Hit
	// reports whether the lookup found a cached owner request.
	OnCacheLookup(hit bool)

	// OnNameMapBatch is called after a namemap.Client batch call
	// (PutMappings/GetMappings/DelMappings) drains.
	OnNameMapBatch(op string, count, failed int, duration time.Duration)

	// OnQueueDepth reports a worker pool's current backlog.
	OnQueueDepth(shardID uint64, depth int)
}

// NoopObserver discards every event. Use it when metrics collection is
// not needed.
type NoopObserver struct{}

func (NoopObserver) OnDispatch(time.Duration, int, error)           {}
func (NoopObserver) OnCacheLookup(bool)                             {}
func (NoopObserver) OnNameMapBatch(string, int, int, time.Duration) {}
func (NoopObserver) OnQueueDepth(uint64, int)                       {}
