package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// BasicObserver provides simple in-memory counters, useful for tests and
// debugging without wiring an external monitoring system.
type BasicObserver struct {
	DispatchCount      atomic.Int64
	DispatchErrors     atomic.Int64
	DispatchTotalNanos atomic.Int64
	HopsEmitted        atomic.Int64

	CacheHits   atomic.Int64
	CacheMisses atomic.Int64

	QueueDepths sync.Map // shardID uint64 -> int (last reported depth)

	mu         sync.Mutex
	nameMapOps map[string]*nameMapCounters
}

type nameMapCounters struct {
	Count      int64
	Failed     int64
	TotalNanos int64
}

// NewBasicObserver creates an empty BasicObserver.
func NewBasicObserver() *BasicObserver {
	return &BasicObserver{nameMapOps: make(map[string]*nameMapCounters)}
}

func (b *BasicObserver) OnDispatch(duration time.Duration, hopsEmitted int, err error) {
	b.DispatchCount.Add(1)
	b.DispatchTotalNanos.Add(duration.Nanoseconds())
	b.HopsEmitted.Add(int64(hopsEmitted))
	if err != nil {
		b.DispatchErrors.Add(1)
	}
}

func (b *BasicObserver) OnCacheLookup(hit bool) {
	if hit {
		b.CacheHits.Add(1)
		return
	}
	b.CacheMisses.Add(1)
}

func (b *BasicObserver) OnNameMapBatch(op string, count, failed int, duration time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.nameMapOps[op]
	if !ok {
		c = &nameMapCounters{}
		b.nameMapOps[op] = c
	}
	c.Count += int64(count)
	c.Failed += int64(failed)
	c.TotalNanos += duration.Nanoseconds()
}

func (b *BasicObserver) OnQueueDepth(shardID uint64, depth int) {
	b.QueueDepths.Store(shardID, depth)
}

// NameMapCounters returns a snapshot of the counters recorded for op,
// or the zero value if op was never reported.
func (b *BasicObserver) NameMapCounters(op string) (count, failed int64, total time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.nameMapOps[op]
	if !ok {
		return 0, 0, 0
	}
	return c.Count, c.Failed, time.Duration(c.TotalNanos)
}
