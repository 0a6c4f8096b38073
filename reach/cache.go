package reach

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/shunpeizhang/weaver/metrics"
)

// Cache memoizes "local node reaches destination" facts keyed by the
// request that proved them, so a later traversal at the same shard can
// short-circuit without re-expanding the graph.
//
// It holds two tables under a single mutex (spec §3/§4.3):
//   - forward: dest -> (set of local nodes reaching dest, req_id that
//     cached it)
//   - invalidation: req_id -> dest (inverse index)
//
// Invariant: every (d, l, r) triple present in forward has
// invalidation[r] == d; the reverse need not hold (a dest bucket can be
// overwritten by a later req_id without a stale invalidation entry
// being cleaned up until that req_id is itself removed).
type Cache struct {
	mu sync.Mutex

	forward      map[uint64]*bucket
	invalidation map[uint64]uint64 // reqID -> dest

	metrics metrics.Observer
}

type bucket struct {
	locals *roaring64.Bitmap
	reqID  uint64
}

// Option configures a Cache.
type Option func(*Cache)

// WithMetrics installs obs as the Cache's metrics.Observer, which
// receives an OnCacheLookup event per GetReqID call. Without this
// option lookups are still correct; they just aren't observed.
func WithMetrics(obs metrics.Observer) Option {
	return func(c *Cache) { c.metrics = obs }
}

// New creates an empty reachability cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		forward:      make(map[uint64]*bucket),
		invalidation: make(map[uint64]uint64),
		metrics:      metrics.NoopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Insert records that local can reach dest, proved by reqID. It returns
// false if the (dest, local) pair already existed.
//
// Per spec §4.3 and §9, a second Insert for a different local under the
// same dest overwrites dest's recorded reqID — the cache tracks the most
// recent proof, by design, even though this was undocumented in the
// source. Implementations must preserve this.
func (c *Cache) Insert(dest, local, reqID uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.forward[dest]
	if !ok {
		b = &bucket{locals: roaring64.New()}
		c.forward[dest] = b
	} else if b.locals.Contains(local) {
		return false
	}

	b.locals.Add(local)
	b.reqID = reqID
	c.invalidation[reqID] = dest
	return true
}

// GetReqID returns the reqID recorded for dest if local is in its set;
// the sentinel 0 denotes a miss.
func (c *Cache) GetReqID(dest, local uint64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.forward[dest]
	hit := ok && b.locals.Contains(local)
	c.metrics.OnCacheLookup(hit)
	if !hit {
		return 0
	}
	return b.reqID
}

// RemoveEntry looks up the dest proved by reqID via the invalidation
// index, removes dest's entire bucket from forward, and removes reqID
// from invalidation. It is a no-op if reqID is unknown (defensive, per
// spec §4.3).
func (c *Cache) RemoveEntry(reqID uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dest, ok := c.invalidation[reqID]
	if !ok {
		return
	}
	delete(c.forward, dest)
	delete(c.invalidation, reqID)
}
