package namemap

import (
	"context"
	"log/slog"
	"time"

	"github.com/shunpeizhang/weaver/metrics"
	"golang.org/x/time/rate"
)

// Mapping is a resolved (handle, shard) pair.
type Mapping struct {
	Handle  uint64
	ShardID uint64
}

// Client drives the pipelined submit-then-drain pattern against a
// Store. A Client is single-threaded per instance: submission and
// completion draining both happen on the calling goroutine. Multiple
// Clients may be used for parallelism; no ordering is guaranteed
// across instances submitting concurrently against the same Store.
type Client struct {
	store   Store
	limiter *rate.Limiter
	logger  *slog.Logger
	metrics metrics.Observer
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimit caps the rate at which Client issues submissions
// against the backing Store. Disabled by default.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(r, burst) }
}

// WithLogger overrides the diagnostic logger used for soft/per-op
// failures. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics installs obs as the Client's metrics.Observer, which
// receives an OnNameMapBatch event after every Put/Get/DelMappings call
// drains. Defaults to metrics.NoopObserver{}.
func WithMetrics(obs metrics.Observer) Option {
	return func(c *Client) { c.metrics = obs }
}

// NewClient wraps store with the pipelined submit/drain client.
func NewClient(store Store, opts ...Option) *Client {
	c := &Client{store: store, logger: slog.Default(), metrics: metrics.NoopObserver{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) throttle(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// PutMappings writes every (handle, shardID) pair in mappings. It
// submits every operation before draining any completion. On the
// first error encountered during submission, submission stops early
// (partial writes are possible but never corrupt the store); already
// submitted operations are still drained. Per-operation drain failures
// are logged, never returned — PutMappings is best-effort from the
// caller's perspective.
func (c *Client) PutMappings(ctx context.Context, mappings map[uint64]uint64) error {
	start := time.Now()
	keys := make([]uint64, 0, len(mappings))
	submitted := 0

	var submitErr error
	for handle, shardID := range mappings {
		if err := c.throttle(ctx); err != nil {
			submitErr = err
			break
		}
		if _, err := c.store.Put(ctx, EncodeHandle(handle), EncodeShard(shardID)); err != nil {
			submitErr = err
			break
		}
		keys = append(keys, handle)
		submitted++
	}

	failed := 0
	for i := 0; i < submitted; i++ {
		comp, err := c.store.Drain(ctx)
		if err != nil || comp.Err != nil {
			failed++
			c.logger.Warn("namemap: put_mappings completion failed", "handle", keys[i], "error", firstNonNil(err, comp.Err))
		}
	}

	c.metrics.OnNameMapBatch("put", submitted, failed, time.Since(start))
	return submitErr
}

// GetMappings resolves handles to shards. It issues one Get per
// requested handle, then drains one completion per submission. A
// handle is present in the result only if its completion succeeded
// with a found attribute. If any drained completion carries an error,
// the whole batch is discarded and ErrBatchFailed is returned.
func (c *Client) GetMappings(ctx context.Context, handles []uint64) ([]Mapping, error) {
	start := time.Now()
	keys := make([]uint64, 0, len(handles))

	for _, h := range handles {
		if err := c.throttle(ctx); err != nil {
			c.metrics.OnNameMapBatch("get", len(keys), len(keys), time.Since(start))
			return nil, err
		}
		if _, err := c.store.Get(ctx, EncodeHandle(h)); err != nil {
			c.metrics.OnNameMapBatch("get", len(keys), len(keys), time.Since(start))
			return nil, err
		}
		keys = append(keys, h)
	}

	out := make([]Mapping, 0, len(keys))
	failed := 0
	for range keys {
		comp, err := c.store.Drain(ctx)
		if err != nil || comp.Err != nil {
			failed++
			continue
		}
		if !comp.Found {
			continue
		}
		out = append(out, Mapping{Handle: DecodeHandle(comp.Key), ShardID: DecodeShard(comp.Attr)})
	}
	if failed > 0 {
		c.metrics.OnNameMapBatch("get", len(keys), failed, time.Since(start))
		return nil, ErrBatchFailed
	}
	c.metrics.OnNameMapBatch("get", len(keys), 0, time.Since(start))
	return out, nil
}

// DelMappings removes every handle in handles, using the same
// pipelined submit-then-drain pattern as PutMappings. Soft (per-op)
// failures are logged, never returned.
func (c *Client) DelMappings(ctx context.Context, handles []uint64) error {
	start := time.Now()
	keys := make([]uint64, 0, len(handles))
	submitted := 0

	var submitErr error
	for _, h := range handles {
		if err := c.throttle(ctx); err != nil {
			submitErr = err
			break
		}
		if _, err := c.store.Del(ctx, EncodeHandle(h)); err != nil {
			submitErr = err
			break
		}
		keys = append(keys, h)
		submitted++
	}

	failed := 0
	for i := 0; i < submitted; i++ {
		comp, err := c.store.Drain(ctx)
		if err != nil || comp.Err != nil {
			failed++
			c.logger.Warn("namemap: del_mappings completion failed", "handle", keys[i], "error", firstNonNil(err, comp.Err))
		}
	}

	c.metrics.OnNameMapBatch("del", submitted, failed, time.Since(start))
	return submitErr
}

// CleanUpSpace drops the entire backing space. Administrative only.
func (c *Client) CleanUpSpace(ctx context.Context) error {
	return c.store.CleanUpSpace(ctx)
}

func firstNonNil(a, b error) error {
	if a != nil {
		return a
	}
	return b
}
