package shard

import (
	"context"
	"sync"
	"time"

	"github.com/shunpeizhang/weaver/clock"
	"github.com/shunpeizhang/weaver/graph"
	"github.com/shunpeizhang/weaver/metrics"
	"github.com/shunpeizhang/weaver/nodeprog"
	"github.com/shunpeizhang/weaver/nodeprog/dijkstra"
	"github.com/shunpeizhang/weaver/progstate"
)

// Runtime owns a single shard's local nodes and is the single
// synchronous entry point for dispatching an inbound hop to the
// Dijkstra node program (SPEC_FULL.md §5). A Runtime's WorkerPool is
// sized for this shard's concurrency slots, and hop work sent through
// Submit runs on it, bounded by that pool size. Dispatch can also be
// called directly (InMemoryTransport does so); such calls run on the
// caller's goroutine and are not bounded by the pool.
type Runtime struct {
	shardID uint64

	nodesMu sync.RWMutex
	nodes   map[uint64]*graph.Node

	pool        *WorkerPool
	workerCount int
	logger      *Logger
	metrics     metrics.Observer
}

// NewRuntime creates a Runtime for shardID. Opts may install a logger,
// metrics observer, or a non-default worker count; unset fields default
// to no-op implementations.
func NewRuntime(shardID uint64, opts ...Option) *Runtime {
	rt := &Runtime{
		shardID: shardID,
		nodes:   make(map[uint64]*graph.Node),
		logger:  NoopLogger(),
		metrics: metrics.NoopObserver{},
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.logger = rt.logger.WithShard(shardID)
	rt.pool = NewWorkerPool(rt.workerCount)
	return rt
}

// ShardID returns the shard this Runtime serves.
func (rt *Runtime) ShardID() uint64 { return rt.shardID }

// AddNode installs a live node at handle, created at creat, replacing
// any prior node at the same handle.
func (rt *Runtime) AddNode(handle uint64, creat clock.VClock) *graph.Node {
	n := graph.NewNode(handle, creat)
	rt.nodesMu.Lock()
	rt.nodes[handle] = n
	rt.nodesMu.Unlock()
	return n
}

// Node returns the local node for handle, if any. Callers must still
// acquire the returned node's Mu before touching its mutable state.
func (rt *Runtime) Node(handle uint64) (*graph.Node, bool) {
	rt.nodesMu.RLock()
	defer rt.nodesMu.RUnlock()
	n, ok := rt.nodes[handle]
	return n, ok
}

// Close shuts down the Runtime's worker pool, waiting for in-flight
// dispatch work to drain.
func (rt *Runtime) Close() { rt.pool.Close() }

// Submit enqueues a hop for asynchronous dispatch through the
// Runtime's WorkerPool, invoking deliver with the resulting outbound
// hops once the node program returns. deliver runs on a pool worker
// goroutine, not the caller's.
func (rt *Runtime) Submit(ctx context.Context, reqID uint64, target graph.RemoteNode, params dijkstra.Params, deliver func([]nodeprog.Hop[dijkstra.Params])) error {
	err := rt.pool.Submit(ctx, func() {
		hops, _ := rt.Dispatch(ctx, reqID, target, params)
		deliver(hops)
	})
	rt.metrics.OnQueueDepth(rt.shardID, rt.pool.Depth())
	return err
}

// Dispatch is the single synchronous entry point: it acquires the
// target node's mutex, builds a progstate.Callbacks bound to
// (node, reqID), invokes the Dijkstra node program, releases the
// mutex, and returns the outbound hops for the caller to route. A
// missing or tombstoned target node is the soft deleted-node case
// (SPEC_FULL.md §7): Dispatch logs it and runs DeletedNodeHook instead
// of returning an error. A program-internal invariant violation is
// likewise logged rather than returned — the returned hop still
// carries the program's best-effort failure message to the
// coordinator, per §7's "no error is raised across shard boundaries."
func (rt *Runtime) Dispatch(ctx context.Context, reqID uint64, target graph.RemoteNode, params dijkstra.Params) ([]nodeprog.Hop[dijkstra.Params], error) {
	start := time.Now()
	logger := rt.logger.WithRequest(reqID)

	node, ok := rt.Node(target.Handle)
	if !ok {
		logger.LogMissingNode(ctx, target.Handle)
		hop := dijkstra.DeletedNodeHook(params)
		rt.metrics.OnDispatch(time.Since(start), 1, nil)
		return []nodeprog.Hop[dijkstra.Params]{hop}, nil
	}

	node.Mu.Lock()
	if !node.VisibleAt(clock.VClock(reqID)) {
		node.Mu.Unlock()
		logger.LogMissingNode(ctx, target.Handle)
		hop := dijkstra.DeletedNodeHook(params)
		rt.metrics.OnDispatch(time.Since(start), 1, nil)
		return []nodeprog.Hop[dijkstra.Params]{hop}, nil
	}
	cb := progstate.New(node, reqID, dijkstra.NewState)
	hops, progErr := dijkstra.Program(reqID, node, target, params, cb, CoordinatorSink)
	node.Mu.Unlock()

	logger.LogDispatch(ctx, target.Handle, len(hops), progErr)
	rt.metrics.OnDispatch(time.Since(start), len(hops), progErr)
	return hops, nil
}
