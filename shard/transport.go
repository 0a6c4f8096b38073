package shard

import (
	"context"

	"github.com/shunpeizhang/weaver/graph"
	"github.com/shunpeizhang/weaver/nodeprog"
	"github.com/shunpeizhang/weaver/nodeprog/dijkstra"
)

// InMemoryTransport is a simple in-process message router keyed by
// shard ID (SPEC_FULL.md §6). It lets this package's own tests drive a
// multi-shard traversal without a real cluster; it is not itself part
// of the core component list. It hands dijkstra.Params values directly
// to the target Runtime and does not encode them with the wire package.
type InMemoryTransport struct {
	runtimes map[uint64]*Runtime
	sink     ResultSink
}

// NewInMemoryTransport creates a transport that routes hops among
// runtimes and delivers coordinator-addressed hops to sink.
func NewInMemoryTransport(sink ResultSink) *InMemoryTransport {
	return &InMemoryTransport{runtimes: make(map[uint64]*Runtime), sink: sink}
}

// Register adds rt as the handler for its own ShardID.
func (t *InMemoryTransport) Register(rt *Runtime) {
	t.runtimes[rt.ShardID()] = rt
}

// Send routes a single hop: if it targets CoordinatorSink, it is
// delivered to the transport's ResultSink; otherwise it is dispatched
// synchronously on the target shard's Runtime, and every hop the
// program emits in response is recursively sent. Send returns once the
// whole chain triggered by this one hop has settled.
func (t *InMemoryTransport) Send(ctx context.Context, reqID uint64, hop nodeprog.Hop[dijkstra.Params]) error {
	if IsCoordinatorSink(hop.Target) {
		t.sink.OnResult(reqID, hop.Params)
		return nil
	}

	rt, ok := t.runtimes[hop.Target.ShardID]
	if !ok {
		return ErrUnknownShard
	}

	next, err := rt.Dispatch(ctx, reqID, hop.Target, hop.Params)
	if err != nil {
		return err
	}
	for _, h := range next {
		if err := t.Send(ctx, reqID, h); err != nil {
			return err
		}
	}
	return nil
}

// Start dispatches the first hop of a new traversal: a request's
// initial Params, targeted at its SourceNode.
func (t *InMemoryTransport) Start(ctx context.Context, reqID uint64, source graph.RemoteNode, params dijkstra.Params) error {
	return t.Send(ctx, reqID, nodeprog.Hop[dijkstra.Params]{Target: source, Params: params})
}
