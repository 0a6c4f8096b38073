// Package progstate implements the per-(node,request) program state
// store consumed by node programs (weaver core component C4).
//
// Per the Design Note in spec §9, the three callbacks a node program
// receives (state_getter, cache_value_putter, cached_values_getter) are
// expressed here as a single capability object rather than three
// independent closures.
package progstate

import "github.com/shunpeizhang/weaver/graph"

// CacheValue is an opaque, per-request value a node program may install
// at a node for later retrieval by itself or another program running at
// the same node. The Dijkstra program in this module never exercises it
// (spec §4.4), but the ABI carries it for other node programs. Defined
// as an alias, not a distinct named type, so *Callbacks satisfies
// nodeprog.Callbacks without an adapter.
type CacheValue = any

// Callbacks is the capability object handed to a node program on each
// invocation, bound to a single (node, requestID) pair. The underlying
// storage lives on the graph.Node itself (spec §3: "Each node also owns
// a mapping (requestId -> programState)"), so state and cache values
// installed on one invocation are visible to the next invocation for the
// same (node, requestID), across hops.
type Callbacks struct {
	node      *graph.Node
	requestID uint64
	newState  func() any
}

// New binds a Callbacks capability object to node for requestID. newState
// constructs a fresh, zero-value program state the first time
// StateGetter is called for this (node, requestID) pair. The caller must
// already hold node.Mu; Callbacks performs no locking of its own.
func New(node *graph.Node, requestID uint64, newState func() any) *Callbacks {
	return &Callbacks{node: node, requestID: requestID, newState: newState}
}

// StateGetter returns the persistent program state for this
// (node, requestID), creating it on first access. The returned value is
// shared across every call within the same Callbacks and persists across
// hops for the same (node, requestID) pair, per spec §4.4.
func (c *Callbacks) StateGetter() any {
	return c.node.ProgramState(c.requestID, c.newState)
}

// CacheValuePutter installs v as a cache value for this request at this
// node, making it visible to later CachedValuesGetter calls at the same
// node for the same request.
func (c *Callbacks) CacheValuePutter(v CacheValue) {
	c.node.PutCacheValue(c.requestID, v)
}

// CachedValuesGetter returns the cache values previously installed for
// this request at this node.
func (c *Callbacks) CachedValuesGetter() []CacheValue {
	raw := c.node.CacheValues(c.requestID)
	out := make([]CacheValue, len(raw))
	copy(out, raw)
	return out
}

// Forget discards the persistent program state and cache values for
// this (node, requestID), e.g. once a request's terminal message has
// been sent.
func (c *Callbacks) Forget() {
	c.node.ForgetProgramState(c.requestID)
}
