package graph

import (
	"sync"

	"github.com/shunpeizhang/weaver/clock"
)

// Node owns a collection of outgoing edges keyed by a numeric edge
// handle (a map, so it has no defined order), plus the creation clock that also serves as the node's
// logical identity in program terms (spec §3: "the node's logical
// identity/handle in the program sense").
//
// Mu guards all mutable state below, including reads: callers in this
// package assume Mu is already held (spec §4.1, "All reads require the
// caller to hold the node's update mutex").
type Node struct {
	Mu sync.Mutex

	Handle    uint64
	CreatTime clock.VClock
	DelTime   clock.VClock
	deleted   bool

	outEdges map[uint64]*Edge
	nextEdge uint64

	// programState holds per-(requestID) program state, owned by C4
	// (package progstate) but physically stored on the node per spec §3.
	programState map[uint64]any

	// cacheValues holds per-request cache values installed via C4's
	// cache_value_putter, retrievable by cached_values_getter.
	cacheValues map[uint64][]any
}

// NewNode creates a live node installed at creat.
func NewNode(handle uint64, creat clock.VClock) *Node {
	return &Node{
		Handle:       handle,
		CreatTime:    creat,
		DelTime:      clock.EndOfTime,
		outEdges:     make(map[uint64]*Edge),
		programState: make(map[uint64]any),
		cacheValues:  make(map[uint64][]any),
	}
}

// MarkDeleted tombstones the node at del. Per spec §3, deletion never
// removes the node; it only updates DelTime.
func (n *Node) MarkDeleted(del clock.VClock) {
	n.DelTime = del
	n.deleted = true
}

// VisibleAt reports whether the node is live at r. Caller must hold Mu.
func (n *Node) VisibleAt(r clock.VClock) bool {
	del := n.DelTime
	if !n.deleted {
		del = clock.EndOfTime
	}
	return clock.Live(n.CreatTime, del, r)
}

// AddEdge appends a new outgoing edge and returns its handle. Caller
// must hold Mu.
func (n *Node) AddEdge(neighbor RemoteNode, creat clock.VClock) *Edge {
	h := n.nextEdge
	n.nextEdge++
	e := NewEdge(h, neighbor, creat)
	n.outEdges[h] = e
	return e
}

// Edge returns the outgoing edge with the given handle, if any. Caller
// must hold Mu.
func (n *Node) Edge(handle uint64) (*Edge, bool) {
	e, ok := n.outEdges[handle]
	return e, ok
}

// IterOutEdges calls fn once per outgoing edge. Iteration order is the
// Go map's, which can differ from one call to the next, even within a
// run. Caller must hold Mu.
func (n *Node) IterOutEdges(fn func(*Edge)) {
	for _, e := range n.outEdges {
		fn(e)
	}
}

// VisibleOutEdges returns the outgoing edges visible at r and matching
// every predicate in props (spec §3, "an edge is visible at request
// clock R iff creat_time <= R < del_time and all requested predicate
// properties exist on it"). Caller must hold Mu.
func (n *Node) VisibleOutEdges(r clock.VClock, props []Property) []*Edge {
	var out []*Edge
	n.IterOutEdges(func(e *Edge) {
		if e.VisibleAt(r) && e.MatchesAll(props) {
			out = append(out, e)
		}
	})
	return out
}

// ProgramState returns the stored per-(node,request) program state,
// creating it via newState on first access. Caller must hold Mu. This
// backs progstate.Callbacks.StateGetter.
func (n *Node) ProgramState(requestID uint64, newState func() any) any {
	if s, ok := n.programState[requestID]; ok {
		return s
	}
	s := newState()
	n.programState[requestID] = s
	return s
}

// ForgetProgramState discards state for a request, e.g. after its
// terminal message has been sent (spec §3, "may be garbage-collected
// after the terminal message"). Caller must hold Mu.
func (n *Node) ForgetProgramState(requestID uint64) {
	delete(n.programState, requestID)
	delete(n.cacheValues, requestID)
}

// PutCacheValue appends v to the cache values installed for requestID at
// this node. Caller must hold Mu.
func (n *Node) PutCacheValue(requestID uint64, v any) {
	n.cacheValues[requestID] = append(n.cacheValues[requestID], v)
}

// CacheValues returns the cache values previously installed for
// requestID at this node. Caller must hold Mu.
func (n *Node) CacheValues(requestID uint64) []any {
	return n.cacheValues[requestID]
}
