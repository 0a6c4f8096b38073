// Package shard provides the runtime/wiring layer that turns a
// name-resolved hop into a node-program invocation: it owns a shard's
// local nodes, dispatches inbound hops to the Dijkstra program under
// the target node's mutex, and routes the outbound hops the program
// produces (weaver core's §5 concurrency/resource model, expressed as
// a concrete in-process runtime rather than left abstract).
package shard

import "github.com/shunpeizhang/weaver/graph"

// CoordID is the well-known shard ID reserved for the coordinator that
// issued a traversal request. It never names a real graph shard.
const CoordID uint64 = ^uint64(0)

// CoordHandle is the well-known node handle a Dijkstra program targets
// to report progress or a terminal result back to its coordinator
// (SPEC_FULL.md §6, "the well-known RemoteNode{ShardID: CoordID, Handle:
// 1337} sentinel").
const CoordHandle uint64 = 1337

// CoordinatorSink is the sentinel RemoteNode every Dijkstra hop destined
// for the coordinator addresses, rather than a real shard-local node.
var CoordinatorSink = graph.RemoteNode{ShardID: CoordID, Handle: CoordHandle}

// IsCoordinatorSink reports whether rn names the coordinator sentinel.
func IsCoordinatorSink(rn graph.RemoteNode) bool {
	return rn == CoordinatorSink
}
