// Package dijkstra implements the distributed Dijkstra-family
// traversal program (weaver core component C5): generalized shortest-
// and widest-path search running as a replicated state machine across
// shards, one invocation per hop.
package dijkstra

import "github.com/shunpeizhang/weaver/graph"

// MaxCost is the widest-path sentinel for "no bottleneck yet" — the
// source's initial running cost in widest mode, so the source itself
// is never the bottleneck of its own path.
const MaxCost = ^uint64(0)

// Entry is a candidate (priority, location) pair produced at a remote
// node and carried back to the source for insertion into its heap.
type Entry struct {
	Cost uint64
	Node graph.RemoteNode
}

// PathStep is one hop of a reconstructed path. For widest paths Cost
// is the running aggregate cost at Handle; for shortest paths it is
// the edge cost into Handle.
type PathStep struct {
	Handle uint64
	Cost   uint64
}

// Params is the message payload carried between hops of a single
// traversal request — the mutable state a node program threads through
// the distributed state machine.
type Params struct {
	SrcHandle  uint64
	SourceNode graph.RemoteNode
	DstHandle  uint64

	// EdgeWeightKey selects the numeric edge property carrying the
	// weight to traverse with. Edge properties are keyed by string
	// (graph.Property.Key); WeightKey converts it.
	EdgeWeightKey uint32
	EdgeProps     []graph.Property
	IsWidestPath  bool

	// AddingNodes discriminates a message carrying neighbor
	// candidates accumulated at a remote node (true) from an initial
	// entry or deleted-target notice (false).
	AddingNodes bool

	PrevNode     uint64
	NextNode     uint64
	EntriesToAdd []Entry

	FinalPath []PathStep
	Cost      uint64
}

// WeightKey returns the string form of EdgeWeightKey, matching the
// string-keyed property representation graph.Edge stores.
func (p *Params) WeightKey() string {
	return weightKeyString(p.EdgeWeightKey)
}
