package dijkstra

import (
	"github.com/shunpeizhang/weaver/graph"
	"github.com/shunpeizhang/weaver/internal/queue"
)

// queueElem is a candidate node on a traversal frontier: the running
// cost to reach it, its location, and the handle of the node that
// queued it (its predecessor on the candidate path).
type queueElem struct {
	Cost       uint64
	Node       graph.RemoteNode
	PrevHandle uint64
}

// visitedEntry records, for a node already confirmed on the frontier,
// the handle that preceded it and the running cost at which it was
// reached.
type visitedEntry struct {
	PrevHandle uint64
	Cost       uint64
}

// State is the per-(node,request) program state for a single Dijkstra
// traversal, persisted across hops via progstate (C4). It carries both
// the ascending (shortest) and descending (widest) frontiers; a given
// request only ever drives one of the two, selected by
// Params.IsWidestPath.
type State struct {
	pqShortest *queue.PriorityQueue
	pqWidest   *queue.PriorityQueue
	visited    map[uint64]visitedEntry
}

// NewState constructs empty Dijkstra program state. Pass this as the
// newState constructor to progstate.Callbacks / graph.Node.ProgramState.
func NewState() any {
	return &State{
		pqShortest: queue.New(false),
		pqWidest:   queue.New(true),
		visited:    make(map[uint64]visitedEntry),
	}
}

func (s *State) heap(widest bool) *queue.PriorityQueue {
	if widest {
		return s.pqWidest
	}
	return s.pqShortest
}

func (s *State) push(widest bool, e queueElem) {
	s.heap(widest).PushItem(e.Cost, e)
}

// pop returns the next candidate off the active heap, or false if that
// heap is empty.
func (s *State) pop(widest bool) (queueElem, bool) {
	item := s.heap(widest).PopItem()
	if item == nil {
		return queueElem{}, false
	}
	return item.Value.(queueElem), true
}

func (s *State) empty() bool {
	return s.pqShortest.Empty() && s.pqWidest.Empty()
}
