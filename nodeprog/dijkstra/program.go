package dijkstra

import (
	"github.com/shunpeizhang/weaver/clock"
	"github.com/shunpeizhang/weaver/graph"
	"github.com/shunpeizhang/weaver/nodeprog"
)

// Program is the node-program invocation: a pure function of the
// visiting node's mutable state, the request's traveling params, and
// the C4 capability object, returning the hop(s) to dispatch next.
// Caller must hold n.Mu. coordinator is where the terminal (success or
// failure) message is routed — the shard runtime's well-known
// coordinator sentinel.
func Program(reqID uint64, n *graph.Node, rn graph.RemoteNode, params Params, cb nodeprog.Callbacks, coordinator graph.RemoteNode) ([]nodeprog.Hop[Params], error) {
	if n.Handle == params.SrcHandle {
		return atSource(reqID, n, rn, params, cb, coordinator)
	}
	return atNonSource(reqID, n, params)
}

// DeletedNodeHook implements the deleted-target notice: a shard that
// could not find NextNode locally invokes this instead of Program,
// bouncing the request back to the source to resume at rule 3.
func DeletedNodeHook(params Params) nodeprog.Hop[Params] {
	params.AddingNodes = false
	return nodeprog.Hop[Params]{Target: params.SourceNode, Params: params}
}

func atNonSource(reqID uint64, n *graph.Node, params Params) ([]nodeprog.Hop[Params], error) {
	r := clock.VClock(reqID)
	weightKey := params.WeightKey()

	for _, e := range n.VisibleOutEdges(r, params.EdgeProps) {
		w, ok := e.GetPropertyValue(weightKey, r)
		if !ok {
			continue
		}
		priority := calculatePriority(params.Cost, w, params.IsWidestPath)
		params.EntriesToAdd = append(params.EntriesToAdd, Entry{Cost: priority, Node: e.Neighbor})
	}
	params.AddingNodes = true

	return []nodeprog.Hop[Params]{{Target: params.SourceNode, Params: params}}, nil
}

func atSource(reqID uint64, n *graph.Node, rn graph.RemoteNode, params Params, cb nodeprog.Callbacks, coordinator graph.RemoteNode) ([]nodeprog.Hop[Params], error) {
	state := cb.StateGetter().(*State)
	r := clock.VClock(reqID)

	if params.AddingNodes {
		// Rule 2: re-entry at source from a remote neighbor collection.
		for _, elem := range params.EntriesToAdd {
			state.push(params.IsWidestPath, queueElem{Cost: elem.Cost, Node: elem.Node, PrevHandle: params.NextNode})
		}
		params.EntriesToAdd = nil
		state.visited[params.NextNode] = visitedEntry{PrevHandle: params.PrevNode, Cost: params.Cost}
	} else if _, seen := state.visited[params.SrcHandle]; seen {
		// Rule 3: re-entry at source from a deleted-target notice.
		params.EntriesToAdd = nil
		params.AddingNodes = true
	} else {
		// Rule 1: first visit to source for this request.
		params.SourceNode = rn
		if params.IsWidestPath {
			params.Cost = MaxCost
		} else {
			params.Cost = 0
		}
		state.visited[params.SrcHandle] = visitedEntry{PrevHandle: params.SrcHandle, Cost: params.Cost}

		weightKey := params.WeightKey()
		for _, e := range n.VisibleOutEdges(r, params.EdgeProps) {
			w, ok := e.GetPropertyValue(weightKey, r)
			if !ok {
				continue
			}
			priority := calculatePriority(params.Cost, w, params.IsWidestPath)
			state.push(params.IsWidestPath, queueElem{Cost: priority, Node: e.Neighbor, PrevHandle: params.SrcHandle})
		}
		params.AddingNodes = true
	}

	return selectNext(reqID, state, params, coordinator)
}

// selectNext implements rule 4: pop the active heap until the
// destination is reached, a non-dominated candidate is found to
// propagate to, or the heap is exhausted.
func selectNext(reqID uint64, state *State, params Params, coordinator graph.RemoteNode) ([]nodeprog.Hop[Params], error) {
	for {
		elem, ok := state.pop(params.IsWidestPath)
		if !ok {
			break
		}

		params.Cost = elem.Cost
		params.NextNode = elem.Node.Handle
		params.PrevNode = elem.PrevHandle

		if params.NextNode == params.DstHandle {
			path, err := reconstructPath(reqID, state, params)
			if err != nil {
				params.FinalPath = nil
				params.Cost = 0
				return []nodeprog.Hop[Params]{{Target: coordinator, Params: params}}, err
			}
			params.FinalPath = path
			return []nodeprog.Hop[Params]{{Target: coordinator, Params: params}}, nil
		}

		if prior, ok := state.visited[params.NextNode]; ok {
			dominated := prior.Cost <= params.Cost
			if params.IsWidestPath {
				dominated = prior.Cost >= params.Cost
			}
			if dominated {
				continue
			}
		}

		return []nodeprog.Hop[Params]{{Target: elem.Node, Params: params}}, nil
	}

	// Heap exhausted: destination unreachable from here.
	params.FinalPath = nil
	params.Cost = 0
	return []nodeprog.Hop[Params]{{Target: coordinator, Params: params}}, nil
}

// reconstructPath walks visited back from DstHandle to SrcHandle.
func reconstructPath(reqID uint64, state *State, params Params) ([]PathStep, error) {
	var path []PathStep

	if params.IsWidestPath {
		path = append(path, PathStep{Handle: params.DstHandle, Cost: params.Cost})

		curNode := params.PrevNode
		entry, ok := state.visited[params.PrevNode]
		if !ok {
			return nil, &InvariantError{ReqID: reqID, Handle: params.PrevNode, Reason: "missing visited entry during widest-path reconstruction"}
		}
		for curNode != params.SrcHandle {
			path = append(path, PathStep{Handle: curNode, Cost: entry.Cost})
			curNode = entry.PrevHandle
			entry, ok = state.visited[curNode]
			if !ok {
				return nil, &InvariantError{ReqID: reqID, Handle: curNode, Reason: "missing visited entry during widest-path reconstruction"}
			}
		}
		return path, nil
	}

	oldCost := params.Cost
	oldNode := params.DstHandle
	curNode := params.PrevNode
	for oldNode != params.SrcHandle {
		entry, ok := state.visited[curNode]
		if !ok {
			return nil, &InvariantError{ReqID: reqID, Handle: curNode, Reason: "missing visited entry during shortest-path reconstruction"}
		}
		path = append(path, PathStep{Handle: oldNode, Cost: oldCost - entry.Cost})
		oldNode = curNode
		oldCost = entry.Cost
		curNode = entry.PrevHandle
	}
	return path, nil
}

// calculatePriority aggregates the running cost with a candidate
// edge's weight: additive for shortest path, max-min for widest path.
func calculatePriority(currentCost, edgeWeight uint64, isWidestPath bool) uint64 {
	if isWidestPath {
		if currentCost < edgeWeight {
			return currentCost
		}
		return edgeWeight
	}
	return currentCost + edgeWeight
}
