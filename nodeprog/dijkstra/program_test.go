package dijkstra

import (
	"strconv"
	"testing"

	"github.com/shunpeizhang/weaver/clock"
	"github.com/shunpeizhang/weaver/graph"
	"github.com/shunpeizhang/weaver/nodeprog"
	"github.com/shunpeizhang/weaver/progstate"
	"github.com/stretchr/testify/require"
)

const testWeightKey uint32 = 100

func newTestNode(handle uint64) *graph.Node {
	return graph.NewNode(handle, clock.BeginningOfTime)
}

func addWeightedEdge(n *graph.Node, dstHandle uint64, weight uint64, extra ...graph.Property) {
	e := n.AddEdge(graph.RemoteNode{Handle: dstHandle}, clock.BeginningOfTime)
	e.AddProperty(weightKeyString(testWeightKey), strconv.FormatUint(weight, 10), clock.BeginningOfTime)
	for _, p := range extra {
		e.AddProperty(p.Key, p.Value, clock.BeginningOfTime)
	}
}

// driveToCompletion simulates the hop-by-hop dispatch a shard runtime
// performs, routing each emitted hop either to the in-test node graph
// or, if the target handle is absent/marked deleted, to the
// deleted-node hook. It returns every Params delivered to the
// coordinator sentinel.
func driveToCompletion(t *testing.T, reqID uint64, nodes map[uint64]*graph.Node, deleted map[uint64]bool, start Params) []Params {
	t.Helper()

	coordinator := graph.RemoteNode{Handle: 1337}
	hops := []nodeprog.Hop[Params]{{Target: graph.RemoteNode{Handle: start.SrcHandle}, Params: start}}
	var results []Params

	for steps := 0; len(hops) > 0; steps++ {
		require.Less(t, steps, 1000, "runaway hop loop")

		hop := hops[0]
		hops = hops[1:]

		if hop.Target == coordinator {
			results = append(results, hop.Params)
			continue
		}

		n, ok := nodes[hop.Target.Handle]
		if !ok || deleted[hop.Target.Handle] {
			hops = append(hops, DeletedNodeHook(hop.Params))
			continue
		}

		n.Mu.Lock()
		cb := progstate.New(n, reqID, NewState)
		out, err := Program(reqID, n, hop.Target, hop.Params, cb, coordinator)
		n.Mu.Unlock()

		require.NoError(t, err)
		hops = append(hops, out...)
	}

	return results
}

func TestSingleEdgeShortestPath(t *testing.T) {
	a := newTestNode(1)
	b := newTestNode(2)
	addWeightedEdge(a, 2, 5)

	nodes := map[uint64]*graph.Node{1: a, 2: b}
	start := Params{SrcHandle: 1, DstHandle: 2, EdgeWeightKey: testWeightKey}

	results := driveToCompletion(t, 1000, nodes, nil, start)
	require.Len(t, results, 1)
	require.Equal(t, uint64(5), results[0].Cost)
	require.Equal(t, []PathStep{{Handle: 2, Cost: 5}}, results[0].FinalPath)
}

func TestTriangleDiversionShortestPath(t *testing.T) {
	a := newTestNode(1)
	b := newTestNode(2)
	c := newTestNode(3)
	addWeightedEdge(a, 2, 10)
	addWeightedEdge(a, 3, 1)
	addWeightedEdge(c, 2, 1)

	nodes := map[uint64]*graph.Node{1: a, 2: b, 3: c}
	start := Params{SrcHandle: 1, DstHandle: 2, EdgeWeightKey: testWeightKey}

	results := driveToCompletion(t, 1000, nodes, nil, start)
	require.Len(t, results, 1)
	require.Equal(t, uint64(2), results[0].Cost)
	require.Equal(t, []PathStep{{Handle: 2, Cost: 1}, {Handle: 3, Cost: 1}}, results[0].FinalPath)
}

func TestWidestPathPrefersLargerBottleneck(t *testing.T) {
	a := newTestNode(1)
	b := newTestNode(2)
	c := newTestNode(3)
	addWeightedEdge(a, 2, 3)
	addWeightedEdge(a, 3, 10)
	addWeightedEdge(c, 2, 4)

	nodes := map[uint64]*graph.Node{1: a, 2: b, 3: c}
	start := Params{SrcHandle: 1, DstHandle: 2, EdgeWeightKey: testWeightKey, IsWidestPath: true}

	results := driveToCompletion(t, 1000, nodes, nil, start)
	require.Len(t, results, 1)
	require.Equal(t, uint64(4), results[0].Cost)
	require.Equal(t, []PathStep{{Handle: 2, Cost: 4}, {Handle: 3, Cost: 10}}, results[0].FinalPath)
}

func TestFilteredEdgesExcludeNonMatchingPredicates(t *testing.T) {
	a := newTestNode(1)
	b := newTestNode(2)
	// Edge carries the weight but not the required predicate property.
	addWeightedEdge(a, 2, 1, graph.NewProperty("tier", "basic", clock.BeginningOfTime))

	nodes := map[uint64]*graph.Node{1: a, 2: b}
	start := Params{
		SrcHandle:     1,
		DstHandle:     2,
		EdgeWeightKey: testWeightKey,
		EdgeProps:     []graph.Property{graph.NewProperty("tier", "premium", clock.BeginningOfTime)},
	}

	results := driveToCompletion(t, 1000, nodes, nil, start)
	require.Len(t, results, 1)
	require.Empty(t, results[0].FinalPath)
	require.Equal(t, uint64(0), results[0].Cost)
}

func TestDeletedNodeMidFlightIsSkipped(t *testing.T) {
	a := newTestNode(1)
	b := newTestNode(2) // will be reported deleted when visited
	c := newTestNode(3)
	d := newTestNode(4)
	addWeightedEdge(a, 2, 3)
	addWeightedEdge(a, 3, 7)
	addWeightedEdge(c, 4, 2)

	nodes := map[uint64]*graph.Node{1: a, 2: b, 3: c, 4: d}
	deleted := map[uint64]bool{2: true}
	start := Params{SrcHandle: 1, DstHandle: 4, EdgeWeightKey: testWeightKey}

	results := driveToCompletion(t, 1000, nodes, deleted, start)
	require.Len(t, results, 1)
	require.Equal(t, uint64(9), results[0].Cost)
	require.Equal(t, []PathStep{{Handle: 4, Cost: 2}, {Handle: 3, Cost: 7}}, results[0].FinalPath)
}

func TestUnreachableDestinationReturnsEmptyPath(t *testing.T) {
	a := newTestNode(1)

	nodes := map[uint64]*graph.Node{1: a}
	start := Params{SrcHandle: 1, DstHandle: 999, EdgeWeightKey: testWeightKey}

	results := driveToCompletion(t, 1000, nodes, nil, start)
	require.Len(t, results, 1)
	require.Empty(t, results[0].FinalPath)
	require.Equal(t, uint64(0), results[0].Cost)
}
