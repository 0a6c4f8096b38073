package shard

import (
	"context"
	"log/slog"
	"strconv"
	"testing"

	"github.com/shunpeizhang/weaver/clock"
	"github.com/shunpeizhang/weaver/graph"
	"github.com/shunpeizhang/weaver/nodeprog"
	"github.com/shunpeizhang/weaver/nodeprog/dijkstra"
	"github.com/stretchr/testify/require"
)

const testWeightKey uint32 = 100

func weightKey() string { return strconv.FormatUint(uint64(testWeightKey), 10) }

func addWeightedEdge(n *graph.Node, shardID, dstHandle, weight uint64) {
	e := n.AddEdge(graph.RemoteNode{ShardID: shardID, Handle: dstHandle}, clock.BeginningOfTime)
	e.AddProperty(weightKey(), strconv.FormatUint(weight, 10), clock.BeginningOfTime)
}

// driveLocally simulates a transport over a single Runtime: every hop
// not addressed to CoordinatorSink is redispatched on the same
// Runtime. It mirrors dijkstra's own driveToCompletion but exercises
// Runtime.Dispatch instead of calling dijkstra.Program directly.
func driveLocally(t *testing.T, rt *Runtime, reqID uint64, start dijkstra.Params) []dijkstra.Params {
	t.Helper()

	hops := []nodeprog.Hop[dijkstra.Params]{{Target: graph.RemoteNode{ShardID: rt.ShardID(), Handle: start.SrcHandle}, Params: start}}
	var results []dijkstra.Params

	for steps := 0; len(hops) > 0; steps++ {
		require.Less(t, steps, 1000, "runaway hop loop")

		hop := hops[0]
		hops = hops[1:]

		if IsCoordinatorSink(hop.Target) {
			results = append(results, hop.Params)
			continue
		}

		out, err := rt.Dispatch(context.Background(), reqID, hop.Target, hop.Params)
		require.NoError(t, err)
		hops = append(hops, out...)
	}

	return results
}

func TestRuntimeDispatchSingleEdgeShortestPath(t *testing.T) {
	rt := NewRuntime(0)
	defer rt.Close()

	a := rt.AddNode(1, clock.BeginningOfTime)
	rt.AddNode(2, clock.BeginningOfTime)
	addWeightedEdge(a, 0, 2, 5)

	start := dijkstra.Params{SrcHandle: 1, DstHandle: 2, EdgeWeightKey: testWeightKey}
	results := driveLocally(t, rt, 1000, start)

	require.Len(t, results, 1)
	require.Equal(t, uint64(5), results[0].Cost)
	require.Equal(t, []dijkstra.PathStep{{Handle: 2, Cost: 5}}, results[0].FinalPath)
}

func TestRuntimeDispatchMissingNodeTreatedAsDeleted(t *testing.T) {
	rt := NewRuntime(0)
	defer rt.Close()

	a := rt.AddNode(1, clock.BeginningOfTime)
	addWeightedEdge(a, 0, 999, 3) // 999 never added to this Runtime

	// Destination 2 is reachable only through the missing 999, so the
	// single candidate hop lands on 999 and bounces back as deleted.
	start := dijkstra.Params{SrcHandle: 1, DstHandle: 2, EdgeWeightKey: testWeightKey}
	results := driveLocally(t, rt, 1000, start)

	require.Len(t, results, 1)
	require.Empty(t, results[0].FinalPath)
	require.Equal(t, uint64(0), results[0].Cost)
}

func TestRuntimeDispatchSkipsTombstonedNode(t *testing.T) {
	rt := NewRuntime(0)
	defer rt.Close()

	a := rt.AddNode(1, clock.BeginningOfTime)
	b := rt.AddNode(2, clock.BeginningOfTime)
	rt.AddNode(3, clock.BeginningOfTime)
	addWeightedEdge(a, 0, 2, 3)
	addWeightedEdge(a, 0, 3, 7)

	b.MarkDeleted(clock.VClock(1))

	start := dijkstra.Params{SrcHandle: 1, DstHandle: 3, EdgeWeightKey: testWeightKey}
	results := driveLocally(t, rt, 1000, start)

	require.Len(t, results, 1)
	require.Equal(t, uint64(7), results[0].Cost)
}

func TestRuntimeDispatchHonorsWorkerCountAndLoggerOptions(t *testing.T) {
	rt := NewRuntime(0, WithWorkerCount(1), WithLogger(NewJSONLogger(slog.LevelError)))
	defer rt.Close()

	a := rt.AddNode(1, clock.BeginningOfTime)
	rt.AddNode(2, clock.BeginningOfTime)
	addWeightedEdge(a, 0, 2, 5)

	start := dijkstra.Params{SrcHandle: 1, DstHandle: 2, EdgeWeightKey: testWeightKey}
	results := driveLocally(t, rt, 1000, start)

	require.Len(t, results, 1)
	require.Equal(t, uint64(5), results[0].Cost)
	require.Equal(t, 1, rt.workerCount)
}

func TestRuntimeSubmitDeliversAsynchronously(t *testing.T) {
	rt := NewRuntime(0)
	defer rt.Close()

	a := rt.AddNode(1, clock.BeginningOfTime)
	rt.AddNode(2, clock.BeginningOfTime)
	addWeightedEdge(a, 0, 2, 5)

	start := dijkstra.Params{SrcHandle: 1, DstHandle: 2, EdgeWeightKey: testWeightKey}

	done := make(chan []nodeprog.Hop[dijkstra.Params], 1)
	err := rt.Submit(context.Background(), 1000, graph.RemoteNode{ShardID: 0, Handle: 1}, start, func(hops []nodeprog.Hop[dijkstra.Params]) {
		done <- hops
	})
	require.NoError(t, err)

	hops := <-done
	require.Len(t, hops, 1)
	require.True(t, IsCoordinatorSink(hops[0].Target))
	require.Equal(t, uint64(5), hops[0].Params.Cost)
}
