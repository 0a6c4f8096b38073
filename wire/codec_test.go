package wire

import (
	"testing"

	"github.com/shunpeizhang/weaver/clock"
	"github.com/shunpeizhang/weaver/graph"
	"github.com/shunpeizhang/weaver/nodeprog/dijkstra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVClockRoundTrip(t *testing.T) {
	buf := PackVClock(nil, clock.VClock(42))
	require.Len(t, buf, SizeVClock())

	got, rest, err := UnpackVClock(buf)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, clock.VClock(42), got)
}

func TestRemoteNodeRoundTrip(t *testing.T) {
	rn := graph.RemoteNode{ShardID: 7, Handle: 99}
	buf := PackRemoteNode(nil, rn)
	require.Len(t, buf, SizeRemoteNode())

	got, rest, err := UnpackRemoteNode(buf)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, rn, got)
}

func TestPropertyRoundTrip(t *testing.T) {
	p := graph.NewProperty("weight", "12", clock.VClock(5))
	buf := PackProperty(nil, p)
	require.Len(t, buf, SizeProperty(p))

	got, rest, err := UnpackProperty(buf)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.True(t, p.Equal(got))
	assert.Equal(t, p.CreatTime, got.CreatTime)
	assert.Equal(t, p.DelTime, got.DelTime)
	assert.False(t, got.IsDeleted())
}

func TestDeletedPropertyRoundTripPreservesDeletion(t *testing.T) {
	p := graph.NewProperty("weight", "12", clock.VClock(5))
	p.MarkDeleted(clock.VClock(10))

	buf := PackProperty(nil, p)
	got, _, err := UnpackProperty(buf)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted())
	assert.Equal(t, clock.VClock(10), got.DelTime)
}

func TestParamsRoundTrip(t *testing.T) {
	p := dijkstra.Params{
		SrcHandle:     1,
		SourceNode:    graph.RemoteNode{ShardID: 0, Handle: 1},
		DstHandle:     2,
		EdgeWeightKey: 100,
		EdgeProps:     []graph.Property{graph.NewProperty("tier", "premium", clock.BeginningOfTime)},
		IsWidestPath:  true,
		AddingNodes:   true,
		PrevNode:      1,
		NextNode:      3,
		EntriesToAdd: []dijkstra.Entry{
			{Cost: 5, Node: graph.RemoteNode{ShardID: 1, Handle: 4}},
		},
		FinalPath: []dijkstra.PathStep{
			{Handle: 2, Cost: 4},
			{Handle: 3, Cost: 10},
		},
		Cost: 4,
	}

	buf := PackParams(nil, p)
	require.Len(t, buf, SizeParams(p))

	got, rest, err := UnpackParams(buf)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, p.SrcHandle, got.SrcHandle)
	assert.Equal(t, p.SourceNode, got.SourceNode)
	assert.Equal(t, p.DstHandle, got.DstHandle)
	assert.Equal(t, p.EdgeWeightKey, got.EdgeWeightKey)
	assert.Equal(t, p.IsWidestPath, got.IsWidestPath)
	assert.Equal(t, p.AddingNodes, got.AddingNodes)
	assert.Equal(t, p.PrevNode, got.PrevNode)
	assert.Equal(t, p.NextNode, got.NextNode)
	assert.Equal(t, p.EntriesToAdd, got.EntriesToAdd)
	assert.Equal(t, p.FinalPath, got.FinalPath)
	assert.Equal(t, p.Cost, got.Cost)
	require.Len(t, got.EdgeProps, 1)
	assert.True(t, p.EdgeProps[0].Equal(got.EdgeProps[0]))
}

func TestParamsRoundTripEmptySlices(t *testing.T) {
	p := dijkstra.Params{SrcHandle: 1, DstHandle: 2, EdgeWeightKey: 1}

	buf := PackParams(nil, p)
	got, rest, err := UnpackParams(buf)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Empty(t, got.EdgeProps)
	assert.Empty(t, got.EntriesToAdd)
	assert.Empty(t, got.FinalPath)
}

func TestEnvelopeRoundTripUncompressed(t *testing.T) {
	payload := []byte("short payload")
	env, err := EncodeEnvelope(payload, CompressionNone)
	require.NoError(t, err)

	got, err := DecodeEnvelope(env)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestEnvelopeRoundTripLZ4(t *testing.T) {
	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = byte(i % 7) // compressible pattern
	}

	env, err := EncodeEnvelope(payload, CompressionLZ4)
	require.NoError(t, err)
	assert.Less(t, len(env), len(payload))

	got, err := DecodeEnvelope(env)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestEnvelopeUnknownTagRejected(t *testing.T) {
	_, err := EncodeEnvelope([]byte("x"), CompressionType(99))
	assert.ErrorIs(t, err, ErrUnknownTag)
}
