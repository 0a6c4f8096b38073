package shard

import "github.com/shunpeizhang/weaver/nodeprog/dijkstra"

// ResultSink receives a traversal's terminal message. A real
// coordinator implements this; ChannelResultSink below is a trivial
// channel-backed implementation (SPEC_FULL.md §6).
type ResultSink interface {
	OnResult(requestID uint64, params dijkstra.Params)
}

// ChannelResultSink is a minimal ResultSink that forwards every result
// onto a channel, for tests.
type ChannelResultSink struct {
	Results chan dijkstra.Params
}

// NewChannelResultSink creates a ChannelResultSink with the given
// buffer size.
func NewChannelResultSink(buffer int) *ChannelResultSink {
	return &ChannelResultSink{Results: make(chan dijkstra.Params, buffer)}
}

// OnResult implements ResultSink.
func (s *ChannelResultSink) OnResult(requestID uint64, params dijkstra.Params) {
	s.Results <- params
}
