package graph

import "github.com/shunpeizhang/weaver/clock"

// RemoteNode is a location-addressable reference to a node: the shard it
// lives on and its handle on that shard. It is a pure value — freely
// copyable, and never owns the node it names.
type RemoteNode struct {
	ShardID uint64
	Handle  uint64
}

// Edge is an outgoing edge from some Node to a RemoteNode neighbor. It
// carries a set of properties (by key+value), a creation clock, and a
// deletion clock (clock.EndOfTime while live).
type Edge struct {
	Handle    uint64
	Neighbor  RemoteNode
	Props     []Property
	CreatTime clock.VClock
	DelTime   clock.VClock
	deleted   bool
}

// NewEdge creates a live edge installed at creat, pointing at neighbor.
func NewEdge(handle uint64, neighbor RemoteNode, creat clock.VClock) *Edge {
	return &Edge{
		Handle:    handle,
		Neighbor:  neighbor,
		CreatTime: creat,
		DelTime:   clock.EndOfTime,
	}
}

// MarkDeleted tombstones the edge at del.
func (e *Edge) MarkDeleted(del clock.VClock) {
	e.DelTime = del
	e.deleted = true
}

// VisibleAt reports whether the edge itself is live at r. It does not
// check predicate properties; see HasProperty for that.
func (e *Edge) VisibleAt(r clock.VClock) bool {
	del := e.DelTime
	if !e.deleted {
		del = clock.EndOfTime
	}
	return clock.Live(e.CreatTime, del, r)
}

// AddProperty installs a new property on the edge, live from creat.
func (e *Edge) AddProperty(key, value string, creat clock.VClock) {
	e.Props = append(e.Props, NewProperty(key, value, creat))
}

// HasProperty reports whether a property equal to predicate (by key and
// value) exists on the edge. Per spec §4.1, this check ignores
// timestamps entirely — it matches the source's has_property, which
// compares only key/value equality, not visibility.
func (e *Edge) HasProperty(predicate Property) bool {
	for _, p := range e.Props {
		if p.Equal(predicate) {
			return true
		}
	}
	return false
}

// MatchesAll reports whether the edge carries every property in
// predicates (by key+value), used to filter candidate edges against a
// traversal's edge_props.
func (e *Edge) MatchesAll(predicates []Property) bool {
	for _, pred := range predicates {
		if !e.HasProperty(pred) {
			return false
		}
	}
	return true
}

// GetPropertyValue returns the parsed numeric value of the first property
// with the given key that is visible at r. If several such properties
// coexist visibly, returning the first one found matches source
// behavior.
func (e *Edge) GetPropertyValue(key string, r clock.VClock) (uint64, bool) {
	for _, p := range e.Props {
		if p.Key != key {
			continue
		}
		if !p.VisibleAt(r) {
			continue
		}
		if v, ok := p.Uint64Value(); ok {
			return v, true
		}
	}
	return 0, false
}
