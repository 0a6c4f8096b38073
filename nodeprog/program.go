// Package nodeprog defines the node-program ABI shared by every
// traversal program a shard can run: the capability object a program
// receives for per-(node,request) state (C4), and the shape of a hop
// it emits.
package nodeprog

import "github.com/shunpeizhang/weaver/graph"

// Callbacks is the capability object a node program receives for a
// single (node, request) invocation. It is satisfied by
// *progstate.Callbacks; programs depend on this interface rather than
// the concrete type so they can be tested against a fake.
type Callbacks interface {
	StateGetter() any
	CacheValuePutter(v any)
	CachedValuesGetter() []any
}

// Hop is a single outbound message a node program emits after an
// invocation: route Params to Target, where the program (or the
// deleted-node hook, if Target no longer exists there) runs again on
// arrival.
type Hop[P any] struct {
	Target graph.RemoteNode
	Params P
}
