// Package graph implements the in-shard, versioned representation of a
// node and its outgoing edges (weaver core component C1).
//
// Readers observe a consistent snapshot of a node's edges and properties
// at a request's clock: visible_at(entity, R) holds iff creat <= R < del.
// None of the read operations in this package fail; absent entities
// simply return empty results. Every read here assumes the caller already
// holds the owning Node's mutex (see the shard package for the dispatch
// loop that acquires it).
package graph
