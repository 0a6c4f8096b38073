// Package reach implements the per-shard reachability cache (weaver core
// component C3): a concurrency-safe memoization of "local node can reach
// destination" facts, invalidated by request id.
package reach
