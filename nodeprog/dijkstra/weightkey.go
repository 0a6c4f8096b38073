package dijkstra

import "strconv"

// weightKeyString converts the wire-level u32 edge weight key (spec
// §4.5) to the string key graph.Property/graph.Edge use. The two
// representations diverge only at this boundary.
func weightKeyString(key uint32) string {
	return strconv.FormatUint(uint64(key), 10)
}
