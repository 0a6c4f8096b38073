// Package namemap implements the batched, pipelined name-map client
// (weaver core component C2): resolution of node handles to the shard
// that currently owns them, against an external key-value store.
//
// Space and attribute naming are frozen per the wire contract: space
// SpaceName, attribute AttrName, both 8-byte little-endian values.
package namemap

import "context"

// SpaceName is the KV space backing the name map.
const SpaceName = "weaver_loc_mapping"

// AttrName is the single attribute holding a handle's owning shard id.
const AttrName = "shard"

// Completion is the result of a single previously submitted operation,
// drained in the order its op was submitted.
type Completion struct {
	OpID int64

	// Key is the handle the completed operation addressed.
	Key [8]byte

	// Attr holds the shard id for a successful Get; zero otherwise.
	Attr [8]byte

	// Found reports whether a Get completion located exactly one
	// 8-byte attribute. Always true for a successful Put/Del.
	Found bool

	// Err is non-nil if this operation failed.
	Err error
}

// Store is the asynchronous, pipelined KV backend a Client drives.
// Implementations submit an operation and return immediately with an
// opaque op id; Drain blocks until the oldest outstanding operation
// completes and returns its result. Submit order and drain order must
// match: this is what lets a Client submit N operations back-to-back
// and then drain exactly N completions.
type Store interface {
	Put(ctx context.Context, key, attr [8]byte) (opID int64, err error)
	Get(ctx context.Context, key [8]byte) (opID int64, err error)
	Del(ctx context.Context, key [8]byte) (opID int64, err error)

	// Drain blocks for the next completion, in submission order.
	Drain(ctx context.Context) (Completion, error)

	// CleanUpSpace drops the entire backing space. Administrative,
	// optional; not on the pipelined submit/drain path.
	CleanUpSpace(ctx context.Context) error
}

// EncodeHandle encodes a node handle as an 8-byte little-endian key.
func EncodeHandle(handle uint64) [8]byte {
	return encodeUint64(handle)
}

// DecodeHandle decodes an 8-byte little-endian key back to a handle.
func DecodeHandle(key [8]byte) uint64 {
	return decodeUint64(key)
}

// EncodeShard encodes a shard id as an 8-byte little-endian attribute.
func EncodeShard(shardID uint64) [8]byte {
	return encodeUint64(shardID)
}

// DecodeShard decodes an 8-byte little-endian attribute back to a
// shard id.
func DecodeShard(attr [8]byte) uint64 {
	return decodeUint64(attr)
}
