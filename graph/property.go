package graph

import (
	"strconv"

	"github.com/shunpeizhang/weaver/clock"
)

// Property is a (key, value) pair carried by an Edge, time-stamped with
// the clock at which it was installed and, optionally, removed.
//
// Equality and Hash depend only on Key and Value; CreatTime/DelTime never
// participate, matching the source's property_key_hasher (hashes the key
// alone) and operator== (compares key and value alone).
type Property struct {
	Key   string
	Value string

	CreatTime clock.VClock
	DelTime   clock.VClock // clock.EndOfTime while live
	deleted   bool
}

// NewProperty creates a live property installed at creat.
func NewProperty(key, value string, creat clock.VClock) Property {
	return Property{
		Key:       key,
		Value:     value,
		CreatTime: creat,
		DelTime:   clock.EndOfTime,
	}
}

// Equal reports key+value equality, ignoring timestamps.
func (p Property) Equal(other Property) bool {
	return p.Key == other.Key && p.Value == other.Value
}

// Hash returns a hash that depends only on Key, matching the source's
// property_key_hasher.
func (p Property) Hash() uint64 {
	return fnv64(p.Key)
}

// IsDeleted reports whether DelTime has been set.
func (p Property) IsDeleted() bool {
	return p.deleted
}

// MarkDeleted sets DelTime. Per spec §3, once set it should only be
// overwritten by a strictly later clock; this is a recommendation the
// source does not enforce, so MarkDeleted does not enforce it either.
func (p *Property) MarkDeleted(del clock.VClock) {
	p.DelTime = del
	p.deleted = true
}

// VisibleAt reports whether the property is live at clock r.
func (p Property) VisibleAt(r clock.VClock) bool {
	del := p.DelTime
	if !p.deleted {
		del = clock.EndOfTime
	}
	return clock.Live(p.CreatTime, del, r)
}

// Uint64Value parses Value as an unsigned decimal integer. ok is false if
// Value is not a valid number.
func (p Property) Uint64Value() (uint64, bool) {
	v, err := strconv.ParseUint(p.Value, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// fnv64 is a tiny non-cryptographic string hash (FNV-1a), used only to
// mirror the source's "hash depends on key alone" invariant; it is not
// exposed for any consistency guarantee beyond that.
func fnv64(s string) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}
