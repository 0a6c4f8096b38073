// Package clock provides the vector-clock handle compared throughout the
// graph core. Clock generation lives outside this module (spec §1,
// "Out of scope"); this package only represents and compares the handles
// it is given.
package clock

import "fmt"

// VClock is an opaque, totally-ordered timestamp handle. The core never
// generates one; it only compares handles supplied by the caller with a
// request.
//
// Two sentinels are reserved: BeginningOfTime (0) and EndOfTime (max
// uint64). A live entity satisfies Creat <= now < Del.
type VClock uint64

const (
	// BeginningOfTime is the sentinel for "always existed".
	BeginningOfTime VClock = 0

	// EndOfTime is the sentinel for "never deleted".
	EndOfTime VClock = ^VClock(0)
)

// LessEqual reports whether v happened no later than other.
func (v VClock) LessEqual(other VClock) bool {
	return v <= other
}

// Less reports whether v happened strictly before other.
func (v VClock) Less(other VClock) bool {
	return v < other
}

// Live reports whether the half-open interval [creat, del) contains now.
func Live(creat, del, now VClock) bool {
	return creat.LessEqual(now) && now.Less(del)
}

func (v VClock) String() string {
	switch v {
	case BeginningOfTime:
		return "VClock(beginning)"
	case EndOfTime:
		return "VClock(end)"
	default:
		return fmt.Sprintf("VClock(%d)", uint64(v))
	}
}
