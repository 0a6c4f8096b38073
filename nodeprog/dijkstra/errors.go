package dijkstra

import "fmt"

// InvariantError reports a violation of the executor's own state-
// machine invariants — a heap pop referencing a handle absent from
// visited during path reconstruction, which should be unreachable
// given the dominance check in the select-next loop. The original
// underlying error (if any) can be accessed via errors.Unwrap.
type InvariantError struct {
	ReqID  uint64
	Handle uint64
	Reason string
	cause  error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("dijkstra: invariant violated for request %d at handle %d: %s", e.ReqID, e.Handle, e.Reason)
}

func (e *InvariantError) Unwrap() error { return e.cause }
