package namemap

import "errors"

// ErrBatchFailed is returned by GetMappings when any completion in the
// batch fails, per the "if any loop completion fails, the batch
// returns empty" contract. It is also what MemoryStore.Drain returns
// when there is nothing pending to drain.
var ErrBatchFailed = errors.New("namemap: batch completion failed")
