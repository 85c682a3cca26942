package tusclient

import "sync/atomic"

// cancelReason distinguishes why a worker's context was cancelled, so it
// can land in the right terminal (or resumable) state.
type cancelReason int32

const (
	reasonNone cancelReason = iota
	reasonPause
	reasonCancel
)

// cancelSignal is shared between the manager and a worker's goroutine. The
// manager sets the reason before firing the context's cancel func; the
// worker reads it after observing ctx.Done().
type cancelSignal struct {
	reason atomic.Int32
}

func (c *cancelSignal) set(r cancelReason) {
	c.reason.Store(int32(r))
}

func (c *cancelSignal) get() cancelReason {
	return cancelReason(c.reason.Load())
}
