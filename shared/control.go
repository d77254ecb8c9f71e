package shared

import "sync/atomic"

// control is the out-of-line state shared by every handle that aliases one
// managed object. It holds the only payload pointer; handles never keep a
// copy of their own, so a handle can never disagree with the control block
// about which object it manages.
type control[T any] struct {
	refcnt   int32
	payload  *T
	finalize func(*T)
}

func newControl[T any](payload *T, finalize func(*T)) *control[T] {
	return &control[T]{
		refcnt:   1,
		payload:  payload,
		finalize: finalize,
	}
}

// acquire registers one more live handle. The caller must already hold a
// counted reference, so the count can never legitimately be observed at
// zero here.
func (c *control[T]) acquire() {
	if atomic.AddInt32(&c.refcnt, 1) <= 1 {
		panic("shared: acquire on a released control block")
	}
}

// release drops one live handle and reports whether this call was the last
// one. Exactly one caller gets true per control block, and only that caller
// finalizes: payload first, control state after, since nothing may touch
// the payload once finalization started.
//
// The decrement and the last-one test are a single atomic operation; the
// post-decrement value 0 is equivalent to a pre-decrement value of 1.
// sync/atomic read-modify-writes are sequentially consistent, so the
// finalizing goroutine observes every write made through the object before
// any other handle released its reference.
func (c *control[T]) release() bool {
	n := atomic.AddInt32(&c.refcnt, -1)
	if n > 0 {
		return false
	}
	if n < 0 {
		panic("shared: release on a released control block")
	}
	if c.finalize != nil {
		c.finalize(c.payload)
	}
	c.payload = nil
	c.finalize = nil
	return true
}

func (c *control[T]) useCount() int32 {
	return atomic.LoadInt32(&c.refcnt)
}
