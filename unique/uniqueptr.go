// Package unique provides a move-only single-owner handle: the degenerate
// form of the shared-ownership discipline with no reference count at all.
// Ownership only ever transfers, so there is nothing to count and nothing
// to synchronize.
package unique

// Ptr owns at most one payload. There is deliberately no Clone or CopyFrom;
// ownership moves, it is never shared. The zero value is the empty handle.
type Ptr[T any] struct {
	payload  *T
	finalize func(*T)
}

// New takes ownership of payload. finalize, if non-nil, runs when the
// handle finalizes the payload through Reset or MoveFrom.
func New[T any](payload *T, finalize func(*T)) Ptr[T] {
	return Ptr[T]{payload: payload, finalize: finalize}
}

// Move transfers ownership into the returned handle and empties p.
func (p *Ptr[T]) Move() Ptr[T] {
	moved := *p
	p.payload = nil
	p.finalize = nil
	return moved
}

// MoveFrom finalizes p's current payload, steals other's, and empties
// other. Moving a handle into itself is a no-op.
func (p *Ptr[T]) MoveFrom(other *Ptr[T]) {
	if p == other {
		return
	}
	p.Reset()
	*p = other.Move()
}

// Reset finalizes the payload and empties the handle.
func (p *Ptr[T]) Reset() {
	if p.payload != nil && p.finalize != nil {
		p.finalize(p.payload)
	}
	p.payload = nil
	p.finalize = nil
}

// Release disowns the payload without finalizing it and returns it to the
// caller, who takes over its lifetime.
func (p *Ptr[T]) Release() *T {
	payload := p.payload
	p.payload = nil
	p.finalize = nil
	return payload
}

// Get returns the owned payload, or nil for the empty handle.
func (p Ptr[T]) Get() *T {
	return p.payload
}

// Deref returns the owned value. Deref on the empty handle is a
// caller-contract violation.
func (p Ptr[T]) Deref() T {
	return *p.payload
}

// IsNil reports whether the handle is empty.
func (p Ptr[T]) IsNil() bool {
	return p.payload == nil
}
