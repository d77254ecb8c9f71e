package shared

// Ptr is a shared-ownership handle to one managed object. Every live handle
// holds one reference in the object's control block; the handle whose
// release drives the count to zero finalizes the payload.
//
// Distinct handles aliasing the same object may be cloned, assigned, moved
// and reset freely from concurrent goroutines. A single Ptr value is a
// plain value like any other: mutating it from two goroutines at once
// requires external synchronization. The payload itself is not protected
// by the handle either way.
//
// The zero value is the empty handle.
type Ptr[T any] struct {
	ctrl *control[T]
}

// New takes ownership of payload and returns a handle with a use count of
// one. A nil payload yields the empty handle and allocates nothing.
// finalize, if non-nil, runs exactly once when the last handle releases
// its reference, before the control block is dropped.
func New[T any](payload *T, finalize func(*T)) Ptr[T] {
	if payload == nil {
		return Ptr[T]{}
	}
	return Ptr[T]{ctrl: newControl(payload, finalize)}
}

// Clone returns a new handle sharing ownership with p. Cloning the empty
// handle yields the empty handle.
func (p *Ptr[T]) Clone() Ptr[T] {
	if p.ctrl == nil {
		return Ptr[T]{}
	}
	p.ctrl.acquire()
	return Ptr[T]{ctrl: p.ctrl}
}

// CopyFrom replaces p's target with other's, sharing ownership. The source
// is acquired before the old target is released, so p.CopyFrom(p) and
// assignment between two handles of the same object are safe even without
// the identity short-circuit.
func (p *Ptr[T]) CopyFrom(other *Ptr[T]) {
	if p == other {
		return
	}
	if other.ctrl != nil {
		other.ctrl.acquire()
	}
	old := p.ctrl
	p.ctrl = other.ctrl
	if old != nil {
		old.release()
	}
}

// Move transfers p's target into the returned handle and empties p. The
// use count does not change; no atomic traffic occurs.
func (p *Ptr[T]) Move() Ptr[T] {
	moved := Ptr[T]{ctrl: p.ctrl}
	p.ctrl = nil
	return moved
}

// MoveFrom releases p's current target, steals other's, and empties other.
// Moving a handle into itself is a no-op.
func (p *Ptr[T]) MoveFrom(other *Ptr[T]) {
	if p == other {
		return
	}
	if p.ctrl != nil {
		p.ctrl.release()
	}
	p.ctrl = other.ctrl
	other.ctrl = nil
}

// Reset releases p's reference and empties the handle. If this was the
// last reference the payload is finalized. Reset on the empty handle is a
// no-op.
func (p *Ptr[T]) Reset() {
	if p.ctrl == nil {
		return
	}
	p.ctrl.release()
	p.ctrl = nil
}

// Get returns the managed payload, or nil for the empty handle.
func (p Ptr[T]) Get() *T {
	if p.ctrl == nil {
		return nil
	}
	return p.ctrl.payload
}

// Deref returns the managed value. Calling Deref on the empty handle is a
// caller-contract violation, same as dereferencing a nil pointer.
func (p Ptr[T]) Deref() T {
	return *p.ctrl.payload
}

// IsNil reports whether the handle is empty.
func (p Ptr[T]) IsNil() bool {
	return p.ctrl == nil
}

// UseCount returns the number of live handles sharing p's target, or 0 for
// the empty handle. The value is a snapshot: with other handles alive on
// other goroutines it may be stale by the time it is returned.
func (p Ptr[T]) UseCount() int32 {
	if p.ctrl == nil {
		return 0
	}
	return p.ctrl.useCount()
}
