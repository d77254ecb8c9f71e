package shared

// LocalPtr is the unsynchronized sibling of Ptr. The count is a plain int,
// so every handle aliasing one object must live on the same goroutine (or
// be fenced externally). In exchange there is no atomic traffic at all.
//
// The zero value is the empty handle.
type LocalPtr[T any] struct {
	ctrl *localControl[T]
}

type localControl[T any] struct {
	refcnt   int
	payload  *T
	finalize func(*T)
}

func (c *localControl[T]) release() {
	c.refcnt--
	if c.refcnt > 0 {
		return
	}
	if c.refcnt < 0 {
		panic("shared: release on a released control block")
	}
	if c.finalize != nil {
		c.finalize(c.payload)
	}
	c.payload = nil
	c.finalize = nil
}

// NewLocal takes ownership of payload and returns a handle with a use
// count of one. A nil payload yields the empty handle.
func NewLocal[T any](payload *T, finalize func(*T)) LocalPtr[T] {
	if payload == nil {
		return LocalPtr[T]{}
	}
	return LocalPtr[T]{ctrl: &localControl[T]{
		refcnt:   1,
		payload:  payload,
		finalize: finalize,
	}}
}

// Clone returns a new handle sharing ownership with p.
func (p *LocalPtr[T]) Clone() LocalPtr[T] {
	if p.ctrl == nil {
		return LocalPtr[T]{}
	}
	p.ctrl.refcnt++
	return LocalPtr[T]{ctrl: p.ctrl}
}

// CopyFrom replaces p's target with other's. The source is acquired before
// the old target is released, keeping self-assignment safe.
func (p *LocalPtr[T]) CopyFrom(other *LocalPtr[T]) {
	if p == other {
		return
	}
	if other.ctrl != nil {
		other.ctrl.refcnt++
	}
	old := p.ctrl
	p.ctrl = other.ctrl
	if old != nil {
		old.release()
	}
}

// Move transfers p's target into the returned handle and empties p without
// touching the count.
func (p *LocalPtr[T]) Move() LocalPtr[T] {
	moved := LocalPtr[T]{ctrl: p.ctrl}
	p.ctrl = nil
	return moved
}

// MoveFrom releases p's current target, steals other's, and empties other.
func (p *LocalPtr[T]) MoveFrom(other *LocalPtr[T]) {
	if p == other {
		return
	}
	if p.ctrl != nil {
		p.ctrl.release()
	}
	p.ctrl = other.ctrl
	other.ctrl = nil
}

// Reset releases p's reference and empties the handle.
func (p *LocalPtr[T]) Reset() {
	if p.ctrl == nil {
		return
	}
	p.ctrl.release()
	p.ctrl = nil
}

// Get returns the managed payload, or nil for the empty handle.
func (p LocalPtr[T]) Get() *T {
	if p.ctrl == nil {
		return nil
	}
	return p.ctrl.payload
}

// Deref returns the managed value. Deref on the empty handle is a
// caller-contract violation.
func (p LocalPtr[T]) Deref() T {
	return *p.ctrl.payload
}

// IsNil reports whether the handle is empty.
func (p LocalPtr[T]) IsNil() bool {
	return p.ctrl == nil
}

// UseCount returns the number of live handles sharing p's target, or 0 for
// the empty handle.
func (p LocalPtr[T]) UseCount() int {
	if p.ctrl == nil {
		return 0
	}
	return p.ctrl.refcnt
}
