package offheap

import (
	"sync/atomic"
	"unsafe"
)

const RefHeaderSize = unsafe.Sizeof(RefHeader{})

type RefHeaderUintptr uintptr

func (u RefHeaderUintptr) Ptr() *RefHeader {
	return (*RefHeader)(unsafe.Pointer(u))
}

// RefHeader sits at offset 0 of every pooled object and counts the live
// references to it. The release that drives the accessor to zero elects
// exactly one caller to hand the object back.
type RefHeader struct {
	Accessor int32
}

func (p *RefHeader) GetAccessor() int32 {
	return atomic.LoadInt32(&p.Accessor)
}

func (p *RefHeader) Acquire() int32 {
	return atomic.AddInt32(&p.Accessor, 1)
}

// Release returns the post-decrement accessor. 0 means the caller held the
// last reference.
func (p *RefHeader) Release() int32 {
	n := atomic.AddInt32(&p.Accessor, -1)
	if n < 0 {
		panic("offheap: release on an unreferenced object")
	}
	return n
}

func (p *RefHeader) Reset() {
	atomic.StoreInt32(&p.Accessor, 0)
}
