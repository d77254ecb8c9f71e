package offheap

import "errors"

var (
	ErrMmap            = errors.New("mmap error")
	ErrAllocOutOfLimit = errors.New("alloc object out of limit")
	ErrObjectSize      = errors.New("object size too small")
)
