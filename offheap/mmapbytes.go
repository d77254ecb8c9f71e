package offheap

import (
	"fmt"
	"syscall"
	"unsafe"
)

type mmapbytes struct {
	addrStart uintptr
	addrEnd   uintptr
}

// allocMmapBytes maps size bytes of anonymous private memory. On failure
// nothing is mapped and the error wraps ErrMmap.
func allocMmapBytes(size int) (mmapbytes, error) {
	var ret mmapbytes
	prot := syscall.PROT_READ | syscall.PROT_WRITE
	flags := syscall.MAP_ANON | syscall.MAP_PRIVATE

	bytes, err := syscall.Mmap(-1, 0, size, prot, flags)
	if err != nil {
		return ret, fmt.Errorf("%w: %v", ErrMmap, err)
	}
	ret.addrStart = *((*uintptr)((unsafe.Pointer)(&bytes)))
	ret.addrEnd = ret.addrStart + uintptr(size)
	return ret, nil
}
