package offheap

import (
	"math"
	"sync"
)

type ObjectPoolInvokePrepareNewObject func(uObject uintptr)

// ObjectPool
// user -> AllocObject -> mallocObject -> user
// user -> ReleaseObject -> freeList -> AllocObject -> user
//
// Objects are fixed-size and live in mmap slabs outside the GC heap, so
// every object must be released exactly once by its last user; the pool
// itself does no tracking beyond the free list.
type ObjectPool struct {
	objectSize   uintptr
	objectsLimit int32

	prepareNewObjectFunc ObjectPoolInvokePrepareNewObject

	perMmapBytesSize int
	currentMmapBytes *mmapbytes
	mmapBytesList    []*mmapbytes

	allocMutex       sync.Mutex
	activeObjectsNum int32
	freeList         []uintptr
}

// Init sets the pool geometry. objectsLimit == -1 means unbounded. The
// first slab is mapped here; a mapping failure leaves the pool unusable
// and is returned to the caller.
func (p *ObjectPool) Init(objectSize int, objectsLimit int32,
	prepareNewObjectFunc ObjectPoolInvokePrepareNewObject) error {
	var err error

	if objectSize < int(RefHeaderSize) {
		return ErrObjectSize
	}

	p.objectSize = uintptr(objectSize)
	p.objectsLimit = objectsLimit
	if p.objectsLimit == -1 {
		p.perMmapBytesSize = 1024 * int(p.objectSize)
	} else {
		p.perMmapBytesSize = int(math.Ceil(float64(p.objectsLimit)/float64(16))) * int(p.objectSize)
	}
	p.prepareNewObjectFunc = prepareNewObjectFunc

	err = p.growMmapBytesList()
	if err != nil {
		return err
	}

	p.activeObjectsNum = 0

	return nil
}

func (p *ObjectPool) growMmapBytesList() error {
	mmapBytes, err := allocMmapBytes(p.perMmapBytesSize)
	if err != nil {
		return err
	}
	p.mmapBytesList = append(p.mmapBytesList, &mmapBytes)
	p.currentMmapBytes = p.mmapBytesList[len(p.mmapBytesList)-1]

	return nil
}

// AllocObject hands out one object with its RefHeader reset to zero. The
// free list is preferred; fresh objects come from a bump allocation over
// the current slab, growing the slab list when it runs out.
func (p *ObjectPool) AllocObject() (uintptr, error) {
	var uObject uintptr

	p.allocMutex.Lock()
	if p.objectsLimit != -1 && p.activeObjectsNum >= p.objectsLimit {
		p.allocMutex.Unlock()
		return 0, ErrAllocOutOfLimit
	}

	if last := len(p.freeList) - 1; last >= 0 {
		uObject = p.freeList[last]
		p.freeList = p.freeList[:last]
	} else {
		end := p.currentMmapBytes.addrStart + p.objectSize
		if end > p.currentMmapBytes.addrEnd {
			if err := p.growMmapBytesList(); err != nil {
				p.allocMutex.Unlock()
				return 0, err
			}
			end = p.currentMmapBytes.addrStart + p.objectSize
		}
		uObject = p.currentMmapBytes.addrStart
		p.currentMmapBytes.addrStart = end

		if p.prepareNewObjectFunc != nil {
			p.prepareNewObjectFunc(uObject)
		}
	}
	p.activeObjectsNum += 1
	p.allocMutex.Unlock()

	RefHeaderUintptr(uObject).Ptr().Reset()
	return uObject, nil
}

// ReleaseObject returns an object to the free list. The caller must hold
// the last reference; the pool may reissue the address immediately.
func (p *ObjectPool) ReleaseObject(uObject uintptr) {
	p.allocMutex.Lock()
	p.activeObjectsNum -= 1
	p.freeList = append(p.freeList, uObject)
	p.allocMutex.Unlock()
}

func (p *ObjectPool) ActiveObjectsNum() int32 {
	p.allocMutex.Lock()
	n := p.activeObjectsNum
	p.allocMutex.Unlock()
	return n
}
