package offheap

import (
	"sync"
	"unsafe"
)

type HandleTableInvokePrepareNewObject func(uObject uintptr)
type HandleTableInvokeBeforeReleaseObject func(uObject uintptr)

type HandleTableObjectUintptr uintptr

func (u HandleTableObjectUintptr) RefHeader() *RefHeader {
	return (*RefHeader)(unsafe.Pointer(u))
}

// Data returns the payload area behind the RefHeader.
func (u HandleTableObjectUintptr) Data() unsafe.Pointer {
	return unsafe.Pointer(uintptr(u) + RefHeaderSize)
}

// HandleTable
// user -> GetWithAcquire -> objectPool.AllocObject -> user
// user -> ReleasePointer -> RefHeader.Release == 0 -> evict -> objectPool.ReleaseObject -> user
//
// A sharded string-keyed table of pooled objects. Every GetWithAcquire
// holds one reference on the returned object; the ReleasePointer that
// drops the accessor to zero evicts the entry and returns the object to
// the pool, exactly once per mapped incarnation.
type HandleTable struct {
	name         string
	objectSize   int
	objectsLimit int32
	objectPool   ObjectPool

	shardCount    uint32
	shardRWMutexs []sync.RWMutex
	shards        []map[string]HandleTableObjectUintptr

	prepareNewObjectFunc    HandleTableInvokePrepareNewObject
	beforeReleaseObjectFunc HandleTableInvokeBeforeReleaseObject
}

// Init prepares shardCount shards over a pool of objects carrying
// objectDataSize payload bytes each behind their RefHeader.
func (p *HandleTable) Init(name string,
	objectDataSize int, objectsLimit int32, shardCount uint32,
	prepareNewObjectFunc HandleTableInvokePrepareNewObject,
	beforeReleaseObjectFunc HandleTableInvokeBeforeReleaseObject,
) error {
	var err error

	p.name = name
	p.objectSize = int(RefHeaderSize) + objectDataSize
	p.objectsLimit = objectsLimit

	p.shardCount = shardCount
	p.shardRWMutexs = make([]sync.RWMutex, p.shardCount)
	p.shards = make([]map[string]HandleTableObjectUintptr, p.shardCount)
	for shardIndex := uint32(0); shardIndex < p.shardCount; shardIndex++ {
		p.shards[shardIndex] = make(map[string]HandleTableObjectUintptr)
	}

	err = p.objectPool.Init(p.objectSize, p.objectsLimit, nil)
	if err != nil {
		return err
	}

	p.prepareNewObjectFunc = prepareNewObjectFunc
	p.beforeReleaseObjectFunc = beforeReleaseObjectFunc

	return nil
}

func (p *HandleTable) Name() string {
	return p.name
}

func (p *HandleTable) GetShard(k string) int {
	hash := uint32(2166136261)
	const prime32 = uint32(16777619)
	for i := 0; i < len(k); i++ {
		hash *= prime32
		hash ^= uint32(k[i])
	}
	return int(hash % p.shardCount)
}

// GetWithAcquire returns the object mapped to key with one reference
// acquired, allocating it on first use. A concurrent evictor of the same
// key is serialized through the shard lock: either the acquire lands
// before the eviction check and the entry survives, or the lookup misses
// and a fresh object is mapped.
func (p *HandleTable) GetWithAcquire(key string) (HandleTableObjectUintptr, error) {
	var (
		uObject HandleTableObjectUintptr
		exists  bool
	)

	shardIndex := p.GetShard(key)
	shard := p.shards[shardIndex]
	shardRWMutex := &p.shardRWMutexs[shardIndex]

	shardRWMutex.RLock()
	uObject, exists = shard[key]
	if exists {
		uObject.RefHeader().Acquire()
	}
	shardRWMutex.RUnlock()
	if exists {
		return uObject, nil
	}

	// Allocate outside the lock; a losing racer hands its object straight
	// back to the pool.
	uNewObject, err := p.objectPool.AllocObject()
	if err != nil {
		return 0, err
	}

	shardRWMutex.Lock()
	uObject, exists = shard[key]
	if exists {
		uObject.RefHeader().Acquire()
		shardRWMutex.Unlock()
		p.objectPool.ReleaseObject(uNewObject)
		return uObject, nil
	}

	uObject = HandleTableObjectUintptr(uNewObject)
	uObject.RefHeader().Acquire()
	if p.prepareNewObjectFunc != nil {
		p.prepareNewObjectFunc(uNewObject)
	}
	shard[key] = uObject
	shardRWMutex.Unlock()

	return uObject, nil
}

// ReleasePointer drops one reference on the object mapped to key. The
// caller that drives the accessor to zero evicts the entry and returns the
// object to the pool; the entry-still-current check under the shard lock
// keeps a reissued address from being evicted twice.
func (p *HandleTable) ReleasePointer(key string, uObject HandleTableObjectUintptr) {
	if uObject.RefHeader().Release() != 0 {
		return
	}

	shardIndex := p.GetShard(key)
	shard := p.shards[shardIndex]
	shardRWMutex := &p.shardRWMutexs[shardIndex]

	shardRWMutex.Lock()
	uCurrent, exists := shard[key]
	if !exists || uCurrent != uObject || uObject.RefHeader().GetAccessor() != 0 {
		shardRWMutex.Unlock()
		return
	}
	delete(shard, key)
	shardRWMutex.Unlock()

	if p.beforeReleaseObjectFunc != nil {
		p.beforeReleaseObjectFunc(uintptr(uObject))
	}
	p.objectPool.ReleaseObject(uintptr(uObject))
}

func (p *HandleTable) ActiveObjectsNum() int32 {
	return p.objectPool.ActiveObjectsNum()
}
