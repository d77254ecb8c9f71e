package offheap

import "sync"

// Driver owns the pools and tables of one process.
type Driver struct {
	tablesMutex sync.Mutex
	tables      map[string]*HandleTable
}

func (p *Driver) Init() error {
	p.tables = make(map[string]*HandleTable)
	return nil
}

func (p *Driver) InitHandleTable(table *HandleTable, name string,
	objectDataSize int, objectsLimit int32, shardCount uint32,
	prepareNewObjectFunc HandleTableInvokePrepareNewObject,
	beforeReleaseObjectFunc HandleTableInvokeBeforeReleaseObject,
) error {
	var err error

	err = table.Init(name, objectDataSize, objectsLimit, shardCount,
		prepareNewObjectFunc,
		beforeReleaseObjectFunc,
	)
	if err != nil {
		return err
	}

	p.tablesMutex.Lock()
	p.tables[name] = table
	p.tablesMutex.Unlock()

	return nil
}

func (p *Driver) GetHandleTable(name string) *HandleTable {
	p.tablesMutex.Lock()
	table := p.tables[name]
	p.tablesMutex.Unlock()
	return table
}
