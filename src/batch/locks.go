package batch

import "sync"

// batchLocks serializes polynomial mutation per batch. The insert-root
// recurrence corrupts the coefficient list if two insertions into the same
// batch interleave; insertions into different batches stay fully parallel.
type batchLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newBatchLocks() *batchLocks {
	return &batchLocks{locks: make(map[string]*sync.Mutex)}
}

func (bl *batchLocks) forBatch(batchID string) *sync.Mutex {
	bl.mu.Lock()
	defer bl.mu.Unlock()

	lock, ok := bl.locks[batchID]
	if !ok {
		lock = &sync.Mutex{}
		bl.locks[batchID] = lock
	}
	return lock
}
