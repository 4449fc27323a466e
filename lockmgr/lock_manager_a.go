package lockmgr

import "txnproc/txn"

// LockManagerA grants only EXCLUSIVE locks: every request, read or write,
// is treated as exclusive. A request is granted immediately iff the key's
// queue was empty at the moment of enqueue; otherwise it waits its turn in
// FIFO order.
type LockManagerA struct {
	base
}

// NewLockManagerA returns an empty exclusive-only lock manager.
func NewLockManagerA() *LockManagerA {
	return &LockManagerA{base: newBase()}
}

var _ Manager = (*LockManagerA)(nil)

func (m *LockManagerA) ReadLock(txnID uint64, key txn.Key) bool {
	return m.WriteLock(txnID, key)
}

func (m *LockManagerA) WriteLock(txnID uint64, key txn.Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	granted := len(m.queues[key]) == 0
	m.enqueue(key, request{txnID: txnID, mode: Exclusive})
	if !granted {
		m.markWaiting(txnID)
	}
	return granted
}

func (m *LockManagerA) Release(txnID uint64, key txn.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseCommon(key, txnID)
}

func (m *LockManagerA) Status(key txn.Key) (Mode, []uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status(key)
}
