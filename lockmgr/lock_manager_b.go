package lockmgr

import "txnproc/txn"

// LockManagerB grants both SHARED and EXCLUSIVE locks. EXCLUSIVE is
// granted iff the key's queue was empty on arrival; SHARED is granted iff
// the queue contained no EXCLUSIVE request, owner or waiter, on arrival —
// this gives a waiting writer priority over any reader that arrives after
// it, preventing the writer from starving behind a stream of readers.
type LockManagerB struct {
	base
	numExclusiveWaiting map[txn.Key]uint64
}

// NewLockManagerB returns an empty shared/exclusive lock manager.
func NewLockManagerB() *LockManagerB {
	return &LockManagerB{
		base:                newBase(),
		numExclusiveWaiting: make(map[txn.Key]uint64),
	}
}

var _ Manager = (*LockManagerB)(nil)

func (m *LockManagerB) ReadLock(txnID uint64, key txn.Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	granted := m.numExclusiveWaiting[key] == 0
	m.enqueue(key, request{txnID: txnID, mode: Shared})
	if !granted {
		m.markWaiting(txnID)
	}
	return granted
}

func (m *LockManagerB) WriteLock(txnID uint64, key txn.Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	granted := len(m.queues[key]) == 0
	m.enqueue(key, request{txnID: txnID, mode: Exclusive})
	m.numExclusiveWaiting[key]++
	if !granted {
		m.markWaiting(txnID)
	}
	return granted
}

func (m *LockManagerB) Release(txnID uint64, key txn.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removedMode := m.releaseCommon(key, txnID)
	if removedMode != Exclusive {
		return
	}
	if n := m.numExclusiveWaiting[key]; n > 1 {
		m.numExclusiveWaiting[key] = n - 1
	} else {
		delete(m.numExclusiveWaiting, key)
	}
}

func (m *LockManagerB) Status(key txn.Key) (Mode, []uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status(key)
}
