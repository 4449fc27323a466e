package lockmgr

import "txnproc/txn"

// Manager is the interface the 2PL scheduler drives, satisfied by both
// LockManagerA and LockManagerB. ReadLock and WriteLock enqueue a request
// for txnID on key and report whether it was granted immediately; Release
// removes txnID's request for key and admits whichever now-compatible
// requests follow it in the queue.
//
// Callers must not call ReadLock or WriteLock twice for the same
// (txnID, key) pair without an intervening Release.
type Manager interface {
	ReadLock(txnID uint64, key txn.Key) bool
	WriteLock(txnID uint64, key txn.Key) bool
	Release(txnID uint64, key txn.Key)

	// Status reports the effective mode of key's current owners and their
	// transaction IDs. Unlocked with a nil slice if the key's queue is
	// empty.
	Status(key txn.Key) (Mode, []uint64)

	// Ready returns the queue of transactions whose wait count has dropped
	// to zero since the scheduler last drained it — each has now acquired
	// every lock it requested and is eligible for dispatch.
	Ready() *ReadyQueue
}
