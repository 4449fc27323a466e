package lockmgr

import (
	"sync"

	"txnproc/queue"
	"txnproc/txn"
)

// ReadyQueue is the queue of transaction IDs a lock manager's Release has
// made eligible for dispatch.
type ReadyQueue = queue.AtomicQueue[uint64]

type request struct {
	txnID uint64
	mode  Mode
}

// base holds the mechanics common to both lock manager variants: the
// per-key FIFO queue of requests, the wait-count bookkeeping, and the
// ready list Release feeds. LockManagerA and LockManagerB embed it and
// differ only in their grant rule.
type base struct {
	mu        sync.Mutex
	queues    map[txn.Key][]request
	waitCount map[uint64]int
	ready     *ReadyQueue
}

func newBase() base {
	return base{
		queues:    make(map[txn.Key][]request),
		waitCount: make(map[uint64]int),
		ready:     queue.NewAtomicQueue[uint64](),
	}
}

func (b *base) Ready() *ReadyQueue { return b.ready }

// owners returns the longest prefix of q whose requests are mutually
// compatible: an EXCLUSIVE head admits only itself; a SHARED head admits
// every following SHARED request up to, but not including, the first
// EXCLUSIVE.
func owners(q []request) []request {
	if len(q) == 0 {
		return nil
	}
	if q[0].mode == Exclusive {
		return q[:1]
	}
	i := 1
	for i < len(q) && q[i].mode == Shared {
		i++
	}
	return q[:i]
}

func (b *base) enqueue(key txn.Key, req request) {
	b.queues[key] = append(b.queues[key], req)
}

// markWaiting records that txnID is now blocked on one more key.
func (b *base) markWaiting(txnID uint64) {
	b.waitCount[txnID]++
}

// admit decrements txnID's wait count if it has one, pushing txnID onto
// the ready queue and erasing its wait-count entry once the count reaches
// zero. It is a no-op for transactions that were never queued as waiters
// (i.e. every lock they asked for was granted immediately).
func (b *base) admit(txnID uint64) {
	n, ok := b.waitCount[txnID]
	if !ok {
		return
	}
	n--
	if n <= 0 {
		delete(b.waitCount, txnID)
		b.ready.Push(txnID)
		return
	}
	b.waitCount[txnID] = n
}

// releaseCommon removes txnID's request for key (first match from the
// front of the queue), recomputes the owner prefix, and admits every
// member of the new owner set. It returns the mode of the removed
// request, Unlocked if txnID had no request for key, so LockManagerB can
// adjust its per-key exclusive-waiter count.
func (b *base) releaseCommon(key txn.Key, txnID uint64) Mode {
	q := b.queues[key]
	idx := -1
	var removedMode Mode
	for i, r := range q {
		if r.txnID == txnID {
			idx = i
			removedMode = r.mode
			break
		}
	}
	if idx == -1 {
		return Unlocked
	}

	q = append(q[:idx:idx], q[idx+1:]...)
	if len(q) == 0 {
		delete(b.queues, key)
	} else {
		b.queues[key] = q
	}

	for _, o := range owners(q) {
		b.admit(o.txnID)
	}
	return removedMode
}

func (b *base) status(key txn.Key) (Mode, []uint64) {
	own := owners(b.queues[key])
	if len(own) == 0 {
		return Unlocked, nil
	}
	ids := make([]uint64, len(own))
	for i, o := range own {
		ids[i] = o.txnID
	}
	return own[0].mode, ids
}
