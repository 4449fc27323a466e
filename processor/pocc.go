package processor

import (
	"runtime"
	"time"

	"go.uber.org/zap"

	"txnproc/txn"
)

// runParallelOCC forwards every incoming transaction straight to the
// worker pool: unlike OCC, validation is not centralized on the scheduler
// goroutine, so there is no completed queue to drain — each worker
// validates and applies (or restarts) the transaction it just ran, itself.
func (p *Processor) runParallelOCC() {
	for {
		select {
		case <-p.done:
			return
		default:
		}

		t, ok := p.incoming.Pop()
		if !ok {
			runtime.Gosched()
			continue
		}
		p.poccDispatch(t)
	}
}

func (p *Processor) poccDispatch(t *txn.Txn) {
	p.pool.Submit(func() {
		t.SetOCCStartTime(time.Now())
		p.loadReads(t, nowTS())
		t.Execute()
		p.poccFinish(t)
	})
}

// poccFinish runs the parallel validator: a per-key timestamp check
// against every key t touched, then a join of the active set (the other
// transactions currently validating or committing) performed as one
// critical section so every joiner is guaranteed to see everyone who
// joined before it, then a conflict check against each active
// transaction's writeset. t remains a member of the active set from the
// moment it joins until its writes (if any) are applied, so a concurrent
// validator can never observe a state in between t deciding to commit and
// t's writes actually landing.
func (p *Processor) poccFinish(t *txn.Txn) {
	if t.Status() == txn.CompletedAbort {
		t.MarkAborted()
		p.publish(t)
		return
	}
	if t.Status() != txn.CompletedCommit {
		p.fatal("pocc: transaction finished in unexpected status", zap.Stringer("status", t.Status()))
		return
	}

	occStart := uint64(t.OCCStartTime().UnixNano())
	myKeys := unionKeys(t.ReadSet(), t.WriteSet())

	ok := true
	for _, k := range myKeys {
		if p.store.Timestamp(k) > occStart {
			ok = false
			break
		}
	}

	if ok {
		mine := make(map[txn.Key]struct{}, len(myKeys))
		for _, k := range myKeys {
			mine[k] = struct{}{}
		}

		p.activeMu.Lock()
		snapshot := p.activeSet.Snapshot()
		p.activeSet.Insert(t)
		p.activeMu.Unlock()

		for _, u := range snapshot {
			if u == t {
				continue
			}
			if writesetIntersects(u.WriteSet(), mine) {
				ok = false
				break
			}
		}

		if ok {
			p.applyWrites(t, nowTS())
		}
		p.activeSet.Erase(t)
	}

	if ok {
		t.MarkCommitted()
		p.publish(t)
		return
	}
	p.restart(t)
}

func writesetIntersects(writeSet []txn.Key, keys map[txn.Key]struct{}) bool {
	for _, k := range writeSet {
		if _, ok := keys[k]; ok {
			return true
		}
	}
	return false
}
