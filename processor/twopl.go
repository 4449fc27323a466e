package processor

import (
	"runtime"

	"go.uber.org/zap"

	"txnproc/lockmgr"
	"txnproc/txn"
)

// runTwoPL drives the single scheduler loop shared by both 2PL-X and
// 2PL-SX (the grant rule difference lives entirely in which lockmgr.Manager
// was constructed): intake acquires locks and restarts multi-lock
// transactions that would otherwise block, dispatch hands every
// newly-ready transaction to the worker pool, and completion drains
// finished bodies, applies their writes, and releases their locks.
func (p *Processor) runTwoPL() {
	for {
		select {
		case <-p.done:
			return
		default:
		}

		idle := true

		if t, ok := p.incoming.Pop(); ok {
			p.twoPLIntake(t)
			idle = false
		}

		for {
			id, ok := p.lockMgr.Ready().Pop()
			if !ok {
				break
			}
			idle = false
			if t, ok := p.inflight.Get(id); ok {
				p.dispatchBody(t)
			}
		}

		hadCompleted := false
		p.completed.DrainTo(func(t *txn.Txn) {
			hadCompleted = true
			p.twoPLFinish(t)
		})
		if hadCompleted {
			idle = false
		}

		if idle {
			runtime.Gosched()
		}
	}
}

// twoPLIntake attempts to acquire a read lock for every key in t's
// readset, then a write lock for every key in its writeset, in that
// declared order. If any single request would block and t asks for more
// than one key in total, every lock already enqueued for t (including the
// one that just queued) is released and t is restarted with a fresh id.
// A single-key transaction is left queued instead, since it has nothing
// else to hold and release.
func (p *Processor) twoPLIntake(t *txn.Txn) {
	total := len(t.ReadSet()) + len(t.WriteSet())
	enqueued := make([]keyMode, 0, total)

	for _, k := range t.ReadSet() {
		granted := p.lockMgr.ReadLock(t.ID(), k)
		enqueued = append(enqueued, keyMode{k, lockmgr.Shared})
		if !granted {
			p.twoPLBlocked(t, enqueued, total)
			return
		}
	}
	for _, k := range t.WriteSet() {
		granted := p.lockMgr.WriteLock(t.ID(), k)
		enqueued = append(enqueued, keyMode{k, lockmgr.Exclusive})
		if !granted {
			p.twoPLBlocked(t, enqueued, total)
			return
		}
	}

	p.inflight.Set(t.ID(), t)
	p.dispatchBody(t)
}

type keyMode struct {
	key  txn.Key
	mode lockmgr.Mode
}

func (p *Processor) twoPLBlocked(t *txn.Txn, enqueued []keyMode, total int) {
	if total > 1 {
		for _, e := range enqueued {
			p.lockMgr.Release(t.ID(), e.key)
		}
		p.restart(t)
		return
	}
	p.inflight.Set(t.ID(), t)
}

// dispatchBody hands t to the worker pool to load its reads, run its
// body, and land on the completed queue.
func (p *Processor) dispatchBody(t *txn.Txn) {
	p.pool.Submit(func() {
		p.loadReads(t, nowTS())
		t.Execute()
		p.completed.Push(t)
	})
}

func (p *Processor) twoPLFinish(t *txn.Txn) {
	switch t.Status() {
	case txn.CompletedCommit:
		p.applyWrites(t, nowTS())
		t.MarkCommitted()
	case txn.CompletedAbort:
		t.MarkAborted()
	default:
		p.fatal("2pl: transaction finished in unexpected status", zap.Stringer("status", t.Status()))
		return
	}

	for _, k := range t.ReadSet() {
		p.lockMgr.Release(t.ID(), k)
	}
	for _, k := range t.WriteSet() {
		p.lockMgr.Release(t.ID(), k)
	}
	p.inflight.Erase(t.ID())
	p.publish(t)
}
