package processor

import (
	"runtime"

	"go.uber.org/zap"

	"txnproc/txn"
)

// runMVCC forwards every incoming transaction to a worker, the same
// shallow scheduler shape as P-OCC: there is no completed queue because
// each worker carries its transaction from read through validate-and-
// apply (or restart) to completion by itself.
func (p *Processor) runMVCC() {
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
		p.mvccDispatch(t)
	}
}

func (p *Processor) mvccDispatch(t *txn.Txn) {
	p.pool.Submit(func() {
		p.mvccRun(t)
	})
}

// mvccRun implements the six worker steps of timestamp-ordering MVCC: read
// every touched key under its own per-key mutex (released immediately
// after, so readers never hold a key's mutex any longer than one Read
// call), run the body, then acquire every written key's mutex in
// ascending order, validate each with CheckWrite, and either apply every
// write and publish COMMITTED, or release, clear, and restart with a
// fresh id.
func (p *Processor) mvccRun(t *txn.Txn) {
	for _, k := range unionKeys(t.ReadSet(), t.WriteSet()) {
		p.store.Lock(k)
		if v, ok := p.store.Read(k, t.ID()); ok {
			t.RecordRead(k, v)
		}
		p.store.Unlock(k)
	}

	t.Execute()

	if t.Status() == txn.CompletedAbort {
		t.MarkAborted()
		p.publish(t)
		return
	}
	if t.Status() != txn.CompletedCommit {
		p.fatal("mvcc: transaction finished in unexpected status", zap.Stringer("status", t.Status()))
		return
	}

	writeKeys := sortedKeys(t.WriteSet())
	for _, k := range writeKeys {
		p.store.Lock(k)
	}

	ok := true
	for _, k := range writeKeys {
		if !p.store.CheckWrite(k, t.ID()) {
			ok = false
			break
		}
	}
	if ok {
		for k, v := range t.Writes() {
			p.store.Write(k, v, t.ID())
		}
	}

	for _, k := range writeKeys {
		p.store.Unlock(k)
	}

	if ok {
		t.MarkCommitted()
		p.publish(t)
		return
	}
	p.restart(t)
}
