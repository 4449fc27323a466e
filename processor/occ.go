package processor

import (
	"runtime"
	"time"

	"go.uber.org/zap"

	"txnproc/txn"
)

// runOCC interleaves intake (dispatch each incoming transaction to a
// worker that stamps its start time, reads, and runs its body) with
// validation (drain the completed queue one transaction at a time, in the
// order workers finished them, and validate-then-apply or restart). The
// single-threaded, in-order validation is what makes OCC's validate+apply
// step appear atomic to the workers without any lock of its own.
func (p *Processor) runOCC() {
	for {
		select {
		case <-p.done:
			return
		default:
		}

		idle := true

		if t, ok := p.incoming.Pop(); ok {
			p.occDispatch(t)
			idle = false
		}

		if t, ok := p.completed.Pop(); ok {
			p.occValidate(t)
			idle = false
		}

		if idle {
			runtime.Gosched()
		}
	}
}

func (p *Processor) occDispatch(t *txn.Txn) {
	p.pool.Submit(func() {
		t.SetOCCStartTime(time.Now())
		p.loadReads(t, nowTS())
		t.Execute()
		p.completed.Push(t)
	})
}

// occValidate checks, for every key in t's readset and writeset, that the
// key has not been written since t started reading. A transaction that
// requested abort is always marked ABORTED regardless of validation; one
// that requested commit is validated, then either committed or restarted
// with a fresh id.
func (p *Processor) occValidate(t *txn.Txn) {
	if t.Status() == txn.CompletedAbort {
		t.MarkAborted()
		p.publish(t)
		return
	}
	if t.Status() != txn.CompletedCommit {
		p.fatal("occ: transaction finished in unexpected status", zap.Stringer("status", t.Status()))
		return
	}

	occStart := uint64(t.OCCStartTime().UnixNano())
	for _, k := range unionKeys(t.ReadSet(), t.WriteSet()) {
		if p.store.Timestamp(k) > occStart {
			p.restart(t)
			return
		}
	}

	p.applyWrites(t, nowTS())
	t.MarkCommitted()
	p.publish(t)
}
