package processor

import (
	"runtime"

	"go.uber.org/zap"

	"txnproc/txn"
)

// runSerial is the trivial scheduler: pop one transaction, run it to
// completion on the scheduler goroutine itself (no worker pool, no
// concurrency of any kind), apply its writes if it committed, and publish
// the result. This is the baseline every other mode is measured against.
func (p *Processor) runSerial() {
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
		p.runSerialOne(t)
	}
}

func (p *Processor) runSerialOne(t *txn.Txn) {
	p.loadReads(t, nowTS())
	t.Execute()

	switch t.Status() {
	case txn.CompletedCommit:
		p.applyWrites(t, nowTS())
		t.MarkCommitted()
	case txn.CompletedAbort:
		t.MarkAborted()
	default:
		p.fatal("serial: transaction finished in unexpected status", zap.Stringer("status", t.Status()))
		return
	}
	p.publish(t)
}
