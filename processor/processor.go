package processor

import (
	"context"
	"sync"

	"github.com/pingcap/errors"
	uberatomic "go.uber.org/atomic"
	"go.uber.org/zap"

	"txnproc/lockmgr"
	"txnproc/queue"
	"txnproc/storage"
	"txnproc/txn"
	"txnproc/wpool"
)

const (
	defaultResultsCapacity = 4096
	defaultWorkerCount     = 8
)

// Processor runs one concurrency-control mode's scheduler loop over a
// shared worker pool and storage engine. Construct with New, submit work
// with Submit, and drain terminal transactions with NextResult.
type Processor struct {
	mode    Mode
	store   storage.Storage
	lockMgr lockmgr.Manager
	pool    *wpool.Pool
	log     *zap.Logger

	nextID uberatomic.Uint64

	incoming  *queue.AtomicQueue[*txn.Txn]
	completed *queue.AtomicQueue[*txn.Txn]
	results   chan *txn.Txn

	// inflight holds every 2PL transaction that has been submitted but not
	// yet finished, keyed by its unique id, so the lock manager's ready
	// list (which only carries ids) can be turned back into the *txn.Txn
	// to dispatch.
	inflight *queue.AtomicMap[uint64, *txn.Txn]

	// activeSet and activeMu implement P-OCC's active set: the set of
	// transactions currently validating or committing. activeMu guards the
	// snapshot-then-insert sequence so it is one atomic step, matching the
	// "global critical section" the parallel validator takes only long
	// enough to snapshot and join.
	activeSet *queue.AtomicSet[*txn.Txn]
	activeMu  sync.Mutex

	done chan struct{}
	wg   sync.WaitGroup
}

// Option configures a Processor at construction time.
type Option func(*Processor)

// WithLogger attaches a structured logger; the default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Processor) { p.log = log }
}

// WithWorkerCount overrides the default worker pool size.
func WithWorkerCount(n int) Option {
	return func(p *Processor) { p.pool = wpool.New(n) }
}

// New constructs a Processor in the given mode over store, pre-populates
// store with keys [0, dbSize), and starts its scheduler loop.
func New(mode Mode, store storage.Storage, dbSize uint64, opts ...Option) *Processor {
	p := &Processor{
		mode:      mode,
		store:     store,
		log:       zap.NewNop(),
		incoming:  queue.NewAtomicQueue[*txn.Txn](),
		completed: queue.NewAtomicQueue[*txn.Txn](),
		results:   make(chan *txn.Txn, defaultResultsCapacity),
		inflight:  queue.NewAtomicMap[uint64, *txn.Txn](queue.Uint64Hash),
		activeSet: queue.NewAtomicSet[*txn.Txn](),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.pool == nil {
		p.pool = wpool.New(defaultWorkerCount)
	}

	switch mode {
	case TwoPLExclusive:
		p.lockMgr = lockmgr.NewLockManagerA()
	case TwoPLSharedExclusive:
		p.lockMgr = lockmgr.NewLockManagerB()
	}

	store.InitStorage(dbSize)

	p.wg.Add(1)
	go p.run()
	return p
}

// Submit assigns t a fresh, strictly increasing unique id and hands it to
// the processor. It returns the assigned id.
func (p *Processor) Submit(t *txn.Txn) uint64 {
	id := p.nextUniqueID()
	t.SetID(id)
	p.incoming.Push(t)
	return id
}

func (p *Processor) nextUniqueID() uint64 {
	return p.nextID.Inc()
}

// restart clears t's execution state, assigns it a fresh id, and
// resubmits it as a new request. Every validating mode (OCC, P-OCC,
// MVCC-TO) uses this same path on a transient conflict.
func (p *Processor) restart(t *txn.Txn) {
	t.Restart()
	t.SetID(p.nextUniqueID())
	p.incoming.Push(t)
}

// NextResult blocks until a terminal transaction is available or ctx is
// done. This replaces the busy-wait-with-sleep result retrieval described
// for the reference implementation with a real blocking receive.
func (p *Processor) NextResult(ctx context.Context) (*txn.Txn, error) {
	select {
	case t := <-p.results:
		return t, nil
	case <-ctx.Done():
		return nil, errors.Trace(ctx.Err())
	}
}

// publish delivers a terminal transaction to NextResult's caller.
func (p *Processor) publish(t *txn.Txn) {
	p.results <- t
}

// fatal logs a protocol-invariant violation and terminates the process.
// It is never expected to fire; reaching it means a scheduler loop
// observed a transaction in a status it should be structurally impossible
// to be in.
func (p *Processor) fatal(msg string, fields ...zap.Field) {
	p.log.Fatal(msg, fields...)
}

// Stop signals the scheduler loop and worker pool to exit and waits for
// both to finish. Transactions still queued when Stop is called are not
// completed.
func (p *Processor) Stop() {
	close(p.done)
	p.wg.Wait()
	p.pool.Stop()
}

// run dispatches to the mode-selected scheduler loop.
func (p *Processor) run() {
	defer p.wg.Done()
	switch p.mode {
	case Serial:
		p.runSerial()
	case TwoPLExclusive, TwoPLSharedExclusive:
		p.runTwoPL()
	case OCC:
		p.runOCC()
	case ParallelOCC:
		p.runParallelOCC()
	case MVCC:
		p.runMVCC()
	default:
		p.fatal("processor: unrecognized mode", zap.Int("mode", int(p.mode)))
	}
}
