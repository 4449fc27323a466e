package processor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"txnproc/storage"
	"txnproc/txn"
	"txnproc/txn/bodies"
)

var allModes = []Mode{Serial, TwoPLExclusive, TwoPLSharedExclusive, OCC, ParallelOCC, MVCC}

func newTestProcessor(mode Mode) *Processor {
	var store storage.Storage
	if mode == MVCC {
		store = storage.NewMVCCStore()
	} else {
		store = storage.NewSingleVersionStore()
	}
	return New(mode, store, 100, WithWorkerCount(4))
}

func await(t *testing.T, p *Processor) *txn.Txn {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := p.NextResult(ctx)
	require.NoError(t, err)
	return result
}

// TestTrivialCommit covers S1: a Noop transaction must commit with empty
// reads and writes, in every mode.
func TestTrivialCommit(t *testing.T) {
	for _, mode := range allModes {
		mode := mode
		t.Run(mode.String(), func(t *testing.T) {
			p := newTestProcessor(mode)
			defer p.Stop()

			p.Submit(txn.New(bodies.Noop{}))
			result := await(t, p)

			require.Equal(t, txn.Committed, result.Status())
			require.Empty(t, result.Reads())
			require.Empty(t, result.Writes())
		})
	}
}

// TestPutThenExpect covers S2: a Put followed by an Expect reading back
// what it wrote must both commit, single-threaded, in every mode.
func TestPutThenExpect(t *testing.T) {
	for _, mode := range allModes {
		mode := mode
		t.Run(mode.String(), func(t *testing.T) {
			p := newTestProcessor(mode)
			defer p.Stop()

			p.Submit(txn.New(bodies.NewPut(map[txn.Key]txn.Value{7: 42})))
			put := await(t, p)
			require.Equal(t, txn.Committed, put.Status())

			p.Submit(txn.New(bodies.NewExpect(map[txn.Key]txn.Value{7: 42})))
			expect := await(t, p)
			require.Equal(t, txn.Committed, expect.Status())
		})
	}
}

// TestWriterNotStarvedBySharedReaders covers a scaled-down S3: a stream of
// readers of key 0 arriving after a writer has already queued for it must
// not let the writer starve, under 2PL-SX.
func TestWriterNotStarvedBySharedReaders(t *testing.T) {
	p := newTestProcessor(TwoPLSharedExclusive)
	defer p.Stop()

	const readerCount = 20
	held := make(chan struct{})
	release := make(chan struct{})

	firstReader := txn.New(holdingBody{readSet: []txn.Key{0}, held: held, release: release})
	p.Submit(firstReader)
	<-held

	writer := txn.New(bodies.NewPut(map[txn.Key]txn.Value{0: 99}))
	p.Submit(writer)

	for i := 0; i < readerCount; i++ {
		p.Submit(txn.New(readOnlyProbe{readSet: []txn.Key{0}}))
	}

	close(release)

	var writerResult *txn.Txn
	for i := 0; i < readerCount+2; i++ {
		r := await(t, p)
		require.Equal(t, txn.Committed, r.Status())
		if r == writer {
			writerResult = r
		}
	}
	require.NotNil(t, writerResult, "the writer must have committed, not starved forever")
}

// holdingBody is a Body that signals held once its Run begins, then blocks
// until release is closed, so a test can deterministically arrange for
// other transactions to queue up behind it.
type holdingBody struct {
	readSet []txn.Key
	held    chan struct{}
	release chan struct{}
}

func (h holdingBody) ReadSet() []txn.Key  { return h.readSet }
func (h holdingBody) WriteSet() []txn.Key { return nil }
func (h holdingBody) Run(t *txn.Txn) txn.Vote {
	close(h.held)
	<-h.release
	return txn.VoteCommit
}

// readOnlyProbe reads every key in readSet and commits unconditionally,
// without asserting anything about the values observed.
type readOnlyProbe struct {
	readSet []txn.Key
}

func (r readOnlyProbe) ReadSet() []txn.Key  { return r.readSet }
func (r readOnlyProbe) WriteSet() []txn.Key { return nil }
func (r readOnlyProbe) Run(t *txn.Txn) txn.Vote {
	for _, k := range r.readSet {
		t.Get(k)
	}
	return txn.VoteCommit
}

// TestOCCSelfConflict covers S6: two concurrent RMW transactions over the
// same key under OCC must both eventually commit, whichever of them
// restarts along the way. It does not check how many attempts each took.
func TestOCCSelfConflict(t *testing.T) {
	p := newTestProcessor(OCC)
	defer p.Stop()

	t1 := txn.New(bodies.NewRMW([]txn.Key{0}, []txn.Key{0}, time.Millisecond))
	t2 := txn.New(bodies.NewRMW([]txn.Key{0}, []txn.Key{0}, time.Millisecond))
	p.Submit(t1)
	p.Submit(t2)

	seen := map[*txn.Txn]bool{}
	for len(seen) < 2 {
		r := await(t, p)
		require.Equal(t, txn.Committed, r.Status())
		seen[r] = true
	}
	require.True(t, seen[t1])
	require.True(t, seen[t2])
}
