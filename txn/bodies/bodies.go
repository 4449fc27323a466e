package bodies

import (
	"math/rand"
	"time"

	"txnproc/txn"
)

// Noop immediately commits without touching storage. It is the trivial
// commit scenario: empty reads, empty writes, COMMITTED.
type Noop struct{}

func (Noop) ReadSet() []txn.Key  { return nil }
func (Noop) WriteSet() []txn.Key { return nil }
func (Noop) Run(*txn.Txn) txn.Vote {
	return txn.VoteCommit
}

// Put writes every pair in the supplied map and commits. Its writeset is
// exactly the map's key set.
type Put struct {
	values map[txn.Key]txn.Value
}

// NewPut returns a Put body that will write every key/value pair in values.
func NewPut(values map[txn.Key]txn.Value) *Put {
	return &Put{values: cloneMap(values)}
}

func (p *Put) ReadSet() []txn.Key  { return nil }
func (p *Put) WriteSet() []txn.Key { return keysOf(p.values) }

func (p *Put) Run(t *txn.Txn) txn.Vote {
	for k, v := range p.values {
		t.Put(k, v)
	}
	return txn.VoteCommit
}

// Expect reads every key in the supplied map and commits only if every
// observed value matches the expected value; otherwise it aborts. Its
// readset is exactly the map's key set.
type Expect struct {
	expected map[txn.Key]txn.Value
}

// NewExpect returns an Expect body asserting the given key/value pairs.
func NewExpect(expected map[txn.Key]txn.Value) *Expect {
	return &Expect{expected: cloneMap(expected)}
}

func (e *Expect) ReadSet() []txn.Key  { return keysOf(e.expected) }
func (e *Expect) WriteSet() []txn.Key { return nil }

func (e *Expect) Run(t *txn.Txn) txn.Vote {
	for k, want := range e.expected {
		got, ok := t.Get(k)
		if !ok || got != want {
			return txn.VoteAbort
		}
	}
	return txn.VoteCommit
}

// RMW is a read-modify-write transaction: it reads everything in its
// readset (discarding the result), then increments every key in its
// writeset by one, then spins for approximately duration to simulate a
// transaction body that does real, CPU-bound work before committing. It
// always votes to commit.
type RMW struct {
	readSet  []txn.Key
	writeSet []txn.Key
	duration time.Duration
}

// NewRMW builds an RMW over explicit read and write sets.
func NewRMW(readSet, writeSet []txn.Key, duration time.Duration) *RMW {
	return &RMW{readSet: readSet, writeSet: writeSet, duration: duration}
}

// NewRandomRMW builds an RMW whose readSetSize read keys and writeSetSize
// write keys are drawn without replacement from [0, dbSize), mirroring the
// reference workload generator's randomized constructor. It panics if the
// database is too small to hold distinct read and write sets, the same
// precondition the reference RMW(dbsize, readsetsize, writesetsize)
// constructor asserts.
func NewRandomRMW(rng *rand.Rand, dbSize, readSetSize, writeSetSize int, duration time.Duration) *RMW {
	if dbSize < readSetSize+writeSetSize {
		panic("bodies: dbSize too small to hold distinct read and write sets")
	}
	chosen := make(map[txn.Key]struct{}, readSetSize+writeSetSize)
	readSet := make([]txn.Key, 0, readSetSize)
	for len(readSet) < readSetSize {
		k := txn.Key(rng.Intn(dbSize))
		if _, ok := chosen[k]; ok {
			continue
		}
		chosen[k] = struct{}{}
		readSet = append(readSet, k)
	}
	writeSet := make([]txn.Key, 0, writeSetSize)
	for len(writeSet) < writeSetSize {
		k := txn.Key(rng.Intn(dbSize))
		if _, ok := chosen[k]; ok {
			continue
		}
		chosen[k] = struct{}{}
		writeSet = append(writeSet, k)
	}
	return NewRMW(readSet, writeSet, duration)
}

func (r *RMW) ReadSet() []txn.Key  { return r.readSet }
func (r *RMW) WriteSet() []txn.Key { return r.writeSet }

func (r *RMW) Run(t *txn.Txn) txn.Vote {
	for _, k := range r.readSet {
		t.Get(k)
	}
	for _, k := range r.writeSet {
		v, _ := t.Get(k)
		t.Put(k, v+1)
	}

	if r.duration > 0 {
		spinUntil(r.duration)
	}
	return txn.VoteCommit
}

// spinUntil busy-waits for approximately d, the same CPU-bound approach the
// reference RMW::Run uses to simulate a transaction body with real
// execution cost rather than one that merely sleeps and frees its core.
func spinUntil(d time.Duration) {
	deadline := time.Now().Add(d)
	x := 100
	for {
		for i := 0; i < 1000; i++ {
			x = x + 2
			x = x * x
		}
		if time.Now().After(deadline) {
			return
		}
	}
}

func keysOf(m map[txn.Key]txn.Value) []txn.Key {
	keys := make([]txn.Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func cloneMap(m map[txn.Key]txn.Value) map[txn.Key]txn.Value {
	out := make(map[txn.Key]txn.Value, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
