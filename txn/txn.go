package txn

import (
	"fmt"
	"time"
)

// Key and Value are opaque scalars; no concurrency-control protocol
// interprets their contents.
type Key = uint64
type Value = uint64

// Status is a transaction's lifecycle state. INCOMPLETE is the only
// non-terminal, non-decided state; COMMITTED and ABORTED are the only
// terminal states.
type Status int

const (
	Incomplete Status = iota
	CompletedCommit
	CompletedAbort
	Committed
	Aborted
)

func (s Status) String() string {
	switch s {
	case Incomplete:
		return "INCOMPLETE"
	case CompletedCommit:
		return "COMPLETED_C"
	case CompletedAbort:
		return "COMPLETED_A"
	case Committed:
		return "COMMITTED"
	case Aborted:
		return "ABORTED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Vote is the decision a Body hands back from Run: whether its reads and
// buffered writes should be committed or the whole attempt discarded.
type Vote int

const (
	VoteCommit Vote = iota
	VoteAbort
)

// Body is the transaction's opaque, user-supplied logic. ReadSet and
// WriteSet are declared a priori, before execution begins; Run may only
// read and write keys within those declared sets.
type Body interface {
	ReadSet() []Key
	WriteSet() []Key
	Run(t *Txn) Vote
}

// Txn is the unit of work scheduled by the processor. Its readset and
// writeset are fixed for the duration of one execution attempt; Restart
// clears reads, writes, and status and expects a fresh unique ID from the
// caller (the processor's id oracle — see processor.Processor).
type Txn struct {
	id       uint64
	readSet  []Key
	writeSet []Key
	reads    map[Key]Value
	writes   map[Key]Value
	status   Status
	occStart time.Time

	body Body
}

// New wraps body in a fresh, INCOMPLETE transaction. The processor assigns
// id when the transaction is submitted.
func New(body Body) *Txn {
	return &Txn{
		readSet:  body.ReadSet(),
		writeSet: body.WriteSet(),
		reads:    make(map[Key]Value),
		writes:   make(map[Key]Value),
		status:   Incomplete,
		body:     body,
	}
}

func (t *Txn) ID() uint64        { return t.id }
func (t *Txn) SetID(id uint64)   { t.id = id }
func (t *Txn) ReadSet() []Key    { return t.readSet }
func (t *Txn) WriteSet() []Key   { return t.writeSet }
func (t *Txn) Status() Status    { return t.status }
func (t *Txn) Body() Body        { return t.body }

func (t *Txn) OCCStartTime() time.Time      { return t.occStart }
func (t *Txn) SetOCCStartTime(ts time.Time) { t.occStart = ts }

// Reads returns the key/value pairs observed during execution, populated by
// RecordRead before Run and consulted by Get inside Run.
func (t *Txn) Reads() map[Key]Value { return t.reads }

// Writes returns the key/value pairs proposed during execution, populated
// by Put inside Run.
func (t *Txn) Writes() map[Key]Value { return t.writes }

// RecordRead is called by the processor before Run to make a storage read
// visible to the body via Get. It is not itself part of the Body contract
// because the storage layer, not the transaction, knows how to read a key.
func (t *Txn) RecordRead(key Key, value Value) {
	t.reads[key] = value
}

// Get consults the buffered reads for key. It is the read accessor the spec
// grants to transaction bodies: it never touches storage directly.
func (t *Txn) Get(key Key) (Value, bool) {
	v, ok := t.reads[key]
	return v, ok
}

// Put records a proposed write. It is the write accessor granted to
// transaction bodies; the write only becomes visible to storage if the
// transaction's vote is VoteCommit and validation (where applicable)
// succeeds.
func (t *Txn) Put(key Key, value Value) {
	t.writes[key] = value
}

// Execute runs the body to completion and records its vote as the
// transaction's completed (but not yet validated/committed) status.
func (t *Txn) Execute() {
	switch t.body.Run(t) {
	case VoteCommit:
		t.status = CompletedCommit
	case VoteAbort:
		t.status = CompletedAbort
	default:
		panic(fmt.Sprintf("txn %d: body returned unrecognized vote", t.id))
	}
}

// MarkCommitted finalizes a transaction whose writes have been durably
// applied to storage. Requires Status() == CompletedCommit.
func (t *Txn) MarkCommitted() {
	if t.status != CompletedCommit {
		panic(fmt.Sprintf("txn %d: MarkCommitted called with status %s", t.id, t.status))
	}
	t.status = Committed
}

// MarkAborted finalizes a transaction whose body voted to abort. Requires
// Status() == CompletedAbort.
func (t *Txn) MarkAborted() {
	if t.status != CompletedAbort {
		panic(fmt.Sprintf("txn %d: MarkAborted called with status %s", t.id, t.status))
	}
	t.status = Aborted
}

// Restart clears everything about this execution attempt except the
// declared read/write sets, so the transaction can be resubmitted under a
// fresh unique ID. Callers must still call SetID with a new ID obtained
// from the processor's id oracle.
func (t *Txn) Restart() {
	t.reads = make(map[Key]Value)
	t.writes = make(map[Key]Value)
	t.status = Incomplete
}
