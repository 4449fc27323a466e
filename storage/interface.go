package storage

import "txnproc/txn"

// Storage is the read/write surface every concurrency-control mode's
// dispatch logic is written against. SingleVersionStore and MVCCStore both
// satisfy it; Lock/Unlock/CheckWrite are no-ops (respectively: true) for
// SingleVersionStore, the same default the reference implementation's
// Storage base class gives every mode that isn't MVCC-TO.
type Storage interface {
	// Read returns the value visible to a reader at timestamp ts, and
	// whether such a value exists: false for a key the store has never
	// held, and in MVCCStore also for a key whose every version is newer
	// than ts.
	Read(key txn.Key, ts uint64) (txn.Value, bool)

	// Write installs value as visible from timestamp ts onward.
	Write(key txn.Key, value txn.Value, ts uint64)

	// Timestamp returns the last-write timestamp recorded for key, or 0 if
	// the key has never been written. SingleVersionStore's only notion of
	// versioning; MVCCStore does not need it but implements it for
	// interface uniformity.
	Timestamp(key txn.Key) uint64

	// Lock and Unlock guard a key's per-key critical section across a
	// validate-then-apply sequence. MVCC-TO uses them to make CheckWrite
	// followed by Write atomic with respect to concurrent readers and
	// writers of the same key; SingleVersionStore's implementation is a
	// no-op because SERIAL/2PL/OCC never call them (2PL instead uses the
	// lockmgr package's coarser-grained locking).
	Lock(key txn.Key)
	Unlock(key txn.Key)

	// CheckWrite reports whether writing key at timestamp ts is admissible
	// given what has already been read. SingleVersionStore always returns
	// true; MVCCStore implements the timestamp-ordering write rule.
	CheckWrite(key txn.Key, ts uint64) bool

	// InitStorage pre-populates the key space [0, dbSize) with a zero value
	// so benchmark runs start from a known, fully-allocated database.
	InitStorage(dbSize uint64)
}
