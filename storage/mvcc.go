package storage

import (
	"sync"

	"github.com/google/btree"

	"txnproc/queue"
	"txnproc/txn"
)

// version is one entry in a key's version list: the value written at
// versionID (the transaction's timestamp) and the largest timestamp any
// reader has used to observe it, maxReadID.
type version struct {
	value     txn.Value
	versionID uint64
	maxReadID uint64
}

// versionItem adapts *version to btree.Item, ordering by versionID. Each
// key's version list is one *btree.BTree of these, kept in strictly
// increasing versionID order by construction (Write inserts one per call,
// never replacing an existing versionID).
type versionItem struct {
	v *version
}

func (a versionItem) Less(than btree.Item) bool {
	return a.v.versionID < than.(versionItem).v.versionID
}

// MVCCStore implements timestamp-ordering multi-version concurrency
// control: every key maps to a list of versions ordered by the timestamp
// that created them, and reads and writes are validated against the
// largest timestamp that has already observed a version, rather than
// against locks. google/btree backs each key's version list so Read's
// "largest versionID not exceeding ts" lookup is a single descending
// range walk instead of a linear scan.
type MVCCStore struct {
	versions *queue.AtomicMap[txn.Key, *btree.BTree]
	mutexes  *queue.AtomicMap[txn.Key, *sync.Mutex]
}

// NewMVCCStore returns an empty store.
func NewMVCCStore() *MVCCStore {
	return &MVCCStore{
		versions: queue.NewAtomicMap[txn.Key, *btree.BTree](queue.Uint64Hash),
		mutexes:  queue.NewAtomicMap[txn.Key, *sync.Mutex](queue.Uint64Hash),
	}
}

func (s *MVCCStore) treeFor(key txn.Key) *btree.BTree {
	return s.versions.LoadOrStore(key, func() *btree.BTree { return btree.New(8) })
}

func (s *MVCCStore) mutexFor(key txn.Key) *sync.Mutex {
	return s.mutexes.LoadOrStore(key, func() *sync.Mutex { return &sync.Mutex{} })
}

// Lock and Unlock expose the per-key mutex so a caller can make a
// Read/CheckWrite/Write sequence atomic with respect to every other
// transaction touching the same key — the access pattern MVCC-TO's write
// step needs: validate against the current version list, then install a
// new version, with nothing else allowed to intervene.
func (s *MVCCStore) Lock(key txn.Key)   { s.mutexFor(key).Lock() }
func (s *MVCCStore) Unlock(key txn.Key) { s.mutexFor(key).Unlock() }

// versionAsOf returns the version with the largest versionID not exceeding
// ts, or nil if every version for this key was written after ts (including
// the case where the key has no versions at all).
func versionAsOf(tree *btree.BTree, ts uint64) *version {
	var found *version
	tree.DescendLessOrEqual(versionItem{v: &version{versionID: ts}}, func(item btree.Item) bool {
		found = item.(versionItem).v
		return false
	})
	return found
}

// Read returns the value of the version visible as of ts — the version
// with the largest versionID not exceeding ts — and bumps that version's
// maxReadID to ts if ts is larger than what it already recorded. Callers
// performing a read that must be atomic with a later write to the same key
// should hold Lock across both calls.
func (s *MVCCStore) Read(key txn.Key, ts uint64) (txn.Value, bool) {
	v := versionAsOf(s.treeFor(key), ts)
	if v == nil {
		return 0, false
	}
	if ts > v.maxReadID {
		v.maxReadID = ts
	}
	return v.value, true
}

// CheckWrite reports whether a write to key at timestamp ts is admissible:
// it is, unless some transaction has already read the version this write
// would shadow at a timestamp later than ts, which would mean that reader
// should have seen this write and didn't. A key with no prior versions
// always admits a write. Callers must hold Lock across CheckWrite and the
// Write it gates, since a concurrent writer could otherwise install a
// shadowing version between the check and the write.
func (s *MVCCStore) CheckWrite(key txn.Key, ts uint64) bool {
	v := versionAsOf(s.treeFor(key), ts)
	if v == nil {
		return true
	}
	return v.maxReadID <= ts
}

// Write installs a new version of key, visible from timestamp ts onward.
// Inserting by versionID keeps the per-key version list ordered without
// any explicit shifting: google/btree's ReplaceOrInsert places it correctly
// among whatever versions already exist.
func (s *MVCCStore) Write(key txn.Key, value txn.Value, ts uint64) {
	s.treeFor(key).ReplaceOrInsert(versionItem{v: &version{value: value, versionID: ts}})
}

// Timestamp returns the versionID of the newest version of key, or 0 if
// none exists. MVCC-TO's dispatch logic does not need this — every write
// already carries its own timestamp — but the method exists so MVCCStore
// satisfies Storage uniformly with SingleVersionStore.
func (s *MVCCStore) Timestamp(key txn.Key) uint64 {
	tree, ok := s.versions.Get(key)
	if !ok {
		return 0
	}
	max := tree.Max()
	if max == nil {
		return 0
	}
	return max.(versionItem).v.versionID
}

// InitStorage installs a version 0 (value 0, versionID 0) for every key in
// [0, dbSize), so a benchmark run starts from a fully-allocated key space.
func (s *MVCCStore) InitStorage(dbSize uint64) {
	for k := txn.Key(0); k < dbSize; k++ {
		s.treeFor(k).ReplaceOrInsert(versionItem{v: &version{value: 0, versionID: 0}})
	}
}
