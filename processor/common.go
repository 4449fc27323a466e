package processor

import (
	"sort"
	"time"

	"txnproc/txn"
)

// nowTS returns the current wall-clock time as a nanosecond-resolution
// uint64, the unit every non-MVCC mode uses for Storage's cosmetic ts
// parameter and for last_write_time / occ_start_time comparisons.
func nowTS() uint64 {
	return uint64(time.Now().UnixNano())
}

// unionKeys returns the deduplicated union of a and b, preserving a's
// order followed by b's.
func unionKeys(a, b []txn.Key) []txn.Key {
	seen := make(map[txn.Key]struct{}, len(a)+len(b))
	out := make([]txn.Key, 0, len(a)+len(b))
	for _, k := range a {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	for _, k := range b {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// loadReads populates t's buffered reads for every key in its readset and
// writeset — a body may Get either — by reading each from store as of ts.
// Keys storage has never seen are simply left unpopulated; Get then
// reports ok=false and the body decides whether that is fatal to it.
func (p *Processor) loadReads(t *txn.Txn, ts uint64) {
	for _, k := range unionKeys(t.ReadSet(), t.WriteSet()) {
		if v, ok := p.store.Read(k, ts); ok {
			t.RecordRead(k, v)
		}
	}
}

// sortedKeys returns the deduplicated keys of ks in ascending order.
// MVCC-TO's write phase acquires per-key mutexes in this order to avoid
// deadlocking against another transaction acquiring the same keys in
// reverse.
func sortedKeys(ks []txn.Key) []txn.Key {
	seen := make(map[txn.Key]struct{}, len(ks))
	out := make([]txn.Key, 0, len(ks))
	for _, k := range ks {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// applyWrites installs every buffered write in t at timestamp ts.
func (p *Processor) applyWrites(t *txn.Txn, ts uint64) {
	for k, v := range t.Writes() {
		p.store.Write(k, v, ts)
	}
}
