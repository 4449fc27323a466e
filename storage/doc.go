// Package storage provides the two storage engines the processor modes
// read and write through: SingleVersionStore, a plain keyed mapping with a
// last-write timestamp (used by SERIAL, 2PL, and OCC), and MVCCStore, a
// keyed mapping to per-key, timestamp-ordered version lists (used by
// MVCC-TO). Both implement the same Storage interface, the Go analogue of
// the reference implementation's Storage base class with its MVCC-only
// Lock/Unlock/CheckWrite hooks.
//
// Per-key synchronization for MVCCStore is lazily allocated rather than
// pre-populated for the whole key space: a sharded queue.AtomicMap hands
// out one *sync.Mutex per key on first touch, which meets the same
// invariant (concurrent operations on distinct keys never serialize)
// without the million-entry startup cost the reference implementation
// pays in InitStorage.
package storage
