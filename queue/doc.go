// Package queue provides the mutex-guarded collection primitives that the
// transaction processor treats as external collaborators: an atomically
// pushable/poppable FIFO queue, a sharded concurrency-safe map, and an
// atomically mutable set. None of these types needs to be lock-free to
// satisfy the scheduler's contract (see the processor package) — each only
// needs its operations (Push/Pop, Get/Set/Erase, Insert/Erase/Contains) to
// never race with each other.
package queue
