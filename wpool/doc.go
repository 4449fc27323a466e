// Package wpool implements the fixed worker pool the processor dispatches
// transaction bodies (and, for MVCC and parallel OCC, validation) onto. A
// Pool holds a fixed number of workers, each with its own buffered task
// channel; Submit picks a worker at random rather than round-robin, the Go
// channel-based analogue of the reference thread pool's
// rand() % thread_count_ dispatch, chosen over an unbuffered shared queue
// so that one slow task cannot head-of-line block tasks queued behind it
// on every other worker.
package wpool
