// Package processor implements the mode-dispatched transaction scheduler:
// the component that accepts submitted transactions, runs them under one
// of six concurrency-control protocols, and publishes terminal outcomes.
// A Processor owns an incoming queue, a completed queue, a results queue,
// a worker pool, a storage engine, and — for the two locking modes — a
// lock manager. Submit hands ownership of a transaction to the processor;
// NextResult blocks until a terminal transaction is available.
//
// Each mode's scheduler loop runs on its own goroutine and is implemented
// in its own file (serial.go, twopl.go, occ.go, pocc.go, mvcc.go);
// processor.go holds the construction, shutdown, and id-oracle machinery
// shared by all of them.
package processor
