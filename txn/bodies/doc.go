// Package bodies provides the reference transaction bodies used by the
// processor's tests and the benchmark harness: Noop, Put, Expect, and RMW
// (read-modify-write). Each is an opaque Body in the sense of the txn
// package — the processor never knows their Run logic, only that they
// declare a read/write set and eventually vote commit or abort.
package bodies
