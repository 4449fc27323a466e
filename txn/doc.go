// Package txn defines the transaction object that every concurrency-control
// mode in the processor package schedules, executes, validates, and
// restarts. A Txn carries its declared read/write sets, the values it has
// observed and proposed, its lifecycle status, and (for OCC) the wall-clock
// time its execution attempt began.
//
// A Txn's actual read-modify-write logic lives behind the Body interface,
// kept separate from the bookkeeping struct the same way the teacher keeps
// its mvcc.MvccTxn (buffering) apart from the Command interface (logic) in
// kv/transaction/commands. The bodies package provides the reference bodies
// used by tests and the benchmark harness: Noop, Put, Expect, and RMW.
package txn
