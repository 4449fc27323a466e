// Package lockmgr implements the two lock managers the 2PL scheduler
// drives: LockManagerA, which grants only EXCLUSIVE locks, and
// LockManagerB, which grants SHARED and EXCLUSIVE locks and gives waiting
// writers priority over later readers to avoid starving them. Both keep a
// per-key FIFO queue of lock requests, a per-transaction wait count, and a
// ready queue that Release feeds as transactions finish acquiring every
// lock they asked for.
package lockmgr
