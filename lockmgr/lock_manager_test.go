package lockmgr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLockManagerAGrantsExclusiveOnly(t *testing.T) {
	m := NewLockManagerA()

	require.True(t, m.WriteLock(1, 10))
	require.False(t, m.ReadLock(2, 10), "a second request on an already-held key must wait, even a read")

	mode, owners := m.Status(10)
	require.Equal(t, Exclusive, mode)
	require.Equal(t, []uint64{1}, owners)

	m.Release(1, 10)
	mode, owners = m.Status(10)
	require.Equal(t, Exclusive, mode)
	require.Equal(t, []uint64{2}, owners)

	id, ok := m.Ready().Pop()
	require.True(t, ok)
	require.Equal(t, uint64(2), id)
}

func TestLockManagerAFIFOOrder(t *testing.T) {
	m := NewLockManagerA()
	require.True(t, m.WriteLock(1, 10))
	require.False(t, m.WriteLock(2, 10))
	require.False(t, m.WriteLock(3, 10))

	m.Release(1, 10)
	id, ok := m.Ready().Pop()
	require.True(t, ok)
	require.Equal(t, uint64(2), id)
	_, ok = m.Ready().Pop()
	require.False(t, ok, "txn 3 is still behind txn 2 in the queue")

	m.Release(2, 10)
	id, ok = m.Ready().Pop()
	require.True(t, ok)
	require.Equal(t, uint64(3), id)
}

func TestLockManagerBSharedLocksCoexist(t *testing.T) {
	m := NewLockManagerB()

	require.True(t, m.ReadLock(1, 10))
	require.True(t, m.ReadLock(2, 10))
	require.True(t, m.ReadLock(3, 10))

	mode, owners := m.Status(10)
	require.Equal(t, Shared, mode)
	require.ElementsMatch(t, []uint64{1, 2, 3}, owners)
}

func TestLockManagerBExclusiveWaitsBehindSharedOwners(t *testing.T) {
	m := NewLockManagerB()

	require.True(t, m.ReadLock(1, 10))
	require.False(t, m.WriteLock(2, 10))

	mode, owners := m.Status(10)
	require.Equal(t, Shared, mode)
	require.Equal(t, []uint64{1}, owners)

	m.Release(1, 10)
	id, ok := m.Ready().Pop()
	require.True(t, ok)
	require.Equal(t, uint64(2), id)
}

// TestLockManagerBPreventsWriterStarvation grounds the writer-starvation
// scenario: a writer queued behind a long-running reader must not be
// starved by a stream of readers that arrive after it, because a SHARED
// request is only granted when no EXCLUSIVE request — owner or waiter —
// is already queued for that key.
func TestLockManagerBPreventsWriterStarvation(t *testing.T) {
	m := NewLockManagerB()

	require.True(t, m.ReadLock(1, 0))
	require.False(t, m.WriteLock(2, 0), "the writer must queue behind the active reader")

	for i := uint64(3); i < 103; i++ {
		require.False(t, m.ReadLock(i, 0), "readers arriving after a queued writer must wait, not jump ahead of it")
	}

	m.Release(1, 0)
	id, ok := m.Ready().Pop()
	require.True(t, ok)
	require.Equal(t, uint64(2), id, "the writer must be the very next owner, not any of the 100 later readers")

	mode, owners := m.Status(0)
	require.Equal(t, Exclusive, mode)
	require.Equal(t, []uint64{2}, owners)
}

func TestLockManagerBReleaseAdmitsAllSharedOwnersAtOnce(t *testing.T) {
	m := NewLockManagerB()

	require.True(t, m.WriteLock(1, 0))
	require.False(t, m.ReadLock(2, 0))
	require.False(t, m.ReadLock(3, 0))

	m.Release(1, 0)

	seen := map[uint64]bool{}
	for i := 0; i < 2; i++ {
		id, ok := m.Ready().Pop()
		require.True(t, ok)
		seen[id] = true
	}
	require.True(t, seen[2])
	require.True(t, seen[3])

	mode, owners := m.Status(0)
	require.Equal(t, Shared, mode)
	require.ElementsMatch(t, []uint64{2, 3}, owners)
}

func TestLockManagerStatusUnlockedOnEmptyQueue(t *testing.T) {
	m := NewLockManagerB()
	mode, owners := m.Status(999)
	require.Equal(t, Unlocked, mode)
	require.Nil(t, owners)
}
