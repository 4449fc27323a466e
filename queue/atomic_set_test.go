package queue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtomicSetInsertContainsErase(t *testing.T) {
	s := NewAtomicSet[int]()
	require.False(t, s.Contains(1))

	s.Insert(1)
	require.True(t, s.Contains(1))
	require.Equal(t, 1, s.Size())

	s.Erase(1)
	require.False(t, s.Contains(1))
	require.Equal(t, 0, s.Size())
}

func TestAtomicSetSnapshotIsIndependentCopy(t *testing.T) {
	s := NewAtomicSet[int]()
	s.Insert(1)
	s.Insert(2)

	snap := s.Snapshot()
	require.ElementsMatch(t, []int{1, 2}, snap)

	s.Insert(3)
	require.ElementsMatch(t, []int{1, 2}, snap)
	require.ElementsMatch(t, []int{1, 2, 3}, s.Snapshot())
}
