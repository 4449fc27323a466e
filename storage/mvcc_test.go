package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMVCCStoreReadAfterWriteFromFuture(t *testing.T) {
	s := NewMVCCStore()
	s.InitStorage(10)

	const k = uint64(3)
	s.Write(k, 100, 5)

	v, ok := s.Read(k, 3)
	require.True(t, ok)
	require.Equal(t, uint64(0), v, "a reader at ts=3 must not see a version written at ts=5")

	v, ok = s.Read(k, 5)
	require.True(t, ok)
	require.Equal(t, uint64(100), v)
}

func TestMVCCStoreValidateRestart(t *testing.T) {
	s := NewMVCCStore()
	s.InitStorage(10)

	const k = uint64(7)

	_, ok := s.Read(k, 5)
	require.True(t, ok)

	require.False(t, s.CheckWrite(k, 2), "a write timestamped before an already-observed read must be rejected")

	require.True(t, s.CheckWrite(k, 9))
	s.Write(k, 77, 9)
	v, ok := s.Read(k, 9)
	require.True(t, ok)
	require.Equal(t, uint64(77), v)
}

func TestMVCCStoreCheckWriteNoPriorVersionAdmits(t *testing.T) {
	s := NewMVCCStore()
	require.True(t, s.CheckWrite(99, 1))
}

func TestMVCCStoreVersionListOrderedDescending(t *testing.T) {
	s := NewMVCCStore()
	const k = uint64(1)

	s.Write(k, 10, 10)
	s.Write(k, 20, 20)
	s.Write(k, 30, 30)

	v, ok := s.Read(k, 15)
	require.True(t, ok)
	require.Equal(t, uint64(10), v)

	v, ok = s.Read(k, 25)
	require.True(t, ok)
	require.Equal(t, uint64(20), v)

	v, ok = s.Read(k, 100)
	require.True(t, ok)
	require.Equal(t, uint64(30), v)

	_, ok = s.Read(k, 5)
	require.False(t, ok)
}

func TestMVCCStoreLockUnlockGuardsCriticalSection(t *testing.T) {
	s := NewMVCCStore()
	const k = uint64(42)

	s.Lock(k)
	ok := s.CheckWrite(k, 1)
	require.True(t, ok)
	s.Write(k, 5, 1)
	s.Unlock(k)

	v, ok := s.Read(k, 1)
	require.True(t, ok)
	require.Equal(t, uint64(5), v)
}
