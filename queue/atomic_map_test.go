package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtomicMapGetSetErase(t *testing.T) {
	m := NewAtomicMap[uint64, string](Uint64Hash)
	_, ok := m.Get(1)
	require.False(t, ok)

	m.Set(1, "one")
	v, ok := m.Get(1)
	require.True(t, ok)
	require.Equal(t, "one", v)
	require.Equal(t, 1, m.Size())

	m.Erase(1)
	_, ok = m.Get(1)
	require.False(t, ok)
}

func TestAtomicMapLoadOrStoreReusesExisting(t *testing.T) {
	m := NewAtomicMap[uint64, *int](Uint64Hash)
	calls := 0
	create := func() *int {
		calls++
		v := 42
		return &v
	}

	a := m.LoadOrStore(1, create)
	b := m.LoadOrStore(1, create)
	require.Same(t, a, b)
	require.Equal(t, 1, calls)
}

func TestAtomicMapLoadOrStoreConcurrentSameKey(t *testing.T) {
	m := NewAtomicMap[uint64, *sync.Mutex](Uint64Hash)
	var wg sync.WaitGroup
	results := make([]*sync.Mutex, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = m.LoadOrStore(7, func() *sync.Mutex { return &sync.Mutex{} })
		}(i)
	}
	wg.Wait()
	for i := 1; i < 100; i++ {
		require.Same(t, results[0], results[i])
	}
}
