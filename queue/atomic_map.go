package queue

import "sync"

const defaultShardCount = 32

// AtomicMap is a sharded, concurrency-safe key/value map. It is the Go
// analogue of the reference implementation's AtomicMap<K, V>, reshaped as a
// sharded map (rather than one map behind one RWMutex) the way
// go-ycsb/pkg/util.ConcurrentMap shards an int->int64 map to avoid a single
// lock becoming a bottleneck under the scheduler's write-heavy access
// pattern. Used for the per-key mutex registry that storage lazily
// populates instead of pre-allocating a million-entry map up front.
type AtomicMap[K comparable, V any] struct {
	shards []*mapShard[K, V]
	hash   func(K) uint32
}

type mapShard[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// NewAtomicMap returns an empty sharded map. hash distributes keys across
// shards; Uint64Hash serves the uint64 keys used throughout this module.
func NewAtomicMap[K comparable, V any](hash func(K) uint32) *AtomicMap[K, V] {
	m := &AtomicMap[K, V]{
		shards: make([]*mapShard[K, V], defaultShardCount),
		hash:   hash,
	}
	for i := range m.shards {
		m.shards[i] = &mapShard[K, V]{items: make(map[K]V)}
	}
	return m
}

func (m *AtomicMap[K, V]) shardFor(key K) *mapShard[K, V] {
	return m.shards[m.hash(key)%uint32(len(m.shards))]
}

// Size returns the total number of entries across all shards.
func (m *AtomicMap[K, V]) Size() int {
	total := 0
	for _, shard := range m.shards {
		shard.mu.RLock()
		total += len(shard.items)
		shard.mu.RUnlock()
	}
	return total
}

// Get returns the value stored for key, if any.
func (m *AtomicMap[K, V]) Get(key K) (V, bool) {
	shard := m.shardFor(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	v, ok := shard.items[key]
	return v, ok
}

// Set atomically stores value for key, replacing any previous value.
func (m *AtomicMap[K, V]) Set(key K, value V) {
	shard := m.shardFor(key)
	shard.mu.Lock()
	shard.items[key] = value
	shard.mu.Unlock()
}

// Erase atomically removes key from the map.
func (m *AtomicMap[K, V]) Erase(key K) {
	shard := m.shardFor(key)
	shard.mu.Lock()
	delete(shard.items, key)
	shard.mu.Unlock()
}

// LoadOrStore returns the existing value for key if present; otherwise it
// calls create(), stores the result, and returns that. create runs while
// the shard's write lock is held, after a second lookup, so it runs at most
// once per key even under contention; it must not call back into the map.
func (m *AtomicMap[K, V]) LoadOrStore(key K, create func() V) V {
	shard := m.shardFor(key)
	shard.mu.RLock()
	if v, ok := shard.items[key]; ok {
		shard.mu.RUnlock()
		return v
	}
	shard.mu.RUnlock()

	shard.mu.Lock()
	defer shard.mu.Unlock()
	if v, ok := shard.items[key]; ok {
		return v
	}
	v := create()
	shard.items[key] = v
	return v
}

// Uint64Hash is a hash function for AtomicMap keyed by uint64, suitable for
// the integer keys used throughout this module.
func Uint64Hash(k uint64) uint32 {
	// MurmurHash3 fmix64 finalizer, cheap and well distributed for sequential and
	// sparse integer key spaces alike.
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return uint32(k)
}
