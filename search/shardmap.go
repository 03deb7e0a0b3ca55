package search

import (
	"runtime"
	"sync"
)

// shard is one partition of a shardedRelevanceMap: its own mutex guarding
// its own sub-map, the same pairing the teacher uses per index entry in
// ConcurrentIndexEntry (utils/concurrent_types.go) — here the lock protects
// a small map instead of a pair of parallel slices.
type shard struct {
	mu     sync.Mutex
	values map[int]float64
}

// shardedRelevanceMap is the concurrent aggregator: a map from document id
// to accumulated relevance, partitioned into a fixed number of independently
// locked shards so that workers accumulating contributions for disjoint
// document ids can proceed without contending on a single global lock.
// Key k always lives in shard k mod len(shards).
type shardedRelevanceMap struct {
	shards []*shard
}

// newShardedRelevanceMap creates an aggregator with b shards. b must be
// positive; the scorer defaults it to a small multiple of
// runtime.NumCPU() (see defaultShardCount).
func newShardedRelevanceMap(b int) *shardedRelevanceMap {
	if b < 1 {
		b = 1
	}
	shards := make([]*shard, b)
	for i := range shards {
		shards[i] = &shard{values: make(map[int]float64)}
	}
	return &shardedRelevanceMap{shards: shards}
}

func (m *shardedRelevanceMap) shardFor(key int) *shard {
	idx := key % len(m.shards)
	if idx < 0 {
		idx += len(m.shards)
	}
	return m.shards[idx]
}

// add acquires the owning shard's lock and adds delta to values[key],
// creating the entry on demand. This is the Go stand-in for the source's
// Access() returning a lock-guarded reference: the lock is held only for
// the duration of this call instead of the lifetime of a returned handle.
func (m *shardedRelevanceMap) add(key int, delta float64) {
	s := m.shardFor(key)
	s.mu.Lock()
	s.values[key] += delta
	s.mu.Unlock()
}

// erase acquires the owning shard's lock and removes key, if present.
func (m *shardedRelevanceMap) erase(key int) {
	s := m.shardFor(key)
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
}

// merge takes each shard's lock in turn, in fixed shard-index order, and
// folds them into a single map. Not safe to call concurrently with
// mutating calls — the caller must ensure all add/erase workers have
// finished first, the same contract the source places on BuildOrdinaryMap.
func (m *shardedRelevanceMap) merge() map[int]float64 {
	result := make(map[int]float64)
	for _, s := range m.shards {
		s.mu.Lock()
		for k, v := range s.values {
			result[k] = v
		}
		s.mu.Unlock()
	}
	return result
}

// defaultShardCount is used when the caller does not ask for a specific
// shard count. A small constant was adequate in the source; the engine
// instead scales it with GOMAXPROCS so it tracks the available hardware
// concurrency, per spec §4.6 / §4.9.
func defaultShardCount() int {
	n := runtime.GOMAXPROCS(0)
	if n < 4 {
		n = 4
	}
	return n
}
