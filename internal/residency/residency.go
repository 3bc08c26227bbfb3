// Package residency implements the hot/cold classifier and the residency
// map that track, per address, how many times it has been accessed and
// whether it is currently resident in the DRAM cache (spec.md §4.4).
package residency

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Location is the residency state of an address. Unlike the C++
// reference's map<uint64_t,bool> (which conflates "never seen" with "in
// Flash"), Location has a distinct Unknown case for addresses that have
// never been observed (spec.md §9).
type Location int

const (
	Unknown Location = iota
	InDRAM
	InFlash
)

// Store is the residency map abstraction. The reference is unbounded;
// spec.md §9 suggests bounding it with LRU when memory pressure matters.
// Both NewUnboundedStore and NewBoundedStore implement Store.
type Store interface {
	Get(address uint64) Location
	Set(address uint64, loc Location)
}

// unboundedStore is a flat map, matching the reference exactly.
type unboundedStore struct {
	m map[uint64]Location
}

// NewUnboundedStore returns the default, reference-faithful residency
// store: it never forgets an address once seen.
func NewUnboundedStore() Store {
	return &unboundedStore{m: make(map[uint64]Location)}
}

func (s *unboundedStore) Get(address uint64) Location {
	if loc, ok := s.m[address]; ok {
		return loc
	}

	return Unknown
}

func (s *unboundedStore) Set(address uint64, loc Location) {
	s.m[address] = loc
}

// boundedStore is an LRU-backed residency map: addresses may be forgotten
// under memory pressure, reverting to Unknown. This is independent of the
// DRAM-cache promotion/eviction policy in the access engine; it only
// bounds the bookkeeping structure itself.
type boundedStore struct {
	cache *lru.Cache[uint64, Location]
}

// NewBoundedStore returns a residency store that tracks at most capacity
// addresses, evicting the least-recently-touched entry when full.
func NewBoundedStore(capacity int) Store {
	cache, err := lru.New[uint64, Location](capacity)
	if err != nil {
		// Only returned for capacity <= 0; callers are expected to gate
		// on Config.ResidencyCapacity > 0 before calling this.
		panic(err)
	}

	return &boundedStore{cache: cache}
}

func (s *boundedStore) Get(address uint64) Location {
	if loc, ok := s.cache.Get(address); ok {
		return loc
	}

	return Unknown
}

func (s *boundedStore) Set(address uint64, loc Location) {
	s.cache.Add(address, loc)
}
