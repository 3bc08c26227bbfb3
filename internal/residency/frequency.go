package residency

// FrequencyMap tracks the number of times each address has been accessed.
// Entries only grow; they are reset wholesale via Clear.
type FrequencyMap struct {
	counts map[uint64]uint64
}

// NewFrequencyMap returns an empty frequency map.
func NewFrequencyMap() *FrequencyMap {
	return &FrequencyMap{counts: make(map[uint64]uint64)}
}

// Increment bumps address's count by one and returns the new count.
func (f *FrequencyMap) Increment(address uint64) uint64 {
	f.counts[address]++
	return f.counts[address]
}

// Count returns the current access count for address, 0 if never seen.
func (f *FrequencyMap) Count(address uint64) uint64 {
	return f.counts[address]
}

// Clear empties the frequency map.
func (f *FrequencyMap) Clear() {
	f.counts = make(map[uint64]uint64)
}
