package residency

import "github.com/newhook/hybridmem/internal/counters"

// Decision is the outcome of the cache management step in spec.md §4.5.d:
// at most one of Promoted/Evicted is true for any single access.
type Decision struct {
	Resident bool
	Promoted bool
	Evicted  bool
}

// Classifier implements the hot/cold classification and DRAM-as-cache
// promotion/eviction policy (spec.md §4.4, §4.5.a-d). It owns the
// frequency map and the residency store; the access engine owns
// everything downstream of the Decide call.
type Classifier struct {
	Frequency *FrequencyMap
	Residency Store
	Threshold uint64
}

// NewClassifier constructs a classifier with the given residency store and
// hot-data threshold.
func NewClassifier(store Store, threshold uint64) *Classifier {
	return &Classifier{
		Frequency: NewFrequencyMap(),
		Residency: store,
		Threshold: threshold,
	}
}

// Decide executes spec.md §4.5 steps a-d for a single access: increments
// the frequency counter, reads current residency, and applies the
// promotion/eviction priority order, crediting c for whichever transition
// fires (at most one).
func (cl *Classifier) Decide(address uint64, promotionLatency, evictionLatency uint64, c *counters.Counters) Decision {
	freq := cl.Frequency.Increment(address)

	loc := cl.Residency.Get(address)
	resident := loc == InDRAM
	hot := freq >= cl.Threshold

	switch {
	case hot && !resident:
		c.CachePromotions++
		c.CacheOverhead += promotionLatency
		c.AddLatency(promotionLatency)
		cl.Residency.Set(address, InDRAM)

		return Decision{Resident: true, Promoted: true}

	case !hot && resident:
		c.CacheEvictions++
		c.CacheOverhead += evictionLatency
		c.AddLatency(evictionLatency)
		cl.Residency.Set(address, InFlash)

		return Decision{Resident: false, Evicted: true}

	default:
		return Decision{Resident: resident}
	}
}

// IsHot reports whether address's observed access count has reached the
// hot-data threshold. Exposed for callers/tests that need the raw
// classification independent of a Decide call's side effects.
func (cl *Classifier) IsHot(address uint64) bool {
	return cl.Frequency.Count(address) >= cl.Threshold
}

// Clear resets both the frequency map and the residency store, the way
// spec.md §3's lifecycle requires for clear/initialize.
func (cl *Classifier) Clear(newResidency Store) {
	cl.Frequency.Clear()
	cl.Residency = newResidency
}
