// Package counters holds the performance counter bundle the access engine
// updates on every call. Keeping it as a single record, rather than
// scattered fields on the engine, makes the update contract explicit and
// lets the classifier and dispatcher share one pointer instead of returning
// deltas to be applied by hand.
package counters

// Counters is the full set of simulation statistics. All fields are
// monotonically non-decreasing across ProcessAccess calls until Reset.
type Counters struct {
	TotalAccesses uint64
	RowHits       uint64
	RowMisses     uint64
	RefreshCycles uint64
	TotalLatency  uint64

	FlashReads  uint64
	FlashWrites uint64

	CachePromotions uint64
	CacheEvictions  uint64

	DRAMCacheHits   uint64
	DRAMCacheMisses uint64

	DRAMAccessLatency  uint64
	FlashAccessLatency uint64
	CacheOverhead      uint64
}

// Reset zeroes every counter. Bank/page byte storage is reset separately by
// the owning engine.
func (c *Counters) Reset() {
	*c = Counters{}
}

// AddLatency accumulates a latency value into the running total. Callers
// are responsible for also crediting the tier-specific bucket
// (DRAMAccessLatency, FlashAccessLatency, CacheOverhead) as appropriate;
// this only maintains the grand total.
func (c *Counters) AddLatency(cycles uint64) {
	c.TotalLatency += cycles
}

// DRAMAccesses returns the number of accesses dispatched to the DRAM tier,
// i.e. RowHits + RowMisses (testable property #2 in spec.md §8).
func (c *Counters) DRAMAccesses() uint64 {
	return c.RowHits + c.RowMisses
}

// FlashAccesses returns the number of accesses dispatched to the Flash
// tier, i.e. FlashReads + FlashWrites.
func (c *Counters) FlashAccesses() uint64 {
	return c.FlashReads + c.FlashWrites
}
