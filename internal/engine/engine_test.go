package engine

import (
	"testing"

	"github.com/newhook/hybridmem/internal/config"
	"github.com/newhook/hybridmem/internal/counters"
	"github.com/newhook/hybridmem/internal/obslog"
	"github.com/newhook/hybridmem/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, mutate func(*config.Config)) *Engine {
	t.Helper()

	cfg := config.Default()
	cfg.DRAMBanks = 4
	cfg.DRAMRows = 1024
	cfg.DRAMColumns = 1024

	if mutate != nil {
		mutate(&cfg)
	}

	log := obslog.New("error") // keep test output quiet
	return New(cfg, log)
}

func TestSingleReadToColdAddress(t *testing.T) {
	assert := assert.New(t)

	e := newTestEngine(t, nil)
	e.ProcessAccess(trace.OpRead, 0x0000)

	assert.Equal(uint64(1), e.Counters.TotalAccesses)
	assert.Equal(uint64(1), e.Counters.RowMisses)
	assert.Equal(uint64(0), e.Counters.RowHits)
	assert.Equal(uint64(30), e.Counters.TotalLatency)
}

func TestRowBufferHit(t *testing.T) {
	assert := assert.New(t)

	e := newTestEngine(t, nil)
	e.ProcessAccess(trace.OpRead, 0x0000)
	e.ProcessAccess(trace.OpRead, 0x0001)

	assert.Equal(uint64(1), e.Counters.RowMisses)
	assert.Equal(uint64(1), e.Counters.RowHits)
	assert.Equal(uint64(40), e.Counters.TotalLatency)
}

func TestRowBufferMissSameBank(t *testing.T) {
	assert := assert.New(t)

	e := newTestEngine(t, nil)
	e.ProcessAccess(trace.OpRead, 0x0000)
	e.ProcessAccess(trace.OpRead, 0x0004)

	assert.Equal(uint64(2), e.Counters.RowMisses)
	assert.Equal(uint64(0), e.Counters.RowHits)
	assert.Equal(uint64(60), e.Counters.TotalLatency)
}

func TestCrossBankIndependence(t *testing.T) {
	assert := assert.New(t)

	e := newTestEngine(t, nil)
	e.ProcessAccess(trace.OpRead, 0x0000)
	e.ProcessAccess(trace.OpRead, 0x1000)
	e.ProcessAccess(trace.OpRead, 0x0000)

	assert.Equal(uint64(2), e.Counters.RowMisses)
	assert.Equal(uint64(1), e.Counters.RowHits)
	assert.Equal(uint64(70), e.Counters.TotalLatency)
}

func TestHybridPromotion(t *testing.T) {
	assert := assert.New(t)

	e := newTestEngine(t, func(c *config.Config) {
		c.EnableFlash = true
		c.FlashCapacity = 4096 * 4
		c.FlashPageSize = 4096
		c.HotDataThreshold = 3
	})

	e.ProcessAccess(trace.OpRead, 0x5)
	e.ProcessAccess(trace.OpRead, 0x5)
	e.ProcessAccess(trace.OpRead, 0x5) // promotion fires here
	e.ProcessAccess(trace.OpRead, 0x5)

	assert.Equal(uint64(1), e.Counters.CachePromotions)
	assert.GreaterOrEqual(e.Counters.DRAMCacheHits, uint64(2))
	assert.Equal(uint64(2), e.Counters.DRAMCacheMisses)
}

func TestWriteThroughOnCacheHit(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	e := newTestEngine(t, func(c *config.Config) {
		c.EnableFlash = true
		c.FlashCapacity = 4096 * 4
		c.FlashPageSize = 4096
		c.HotDataThreshold = 2
	})

	e.ProcessAccess(trace.OpRead, 0x5)
	e.ProcessAccess(trace.OpRead, 0x5) // promoted to DRAM on this access
	require.Equal(uint64(1), e.Counters.CachePromotions)

	flashWritesBefore := e.Counters.FlashWrites
	flashLatencyBefore := e.Counters.FlashAccessLatency
	totalLatencyBefore := e.Counters.TotalLatency
	rowStatsBefore := e.Counters.RowHits + e.Counters.RowMisses

	e.ProcessAccess(trace.OpWrite, 0x5)

	assert.Equal(flashWritesBefore+1, e.Counters.FlashWrites)
	assert.Equal(flashLatencyBefore+e.cfg.FlashWriteLatency, e.Counters.FlashAccessLatency)
	assert.Equal(totalLatencyBefore+e.cfg.RowHitLatency+e.cfg.FlashWriteLatency, e.Counters.TotalLatency)
	assert.Equal(rowStatsBefore+1, e.Counters.RowHits+e.Counters.RowMisses)
}

func TestWriteThroughDoesNotTouchPageMetadata(t *testing.T) {
	assert := assert.New(t)

	e := newTestEngine(t, func(c *config.Config) {
		c.EnableFlash = true
		c.FlashCapacity = 4096 * 4
		c.FlashPageSize = 4096
		c.HotDataThreshold = 1
	})

	e.ProcessAccess(trace.OpWrite, 0x5) // promoted immediately (threshold 1)
	e.ProcessAccess(trace.OpWrite, 0x5) // cache-hit write-through

	page := e.flash.Pages[0]
	assert.Equal(uint32(0), page.WriteCount, "write-through must not bump page.write_count")
	assert.Equal(uint64(0), page.LastAccessTime, "write-through must not bump page.last_access_time")
}

func TestOutOfBoundsCountsAccessButMutatesNothing(t *testing.T) {
	assert := assert.New(t)

	e := newTestEngine(t, func(c *config.Config) {
		c.DRAMBanks = 1 // legacy decoder still addresses 4 banks
	})

	e.ProcessAccess(trace.OpRead, 0x1000) // bank 1, out of bounds for 1-bank array

	assert.Equal(uint64(1), e.Counters.TotalAccesses)
	assert.Equal(uint64(0), e.Counters.RowHits)
	assert.Equal(uint64(0), e.Counters.RowMisses)
	assert.Equal(uint64(0), e.Counters.TotalLatency)
}

func TestUnknownOperationCountsAccessButNoFurtherState(t *testing.T) {
	assert := assert.New(t)

	e := newTestEngine(t, nil)
	e.ProcessAccess(trace.Op('Z'), 0x0000)

	assert.Equal(uint64(1), e.Counters.TotalAccesses)
	assert.Equal(uint64(0), e.Counters.RowHits)
	assert.Equal(uint64(0), e.Counters.RowMisses)
	assert.Equal(uint64(0), e.Counters.TotalLatency)
}

func TestRefreshInjectedEveryIntervalAccesses(t *testing.T) {
	assert := assert.New(t)

	e := newTestEngine(t, func(c *config.Config) {
		c.RefreshInterval = 4
	})

	for i := 0; i < 12; i++ {
		e.ProcessAccess(trace.OpRead, uint64(i))
	}

	assert.Equal(uint64(3), e.Counters.RefreshCycles)
}

func TestClearZeroesEverything(t *testing.T) {
	assert := assert.New(t)

	e := newTestEngine(t, func(c *config.Config) {
		c.EnableFlash = true
		c.FlashCapacity = 4096 * 4
		c.FlashPageSize = 4096
	})

	e.ProcessAccess(trace.OpWrite, 0x5)
	e.ProcessAccess(trace.OpWrite, 0x1001)

	e.Clear()

	assert.Equal(counters.Counters{}, e.Counters)
	for _, b := range e.dram.Banks {
		_, ok := b.ActiveRow()
		assert.False(ok)
	}
}

func TestDRAMAccessesNeverExceedTotalAccesses(t *testing.T) {
	assert := assert.New(t)

	e := newTestEngine(t, func(c *config.Config) {
		c.EnableFlash = true
		c.FlashCapacity = 4096 * 4
		c.FlashPageSize = 4096
		c.HotDataThreshold = 3
	})

	for i := uint64(0); i < 50; i++ {
		e.ProcessAccess(trace.OpRead, i%10)
	}

	assert.LessOrEqual(e.Counters.DRAMAccesses(), e.Counters.TotalAccesses)
	assert.LessOrEqual(e.Counters.DRAMCacheHits+e.Counters.DRAMCacheMisses, e.Counters.TotalAccesses)
}
