// Package engine implements the access-processing engine: the
// orchestrator that, for each incoming (op, address), consults the
// classifier, dispatches to DRAM and/or Flash, and accumulates counters
// (spec.md §4.5). This is the core this whole repository exists to host.
package engine

import (
	"github.com/newhook/hybridmem/internal/config"
	"github.com/newhook/hybridmem/internal/counters"
	"github.com/newhook/hybridmem/internal/decode"
	"github.com/newhook/hybridmem/internal/dram"
	"github.com/newhook/hybridmem/internal/flash"
	"github.com/newhook/hybridmem/internal/obslog"
	"github.com/newhook/hybridmem/internal/residency"
	"github.com/newhook/hybridmem/internal/trace"
)

// Engine is the orchestrator described in spec.md §4.5. It is not safe
// for concurrent use or for reentrant calls to ProcessAccess from within
// itself (spec.md §5).
type Engine struct {
	cfg config.Config
	log *obslog.Logger

	dram  *dram.Array
	flash *flash.Store // nil when cfg.EnableFlash is false

	classifier *residency.Classifier // nil when cfg.EnableFlash is false

	Counters counters.Counters
}

// New constructs an Engine from cfg. When cfg.EnableFlash is true, the
// Flash store and classifier are allocated; otherwise the engine runs in
// DRAM-only mode (spec.md §4.5 Mode A).
func New(cfg config.Config, log *obslog.Logger) *Engine {
	e := &Engine{
		cfg:  cfg,
		log:  log,
		dram: dram.NewArray(cfg),
	}

	if cfg.EnableFlash {
		e.flash = flash.NewStore(cfg)
		e.classifier = residency.NewClassifier(e.newResidencyStore(), cfg.HotDataThreshold)
	}

	return e
}

func (e *Engine) newResidencyStore() residency.Store {
	if e.cfg.ResidencyCapacity > 0 {
		return residency.NewBoundedStore(e.cfg.ResidencyCapacity)
	}

	return residency.NewUnboundedStore()
}

// ProcessAccess implements spec.md §4.5 in full: refresh injection,
// mode dispatch, cache management, and counter accounting. It returns no
// value; all effects are confined to e's state (spec.md §2).
func (e *Engine) ProcessAccess(op trace.Op, address uint64) {
	e.Counters.TotalAccesses++

	if e.flash != nil {
		e.processHybrid(op, address)
	} else {
		e.processDRAMOnly(op, address)
	}

	e.maybeRefresh()
}

func (e *Engine) maybeRefresh() {
	i := e.Counters.TotalAccesses
	if i > 0 && i%e.cfg.RefreshInterval == 0 {
		e.Counters.RefreshCycles++
		e.Counters.AddLatency(e.cfg.RefreshLatency)
		e.log.RefreshCycle(i)
	}
}

// processDRAMOnly implements spec.md §4.5 Mode A.
func (e *Engine) processDRAMOnly(op trace.Op, address uint64) {
	dramOp, ok := toDRAMOp(op)
	if !ok {
		e.log.UnknownOperation(byte(op), address)
		return
	}

	e.accessDRAM(address, dramOp)
}

// processHybrid implements spec.md §4.5 Mode B, steps a-e.
func (e *Engine) processHybrid(op trace.Op, address uint64) {
	decision := e.classifier.Decide(address, e.cfg.CachePromotionLatency, e.cfg.CacheEvictionLatency, &e.Counters)

	if decision.Resident {
		e.Counters.DRAMCacheHits++

		dramOp, ok := toDRAMOp(op)
		if !ok {
			e.log.UnknownOperation(byte(op), address)
			return
		}

		if !e.accessDRAM(address, dramOp) {
			return
		}

		if op == trace.OpWrite {
			e.flashWriteThrough(address)
		}
	} else {
		e.Counters.DRAMCacheMisses++

		flashOp, ok := toFlashOp(op)
		if !ok {
			e.log.UnknownOperation(byte(op), address)
			return
		}

		e.accessFlash(address, flashOp, true)
	}
}

// accessDRAM decodes, bounds-checks, and dispatches a single DRAM access,
// crediting TotalLatency and DRAMAccessLatency. It returns false if the
// address was out of bounds (no state mutated).
func (e *Engine) accessDRAM(address uint64, op dram.Op) bool {
	addr := decode.DRAM(address, e.cfg)

	if !decode.InBoundsDRAM(addr, len(e.dram.Banks), e.dram.Rows, e.dram.Columns) {
		e.log.OutOfBounds("dram", address)
		return false
	}

	result := e.dram.Access(addr.Bank, addr.Row, addr.Column, op, e.cfg.RowHitLatency, e.cfg.RowMissLatency)

	if result.Hit {
		e.Counters.RowHits++
	} else {
		e.Counters.RowMisses++
	}

	e.Counters.AddLatency(result.Latency)
	e.Counters.DRAMAccessLatency += result.Latency

	return true
}

// accessFlash decodes, bounds-checks, and dispatches a single Flash
// access. updateMetadata controls whether the page's write_count and
// last_access_time are updated (false for the write-through path, per
// spec.md §9's deliberate asymmetry).
func (e *Engine) accessFlash(address uint64, op flash.Op, updateMetadata bool) bool {
	addr := decode.Flash(address, e.flash.PageSize)

	if !decode.InBoundsFlash(addr, len(e.flash.Pages)) {
		e.log.OutOfBounds("flash", address)
		return false
	}

	result := e.flash.Access(addr.Page, addr.Offset, op, e.Counters.TotalAccesses,
		e.cfg.FlashReadLatency, e.cfg.FlashWriteLatency, updateMetadata)

	switch op {
	case flash.Read:
		e.Counters.FlashReads++
	case flash.Write:
		e.Counters.FlashWrites++
	}

	e.Counters.AddLatency(result.Latency)
	e.Counters.FlashAccessLatency += result.Latency

	return true
}

// flashWriteThrough implements the write-through side effect of a
// cache-hit write (spec.md §4.5.e): an extra Flash write fires, but the
// page's write_count/last_access_time are NOT updated (spec.md §9).
func (e *Engine) flashWriteThrough(address uint64) {
	e.accessFlash(address, flash.Write, false)
}

func toDRAMOp(op trace.Op) (dram.Op, bool) {
	switch op {
	case trace.OpRead:
		return dram.Read, true
	case trace.OpWrite:
		return dram.Write, true
	default:
		return 0, false
	}
}

func toFlashOp(op trace.Op) (flash.Op, bool) {
	switch op {
	case trace.OpRead:
		return flash.Read, true
	case trace.OpWrite:
		return flash.Write, true
	default:
		return 0, false
	}
}

// Clear resets all counters and tier state to zero, and empties the
// frequency/residency maps, per spec.md §5's "clear" operation.
func (e *Engine) Clear() {
	e.Counters.Reset()
	e.dram.Clear()

	if e.flash != nil {
		e.flash.Clear()
		e.classifier.Clear(e.newResidencyStore())
	}
}

// Initialize is equivalent to Clear plus an info-level diagnostic event
// (spec.md §5).
func (e *Engine) Initialize() {
	e.Clear()
	e.log.WithField("event", "initialize").Info("simulator initialized")
}

// BankCount, RowsPerBank, ColumnsPerRow, and FlashEnabled expose geometry
// for reporting (internal/report) without leaking the dram/flash package
// types into that layer.
func (e *Engine) BankCount() int     { return len(e.dram.Banks) }
func (e *Engine) RowsPerBank() int   { return e.dram.Rows }
func (e *Engine) ColumnsPerRow() int { return e.dram.Columns }
func (e *Engine) FlashEnabled() bool { return e.flash != nil }

func (e *Engine) FlashPageCount() int {
	if e.flash == nil {
		return 0
	}

	return len(e.flash.Pages)
}

func (e *Engine) FlashPageSize() uint32 {
	if e.flash == nil {
		return 0
	}

	return e.flash.PageSize
}

func (e *Engine) FlashCapacity() uint64 {
	if e.flash == nil {
		return 0
	}

	return uint64(len(e.flash.Pages)) * uint64(e.flash.PageSize)
}
