// Package decode maps a linear 64-bit address to DRAM (bank, row, column)
// and Flash (page, offset) coordinates. It is pure and stateless: every
// function here is a function of its arguments only, per spec.md §4.1.
package decode

import "github.com/newhook/hybridmem/internal/config"

// DRAMAddr is the decoded location of an address within the bank array.
type DRAMAddr struct {
	Bank   uint32
	Row    uint32
	Column uint32
}

// FlashAddr is the decoded location of an address within the flash store.
type FlashAddr struct {
	Page   uint32
	Offset uint32
}

// legacy field widths: 4 banks, 1024 rows, 4 columns, regardless of
// Config. This is the documented quirk from spec.md §9 kept for bit-exact
// parity with original_source/src/memory_simulator.cpp.
const (
	legacyBankBits   = 2
	legacyBankShift  = 12
	legacyRowBits    = 10
	legacyRowShift   = 2
	legacyColumnBits = 2
)

// DRAMLegacy decodes address using the hard-coded 4-bank/1024-row/4-column
// field widths, independent of any Config. Bit-exact with the reference.
func DRAMLegacy(address uint64) DRAMAddr {
	return DRAMAddr{
		Bank:   uint32(address>>legacyBankShift) & mask(legacyBankBits),
		Row:    uint32(address>>legacyRowShift) & mask(legacyRowBits),
		Column: uint32(address) & mask(legacyColumnBits),
	}
}

// DRAMScaled decodes address using field widths computed from the
// configured bank/row/column counts (smallest width that can address each
// configured count).
func DRAMScaled(address uint64, cfg config.Config) DRAMAddr {
	colBits := bitsFor(cfg.DRAMColumns)
	rowBits := bitsFor(cfg.DRAMRows)
	bankBits := bitsFor(cfg.DRAMBanks)

	column := uint32(address) & mask(colBits)
	row := uint32(address>>colBits) & mask(rowBits)
	bank := uint32(address>>(colBits+rowBits)) & mask(bankBits)

	return DRAMAddr{Bank: bank, Row: row, Column: column}
}

// DRAM decodes address for the DRAM tier according to cfg.DecoderMode.
func DRAM(address uint64, cfg config.Config) DRAMAddr {
	if cfg.DecoderMode == config.DecoderModeScaled {
		return DRAMScaled(address, cfg)
	}

	return DRAMLegacy(address)
}

// Flash decodes address for the Flash tier: page = address / pageSize,
// offset = address % pageSize.
func Flash(address uint64, pageSize uint32) FlashAddr {
	if pageSize == 0 {
		return FlashAddr{}
	}

	return FlashAddr{
		Page:   uint32(address / uint64(pageSize)),
		Offset: uint32(address % uint64(pageSize)),
	}
}

// InBoundsDRAM reports whether addr is addressable given the DRAM
// geometry. Out-of-bounds is a soft error per spec.md §4.1: callers count
// the access but mutate no state.
func InBoundsDRAM(addr DRAMAddr, bankCount, rowsPerBank, columnsPerRow int) bool {
	return int(addr.Bank) < bankCount &&
		int(addr.Row) < rowsPerBank &&
		int(addr.Column) < columnsPerRow
}

// InBoundsFlash reports whether addr is addressable given the page count.
func InBoundsFlash(addr FlashAddr, pageCount int) bool {
	return int(addr.Page) < pageCount
}

func mask(bits uint) uint32 {
	return (uint32(1) << bits) - 1
}

// bitsFor returns the number of bits needed to address n distinct values
// (n >= 1), i.e. ceil(log2(n)).
func bitsFor(n int) uint {
	if n <= 1 {
		return 0
	}

	bits := uint(0)
	for (1 << bits) < n {
		bits++
	}

	return bits
}
