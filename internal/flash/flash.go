// Package flash implements the Flash tier: a fixed array of pages, each
// with a write counter and last-access timestamp (spec.md §4.3).
package flash

import "github.com/newhook/hybridmem/internal/config"

const writeMarker = 0xFF

// Op is a Flash tier read or write.
type Op int

const (
	Read Op = iota
	Write
)

// Page is a single flash page.
type Page struct {
	data           []byte
	WriteCount     uint32
	LastAccessTime uint64
}

func newPage(size uint32) *Page {
	return &Page{data: make([]byte, size)}
}

// Clear zeroes the page's data and resets its write counter and
// timestamp.
func (p *Page) Clear() {
	for i := range p.data {
		p.data[i] = 0
	}

	p.WriteCount = 0
	p.LastAccessTime = 0
}

// Store is the fixed array of flash pages.
type Store struct {
	Pages    []*Page
	PageSize uint32
}

// NewStore allocates capacity/pageSize pages of pageSize bytes each.
func NewStore(cfg config.Config) *Store {
	pageCount := cfg.FlashCapacity / uint64(cfg.FlashPageSize)

	s := &Store{
		Pages:    make([]*Page, pageCount),
		PageSize: cfg.FlashPageSize,
	}

	for i := range s.Pages {
		s.Pages[i] = newPage(cfg.FlashPageSize)
	}

	return s
}

// AccessResult reports the outcome of a single Access call.
type AccessResult struct {
	Latency uint64
}

// Access performs a read or write at (page, offset). updateMetadata
// controls whether the access sets LastAccessTime and, for a write, bumps
// WriteCount — callers pass false for the write-through path (spec.md §9: "deliberate
// asymmetry: write-through does not update page metadata").
func (s *Store) Access(page, offset uint32, op Op, totalAccesses uint64, readLatency, writeLatency uint64, updateMetadata bool) AccessResult {
	p := s.Pages[page]

	var latency uint64
	switch op {
	case Read:
		latency = readLatency
		if offset < uint32(len(p.data)) {
			_ = p.data[offset]
		}
	case Write:
		latency = writeLatency
		if offset < uint32(len(p.data)) {
			p.data[offset] = writeMarker
		}
		if updateMetadata {
			p.WriteCount++
		}
	}

	if updateMetadata {
		p.LastAccessTime = totalAccesses
	}

	return AccessResult{Latency: latency}
}

// Clear resets every page to its initial state.
func (s *Store) Clear() {
	for _, p := range s.Pages {
		p.Clear()
	}
}
