package flash

import (
	"testing"

	"github.com/newhook/hybridmem/internal/config"
	"github.com/stretchr/testify/assert"
)

func newTestStore() *Store {
	cfg := config.Default()
	cfg.FlashCapacity = 4096 * 4
	cfg.FlashPageSize = 4096

	return NewStore(cfg)
}

func TestReadLatency(t *testing.T) {
	assert := assert.New(t)

	s := newTestStore()
	res := s.Access(0, 10, Read, 1, 100, 500, true)

	assert.Equal(uint64(100), res.Latency)
	assert.Equal(uint64(1), s.Pages[0].LastAccessTime)
}

func TestWriteUpdatesMetadata(t *testing.T) {
	assert := assert.New(t)

	s := newTestStore()
	res := s.Access(1, 0, Write, 42, 100, 500, true)

	assert.Equal(uint64(500), res.Latency)
	assert.Equal(uint32(1), s.Pages[1].WriteCount)
	assert.Equal(uint64(42), s.Pages[1].LastAccessTime)
	assert.Equal(byte(0xFF), s.Pages[1].data[0])
}

func TestWriteThroughDoesNotUpdateMetadata(t *testing.T) {
	assert := assert.New(t)

	s := newTestStore()
	res := s.Access(2, 0, Write, 7, 100, 500, false)

	assert.Equal(uint64(500), res.Latency)
	assert.Equal(uint32(0), s.Pages[2].WriteCount)
	assert.Equal(uint64(0), s.Pages[2].LastAccessTime)
	// The byte is still written through.
	assert.Equal(byte(0xFF), s.Pages[2].data[0])
}

func TestClearResetsPages(t *testing.T) {
	assert := assert.New(t)

	s := newTestStore()
	s.Access(0, 0, Write, 1, 100, 500, true)
	s.Clear()

	assert.Equal(uint32(0), s.Pages[0].WriteCount)
	assert.Equal(uint64(0), s.Pages[0].LastAccessTime)
	assert.Equal(byte(0), s.Pages[0].data[0])
}

func TestPageCount(t *testing.T) {
	assert := assert.New(t)

	s := newTestStore()
	assert.Len(s.Pages, 4)
}
