package dram

import (
	"testing"

	"github.com/newhook/hybridmem/internal/config"
	"github.com/stretchr/testify/assert"
)

func newTestArray() *Array {
	cfg := config.Default()
	cfg.DRAMBanks = 4
	cfg.DRAMRows = 1024
	cfg.DRAMColumns = 1024

	return NewArray(cfg)
}

func TestFirstAccessIsMiss(t *testing.T) {
	assert := assert.New(t)

	a := newTestArray()
	res := a.Access(0, 0, 0, Read, 10, 30)

	assert.False(res.Hit)
	assert.Equal(uint64(30), res.Latency)

	row, ok := a.Banks[0].ActiveRow()
	assert.True(ok)
	assert.Equal(uint32(0), row)
}

func TestSameRowIsHit(t *testing.T) {
	assert := assert.New(t)

	a := newTestArray()
	a.Access(0, 0, 0, Read, 10, 30)
	res := a.Access(0, 0, 1, Read, 10, 30)

	assert.True(res.Hit)
	assert.Equal(uint64(10), res.Latency)
}

func TestDifferentRowSameBankIsMiss(t *testing.T) {
	assert := assert.New(t)

	a := newTestArray()
	a.Access(0, 0, 0, Read, 10, 30)
	res := a.Access(0, 1, 0, Read, 10, 30)

	assert.False(res.Hit)
}

func TestCrossBankIndependence(t *testing.T) {
	assert := assert.New(t)

	a := newTestArray()
	r1 := a.Access(0, 0, 0, Read, 10, 30)
	r2 := a.Access(1, 0, 0, Read, 10, 30)
	r3 := a.Access(0, 0, 0, Read, 10, 30)

	assert.False(r1.Hit)
	assert.False(r2.Hit)
	assert.True(r3.Hit, "bank 0's row buffer was never disturbed by the bank 1 access")
}

func TestWriteStoresMarkerByte(t *testing.T) {
	assert := assert.New(t)

	a := newTestArray()
	a.Access(0, 2, 1, Write, 10, 30)

	assert.Equal(byte(0xFF), a.Banks[0].rows[2][1])
}

func TestClearResetsRowBufferAndBytes(t *testing.T) {
	assert := assert.New(t)

	a := newTestArray()
	a.Access(0, 5, 2, Write, 10, 30)
	a.Clear()

	_, ok := a.Banks[0].ActiveRow()
	assert.False(ok)
	assert.Equal(byte(0), a.Banks[0].rows[5][2])
}

func TestNoActiveRowSentinelNotRawInteger(t *testing.T) {
	assert := assert.New(t)

	b := newBank(4, 4)
	_, ok := b.ActiveRow()
	assert.False(ok, "a freshly constructed bank must report no active row")
}
