package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColdAccessIsAMiss(t *testing.T) {
	c := New()
	c.Access(0x0000, Read)
	assert.Equal(t, 1, c.Counters.CacheReads)
	assert.Equal(t, 1, c.Counters.Misses)
	assert.Equal(t, 0, c.Counters.Hits)
	assert.Equal(t, 0, c.Counters.WriteBacks)
}

func TestColdMissThenHit(t *testing.T) {
	c := New()
	c.Access(0x0000, Read)
	c.Access(0x0000, Read)
	assert.Equal(t, 1, c.Counters.Hits)
	assert.Equal(t, 1, c.Counters.Misses)
	assert.Equal(t, 0, c.Counters.WriteBacks)
	assert.Equal(t, 2, c.Counters.CacheReads)
}

func TestRepeatedSameLineAfterFirstIsAllHits(t *testing.T) {
	c := New()
	for i := 0; i < 10; i++ {
		c.Access(0x1234, Write)
	}
	assert.Equal(t, 1, c.Counters.Misses)
	assert.Equal(t, 9, c.Counters.Hits)
}

func TestWriteBackOnDirtyEviction(t *testing.T) {
	c := New()
	// fill all four ways of set 0 with writes (addr low 10 bits = 0 selects
	// set 0; tags 0,1,2,3 via bit 10 upward)
	c.Access(0x00000000, Write) // tag 0, way 0 (first invalid way)
	c.Access(0x00000400, Write) // tag 1, way 1
	c.Access(0x00000800, Write) // tag 2, way 2
	c.Access(0x00000C00, Write) // tag 3, way 3
	assert.Equal(t, 4, c.Counters.Misses)
	assert.Equal(t, 0, c.Counters.WriteBacks)

	// a fifth distinct tag forces an eviction of one of the (all dirty) ways
	c.Access(0x00001000, Read) // tag 4
	assert.Equal(t, 5, c.Counters.Misses)
	assert.Equal(t, 1, c.Counters.WriteBacks)
}

func TestCleanEvictionHasNoWriteBack(t *testing.T) {
	c := New()
	c.Access(0x00000000, Read) // tag 0, way 0, clean
	c.Access(0x00000400, Read) // tag 1, way 1, clean
	c.Access(0x00000800, Read) // tag 2, way 2, clean
	c.Access(0x00000C00, Read) // tag 3, way 3, clean
	c.Access(0x00001000, Read) // tag 4, evicts a clean way
	assert.Equal(t, 0, c.Counters.WriteBacks)
}

func TestPLRUNextStateTableExhaustive(t *testing.T) {
	want := [8][NumWays]uint8{
		{6, 4, 1, 0},
		{7, 5, 1, 0},
		{6, 4, 3, 2},
		{7, 5, 3, 2},
		{6, 4, 1, 0},
		{7, 5, 1, 0},
		{6, 4, 3, 2},
		{7, 5, 3, 2},
	}
	for state := 0; state < 8; state++ {
		for way := 0; way < NumWays; way++ {
			assert.Equal(t, want[state][way], nextState[state][way])
		}
	}
}

func TestReplacementChoiceTable(t *testing.T) {
	want := [8]int{0, 0, 1, 1, 2, 3, 2, 3}
	for state := 0; state < 8; state++ {
		assert.Equal(t, want[state], replacementChoice[state])
	}
}

func TestCountersBalance(t *testing.T) {
	c := New()
	addrs := []uint32{0x0, 0x400, 0x800, 0xC00, 0x1000, 0x0, 0x400}
	for i, a := range addrs {
		kind := Read
		if i%2 == 0 {
			kind = Write
		}
		c.Access(a, kind)
	}
	assert.Equal(t, c.Counters.Hits+c.Counters.Misses, c.Counters.CacheReads+c.Counters.CacheWrites)
	assert.LessOrEqual(t, c.Counters.WriteBacks, c.Counters.Misses)
}
