package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdp11sim/cache"
	"pdp11sim/mem"
)

func newTestCpu() *Cpu {
	return New(mem.New(), nil)
}

func TestResolveRegisterMode(t *testing.T) {
	c := newTestCpu()
	c.Registers[0] = 42
	op, err := c.resolve(int(ModeRegister), 0)
	require.NoError(t, err)
	v, err := op.Read()
	require.NoError(t, err)
	assert.Equal(t, uint16(42), v)
	require.NoError(t, op.Write(99))
	assert.Equal(t, uint16(99), c.Registers[0])
	assert.Equal(t, 0, c.Counters.MemoryReads)
	assert.Equal(t, 0, c.Counters.MemoryWrites)
}

func TestResolveAutoIncrementDataRegister(t *testing.T) {
	c := newTestCpu()
	c.Registers[1] = 100
	require.NoError(t, c.Mem.Write16(100, 0o123))
	op, err := c.resolve(int(ModeAutoIncrement), 1)
	require.NoError(t, err)
	v, err := op.Read()
	require.NoError(t, err)
	assert.Equal(t, uint16(0o123), v)
	assert.Equal(t, uint16(102), c.Registers[1])
	assert.Equal(t, 1, c.Counters.MemoryReads)
	assert.Equal(t, 0, c.Counters.InstFetches)
}

func TestResolveAutoIncrementImmediateOnPC(t *testing.T) {
	c := newTestCpu()
	c.Registers[PC] = 10
	require.NoError(t, c.Mem.Write16(10, 5))
	op, err := c.resolve(int(ModeAutoIncrement), PC)
	require.NoError(t, err)
	v, err := op.Read()
	require.NoError(t, err)
	assert.Equal(t, uint16(5), v)
	assert.Equal(t, uint16(12), c.Registers[PC])
	assert.Equal(t, 0, c.Counters.MemoryReads)
	assert.Equal(t, 1, c.Counters.InstFetches)
}

func TestResolveAutoDecrementAlwaysData(t *testing.T) {
	c := newTestCpu()
	c.Registers[PC] = 20
	require.NoError(t, c.Mem.Write16(18, 0o77))
	op, err := c.resolve(int(ModeAutoDecrement), PC)
	require.NoError(t, err)
	v, err := op.Read()
	require.NoError(t, err)
	assert.Equal(t, uint16(0o77), v)
	assert.Equal(t, uint16(18), c.Registers[PC])
	assert.Equal(t, 1, c.Counters.MemoryReads)
	assert.Equal(t, 0, c.Counters.InstFetches)
}

func TestResolveIndexWordAlwaysFetchRegardlessOfReg(t *testing.T) {
	c := newTestCpu()
	c.Registers[PC] = 0
	c.Registers[2] = 100
	require.NoError(t, c.Mem.Write16(0, 10)) // displacement word
	require.NoError(t, c.Mem.Write16(110, 0xABCD))
	op, err := c.resolve(int(ModeIndex), 2)
	require.NoError(t, err)
	v, err := op.Read()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xABCD), v)
	assert.Equal(t, uint16(2), c.Registers[PC])
	assert.Equal(t, 1, c.Counters.InstFetches) // the displacement word
	assert.Equal(t, 1, c.Counters.MemoryReads) // the final operand
}

func TestResolveIndexDeferred(t *testing.T) {
	c := newTestCpu()
	c.Registers[PC] = 0
	c.Registers[3] = 4
	require.NoError(t, c.Mem.Write16(0, 6)) // displacement
	require.NoError(t, c.Mem.Write16(10, 200)) // pointer -> ea
	require.NoError(t, c.Mem.Write16(200, 77))
	op, err := c.resolve(int(ModeIndexDeferred), 3)
	require.NoError(t, err)
	v, err := op.Read()
	require.NoError(t, err)
	assert.Equal(t, uint16(77), v)
	assert.Equal(t, 1, c.Counters.InstFetches)
	assert.Equal(t, 2, c.Counters.MemoryReads) // indirection + final
}

func TestOperandWriteUsesCacheWhenAttached(t *testing.T) {
	c := New(mem.New(), cache.New())
	c.Registers[0] = 0
	op, err := c.resolve(int(ModeRegisterDeferred), 0)
	require.NoError(t, err)
	require.NoError(t, op.Write(5))
	assert.Equal(t, 1, c.Cache.Counters.CacheWrites)
	v, _ := c.Mem.Read16(0)
	assert.Equal(t, uint16(5), v)
}
