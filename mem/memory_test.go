package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	m := New()
	require.NoError(t, m.Write16(100, 0xBEEF))
	v, err := m.Read16(100)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), v)
}

func TestOddAddressIsFatal(t *testing.T) {
	m := New()
	_, err := m.Read16(101)
	assert.Error(t, err)
}

func TestOutOfRangeAddressIsFatal(t *testing.T) {
	m := New()
	_, err := m.Read16(uint16(Size - 1))
	assert.Error(t, err)
}

func TestWordAtMatchesByteAddress(t *testing.T) {
	m := New()
	require.NoError(t, m.WriteWordAt(5, 0o1234))
	assert.Equal(t, uint16(0o1234), m.WordAt(5))
	v, err := m.Read16(10)
	require.NoError(t, err)
	assert.Equal(t, uint16(0o1234), v)
}
