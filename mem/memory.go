// Package mem provides the PDP-11 subset's word-addressed memory.
//
// A Memory is attached to a Cpu, which performs every read and write
// through it. It has no notion of instructions or operands; it only
// ever stores and returns 16-bit words at even byte addresses.
package mem

import "fmt"

// Size is the memory capacity in bytes: 32 KiB, i.e. 16384 16-bit words.
const Size = 32 * 1024

// Memory is a flat array of bytes addressed in the machine by byte address.
// Only even byte addresses are valid for word access. Zero-valued on
// construction.
type Memory struct {
	bytes [Size]byte
}

// New returns a zeroed Memory.
func New() *Memory {
	return &Memory{}
}

// Read16 reads the word at addr. addr must be even and less than Size-1.
func (m *Memory) Read16(addr uint16) (uint16, error) {
	if err := checkAlign(addr); err != nil {
		return 0, err
	}
	lo := uint16(m.bytes[addr])
	hi := uint16(m.bytes[addr+1])
	return hi<<8 | lo, nil
}

// Write16 stores value at addr. addr must be even and less than Size-1.
func (m *Memory) Write16(addr uint16, value uint16) error {
	if err := checkAlign(addr); err != nil {
		return err
	}
	m.bytes[addr] = byte(value)
	m.bytes[addr+1] = byte(value >> 8)
	return nil
}

// WriteWordAt stores value as the Nth image word, i.e. at byte address 2*n.
// Used only by the loader; n is already known to be a valid word index.
func (m *Memory) WriteWordAt(n int, value uint16) error {
	return m.Write16(uint16(2*n), value)
}

// WordAt returns the value at byte address 2*n, for stats dumps and tests.
func (m *Memory) WordAt(n int) uint16 {
	v, _ := m.Read16(uint16(2 * n))
	return v
}

func checkAlign(addr uint16) error {
	if int(addr) >= Size-1 {
		return fmt.Errorf("address error: %#06o out of range (memory size %#o)", addr, Size)
	}
	if addr%2 != 0 {
		return fmt.Errorf("address error: odd byte address %#06o", addr)
	}
	return nil
}
