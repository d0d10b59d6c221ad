// Package cpu implements an instruction-set simulator for a subset of the
// PDP-11: the eight addressing modes, eleven opcodes, condition-code
// computation, and the statistics the driver reports at HALT.
//
// The Cpu has no memory of its own; it interfaces with a *mem.Memory so
// that registers, flags, and counters can be reset by constructing a fresh
// Cpu rather than resetting package-level state.
package cpu

import (
	"errors"
	"fmt"

	"pdp11sim/cache"
	"pdp11sim/mem"
)

// NumRegisters is the size of the PDP-11 register file, R0 through R7.
const NumRegisters = 8

// PC is the register index conventionally used as the program counter (R7).
const PC = 7

// Halt is returned by Step when the HALT opcode is executed. It signals
// clean termination, not a fault -- callers compare with errors.Is, the way
// io.EOF signals a clean end of input.
var Halt = errors.New("cpu: halt")

// Flags holds the four PDP-11 condition-code bits. They are not part of any
// register; a separate quad.
type Flags struct {
	N bool // negative
	Z bool // zero
	V bool // overflow
	C bool // carry
}

// StatusByte packs N,Z,V,C into a single byte (bits 3,2,1,0 respectively,
// matching the conventional PDP-11 PSW low nibble), for compact trace and
// debugger display.
func (f Flags) StatusByte() byte {
	var b byte
	b = setBit(b, 3, f.N)
	b = setBit(b, 2, f.Z)
	b = setBit(b, 1, f.V)
	b = setBit(b, 0, f.C)
	return b
}

func setBit(b byte, pos uint, v bool) byte {
	if v {
		return b | (1 << pos)
	}
	return b &^ (1 << pos)
}

// Counters are the six monotonic CPU-wide statistics. They are reset only
// at construction.
type Counters struct {
	InstExecs    int
	InstFetches  int
	MemoryReads  int
	MemoryWrites int
	BranchExecs  int
	BranchTaken  int
}

// Cpu is the owning state value for the whole machine: registers, flags,
// counters, the memory it's attached to, and an optional cache observer.
// Collecting these into one value, rather than package-level globals, makes
// the simulator trivially safe to construct more than once, e.g. in tests.
type Cpu struct {
	Registers [NumRegisters]uint16
	Flags     Flags
	Counters  Counters

	Mem   *mem.Memory
	Cache *cache.Cache // nil when the cache model is compiled out
}

// New returns a Cpu with all registers, flags, and counters zeroed, attached
// to m. cache may be nil.
func New(m *mem.Memory, c *cache.Cache) *Cpu {
	return &Cpu{Mem: m, Cache: c}
}

// readFetch reads a word from the instruction stream: the opcode itself, or
// an immediate/absolute/index word consumed during operand resolution. It
// never touches the cache model, which only observes true data references.
func (c *Cpu) readFetch(addr uint16) (uint16, error) {
	v, err := c.Mem.Read16(addr)
	if err != nil {
		return 0, err
	}
	c.Counters.InstFetches++
	return v, nil
}

// readData reads a data operand from memory, counting it as a memory read
// and, if a cache model is attached, observing it there too.
func (c *Cpu) readData(addr uint16) (uint16, error) {
	v, err := c.Mem.Read16(addr)
	if err != nil {
		return 0, err
	}
	c.Counters.MemoryReads++
	if c.Cache != nil {
		c.Cache.Access(uint32(addr), cache.Read)
	}
	return v, nil
}

// writeData writes a data operand to memory, counting it as a memory write
// and, if a cache model is attached, observing it there too.
func (c *Cpu) writeData(addr uint16, v uint16) error {
	if err := c.Mem.Write16(addr, v); err != nil {
		return err
	}
	c.Counters.MemoryWrites++
	if c.Cache != nil {
		c.Cache.Access(uint32(addr), cache.Write)
	}
	return nil
}

// Step executes exactly one instruction: fetch, decode, dispatch. It
// returns the decoded instruction (for tracing) and either nil, Halt, or a
// fatal error. After a fatal error the Cpu's state is left as of the point
// of failure; the driver must not call Step again.
func (c *Cpu) Step() (Decoded, error) {
	pc := c.Registers[PC]
	if pc%2 != 0 || int(pc) >= mem.Size {
		return Decoded{}, fmt.Errorf("pc runaway: R7=%#06o", pc)
	}

	word, err := c.readFetch(pc)
	if err != nil {
		return Decoded{}, err
	}
	c.Registers[PC] += 2

	d, err := Decode(word)
	if err != nil {
		return Decoded{}, fmt.Errorf("decode error: illegal instruction %06o at PC=%#06o", word, pc)
	}
	c.Counters.InstExecs++

	if d.Op == OpHalt {
		return d, Halt
	}

	if err := c.execute(d); err != nil {
		return d, err
	}
	return d, nil
}

// Run executes Step in a loop until Halt or a fatal error. trace, if
// non-nil, is called after every successfully decoded instruction
// (including the final HALT) with the decoded record and the error Step
// returned (nil, Halt, or a fatal error raised while executing it); it is
// the only way internal/report observes
// per-instruction state, keeping the core oblivious to how (or whether) it
// is reported on.
func (c *Cpu) Run(trace func(Decoded, error)) error {
	for {
		d, err := c.Step()
		if trace != nil && d.Op != opInvalid {
			trace(d, err)
		}
		if err != nil {
			if errors.Is(err, Halt) {
				return nil
			}
			return err
		}
	}
}
