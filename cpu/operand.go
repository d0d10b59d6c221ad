package cpu

import "fmt"

// AddressingMode is the 3-bit mode field attached to a register operand.
// The numeric values match the field's raw encoding, so Decode can store
// them directly without translation.
type AddressingMode int

const (
	ModeRegister              AddressingMode = 0
	ModeRegisterDeferred      AddressingMode = 1
	ModeAutoIncrement         AddressingMode = 2
	ModeAutoIncrementDeferred AddressingMode = 3
	ModeAutoDecrement         AddressingMode = 4
	ModeAutoDecrementDeferred AddressingMode = 5
	ModeIndex                 AddressingMode = 6
	ModeIndexDeferred         AddressingMode = 7
)

// accessKind records how an Operand's final Read/Write should touch the
// machine: the register file directly, a data reference (counted and
// cache-observed), or a fetch reference (counted as an instruction fetch,
// never cache-observed). Resolving this once at resolve() time -- rather
// than re-deriving it at the point of use -- is what keeps a write-back
// from ever landing at the wrong address.
type accessKind int

const (
	accessRegister accessKind = iota
	accessData
	accessFetch
)

// Operand is an addressing mode fully resolved against a Cpu: any
// side-effecting register updates and indirection reads have already
// happened, and Read/Write perform only the final access.
type Operand struct {
	cpu  *Cpu
	kind accessKind
	reg  int
	ea   uint16
}

// Read performs the operand's final access.
func (o Operand) Read() (uint16, error) {
	switch o.kind {
	case accessRegister:
		return o.cpu.Registers[o.reg], nil
	case accessFetch:
		return o.cpu.readFetch(o.ea)
	default:
		return o.cpu.readData(o.ea)
	}
}

// Write performs the operand's final access. A register operand writes the
// register file directly; every memory operand writes as data, even one
// whose read side was classified as a fetch (mode 2, reg=7) -- there is no
// such thing as a fetched write.
func (o Operand) Write(v uint16) error {
	if o.kind == accessRegister {
		o.cpu.Registers[o.reg] = v
		return nil
	}
	return o.cpu.writeData(o.ea, v)
}

// resolve computes the Operand for (mode, reg), performing whatever
// register updates and indirection reads that addressing mode requires, and
// classifying the final access as a register, data, or instruction-fetch
// reference.
func (c *Cpu) resolve(mode, reg int) (Operand, error) {
	switch AddressingMode(mode) {

	case ModeRegister:
		return Operand{cpu: c, kind: accessRegister, reg: reg}, nil

	case ModeRegisterDeferred:
		return Operand{cpu: c, kind: accessData, ea: c.Registers[reg]}, nil

	case ModeAutoIncrement:
		ea := c.Registers[reg]
		c.Registers[reg] += 2
		kind := accessData
		if reg == PC {
			kind = accessFetch
		}
		return Operand{cpu: c, kind: kind, ea: ea}, nil

	case ModeAutoIncrementDeferred:
		pointer := c.Registers[reg]
		c.Registers[reg] += 2
		var v uint16
		var err error
		if reg == PC {
			v, err = c.readFetch(pointer)
		} else {
			v, err = c.readData(pointer)
		}
		if err != nil {
			return Operand{}, err
		}
		return Operand{cpu: c, kind: accessData, ea: v}, nil

	case ModeAutoDecrement:
		c.Registers[reg] -= 2
		return Operand{cpu: c, kind: accessData, ea: c.Registers[reg]}, nil

	case ModeAutoDecrementDeferred:
		c.Registers[reg] -= 2
		pointer := c.Registers[reg]
		v, err := c.readData(pointer)
		if err != nil {
			return Operand{}, err
		}
		return Operand{cpu: c, kind: accessData, ea: v}, nil

	case ModeIndex:
		disp, err := c.readFetch(c.Registers[PC])
		if err != nil {
			return Operand{}, err
		}
		c.Registers[PC] += 2
		ea := disp + c.Registers[reg]
		return Operand{cpu: c, kind: accessData, ea: ea}, nil

	case ModeIndexDeferred:
		disp, err := c.readFetch(c.Registers[PC])
		if err != nil {
			return Operand{}, err
		}
		c.Registers[PC] += 2
		pointer := disp + c.Registers[reg]
		v, err := c.readData(pointer)
		if err != nil {
			return Operand{}, err
		}
		return Operand{cpu: c, kind: accessData, ea: v}, nil

	default:
		return Operand{}, fmt.Errorf("invalid addressing mode %d", mode)
	}
}
