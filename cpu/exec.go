package cpu

import "fmt"

// execute dispatches a decoded instruction to its semantics. It is called
// only for opcodes other than HALT, which Step intercepts directly.
func (c *Cpu) execute(d Decoded) error {
	switch d.Op {
	case OpMov:
		return c.execMov(d)
	case OpCmp:
		return c.execCmp(d)
	case OpAdd:
		return c.execAdd(d)
	case OpSub:
		return c.execSub(d)
	case OpAsr:
		return c.execAsr(d)
	case OpAsl:
		return c.execAsl(d)
	case OpBr:
		return c.execBranch(d, true)
	case OpBne:
		return c.execBranch(d, !c.Flags.Z)
	case OpBeq:
		return c.execBranch(d, c.Flags.Z)
	case OpSob:
		return c.execSob(d)
	default:
		return fmt.Errorf("execute: unhandled opcode %s", d.Op)
	}
}

// twoOperand resolves the source, reads it, then resolves the destination.
// Source is always fully resolved (and read, where the opcode needs its
// value) before the destination is resolved -- if source and destination
// addressing both mutate a register (e.g. the same autoincrement register
// used twice), the source's side effects must be visible before the
// destination is computed.
func (c *Cpu) twoOperand(d Decoded) (src uint16, dst Operand, err error) {
	srcOp, err := c.resolve(d.SrcMode, d.SrcReg)
	if err != nil {
		return 0, Operand{}, err
	}
	src, err = srcOp.Read()
	if err != nil {
		return 0, Operand{}, err
	}
	dst, err = c.resolve(d.DstMode, d.DstReg)
	if err != nil {
		return 0, Operand{}, err
	}
	return src, dst, nil
}

func (c *Cpu) execMov(d Decoded) error {
	src, dst, err := c.twoOperand(d)
	if err != nil {
		return err
	}
	c.Flags.N = src&0x8000 != 0
	c.Flags.Z = src == 0
	c.Flags.V = false
	return dst.Write(src)
}

func (c *Cpu) execCmp(d Decoded) error {
	src, dst, err := c.twoOperand(d)
	if err != nil {
		return err
	}
	dstVal, err := dst.Read()
	if err != nil {
		return err
	}
	_, flags := subFlags(src, dstVal)
	c.Flags = flags
	return nil
}

func (c *Cpu) execAdd(d Decoded) error {
	src, dst, err := c.twoOperand(d)
	if err != nil {
		return err
	}
	dstVal, err := dst.Read()
	if err != nil {
		return err
	}
	result, flags := addFlags(dstVal, src)
	c.Flags = flags
	return dst.Write(result)
}

func (c *Cpu) execSub(d Decoded) error {
	src, dst, err := c.twoOperand(d)
	if err != nil {
		return err
	}
	dstVal, err := dst.Read()
	if err != nil {
		return err
	}
	result, flags := subFlags(dstVal, src)
	c.Flags = flags
	return dst.Write(result)
}

func (c *Cpu) execAsr(d Decoded) error {
	op, err := c.resolve(int(d.DstMode), d.DstReg)
	if err != nil {
		return err
	}
	v, err := op.Read()
	if err != nil {
		return err
	}
	oldSign := v&0x8000 != 0
	carry := v&1 != 0
	result := (v >> 1) | (v & 0x8000) // arithmetic: sign bit is preserved
	c.Flags.C = carry
	c.Flags.N = result&0x8000 != 0
	c.Flags.Z = result == 0
	c.Flags.V = oldSign != (result&1 != 0)
	return op.Write(result)
}

func (c *Cpu) execAsl(d Decoded) error {
	op, err := c.resolve(int(d.DstMode), d.DstReg)
	if err != nil {
		return err
	}
	v, err := op.Read()
	if err != nil {
		return err
	}
	carry := v&0x8000 != 0
	result := v << 1
	c.Flags.C = carry
	c.Flags.N = result&0x8000 != 0
	c.Flags.Z = result == 0
	c.Flags.V = c.Flags.N != c.Flags.C
	return op.Write(result)
}

func (c *Cpu) execBranch(d Decoded, taken bool) error {
	c.Counters.BranchExecs++
	if taken {
		c.Counters.BranchTaken++
		c.Registers[PC] = uint16(int32(c.Registers[PC]) + d.BranchOffset)
	}
	return nil
}

// execSob decrements the loop register and, if it is still nonzero,
// branches backward by the instruction's word displacement -- the PC has
// already advanced past the SOB word itself by the time Step calls this.
func (c *Cpu) execSob(d Decoded) error {
	c.Counters.BranchExecs++
	c.Registers[d.Reg]--
	if c.Registers[d.Reg] != 0 {
		c.Counters.BranchTaken++
		c.Registers[PC] -= uint16(2 * d.Offset)
	}
	return nil
}

// addFlags computes a+b as a 16-bit result with the condition codes that
// result.
func addFlags(a, b uint16) (uint16, Flags) {
	sum := uint32(a) + uint32(b)
	result := uint16(sum)
	var f Flags
	f.N = result&0x8000 != 0
	f.Z = result == 0
	f.C = sum > 0xFFFF
	signA := a&0x8000 != 0
	signB := b&0x8000 != 0
	signR := result&0x8000 != 0
	f.V = signA == signB && signR != signA
	return result, f
}

// subFlags computes a-b as a 16-bit result with the condition codes that
// result. Used by both SUB (dst-src, written back) and CMP (src-dst, flags
// only).
func subFlags(a, b uint16) (uint16, Flags) {
	diff := uint32(a) - uint32(b)
	result := uint16(diff)
	var f Flags
	f.N = result&0x8000 != 0
	f.Z = result == 0
	f.C = a < b
	signA := a&0x8000 != 0
	signB := b&0x8000 != 0
	signR := result&0x8000 != 0
	f.V = signA != signB && signR != signA
	return result, f
}
