package emu

// cbOps is the plain (unprefixed) CB-space table: rotate/shift group
// (0x00-0x3F), BIT (0x40-0x7F), RES (0x80-0xBF), SET (0xC0-0xFF), each
// keyed by register code op&7.
//
// Reached only when the CB prefix is not preceded by DD/FD; every
// DDCB/FDCB goes through execIndexedCB instead
// since there the operand is always memory at (IX+d)/(IY+d), never a
// plain register or (HL).
var cbOps [256]opFunc

func init() {
	for shiftKind := uint8(0); shiftKind < 8; shiftKind++ {
		fn := cbShiftOps[shiftKind]
		for reg := uint8(0); reg < 8; reg++ {
			shiftKind, reg := shiftKind, reg
			op := shiftKind*8 + reg
			cbOps[op] = func(c *CPU) int {
				v := fn(c, c.getReg8(reg))
				c.setReg8(reg, v)
				return cbCycles[op]
			}
		}
	}

	for n := uint(0); n < 8; n++ {
		for reg := uint8(0); reg < 8; reg++ {
			n, reg := n, reg
			op := uint8(0x40) + uint8(n)*8 + reg
			cbOps[op] = func(c *CPU) int {
				c.bitTest(n, c.getReg8(reg))
				return cbCycles[op]
			}
		}
	}

	for n := uint(0); n < 8; n++ {
		for reg := uint8(0); reg < 8; reg++ {
			n, reg := n, reg
			op := uint8(0x80) + uint8(n)*8 + reg
			cbOps[op] = func(c *CPU) int {
				c.setReg8(reg, bitRes(n, c.getReg8(reg)))
				return cbCycles[op]
			}
		}
	}

	for n := uint(0); n < 8; n++ {
		for reg := uint8(0); reg < 8; reg++ {
			n, reg := n, reg
			op := uint8(0xC0) + uint8(n)*8 + reg
			cbOps[op] = func(c *CPU) int {
				c.setReg8(reg, bitSet(n, c.getReg8(reg)))
				return cbCycles[op]
			}
		}
	}
}

// execIndexedCB runs a DDCB/FDCB instruction: the displacement byte has
// already been consumed by the caller (it precedes the sub-opcode, unlike
// every other addressing mode), the operand always comes from
// (IX+d)/(IY+d), and sub-opcodes whose low 3 bits are not 6 additionally
// store the result into that named register (the undocumented "store"
// variant) — BIT never stores since it produces no result to store.
func (c *CPU) execIndexedCB(addr uint16, sub uint8) int {
	v := c.mem.Read(addr)
	group := sub >> 6
	reg := sub & 7

	switch group {
	case 0b01: // BIT n,(i+d)
		n := uint(sub>>3) & 7
		c.bitTest(n, v)
	case 0b10: // RES n,(i+d) [,r]
		n := uint(sub>>3) & 7
		result := bitRes(n, v)
		c.mem.Write(addr, result)
		if reg != 6 {
			c.setReg8(reg, result)
		}
	case 0b11: // SET n,(i+d) [,r]
		n := uint(sub>>3) & 7
		result := bitSet(n, v)
		c.mem.Write(addr, result)
		if reg != 6 {
			c.setReg8(reg, result)
		}
	default: // rotate/shift (i+d) [,r]
		fn := cbShiftOps[sub>>3]
		result := fn(c, v)
		c.mem.Write(addr, result)
		if reg != 6 {
			c.setReg8(reg, result)
		}
	}

	return indexedCBCycles(sub)
}
