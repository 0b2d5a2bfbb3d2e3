package emu

// edOps is the ED-prefix table. Every byte value is defined: the many
// unassigned slots are 8-cycle two-byte NOPs, matching real hardware's
// documented (if pointless) behavior.
var edOps [256]opFunc

func init() {
	for i := range edOps {
		edOps[i] = opEDUndefinedNop
	}

	for r := uint8(0); r < 8; r++ {
		r := r
		inOp := 0x40 + 8*r
		outOp := 0x41 + 8*r
		edOps[inOp] = func(c *CPU) int {
			v := c.ports.In(c.bc())
			if r != 6 {
				c.setReg8(r, v)
			}
			c.setFlag(flagS, v&0x80 != 0)
			c.setFlag(flagZ, v == 0)
			c.setFlag(flagH, false)
			c.setFlag(flagN, false)
			c.setFlag(flagP, parity(v))
			c.setSZXY(v)
			return edCycles[inOp]
		}
		edOps[outOp] = func(c *CPU) int {
			v := uint8(0)
			if r != 6 {
				v = c.getReg8(r)
			}
			c.ports.Out(c.bc(), v)
			return edCycles[outOp]
		}
	}

	adcSbcPairs := [4]uint8{0, 1, 2, 3} // rp: BC,DE,HL,SP
	for _, rp := range adcSbcPairs {
		rp := rp
		sbcOp := 0x42 + 0x10*rp
		adcOp := 0x4A + 0x10*rp
		edOps[sbcOp] = func(c *CPU) int {
			c.setHL(c.sbc16(c.hl(), c.get16rp(rp)))
			return edCycles[sbcOp]
		}
		edOps[adcOp] = func(c *CPU) int {
			c.setHL(c.adc16(c.hl(), c.get16rp(rp)))
			return edCycles[adcOp]
		}

		ldToMemOp := 0x43 + 0x10*rp
		ldFromMemOp := 0x4B + 0x10*rp
		edOps[ldToMemOp] = func(c *CPU) int {
			addr := c.readArg16()
			v := c.get16rp(rp)
			c.mem.Write(addr, uint8(v))
			c.mem.Write(addr+1, uint8(v>>8))
			return edCycles[ldToMemOp]
		}
		edOps[ldFromMemOp] = func(c *CPU) int {
			addr := c.readArg16()
			lo := c.mem.Read(addr)
			hi := c.mem.Read(addr + 1)
			c.set16rp(rp, uint16(hi)<<8|uint16(lo))
			return edCycles[ldFromMemOp]
		}
	}

	for _, base := range [8]uint8{0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C} {
		base := base
		edOps[base] = opNeg
	}
	edOps[0x45] = opRetn
	edOps[0x55] = opRetn
	edOps[0x65] = opRetn
	edOps[0x75] = opRetn
	edOps[0x4D] = opReti
	edOps[0x5D] = opRetn
	edOps[0x6D] = opRetn
	edOps[0x7D] = opRetn

	imTable := map[uint8]uint8{
		0x46: 0, 0x4E: 0, 0x66: 0, 0x6E: 0,
		0x56: 1, 0x76: 1,
		0x5E: 2, 0x7E: 2,
	}
	for op, im := range imTable {
		op, im := op, im
		edOps[op] = func(c *CPU) int { c.IM = im; return edCycles[op] }
	}

	edOps[0x47] = func(c *CPU) int { c.I = c.A; return edCycles[0x47] }
	edOps[0x4F] = func(c *CPU) int { c.R = c.A; return edCycles[0x4F] }
	edOps[0x57] = func(c *CPU) int {
		c.A = c.I
		c.setSZXY(c.A)
		c.setFlag(flagH, false)
		c.setFlag(flagN, false)
		c.setFlag(flagP, c.IFF2)
		return edCycles[0x57]
	}
	edOps[0x5F] = func(c *CPU) int {
		c.A = c.R
		c.setSZXY(c.A)
		c.setFlag(flagH, false)
		c.setFlag(flagN, false)
		c.setFlag(flagP, c.IFF2)
		return edCycles[0x5F]
	}
	edOps[0x67] = opRRD
	edOps[0x6F] = opRLD

	edOps[0xA0] = func(c *CPU) int { return c.ldBlock(1) }
	edOps[0xA8] = func(c *CPU) int { return c.ldBlock(-1) }
	edOps[0xB0] = func(c *CPU) int { return c.ldBlockRepeat(1) }
	edOps[0xB8] = func(c *CPU) int { return c.ldBlockRepeat(-1) }

	edOps[0xA1] = func(c *CPU) int { return c.cpBlock(1) }
	edOps[0xA9] = func(c *CPU) int { return c.cpBlock(-1) }
	edOps[0xB1] = func(c *CPU) int { return c.cpBlockRepeat(1) }
	edOps[0xB9] = func(c *CPU) int { return c.cpBlockRepeat(-1) }

	edOps[0xA2] = func(c *CPU) int { return c.inBlock(1) }
	edOps[0xAA] = func(c *CPU) int { return c.inBlock(-1) }
	edOps[0xB2] = func(c *CPU) int { return c.inBlockRepeat(1) }
	edOps[0xBA] = func(c *CPU) int { return c.inBlockRepeat(-1) }

	edOps[0xA3] = func(c *CPU) int { return c.outBlock(1) }
	edOps[0xAB] = func(c *CPU) int { return c.outBlock(-1) }
	edOps[0xB3] = func(c *CPU) int { return c.outBlockRepeat(1) }
	edOps[0xBB] = func(c *CPU) int { return c.outBlockRepeat(-1) }
}

func opEDUndefinedNop(c *CPU) int { return edCycles[c.curOpcode] }

func opNeg(c *CPU) int {
	v := c.A
	c.A = 0
	c.sub8(v)
	return edCycles[0x44]
}

func opRetn(c *CPU) int {
	c.PC = c.pop16()
	c.IFF1 = c.IFF2
	return edCycles[0x45]
}

func opReti(c *CPU) int {
	c.PC = c.pop16()
	c.IFF1 = c.IFF2
	return edCycles[0x4D]
}

func opRRD(c *CPU) int {
	addr := c.hl()
	m := c.mem.Read(addr)
	lowA := c.A & 0x0F
	c.A = c.A&0xF0 | m&0x0F
	m = m>>4 | lowA<<4
	c.mem.Write(addr, m)
	c.setSZXY(c.A)
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagP, parity(c.A))
	return edCycles[0x67]
}

func opRLD(c *CPU) int {
	addr := c.hl()
	m := c.mem.Read(addr)
	lowA := c.A & 0x0F
	c.A = c.A&0xF0 | m>>4
	m = m<<4 | lowA
	c.mem.Write(addr, m)
	c.setSZXY(c.A)
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagP, parity(c.A))
	return edCycles[0x6F]
}

// ldBlock implements LDI (dir=1) / LDD (dir=-1): copy (HL) to (DE), advance
// both pointers by dir, decrement BC. The undocumented X/Y flags derive
// from A plus the transferred byte, per the documented quirk table.
func (c *CPU) ldBlock(dir int) int {
	v := c.mem.Read(c.hl())
	c.mem.Write(c.de(), v)
	c.setHL(c.hl() + uint16(dir))
	c.setDE(c.de() + uint16(dir))
	bc := c.bc() - 1
	c.setBC(bc)

	tmp := v + c.A
	c.setFlag(flagX, tmp&0x08 != 0)
	c.setFlag(flagY, tmp&0x02 != 0)
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagP, bc != 0)
	return edCycles[0xA0]
}

// ldBlockRepeat implements LDIR/LDDR. It repeats ldBlock until BC reaches 0
// or the self-interrupt guard fires: this checks, after each iteration,
// that the two bytes immediately before PC still
// read back as this instruction's own opcode bytes (0xED 0xB0/0xB8) —
// if an iteration just overwrote one of them, the transfer is cut short
// here rather than looping on stale memory.
func (c *CPU) ldBlockRepeat(dir int) int {
	cost := c.ldBlock(dir)
	if c.bc() == 0 {
		return cost
	}
	expectedB0 := uint8(0xED)
	expectedB1 := uint8(0xB0)
	if dir < 0 {
		expectedB1 = 0xB8
	}
	if c.PC >= 2 && c.mem.Read(c.PC-2) == expectedB0 && c.mem.Read(c.PC-1) == expectedB1 {
		c.PC -= 2
		return 21
	}
	return 16
}

func (c *CPU) cpBlock(dir int) int {
	v := c.mem.Read(c.hl())
	a := c.A
	diff := a - v
	c.setHL(c.hl() + uint16(dir))
	bc := c.bc() - 1
	c.setBC(bc)

	halfBorrow := a&0x0F < v&0x0F
	tmp := diff
	if halfBorrow {
		tmp--
	}
	c.setFlag(flagX, tmp&0x08 != 0)
	c.setFlag(flagY, tmp&0x02 != 0)
	c.setFlag(flagH, halfBorrow)
	c.setFlag(flagN, true)
	c.setFlag(flagP, bc != 0)
	c.setFlag(flagS, diff&0x80 != 0)
	c.setFlag(flagZ, diff == 0)
	return edCycles[0xA1]
}

func (c *CPU) cpBlockRepeat(dir int) int {
	cost := c.cpBlock(dir)
	if c.bc() == 0 || c.getFlag(flagZ) {
		return cost
	}
	expectedB1 := uint8(0xB1)
	if dir < 0 {
		expectedB1 = 0xB9
	}
	if c.PC >= 2 && c.mem.Read(c.PC-2) == 0xED && c.mem.Read(c.PC-1) == expectedB1 {
		c.PC -= 2
		return 21
	}
	return 16
}

func (c *CPU) inBlock(dir int) int {
	v := c.ports.In(c.bc())
	c.mem.Write(c.hl(), v)
	c.setHL(c.hl() + uint16(dir))
	c.B--
	c.setFlag(flagZ, c.B == 0)
	c.setFlag(flagS, c.B&0x80 != 0)
	c.setFlag(flagN, v&0x80 != 0)
	return edCycles[0xA2]
}

func (c *CPU) inBlockRepeat(dir int) int {
	cost := c.inBlock(dir)
	if c.B == 0 {
		return cost
	}
	c.PC -= 2
	return 21
}

func (c *CPU) outBlock(dir int) int {
	v := c.mem.Read(c.hl())
	c.B--
	c.ports.Out(c.bc(), v)
	c.setHL(c.hl() + uint16(dir))
	c.setFlag(flagZ, c.B == 0)
	c.setFlag(flagS, c.B&0x80 != 0)
	c.setFlag(flagN, v&0x80 != 0)
	return edCycles[0xA3]
}

func (c *CPU) outBlockRepeat(dir int) int {
	cost := c.outBlock(dir)
	if c.B == 0 {
		return cost
	}
	c.PC -= 2
	return 21
}
