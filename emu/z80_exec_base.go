package emu

// opFunc executes one decoded instruction and returns its actual cycle
// cost for this execution (branch-taken/not-taken already resolved),
// computed inside the handler rather than by comparing PC before/after.
type opFunc func(c *CPU) int

// baseOps serves both unprefixed execution and DD/FD-prefixed execution:
// register codes 4/5/6 redirect through CPU.idxMode (see z80_access.go),
// so a single 256-entry table covers all three contexts instead of
// triplicating it.
var baseOps [256]opFunc

func init() {
	for i := range baseOps {
		baseOps[i] = opUndefinedNop
	}

	baseOps[0x00] = opNop
	baseOps[0x08] = opExAFAF
	baseOps[0x10] = opDJNZ
	baseOps[0x18] = opJR
	baseOps[0x76] = opHalt
	baseOps[0xC3] = opJPnn
	baseOps[0xC6] = aluImmOp(0)
	baseOps[0xCE] = aluImmOp(1)
	baseOps[0xD6] = aluImmOp(2)
	baseOps[0xDE] = aluImmOp(3)
	baseOps[0xE6] = aluImmOp(4)
	baseOps[0xEE] = aluImmOp(5)
	baseOps[0xF6] = aluImmOp(6)
	baseOps[0xFE] = aluImmOp(7)
	baseOps[0xC9] = opRet
	baseOps[0xCD] = opCallNN
	baseOps[0xD3] = opOutNA
	baseOps[0xD9] = opExx
	baseOps[0xDB] = opInANPort
	baseOps[0xE3] = opExSPHL
	baseOps[0xE9] = opJPHL
	baseOps[0xEB] = opExDEHL
	baseOps[0xF3] = opDI
	baseOps[0xF9] = opLDSPHL
	baseOps[0xFB] = opEI

	rowOps := [8]func(*CPU){
		(*CPU).rlca, (*CPU).rrca, (*CPU).rla, (*CPU).rra,
		(*CPU).daa, (*CPU).cpl, (*CPU).scf, (*CPU).ccf,
	}
	for i, fn := range rowOps {
		fn := fn
		baseOps[0x07+8*i] = func(c *CPU) int { fn(c); return pickCycles(c, c.curOpcode) }
	}

	for r := uint8(0); r < 8; r++ {
		r := r
		incOp := uint8(0x04) + 8*r
		decOp := uint8(0x05) + 8*r
		ldOp := uint8(0x06) + 8*r
		baseOps[incOp] = func(c *CPU) int {
			v := c.getReg8(r)
			c.setReg8(r, c.inc8(v))
			return pickCycles(c, incOp)
		}
		baseOps[decOp] = func(c *CPU) int {
			v := c.getReg8(r)
			c.setReg8(r, c.dec8(v))
			return pickCycles(c, decOp)
		}
		baseOps[ldOp] = func(c *CPU) int {
			if r == 6 && c.idxMode != idxNone {
				c.displacedAddr() // DD/FD 36 d n: d precedes n
			}
			n := c.readArg8()
			c.setReg8(r, n)
			return pickCycles(c, ldOp)
		}
	}

	for rp := uint8(0); rp < 4; rp++ {
		rp := rp
		ldRpNN := 0x01 + 0x10*rp
		addHLRp := 0x09 + 0x10*rp
		decRp := 0x0B + 0x10*rp
		incRp := 0x03 + 0x10*rp
		baseOps[ldRpNN] = func(c *CPU) int {
			v := c.readArg16()
			c.set16rp(rp, v)
			return pickCycles(c, ldRpNN)
		}
		baseOps[addHLRp] = func(c *CPU) int {
			result := c.add16(c.indexedHL(), c.get16rp(rp))
			c.setIndexedHL(result)
			return pickCycles(c, addHLRp)
		}
		baseOps[incRp] = func(c *CPU) int {
			c.set16rp(rp, c.get16rp(rp)+1)
			return pickCycles(c, incRp)
		}
		baseOps[decRp] = func(c *CPU) int {
			c.set16rp(rp, c.get16rp(rp)-1)
			return pickCycles(c, decRp)
		}
	}

	baseOps[0x02] = func(c *CPU) int { c.mem.Write(c.bc(), c.A); return pickCycles(c, 0x02) }
	baseOps[0x12] = func(c *CPU) int { c.mem.Write(c.de(), c.A); return pickCycles(c, 0x12) }
	baseOps[0x0A] = func(c *CPU) int { c.A = c.mem.Read(c.bc()); return pickCycles(c, 0x0A) }
	baseOps[0x1A] = func(c *CPU) int { c.A = c.mem.Read(c.de()); return pickCycles(c, 0x1A) }

	baseOps[0x22] = func(c *CPU) int {
		addr := c.readArg16()
		v := c.indexedHL()
		c.mem.Write(addr, uint8(v))
		c.mem.Write(addr+1, uint8(v>>8))
		return pickCycles(c, 0x22)
	}
	baseOps[0x2A] = func(c *CPU) int {
		addr := c.readArg16()
		lo := c.mem.Read(addr)
		hi := c.mem.Read(addr + 1)
		c.setIndexedHL(uint16(hi)<<8 | uint16(lo))
		return pickCycles(c, 0x2A)
	}
	baseOps[0x32] = func(c *CPU) int {
		addr := c.readArg16()
		c.mem.Write(addr, c.A)
		return pickCycles(c, 0x32)
	}
	baseOps[0x3A] = func(c *CPU) int {
		addr := c.readArg16()
		c.A = c.mem.Read(addr)
		return pickCycles(c, 0x3A)
	}

	for cc := uint8(0); cc < 4; cc++ {
		cc := cc
		op := 0x20 + 0x08*cc
		baseOps[op] = func(c *CPU) int {
			e := int8(c.readArg8())
			if c.condTrue(cc) {
				c.PC = uint16(int32(c.PC) + int32(e))
				return 12
			}
			return 7
		}
	}

	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == 6 && src == 6 {
				continue // 0x76 is HALT, set above
			}
			dst, src := dst, src
			op := 0x40 + 8*dst + src
			switch {
			case dst == 6:
				// LD (HL)/(IX+d),r: the source register, if H/L-coded,
				// is always real H/L, never IXh/IXl.
				baseOps[op] = func(c *CPU) int {
					c.setReg8(dst, c.getRealReg8(src))
					return pickCycles(c, op)
				}
			case src == 6:
				// LD r,(HL)/(IX+d): same exemption for the destination.
				baseOps[op] = func(c *CPU) int {
					c.setRealReg8(dst, c.getReg8(src))
					return pickCycles(c, op)
				}
			default:
				baseOps[op] = func(c *CPU) int {
					c.setReg8(dst, c.getReg8(src))
					return pickCycles(c, op)
				}
			}
		}
	}

	aluFns := [8]func(*CPU, uint8){
		(*CPU).add8, (*CPU).adc8, (*CPU).sub8, (*CPU).sbc8,
		(*CPU).and8, (*CPU).or8, (*CPU).xor8, (*CPU).cp8,
	}
	for op8 := uint8(0); op8 < 8; op8++ {
		for src := uint8(0); src < 8; src++ {
			op8, src := op8, src
			op := 0x80 + 8*op8 + src
			fn := aluFns[op8]
			baseOps[op] = func(c *CPU) int {
				fn(c, c.getReg8(src))
				return pickCycles(c, op)
			}
		}
	}

	for cc := uint8(0); cc < 8; cc++ {
		cc := cc
		retOp := 0xC0 + 8*cc
		jpOp := 0xC2 + 8*cc
		callOp := 0xC4 + 8*cc
		baseOps[retOp] = func(c *CPU) int {
			if c.condTrue(cc) {
				c.PC = c.pop16()
				return 11
			}
			return 5
		}
		baseOps[jpOp] = func(c *CPU) int {
			addr := c.readArg16()
			if c.condTrue(cc) {
				c.PC = addr
			}
			return 10
		}
		baseOps[callOp] = func(c *CPU) int {
			addr := c.readArg16()
			if c.condTrue(cc) {
				c.push16(c.PC)
				c.PC = addr
				return 17
			}
			return 10
		}
	}

	for rp2 := uint8(0); rp2 < 4; rp2++ {
		rp2 := rp2
		popOp := 0xC1 + 0x10*rp2
		pushOp := 0xC5 + 0x10*rp2
		baseOps[popOp] = func(c *CPU) int {
			c.set16rp2(rp2, c.pop16())
			return pickCycles(c, popOp)
		}
		baseOps[pushOp] = func(c *CPU) int {
			c.push16(c.get16rp2(rp2))
			return pickCycles(c, pushOp)
		}
	}

	for n := uint8(0); n < 8; n++ {
		n := n
		op := 0xC7 + 8*n
		baseOps[op] = func(c *CPU) int {
			c.push16(c.PC)
			c.PC = uint16(n) * 8
			return pickCycles(c, op)
		}
	}
}

func aluImmOp(op8 uint8) opFunc {
	aluFns := [8]func(*CPU, uint8){
		(*CPU).add8, (*CPU).adc8, (*CPU).sub8, (*CPU).sbc8,
		(*CPU).and8, (*CPU).or8, (*CPU).xor8, (*CPU).cp8,
	}
	fn := aluFns[op8]
	op := 0xC6 + 8*op8
	return func(c *CPU) int {
		n := c.readArg8()
		fn(c, n)
		return pickCycles(c, op)
	}
}

func opUndefinedNop(c *CPU) int { return pickCycles(c, c.curOpcode) }
func opNop(c *CPU) int          { return pickCycles(c, 0x00) }

func opExAFAF(c *CPU) int {
	c.A, c.A2 = c.A2, c.A
	c.F, c.F2 = c.F2, c.F
	return pickCycles(c, 0x08)
}

func opDJNZ(c *CPU) int {
	e := int8(c.readArg8())
	c.B--
	if c.B != 0 {
		c.PC = uint16(int32(c.PC) + int32(e))
		return 13
	}
	return 8
}

func opJR(c *CPU) int {
	e := int8(c.readArg8())
	c.PC = uint16(int32(c.PC) + int32(e))
	return pickCycles(c, 0x18)
}

func opHalt(c *CPU) int {
	c.Halted = true
	return pickCycles(c, 0x76)
}

func opJPnn(c *CPU) int {
	c.PC = c.readArg16()
	return pickCycles(c, 0xC3)
}

func opRet(c *CPU) int {
	c.PC = c.pop16()
	return pickCycles(c, 0xC9)
}

func opCallNN(c *CPU) int {
	addr := c.readArg16()
	c.push16(c.PC)
	c.PC = addr
	return pickCycles(c, 0xCD)
}

func opOutNA(c *CPU) int {
	n := c.readArg8()
	c.ports.Out(uint16(c.A)<<8|uint16(n), c.A)
	return pickCycles(c, 0xD3)
}

func opInANPort(c *CPU) int {
	n := c.readArg8()
	c.A = c.ports.In(uint16(c.A)<<8 | uint16(n))
	return pickCycles(c, 0xDB)
}

func opExx(c *CPU) int {
	c.B, c.B2 = c.B2, c.B
	c.C, c.C2 = c.C2, c.C
	c.D, c.D2 = c.D2, c.D
	c.E, c.E2 = c.E2, c.E
	c.H, c.H2 = c.H2, c.H
	c.L, c.L2 = c.L2, c.L
	return pickCycles(c, 0xD9)
}

func opExSPHL(c *CPU) int {
	v := c.indexedHL()
	lo := c.mem.Read(c.SP)
	hi := c.mem.Read(c.SP + 1)
	c.mem.Write(c.SP, uint8(v))
	c.mem.Write(c.SP+1, uint8(v>>8))
	c.setIndexedHL(uint16(hi)<<8 | uint16(lo))
	return pickCycles(c, 0xE3)
}

func opJPHL(c *CPU) int {
	c.PC = c.indexedHL()
	return pickCycles(c, 0xE9)
}

// opExDEHL always swaps real DE/HL, never the active index register, a
// documented real-hardware quirk.
func opExDEHL(c *CPU) int {
	d, e := c.D, c.E
	c.D, c.E = c.H, c.L
	c.H, c.L = d, e
	return pickCycles(c, 0xEB)
}

func opDI(c *CPU) int {
	c.IFF1, c.IFF2 = false, false
	return pickCycles(c, 0xF3)
}

func opLDSPHL(c *CPU) int {
	c.SP = c.indexedHL()
	return pickCycles(c, 0xF9)
}

func opEI(c *CPU) int {
	c.eiPending = true
	return pickCycles(c, 0xFB)
}
