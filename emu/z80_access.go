package emu

// Register-code decoding shared by the base, CB, and ED tables. Codes 0-7
// mean B, C, D, E, H, L, (HL), A. Under an active idxMode (DD/FD prefix),
// codes 4 and 5 redirect to the undocumented index-register halves
// (IXh/IXl or IYh/IYl) and code 6 redirects to memory at (IX+d)/(IY+d)
// instead of (HL) — the displacement byte is fetched lazily, once per
// instruction, the first time code 6 is touched.

func (c *CPU) resetDisplacement() {
	c.dispValid = false
}

func (c *CPU) displacedAddr() uint16 {
	if !c.dispValid {
		c.disp = int8(c.readArg8())
		c.dispValid = true
	}
	base := c.IX
	if c.idxMode == idxIY {
		base = c.IY
	}
	return uint16(int32(base) + int32(c.disp))
}

func (c *CPU) getReg8(code uint8) uint8 {
	switch code {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		if c.idxMode == idxIX {
			return uint8(c.IX >> 8)
		} else if c.idxMode == idxIY {
			return uint8(c.IY >> 8)
		}
		return c.H
	case 5:
		if c.idxMode == idxIX {
			return uint8(c.IX)
		} else if c.idxMode == idxIY {
			return uint8(c.IY)
		}
		return c.L
	case 6:
		if c.idxMode != idxNone {
			return c.mem.Read(c.displacedAddr())
		}
		return c.mem.Read(c.hl())
	default:
		return c.A
	}
}

func (c *CPU) setReg8(code uint8, v uint8) {
	switch code {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		if c.idxMode == idxIX {
			c.IX = uint16(v)<<8 | c.IX&0xFF
		} else if c.idxMode == idxIY {
			c.IY = uint16(v)<<8 | c.IY&0xFF
		} else {
			c.H = v
		}
	case 5:
		if c.idxMode == idxIX {
			c.IX = c.IX&0xFF00 | uint16(v)
		} else if c.idxMode == idxIY {
			c.IY = c.IY&0xFF00 | uint16(v)
		} else {
			c.L = v
		}
	case 6:
		if c.idxMode != idxNone {
			c.mem.Write(c.displacedAddr(), v)
		} else {
			c.mem.Write(c.hl(), v)
		}
	default:
		c.A = v
	}
}

// getRealReg8/setRealReg8 decode codes 4/5 as plain H/L regardless of
// idxMode, for the LD r,(IX+d)/LD (IX+d),r family: the operand that is not
// the displaced-memory operand is always real H/L, never IXh/IXl, since
// there is no "high byte of IX" memory location to redirect to.
func (c *CPU) getRealReg8(code uint8) uint8 {
	switch code {
	case 4:
		return c.H
	case 5:
		return c.L
	default:
		return c.getReg8(code)
	}
}

func (c *CPU) setRealReg8(code uint8, v uint8) {
	switch code {
	case 4:
		c.H = v
	case 5:
		c.L = v
	default:
		c.setReg8(code, v)
	}
}

// get16rp/set16rp decode the "rp" group (bits 4-5 of the opcode): 0=BC,
// 1=DE, 2=HL (or IX/IY under a prefix), 3=SP.
func (c *CPU) get16rp(code uint8) uint16 {
	switch code {
	case 0:
		return c.bc()
	case 1:
		return c.de()
	case 2:
		return c.indexedHL()
	default:
		return c.SP
	}
}

func (c *CPU) set16rp(code uint8, v uint16) {
	switch code {
	case 0:
		c.setBC(v)
	case 1:
		c.setDE(v)
	case 2:
		c.setIndexedHL(v)
	default:
		c.SP = v
	}
}

// get16rp2/set16rp2 decode the "rp2" group used by PUSH/POP: 0=BC, 1=DE,
// 2=HL (or IX/IY), 3=AF.
func (c *CPU) get16rp2(code uint8) uint16 {
	if code == 3 {
		return c.af()
	}
	return c.get16rp(code)
}

func (c *CPU) set16rp2(code uint8, v uint16) {
	if code == 3 {
		c.setAF(v)
		return
	}
	c.set16rp(code, v)
}

// condTrue evaluates one of the 8 condition codes used by JR/JP/CALL/RET cc.
func (c *CPU) condTrue(code uint8) bool {
	switch code {
	case 0:
		return !c.getFlag(flagZ)
	case 1:
		return c.getFlag(flagZ)
	case 2:
		return !c.getFlag(flagC)
	case 3:
		return c.getFlag(flagC)
	case 4:
		return !c.getFlag(flagP)
	case 5:
		return c.getFlag(flagP)
	case 6:
		return !c.getFlag(flagS)
	default:
		return c.getFlag(flagS)
	}
}
