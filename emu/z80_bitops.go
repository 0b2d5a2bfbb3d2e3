package emu

// The eight CB-space rotate/shift operations, each taking the operand value
// and returning the result with flags set on c. Shared verbatim by plain
// CB dispatch (operating on a register or (HL)) and indexed DDCB/FDCB
// dispatch (operating on (IX+d)/(IY+d), optionally also storing to a
// register — the "store" variant).

func (c *CPU) rlc(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v<<1 | boolBit(carry)
	c.setFlag(flagC, carry)
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagP, parity(result))
	c.setSZXY(result)
	return result
}

func (c *CPU) rrc(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v>>1 | boolBit(carry)<<7
	c.setFlag(flagC, carry)
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagP, parity(result))
	c.setSZXY(result)
	return result
}

func (c *CPU) rl(v uint8) uint8 {
	oldCarry := boolBit(c.getFlag(flagC))
	carry := v&0x80 != 0
	result := v<<1 | oldCarry
	c.setFlag(flagC, carry)
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagP, parity(result))
	c.setSZXY(result)
	return result
}

func (c *CPU) rr(v uint8) uint8 {
	oldCarry := boolBit(c.getFlag(flagC))
	carry := v&0x01 != 0
	result := v>>1 | oldCarry<<7
	c.setFlag(flagC, carry)
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagP, parity(result))
	c.setSZXY(result)
	return result
}

func (c *CPU) sla(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v << 1
	c.setFlag(flagC, carry)
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagP, parity(result))
	c.setSZXY(result)
	return result
}

func (c *CPU) sra(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v&0x80 | v>>1
	c.setFlag(flagC, carry)
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagP, parity(result))
	c.setSZXY(result)
	return result
}

// sll is the undocumented "shift left logical" that shifts in a 1 at bit 0
// instead of 0.
func (c *CPU) sll(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v<<1 | 1
	c.setFlag(flagC, carry)
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagP, parity(result))
	c.setSZXY(result)
	return result
}

func (c *CPU) srl(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v >> 1
	c.setFlag(flagC, carry)
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagP, parity(result))
	c.setSZXY(result)
	return result
}

// cbShiftOps indexes the eight shift/rotate kinds by the CB opcode's top 3
// bits (opcode>>3 for opcode < 0x40).
var cbShiftOps = [8]func(*CPU, uint8) uint8{
	(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
	(*CPU).sla, (*CPU).sra, (*CPU).sll, (*CPU).srl,
}

// bitTest sets Z (and S/P mirroring Z, per real hardware) from testing bit
// n of v; X/Y always come from v itself. The undocumented variant in which
// BIT on an indexed memory operand takes X/Y from the high byte of the
// address is not modelled, here or by any caller.
func (c *CPU) bitTest(n uint, v uint8) {
	set := v&(1<<n) != 0
	c.setFlag(flagZ, !set)
	c.setFlag(flagP, !set)
	c.setFlag(flagS, n == 7 && set)
	c.setFlag(flagH, true)
	c.setFlag(flagN, false)
	c.setFlag(flagX, v&0x08 != 0)
	c.setFlag(flagY, v&0x20 != 0)
}

func bitRes(n uint, v uint8) uint8 { return v &^ (1 << n) }
func bitSet(n uint, v uint8) uint8 { return v | (1 << n) }
