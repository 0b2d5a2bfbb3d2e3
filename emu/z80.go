package emu

// pickCycles selects an opcode's base cost from the table matching the
// current prefix context: unprefixed, DD (IX), or FD (IY). Opcodes whose
// cost is data-dependent (conditional jumps, DJNZ, block repeats) compute
// their own return value instead of consulting this helper.
//
// ddCycles/fdCycles entries of 4 mark opcodes that do not involve the index
// register; under a prefix those cost their base timing plus 4 for the
// prefix byte.
func pickCycles(c *CPU, op uint8) int {
	switch c.idxMode {
	case idxIX:
		if ddCycles[op] == 4 {
			return baseCycles[op] + 4
		}
		return ddCycles[op]
	case idxIY:
		if fdCycles[op] == 4 {
			return baseCycles[op] + 4
		}
		return fdCycles[op]
	default:
		return baseCycles[op]
	}
}

// Step decodes and executes one instruction at PC, including any DD/FD/CB/ED
// prefix bytes, and returns the number of T-states it took. It does not
// service interrupts or HALT; callers drive that through RunUntil.
func (c *CPU) Step() int {
	c.idxMode = idxNone
	c.resetDisplacement()

	prefixCount := 0
	var opcode uint8
	for {
		opcode = c.fetch8()
		switch opcode {
		case 0xDD:
			c.idxMode = idxIX
			prefixCount++
			continue
		case 0xFD:
			c.idxMode = idxIY
			prefixCount++
			continue
		}
		break
	}

	// Stacked prefixes beyond the first are wasted fetches; only the
	// innermost DD/FD governs decoding.
	stackedExtra := 0
	if prefixCount > 1 {
		stackedExtra = (prefixCount - 1) * 4
	}

	switch opcode {
	case 0xCB:
		if c.idxMode != idxNone {
			disp := int8(c.readArg8())
			sub := c.readArg8()
			base := c.IX
			if c.idxMode == idxIY {
				base = c.IY
			}
			addr := uint16(int32(base) + int32(disp))
			return c.execIndexedCB(addr, sub) + stackedExtra
		}
		sub := c.fetch8()
		c.curOpcode = sub
		return cbOps[sub](c)
	case 0xED:
		// A DD/FD immediately followed by ED has no effect on the ED
		// opcode: real hardware simply discards the index prefix here.
		c.idxMode = idxNone
		sub := c.fetch8()
		c.curOpcode = sub
		return edOps[sub](c) + stackedExtra
	default:
		c.curOpcode = opcode
		return baseOps[opcode](c) + stackedExtra
	}
}

// TriggerNMI latches a non-maskable interrupt request. NMI is edge-triggered
// and always serviced on the next instruction boundary regardless of IFF1.
func (c *CPU) TriggerNMI() {
	c.nmiPending = true
}

// serviceInterrupts checks for a pending NMI or an asserted maskable
// interrupt line and, if one is recognized, pushes PC and jumps to the
// appropriate handler. It returns the number of T-states consumed, which
// is 0 if nothing was serviced.
func (c *CPU) serviceInterrupts() int {
	if c.nmiPending {
		c.nmiPending = false
		c.Halted = false
		c.bumpR()
		c.IFF1 = false
		c.push16(c.PC)
		c.PC = 0x66
		return 11
	}

	// The EI-shadow: an interrupt that arrives in the instruction right
	// after EI is not recognized until one more instruction executes.
	if c.eiPending {
		c.eiPending = false
		c.IFF1 = true
		c.IFF2 = true
		return 0
	}

	if !c.IFF1 || !c.irq.RequestingMaskable() {
		return 0
	}

	c.IFF1 = false
	c.IFF2 = false
	c.Halted = false
	c.bumpR()

	switch c.IM {
	case 2:
		vector := uint16(c.I)<<8 | 0xFF
		lo := c.mem.Read(vector)
		hi := c.mem.Read(vector + 1)
		c.push16(c.PC)
		c.PC = uint16(hi)<<8 | uint16(lo)
		return 19
	default:
		// IM 0 is out of scope here; treat it as IM 1, the state the SMS
		// BIOS and all known cartridges actually use.
		c.push16(c.PC)
		c.PC = 0x38
		return 13
	}
}

// RunUntil executes instructions, servicing interrupts at each boundary,
// until Cycles reaches targetCycles. A HALTed CPU advances cycles in place
// (still sampling interrupts) rather than re-executing NOP.
func (c *CPU) RunUntil(targetCycles uint64) {
	for c.Cycles < targetCycles {
		if spent := c.serviceInterrupts(); spent > 0 {
			c.Cycles += uint64(spent)
			continue
		}
		if c.Halted {
			// A halted CPU with no pending interrupt does nothing until
			// one arrives; advance straight to the budget instead of
			// spinning in 4-cycle NOP-equivalent steps.
			c.Cycles = targetCycles
			continue
		}
		c.Cycles += uint64(c.Step())
	}
}
