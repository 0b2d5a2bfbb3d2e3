package emu

// Flag bit positions within F.
const (
	flagC = 1 << 0
	flagN = 1 << 1
	flagP = 1 << 2 // P/V
	flagX = 1 << 3 // undocumented, bit 3 of result
	flagH = 1 << 4
	flagY = 1 << 5 // undocumented, bit 5 of result
	flagZ = 1 << 6
	flagS = 1 << 7
)

// indexMode selects which 16-bit index register (if any) stands in for HL
// in register-code 4/5/6 decoding: one base opcode table serves unprefixed,
// DD-prefixed, and FD-prefixed execution by redirecting through this field
// instead of triplicating the table.
type indexMode int

const (
	idxNone indexMode = iota
	idxIX
	idxIY
)

// CPU is the Z80 interpreter: registers, interrupt state, and the Memory/
// Ports collaborators opcodes execute against.
type CPU struct {
	A, F       uint8
	B, C       uint8
	D, E       uint8
	H, L       uint8
	A2, F2     uint8
	B2, C2     uint8
	D2, E2     uint8
	H2, L2     uint8
	IX, IY     uint16
	SP, PC     uint16
	I, R       uint8
	IFF1, IFF2 bool
	IM         uint8

	Halted    bool
	Cycles    uint64
	eiPending bool
	idxMode   indexMode
	dispValid bool
	disp      int8
	// lastFetchAddr is not read anywhere: LDIR/LDDR's self-interrupt check
	// (ldBlockRepeat) re-reads the two bytes immediately before PC instead.
	lastFetchAddr uint16

	nmiPending bool
	curOpcode  uint8

	mem   Memory
	ports Ports
	irq   IRQSource
}

// NewCPU constructs a CPU wired to the given Memory, Ports, and interrupt
// source collaborators, in the power-on state: IX/IY = 0xFFFF, SP = 0xFFFF,
// interrupts disabled, IM 1 (the state the SMS BIOS and most cartridges
// expect after reset).
func NewCPU(mem Memory, ports Ports, irq IRQSource) *CPU {
	return &CPU{
		IX: 0xFFFF,
		IY: 0xFFFF,
		SP: 0xFFFF,
		IM: 1,
		mem: mem, ports: ports, irq: irq,
	}
}

func (c *CPU) af() uint16  { return uint16(c.A)<<8 | uint16(c.F) }
func (c *CPU) bc() uint16  { return uint16(c.B)<<8 | uint16(c.C) }
func (c *CPU) de() uint16  { return uint16(c.D)<<8 | uint16(c.E) }
func (c *CPU) hl() uint16  { return uint16(c.H)<<8 | uint16(c.L) }
func (c *CPU) af2() uint16 { return uint16(c.A2)<<8 | uint16(c.F2) }
func (c *CPU) bc2() uint16 { return uint16(c.B2)<<8 | uint16(c.C2) }
func (c *CPU) de2() uint16 { return uint16(c.D2)<<8 | uint16(c.E2) }
func (c *CPU) hl2() uint16 { return uint16(c.H2)<<8 | uint16(c.L2) }

func (c *CPU) setAF(v uint16)  { c.A, c.F = uint8(v>>8), uint8(v) }
func (c *CPU) setBC(v uint16)  { c.B, c.C = uint8(v>>8), uint8(v) }
func (c *CPU) setDE(v uint16)  { c.D, c.E = uint8(v>>8), uint8(v) }
func (c *CPU) setHL(v uint16)  { c.H, c.L = uint8(v>>8), uint8(v) }
func (c *CPU) setAF2(v uint16) { c.A2, c.F2 = uint8(v>>8), uint8(v) }
func (c *CPU) setBC2(v uint16) { c.B2, c.C2 = uint8(v>>8), uint8(v) }
func (c *CPU) setDE2(v uint16) { c.D2, c.E2 = uint8(v>>8), uint8(v) }
func (c *CPU) setHL2(v uint16) { c.H2, c.L2 = uint8(v>>8), uint8(v) }

// indexedHL returns the 16-bit register that stands in for HL given the
// current prefix context: HL unprefixed, IX under DD, IY under FD.
func (c *CPU) indexedHL() uint16 {
	switch c.idxMode {
	case idxIX:
		return c.IX
	case idxIY:
		return c.IY
	default:
		return c.hl()
	}
}

func (c *CPU) setIndexedHL(v uint16) {
	switch c.idxMode {
	case idxIX:
		c.IX = v
	case idxIY:
		c.IY = v
	default:
		c.setHL(v)
	}
}

// fetch8 reads the opcode byte at PC, advances PC (wrapping mod 2^16), and
// increments R preserving its top bit.
func (c *CPU) fetch8() uint8 {
	v := c.mem.Read(c.PC)
	c.PC++
	c.bumpR()
	return v
}

func (c *CPU) bumpR() {
	c.R = (c.R & 0x80) | ((c.R + 1) & 0x7F)
}

// readArg8 reads an inline operand byte without touching R (used for n, e,
// d operands that follow the opcode but are not themselves opcode fetches).
func (c *CPU) readArg8() uint8 {
	v := c.mem.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) readArg16() uint16 {
	lo := c.readArg8()
	hi := c.readArg8()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) push16(v uint16) {
	c.SP--
	c.mem.Write(c.SP, uint8(v>>8))
	c.SP--
	c.mem.Write(c.SP, uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.mem.Read(c.SP)
	c.SP++
	hi := c.mem.Read(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) getFlag(mask uint8) bool { return c.F&mask != 0 }

func (c *CPU) setFlag(mask uint8, v bool) {
	if v {
		c.F |= mask
	} else {
		c.F &^= mask
	}
}
