package emu

import (
	"image"
)

// VDPKind distinguishes the three display-chip variants:
// plain SMS (192 lines only, 6-bit CRAM), SMS2 (adds 224/240-line modes),
// and Game Gear (adds the 224-line mode but not 240, with 16-bit CRAM and
// a cropped 160x144 viewport onto the active display).
type VDPKind int

const (
	VDPSms VDPKind = iota
	VDPSms2
	VDPGameGear
)

// Resolution is the active display height selected by mode bits m1-m4.
type Resolution int

const (
	ResLow    Resolution = iota // 192 lines
	ResMedium                   // 224 lines (SMS2/GG only)
	ResHigh                     // 240 lines (SMS2 only)
)

// VDP timing constants (in CPU cycles within a scanline)
const (
	// Cycle at which VBlank interrupt is triggered
	VBlankInterruptCycle = 4
	// Cycle at which line counter decrements and line interrupt may fire
	LineInterruptCycle = 8
	// Cycle at which CRAM is latched for rendering, after line interrupt
	// handlers have had ~6 cycles to run
	CRAMLatchCycle = 14
)

// hCounterTable maps CPU cycle offset (0-227) to H-counter value (0-255).
// The SMS VDP master clock is 10.738 MHz (3x CPU clock); each scanline is
// 684 master clocks = 228 CPU cycles. The H-counter is a 9-bit internal
// counter exposed as its upper 8 bits via port $7E/$7F, which produces a
// jump from $93 to $E9 at H-blank start.
var hCounterTable = func() [228]uint8 {
	var table [228]uint8

	for cycle := 0; cycle < 228; cycle++ {
		masterClock := cycle * 3

		var hValue int
		switch {
		case masterClock < 256:
			hValue = masterClock / 2
		case masterClock < 512:
			progress := masterClock - 256
			hValue = 0x80 + (progress * 20 / 256)
			if hValue > 0x93 {
				hValue = 0x93
			}
		default:
			progress := masterClock - 512
			hValue = 0xE9 + (progress * 32 / 172)
			if hValue > 0xFF {
				hValue -= 0x100
			}
		}

		table[cycle] = uint8(hValue)
	}

	return table
}()

// GetHCounterForCycle returns the H-counter value for a cycle offset within
// a scanline.
func GetHCounterForCycle(cycle int) uint8 {
	if cycle < 0 {
		return 0
	}
	if cycle >= 228 {
		return hCounterTable[227]
	}
	return hCounterTable[cycle]
}

type VDP struct {
	kind VDPKind

	vram       [0x4000]uint8 // 16KB VRAM
	cram       [0x20]uint8   // 32 bytes CRAM (SMS/SMS2: --BBGGRR)
	cramLatch  [0x20]uint8   // latched CRAM for rendering
	ggCRAM     [0x20]uint16  // 32 words CRAM (Game Gear: ----BBBBGGGGRRRR)
	ggCRAMHold uint8         // low-byte latch for GG's even/odd write pair

	register   [16]uint8 // VDP registers (only 0-10 are real; rest unused)
	addr       uint16    // current VRAM/CRAM address
	addrLatch  uint8     // first byte of a control-port write
	writeLatch bool      // true once the first control byte is stored
	codeReg    uint8      // command code (bits 6-7 of the second write)
	readBuffer uint8      // read buffer for VRAM reads
	status     uint8      // status register

	vCounter    uint16
	hCounter    uint8
	lineCounter int16
	lineIntPending bool

	framebuffer  *image.RGBA
	bgPriority   [256]bool
	spritePixels []bool

	// Per-scanline latched values
	hScrollLatch uint8
	reg2Latch    uint8
	reg7Latch    uint8
	// Per-frame latched value (sampled once at v=0)
	vScrollLatch uint8

	totalScanlines int // 262 NTSC, 313 PAL

	statusWasRead          bool
	interruptCheckRequired bool
}

// paletteScale maps a 2-bit SMS/SMS2 color channel to 8-bit RGB.
var paletteScale = [4]uint8{0, 85, 170, 255}

func NewVDP() *VDP {
	return newVDPKind(VDPSms)
}

// NewVDPKind constructs a VDP of the given chip variant. SMS2 gains the
// 224/240-line modes and Game Gear the 224-line mode; Game Gear also
// switches CRAM to 16-bit words and crops rendering to its 160x144 viewport.
func NewVDPKind(kind VDPKind) *VDP {
	return newVDPKind(kind)
}

func newVDPKind(kind VDPKind) *VDP {
	return &VDP{
		kind:           kind,
		framebuffer:    image.NewRGBA(image.Rect(0, 0, ScreenWidth, MaxScreenHeight)),
		totalScanlines: 262,
		lineCounter:    255,
		spritePixels:   make([]bool, ScreenWidth),
	}
}

// SetTotalScanlines configures the VDP for the correct region timing.
func (v *VDP) SetTotalScanlines(scanlines int) {
	v.totalScanlines = scanlines
}

// resolution decodes mode bits m1 (reg1 bit 4), m2 (reg0 bit 1), m3 (reg1
// bit 3), m4 (reg0 bit 2) against the device kind. Any combination the
// table doesn't name, or that names a mode the kind doesn't support, falls
// back to Low (192 lines).
func (v *VDP) resolution() Resolution {
	m4 := v.register[0]&0x04 != 0
	m2 := v.register[0]&0x02 != 0
	m3 := v.register[1]&0x08 != 0
	m1 := v.register[1]&0x10 != 0

	if !m4 {
		return ResLow
	}

	switch {
	case !m3 && m2 && m1:
		if v.kind != VDPSms {
			return ResMedium
		}
	case m3 && m2 && !m1:
		if v.kind == VDPSms2 {
			return ResHigh
		}
	}
	return ResLow
}

// ActiveHeight returns the active display height in lines: 192, 224, or 240.
func (v *VDP) ActiveHeight() int {
	switch v.resolution() {
	case ResMedium:
		return 224
	case ResHigh:
		return 240
	default:
		return 192
	}
}

// ReadControl returns the status register and clears flags per the
// register/port read protocol.
func (v *VDP) ReadControl() uint8 {
	status := v.status
	v.status &^= 0xE0 // clear VBlank/overflow/collision (bits 7,6,5)
	v.lineIntPending = false
	v.writeLatch = false
	v.statusWasRead = true
	return status
}

// StatusWasRead returns and clears the status-read flag set by ReadControl.
// The scheduler in emulator.go does not consult it.
func (v *VDP) StatusWasRead() bool {
	if v.statusWasRead {
		v.statusWasRead = false
		return true
	}
	return false
}

// InterruptCheckRequired returns and clears the flag set when reg0 or reg1
// (the interrupt-enable bits) was written.
func (v *VDP) InterruptCheckRequired() bool {
	if v.interruptCheckRequired {
		v.interruptCheckRequired = false
		return true
	}
	return false
}

// WriteControl handles the two-write control port sequence.
func (v *VDP) WriteControl(value uint8) {
	if !v.writeLatch {
		v.addrLatch = value
		v.writeLatch = true
		return
	}

	v.writeLatch = false
	v.addr = uint16(v.addrLatch) | (uint16(value&0x3F) << 8)
	v.codeReg = (value >> 6) & 0x03

	switch v.codeReg {
	case 0: // VRAM read setup: pre-fetch into the read buffer
		v.readBuffer = v.vram[v.addr&0x3FFF]
		v.addr = (v.addr + 1) & 0x3FFF
	case 2: // register write
		regNum := value & 0x0F
		if regNum <= 10 {
			v.register[regNum] = v.addrLatch
			if regNum == 0 || regNum == 1 {
				v.interruptCheckRequired = true
			}
		}
	}
}

// ReadData returns the buffered VRAM byte and refills the buffer.
func (v *VDP) ReadData() uint8 {
	v.writeLatch = false
	data := v.readBuffer
	v.readBuffer = v.vram[v.addr&0x3FFF]
	v.addr = (v.addr + 1) & 0x3FFF
	return data
}

// WriteData writes to VRAM or CRAM depending on the latched code register.
// Game Gear CRAM writes are a two-byte sequence: the even address latches
// the low byte, the odd address ORs it with the high byte and commits a
// 16-bit word.
func (v *VDP) WriteData(value uint8) {
	v.writeLatch = false
	v.readBuffer = value

	if v.codeReg == 3 {
		if v.kind == VDPGameGear {
			if v.addr&1 == 0 {
				v.ggCRAMHold = value
			} else {
				idx := (v.addr >> 1) & 0x1F
				v.ggCRAM[idx] = uint16(value)<<8 | uint16(v.ggCRAMHold)
			}
		} else {
			v.cram[v.addr&0x1F] = value
		}
	} else {
		v.vram[v.addr&0x3FFF] = value
	}
	v.addr = (v.addr + 1) & 0x3FFF
}

// SetVBlank sets the VBlank flag in the status register.
func (v *VDP) SetVBlank() {
	v.status |= 0x80
}

// RequestingMaskable implements IRQSource: it reports the VDP's interrupt
// line state for the CPU to sample at instruction boundaries.
func (v *VDP) RequestingMaskable() bool {
	frameInt := (v.status&0x80 != 0) && (v.register[1]&0x20 != 0)
	lineInt := v.lineIntPending && (v.register[0]&0x10 != 0)
	return frameInt || lineInt
}

// InterruptPending is an alias of RequestingMaskable. The scheduler in
// emulator.go does not call it; the CPU polls RequestingMaskable directly.
func (v *VDP) InterruptPending() bool {
	return v.RequestingMaskable()
}

// SetVCounter sets the raw scanline counter at the start of a line, before
// the CPU runs that line's cycles.
func (v *VDP) SetVCounter(line uint16) {
	v.vCounter = line
}

// ReadVCounter returns the 8-bit V-counter value, applying the kind/
// resolution/TV-system-dependent fold-over table so a 262- or 313-line
// frame fits in 8 bits.
func (v *VDP) ReadVCounter() uint8 {
	line := int(v.vCounter)
	region := 0
	if v.totalScanlines == 313 {
		region = 1
	}
	fold, ok := vCounterFoldTable[[2]int{region, int(v.resolution())}]
	if !ok {
		return uint8(line)
	}
	if line <= fold.passMax {
		return uint8(line)
	}
	if fold.hasSecondary && line >= fold.secPassMin && line <= fold.secPassMax {
		return uint8(line - fold.secSub)
	}
	return uint8(line - fold.subtract)
}

// ReadHCounter returns the horizontal counter, latched at the last TH
// transition (this implementation always reports the current value).
func (v *VDP) ReadHCounter() uint8 {
	return v.hCounter
}

// SetHCounter updates the horizontal counter.
func (v *VDP) SetHCounter(h uint8) {
	v.hCounter = h
}

// LatchVScrollForFrame latches reg9 once per frame (at v=0): vertical
// scroll cannot change mid-frame on real hardware.
func (v *VDP) LatchVScrollForFrame() {
	v.vScrollLatch = v.register[9]
}

// LatchCRAM copies CRAM into the render-time latch, called after line
// interrupt handlers have had a chance to modify it for this scanline.
func (v *VDP) LatchCRAM() {
	copy(v.cramLatch[:], v.cram[:])
}

// LatchPerLineRegisters latches the per-scanline registers (hScroll, name
// table base, backdrop color) so changes from a line interrupt handler
// take effect on the line that follows, not the one in progress.
func (v *VDP) LatchPerLineRegisters() {
	v.hScrollLatch = v.register[8]
	v.reg2Latch = v.register[2]
	v.reg7Latch = v.register[7]
}

// UpdateLineCounter decrements the line-interrupt counter on active lines
// and the first VBlank line, reloading from reg10 and setting
// lineIntPending on underflow; it reloads without generating an interrupt
// during the rest of VBlank.
func (v *VDP) UpdateLineCounter() {
	activeHeight := uint16(v.ActiveHeight())

	if v.vCounter <= activeHeight {
		v.lineCounter--
		if v.lineCounter < 0 {
			v.lineCounter = int16(v.register[10])
			v.lineIntPending = true
		}
	} else {
		v.lineCounter = int16(v.register[10])
	}
}

// GetVRAM returns the VRAM contents.
func (v *VDP) GetVRAM() []uint8 { return v.vram[:] }

// GetCRAM returns the SMS-format CRAM (palette) contents. Game Gear CRAM
// writes go only to the 16-bit ggCRAM, which this does not return.
func (v *VDP) GetCRAM() []uint8 { return v.cram[:] }

// GetRegister returns the value of a VDP register (0-15).
func (v *VDP) GetRegister(n int) uint8 {
	if n < 0 || n >= len(v.register) {
		return 0
	}
	return v.register[n]
}

func (v *VDP) GetAddress() uint16    { return v.addr }
func (v *VDP) GetCodeReg() uint8     { return v.codeReg }
func (v *VDP) GetWriteLatch() bool   { return v.writeLatch }
func (v *VDP) GetStatus() uint8      { return v.status }
func (v *VDP) GetLineCounter() int16 { return v.lineCounter }
func (v *VDP) GetLineIntPending() bool {
	return v.lineIntPending
}

// LeftColumnBlankEnabled reports reg0 bit 5 (mask the leftmost 8 pixels
// with the backdrop color).
func (v *VDP) LeftColumnBlankEnabled() bool {
	return v.register[0]&0x20 != 0
}

// vCounterFold describes one row of the V-counter fold-over table: region
// (0=NTSC,1=PAL) and resolution key the map.
type vCounterFold struct {
	passMax               int
	subtract              int
	secPassMin, secPassMax int
	secSub                int
	hasSecondary           bool
}

var vCounterFoldTable = map[[2]int]vCounterFold{
	{0, int(ResLow)}:    {passMax: 0xDA, subtract: 6},
	{0, int(ResMedium)}: {passMax: 0xEA, subtract: 6},
	{0, int(ResHigh)}:   {passMax: 0xFF, subtract: 0x100},
	{1, int(ResLow)}:    {passMax: 0xF2, subtract: 57},
	{1, int(ResMedium)}: {passMax: 0xFF, subtract: 57, secPassMin: 0x100, secPassMax: 0x102, secSub: 0x100, hasSecondary: true},
	{1, int(ResHigh)}:   {passMax: 0xFF, subtract: 57, secPassMin: 0x100, secPassMax: 0x10A, secSub: 0x100, hasSecondary: true},
}
