package emu

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"math"
)

const (
	ScreenWidth     = 256
	MaxScreenHeight = 224
	sampleRate      = 48000
)

// Save state format constants
const (
	stateVersion    = 1
	stateMagic      = "eMkIIISState"
	stateHeaderSize = 22 // magic(12) + version(2) + romCRC(4) + dataCRC(4)
)

// Save state section sizes. mainCartRAM is always serialized at its full
// capacity (two 16 KiB pages) regardless of how much the cartridge has
// actually grown into, so a state's size never depends on how far into a
// game it was taken.
const (
	cpuStateSize = 32
	memoryStateSize = systemRamSize + 1 + cartRAMPageLen*2 + halfCartRAMLen +
		4*(1+4) + // pages: kind + index, 4 slots
		1 + 1 + 4 // mapperKind, sega.ramControl, sega.pendingSlot2Rom
	vdpStateSize = 0x4000 + 0x20 + 16 + // vram, cram, registers
		2 + 4 + 1 + // addr, (addrLatch+writeLatch+codeReg+readBuffer), status
		2 + 1 + 2 + 1 + // vCounter, hCounter, lineCounter, lineIntPending
		3 + // hScrollLatch, reg2Latch, vScrollLatch
		1 + 1 + 0x20*2 + 1 // kind, reg7Latch, ggCRAM, ggCRAMHold
	psgStateSize = 3*2 + 3*2 + 3 + 1 + 2 + 2 + 1 + 4 + 2 + 8 + 4 // tone regs/counters/outputs, noise, volume, latch, clock
	inputStateSize = 2
)

// EmulatorBase contains fields shared by all platform implementations
type EmulatorBase struct {
	cpu                 *CPU
	mem                 *SMSMemory
	vdp                 *VDP
	psg                 *PSG
	io                  *SMSIO
	sink                GraphicsSink
	sinkWidth           int
	sinkHeight          int
	cyclesPerFrame      int
	cyclesPerScanline   int
	cyclesPerScanlineFP int // Fixed-point (16 fractional bits) for accurate timing

	// Region timing
	region    Region
	timing    RegionTiming
	scanlines int

	// Audio buffer for accumulating samples (shared between builds)
	audioBuffer []int16

	renderErr error
}

// InitEmulatorBase creates and initializes the shared emulator components for
// a standard Master System, NTSC/PAL per region. Use InitEmulatorBaseFull for
// Game Gear or Japanese-console wiring.
func InitEmulatorBase(rom []byte, region Region) EmulatorBase {
	return InitEmulatorBaseFull(rom, region, VDPSms, NationalityExport)
}

// InitEmulatorBaseFull behaves like InitEmulatorBase but additionally
// selects the VDP chip variant and console nationality, which together
// determine the active display modes available and the polarity of the
// controller port TH bits.
func InitEmulatorBaseFull(rom []byte, region Region, kind VDPKind, nationality Nationality) EmulatorBase {
	mem := NewMemory(rom)
	vdp := NewVDPKind(kind)

	timing := GetTimingForRegion(region)
	vdp.SetTotalScanlines(timing.Scanlines)

	samplesPerFrame := sampleRate / timing.FPS
	psg := NewPSG(timing.CPUClockHz, sampleRate, samplesPerFrame*2)

	var io *SMSIO
	if kind == VDPGameGear {
		io = NewGameGearIO(vdp, psg, nationality)
	} else {
		io = NewSMSIO(vdp, psg, nationality)
	}
	cpu := NewCPU(mem, io, vdp)

	cyclesPerFrame := timing.CPUClockHz / timing.FPS
	cyclesPerScanline := cyclesPerFrame / timing.Scanlines
	cyclesPerScanlineFP := (timing.CPUClockHz * 65536) / timing.FPS / timing.Scanlines

	return EmulatorBase{
		cpu:                 cpu,
		mem:                 mem,
		vdp:                 vdp,
		psg:                 psg,
		io:                  io,
		sink:                NullSink{},
		cyclesPerFrame:      cyclesPerFrame,
		cyclesPerScanline:   cyclesPerScanline,
		cyclesPerScanlineFP: cyclesPerScanlineFP,
		region:              region,
		timing:              timing,
		scanlines:           timing.Scanlines,
	}
}

// SetGraphicsSink installs the host collaborator that receives pixels
// pushed during rendering, replacing the default NullSink.
func (e *EmulatorBase) SetGraphicsSink(sink GraphicsSink) {
	if sink == nil {
		sink = NullSink{}
	}
	e.sink = sink
	e.sinkWidth, e.sinkHeight = 0, 0
}

// LastRenderError returns the most recent error a GraphicsSink returned
// from SetResolution or Paint, or nil if none occurred since construction.
func (e *EmulatorBase) LastRenderError() error {
	return e.renderErr
}

// runScanlines executes one frame of CPU/VDP/PSG emulation and returns audio samples
func (e *EmulatorBase) runScanlines() []float32 {
	activeHeight := e.vdp.ActiveHeight()

	sinkW, sinkH := ScreenWidth, activeHeight
	if e.vdp.kind == VDPGameGear {
		sinkW, sinkH = 160, 144
	}
	if sinkW != e.sinkWidth || sinkH != e.sinkHeight {
		if err := e.sink.SetResolution(sinkW, sinkH); err != nil {
			e.renderErr = err
		}
		e.sinkWidth, e.sinkHeight = sinkW, sinkH
	}

	var targetCyclesFP int = 0
	var executedCycles int = 0
	var prevTargetCycles int = 0

	// Collect all audio samples for the frame
	frameSamples := make([]float32, 0, 900) // ~800 samples per frame at 48kHz/60fps

	for i := 0; i < e.scanlines; i++ {
		targetCyclesFP += e.cyclesPerScanlineFP
		targetCycles := targetCyclesFP >> 16

		e.vdp.SetVCounter(uint16(i))

		if i == 0 {
			e.vdp.LatchVScrollForFrame()
		}

		// Flags to track per-scanline interrupt and latch triggers
		lineIntChecked := false
		vblankChecked := false
		cramLatched := false
		isVBlankLine := i == activeHeight

		scanlineCycles := 0
		for executedCycles < targetCycles {
			scanlineProgress := executedCycles - prevTargetCycles

			if !vblankChecked && isVBlankLine && scanlineProgress >= VBlankInterruptCycle {
				e.vdp.SetVBlank()
				vblankChecked = true
			}

			if !lineIntChecked && scanlineProgress >= LineInterruptCycle {
				e.vdp.UpdateLineCounter()
				lineIntChecked = true
			}

			if !cramLatched && scanlineProgress >= CRAMLatchCycle {
				e.vdp.LatchPerLineRegisters()
				e.vdp.LatchCRAM()
				cramLatched = true
			}

			e.vdp.SetHCounter(GetHCounterForCycle(scanlineProgress))

			var cycles int
			if spent := e.cpu.serviceInterrupts(); spent > 0 {
				cycles = spent
			} else if e.cpu.Halted {
				cycles = 4
			} else {
				cycles = e.cpu.Step()
			}
			executedCycles += cycles
			scanlineCycles += cycles
		}

		// Handle any checks that didn't trigger during a short scanline
		if !lineIntChecked {
			e.vdp.UpdateLineCounter()
		}
		if !vblankChecked && isVBlankLine {
			e.vdp.SetVBlank()
		}
		if !cramLatched {
			e.vdp.LatchPerLineRegisters()
			e.vdp.LatchCRAM()
		}

		if i < activeHeight {
			if err := e.vdp.RenderScanlineTo(e.sink); err != nil {
				e.renderErr = err
			}
		}

		prevTargetCycles = targetCycles

		e.psg.GenerateSamples(scanlineCycles)
		buffer, count := e.psg.GetBuffer()
		if count > 0 {
			frameSamples = append(frameSamples, buffer[:count]...)
		}
	}

	return frameSamples
}

// SetInput sets Player 1 controller state from external source
func (e *EmulatorBase) SetInput(up, down, left, right, btn1, btn2 bool) {
	e.io.Input.SetP1(up, down, left, right, btn1, btn2)
}

// SetInputP2 sets Player 2 controller state from external source
func (e *EmulatorBase) SetInputP2(up, down, left, right, btn1, btn2 bool) {
	e.io.Input.SetP2(up, down, left, right, btn1, btn2)
}

// GetFramebuffer returns raw RGBA pixel data for current frame
func (e *EmulatorBase) GetFramebuffer() []byte {
	return e.vdp.Framebuffer().Pix
}

// GetFramebufferStride returns the stride (bytes per row) of the framebuffer
func (e *EmulatorBase) GetFramebufferStride() int {
	return e.vdp.Framebuffer().Stride
}

// GetActiveHeight returns the current active display height (192, 224, or 240)
func (e *EmulatorBase) GetActiveHeight() int {
	return e.vdp.ActiveHeight()
}

// GetRegion returns the emulator's region setting
func (e *EmulatorBase) GetRegion() Region {
	return e.region
}

// GetTiming returns the region timing configuration
func (e *EmulatorBase) GetTiming() RegionTiming {
	return e.timing
}

// SetRegion updates the emulator's region configuration
func (e *EmulatorBase) SetRegion(region Region) {
	e.region = region
	e.timing = GetTimingForRegion(region)
	e.scanlines = e.timing.Scanlines
	e.vdp.SetTotalScanlines(e.timing.Scanlines)
	e.cyclesPerFrame = e.timing.CPUClockHz / e.timing.FPS
	e.cyclesPerScanline = e.cyclesPerFrame / e.timing.Scanlines
	e.cyclesPerScanlineFP = (e.timing.CPUClockHz * 65536) / e.timing.FPS / e.timing.Scanlines
}

// =============================================================================
// Shared Emulation Methods
// =============================================================================

// ConvertAudioSamples converts float32 mono samples to int16 stereo.
func ConvertAudioSamples(samples []float32) []int16 {
	result := make([]int16, len(samples)*2)
	for i, sample := range samples {
		intSample := int16(sample * 32767)
		result[i*2] = intSample   // Left
		result[i*2+1] = intSample // Right (duplicate for stereo)
	}
	return result
}

// RunFrame executes one frame of emulation. Audio samples are accumulated in
// the internal buffer; pixels are pushed to the installed GraphicsSink.
func (e *EmulatorBase) RunFrame() {
	// Reset audio buffer for this frame
	e.audioBuffer = e.audioBuffer[:0]

	// Run the core emulation loop
	frameSamples := e.runScanlines()

	// Convert float32 samples to 16-bit stereo
	e.audioBuffer = append(e.audioBuffer, ConvertAudioSamples(frameSamples)...)
}

// GetAudioSamples returns accumulated audio samples as 16-bit stereo PCM.
func (e *EmulatorBase) GetAudioSamples() []int16 {
	return e.audioBuffer
}

// LeftColumnBlankEnabled returns whether VDP has left column blank enabled.
func (e *EmulatorBase) LeftColumnBlankEnabled() bool {
	return e.vdp.LeftColumnBlankEnabled()
}

// GetSystemRAM returns a pointer to the 8KB system RAM.
func (e *EmulatorBase) GetSystemRAM() *[systemRamSize]uint8 {
	return &e.mem.systemRam
}

// GetCartRAM returns the cartridge RAM currently backing the mapper, or nil
// if the loaded cartridge never enabled any.
func (e *EmulatorBase) GetCartRAM() []uint8 {
	return e.mem.mainCartRAM
}

// SetPause triggers the SMS pause button (NMI).
func (e *EmulatorBase) SetPause() {
	e.cpu.TriggerNMI()
}

// =============================================================================
// Save State Serialization
// =============================================================================

// SerializeSize returns the total size in bytes needed for a save state.
func (e *EmulatorBase) SerializeSize() int {
	return stateHeaderSize + cpuStateSize + memoryStateSize + vdpStateSize + psgStateSize + inputStateSize
}

// Serialize creates a save state and returns it as a byte slice.
func (e *EmulatorBase) Serialize() ([]byte, error) {
	size := e.SerializeSize()
	data := make([]byte, size)

	// Write header
	copy(data[0:12], stateMagic)
	binary.LittleEndian.PutUint16(data[12:14], stateVersion)
	binary.LittleEndian.PutUint32(data[14:18], e.mem.GetROMCRC32())
	// Data CRC will be written at the end

	offset := stateHeaderSize

	offset = e.serializeCPU(data, offset)
	offset = e.serializeMemory(data, offset)
	offset = e.serializeVDP(data, offset)
	offset = e.serializePSG(data, offset)
	offset = e.serializeInput(data, offset)

	// Calculate and write data CRC32 (over everything after header)
	dataCRC := crc32.ChecksumIEEE(data[stateHeaderSize:])
	binary.LittleEndian.PutUint32(data[18:22], dataCRC)

	return data, nil
}

// Deserialize restores emulator state from a save state byte slice.
// Note: Region is NOT restored - the current region setting is preserved.
func (e *EmulatorBase) Deserialize(data []byte) error {
	if err := e.VerifyState(data); err != nil {
		return err
	}

	offset := stateHeaderSize

	offset = e.deserializeCPU(data, offset)
	offset = e.deserializeMemory(data, offset)
	offset = e.deserializeVDP(data, offset)
	offset = e.deserializePSG(data, offset)
	e.deserializeInput(data, offset)

	return e.mem.ValidatePages()
}

// VerifyState checks if a save state is valid without loading it.
func (e *EmulatorBase) VerifyState(data []byte) error {
	// Check minimum length (must be at least header + expected state data)
	expectedSize := e.SerializeSize()
	if len(data) < expectedSize {
		return errors.New("save state too short")
	}

	// Check magic bytes
	if string(data[0:12]) != stateMagic {
		return errors.New("invalid save state magic")
	}

	// Check version
	version := binary.LittleEndian.Uint16(data[12:14])
	if version > stateVersion {
		return errors.New("unsupported save state version")
	}

	// Check ROM CRC32
	romCRC := binary.LittleEndian.Uint32(data[14:18])
	if romCRC != e.mem.GetROMCRC32() {
		return errors.New("save state is for a different ROM")
	}

	// Check data CRC32
	expectedCRC := binary.LittleEndian.Uint32(data[18:22])
	actualCRC := crc32.ChecksumIEEE(data[stateHeaderSize:])
	if expectedCRC != actualCRC {
		return errors.New("save state data is corrupted")
	}

	return nil
}

func putBool(data []byte, offset int, v bool) int {
	if v {
		data[offset] = 1
	} else {
		data[offset] = 0
	}
	return offset + 1
}

func getBool(data []byte, offset int) (bool, int) {
	return data[offset] != 0, offset + 1
}

// serializeCPU writes CPU state to the data buffer
func (e *EmulatorBase) serializeCPU(data []byte, offset int) int {
	c := e.cpu

	binary.LittleEndian.PutUint16(data[offset:], c.PC)
	offset += 2
	binary.LittleEndian.PutUint16(data[offset:], c.SP)
	offset += 2

	for _, r := range []uint8{c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L,
		c.A2, c.F2, c.B2, c.C2, c.D2, c.E2, c.H2, c.L2} {
		data[offset] = r
		offset++
	}

	binary.LittleEndian.PutUint16(data[offset:], c.IX)
	offset += 2
	binary.LittleEndian.PutUint16(data[offset:], c.IY)
	offset += 2

	data[offset] = c.I
	offset++
	data[offset] = c.R
	offset++

	offset = putBool(data, offset, c.IFF1)
	offset = putBool(data, offset, c.IFF2)

	data[offset] = c.IM
	offset++

	offset = putBool(data, offset, c.Halted)
	offset = putBool(data, offset, c.nmiPending)
	offset = putBool(data, offset, c.eiPending)

	return offset
}

// deserializeCPU reads CPU state from the data buffer
func (e *EmulatorBase) deserializeCPU(data []byte, offset int) int {
	c := e.cpu

	c.PC = binary.LittleEndian.Uint16(data[offset:])
	offset += 2
	c.SP = binary.LittleEndian.Uint16(data[offset:])
	offset += 2

	regs := []*uint8{&c.A, &c.F, &c.B, &c.C, &c.D, &c.E, &c.H, &c.L,
		&c.A2, &c.F2, &c.B2, &c.C2, &c.D2, &c.E2, &c.H2, &c.L2}
	for _, r := range regs {
		*r = data[offset]
		offset++
	}

	c.IX = binary.LittleEndian.Uint16(data[offset:])
	offset += 2
	c.IY = binary.LittleEndian.Uint16(data[offset:])
	offset += 2

	c.I = data[offset]
	offset++
	c.R = data[offset]
	offset++

	c.IFF1, offset = getBool(data, offset)
	c.IFF2, offset = getBool(data, offset)

	c.IM = data[offset]
	offset++

	c.Halted, offset = getBool(data, offset)
	c.nmiPending, offset = getBool(data, offset)
	c.eiPending, offset = getBool(data, offset)

	return offset
}

// serializeMemory writes Memory state to the data buffer
func (e *EmulatorBase) serializeMemory(data []byte, offset int) int {
	m := e.mem

	copy(data[offset:], m.systemRam[:])
	offset += len(m.systemRam)

	data[offset] = uint8(m.mainCartKind)
	offset++
	copy(data[offset:], m.mainCartRAM)
	offset += cartRAMPageLen * 2

	copy(data[offset:], m.halfCartRAM)
	offset += halfCartRAMLen

	for _, p := range m.pages {
		data[offset] = uint8(p.kind)
		offset++
		binary.LittleEndian.PutUint32(data[offset:], uint32(p.index))
		offset += 4
	}

	data[offset] = uint8(m.mapperKind)
	offset++
	data[offset] = m.sega.ramControl
	offset++
	binary.LittleEndian.PutUint32(data[offset:], uint32(m.sega.pendingSlot2Rom))
	offset += 4

	return offset
}

// deserializeMemory reads Memory state from the data buffer
func (e *EmulatorBase) deserializeMemory(data []byte, offset int) int {
	m := e.mem

	copy(m.systemRam[:], data[offset:offset+len(m.systemRam)])
	offset += len(m.systemRam)

	kind := cartRAMVariant(data[offset])
	offset++
	cartBuf := data[offset : offset+cartRAMPageLen*2]
	offset += cartRAMPageLen * 2
	switch kind {
	case cartRAMOnePage:
		m.mainCartRAM = append([]uint8(nil), cartBuf[:cartRAMPageLen]...)
	case cartRAMTwoPages:
		m.mainCartRAM = append([]uint8(nil), cartBuf...)
	default:
		m.mainCartRAM = nil
	}
	m.mainCartKind = kind

	halfBuf := data[offset : offset+halfCartRAMLen]
	offset += halfCartRAMLen
	m.halfCartRAM = append([]uint8(nil), halfBuf...)

	for i := range m.pages {
		m.pages[i].kind = pageKind(data[offset])
		offset++
		m.pages[i].index = int(int32(binary.LittleEndian.Uint32(data[offset:])))
		offset += 4
	}

	m.mapperKind = MapperKind(data[offset])
	offset++
	m.sega.ramControl = data[offset]
	offset++
	m.sega.pendingSlot2Rom = int(int32(binary.LittleEndian.Uint32(data[offset:])))
	offset += 4

	return offset
}

// serializeVDP writes VDP state to the data buffer
func (e *EmulatorBase) serializeVDP(data []byte, offset int) int {
	v := e.vdp

	copy(data[offset:], v.vram[:])
	offset += len(v.vram)

	copy(data[offset:], v.cram[:])
	offset += len(v.cram)

	copy(data[offset:], v.register[:])
	offset += len(v.register)

	binary.LittleEndian.PutUint16(data[offset:], v.addr)
	offset += 2

	data[offset] = v.addrLatch
	offset++
	offset = putBool(data, offset, v.writeLatch)
	data[offset] = v.codeReg
	offset++
	data[offset] = v.readBuffer
	offset++

	data[offset] = v.status
	offset++

	binary.LittleEndian.PutUint16(data[offset:], v.vCounter)
	offset += 2

	data[offset] = v.hCounter
	offset++

	binary.LittleEndian.PutUint16(data[offset:], uint16(v.lineCounter))
	offset += 2

	offset = putBool(data, offset, v.lineIntPending)

	data[offset] = v.hScrollLatch
	offset++
	data[offset] = v.reg2Latch
	offset++
	data[offset] = v.vScrollLatch
	offset++

	data[offset] = uint8(v.kind)
	offset++
	data[offset] = v.reg7Latch
	offset++
	for _, c := range v.ggCRAM {
		binary.LittleEndian.PutUint16(data[offset:], c)
		offset += 2
	}
	data[offset] = v.ggCRAMHold
	offset++

	return offset
}

// deserializeVDP reads VDP state from the data buffer
func (e *EmulatorBase) deserializeVDP(data []byte, offset int) int {
	v := e.vdp

	copy(v.vram[:], data[offset:offset+len(v.vram)])
	offset += len(v.vram)

	copy(v.cram[:], data[offset:offset+len(v.cram)])
	offset += len(v.cram)

	copy(v.register[:], data[offset:offset+len(v.register)])
	offset += len(v.register)

	v.addr = binary.LittleEndian.Uint16(data[offset:])
	offset += 2

	v.addrLatch = data[offset]
	offset++
	v.writeLatch, offset = getBool(data, offset)
	v.codeReg = data[offset]
	offset++
	v.readBuffer = data[offset]
	offset++

	v.status = data[offset]
	offset++

	v.vCounter = binary.LittleEndian.Uint16(data[offset:])
	offset += 2

	v.hCounter = data[offset]
	offset++

	v.lineCounter = int16(binary.LittleEndian.Uint16(data[offset:]))
	offset += 2

	v.lineIntPending, offset = getBool(data, offset)

	v.hScrollLatch = data[offset]
	offset++
	v.reg2Latch = data[offset]
	offset++
	v.vScrollLatch = data[offset]
	offset++

	v.kind = VDPKind(data[offset])
	offset++
	v.reg7Latch = data[offset]
	offset++
	for i := range v.ggCRAM {
		v.ggCRAM[i] = binary.LittleEndian.Uint16(data[offset:])
		offset += 2
	}
	v.ggCRAMHold = data[offset]
	offset++

	v.LatchCRAM()

	return offset
}

// serializePSG writes PSG state to the data buffer
func (e *EmulatorBase) serializePSG(data []byte, offset int) int {
	// Tone registers (3 x 2 bytes = 6 bytes)
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint16(data[offset:], e.psg.toneReg[i])
		offset += 2
	}

	// Tone counters (3 x 2 bytes = 6 bytes)
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint16(data[offset:], e.psg.toneCounter[i])
		offset += 2
	}

	// Tone outputs (3 bytes)
	for i := 0; i < 3; i++ {
		offset = putBool(data, offset, e.psg.toneOutput[i])
	}

	// Noise register (1 byte)
	data[offset] = e.psg.noiseReg
	offset++

	// Noise counter (2 bytes)
	binary.LittleEndian.PutUint16(data[offset:], e.psg.noiseCounter)
	offset += 2

	// Noise shift register (2 bytes)
	binary.LittleEndian.PutUint16(data[offset:], e.psg.noiseShift)
	offset += 2

	// Noise output (1 byte)
	offset = putBool(data, offset, e.psg.noiseOutput)

	// Volume (4 bytes)
	copy(data[offset:], e.psg.volume[:])
	offset += len(e.psg.volume)

	// Latch state (2 bytes)
	data[offset] = e.psg.latchedChannel
	offset++
	data[offset] = e.psg.latchedType
	offset++

	// Clock counter (8 bytes, float64)
	binary.LittleEndian.PutUint64(data[offset:], math.Float64bits(e.psg.clockCounter))
	offset += 8

	// Clock divider (4 bytes, int)
	binary.LittleEndian.PutUint32(data[offset:], uint32(e.psg.clockDivider))
	offset += 4

	return offset
}

// deserializePSG reads PSG state from the data buffer
func (e *EmulatorBase) deserializePSG(data []byte, offset int) int {
	// Tone registers (3 x 2 bytes = 6 bytes)
	for i := 0; i < 3; i++ {
		e.psg.toneReg[i] = binary.LittleEndian.Uint16(data[offset:])
		offset += 2
	}

	// Tone counters (3 x 2 bytes = 6 bytes)
	for i := 0; i < 3; i++ {
		e.psg.toneCounter[i] = binary.LittleEndian.Uint16(data[offset:])
		offset += 2
	}

	// Tone outputs (3 bytes)
	for i := 0; i < 3; i++ {
		e.psg.toneOutput[i], offset = getBool(data, offset)
	}

	// Noise register (1 byte)
	e.psg.noiseReg = data[offset]
	offset++

	// Noise counter (2 bytes)
	e.psg.noiseCounter = binary.LittleEndian.Uint16(data[offset:])
	offset += 2

	// Noise shift register (2 bytes)
	e.psg.noiseShift = binary.LittleEndian.Uint16(data[offset:])
	offset += 2

	// Noise output (1 byte)
	e.psg.noiseOutput, offset = getBool(data, offset)

	// Volume (4 bytes)
	copy(e.psg.volume[:], data[offset:offset+len(e.psg.volume)])
	offset += len(e.psg.volume)

	// Latch state (2 bytes)
	e.psg.latchedChannel = data[offset]
	offset++
	e.psg.latchedType = data[offset]
	offset++

	// Clock counter (8 bytes, float64)
	e.psg.clockCounter = math.Float64frombits(binary.LittleEndian.Uint64(data[offset:]))
	offset += 8

	// Clock divider (4 bytes, int)
	e.psg.clockDivider = int(binary.LittleEndian.Uint32(data[offset:]))
	offset += 4

	return offset
}

// serializeInput writes Input state to the data buffer
func (e *EmulatorBase) serializeInput(data []byte, offset int) int {
	data[offset] = e.io.Input.Port1
	offset++
	data[offset] = e.io.Input.Port2
	offset++
	return offset
}

// deserializeInput reads Input state from the data buffer
func (e *EmulatorBase) deserializeInput(data []byte, offset int) int {
	e.io.Input.Port1 = data[offset]
	offset++
	e.io.Input.Port2 = data[offset]
	offset++
	return offset
}
