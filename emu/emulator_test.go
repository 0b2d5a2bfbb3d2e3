package emu

import "testing"

func TestInitEmulatorBase_NTSC(t *testing.T) {
	rom := createTestROM(2)
	e := InitEmulatorBase(rom, RegionNTSC)

	if e.GetRegion() != RegionNTSC {
		t.Errorf("expected NTSC region, got %v", e.GetRegion())
	}
	if e.GetActiveHeight() != 192 {
		t.Errorf("expected 192-line active height at power-on, got %d", e.GetActiveHeight())
	}
	if e.cpu.PC != 0 {
		t.Errorf("expected PC=0 at power-on, got 0x%04X", e.cpu.PC)
	}
}

func TestInitEmulatorBaseFull_GameGear(t *testing.T) {
	rom := createTestROM(2)
	e := InitEmulatorBaseFull(rom, RegionNTSC, VDPGameGear, NationalityExport)

	if !e.io.isGameGear {
		t.Error("expected Game Gear I/O wiring")
	}
	if e.vdp.kind != VDPGameGear {
		t.Error("expected Game Gear VDP variant")
	}
}

// TestEmulatorBase_RunFrameVBlankInterrupt runs a ROM that enables the frame
// interrupt and spins in a tight EI/HALT loop, and checks that the frame
// actually produces and services a VBlank interrupt within one frame's
// worth of scanlines.
func TestEmulatorBase_RunFrameVBlankInterrupt(t *testing.T) {
	rom := make([]byte, 0x8000)
	i := 0
	emit := func(b ...byte) {
		copy(rom[i:], b)
		i += len(b)
	}
	// Enable the frame interrupt (VDP reg1 bit5) via the two-write control
	// port sequence (first byte is the data, second selects the register
	// with code=2), then EI and spin on HALT for the rest of the frame.
	emit(0x3E, 0x20) // LD A,0x20   (data: reg1 bit5)
	emit(0xD3, 0xBF) // OUT ($BF),A
	emit(0x3E, 0x81) // LD A,0x81   (code=2, register=1)
	emit(0xD3, 0xBF) // OUT ($BF),A
	emit(0xFB)       // EI
	emit(0x76)       // HALT
	emit(0x18, 0xFE) // JR -2 (spin on HALT forever)

	e := InitEmulatorBase(rom, RegionNTSC)
	e.cpu.SP = 0xDFF0

	e.RunFrame()

	if e.vdp.GetRegister(1)&0x20 == 0 {
		t.Fatal("frame interrupt enable bit was not set by the test program")
	}
	// A full frame at 60fps must cross VBlank; IFF1 should have been
	// re-enabled by EI and the interrupt handler should have run at least
	// once, pushing a return address onto the stack.
	if e.cpu.SP == 0xDFF0 {
		t.Error("expected the frame interrupt to have fired and pushed a return address")
	}
}

func TestEmulatorBase_SetPauseTriggersNMI(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0] = 0x00 // NOP

	e := InitEmulatorBase(rom, RegionNTSC)
	e.cpu.IFF1 = true
	e.cpu.IFF2 = true
	e.cpu.SP = 0xDFF0

	e.SetPause()
	spent := e.cpu.serviceInterrupts()
	if spent != 11 {
		t.Errorf("expected NMI service cost of 11 cycles, got %d", spent)
	}
	if e.cpu.PC != 0x66 {
		t.Errorf("expected PC=0x0066 after pause NMI, got 0x%04X", e.cpu.PC)
	}
}

func TestEmulatorBase_SetAndGetInput(t *testing.T) {
	rom := createTestROM(2)
	e := InitEmulatorBase(rom, RegionNTSC)

	e.SetInput(true, false, false, false, false, false) // P1 Up
	if e.io.Input.Port1&0x01 != 0 {
		t.Error("P1 Up bit should be clear (pressed) after SetInput")
	}

	e.SetInputP2(false, true, false, false, false, false) // P2 Down
	if e.io.Input.Port1&0x80 != 0 {
		t.Error("P2 Down bit should be clear (pressed) after SetInputP2")
	}
}

func TestEmulatorBase_SerializeDeserializeRoundTrip(t *testing.T) {
	rom := createTestROM(4)
	e := InitEmulatorBase(rom, RegionNTSC)

	e.cpu.A = 0x42
	e.cpu.PC = 0x1234
	e.cpu.SP = 0xDFF0
	e.cpu.IFF1 = true
	e.mem.Write(0xFFFE, 2) // page slot1 -> bank 2
	e.vdp.register[0] = 0x55
	e.vdp.vram[0x100] = 0xAB
	e.io.Input.Port1 = 0x3F

	data, err := e.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if len(data) != e.SerializeSize() {
		t.Fatalf("serialized length %d does not match SerializeSize() %d", len(data), e.SerializeSize())
	}

	restored := InitEmulatorBase(rom, RegionNTSC)
	if err := restored.Deserialize(data); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	if restored.cpu.A != 0x42 {
		t.Errorf("A: expected 0x42, got 0x%02X", restored.cpu.A)
	}
	if restored.cpu.PC != 0x1234 {
		t.Errorf("PC: expected 0x1234, got 0x%04X", restored.cpu.PC)
	}
	if !restored.cpu.IFF1 {
		t.Error("IFF1 should have round-tripped as true")
	}
	if restored.vdp.register[0] != 0x55 {
		t.Errorf("VDP register 0: expected 0x55, got 0x%02X", restored.vdp.register[0])
	}
	if restored.vdp.vram[0x100] != 0xAB {
		t.Errorf("VRAM[0x100]: expected 0xAB, got 0x%02X", restored.vdp.vram[0x100])
	}
	if restored.io.Input.Port1 != 0x3F {
		t.Errorf("Input.Port1: expected 0x3F, got 0x%02X", restored.io.Input.Port1)
	}
	if got := restored.mem.Read(0x4000); got != 2 {
		t.Errorf("slot1 ROM page: expected bank 2, got %d", got)
	}
}

func TestEmulatorBase_VerifyStateRejectsWrongROM(t *testing.T) {
	rom1 := createTestROM(2)
	rom2 := createTestROMWithPattern(2)

	e1 := InitEmulatorBase(rom1, RegionNTSC)
	data, err := e1.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	e2 := InitEmulatorBase(rom2, RegionNTSC)
	if err := e2.VerifyState(data); err == nil {
		t.Error("expected VerifyState to reject a state taken from a different ROM")
	}
}

func TestEmulatorBase_VerifyStateRejectsCorruption(t *testing.T) {
	rom := createTestROM(2)
	e := InitEmulatorBase(rom, RegionNTSC)
	data, err := e.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	data[stateHeaderSize] ^= 0xFF // corrupt one byte of CPU state

	if err := e.VerifyState(data); err == nil {
		t.Error("expected VerifyState to detect data corruption via CRC32 mismatch")
	}
}

func TestEmulatorBase_DeserializeRejectsInvalidPage(t *testing.T) {
	rom := createTestROM(2)
	e := InitEmulatorBase(rom, RegionNTSC)

	// Force an out-of-range page directly into the live mapper state,
	// then serialize it: a savestate that references a page the loaded
	// ROM doesn't have must fail validation on load.
	e.mem.pages[1] = page{kind: pageRom, index: 99}
	data, err := e.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	fresh := InitEmulatorBase(rom, RegionNTSC)
	err = fresh.Deserialize(data)
	if err == nil {
		t.Fatal("expected Deserialize to reject an out-of-range ROM page")
	}
	if _, ok := err.(*InvalidRomPageSelectedError); !ok {
		t.Errorf("expected *InvalidRomPageSelectedError, got %T", err)
	}
}

func TestEmulatorBase_SetRegionUpdatesTiming(t *testing.T) {
	rom := createTestROM(2)
	e := InitEmulatorBase(rom, RegionNTSC)

	e.SetRegion(RegionPAL)
	if e.GetRegion() != RegionPAL {
		t.Error("expected region to update to PAL")
	}
	if e.GetTiming().Scanlines != 313 {
		t.Errorf("expected PAL scanline count 313, got %d", e.GetTiming().Scanlines)
	}
	if e.scanlines != 313 {
		t.Errorf("internal scanlines field: expected 313, got %d", e.scanlines)
	}
}

func TestEmulatorBase_SetGraphicsSinkNilFallsBackToNullSink(t *testing.T) {
	rom := createTestROM(2)
	e := InitEmulatorBase(rom, RegionNTSC)

	e.SetGraphicsSink(nil)
	if _, ok := e.sink.(NullSink); !ok {
		t.Errorf("expected sink to fall back to NullSink, got %T", e.sink)
	}
}

func TestConvertAudioSamples(t *testing.T) {
	samples := []float32{1.0, -1.0, 0.0}
	pcm := ConvertAudioSamples(samples)

	if len(pcm) != 6 {
		t.Fatalf("expected 6 interleaved stereo samples, got %d", len(pcm))
	}
	if pcm[0] != pcm[1] {
		t.Error("left/right channels should be duplicated from the mono source")
	}
	if pcm[2] >= 0 {
		t.Errorf("negative input sample should produce a negative PCM value, got %d", pcm[2])
	}
}

func TestEmulatorBase_RunFrameProducesAudio(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0] = 0x76 // HALT immediately so the CPU doesn't run away

	e := InitEmulatorBase(rom, RegionNTSC)
	e.RunFrame()

	if len(e.GetAudioSamples()) == 0 {
		t.Error("expected RunFrame to accumulate some audio samples")
	}
}

func TestEmulatorBase_GetSystemRAMAndCartRAM(t *testing.T) {
	rom := createTestROM(2)
	e := InitEmulatorBase(rom, RegionNTSC)

	ram := e.GetSystemRAM()
	ram[0] = 0x99
	if e.mem.systemRam[0] != 0x99 {
		t.Error("GetSystemRAM should return a live pointer into Memory's system RAM")
	}

	if e.GetCartRAM() != nil {
		t.Error("expected nil cart RAM before any mapper RAM-enable write")
	}

	e.mem.Write(0xFFFC, 0x08) // enable cart RAM
	if e.GetCartRAM() == nil {
		t.Error("expected non-nil cart RAM after enabling it via the mapper")
	}
}
